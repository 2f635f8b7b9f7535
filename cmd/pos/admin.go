package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ray-remotestate/padipos/catalog"
	"github.com/ray-remotestate/padipos/models"
	"github.com/ray-remotestate/padipos/reports"
	"github.com/ray-remotestate/padipos/users"
)

func (r *repl) menu(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "add":
		return r.menuAdd(ctx, args[1:])
	case "edit":
		return r.menuEdit(ctx, args[1:])
	case "delete":
		return r.menuDelete(ctx, args[1:])
	}
	return errUsage
}

// menu add name= price= category= detail= image=path
func (r *repl) menuAdd(ctx context.Context, args []string) error {
	kv, err := keyValues(args, "name", "price", "category", "detail", "image")
	if err != nil {
		return err
	}
	form, err := productForm(models.ProductForm{}, kv)
	if err != nil {
		return err
	}
	p, msg, err := r.catalog.AddMenuItem(ctx, form)
	if err != nil {
		return err
	}
	r.printf("%s: %s (%s)\n", msg, p.Name, p.ID)
	return nil
}

// menu edit <id> [name=] [price=] [category=] [detail=] [image=path]
func (r *repl) menuEdit(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	original, ok := r.catalog.Product(models.ID(args[0]))
	if !ok {
		return models.Invalid("product", "not found")
	}
	kv, err := keyValues(args[1:], "name", "price", "category", "detail", "image")
	if err != nil {
		return err
	}
	form, err := productForm(catalog.FormFor(original), kv)
	if err != nil {
		return err
	}
	p, msg, err := r.catalog.EditMenuItem(ctx, original, form)
	if err != nil {
		return err
	}
	r.printf("%s: %s %s\n", msg, p.Name, p.Price)
	return nil
}

func (r *repl) menuDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	msg, err := r.catalog.DeleteMenuItem(ctx, models.ID(args[0]), func(p models.Product) bool {
		return r.confirm(fmt.Sprintf("Delete %q permanently?", p.Name))
	})
	if err != nil {
		return err
	}
	r.printf("%s\n", msg)
	return nil
}

func productForm(form models.ProductForm, kv map[string]string) (models.ProductForm, error) {
	if v, ok := kv["name"]; ok {
		form.Name = v
	}
	if v, ok := kv["price"]; ok {
		price, err := models.ParsePrice(v)
		if err != nil {
			return form, models.Invalid("price", err.Error())
		}
		form.Price = price
	}
	if v, ok := kv["category"]; ok {
		c, err := models.ParseCategory(v)
		if err != nil || !c.IsValid() {
			return form, models.Invalid("category", "must be Foods, Beverages or Dessert")
		}
		form.Category = c
	}
	if v, ok := kv["detail"]; ok {
		form.Detail = v
	}
	if v, ok := kv["image"]; ok {
		img, err := loadImage(v)
		if err != nil {
			return form, models.Invalid("image", err.Error())
		}
		form.Image = img
	}
	return form, nil
}

func (r *repl) listUsers(ctx context.Context, args []string) error {
	kv, err := keyValues(args, "username", "email", "role")
	if err != nil {
		return err
	}
	all, err := r.users.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range users.Filter(all, kv["username"], kv["email"], kv["role"]) {
		r.printf("  %-38s %-16s %-28s %s\n", u.ID, u.Username, u.Email, u.Role)
	}
	return nil
}

// user add <username> <email> <password> <role>
// user edit <id> username= email= role= [password=]
// user delete <id>
func (r *repl) user(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	switch args[0] {
	case "add":
		if len(args) != 5 {
			return errUsage
		}
		u, err := r.users.Create(ctx, models.UserForm{Username: args[1], Email: args[2], Password: args[3], Role: models.Role(args[4])})
		if err != nil {
			return err
		}
		r.printf("created %s (%s)\n", u.Username, u.ID)
	case "edit":
		id := models.ID(args[1])
		current, err := r.users.Get(ctx, id)
		if err != nil {
			return err
		}
		kv, err := keyValues(args[2:], "username", "email", "role", "password")
		if err != nil {
			return err
		}
		update := models.UserUpdate{Username: current.Username, Email: current.Email, Role: current.Role}
		if v, ok := kv["username"]; ok {
			update.Username = v
		}
		if v, ok := kv["email"]; ok {
			update.Email = v
		}
		if v, ok := kv["role"]; ok {
			update.Role = models.Role(v)
		}
		update.Password = kv["password"]
		u, err := r.users.Update(ctx, id, update)
		if err != nil {
			return err
		}
		r.printf("updated %s\n", u.Username)
	case "delete":
		if !r.confirm(fmt.Sprintf("Delete user %s?", args[1])) {
			return catalog.ErrNotConfirmed
		}
		msg, err := r.users.Delete(ctx, models.ID(args[1]))
		if err != nil {
			return err
		}
		r.printf("%s\n", msg)
	default:
		return errUsage
	}
	return nil
}

func (r *repl) filteredOrders(ctx context.Context, kv map[string]string) ([]models.OrderRecord, error) {
	sess, err := r.sessions.Require(models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	var c reports.Criteria
	if c.Start, err = parseDate(kv["from"]); err != nil {
		return nil, err
	}
	if c.End, err = parseDate(kv["to"]); err != nil {
		return nil, err
	}
	if v := kv["type"]; v != "" && !strings.EqualFold(v, reports.All) {
		t, err := models.ParseOrderType(v)
		if err != nil {
			return nil, models.Invalid("type", err.Error())
		}
		c.OrderType = string(t)
	}
	if v := kv["category"]; v != "" && !strings.EqualFold(v, reports.All) {
		cat, err := models.ParseCategory(v)
		if err != nil || !cat.IsValid() {
			return nil, models.Invalid("category", "must be All, Foods, Beverages or Dessert")
		}
		c.Category = string(cat)
	}

	orders, err := r.client.GetOrders(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	return reports.Filter(orders, c), nil
}

func (r *repl) report(ctx context.Context, args []string) error {
	kv, err := keyValues(args, "from", "to", "type", "category", "page", "per")
	if err != nil {
		return err
	}
	page, err := parseInt(kv["page"], 1)
	if err != nil {
		return models.Invalid("page", err.Error())
	}
	per, err := parseInt(kv["per"], 10)
	if err != nil {
		return models.Invalid("per", err.Error())
	}
	rows, err := r.filteredOrders(ctx, kv)
	if err != nil {
		return err
	}

	for _, o := range reports.Paginate(rows, page, per) {
		r.printf("  %-10s %s  %-16s %-9s %-10s %s\n",
			o.Number(), o.CreatedAt.Local().Format("Mon, 02/01/2006 15:04"), o.CustomerName, o.OrderType, orDefault(o.Detail, "N/A"), o.Total)
	}
	r.printf("page %d of %d (%d orders)\n", page, reports.TotalPages(len(rows), per), len(rows))
	return nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func (r *repl) export(ctx context.Context, args []string) error {
	kv, err := keyValues(args, "from", "to", "type", "category")
	if err != nil {
		return err
	}
	rows, err := r.filteredOrders(ctx, kv)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := reports.WriteCSV(&buf, rows, time.Local); err != nil {
		return err
	}
	path := filepath.Join(r.exportDir, reports.ExportFileName(time.Now()))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return err
	}
	r.printf("exported %d orders to %s\n", len(rows), path)
	return nil
}

func (r *repl) dashboard(ctx context.Context, args []string) error {
	kv, err := keyValues(args, "from", "to", "category", "search")
	if err != nil {
		return err
	}
	sess, err := r.sessions.Require(models.RoleAdmin)
	if err != nil {
		return err
	}
	var start, end models.Day
	if t, err := parseDate(kv["from"]); err != nil {
		return err
	} else if !t.IsZero() {
		start = models.NewDay(t)
	}
	if t, err := parseDate(kv["to"]); err != nil {
		return err
	} else if !t.IsZero() {
		end = models.NewDay(t)
	}
	category := models.CategoryAll
	if v := kv["category"]; v != "" {
		if category, err = models.ParseCategory(v); err != nil {
			return models.Invalid("category", err.Error())
		}
	}

	stats, err := r.client.GetStats(ctx, sess.Token)
	if err != nil {
		return err
	}
	r.printf("omzet %s  orders %d  foods %d  beverages %d  dessert %d\n",
		stats.TotalOmzet, stats.TotalOrders, stats.FoodsSold, stats.BeveragesSold, stats.DessertSold)

	top, err := r.client.GetTopProducts(ctx, sess.Token, category)
	if err != nil {
		return err
	}
	r.printf("top products (%s):\n", category)
	for _, p := range reports.SearchProducts(top, kv["search"]) {
		r.printf("  %-28s %-10s %d sold\n", p.Name, p.Category, p.Sales)
	}

	days, err := r.client.GetDailyOmzet(ctx, sess.Token, start, end)
	if err != nil {
		return err
	}
	days = reports.FilterDays(days, start, end)
	r.printf("daily omzet:\n")
	for _, d := range days {
		r.printf("  %s  foods %s  beverages %s  dessert %s\n", d.Date, d.Foods, d.Beverages, d.Dessert)
	}
	r.printf("%s omzet in range: %s\n", category, reports.CategoryOmzet(days, category))
	return nil
}

func (r *repl) profile(ctx context.Context, args []string) error {
	if len(args) == 1 && args[0] == "rmpic" {
		msg, err := r.sessions.RemoveProfilePicture(ctx)
		if err != nil {
			return err
		}
		r.printf("%s\n", msg)
		return nil
	}

	kv, err := keyValues(args, "username", "email", "password", "picture")
	if err != nil {
		return err
	}
	form := models.ProfileForm{Username: kv["username"], Email: kv["email"], Password: kv["password"]}
	if v, ok := kv["picture"]; ok {
		if form.Picture, err = loadImage(v); err != nil {
			return models.Invalid("picture", err.Error())
		}
	}
	sess, err := r.sessions.UpdateProfile(ctx, form)
	if err != nil {
		return err
	}
	r.printf("profile saved: %s <%s>\n", sess.Username, sess.Email)
	return nil
}
