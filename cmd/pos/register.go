package main

import (
	"context"
	"strings"

	"github.com/ray-remotestate/padipos/models"
)

func (r *repl) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	msg, err := r.sessions.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	sess := r.sessions.Current()
	r.printf("%s. Logged in as %s (%s)\n", msg, sess.Username, sess.Role)
	return nil
}

func (r *repl) logout(context.Context, []string) error {
	if err := r.sessions.Logout(); err != nil {
		return err
	}
	r.printf("logged out\n")
	return nil
}

func (r *repl) whoami(context.Context, []string) error {
	sess, err := r.sessions.Require()
	if err != nil {
		return err
	}
	r.printf("%s <%s> role=%s id=%s\n", sess.Username, sess.Email, sess.Role, sess.UserID)
	if sess.Picture != "" {
		r.printf("picture: %s\n", r.imageURL(sess.Picture))
	}
	return nil
}

func (r *repl) imageURL(path string) string {
	if strings.HasPrefix(path, "/") {
		return r.client.BaseURL() + path
	}
	return path
}

func (r *repl) products(context.Context, []string) error {
	st := r.catalog.State()
	if st.Loading {
		r.printf("loading...\n")
		return nil
	}
	if st.Err != "" {
		r.printf("failed to load products: %s\n", st.Err)
		return nil
	}
	visible := r.catalog.Visible()
	r.printf("%s | search=%q | %d of %d products\n", st.Category, st.Search, len(visible), len(st.Products))
	for _, p := range visible {
		r.printf("  %-38s %-28s %-10s %s\n", p.ID, p.Name, p.Category, p.Price)
	}
	return nil
}

func (r *repl) refresh(ctx context.Context, _ []string) error {
	if err := r.catalog.Refresh(ctx); err != nil {
		return err
	}
	return r.products(ctx, nil)
}

func (r *repl) search(ctx context.Context, args []string) error {
	r.catalog.SetSearch(strings.Join(args, " "))
	return r.products(ctx, nil)
}

func (r *repl) category(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	c, err := models.ParseCategory(strings.Join(args, " "))
	if err != nil {
		return models.Invalid("category", err.Error())
	}
	r.catalog.SetCategory(c)
	return r.products(ctx, nil)
}

func (r *repl) add(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if err := r.catalog.AddToCartByID(models.ID(args[0])); err != nil {
		return models.Invalid("product", err.Error())
	}
	return r.cart(ctx, nil)
}

func (r *repl) qty(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	delta, err := parseInt(args[1], 0)
	if err != nil {
		return models.Invalid("quantity", err.Error())
	}
	r.catalog.UpdateQuantity(models.ID(args[0]), delta)
	return r.cart(ctx, nil)
}

func (r *repl) cart(context.Context, []string) error {
	lines := r.catalog.Cart()
	if len(lines) == 0 {
		r.printf("cart is empty\n")
		return nil
	}
	for _, l := range lines {
		r.printf("  %-28s %3d x %-12s %s\n", l.Name, l.Quantity, l.Price, models.Price(l.Subtotal()))
	}
	t := r.checkout.Totals()
	form := r.checkout.Form()
	r.printf("  sub total %s  tax %s  total %s\n", t.SubTotal, t.Tax, t.Total)
	r.printf("  customer=%q type=%s table=%q\n", form.CustomerName, form.OrderType, form.Detail)
	return nil
}

func (r *repl) customer(_ context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	r.checkout.SetCustomerName(strings.Join(args, " "))
	return nil
}

func (r *repl) orderType(_ context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	t, err := models.ParseOrderType(strings.Join(args, " "))
	if err != nil {
		return models.Invalid("type", err.Error())
	}
	return r.checkout.SetOrderType(t)
}

func (r *repl) table(_ context.Context, args []string) error {
	r.checkout.SetDetail(strings.Join(args, " "))
	return nil
}

func (r *repl) pay(ctx context.Context, args []string) error {
	totals, err := r.checkout.Begin()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		r.printf("total due %s\n", totals.Total)
		return errUsage
	}
	received, err := models.ParsePrice(args[0])
	if err != nil {
		return models.Invalid("received", err.Error())
	}
	if change := totals.Change(received); change >= 0 {
		r.printf("total %s  received %s  change %s\n", totals.Total, received, change)
	}

	rec, msg, err := r.checkout.Pay(ctx, received)
	if err != nil {
		return err
	}
	r.printf("%s\n", msg)
	r.printf("order %s for %s (%s)\n", rec.Number(), rec.CustomerName, rec.OrderType)
	for _, item := range rec.Items {
		r.printf("  %dx %s\n", item.Quantity, item.Name)
	}
	r.printf("sub total %s  tax %s  total %s\n", rec.SubTotal, rec.Tax, rec.Total)
	r.printf("received %s  change %s\n", rec.Received, rec.Change)
	return nil
}
