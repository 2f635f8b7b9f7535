package handlers

import (
	"cmp"
	"net/http"
	"slices"

	"github.com/ray-remotestate/padipos/models"
	"github.com/ray-remotestate/padipos/sandbox/utils"
)

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	var stats models.Stats
	for _, o := range h.DB.ListOrders() {
		stats.TotalOrders++
		stats.TotalOmzet += o.Total
		for _, item := range o.Items {
			switch item.Category {
			case models.CategoryFoods:
				stats.FoodsSold += item.Quantity
			case models.CategoryBeverages:
				stats.BeveragesSold += item.Quantity
			case models.CategoryDessert:
				stats.DessertSold += item.Quantity
			}
		}
	}
	utils.RespondJSON(w, http.StatusOK, "Stats fetched", stats)
}

// TopProducts ranks products by quantity sold, optionally within one
// category.
func (h *Handler) TopProducts(w http.ResponseWriter, r *http.Request) {
	category := models.Category(r.URL.Query().Get("category"))
	if category != "" && !category.IsValid() {
		utils.RespondError(w, http.StatusBadRequest, "Unknown category")
		return
	}

	sales := make(map[string]*models.TopProduct)
	for _, o := range h.DB.ListOrders() {
		for _, item := range o.Items {
			if category != "" && item.Category != category {
				continue
			}
			tp, ok := sales[item.Name]
			if !ok {
				tp = &models.TopProduct{Name: item.Name, Category: item.Category}
				sales[item.Name] = tp
			}
			tp.Sales += item.Quantity
		}
	}

	out := make([]models.TopProduct, 0, len(sales))
	for _, tp := range sales {
		out = append(out, *tp)
	}
	slices.SortFunc(out, func(a, b models.TopProduct) int {
		if c := cmp.Compare(b.Sales, a.Sales); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	utils.RespondJSON(w, http.StatusOK, "Top products fetched", out)
}

// DailyOmzet sums pre-tax line revenue per calendar day and category.
func (h *Handler) DailyOmzet(w http.ResponseWriter, r *http.Request) {
	var start, end models.Day
	if s := r.URL.Query().Get("startDate"); s != "" {
		d, err := models.ParseDay(s)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
			return
		}
		start = d
	}
	if s := r.URL.Query().Get("endDate"); s != "" {
		d, err := models.ParseDay(s)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "endDate must be YYYY-MM-DD")
			return
		}
		end = d
	}

	byDay := make(map[string]*models.DailyOmzet)
	for _, o := range h.DB.ListOrders() {
		day := models.NewDay(o.CreatedAt)
		if !start.IsZero() && day.Before(start.Time) {
			continue
		}
		if !end.IsZero() && day.After(end.Time) {
			continue
		}
		d, ok := byDay[day.String()]
		if !ok {
			d = &models.DailyOmzet{Date: day}
			byDay[day.String()] = d
		}
		for _, item := range o.Items {
			amount := item.Price * models.Price(item.Quantity)
			switch item.Category {
			case models.CategoryFoods:
				d.Foods += amount
			case models.CategoryBeverages:
				d.Beverages += amount
			case models.CategoryDessert:
				d.Dessert += amount
			}
		}
	}

	out := make([]models.DailyOmzet, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	slices.SortFunc(out, func(a, b models.DailyOmzet) int {
		return a.Date.Compare(b.Date.Time)
	})
	utils.RespondJSON(w, http.StatusOK, "Daily omzet fetched", out)
}
