package reports

import (
	"strings"

	"github.com/ray-remotestate/padipos/models"
)

func TotalOmzet(days []models.DailyOmzet) models.Price {
	var total models.Price
	for _, d := range days {
		total += d.Total()
	}
	return total
}

// FilterDays keeps the days within [start, end]. A zero bound is open.
func FilterDays(days []models.DailyOmzet, start, end models.Day) []models.DailyOmzet {
	out := make([]models.DailyOmzet, 0, len(days))
	for _, d := range days {
		if !start.IsZero() && d.Date.Before(start.Time) {
			continue
		}
		if !end.IsZero() && d.Date.After(end.Time) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// CategoryOmzet sums one category's revenue; the All Menu sentinel sums all.
func CategoryOmzet(days []models.DailyOmzet, category models.Category) models.Price {
	var total models.Price
	for _, d := range days {
		switch category {
		case models.CategoryFoods:
			total += d.Foods
		case models.CategoryBeverages:
			total += d.Beverages
		case models.CategoryDessert:
			total += d.Dessert
		case models.CategoryAll:
			total += d.Total()
		}
	}
	return total
}

// SearchProducts narrows the top-products table by name.
func SearchProducts(top []models.TopProduct, term string) []models.TopProduct {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]models.TopProduct, 0, len(top))
	for _, p := range top {
		if strings.Contains(strings.ToLower(p.Name), term) {
			out = append(out, p)
		}
	}
	return out
}
