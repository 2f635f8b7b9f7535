// Package reports filters, pages and exports the order history and derives
// the dashboard figures.
package reports

import (
	"slices"
	"time"

	"github.com/ray-remotestate/padipos/models"
)

// All is the filter sentinel for order type and category.
const All = "All"

// Criteria selects orders for the reports table. Zero dates leave that side
// of the range open; empty or All type and category match everything.
// Start and End name calendar days by their own date fields. Orders are
// placed on the day they fall on in Location, time.Local when nil.
type Criteria struct {
	Start     time.Time
	End       time.Time
	OrderType string
	Category  string
	Location  *time.Location
}

// Filter returns the orders matching c, newest first. Dates compare by
// calendar day, both ends inclusive.
func Filter(orders []models.OrderRecord, c Criteria) []models.OrderRecord {
	out := make([]models.OrderRecord, 0, len(orders))
	for _, o := range orders {
		if c.matches(o) {
			out = append(out, o)
		}
	}
	slices.SortStableFunc(out, func(a, b models.OrderRecord) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

func (c Criteria) matches(o models.OrderRecord) bool {
	day := startOfDay(o.CreatedAt.In(zone(c.Location)))
	if !c.Start.IsZero() && day.Before(startOfDay(c.Start)) {
		return false
	}
	if !c.End.IsZero() && day.After(startOfDay(c.End)) {
		return false
	}
	if c.OrderType != "" && c.OrderType != All && string(o.OrderType) != c.OrderType {
		return false
	}
	if c.Category != "" && c.Category != All && !slices.Contains(o.Categories(), models.Category(c.Category)) {
		return false
	}
	return true
}

func zone(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Paginate returns the 1-based page of rows. Out-of-range pages are empty.
func Paginate[T any](rows []T, page, perPage int) []T {
	if page < 1 || perPage < 1 {
		return nil
	}
	start := (page - 1) * perPage
	if start >= len(rows) {
		return nil
	}
	end := min(start+perPage, len(rows))
	return rows[start:end]
}

func TotalPages(n, perPage int) int {
	if perPage < 1 {
		return 0
	}
	return (n + perPage - 1) / perPage
}
