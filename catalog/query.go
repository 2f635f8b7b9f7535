package catalog

import (
	"strings"

	"github.com/ray-remotestate/padipos/models"
)

// Filter returns the products whose name contains search (case-insensitive)
// and whose category matches, keeping the source order. CategoryAll matches
// every product.
func Filter(items []models.Product, search string, category models.Category) []models.Product {
	needle := strings.ToLower(search)
	out := make([]models.Product, 0, len(items))
	for _, item := range items {
		if !strings.Contains(strings.ToLower(item.Name), needle) {
			continue
		}
		if category != models.CategoryAll && item.Category != category {
			continue
		}
		out = append(out, item)
	}
	return out
}
