package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ray-remotestate/padipos/models"
)

func names(ps []models.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestFilter(t *testing.T) {
	items := []models.Product{
		{Name: "Cheeseburger", Category: models.CategoryFoods},
		{Name: "Iced Coffee", Category: models.CategoryBeverages},
	}

	tests := []struct {
		name     string
		search   string
		category models.Category
		want     []string
	}{
		{"search all categories", "ice", models.CategoryAll, []string{"Iced Coffee"}},
		{"category only", "", models.CategoryFoods, []string{"Cheeseburger"}},
		{"case insensitive", "CHEESE", models.CategoryAll, []string{"Cheeseburger"}},
		{"both must match", "ice", models.CategoryFoods, []string{}},
		{"empty search keeps order", "", models.CategoryAll, []string{"Cheeseburger", "Iced Coffee"}},
		{"no category match", "", models.CategoryDessert, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Filter(items, tt.search, tt.category)))
		})
	}
}
