package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ray-remotestate/padipos/models"
)

var (
	burger  = models.Product{ID: "1", Name: "Cheeseburger", Price: 25000, Category: models.CategoryFoods}
	coffee  = models.Product{ID: "2", Name: "Iced Coffee", Price: 18000, Category: models.CategoryBeverages}
	pudding = models.Product{ID: "3", Name: "Pudding Coklat", Price: 12000, Category: models.CategoryDessert}
)

func apply(s State, actions ...Action) State {
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}

func TestAddSameProductTwiceIncrementsQuantity(t *testing.T) {
	s := apply(InitialState(), AddToCart{burger}, AddToCart{burger})

	require.Len(t, s.Cart, 1)
	assert.Equal(t, 2, s.Cart[0].Quantity)
	assert.Equal(t, models.Price(25000), s.Cart[0].Price)
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	s := apply(InitialState(), AddToCart{coffee}, AddToCart{burger}, AddToCart{coffee})

	require.Len(t, s.Cart, 2)
	assert.Equal(t, models.ID("2"), s.Cart[0].ProductID)
	assert.Equal(t, 2, s.Cart[0].Quantity)
	assert.Equal(t, models.ID("1"), s.Cart[1].ProductID)
}

func TestPriceCapturedAtInsertion(t *testing.T) {
	s := apply(InitialState(), AddToCart{burger})

	repriced := burger
	repriced.Price = 99000
	s = apply(s, EditMenuItem{repriced}, AddToCart{repriced})

	require.Len(t, s.Cart, 1)
	assert.Equal(t, models.Price(25000), s.Cart[0].Price)
	assert.Equal(t, 2, s.Cart[0].Quantity)
}

func TestUpdateQuantityToZeroRemovesLine(t *testing.T) {
	s := apply(InitialState(), AddToCart{burger}, AddToCart{coffee}, UpdateQuantity{"1", -1})

	require.Len(t, s.Cart, 1)
	assert.Equal(t, models.ID("2"), s.Cart[0].ProductID)
}

func TestUpdateQuantityBelowZeroIsClamped(t *testing.T) {
	s := apply(InitialState(), AddToCart{burger}, AddToCart{burger}, UpdateQuantity{"1", -5})

	assert.Empty(t, s.Cart)
	for _, line := range s.Cart {
		assert.Positive(t, line.Quantity)
	}
}

func TestUpdateQuantityIncrementAndUnknownID(t *testing.T) {
	s := apply(InitialState(), AddToCart{burger}, UpdateQuantity{"1", 3}, UpdateQuantity{"404", -1})

	require.Len(t, s.Cart, 1)
	assert.Equal(t, 4, s.Cart[0].Quantity)
}

func TestClearCart(t *testing.T) {
	s := apply(InitialState(), AddToCart{burger}, AddToCart{coffee}, ClearCart{})
	assert.Empty(t, s.Cart)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := apply(InitialState(), SetProducts{[]models.Product{burger, coffee}}, AddToCart{burger})

	_ = apply(before, AddToCart{burger}, UpdateQuantity{"1", 5}, DeleteMenuItem{"2"}, EditMenuItem{models.Product{ID: "1", Name: "X", Category: models.CategoryFoods}})

	assert.Equal(t, 1, before.Cart[0].Quantity)
	assert.Len(t, before.Products, 2)
	assert.Equal(t, "Cheeseburger", before.Products[0].Name)
}

func TestMenuItemTransitions(t *testing.T) {
	s := apply(InitialState(), SetProducts{[]models.Product{burger, coffee}})
	assert.False(t, s.Loading)

	s = apply(s, AddMenuItem{pudding})
	require.Len(t, s.Products, 3)
	assert.Equal(t, pudding, s.Products[2])

	edited := coffee
	edited.Name = "Iced Latte"
	s = apply(s, EditMenuItem{edited})
	assert.Equal(t, "Iced Latte", s.Products[1].Name)

	s = apply(s, DeleteMenuItem{"1"})
	require.Len(t, s.Products, 2)
	assert.Equal(t, models.ID("2"), s.Products[0].ID)
}

func TestLoadingAndError(t *testing.T) {
	s := InitialState()
	assert.True(t, s.Loading)
	assert.Equal(t, models.CategoryAll, s.Category)

	s = apply(s, SetLoading{true}, SetError{"Failed to fetch products."})
	assert.False(t, s.Loading)
	assert.Equal(t, "Failed to fetch products.", s.Err)

	s = apply(s, SetProducts{[]models.Product{burger}})
	assert.Empty(t, s.Err)
}
