package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ray-remotestate/padipos/models"
)

func TestCompute(t *testing.T) {
	cart := []models.CartLine{
		{ProductID: "1", Price: 25000, Quantity: 2},
		{ProductID: "2", Price: 18000, Quantity: 1},
	}

	got := Compute(cart, DefaultTaxPercent)
	assert.Equal(t, models.Price(68000), got.SubTotal)
	assert.Equal(t, models.Price(6800), got.Tax)
	assert.Equal(t, models.Price(74800), got.Total)
	assert.Equal(t, models.Price(5200), got.Change(80000))
	assert.Equal(t, models.Price(-800), got.Change(74000))
}

func TestComputeRoundsTaxHalfUp(t *testing.T) {
	tests := []struct {
		name     string
		price    models.Price
		percent  int
		expected models.Price
	}{
		{name: "exact", price: 1000, percent: 10, expected: 100},
		{name: "half rounds up", price: 15, percent: 10, expected: 2},
		{name: "below half rounds down", price: 14, percent: 10, expected: 1},
		{name: "eleven percent", price: 25000, percent: 11, expected: 2750},
		{name: "zero rate", price: 999, percent: 0, expected: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Compute([]models.CartLine{{Price: tc.price, Quantity: 1}}, tc.percent)
			assert.Equal(t, tc.expected, got.Tax)
			assert.Equal(t, got.SubTotal+got.Tax, got.Total)
		})
	}
}

func TestComputeEmptyCart(t *testing.T) {
	assert.Equal(t, Totals{}, Compute(nil, DefaultTaxPercent))
}
