package checkout

import "github.com/ray-remotestate/padipos/models"

// DefaultTaxPercent is the tax rate the register ships with.
const DefaultTaxPercent = 10

// Totals is the payment summary of a cart.
type Totals struct {
	SubTotal models.Price
	Tax      models.Price
	Total    models.Price
}

// Compute sums the cart at the captured line prices and applies taxPercent,
// rounding the tax half-up to a whole unit.
func Compute(cart []models.CartLine, taxPercent int) Totals {
	var sub int64
	for _, line := range cart {
		sub += line.Subtotal()
	}
	tax := (sub*int64(taxPercent) + 50) / 100
	return Totals{
		SubTotal: models.Price(sub),
		Tax:      models.Price(tax),
		Total:    models.Price(sub + tax),
	}
}

// Change is what goes back to the customer. It is negative when received
// does not cover the total.
func (t Totals) Change(received models.Price) models.Price {
	return received - t.Total
}
