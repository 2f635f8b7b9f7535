package models

// CartLine is one product in an in-progress order. Price is captured when the
// line is first inserted and is never re-derived from the product afterwards.
type CartLine struct {
	ProductID ID       `json:"productId"`
	Name      string   `json:"name"`
	Image     string   `json:"image,omitempty"`
	Category  Category `json:"category"`
	Price     Price    `json:"price"`
	Quantity  int      `json:"quantity"`
}

func (l CartLine) Subtotal() int64 {
	return int64(l.Price) * int64(l.Quantity)
}
