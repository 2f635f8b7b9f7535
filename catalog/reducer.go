// Package catalog holds the register's product list, cart and filter state.
// State only changes through Reduce, so every transition is an explicit
// Action applied in dispatch order.
package catalog

import (
	"slices"

	"github.com/ray-remotestate/padipos/models"
)

type State struct {
	Products []models.Product
	Cart     []models.CartLine
	Loading  bool
	Err      string
	Search   string
	Category models.Category
}

func InitialState() State {
	return State{
		Loading:  true,
		Category: models.CategoryAll,
	}
}

// Action is a state transition. The set is closed to this package.
type Action interface {
	action()
}

type (
	SetProducts    struct{ Products []models.Product }
	SetLoading     struct{ Loading bool }
	SetError       struct{ Err string }
	SetSearch      struct{ Search string }
	SetCategory    struct{ Category models.Category }
	AddToCart      struct{ Product models.Product }
	UpdateQuantity struct {
		ProductID models.ID
		Delta     int
	}
	ClearCart      struct{}
	AddMenuItem    struct{ Product models.Product }
	EditMenuItem   struct{ Product models.Product }
	DeleteMenuItem struct{ ProductID models.ID }
)

func (SetProducts) action()    {}
func (SetLoading) action()     {}
func (SetError) action()       {}
func (SetSearch) action()      {}
func (SetCategory) action()    {}
func (AddToCart) action()      {}
func (UpdateQuantity) action() {}
func (ClearCart) action()      {}
func (AddMenuItem) action()    {}
func (EditMenuItem) action()   {}
func (DeleteMenuItem) action() {}

// Reduce returns the state after applying a. The input state is never
// modified; slices are copied before they change.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetProducts:
		s.Products = slices.Clone(a.Products)
		s.Loading = false
		s.Err = ""
	case SetLoading:
		s.Loading = a.Loading
	case SetError:
		s.Err = a.Err
		s.Loading = false
	case SetSearch:
		s.Search = a.Search
	case SetCategory:
		s.Category = a.Category
	case AddToCart:
		s.Cart = addToCart(s.Cart, a.Product)
	case UpdateQuantity:
		s.Cart = updateQuantity(s.Cart, a.ProductID, a.Delta)
	case ClearCart:
		s.Cart = nil
	case AddMenuItem:
		s.Products = append(slices.Clip(s.Products), a.Product)
	case EditMenuItem:
		products := slices.Clone(s.Products)
		for i := range products {
			if products[i].ID == a.Product.ID {
				products[i] = a.Product
			}
		}
		s.Products = products
	case DeleteMenuItem:
		s.Products = slices.DeleteFunc(slices.Clone(s.Products), func(p models.Product) bool {
			return p.ID == a.ProductID
		})
	}
	return s
}

func addToCart(cart []models.CartLine, p models.Product) []models.CartLine {
	out := slices.Clone(cart)
	for i := range out {
		if out[i].ProductID == p.ID {
			out[i].Quantity++
			return out
		}
	}
	return append(out, models.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Image:     p.Image,
		Category:  p.Category,
		Price:     p.Price,
		Quantity:  1,
	})
}

func updateQuantity(cart []models.CartLine, id models.ID, delta int) []models.CartLine {
	out := make([]models.CartLine, 0, len(cart))
	for _, line := range cart {
		if line.ProductID == id {
			line.Quantity = max(line.Quantity+delta, 0)
		}
		if line.Quantity > 0 {
			out = append(out, line)
		}
	}
	return out
}
