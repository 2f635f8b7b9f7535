package checkout

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/padipos/models"
)

type API interface {
	CreateOrder(ctx context.Context, token string, order models.OrderRequest) (*models.OrderRecord, string, error)
}

// Cart is the part of the catalog store checkout reads and clears.
type Cart interface {
	Cart() []models.CartLine
	ClearCart()
}

type SessionSource interface {
	Current() models.Session
}

// Form is the transient order form filled in before payment.
type Form struct {
	CustomerName string
	OrderType    models.OrderType
	Detail       string
}

func emptyForm() Form {
	return Form{OrderType: models.OrderTypeDineIn}
}

// Flow drives one register's checkout: the order form, the payment prompt
// and submission. The cart and form are only reset once the backend has
// accepted the order.
type Flow struct {
	api        API
	cart       Cart
	sessions   SessionSource
	taxPercent int

	mu   sync.Mutex
	form Form
}

func NewFlow(api API, cart Cart, sessions SessionSource, taxPercent int) *Flow {
	return &Flow{
		api:        api,
		cart:       cart,
		sessions:   sessions,
		taxPercent: taxPercent,
		form:       emptyForm(),
	}
}

func (f *Flow) Form() Form {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form
}

func (f *Flow) SetCustomerName(name string) {
	f.mu.Lock()
	f.form.CustomerName = name
	f.mu.Unlock()
}

func (f *Flow) SetOrderType(t models.OrderType) error {
	if !t.IsValid() {
		return models.Invalid("orderType", "must be Dine In or Take Away")
	}
	f.mu.Lock()
	f.form.OrderType = t
	f.mu.Unlock()
	return nil
}

func (f *Flow) SetDetail(detail string) {
	f.mu.Lock()
	f.form.Detail = detail
	f.mu.Unlock()
}

// Reset restores the form defaults.
func (f *Flow) Reset() {
	f.mu.Lock()
	f.form = emptyForm()
	f.mu.Unlock()
}

// Totals summarizes the current cart.
func (f *Flow) Totals() Totals {
	return Compute(f.cart.Cart(), f.taxPercent)
}

// Begin opens the payment prompt. It fails when the cart is empty or the
// customer name is missing.
func (f *Flow) Begin() (Totals, error) {
	cart := f.cart.Cart()
	if len(cart) == 0 {
		return Totals{}, models.Invalid("cart", "is empty")
	}
	if strings.TrimSpace(f.Form().CustomerName) == "" {
		return Totals{}, models.Invalid("customerName", "is required")
	}
	return Compute(cart, f.taxPercent), nil
}

// Pay submits the order with the amount the customer handed over and
// returns the backend's canonical record and message.
func (f *Flow) Pay(ctx context.Context, received models.Price) (*models.OrderRecord, string, error) {
	sess := f.sessions.Current()
	if !sess.IsAuthenticated() {
		return nil, "", models.ErrUnauthenticated
	}

	cart := f.cart.Cart()
	form := f.Form()
	if len(cart) == 0 {
		return nil, "", models.Invalid("cart", "is empty")
	}
	if strings.TrimSpace(form.CustomerName) == "" {
		return nil, "", models.Invalid("customerName", "is required")
	}
	totals := Compute(cart, f.taxPercent)
	if received < totals.Total {
		return nil, "", models.Invalid("receivedAmount", "is less than the total "+totals.Total.String())
	}

	order := models.OrderRequest{
		CustomerName:   strings.TrimSpace(form.CustomerName),
		OrderType:      form.OrderType,
		Detail:         strings.TrimSpace(form.Detail),
		Items:          make([]models.OrderItemRequest, 0, len(cart)),
		ReceivedAmount: received,
	}
	for _, line := range cart {
		order.Items = append(order.Items, models.OrderItemRequest{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	rec, msg, err := f.api.CreateOrder(ctx, sess.Token, order)
	if err != nil {
		logrus.WithError(err).WithField("customer", order.CustomerName).Error("failed to create order")
		return nil, "", err
	}

	logrus.WithFields(logrus.Fields{
		"order":    rec.Number(),
		"total":    int64(rec.Total),
		"received": int64(received),
	}).Info("order placed")
	f.cart.ClearCart()
	f.Reset()
	return rec, msg, nil
}
