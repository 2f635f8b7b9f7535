package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ray-remotestate/padipos/apiclient"
	"github.com/ray-remotestate/padipos/models"
)

type fakeCart struct {
	lines   []models.CartLine
	cleared int
}

func (c *fakeCart) Cart() []models.CartLine { return c.lines }

func (c *fakeCart) ClearCart() {
	c.cleared++
	c.lines = nil
}

type fakeSessions struct{ sess models.Session }

func (f fakeSessions) Current() models.Session { return f.sess }

type fakeAPI struct {
	err   error
	calls int
	got   models.OrderRequest
	token string
}

func (f *fakeAPI) CreateOrder(_ context.Context, token string, order models.OrderRequest) (*models.OrderRecord, string, error) {
	f.calls++
	f.got = order
	f.token = token
	if f.err != nil {
		return nil, "", f.err
	}
	totals := Totals{SubTotal: 43000, Tax: 4300, Total: 47300}
	return &models.OrderRecord{
		ID:           "o-1",
		OrderNumber:  "ORD-0001",
		CreatedAt:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		CustomerName: order.CustomerName,
		OrderType:    order.OrderType,
		SubTotal:     totals.SubTotal,
		Tax:          totals.Tax,
		Total:        totals.Total,
		Received:     order.ReceivedAmount,
		Change:       totals.Change(order.ReceivedAmount),
	}, "Order created", nil
}

var cashier = models.Session{Token: "tok", Role: models.RoleCashier}

func newFlow(lines ...models.CartLine) (*Flow, *fakeCart, *fakeAPI) {
	cart := &fakeCart{lines: lines}
	api := &fakeAPI{}
	return NewFlow(api, cart, fakeSessions{sess: cashier}, DefaultTaxPercent), cart, api
}

func sampleCart() []models.CartLine {
	return []models.CartLine{
		{ProductID: "1", Name: "Burger", Price: 25000, Quantity: 1},
		{ProductID: "2", Name: "Iced Coffee", Price: 18000, Quantity: 1},
	}
}

func TestFormDefaults(t *testing.T) {
	f, _, _ := newFlow()
	assert.Equal(t, models.OrderTypeDineIn, f.Form().OrderType)
	assert.Error(t, f.SetOrderType("Delivery"))
	require.NoError(t, f.SetOrderType(models.OrderTypeTakeAway))
	assert.Equal(t, models.OrderTypeTakeAway, f.Form().OrderType)
}

func TestBeginPreconditions(t *testing.T) {
	f, _, _ := newFlow()
	f.SetCustomerName("Budi")
	_, err := f.Begin()
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "cart", verr.Field)

	f, _, _ = newFlow(sampleCart()...)
	_, err = f.Begin()
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "customerName", verr.Field)

	f.SetCustomerName("Budi")
	totals, err := f.Begin()
	require.NoError(t, err)
	assert.Equal(t, models.Price(47300), totals.Total)
}

func TestPayRejectsShortPaymentWithoutCall(t *testing.T) {
	f, cart, api := newFlow(sampleCart()...)
	f.SetCustomerName("Budi")

	_, _, err := f.Pay(context.Background(), 47299)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "receivedAmount", verr.Field)
	assert.Equal(t, 0, api.calls)
	assert.Len(t, cart.lines, 2)
}

func TestPaySubmitsAndResets(t *testing.T) {
	f, cart, api := newFlow(sampleCart()...)
	f.SetCustomerName(" Budi ")
	f.SetDetail("Table 4")
	require.NoError(t, f.SetOrderType(models.OrderTypeTakeAway))

	rec, msg, err := f.Pay(context.Background(), 50000)
	require.NoError(t, err)
	assert.Equal(t, "Order created", msg)
	assert.Equal(t, models.Price(2700), rec.Change)

	assert.Equal(t, "tok", api.token)
	assert.Equal(t, models.OrderRequest{
		CustomerName: "Budi",
		OrderType:    models.OrderTypeTakeAway,
		Detail:       "Table 4",
		Items: []models.OrderItemRequest{
			{ProductID: "1", Quantity: 1},
			{ProductID: "2", Quantity: 1},
		},
		ReceivedAmount: 50000,
	}, api.got)

	assert.Equal(t, 1, cart.cleared)
	assert.Equal(t, Form{OrderType: models.OrderTypeDineIn}, f.Form())
}

func TestPayFailureKeepsCartAndForm(t *testing.T) {
	f, cart, api := newFlow(sampleCart()...)
	api.err = &apiclient.APIError{StatusCode: 400, Message: "Product not found"}
	f.SetCustomerName("Budi")
	f.SetDetail("Table 4")

	_, _, err := f.Pay(context.Background(), 50000)
	require.Error(t, err)
	assert.Equal(t, "Product not found", apiclient.Message(err))
	assert.Equal(t, 0, cart.cleared)
	assert.Len(t, cart.lines, 2)
	assert.Equal(t, "Budi", f.Form().CustomerName)
	assert.Equal(t, "Table 4", f.Form().Detail)
}

func TestPayRequiresSession(t *testing.T) {
	cart := &fakeCart{lines: sampleCart()}
	api := &fakeAPI{}
	f := NewFlow(api, cart, fakeSessions{}, DefaultTaxPercent)
	f.SetCustomerName("Budi")

	_, _, err := f.Pay(context.Background(), 50000)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
	assert.Equal(t, 0, api.calls)
}
