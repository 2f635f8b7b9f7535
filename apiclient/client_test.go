package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ray-remotestate/padipos/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	return c
}

func writeEnvelope(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"message": message, "data": data})
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestGetProducts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/product/get-products", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"message":"ok","data":[
			{"id":7,"name":"Cheeseburger","price":"25.000","image":"/uploads/a.png","category":"Foods"},
			{"id":"b2","name":"Iced Coffee","price":18000,"image":"","category":"Beverages","detail":"cold"}
		]}`)
	})

	products, err := c.GetProducts(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, models.ID("7"), products[0].ID)
	assert.Equal(t, models.Price(25000), products[0].Price)
	assert.Equal(t, models.Price(18000), products[1].Price)
	assert.Equal(t, "cold", products[1].Detail)
}

func TestGetProductsNullDataIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "ok", nil)
	})

	products, err := c.GetProducts(context.Background(), "tok")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestGetProductsRejectsUnknownCategory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":[{"id":1,"name":"Soup","price":1,"category":"Soups"}]}`)
	})

	_, err := c.GetProducts(context.Background(), "tok")
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, "data", decErr.Field)
}

func TestGetProductsRejectsMalformedPrice(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":[{"id":1,"name":"Soup","price":"free","category":"Foods"}]}`)
	})

	_, err := c.GetProducts(context.Background(), "tok")
	var decErr *DecodeError
	assert.ErrorAs(t, err, &decErr)
}

func TestAPIErrorCarriesBackendMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, "Produk sudah ada", map[string]string{"name": "duplicate"})
	})

	_, _, err := c.CreateProduct(context.Background(), "tok", models.ProductForm{Name: "X"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Produk sudah ada", apiErr.Message)
	assert.JSONEq(t, `{"name":"duplicate"}`, apiErr.Data)
	assert.Equal(t, "Produk sudah ada", Message(err))
}

func TestAPIErrorNonJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "upstream down")
	})

	_, err := c.GetProducts(context.Background(), "tok")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "upstream down", apiErr.Message)
}

func TestIsUnauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, "token expired", nil)
	})

	_, err := c.GetOrders(context.Background(), "stale")
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsUnauthorized(errors.New("boom")))
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "fachrul", body["username"])
		assert.Equal(t, "secret", body["password"])

		writeEnvelope(w, http.StatusOK, "Login berhasil", map[string]any{
			"token": "jwt", "id": 2, "username": "fachrul", "email": "f@example.com",
			"role": "cashier", "userPicture": "/uploads/f.png",
		})
	})

	res, msg, err := c.Login(context.Background(), "fachrul", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Login berhasil", msg)

	sess := res.Session()
	assert.Equal(t, "jwt", sess.Token)
	assert.Equal(t, models.ID("2"), sess.UserID)
	assert.Equal(t, models.RoleCashier, sess.Role)
	assert.Equal(t, "/uploads/f.png", sess.Picture)
}

func TestLoginWithoutTokenIsDecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "ok", map[string]any{"role": "admin"})
	})

	_, _, err := c.Login(context.Background(), "a", "b")
	var decErr *DecodeError
	assert.ErrorAs(t, err, &decErr)
}

func TestEditProductSendsOnlyPatchedFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/product/edit-product/7", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, map[string][]string{"name": {"Double Cheeseburger"}}, r.MultipartForm.Value)
		assert.Empty(t, r.MultipartForm.File)

		writeEnvelope(w, http.StatusOK, "Produk diperbarui", map[string]any{
			"id": 7, "name": "Double Cheeseburger", "price": 25000, "category": "Foods",
		})
	})

	name := "Double Cheeseburger"
	product, msg, err := c.EditProduct(context.Background(), "tok", "7", models.ProductPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Produk diperbarui", msg)
	assert.Equal(t, name, product.Name)
}

func TestCreateProductUploadsImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Es Teh", r.FormValue("name"))
		assert.Equal(t, "5000", r.FormValue("price"))
		assert.Equal(t, "Beverages", r.FormValue("category"))

		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "teh.png", hdr.Filename)
		assert.Equal(t, []byte("png-bytes"), data)

		writeEnvelope(w, http.StatusCreated, "created", map[string]any{
			"id": "p1", "name": "Es Teh", "price": 5000, "category": "Beverages", "image": "/uploads/teh.png",
		})
	})

	product, _, err := c.CreateProduct(context.Background(), "tok", models.ProductForm{
		Name:     "Es Teh",
		Price:    5000,
		Category: models.CategoryBeverages,
		Detail:   "manis",
		Image:    &models.ImageUpload{Filename: "teh.png", ContentType: "image/png", Data: []byte("png-bytes")},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ID("p1"), product.ID)
}

func TestCreateOrderPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{
			"customerName":"Budi","orderType":"Dine In","detail":"Table 4",
			"items":[{"productId":"7","quantity":2}],"receivedAmount":60000
		}`, string(body))

		writeEnvelope(w, http.StatusCreated, "Order dibuat", map[string]any{
			"id": "o1", "orderNumber": "ORD-0001", "createdAt": "2025-08-17T10:00:00Z",
			"customerName": "Budi", "orderType": "Dine In",
			"items":    []map[string]any{{"productId": "7", "name": "Cheeseburger", "category": "Foods", "price": 25000, "quantity": 2}},
			"subTotal": 50000, "tax": 5000, "total": 55000, "received": 60000, "change": 5000,
		})
	})

	rec, msg, err := c.CreateOrder(context.Background(), "tok", models.OrderRequest{
		CustomerName:   "Budi",
		OrderType:      models.OrderTypeDineIn,
		Detail:         "Table 4",
		Items:          []models.OrderItemRequest{{ProductID: "7", Quantity: 2}},
		ReceivedAmount: 60000,
	})
	require.NoError(t, err)
	assert.Equal(t, "Order dibuat", msg)
	assert.Equal(t, "ORD-0001", rec.Number())
	assert.Equal(t, models.Price(5000), rec.Change)
}

func TestGetDailyOmzetQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025-08-01", r.URL.Query().Get("startDate"))
		assert.Equal(t, "2025-08-31", r.URL.Query().Get("endDate"))
		writeEnvelope(w, http.StatusOK, "ok", []map[string]any{
			{"date": "2025-08-01", "foods": 1000, "beverages": 2000, "dessert": 300},
		})
	})

	start, _ := models.ParseDay("2025-08-01")
	end, _ := models.ParseDay("2025-08-31")
	days, err := c.GetDailyOmzet(context.Background(), "tok", start, end)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, models.Price(3300), days[0].Total())
	assert.Equal(t, "2025-08-01", days[0].Date.String())
}

func TestUpdateUserOmitsEmptyPassword(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"username":"budi","email":"b@example.com","userRole":"admin"}`, string(body))
		writeEnvelope(w, http.StatusOK, "ok", map[string]any{"id": 3, "username": "budi", "role": "admin"})
	})

	user, err := c.UpdateUser(context.Background(), "tok", "3", models.UserUpdate{
		Username: "budi", Email: "b@example.com", Role: models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}
