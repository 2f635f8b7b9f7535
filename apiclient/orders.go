package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ray-remotestate/padipos/models"
)

func (c *Client) CreateOrder(ctx context.Context, token string, order models.OrderRequest) (*models.OrderRecord, string, error) {
	req, err := jsonRequest(http.MethodPost, "/api/order/create", token, order)
	if err != nil {
		return nil, "", err
	}
	var rec models.OrderRecord
	msg, err := c.do(ctx, req, &rec)
	if err != nil {
		return nil, "", err
	}
	return &rec, msg, nil
}

func (c *Client) GetOrders(ctx context.Context, token string) ([]models.OrderRecord, error) {
	return decodeList[models.OrderRecord](ctx, c, request{method: http.MethodGet, path: "/api/order/get-all-orders", token: token})
}

func (c *Client) GetOrder(ctx context.Context, token string, id models.ID) (*models.OrderRecord, error) {
	var rec models.OrderRecord
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/api/order/get-id-order/" + url.PathEscape(id.String()), token: token}, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
