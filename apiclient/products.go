package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ray-remotestate/padipos/models"
)

func (c *Client) GetProducts(ctx context.Context, token string) ([]models.Product, error) {
	return decodeList[models.Product](ctx, c, request{method: http.MethodGet, path: "/api/product/get-products", token: token})
}

// CreateProduct uploads a new menu item and returns the canonical record.
func (c *Client) CreateProduct(ctx context.Context, token string, form models.ProductForm) (*models.Product, string, error) {
	fields := []formField{
		{"name", form.Name},
		{"price", strconv.FormatInt(int64(form.Price), 10)},
		{"category", string(form.Category)},
		{"detail", form.Detail},
	}
	req, err := multipartRequest(http.MethodPost, "/api/product/create", token, fields, "image", form.Image)
	if err != nil {
		return nil, "", err
	}

	var product models.Product
	msg, err := c.do(ctx, req, &product)
	if err != nil {
		return nil, "", err
	}
	return &product, msg, nil
}

// EditProduct sends only the fields present in patch.
func (c *Client) EditProduct(ctx context.Context, token string, id models.ID, patch models.ProductPatch) (*models.Product, string, error) {
	var fields []formField
	if patch.Name != nil {
		fields = append(fields, formField{"name", *patch.Name})
	}
	if patch.Price != nil {
		fields = append(fields, formField{"price", strconv.FormatInt(int64(*patch.Price), 10)})
	}
	if patch.Category != nil {
		fields = append(fields, formField{"category", string(*patch.Category)})
	}
	if patch.Detail != nil {
		fields = append(fields, formField{"detail", *patch.Detail})
	}

	req, err := multipartRequest(http.MethodPatch, "/api/product/edit-product/"+url.PathEscape(id.String()), token, fields, "image", patch.Image)
	if err != nil {
		return nil, "", err
	}

	var product models.Product
	msg, err := c.do(ctx, req, &product)
	if err != nil {
		return nil, "", err
	}
	return &product, msg, nil
}

func (c *Client) DeleteProduct(ctx context.Context, token string, id models.ID) (string, error) {
	return c.do(ctx, request{method: http.MethodDelete, path: "/api/product/delete/" + url.PathEscape(id.String()), token: token}, nil)
}
