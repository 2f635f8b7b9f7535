package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ray-remotestate/padipos/models"
)

func (c *Client) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	return decodeList[models.User](ctx, c, request{method: http.MethodGet, path: "/api/user/get-users", token: token})
}

func (c *Client) GetUser(ctx context.Context, token string, id models.ID) (*models.User, error) {
	var user models.User
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/api/user/get-user/" + url.PathEscape(id.String()), token: token}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateUser(ctx context.Context, token string, form models.UserForm) (*models.User, error) {
	req, err := jsonRequest(http.MethodPost, "/api/user/create", token, form)
	if err != nil {
		return nil, err
	}
	var user models.User
	if _, err := c.do(ctx, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, token string, id models.ID, update models.UserUpdate) (*models.User, error) {
	req, err := jsonRequest(http.MethodPatch, "/api/user/update/"+url.PathEscape(id.String()), token, update)
	if err != nil {
		return nil, err
	}
	var user models.User
	if _, err := c.do(ctx, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, token string, id models.ID) (string, error) {
	return c.do(ctx, request{method: http.MethodDelete, path: "/api/user/delete/" + url.PathEscape(id.String()), token: token}, nil)
}
