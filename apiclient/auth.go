package apiclient

import (
	"context"
	"errors"
	"net/http"

	"github.com/ray-remotestate/padipos/models"
)

// LoginResult is the data block of a successful login.
type LoginResult struct {
	Token    string      `json:"token"`
	ID       models.ID   `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
	Picture  string      `json:"userPicture"`
}

func (r LoginResult) Validate() error {
	if r.Token == "" {
		return errors.New("token is missing")
	}
	if !r.Role.IsValid() {
		return errors.New("role is missing or unknown")
	}
	return nil
}

func (r LoginResult) Session() models.Session {
	return models.Session{
		Token:    r.Token,
		UserID:   r.ID,
		Username: r.Username,
		Email:    r.Email,
		Role:     r.Role,
		Picture:  r.Picture,
	}
}

// Login exchanges credentials for a token and profile. The returned message
// is the backend's greeting.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, string, error) {
	req, err := jsonRequest(http.MethodPost, "/api/user/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, "", err
	}

	var res LoginResult
	msg, err := c.do(ctx, req, &res)
	if err != nil {
		return nil, "", err
	}
	return &res, msg, nil
}

// UpdateProfile edits the caller's own profile. Only non-empty form fields
// are sent.
func (c *Client) UpdateProfile(ctx context.Context, token string, form models.ProfileForm) (*models.User, error) {
	var fields []formField
	if form.Username != "" {
		fields = append(fields, formField{"username", form.Username})
	}
	if form.Email != "" {
		fields = append(fields, formField{"email", form.Email})
	}
	if form.Password != "" {
		fields = append(fields, formField{"password", form.Password})
	}

	req, err := multipartRequest(http.MethodPatch, "/api/user/edit/profile", token, fields, "userPicture", form.Picture)
	if err != nil {
		return nil, err
	}

	var user models.User
	if _, err := c.do(ctx, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) RemoveProfilePicture(ctx context.Context, token string) (string, error) {
	return c.do(ctx, request{method: http.MethodDelete, path: "/api/user/remove/profile-pic", token: token}, nil)
}
