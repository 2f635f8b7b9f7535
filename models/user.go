package models

import (
	"errors"
	"fmt"
	"strings"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleCashier
}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

type User struct {
	ID       ID     `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Picture  string `json:"userPicture,omitempty"`
}

func (u User) Validate() error {
	if u.ID == "" {
		return errors.New("user id is missing")
	}
	if u.Username == "" {
		return fmt.Errorf("user %s: username is missing", u.ID)
	}
	if u.Role != "" && !u.Role.IsValid() {
		return fmt.Errorf("user %s: invalid role %q", u.ID, u.Role)
	}
	return nil
}

// UserForm is the admin create-user form.
type UserForm struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"userRole"`
}

// UserUpdate is the admin edit-user payload. Password is only sent when a new
// one was entered.
type UserUpdate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"userRole"`
	Password string `json:"password,omitempty"`
}

// ProfileForm is the self-service settings form. Empty fields are left
// unchanged.
type ProfileForm struct {
	Username string
	Email    string
	Password string
	Picture  *ImageUpload
}

// Session is the authenticated operator.
type Session struct {
	Token    string
	UserID   ID
	Username string
	Email    string
	Role     Role
	Picture  string
}

func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// Profile is the JSON blob persisted next to the token.
type Profile struct {
	Role     Role   `json:"role,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	UserID   ID     `json:"userId,omitempty"`
	Picture  string `json:"userPicture,omitempty"`
}

func (s Session) Profile() Profile {
	return Profile{
		Role:     s.Role,
		Username: s.Username,
		Email:    s.Email,
		UserID:   s.UserID,
		Picture:  s.Picture,
	}
}
