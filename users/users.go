// Package users is the admin user-management screen's logic.
package users

import (
	"context"
	"net/mail"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/padipos/models"
)

const minPasswordLen = 6

type API interface {
	ListUsers(ctx context.Context, token string) ([]models.User, error)
	GetUser(ctx context.Context, token string, id models.ID) (*models.User, error)
	CreateUser(ctx context.Context, token string, form models.UserForm) (*models.User, error)
	UpdateUser(ctx context.Context, token string, id models.ID, update models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, token string, id models.ID) (string, error)
}

// Guard authorizes the caller, see session.Store.Require.
type Guard interface {
	Require(roles ...models.Role) (models.Session, error)
}

type Service struct {
	api   API
	guard Guard
}

func NewService(api API, guard Guard) *Service {
	return &Service{api: api, guard: guard}
}

func (s *Service) token() (string, error) {
	sess, err := s.guard.Require(models.RoleAdmin)
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}

func (s *Service) List(ctx context.Context) ([]models.User, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	users, err := s.api.ListUsers(ctx, token)
	if err != nil {
		logrus.WithError(err).Error("failed to list users")
		return nil, err
	}
	return users, nil
}

func (s *Service) Get(ctx context.Context, id models.ID) (*models.User, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.api.GetUser(ctx, token, id)
}

func (s *Service) Create(ctx context.Context, form models.UserForm) (*models.User, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)
	form.Role = models.Role(strings.ToLower(string(form.Role)))
	if err := ValidateForm(form); err != nil {
		return nil, err
	}

	user, err := s.api.CreateUser(ctx, token, form)
	if err != nil {
		logrus.WithError(err).WithField("username", form.Username).Error("failed to create user")
		return nil, err
	}
	return user, nil
}

// Update edits a user. The password is only sent when a new one was entered.
func (s *Service) Update(ctx context.Context, id models.ID, update models.UserUpdate) (*models.User, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	update.Username = strings.TrimSpace(update.Username)
	update.Email = strings.TrimSpace(update.Email)
	update.Role = models.Role(strings.ToLower(string(update.Role)))
	if err := validateUpdate(update); err != nil {
		return nil, err
	}

	user, err := s.api.UpdateUser(ctx, token, id, update)
	if err != nil {
		logrus.WithError(err).WithField("user_id", id).Error("failed to update user")
		return nil, err
	}
	return user, nil
}

func (s *Service) Delete(ctx context.Context, id models.ID) (string, error) {
	token, err := s.token()
	if err != nil {
		return "", err
	}
	msg, err := s.api.DeleteUser(ctx, token, id)
	if err != nil {
		logrus.WithError(err).WithField("user_id", id).Error("failed to delete user")
		return "", err
	}
	return msg, nil
}

// ValidateForm checks the create-user form and reports every problem at once.
func ValidateForm(form models.UserForm) error {
	var result *multierror.Error
	if form.Username == "" {
		result = multierror.Append(result, models.Invalid("username", "is required"))
	}
	if err := checkEmail(form.Email); err != nil {
		result = multierror.Append(result, err)
	}
	if len(form.Password) < minPasswordLen {
		result = multierror.Append(result, models.Invalid("password", "must be at least 6 characters"))
	}
	if !form.Role.IsValid() {
		result = multierror.Append(result, models.Invalid("role", "must be admin or cashier"))
	}
	return result.ErrorOrNil()
}

func validateUpdate(u models.UserUpdate) error {
	var result *multierror.Error
	if u.Username == "" {
		result = multierror.Append(result, models.Invalid("username", "is required"))
	}
	if err := checkEmail(u.Email); err != nil {
		result = multierror.Append(result, err)
	}
	if u.Password != "" && len(u.Password) < minPasswordLen {
		result = multierror.Append(result, models.Invalid("password", "must be at least 6 characters"))
	}
	if !u.Role.IsValid() {
		result = multierror.Append(result, models.Invalid("role", "must be admin or cashier"))
	}
	return result.ErrorOrNil()
}

func checkEmail(email string) error {
	if email == "" {
		return models.Invalid("email", "is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return models.Invalid("email", "is not a valid address")
	}
	return nil
}

// Filter keeps the users whose username, email and role contain the given
// terms, case-insensitively. Empty terms match everything.
func Filter(users []models.User, username, email, role string) []models.User {
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if contains(u.Username, username) && contains(u.Email, email) && contains(string(u.Role), role) {
			out = append(out, u)
		}
	}
	return out
}

func contains(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(term)))
}
