package users

import (
	"context"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ray-remotestate/padipos/models"
)

type fakeGuard struct{ sess models.Session }

func (g fakeGuard) Require(roles ...models.Role) (models.Session, error) {
	if !g.sess.IsAuthenticated() {
		return g.sess, models.ErrUnauthenticated
	}
	for _, r := range roles {
		if r == g.sess.Role {
			return g.sess, nil
		}
	}
	if len(roles) == 0 {
		return g.sess, nil
	}
	return g.sess, models.ErrForbidden
}

type fakeAPI struct {
	users   []models.User
	calls   int
	created models.UserForm
	updated models.UserUpdate
}

func (f *fakeAPI) ListUsers(context.Context, string) ([]models.User, error) {
	f.calls++
	return f.users, nil
}

func (f *fakeAPI) GetUser(_ context.Context, _ string, id models.ID) (*models.User, error) {
	f.calls++
	return &models.User{ID: id, Username: "x"}, nil
}

func (f *fakeAPI) CreateUser(_ context.Context, _ string, form models.UserForm) (*models.User, error) {
	f.calls++
	f.created = form
	return &models.User{ID: "9", Username: form.Username, Email: form.Email, Role: form.Role}, nil
}

func (f *fakeAPI) UpdateUser(_ context.Context, _ string, id models.ID, u models.UserUpdate) (*models.User, error) {
	f.calls++
	f.updated = u
	return &models.User{ID: id, Username: u.Username, Email: u.Email, Role: u.Role}, nil
}

func (f *fakeAPI) DeleteUser(context.Context, string, models.ID) (string, error) {
	f.calls++
	return "User deleted", nil
}

var (
	admin   = models.Session{Token: "a", Role: models.RoleAdmin}
	cashier = models.Session{Token: "c", Role: models.RoleCashier}
)

func TestCashierIsForbidden(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api, fakeGuard{sess: cashier})

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, models.ErrForbidden)
	_, err = svc.Delete(context.Background(), "1")
	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.Equal(t, 0, api.calls)
}

func TestCreateValidatesEverything(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api, fakeGuard{sess: admin})

	_, err := svc.Create(context.Background(), models.UserForm{Email: "nope", Password: "123", Role: "chef"})
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 4)
	assert.Equal(t, 0, api.calls)
}

func TestCreateNormalizesRole(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api, fakeGuard{sess: admin})

	user, err := svc.Create(context.Background(), models.UserForm{
		Username: " dewi ",
		Email:    "dewi@padi.id",
		Password: "secret1",
		Role:     "Cashier",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCashier, api.created.Role)
	assert.Equal(t, "dewi", user.Username)
}

func TestUpdatePasswordOptional(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api, fakeGuard{sess: admin})

	_, err := svc.Update(context.Background(), "2", models.UserUpdate{Username: "dewi", Email: "dewi@padi.id", Role: "ADMIN"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, api.updated.Role)
	assert.Empty(t, api.updated.Password)

	_, err = svc.Update(context.Background(), "2", models.UserUpdate{Username: "dewi", Email: "dewi@padi.id", Role: "admin", Password: "123"})
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 1)
}

func TestFilter(t *testing.T) {
	all := []models.User{
		{ID: "1", Username: "admin", Email: "admin@padi.id", Role: models.RoleAdmin},
		{ID: "2", Username: "Sari", Email: "sari@padi.id", Role: models.RoleCashier},
		{ID: "3", Username: "budi", Email: "budi@mail.com", Role: models.RoleCashier},
	}

	assert.Len(t, Filter(all, "", "", ""), 3)
	got := Filter(all, "SAR", "", "")
	require.Len(t, got, 1)
	assert.Equal(t, models.ID("2"), got[0].ID)
	assert.Len(t, Filter(all, "", "padi", "cashier"), 1)
	assert.Empty(t, Filter(all, "zzz", "", ""))
}
