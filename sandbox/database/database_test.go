package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ray-remotestate/padipos/models"
)

func seeded(t *testing.T) *DB {
	t.Helper()
	seed, err := LoadSeed("")
	require.NoError(t, err)
	db := New()
	require.NoError(t, db.Apply(seed))
	return db
}

func TestDefaultSeed(t *testing.T) {
	db := seeded(t)

	admin, err := db.GetUserByPassword("admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	_, err = db.GetUserByPassword("ADMIN", "wrong")
	assert.ErrorIs(t, err, ErrNotFound)

	products := db.ListProducts()
	require.Len(t, products, 5)
	assert.Equal(t, models.Price(25000), products[0].Price)
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("products:\n  - name: Tahu\n    price: \"5000\"\n    category: Sushi\n"), 0o600))

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	assert.Error(t, New().Apply(seed))
}

func TestUsernameIsUnique(t *testing.T) {
	db := seeded(t)
	_, err := db.CreateUser("Cashier", "x@padipos.id", "hash", models.RoleCashier)
	assert.ErrorIs(t, err, ErrConflict)
	assert.True(t, db.IsUserExists("CASHIER"))
}

func TestOrderNumbering(t *testing.T) {
	db := New()
	now := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)

	first := db.CreateOrder(models.OrderRecord{CustomerName: "a"}, now)
	second := db.CreateOrder(models.OrderRecord{CustomerName: "b"}, now)
	assert.Equal(t, "ORD-0001", first.OrderNumber)
	assert.Equal(t, "ORD-0002", second.OrderNumber)

	got, err := db.GetOrder("ORD-0002")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	db := seeded(t)
	p := db.ListProducts()[0]

	updated, err := db.UpdateProduct(p.ID, func(p *models.Product) { p.Name = "Renamed" })
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, p.ID, updated.ID)

	require.NoError(t, db.DeleteProduct(p.ID))
	assert.ErrorIs(t, db.DeleteProduct(p.ID), ErrNotFound)
}
