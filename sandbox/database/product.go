package database

import (
	"slices"

	"github.com/google/uuid"

	"github.com/ray-remotestate/padipos/models"
)

func (db *DB) CreateProduct(p models.Product) models.Product {
	db.mu.Lock()
	defer db.mu.Unlock()
	p.ID = models.ID(uuid.NewString())
	db.products = append(db.products, p)
	return p
}

func (db *DB) ListProducts() []models.Product {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return append(make([]models.Product, 0, len(db.products)), db.products...)
}

func (db *DB) GetProduct(id models.ID) (models.Product, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	i := db.indexOfProduct(id)
	if i < 0 {
		return models.Product{}, ErrNotFound
	}
	return db.products[i], nil
}

// UpdateProduct applies fn to the stored record and keeps its result.
func (db *DB) UpdateProduct(id models.ID, fn func(*models.Product)) (models.Product, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	i := db.indexOfProduct(id)
	if i < 0 {
		return models.Product{}, ErrNotFound
	}
	p := db.products[i]
	fn(&p)
	p.ID = id
	db.products[i] = p
	return p, nil
}

func (db *DB) DeleteProduct(id models.ID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	i := db.indexOfProduct(id)
	if i < 0 {
		return ErrNotFound
	}
	db.products = slices.Delete(db.products, i, i+1)
	return nil
}

func (db *DB) indexOfProduct(id models.ID) int {
	return slices.IndexFunc(db.products, func(p models.Product) bool { return p.ID == id })
}
