package database

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/ray-remotestate/padipos/models"
)

// CreateOrder assigns the id, sequential order number and timestamp.
func (db *DB) CreateOrder(o models.OrderRecord, now time.Time) models.OrderRecord {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.orderSeq++
	o.ID = models.ID(uuid.NewString())
	o.OrderNumber = fmt.Sprintf("ORD-%04d", db.orderSeq)
	o.CreatedAt = now
	o.Items = slices.Clone(o.Items)
	db.orders = append(db.orders, o)
	return o
}

func (db *DB) ListOrders() []models.OrderRecord {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return append(make([]models.OrderRecord, 0, len(db.orders)), db.orders...)
}

// GetOrder looks an order up by id or by order number.
func (db *DB) GetOrder(ref models.ID) (models.OrderRecord, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, o := range db.orders {
		if o.ID == ref || o.OrderNumber == string(ref) {
			return o, nil
		}
	}
	return models.OrderRecord{}, ErrNotFound
}
