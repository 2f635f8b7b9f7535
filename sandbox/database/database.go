// Package database is the sandbox backend's in-memory store. All methods are
// safe for concurrent use and return copies, never internal references.
package database

import (
	"errors"
	"sync"

	"github.com/ray-remotestate/padipos/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// UserRow is a stored account. Password holds the bcrypt hash.
type UserRow struct {
	models.User
	Password string
}

// Upload is a stored image blob served under /uploads.
type Upload struct {
	ContentType string
	Data        []byte
}

type DB struct {
	mu       sync.RWMutex
	users    []UserRow
	products []models.Product
	orders   []models.OrderRecord
	uploads  map[string]Upload
	orderSeq int
}

func New() *DB {
	return &DB{uploads: make(map[string]Upload)}
}

func (db *DB) SaveUpload(name string, u Upload) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.uploads[name] = u
}

func (db *DB) GetUpload(name string) (Upload, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	u, ok := db.uploads[name]
	if !ok {
		return Upload{}, ErrNotFound
	}
	return u, nil
}
