package database

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ray-remotestate/padipos/models"
)

// CreateUser stores a new account under a fresh id. Usernames are unique,
// case-insensitively.
func (db *DB) CreateUser(username, email, hashedPassword string, role models.Role) (models.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.indexOfUsername(username) >= 0 {
		return models.User{}, ErrConflict
	}
	user := models.User{
		ID:       models.ID(uuid.NewString()),
		Username: username,
		Email:    email,
		Role:     role,
	}
	db.users = append(db.users, UserRow{User: user, Password: hashedPassword})
	return user, nil
}

func (db *DB) IsUserExists(username string) bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.indexOfUsername(username) >= 0
}

// GetUserByPassword returns the account when username and password match.
func (db *DB) GetUserByPassword(username, password string) (models.User, error) {
	db.mu.RLock()
	i := db.indexOfUsername(username)
	var row UserRow
	if i >= 0 {
		row = db.users[i]
	}
	db.mu.RUnlock()

	if i < 0 {
		return models.User{}, ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(row.Password), []byte(password)); err != nil {
		return models.User{}, ErrNotFound
	}
	return row.User, nil
}

func (db *DB) GetUser(id models.ID) (models.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	i := db.indexOfUser(id)
	if i < 0 {
		return models.User{}, ErrNotFound
	}
	return db.users[i].User, nil
}

func (db *DB) ListUsers() []models.User {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]models.User, len(db.users))
	for i, row := range db.users {
		out[i] = row.User
	}
	return out
}

// UserChanges are applied to a stored user; empty fields are left as is.
type UserChanges struct {
	Username       string
	Email          string
	Role           models.Role
	HashedPassword string
	Picture        *string
}

func (db *DB) UpdateUser(id models.ID, c UserChanges) (models.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.indexOfUser(id)
	if i < 0 {
		return models.User{}, ErrNotFound
	}
	if c.Username != "" {
		if j := db.indexOfUsername(c.Username); j >= 0 && j != i {
			return models.User{}, ErrConflict
		}
		db.users[i].Username = c.Username
	}
	if c.Email != "" {
		db.users[i].Email = c.Email
	}
	if c.Role != "" {
		db.users[i].Role = c.Role
	}
	if c.HashedPassword != "" {
		db.users[i].Password = c.HashedPassword
	}
	if c.Picture != nil {
		db.users[i].Picture = *c.Picture
	}
	return db.users[i].User, nil
}

func (db *DB) DeleteUser(id models.ID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	i := db.indexOfUser(id)
	if i < 0 {
		return ErrNotFound
	}
	db.users = slices.Delete(db.users, i, i+1)
	return nil
}

func (db *DB) indexOfUser(id models.ID) int {
	return slices.IndexFunc(db.users, func(row UserRow) bool { return row.ID == id })
}

func (db *DB) indexOfUsername(username string) int {
	return slices.IndexFunc(db.users, func(row UserRow) bool { return strings.EqualFold(row.Username, username) })
}
