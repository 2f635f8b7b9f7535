package database

import (
	_ "embed"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/ray-remotestate/padipos/models"
)

//go:embed seed.yaml
var defaultSeed []byte

type Seed struct {
	Users    []SeedUser    `yaml:"users"`
	Products []SeedProduct `yaml:"products"`
}

type SeedUser struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// SeedProduct takes the price as displayed, e.g. "25.000".
type SeedProduct struct {
	Name     string `yaml:"name"`
	Price    string `yaml:"price"`
	Category string `yaml:"category"`
	Detail   string `yaml:"detail"`
	Image    string `yaml:"image"`
}

// LoadSeed reads a YAML seed file, or the built-in one when path is empty.
func LoadSeed(path string) (*Seed, error) {
	data := defaultSeed
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed: %w", err)
		}
		data = b
	}
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &seed, nil
}

// Apply hashes the seed passwords and stores every record.
func (db *DB) Apply(seed *Seed) error {
	for _, u := range seed.Users {
		role, err := models.ParseRole(u.Role)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := db.CreateUser(u.Username, u.Email, string(hash), role); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}
	for _, p := range seed.Products {
		price, err := models.ParsePrice(p.Price)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.Name, err)
		}
		product := models.Product{
			Name:     p.Name,
			Price:    price,
			Category: models.Category(p.Category),
			Detail:   p.Detail,
			Image:    p.Image,
		}
		if !product.Category.IsValid() {
			return fmt.Errorf("seed product %s: invalid category %q", p.Name, p.Category)
		}
		db.CreateProduct(product)
	}
	return nil
}
