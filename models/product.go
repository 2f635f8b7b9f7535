package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Category string

const (
	CategoryFoods     Category = "Foods"
	CategoryBeverages Category = "Beverages"
	CategoryDessert   Category = "Dessert"

	// CategoryAll is the catalog filter sentinel, never a product category.
	CategoryAll Category = "All Menu"
)

// Categories lists the catalog filter options in display order.
var Categories = []Category{CategoryAll, CategoryFoods, CategoryBeverages, CategoryDessert}

func (c Category) IsValid() bool {
	return c == CategoryFoods || c == CategoryBeverages || c == CategoryDessert
}

// ParseCategory matches a category name case-insensitively, including the
// "all" sentinel.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	if strings.EqualFold(s, "all") {
		return CategoryAll, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// ID is a backend record identifier. The backend is not consistent about
// sending ids as strings or numbers, so both are accepted.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Price is an amount in whole currency units (Rupiah).
type Price int64

var errEmptyPrice = errors.New("empty price")

// ParsePrice normalizes a displayed price such as "25.000", "25,000" or
// "Rp 25.000" to an integer amount by stripping the currency prefix and
// thousand separators.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.EqualFold(s[:2], "rp") {
		s = s[2:]
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', ' ', '\u00a0':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return 0, errEmptyPrice
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative price %d", n)
	}
	return Price(n), nil
}

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := ParsePrice(s)
		if err != nil {
			return err
		}
		*p = v
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	if f < 0 || f != float64(int64(f)) {
		return fmt.Errorf("price %v is not a whole non-negative amount", f)
	}
	*p = Price(f)
	return nil
}

// String renders the amount the way the register displays it, "Rp 25.000".
func (p Price) String() string {
	n := int64(p)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(d)
	}
	return "Rp " + sign + out.String()
}

type Product struct {
	ID       ID       `json:"id"`
	Name     string   `json:"name"`
	Price    Price    `json:"price"`
	Image    string   `json:"image"`
	Category Category `json:"category"`
	Detail   string   `json:"detail,omitempty"`
}

// Validate narrows a decoded backend record to what the catalog relies on.
func (p Product) Validate() error {
	if p.ID == "" {
		return errors.New("product id is missing")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product %s: name is missing", p.ID)
	}
	if !p.Category.IsValid() {
		return fmt.Errorf("product %s: invalid category %q", p.ID, p.Category)
	}
	return nil
}

type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ProductForm is the admin add-menu form.
type ProductForm struct {
	Name     string
	Price    Price
	Category Category
	Detail   string
	Image    *ImageUpload
}

// ProductPatch carries only the fields an edit changed.
type ProductPatch struct {
	Name     *string
	Price    *Price
	Category *Category
	Detail   *string
	Image    *ImageUpload
}

func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.Category == nil && p.Detail == nil && p.Image == nil
}
