package catalog

import (
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/ray-remotestate/padipos/models"
)

// Diff compares an edited form against the record being edited and keeps
// only the fields that changed. A new image is always a change.
func Diff(original models.Product, edited models.ProductForm) models.ProductPatch {
	var patch models.ProductPatch
	if name := strings.TrimSpace(edited.Name); name != original.Name {
		patch.Name = &name
	}
	if edited.Price != original.Price {
		price := edited.Price
		patch.Price = &price
	}
	if edited.Category != original.Category {
		category := edited.Category
		patch.Category = &category
	}
	if detail := strings.TrimSpace(edited.Detail); detail != original.Detail {
		patch.Detail = &detail
	}
	if edited.Image != nil {
		patch.Image = edited.Image
	}
	return patch
}

// FormFor pre-fills the edit form with the record's current values.
func FormFor(p models.Product) models.ProductForm {
	return models.ProductForm{
		Name:     p.Name,
		Price:    p.Price,
		Category: p.Category,
		Detail:   p.Detail,
	}
}

// ValidateNew checks the add-menu form and reports every problem at once.
func ValidateNew(form models.ProductForm) error {
	var result *multierror.Error
	if strings.TrimSpace(form.Name) == "" {
		result = multierror.Append(result, models.Invalid("name", "is required"))
	}
	if form.Price <= 0 {
		result = multierror.Append(result, models.Invalid("price", "must be greater than zero"))
	}
	if !form.Category.IsValid() {
		result = multierror.Append(result, models.Invalid("category", "must be Foods, Beverages or Dessert"))
	}
	if strings.TrimSpace(form.Detail) == "" {
		result = multierror.Append(result, models.Invalid("detail", "is required"))
	}
	if form.Image == nil || len(form.Image.Data) == 0 {
		result = multierror.Append(result, models.Invalid("image", "is required"))
	} else if !strings.HasPrefix(form.Image.ContentType, "image/") {
		result = multierror.Append(result, models.Invalid("image", "must be an image"))
	}
	return result.ErrorOrNil()
}

func validateEdit(patch models.ProductPatch) error {
	var result *multierror.Error
	if patch.Name != nil && *patch.Name == "" {
		result = multierror.Append(result, models.Invalid("name", "cannot be empty"))
	}
	if patch.Price != nil && *patch.Price <= 0 {
		result = multierror.Append(result, models.Invalid("price", "must be greater than zero"))
	}
	if patch.Category != nil && !patch.Category.IsValid() {
		result = multierror.Append(result, models.Invalid("category", "must be Foods, Beverages or Dessert"))
	}
	if patch.Image != nil && !strings.HasPrefix(patch.Image.ContentType, "image/") {
		result = multierror.Append(result, models.Invalid("image", "must be an image"))
	}
	return result.ErrorOrNil()
}
