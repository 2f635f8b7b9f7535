package catalog

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ray-remotestate/padipos/models"
)

func TestDiffOnlyName(t *testing.T) {
	form := FormFor(burger)
	form.Name = "Double Cheeseburger"

	patch := Diff(burger, form)

	require.NotNil(t, patch.Name)
	assert.Equal(t, "Double Cheeseburger", *patch.Name)
	assert.Nil(t, patch.Price)
	assert.Nil(t, patch.Category)
	assert.Nil(t, patch.Detail)
	assert.Nil(t, patch.Image)
}

func TestDiffUnchangedIsEmpty(t *testing.T) {
	assert.True(t, Diff(burger, FormFor(burger)).IsEmpty())
}

func TestDiffImageAndPrice(t *testing.T) {
	form := FormFor(burger)
	form.Price = 27000
	form.Image = &models.ImageUpload{Filename: "b.png", ContentType: "image/png", Data: []byte{1}}

	patch := Diff(burger, form)
	require.NotNil(t, patch.Price)
	assert.Equal(t, models.Price(27000), *patch.Price)
	assert.NotNil(t, patch.Image)
	assert.Nil(t, patch.Name)
}

func TestValidateNewReportsEveryProblem(t *testing.T) {
	err := ValidateNew(models.ProductForm{Category: "Soups"})
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)

	fields := map[string]bool{}
	for _, e := range merr.Errors {
		var verr *models.ValidationError
		require.ErrorAs(t, e, &verr)
		fields[verr.Field] = true
	}
	assert.Equal(t, map[string]bool{"name": true, "price": true, "category": true, "detail": true, "image": true}, fields)
}

func TestValidateNewAccepts(t *testing.T) {
	err := ValidateNew(models.ProductForm{
		Name:     "Es Teh",
		Price:    5000,
		Category: models.CategoryBeverages,
		Detail:   "manis",
		Image:    &models.ImageUpload{Filename: "t.jpg", ContentType: "image/jpeg", Data: []byte{1}},
	})
	assert.NoError(t, err)
}
