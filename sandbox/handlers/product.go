package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/padipos/models"
	"github.com/ray-remotestate/padipos/sandbox/utils"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, "Products fetched", h.DB.ListProducts())
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if !parseMultipart(w, r) {
		return
	}

	name, _ := formValue(r, "name")
	priceStr, _ := formValue(r, "price")
	category, _ := formValue(r, "category")
	detail, _ := formValue(r, "detail")
	if name == "" || priceStr == "" || category == "" || detail == "" {
		utils.RespondError(w, http.StatusBadRequest, "Name, price, category and detail are required")
		return
	}
	price, err := models.ParsePrice(priceStr)
	if err != nil || price <= 0 {
		utils.RespondError(w, http.StatusBadRequest, "Price must be a positive amount")
		return
	}
	if !models.Category(category).IsValid() {
		utils.RespondError(w, http.StatusBadRequest, "Category must be Foods, Beverages or Dessert")
		return
	}

	image, sent, err := h.saveImage(r, "image")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !sent {
		utils.RespondError(w, http.StatusBadRequest, "Image is required")
		return
	}

	product := h.DB.CreateProduct(models.Product{
		Name:     name,
		Price:    price,
		Category: models.Category(category),
		Detail:   detail,
		Image:    image,
	})
	logrus.WithField("product_id", product.ID).Info("product created")
	utils.RespondJSON(w, http.StatusCreated, "Product created successfully", product)
}

// EditProduct applies only the fields present in the multipart form.
func (h *Handler) EditProduct(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if _, err := h.DB.GetProduct(id); err != nil {
		notFoundOr(w, err, "Product")
		return
	}
	if !parseMultipart(w, r) {
		return
	}

	var patch models.ProductPatch
	if v, ok := formValue(r, "name"); ok {
		if v == "" {
			utils.RespondError(w, http.StatusBadRequest, "Name cannot be empty")
			return
		}
		patch.Name = &v
	}
	if v, ok := formValue(r, "price"); ok {
		price, err := models.ParsePrice(v)
		if err != nil || price <= 0 {
			utils.RespondError(w, http.StatusBadRequest, "Price must be a positive amount")
			return
		}
		patch.Price = &price
	}
	if v, ok := formValue(r, "category"); ok {
		c := models.Category(v)
		if !c.IsValid() {
			utils.RespondError(w, http.StatusBadRequest, "Category must be Foods, Beverages or Dessert")
			return
		}
		patch.Category = &c
	}
	if v, ok := formValue(r, "detail"); ok {
		patch.Detail = &v
	}
	image, sent, err := h.saveImage(r, "image")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.DB.UpdateProduct(id, func(p *models.Product) {
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Category != nil {
			p.Category = *patch.Category
		}
		if patch.Detail != nil {
			p.Detail = *patch.Detail
		}
		if sent {
			p.Image = image
		}
	})
	if err != nil {
		notFoundOr(w, err, "Product")
		return
	}
	utils.RespondJSON(w, http.StatusOK, "Product updated successfully", product)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.DeleteProduct(pathID(r)); err != nil {
		notFoundOr(w, err, "Product")
		return
	}
	utils.RespondJSON(w, http.StatusOK, "Product deleted successfully", nil)
}
