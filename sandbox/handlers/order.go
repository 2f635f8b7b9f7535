package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/padipos/models"
	"github.com/ray-remotestate/padipos/sandbox/database"
	"github.com/ray-remotestate/padipos/sandbox/utils"
)

// CreateOrder prices the items from the stored catalog, applies tax and
// rejects payments that do not cover the total.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	if req.CustomerName == "" {
		utils.RespondError(w, http.StatusBadRequest, "Customer name is required")
		return
	}
	if !req.OrderType.IsValid() {
		utils.RespondError(w, http.StatusBadRequest, "Order type must be Dine In or Take Away")
		return
	}
	if len(req.Items) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "Order has no items")
		return
	}

	rec := models.OrderRecord{
		CustomerName: req.CustomerName,
		OrderType:    req.OrderType,
		Detail:       strings.TrimSpace(req.Detail),
		Items:        make([]models.OrderLine, 0, len(req.Items)),
	}
	var sub int64
	for _, item := range req.Items {
		if item.Quantity < 1 {
			utils.RespondError(w, http.StatusBadRequest, "Item quantity must be at least 1")
			return
		}
		p, err := h.DB.GetProduct(item.ProductID)
		if errors.Is(err, database.ErrNotFound) {
			utils.RespondError(w, http.StatusBadRequest, "Product "+item.ProductID.String()+" not found")
			return
		} else if err != nil {
			notFoundOr(w, err, "Product")
			return
		}
		rec.Items = append(rec.Items, models.OrderLine{
			ProductID: p.ID,
			Name:      p.Name,
			Category:  p.Category,
			Price:     p.Price,
			Quantity:  item.Quantity,
		})
		sub += int64(p.Price) * int64(item.Quantity)
	}

	tax := (sub*int64(h.TaxPercent) + 50) / 100
	rec.SubTotal = models.Price(sub)
	rec.Tax = models.Price(tax)
	rec.Total = models.Price(sub + tax)
	if req.ReceivedAmount < rec.Total {
		utils.RespondError(w, http.StatusBadRequest, "Received amount is less than the total "+rec.Total.String())
		return
	}
	rec.Received = req.ReceivedAmount
	rec.Change = req.ReceivedAmount - rec.Total

	rec = h.DB.CreateOrder(rec, h.Now().UTC())
	logrus.WithFields(logrus.Fields{
		"order": rec.OrderNumber,
		"total": int64(rec.Total),
	}).Info("order created")
	utils.RespondJSON(w, http.StatusCreated, "Order created successfully", rec)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, "Orders fetched", h.DB.ListOrders())
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	rec, err := h.DB.GetOrder(pathID(r))
	if err != nil {
		notFoundOr(w, err, "Order")
		return
	}
	utils.RespondJSON(w, http.StatusOK, "Order fetched", rec)
}
