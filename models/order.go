package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type OrderType string

const (
	OrderTypeDineIn   OrderType = "Dine In"
	OrderTypeTakeAway OrderType = "Take Away"
)

func (t OrderType) IsValid() bool {
	return t == OrderTypeDineIn || t == OrderTypeTakeAway
}

// ParseOrderType accepts the display labels as well as "dine-in"/"take-away".
func ParseOrderType(s string) (OrderType, error) {
	norm := strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(s))
	switch {
	case strings.EqualFold(norm, string(OrderTypeDineIn)):
		return OrderTypeDineIn, nil
	case strings.EqualFold(norm, string(OrderTypeTakeAway)):
		return OrderTypeTakeAway, nil
	}
	return "", fmt.Errorf("unknown order type %q", s)
}

type OrderItemRequest struct {
	ProductID ID  `json:"productId"`
	Quantity  int `json:"quantity"`
}

// OrderRequest is the checkout payload sent to the backend.
type OrderRequest struct {
	CustomerName   string             `json:"customerName"`
	OrderType      OrderType          `json:"orderType"`
	Detail         string             `json:"detail,omitempty"`
	Items          []OrderItemRequest `json:"items"`
	ReceivedAmount Price              `json:"receivedAmount"`
}

type OrderLine struct {
	ProductID ID       `json:"productId"`
	Name      string   `json:"name"`
	Category  Category `json:"category"`
	Price     Price    `json:"price"`
	Quantity  int      `json:"quantity"`
}

// OrderRecord is the canonical order as stored by the backend.
type OrderRecord struct {
	ID           ID          `json:"id"`
	OrderNumber  string      `json:"orderNumber"`
	CreatedAt    time.Time   `json:"createdAt"`
	CustomerName string      `json:"customerName"`
	OrderType    OrderType   `json:"orderType"`
	Detail       string      `json:"detail,omitempty"`
	Items        []OrderLine `json:"items"`
	SubTotal     Price       `json:"subTotal"`
	Tax          Price       `json:"tax"`
	Total        Price       `json:"total"`
	Received     Price       `json:"received"`
	Change       Price       `json:"change"`
}

func (o OrderRecord) Validate() error {
	if o.ID == "" {
		return errors.New("order id is missing")
	}
	if o.CreatedAt.IsZero() {
		return fmt.Errorf("order %s: createdAt is missing", o.ID)
	}
	if !o.OrderType.IsValid() {
		return fmt.Errorf("order %s: invalid order type %q", o.ID, o.OrderType)
	}
	for i, item := range o.Items {
		if item.Quantity < 1 {
			return fmt.Errorf("order %s: item %d has quantity %d", o.ID, i, item.Quantity)
		}
	}
	return nil
}

// Categories returns the distinct item categories in first-seen order.
func (o OrderRecord) Categories() []Category {
	var out []Category
	seen := make(map[Category]bool)
	for _, item := range o.Items {
		if !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	return out
}

// Number is the label shown to operators, falling back to the id.
func (o OrderRecord) Number() string {
	if o.OrderNumber != "" {
		return o.OrderNumber
	}
	return string(o.ID)
}
