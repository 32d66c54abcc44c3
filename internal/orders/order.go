package orders

import (
	"time"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// OrderItem is one line of an order as it travels over the wire. The backend
// contract names the exclusion field "fara"; it is exposed as Without in code.
type OrderItem struct {
	ProductID     string `json:"productId"`
	Extra         string `json:"extra,omitempty"`
	Without       string `json:"fara,omitempty"`
	Specification string `json:"specification,omitempty"`
}

// Order is an order as fetched from the backend. Orders are never deleted
// client-side.
type Order struct {
	ID          string     `json:"id,omitempty"`
	TableNumber string     `json:"tableNumber"`
	Items       []OrderItem `json:"orderItemDtos"`
	Status      Status     `json:"status,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// Active reports whether the order is still in progress.
func (o Order) Active() bool {
	return o.Status == StatusInProgress
}

// CreateOrderRequest is the submit payload for both order creation and
// add-to-existing-order updates.
type CreateOrderRequest struct {
	TableNumber string      `json:"tableNumber"`
	Items       []OrderItem `json:"orderItemDtos"`
}

// FinishOrderRequest marks a table's in-progress order as completed.
type FinishOrderRequest struct {
	TableNumber string `json:"tableNumber"`
}
