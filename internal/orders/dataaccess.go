package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/tapnserve/pos/internal/api"
)

// DataAccess centralizes order calls against the backend.
type DataAccess struct {
	client *api.Client
}

func NewDataAccess(client *api.Client) *DataAccess {
	return &DataAccess{client: client}
}

// List fetches every order, active and completed. The aggregation views
// filter client-side.
func (da *DataAccess) List(ctx context.Context) ([]Order, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("order client not configured")
	}

	var list []Order
	if err := da.client.GetJSON(ctx, "/api/order", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Create submits a new order.
func (da *DataAccess) Create(ctx context.Context, req *CreateOrderRequest) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("order client not configured")
	}
	if req == nil {
		return fmt.Errorf("missing order payload")
	}

	return da.client.PostJSON(ctx, "/api/order", req, nil)
}

// Update appends items to the table's existing order.
func (da *DataAccess) Update(ctx context.Context, req *CreateOrderRequest) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("order client not configured")
	}
	if req == nil {
		return fmt.Errorf("missing order payload")
	}

	return da.client.PostJSON(ctx, "/api/order/update", req, nil)
}

// Finish marks the table's in-progress order as completed.
func (da *DataAccess) Finish(ctx context.Context, tableNumber string) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("order client not configured")
	}
	if strings.TrimSpace(tableNumber) == "" {
		return ErrTableRequired
	}

	return da.client.PostJSON(ctx, "/api/order/finish", FinishOrderRequest{TableNumber: strings.TrimSpace(tableNumber)}, nil)
}
