package menu

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tapnserve/pos/internal/api"
)

// DataAccess centralizes menu calls against the backend.
type DataAccess struct {
	client *api.Client
}

func NewDataAccess(client *api.Client) *DataAccess {
	return &DataAccess{client: client}
}

// List fetches the full menu.
func (da *DataAccess) List(ctx context.Context) ([]MenuItem, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("menu client not configured")
	}

	var items []MenuItem
	if err := da.client.GetJSON(ctx, "/api/menu", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Create adds a product to the menu. The request is validated client-side
// first; the backend remains the authority.
func (da *DataAccess) Create(ctx context.Context, req CreateItemRequest) (*MenuItem, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("menu client not configured")
	}
	if errs := ValidateCreateItem(req); len(errs) > 0 {
		return nil, fmt.Errorf("invalid menu item: %s (%s)", errs[0].Message, errs[0].Field)
	}

	var created MenuItem
	if err := da.client.PostJSON(ctx, "/api/menu/product", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete removes a product from the menu.
func (da *DataAccess) Delete(ctx context.Context, id string) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("menu client not configured")
	}
	if id == "" {
		return fmt.Errorf("missing product id")
	}

	path := fmt.Sprintf("/api/menu/product/%s", url.PathEscape(id))
	return da.client.Delete(ctx, path)
}
