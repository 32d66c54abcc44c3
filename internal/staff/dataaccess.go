package staff

import (
	"context"
	"fmt"

	"github.com/tapnserve/pos/internal/api"
)

// DataAccess centralizes staff calls against the backend.
type DataAccess struct {
	client *api.Client
}

func NewDataAccess(client *api.Client) *DataAccess {
	return &DataAccess{client: client}
}

// List fetches all staff accounts.
func (da *DataAccess) List(ctx context.Context) ([]User, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("staff client not configured")
	}

	var users []User
	if err := da.client.GetJSON(ctx, "/api/user", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Create adds a staff account.
func (da *DataAccess) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("staff client not configured")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var created User
	if err := da.client.PostJSON(ctx, "/api/user", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete removes a staff account. Users carrying an admin role are protected
// and the call is rejected before reaching the backend.
func (da *DataAccess) Delete(ctx context.Context, user User) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("staff client not configured")
	}
	if user.HasAdminRole() {
		return ErrAdminProtected
	}

	return da.client.Delete(ctx, fmt.Sprintf("/api/user/%d", user.ID))
}
