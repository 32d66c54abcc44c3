package console

import (
	"context"
	"errors"

	"github.com/tapnserve/pos/internal/api"
	"github.com/tapnserve/pos/internal/menu"
	"github.com/tapnserve/pos/internal/orders"
	"github.com/tapnserve/pos/internal/session"
	"github.com/tapnserve/pos/internal/setup"
	"github.com/tapnserve/pos/internal/staff"
	"github.com/tapnserve/pos/internal/stats"
)

// MockSessionStore implements SessionStore for testing
type MockSessionStore struct {
	LoginFunc     func(ctx context.Context, creds session.Credentials) (*session.Session, error)
	LogoutFunc    func()
	Authenticated bool
	User          string
	UserRole      api.Role
}

func (m *MockSessionStore) Login(ctx context.Context, creds session.Credentials) (*session.Session, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	return nil, errors.New("not implemented")
}

func (m *MockSessionStore) Logout() {
	if m.LogoutFunc != nil {
		m.LogoutFunc()
	}
	m.Authenticated = false
}

func (m *MockSessionStore) IsAuthenticated() bool { return m.Authenticated }
func (m *MockSessionStore) Username() string      { return m.User }
func (m *MockSessionStore) Role() api.Role        { return m.UserRole }

// MockMenuAPI implements MenuAPI for testing
type MockMenuAPI struct {
	ListFunc   func(ctx context.Context) ([]menu.MenuItem, error)
	CreateFunc func(ctx context.Context, req menu.CreateItemRequest) (*menu.MenuItem, error)
	DeleteFunc func(ctx context.Context, id string) error
}

func (m *MockMenuAPI) List(ctx context.Context) ([]menu.MenuItem, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockMenuAPI) Create(ctx context.Context, req menu.CreateItemRequest) (*menu.MenuItem, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *MockMenuAPI) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

// MockStaffAPI implements StaffAPI for testing
type MockStaffAPI struct {
	ListFunc   func(ctx context.Context) ([]staff.User, error)
	CreateFunc func(ctx context.Context, req staff.CreateUserRequest) (*staff.User, error)
	DeleteFunc func(ctx context.Context, user staff.User) error
}

func (m *MockStaffAPI) List(ctx context.Context) ([]staff.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockStaffAPI) Create(ctx context.Context, req staff.CreateUserRequest) (*staff.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *MockStaffAPI) Delete(ctx context.Context, user staff.User) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, user)
	}
	return errors.New("not implemented")
}

// MockOrderAPI implements OrderAPI for testing
type MockOrderAPI struct {
	ListFunc   func(ctx context.Context) ([]orders.Order, error)
	CreateFunc func(ctx context.Context, req *orders.CreateOrderRequest) error
	UpdateFunc func(ctx context.Context, req *orders.CreateOrderRequest) error
	FinishFunc func(ctx context.Context, tableNumber string) error
}

func (m *MockOrderAPI) List(ctx context.Context) ([]orders.Order, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockOrderAPI) Create(ctx context.Context, req *orders.CreateOrderRequest) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return errors.New("not implemented")
}

func (m *MockOrderAPI) Update(ctx context.Context, req *orders.CreateOrderRequest) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, req)
	}
	return errors.New("not implemented")
}

func (m *MockOrderAPI) Finish(ctx context.Context, tableNumber string) error {
	if m.FinishFunc != nil {
		return m.FinishFunc(ctx, tableNumber)
	}
	return errors.New("not implemented")
}

// MockSetupAPI implements SetupAPI for testing
type MockSetupAPI struct {
	CheckInitialSetupFunc  func(ctx context.Context) (bool, error)
	CreateAdminAccountFunc func(ctx context.Context, data setup.AdminSetupData, logo []byte) error
	ProfileFunc            func(ctx context.Context) (*setup.Profile, error)
}

func (m *MockSetupAPI) CheckInitialSetup(ctx context.Context) (bool, error) {
	if m.CheckInitialSetupFunc != nil {
		return m.CheckInitialSetupFunc(ctx)
	}
	return false, nil
}

func (m *MockSetupAPI) CreateAdminAccount(ctx context.Context, data setup.AdminSetupData, logo []byte) error {
	if m.CreateAdminAccountFunc != nil {
		return m.CreateAdminAccountFunc(ctx, data, logo)
	}
	return errors.New("not implemented")
}

func (m *MockSetupAPI) Profile(ctx context.Context) (*setup.Profile, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

// MockStatsAPI implements StatsAPI for testing
type MockStatsAPI struct {
	ListFunc func(ctx context.Context) ([]stats.ProductStatistic, error)
}

func (m *MockStatsAPI) List(ctx context.Context) ([]stats.ProductStatistic, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func testMenu() []menu.MenuItem {
	return []menu.MenuItem{
		{ID: "p1", Name: "Burger", Price: 9.5, Ingredients: []string{"Cheese", "Onion"}, Type: menu.TypeMain},
		{ID: "p2", Name: "Cola", Price: 2.5, Type: menu.TypeDrink},
	}
}

// newTestParser builds a parser with an authenticated employee session and
// working menu and order mocks.
func newTestParser(sessions *MockSessionStore) (*Parser, *MockOrderAPI) {
	if sessions == nil {
		sessions = &MockSessionStore{Authenticated: true, User: "bob", UserRole: api.RoleEmployee}
	}
	orderAPI := &MockOrderAPI{
		ListFunc:   func(ctx context.Context) ([]orders.Order, error) { return nil, nil },
		CreateFunc: func(ctx context.Context, req *orders.CreateOrderRequest) error { return nil },
		UpdateFunc: func(ctx context.Context, req *orders.CreateOrderRequest) error { return nil },
		FinishFunc: func(ctx context.Context, tableNumber string) error { return nil },
	}
	p := NewParser(ParserDeps{
		Sessions: sessions,
		Menu: &MockMenuAPI{
			ListFunc: func(ctx context.Context) ([]menu.MenuItem, error) { return testMenu(), nil },
		},
		Staff:  &MockStaffAPI{},
		Orders: orderAPI,
		Setup:  &MockSetupAPI{},
		Stats:  &MockStatsAPI{},
	}, nil)
	return p, orderAPI
}
