package console

import (
	"context"

	"github.com/aquamarinepk/aqm"

	"github.com/tapnserve/pos/internal/api"
	"github.com/tapnserve/pos/internal/menu"
	"github.com/tapnserve/pos/internal/orders"
	"github.com/tapnserve/pos/internal/session"
	"github.com/tapnserve/pos/internal/setup"
	"github.com/tapnserve/pos/internal/staff"
	"github.com/tapnserve/pos/internal/stats"
)

// CommandProcessor processes one line of terminal input.
type CommandProcessor interface {
	Process(ctx context.Context, input string) (*CommandResponse, error)
}

// CommandResponse is the structured result of a command.
type CommandResponse struct {
	Text    string
	Success bool
	Message string
}

// SessionStore is the slice of the session store the console needs.
type SessionStore interface {
	Login(ctx context.Context, creds session.Credentials) (*session.Session, error)
	Logout()
	IsAuthenticated() bool
	Username() string
	Role() api.Role
}

// MenuAPI is the menu accessor surface used by commands.
type MenuAPI interface {
	List(ctx context.Context) ([]menu.MenuItem, error)
	Create(ctx context.Context, req menu.CreateItemRequest) (*menu.MenuItem, error)
	Delete(ctx context.Context, id string) error
}

// StaffAPI is the staff accessor surface used by commands.
type StaffAPI interface {
	List(ctx context.Context) ([]staff.User, error)
	Create(ctx context.Context, req staff.CreateUserRequest) (*staff.User, error)
	Delete(ctx context.Context, user staff.User) error
}

// OrderAPI is the order accessor surface used by commands.
type OrderAPI interface {
	List(ctx context.Context) ([]orders.Order, error)
	Create(ctx context.Context, req *orders.CreateOrderRequest) error
	Update(ctx context.Context, req *orders.CreateOrderRequest) error
	Finish(ctx context.Context, tableNumber string) error
}

// SetupAPI is the first-run setup surface used by commands.
type SetupAPI interface {
	CheckInitialSetup(ctx context.Context) (bool, error)
	CreateAdminAccount(ctx context.Context, data setup.AdminSetupData, logo []byte) error
	Profile(ctx context.Context) (*setup.Profile, error)
}

// StatsAPI is the statistics surface used by commands.
type StatsAPI interface {
	List(ctx context.Context) ([]stats.ProductStatistic, error)
}

// Parser implements CommandProcessor using deterministic pattern matching.
// It also owns the per-terminal workflow state: the cart being composed and
// the last fetched menu used for positional item references. The UI
// serializes input, so no locking happens here; the HTTP handler guards
// concurrent requests.
type Parser struct {
	sessions SessionStore
	menuAPI  MenuAPI
	staffAPI StaffAPI
	orderAPI OrderAPI
	setupAPI SetupAPI
	statsAPI StatsAPI
	notifier Notifier
	logger   aqm.Logger

	registry *CommandRegistry

	cart     *orders.Cart
	lastMenu []menu.MenuItem
}

// ParserDeps bundles the parser's collaborators.
type ParserDeps struct {
	Sessions SessionStore
	Menu     MenuAPI
	Staff    StaffAPI
	Orders   OrderAPI
	Setup    SetupAPI
	Stats    StatsAPI
	Notifier Notifier
}

// NewParser creates the command parser and registers all commands.
func NewParser(deps ParserDeps, logger aqm.Logger) *Parser {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = NewLogNotifier(logger)
	}

	p := &Parser{
		sessions: deps.Sessions,
		menuAPI:  deps.Menu,
		staffAPI: deps.Staff,
		orderAPI: deps.Orders,
		setupAPI: deps.Setup,
		statsAPI: deps.Stats,
		notifier: notifier,
		logger:   logger,
	}
	p.registry = NewCommandRegistry(p)
	return p
}

// Process implements CommandProcessor.
func (p *Parser) Process(ctx context.Context, input string) (*CommandResponse, error) {
	cmd, params, found := p.registry.FindCommand(input)
	if !found {
		return &CommandResponse{
			Text:    "Command not recognized. Type help to see available commands.",
			Success: false,
			Message: "Command not recognized",
		}, nil
	}

	if len(params) < cmd.MinParams || (cmd.MaxParams >= 0 && len(params) > cmd.MaxParams) {
		return &CommandResponse{
			Text:    usageLine(cmd),
			Success: false,
			Message: "Invalid parameter count",
		}, nil
	}

	return cmd.Handler(ctx, params)
}

func usageLine(cmd *CommandDefinition) string {
	if cmd.Usage != "" {
		return "Usage: " + cmd.Usage
	}
	return "Usage: " + cmd.Canonical
}

// fail wraps a user-facing failure without a Go error; the workflow stays
// usable for retry.
func fail(message string) *CommandResponse {
	return &CommandResponse{Text: message, Success: false, Message: message}
}

func ok(text, message string) *CommandResponse {
	return &CommandResponse{Text: text, Success: true, Message: message}
}
