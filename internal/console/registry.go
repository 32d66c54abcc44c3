package console

import (
	"context"
	"strings"
)

// CommandDefinition defines a command with its variations and handler.
type CommandDefinition struct {
	Canonical   string
	Variations  []string
	ShortForms  []string
	Handler     CommandHandler
	Description string
	Usage       string
	MinParams   int
	MaxParams   int // -1 allows free-text tails
}

// CommandHandler processes a matched command.
type CommandHandler func(ctx context.Context, params []string) (*CommandResponse, error)

// CommandRegistry holds all available commands.
type CommandRegistry struct {
	commands map[string]*CommandDefinition
	parser   *Parser
}

// NewCommandRegistry creates and initializes the command registry.
func NewCommandRegistry(parser *Parser) *CommandRegistry {
	r := &CommandRegistry{
		commands: make(map[string]*CommandDefinition),
		parser:   parser,
	}
	r.registerAllCommands()
	return r
}

// FindCommand finds a command by matching input against canonical names,
// two-word forms, short forms and variations.
func (r *CommandRegistry) FindCommand(input string) (*CommandDefinition, []string, bool) {
	tokens := tokenize(input)
	if len(tokens) == 0 {
		return nil, nil, false
	}

	head := strings.ToLower(tokens[0])

	// Exact canonical match first.
	if cmd, ok := r.commands[head]; ok {
		return cmd, tokens[1:], true
	}

	// Two-word canonical (e.g. "menu add").
	if len(tokens) >= 2 {
		twoWord := head + "-" + strings.ToLower(tokens[1])
		if cmd, ok := r.commands[twoWord]; ok {
			return cmd, tokens[2:], true
		}
	}

	for _, cmd := range r.commands {
		for _, short := range cmd.ShortForms {
			if head == short {
				return cmd, tokens[1:], true
			}
		}
		for _, variation := range cmd.Variations {
			if head == variation {
				return cmd, tokens[1:], true
			}
		}
	}

	return nil, nil, false
}

// Commands returns the registered definitions keyed by canonical name.
func (r *CommandRegistry) Commands() map[string]*CommandDefinition {
	return r.commands
}

func (r *CommandRegistry) register(canonical string, cmd *CommandDefinition) {
	cmd.Canonical = canonical
	r.commands[canonical] = cmd
}

func (r *CommandRegistry) registerAllCommands() {
	p := r.parser

	// AUTHENTICATION
	r.register("login", &CommandDefinition{
		Variations:  []string{"signin"},
		Handler:     p.handleLogin,
		Description: "Authenticate with username and password",
		Usage:       "login <username> <password>",
		MinParams:   2,
		MaxParams:   2,
	})
	r.register("logout", &CommandDefinition{
		Variations:  []string{"signout", "exit"},
		Handler:     p.handleLogout,
		Description: "End the current session",
		MinParams:   0,
		MaxParams:   0,
	})
	r.register("whoami", &CommandDefinition{
		Handler:     p.handleWhoAmI,
		Description: "Show the signed-in user and role",
		MinParams:   0,
		MaxParams:   0,
	})

	// FIRST-RUN SETUP
	r.register("setup-check", &CommandDefinition{
		Handler:     p.handleSetupCheck,
		Description: "Check whether the backend needs initial setup",
		MinParams:   0,
		MaxParams:   0,
	})
	r.register("setup", &CommandDefinition{
		Handler:     p.handleSetup,
		Description: "Create the admin account and restaurant profile",
		Usage:       "setup <username> <password> <restaurant name...>",
		MinParams:   3,
		MaxParams:   -1,
	})
	r.register("restaurant", &CommandDefinition{
		Handler:     p.handleRestaurant,
		Description: "Show the restaurant profile",
		MinParams:   0,
		MaxParams:   0,
	})

	// MENU
	r.register("menu", &CommandDefinition{
		Variations:  []string{"products"},
		ShortForms:  []string{"m"},
		Handler:     p.handleMenuList,
		Description: "List the menu",
		MinParams:   0,
		MaxParams:   0,
	})
	r.register("menu-add", &CommandDefinition{
		Handler:     p.handleMenuAdd,
		Description: "Add a product (admin)",
		Usage:       "menu add <name> <price> <type> [ingredient,ingredient,...]",
		MinParams:   3,
		MaxParams:   4,
	})
	r.register("menu-remove", &CommandDefinition{
		Variations:  []string{"menu-delete"},
		Handler:     p.handleMenuRemove,
		Description: "Remove a product by menu position (admin)",
		Usage:       "menu remove <position>",
		MinParams:   1,
		MaxParams:   1,
	})

	// STAFF
	r.register("staff", &CommandDefinition{
		Variations:  []string{"users", "employees"},
		Handler:     p.handleStaffList,
		Description: "List staff accounts (admin)",
		MinParams:   0,
		MaxParams:   0,
	})
	r.register("staff-add", &CommandDefinition{
		Handler:     p.handleStaffAdd,
		Description: "Add a staff account (admin)",
		Usage:       "staff add <username> <password>",
		MinParams:   2,
		MaxParams:   2,
	})
	r.register("staff-remove", &CommandDefinition{
		Variations:  []string{"staff-delete"},
		Handler:     p.handleStaffRemove,
		Description: "Remove a staff account by list position (admin)",
		Usage:       "staff remove <position>",
		MinParams:   1,
		MaxParams:   1,
	})

	// ORDER WORKFLOW
	r.register("table", &CommandDefinition{
		ShortForms:  []string{"t"},
		Handler:     p.handleSelectTable,
		Description: "Start (or retarget) a new order for a table",
		Usage:       "table <number>",
		MinParams:   1,
		MaxParams:   1,
	})
	r.register("add", &CommandDefinition{
		ShortForms:  []string{"a"},
		Handler:     p.handleAddItem,
		Description: "Add a product to the cart by menu position",
		Usage:       "add <position>",
		MinParams:   1,
		MaxParams:   1,
	})
	r.register("extra", &CommandDefinition{
		Handler:     p.handleExtra,
		Description: "Toggle an extra ingredient for the item being customized",
		Usage:       "extra <ingredient...>",
		MinParams:   1,
		MaxParams:   -1,
	})
	r.register("without", &CommandDefinition{
		Handler:     p.handleWithout,
		Description: "Toggle an excluded ingredient for the item being customized",
		Usage:       "without <ingredient...>",
		MinParams:   1,
		MaxParams:   -1,
	})
	r.register("note", &CommandDefinition{
		Variations:  []string{"spec"},
		Handler:     p.handleNote,
		Description: "Set special instructions for the item being customized",
		Usage:       "note <text...>",
		MinParams:   1,
		MaxParams:   -1,
	})
	r.register("done", &CommandDefinition{
		Variations:  []string{"confirm"},
		Handler:     p.handleConfirmItem,
		Description: "Confirm the customized item into the cart",
		MinParams:   0,
		MaxParams:   0,
	})
	r.register("back", &CommandDefinition{
		Handler:     p.handleCancelItem,
		Description: "Discard the pending customization",
		MinParams:   0,
		MaxParams:   0,
	})
	r.register("remove", &CommandDefinition{
		ShortForms:  []string{"rm"},
		Handler:     p.handleRemoveItem,
		Description: "Remove a cart line by position",
		Usage:       "remove <position>",
		MinParams:   1,
		MaxParams:   1,
	})
	r.register("cart", &CommandDefinition{
		ShortForms:  []string{"c"},
		Handler:     p.handleShowCart,
		Description: "Show the cart",
		MinParams:   0,
		MaxParams:   0,
	})
	r.register("submit", &CommandDefinition{
		Variations:  []string{"place"},
		Handler:     p.handleSubmit,
		Description: "Submit the order",
		MinParams:   0,
		MaxParams:   0,
	})
	r.register("cancel", &CommandDefinition{
		Handler:     p.handleCancelOrder,
		Description: "Cancel the order workflow",
		MinParams:   0,
		MaxParams:   0,
	})
	r.register("addto", &CommandDefinition{
		Variations:  []string{"append"},
		Handler:     p.handleAddToOrder,
		Description: "Add products to a table's existing order",
		Usage:       "addto <table>",
		MinParams:   1,
		MaxParams:   1,
	})

	// AGGREGATION VIEWS
	r.register("active", &CommandDefinition{
		Variations:  []string{"active-orders"},
		Handler:     p.handleActiveOrders,
		Description: "Show in-progress orders grouped by table",
		MinParams:   0,
		MaxParams:   0,
	})
	r.register("completed", &CommandDefinition{
		Variations:  []string{"completed-orders", "history"},
		Handler:     p.handleCompletedOrders,
		Description: "Show completed orders grouped by table",
		MinParams:   0,
		MaxParams:   0,
	})
	r.register("finish", &CommandDefinition{
		Variations:  []string{"close"},
		Handler:     p.handleFinishOrder,
		Description: "Complete a table's in-progress order",
		Usage:       "finish <table>",
		MinParams:   1,
		MaxParams:   1,
	})

	// REPORTS
	r.register("stats", &CommandDefinition{
		Variations:  []string{"sales", "reports"},
		Handler:     p.handleStats,
		Description: "Show the product sales report (admin)",
		MinParams:   0,
		MaxParams:   0,
	})

	// HELP
	r.register("help", &CommandDefinition{
		ShortForms:  []string{"h", "?"},
		Handler:     p.handleHelp,
		Description: "Show available commands",
		MinParams:   0,
		MaxParams:   0,
	})
}

func tokenize(input string) []string {
	return strings.Fields(strings.TrimSpace(input))
}
