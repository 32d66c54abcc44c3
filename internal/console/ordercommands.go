package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tapnserve/pos/internal/orders"
)

func (p *Parser) handleSelectTable(ctx context.Context, params []string) (*CommandResponse, error) {
	if resp := p.requireAuth(); resp != nil {
		return resp, nil
	}

	if p.cart == nil {
		p.cart = orders.NewCart()
	}

	// The one-active-order-per-table check runs against a freshly fetched
	// snapshot. It is a soft guarantee; the server stays authoritative.
	snapshot, resp := p.freshSnapshot(ctx)
	if resp != nil {
		return resp, nil
	}

	if err := p.cart.SelectTable(params[0], snapshot); err != nil {
		p.notifier.Error(err.Error())
		return fail(capitalize(err.Error())), nil
	}

	return ok(
		fmt.Sprintf("Table %s selected. Add items with: add <position> (see: menu).", p.cart.TableNumber()),
		"Table selected",
	), nil
}

func (p *Parser) handleAddItem(ctx context.Context, params []string) (*CommandResponse, error) {
	if resp := p.requireAuth(); resp != nil {
		return resp, nil
	}
	cart, resp := p.activeCart()
	if resp != nil {
		return resp, nil
	}

	item, resp := p.menuItemAt(params[0])
	if resp != nil {
		return resp, nil
	}

	composing, err := cart.BeginItem(item)
	if err != nil {
		return fail(capitalize(err.Error())), nil
	}

	if !composing {
		p.notifier.Success(fmt.Sprintf("%s added to order", item.Name))
		return ok(
			fmt.Sprintf("%s added to the cart (%.2f). Cart total: %.2f.", item.Name, item.Price, cart.Total()),
			"Item added",
		), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Customizing %s.\n", item.Name)
	if len(item.Ingredients) > 0 {
		fmt.Fprintf(&b, "Ingredients: %s\n", strings.Join(item.Ingredients, ", "))
	}
	b.WriteString("Use: extra <ingredient>, without <ingredient>, note <text>, then done (or back).")
	return ok(b.String(), "Customizing item"), nil
}

func (p *Parser) handleExtra(ctx context.Context, params []string) (*CommandResponse, error) {
	cart, resp := p.activeCart()
	if resp != nil {
		return resp, nil
	}

	ingredient := strings.Join(params, " ")
	if err := cart.ToggleExtra(ingredient); err != nil {
		return fail(capitalize(err.Error())), nil
	}
	return ok(p.pendingSummary(cart), "Extras updated"), nil
}

func (p *Parser) handleWithout(ctx context.Context, params []string) (*CommandResponse, error) {
	cart, resp := p.activeCart()
	if resp != nil {
		return resp, nil
	}

	ingredient := strings.Join(params, " ")
	if err := cart.ToggleExclusion(ingredient); err != nil {
		return fail(capitalize(err.Error())), nil
	}
	return ok(p.pendingSummary(cart), "Exclusions updated"), nil
}

func (p *Parser) handleNote(ctx context.Context, params []string) (*CommandResponse, error) {
	cart, resp := p.activeCart()
	if resp != nil {
		return resp, nil
	}

	if err := cart.SetSpecification(strings.Join(params, " ")); err != nil {
		return fail(capitalize(err.Error())), nil
	}
	return ok(p.pendingSummary(cart), "Instructions updated"), nil
}

func (p *Parser) handleConfirmItem(ctx context.Context, params []string) (*CommandResponse, error) {
	cart, resp := p.activeCart()
	if resp != nil {
		return resp, nil
	}

	pending := cart.Pending()
	if err := cart.ConfirmItem(); err != nil {
		return fail(capitalize(err.Error())), nil
	}

	p.notifier.Success(fmt.Sprintf("%s added to order", pending.Product.Name))
	return ok(
		fmt.Sprintf("%s added to the cart. Cart total: %.2f.", pending.Product.Name, cart.Total()),
		"Item added",
	), nil
}

func (p *Parser) handleCancelItem(ctx context.Context, params []string) (*CommandResponse, error) {
	cart, resp := p.activeCart()
	if resp != nil {
		return resp, nil
	}

	if err := cart.CancelItem(); err != nil {
		return fail(capitalize(err.Error())), nil
	}
	return ok("Customization discarded. The cart is unchanged.", "Customization discarded"), nil
}

func (p *Parser) handleRemoveItem(ctx context.Context, params []string) (*CommandResponse, error) {
	cart, resp := p.activeCart()
	if resp != nil {
		return resp, nil
	}

	pos, err := strconv.Atoi(params[0])
	if err != nil || pos < 1 {
		return fail(fmt.Sprintf("%q is not a valid cart position", params[0])), nil
	}
	if err := cart.RemoveItem(pos - 1); err != nil {
		return fail(capitalize(err.Error())), nil
	}
	return ok(fmt.Sprintf("Removed. Cart total: %.2f.", cart.Total()), "Cart line removed"), nil
}

func (p *Parser) handleShowCart(ctx context.Context, params []string) (*CommandResponse, error) {
	cart, resp := p.activeCart()
	if resp != nil {
		return resp, nil
	}

	var b strings.Builder
	table := cart.TableNumber()
	if table == "" {
		table = "not specified"
	}
	fmt.Fprintf(&b, "Order for table %s (%s mode):\n", table, cart.Mode())

	if seeded := cart.Seeded(); len(seeded) > 0 {
		b.WriteString("Already ordered:\n")
		for _, item := range seeded {
			fmt.Fprintf(&b, "     - %s%s\n", item.ProductName, itemNotes(item.OrderItem))
		}
	}

	items := cart.Items()
	if len(items) == 0 {
		b.WriteString("The cart is empty.\n")
	} else {
		for i, item := range items {
			fmt.Fprintf(&b, "%3d. %-24s %8.2f%s\n", i+1, item.Product.Name, item.Product.Price, cartNotes(item))
		}
	}
	fmt.Fprintf(&b, "Total: %.2f", cart.Total())
	return ok(b.String(), "Cart"), nil
}

func (p *Parser) handleSubmit(ctx context.Context, params []string) (*CommandResponse, error) {
	if resp := p.requireAuth(); resp != nil {
		return resp, nil
	}
	cart, resp := p.activeCart()
	if resp != nil {
		return resp, nil
	}

	payload, err := cart.BeginSubmit()
	if err != nil {
		p.notifier.Error(capitalize(err.Error()))
		return fail(capitalize(err.Error())), nil
	}

	if cart.Mode() == orders.ModeUpdate {
		err = p.orderAPI.Update(ctx, payload)
	} else {
		err = p.orderAPI.Create(ctx, payload)
	}
	if err != nil {
		cart.FailSubmit()
		if resp := p.sessionExpired(err); resp != nil {
			return resp, nil
		}
		p.notifier.Error("Failed to place order")
		return fail(fmt.Sprintf("Failed to place order: %v. The cart is unchanged.", err)), nil
	}

	table := cart.TableNumber()
	cart.CompleteSubmit()
	if cart.Mode() == orders.ModeCreate {
		p.cart = nil
	}

	p.notifier.Success("Order placed successfully")
	return ok(fmt.Sprintf("Order for table %s placed successfully.", table), "Order placed"), nil
}

func (p *Parser) handleCancelOrder(ctx context.Context, params []string) (*CommandResponse, error) {
	cart, resp := p.activeCart()
	if resp != nil {
		return resp, nil
	}

	cart.Cancel()
	p.cart = nil
	return ok("Order cancelled. The cart has been cleared.", "Order cancelled"), nil
}

func (p *Parser) handleAddToOrder(ctx context.Context, params []string) (*CommandResponse, error) {
	if resp := p.requireAuth(); resp != nil {
		return resp, nil
	}

	table := strings.TrimSpace(params[0])
	enriched, resp := p.fetchEnriched(ctx)
	if resp != nil {
		return resp, nil
	}

	var existing []orders.EnrichedItem
	found := false
	for _, group := range orders.ActiveByTable(enriched) {
		if group.TableNumber != table {
			continue
		}
		found = true
		for _, o := range group.Orders {
			existing = append(existing, o.Items...)
		}
	}
	if !found {
		return fail(fmt.Sprintf("Table %s has no order in progress.", table)), nil
	}

	p.cart = orders.NewUpdateCart(table, existing)
	return ok(
		fmt.Sprintf("Adding to the open order for table %s. The table number is locked; add items with: add <position>.", table),
		"Update mode",
	), nil
}

func (p *Parser) handleActiveOrders(ctx context.Context, params []string) (*CommandResponse, error) {
	if resp := p.requireAuth(); resp != nil {
		return resp, nil
	}

	enriched, resp := p.fetchEnriched(ctx)
	if resp != nil {
		return resp, nil
	}

	groups := orders.ActiveByTable(enriched)
	if len(groups) == 0 {
		return ok("No active orders at the moment.", "Active orders"), nil
	}

	var b strings.Builder
	b.WriteString("Active orders:\n")
	for _, group := range groups {
		fmt.Fprintf(&b, "Table %s:\n", group.TableNumber)
		for i, o := range group.Orders {
			fmt.Fprintf(&b, "  Order %d:\n", i+1)
			for _, item := range o.Items {
				fmt.Fprintf(&b, "     - %s%s\n", item.ProductName, itemNotes(item.OrderItem))
			}
		}
	}
	b.WriteString("Actions: addto <table>, finish <table>.")
	return ok(b.String(), fmt.Sprintf("%d tables with active orders", len(groups))), nil
}

func (p *Parser) handleCompletedOrders(ctx context.Context, params []string) (*CommandResponse, error) {
	if resp := p.requireAuth(); resp != nil {
		return resp, nil
	}

	enriched, resp := p.fetchEnriched(ctx)
	if resp != nil {
		return resp, nil
	}

	groups := orders.CompletedByTable(enriched)
	if len(groups) == 0 {
		return ok("No completed orders found.", "Completed orders"), nil
	}

	var b strings.Builder
	b.WriteString("Completed orders:\n")
	for _, group := range groups {
		fmt.Fprintf(&b, "Table %s:\n", group.TableNumber)
		for _, o := range group.Orders {
			when := "date n/a"
			if o.CreatedAt != nil {
				when = o.CreatedAt.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(&b, "  %s:\n", when)
			for _, item := range o.Items {
				fmt.Fprintf(&b, "     - %s%s\n", item.ProductName, itemNotes(item.OrderItem))
			}
		}
	}
	return ok(b.String(), fmt.Sprintf("%d tables with completed orders", len(groups))), nil
}

func (p *Parser) handleFinishOrder(ctx context.Context, params []string) (*CommandResponse, error) {
	if resp := p.requireAuth(); resp != nil {
		return resp, nil
	}

	table := strings.TrimSpace(params[0])
	if err := p.orderAPI.Finish(ctx, table); err != nil {
		if resp := p.sessionExpired(err); resp != nil {
			return resp, nil
		}
		p.notifier.Error("Failed to complete order")
		return fail(fmt.Sprintf("Failed to complete the order for table %s: %v", table, err)), nil
	}

	p.notifier.Success(fmt.Sprintf("Order for table %s completed", table))
	return ok(fmt.Sprintf("Order for table %s completed.", table), "Order completed"), nil
}

// activeCart returns the cart in progress, or a prompt to start one.
func (p *Parser) activeCart() (*orders.Cart, *CommandResponse) {
	if p.cart == nil {
		return nil, fail("No order in progress. Start one with: table <number>.")
	}
	return p.cart, nil
}

// freshSnapshot refetches the order list and indexes the active orders.
func (p *Parser) freshSnapshot(ctx context.Context) (*orders.Snapshot, *CommandResponse) {
	list, err := p.orderAPI.List(ctx)
	if err != nil {
		if resp := p.sessionExpired(err); resp != nil {
			return nil, resp
		}
		p.notifier.Error("Failed to load orders")
		return nil, fail(fmt.Sprintf("Failed to load orders: %v", err))
	}
	return orders.NewSnapshot(list), nil
}

// fetchEnriched loads orders and menu and joins product names.
func (p *Parser) fetchEnriched(ctx context.Context) ([]orders.EnrichedOrder, *CommandResponse) {
	list, err := p.orderAPI.List(ctx)
	if err != nil {
		if resp := p.sessionExpired(err); resp != nil {
			return nil, resp
		}
		p.notifier.Error("Failed to load orders")
		return nil, fail(fmt.Sprintf("Failed to load orders: %v", err))
	}

	items, err := p.menuAPI.List(ctx)
	if err != nil {
		if resp := p.sessionExpired(err); resp != nil {
			return nil, resp
		}
		p.notifier.Error("Failed to load menu items")
		return nil, fail(fmt.Sprintf("Failed to load menu: %v", err))
	}
	p.lastMenu = items

	return orders.Enrich(list, items), nil
}

func (p *Parser) pendingSummary(cart *orders.Cart) string {
	pending := cart.Pending()
	if pending == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Customizing %s.", pending.Product.Name)
	if len(pending.Extras) > 0 {
		fmt.Fprintf(&b, "\nExtra: %s", strings.Join(pending.Extras, ", "))
	}
	if len(pending.Exclusions) > 0 {
		fmt.Fprintf(&b, "\nWithout: %s", strings.Join(pending.Exclusions, ", "))
	}
	if pending.Specification != "" {
		fmt.Fprintf(&b, "\nNotes: %s", pending.Specification)
	}
	return b.String()
}

func itemNotes(item orders.OrderItem) string {
	var parts []string
	if item.Extra != "" {
		parts = append(parts, "Extra: "+item.Extra)
	}
	if item.Without != "" {
		parts = append(parts, "Without: "+item.Without)
	}
	if item.Specification != "" {
		parts = append(parts, "Notes: "+item.Specification)
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, "; ") + ")"
}

func cartNotes(item orders.CartItem) string {
	return itemNotes(orders.OrderItem{
		Extra:         item.Extra,
		Without:       item.Without,
		Specification: item.Specification,
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
