package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tapnserve/pos/internal/menu"
)

func (p *Parser) handleMenuList(ctx context.Context, params []string) (*CommandResponse, error) {
	if resp := p.requireAuth(); resp != nil {
		return resp, nil
	}

	items, err := p.menuAPI.List(ctx)
	if err != nil {
		if resp := p.sessionExpired(err); resp != nil {
			return resp, nil
		}
		p.notifier.Error("Failed to load menu items")
		return fail(fmt.Sprintf("Failed to load menu: %v", err)), nil
	}
	p.lastMenu = items

	if len(items) == 0 {
		return ok("The menu is empty.", "Menu retrieved"), nil
	}

	var b strings.Builder
	b.WriteString("Menu:\n")
	for i, item := range items {
		fmt.Fprintf(&b, "%3d. %-24s %8.2f  %-8s %s\n",
			i+1, item.Name, item.Price, item.Type, strings.Join(item.Ingredients, ", "))
	}
	return ok(b.String(), fmt.Sprintf("%d menu items", len(items))), nil
}

func (p *Parser) handleMenuAdd(ctx context.Context, params []string) (*CommandResponse, error) {
	if resp := p.requireAdmin(); resp != nil {
		return resp, nil
	}

	price, err := strconv.ParseFloat(params[1], 64)
	if err != nil {
		return fail(fmt.Sprintf("%q is not a valid price", params[1])), nil
	}

	itemType, err := menu.ParseType(params[2])
	if err != nil {
		return fail(err.Error()), nil
	}

	req := menu.CreateItemRequest{
		Name:  params[0],
		Price: price,
		Type:  itemType,
	}
	if len(params) > 3 {
		for _, ing := range strings.Split(params[3], ",") {
			if trimmed := strings.TrimSpace(ing); trimmed != "" {
				req.Ingredients = append(req.Ingredients, trimmed)
			}
		}
	}

	created, err := p.menuAPI.Create(ctx, req)
	if err != nil {
		if resp := p.sessionExpired(err); resp != nil {
			return resp, nil
		}
		p.notifier.Error("Failed to add product")
		return fail(fmt.Sprintf("Failed to add product: %v", err)), nil
	}

	p.lastMenu = nil // stale positions after a mutation
	p.notifier.Success("Product added successfully!")
	return ok(fmt.Sprintf("Added %s (%.2f).", created.Name, created.Price), "Product added"), nil
}

func (p *Parser) handleMenuRemove(ctx context.Context, params []string) (*CommandResponse, error) {
	if resp := p.requireAdmin(); resp != nil {
		return resp, nil
	}

	item, resp := p.menuItemAt(params[0])
	if resp != nil {
		return resp, nil
	}

	if err := p.menuAPI.Delete(ctx, item.ID); err != nil {
		if resp := p.sessionExpired(err); resp != nil {
			return resp, nil
		}
		p.notifier.Error("Failed to remove product")
		return fail(fmt.Sprintf("Failed to remove product: %v", err)), nil
	}

	p.lastMenu = nil
	p.notifier.Success("Product removed")
	return ok(fmt.Sprintf("Removed %s.", item.Name), "Product removed"), nil
}

// menuItemAt resolves a 1-based position against the last listed menu.
func (p *Parser) menuItemAt(raw string) (menu.MenuItem, *CommandResponse) {
	pos, err := strconv.Atoi(raw)
	if err != nil || pos < 1 {
		return menu.MenuItem{}, fail(fmt.Sprintf("%q is not a valid menu position", raw))
	}
	if len(p.lastMenu) == 0 {
		return menu.MenuItem{}, fail("List the menu first so positions are known: menu")
	}
	if pos > len(p.lastMenu) {
		return menu.MenuItem{}, fail(fmt.Sprintf("The menu has only %d items", len(p.lastMenu)))
	}
	return p.lastMenu[pos-1], nil
}
