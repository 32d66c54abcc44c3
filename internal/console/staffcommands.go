package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tapnserve/pos/internal/staff"
)

func (p *Parser) handleStaffList(ctx context.Context, params []string) (*CommandResponse, error) {
	if resp := p.requireAdmin(); resp != nil {
		return resp, nil
	}

	users, err := p.staffAPI.List(ctx)
	if err != nil {
		if resp := p.sessionExpired(err); resp != nil {
			return resp, nil
		}
		p.notifier.Error("Failed to load staff accounts")
		return fail(fmt.Sprintf("Failed to load staff: %v", err)), nil
	}

	if len(users) == 0 {
		return ok("No staff accounts.", "Staff retrieved"), nil
	}

	var b strings.Builder
	b.WriteString("Staff:\n")
	for i, u := range users {
		fmt.Fprintf(&b, "%3d. %-20s %s\n", i+1, u.Username, strings.Join(u.Roles, ", "))
	}
	return ok(b.String(), fmt.Sprintf("%d staff accounts", len(users))), nil
}

func (p *Parser) handleStaffAdd(ctx context.Context, params []string) (*CommandResponse, error) {
	if resp := p.requireAdmin(); resp != nil {
		return resp, nil
	}

	req := staff.CreateUserRequest{Username: params[0], Password: params[1]}
	created, err := p.staffAPI.Create(ctx, req)
	if err != nil {
		if resp := p.sessionExpired(err); resp != nil {
			return resp, nil
		}
		p.notifier.Error("Failed to add staff account")
		return fail(fmt.Sprintf("Failed to add staff account: %v", err)), nil
	}

	p.notifier.Success("Staff account created")
	return ok(fmt.Sprintf("Added staff account %s.", created.Username), "Staff account created"), nil
}

func (p *Parser) handleStaffRemove(ctx context.Context, params []string) (*CommandResponse, error) {
	if resp := p.requireAdmin(); resp != nil {
		return resp, nil
	}

	pos, err := strconv.Atoi(params[0])
	if err != nil || pos < 1 {
		return fail(fmt.Sprintf("%q is not a valid staff position", params[0])), nil
	}

	users, err := p.staffAPI.List(ctx)
	if err != nil {
		if resp := p.sessionExpired(err); resp != nil {
			return resp, nil
		}
		return fail(fmt.Sprintf("Failed to load staff: %v", err)), nil
	}
	if pos > len(users) {
		return fail(fmt.Sprintf("There are only %d staff accounts", len(users))), nil
	}

	target := users[pos-1]
	if err := p.staffAPI.Delete(ctx, target); err != nil {
		if errors.Is(err, staff.ErrAdminProtected) {
			return fail("Admin accounts cannot be deleted."), nil
		}
		if resp := p.sessionExpired(err); resp != nil {
			return resp, nil
		}
		p.notifier.Error("Failed to remove staff account")
		return fail(fmt.Sprintf("Failed to remove staff account: %v", err)), nil
	}

	p.notifier.Success("Staff account removed")
	return ok(fmt.Sprintf("Removed staff account %s.", target.Username), "Staff account removed"), nil
}
