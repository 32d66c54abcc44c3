package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/tapnserve/pos/internal/setup"
)

func (p *Parser) handleSetupCheck(ctx context.Context, params []string) (*CommandResponse, error) {
	needed, err := p.setupAPI.CheckInitialSetup(ctx)
	if err != nil {
		p.notifier.Error("Failed to check setup state")
		return fail(fmt.Sprintf("Failed to check setup state: %v", err)), nil
	}

	if needed {
		return ok(
			"Initial setup has not been completed. Create the admin account with: setup <username> <password> <restaurant name>.",
			"Setup required",
		), nil
	}
	return ok("Initial setup is already complete. Log in with: login <username> <password>.", "Setup complete"), nil
}

func (p *Parser) handleSetup(ctx context.Context, params []string) (*CommandResponse, error) {
	data := setup.AdminSetupData{
		Username:       params[0],
		Password:       params[1],
		RestaurantName: strings.Join(params[2:], " "),
	}
	if err := data.Validate(); err != nil {
		return fail(capitalize(err.Error())), nil
	}

	if err := p.setupAPI.CreateAdminAccount(ctx, data, nil); err != nil {
		p.notifier.Error("Setup failed")
		return fail(fmt.Sprintf("Setup failed: %v", err)), nil
	}

	p.notifier.Success("Admin account created")
	return ok(
		fmt.Sprintf("Admin account %q created for %s. Log in with: login %s <password>.", data.Username, data.RestaurantName, data.Username),
		"Setup complete",
	), nil
}

func (p *Parser) handleRestaurant(ctx context.Context, params []string) (*CommandResponse, error) {
	if resp := p.requireAuth(); resp != nil {
		return resp, nil
	}

	profile, err := p.setupAPI.Profile(ctx)
	if err != nil {
		if resp := p.sessionExpired(err); resp != nil {
			return resp, nil
		}
		p.notifier.Error("Failed to load restaurant profile")
		return fail(fmt.Sprintf("Failed to load restaurant profile: %v", err)), nil
	}

	return ok(fmt.Sprintf("Restaurant: %s (admin account: %s)", profile.RestaurantName, profile.Username), "Restaurant profile"), nil
}
