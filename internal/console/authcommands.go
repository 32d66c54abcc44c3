package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/tapnserve/pos/internal/api"
	"github.com/tapnserve/pos/internal/session"
)

func (p *Parser) handleLogin(ctx context.Context, params []string) (*CommandResponse, error) {
	if p.sessions == nil {
		return fail("session store not configured"), nil
	}

	creds := session.Credentials{Username: params[0], Password: params[1]}
	sess, err := p.sessions.Login(ctx, creds)
	if err != nil {
		p.logger.Debug("login failed", "username", creds.Username, "error", err)
		if errors.Is(err, session.ErrInvalidCredentials) {
			p.notifier.Error("Login failed. Please check your credentials.")
			return fail("Login failed. Please check your credentials."), nil
		}
		p.notifier.Error("Failed to connect to server")
		return fail(fmt.Sprintf("Login failed: %v", err)), nil
	}

	p.notifier.Success(fmt.Sprintf("Welcome back, %s! Logged in as %s", sess.Username, sess.Role))
	return ok(
		fmt.Sprintf("Signed in as %s (%s).", sess.Username, sess.Role),
		"Login succeeded",
	), nil
}

func (p *Parser) handleLogout(ctx context.Context, params []string) (*CommandResponse, error) {
	if p.sessions == nil {
		return fail("session store not configured"), nil
	}

	p.sessions.Logout()
	p.cart = nil
	p.notifier.Info("You have been logged out")
	return ok("Signed out.", "Logout succeeded"), nil
}

func (p *Parser) handleWhoAmI(ctx context.Context, params []string) (*CommandResponse, error) {
	if p.sessions == nil || !p.sessions.IsAuthenticated() {
		return fail("Not signed in."), nil
	}
	return ok(
		fmt.Sprintf("%s (%s)", p.sessions.Username(), p.sessions.Role()),
		"Session info",
	), nil
}

// requireAuth gates a command on a live session. A sign-in prompt is returned
// when there is none.
func (p *Parser) requireAuth() *CommandResponse {
	if p.sessions == nil || !p.sessions.IsAuthenticated() {
		return fail("Please sign in first: login <username> <password>")
	}
	return nil
}

// requireAdmin gates a command on the admin role.
func (p *Parser) requireAdmin() *CommandResponse {
	if resp := p.requireAuth(); resp != nil {
		return resp
	}
	if p.sessions.Role() != api.RoleAdmin {
		return fail("This command requires the admin role.")
	}
	return nil
}

// sessionExpired routes a failed refresh back to the login screen: the cart
// workflow is abandoned and the user is told to sign in again.
func (p *Parser) sessionExpired(err error) *CommandResponse {
	if !errors.Is(err, api.ErrSessionExpired) {
		return nil
	}
	p.cart = nil
	p.notifier.Error("Session expired. Please sign in again.")
	return fail("Session expired. Please sign in again: login <username> <password>")
}
