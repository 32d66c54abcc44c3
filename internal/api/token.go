package api

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Role is the privilege level derived from an access token.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Claims is the decoded payload of an access token. The signature is not
// verified here; the backend is the authority and rejects bad tokens.
type Claims struct {
	Subject   string
	Roles     []string
	ExpiresAt time.Time
}

type tokenPayload struct {
	Sub   string          `json:"sub"`
	Roles json.RawMessage `json:"roles"`
	Exp   int64           `json:"exp"`
}

// DecodeClaims extracts the claims from a compact JWT. The roles claim may be
// a JSON array or a single scalar; both forms are normalized to a slice.
func DecodeClaims(token string) (*Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return nil, fmt.Errorf("malformed token: expected 3 segments, got %d", len(parts))
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, fmt.Errorf("decode token payload: %w", err)
	}

	var payload tokenPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal token payload: %w", err)
	}

	claims := &Claims{Subject: payload.Sub}
	if payload.Exp > 0 {
		claims.ExpiresAt = time.Unix(payload.Exp, 0)
	}

	if len(payload.Roles) > 0 {
		var list []string
		if err := json.Unmarshal(payload.Roles, &list); err == nil {
			claims.Roles = list
		} else {
			var single string
			if err := json.Unmarshal(payload.Roles, &single); err != nil {
				return nil, fmt.Errorf("unmarshal roles claim: %w", err)
			}
			claims.Roles = []string{single}
		}
	}

	return claims, nil
}

// Expired reports whether the token expires within skew of now. Tokens
// without an exp claim never count as expired.
func (c *Claims) Expired(now time.Time, skew time.Duration) bool {
	if c == nil || c.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(skew).Before(c.ExpiresAt)
}

// Role derivation policy, applied in order:
//
//  1. any roles entry matching an admin marker (case-insensitive) -> admin
//  2. any roles entry matching an employee marker (case-insensitive) -> employee
//  3. subject containing "admin" (case-insensitive) -> admin
//  4. otherwise -> employee, the lower-privilege default
var (
	adminMarkers    = []string{"ROLE_ADMIN", "ADMIN"}
	employeeMarkers = []string{"ROLE_EMPLOYEE", "EMPLOYEE"}
)

// DeriveRole maps decoded claims to a Role following the policy table above.
func DeriveRole(c *Claims) Role {
	if c == nil {
		return RoleEmployee
	}

	if matchesAnyMarker(c.Roles, adminMarkers) {
		return RoleAdmin
	}
	if matchesAnyMarker(c.Roles, employeeMarkers) {
		return RoleEmployee
	}
	if strings.Contains(strings.ToLower(c.Subject), "admin") {
		return RoleAdmin
	}

	return RoleEmployee
}

func matchesAnyMarker(roles, markers []string) bool {
	for _, role := range roles {
		upper := strings.ToUpper(strings.TrimSpace(role))
		for _, marker := range markers {
			if upper == marker {
				return true
			}
		}
	}
	return false
}

// ParseRole normalizes a persisted role string, defaulting to employee for
// anything unrecognized.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleEmployee
}
