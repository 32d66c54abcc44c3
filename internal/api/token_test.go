package api

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"
)

func makeToken(t *testing.T, payload map[string]interface{}) string {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body := base64.RawURLEncoding.EncodeToString(raw)
	return header + "." + body + ".sig"
}

func TestDecodeClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name      string
		token     string
		wantErr   bool
		wantSub   string
		wantRoles []string
	}{
		{
			name:      "rolesArray",
			token:     makeToken(t, map[string]interface{}{"sub": "alice", "roles": []string{"ROLE_ADMIN"}, "exp": exp}),
			wantSub:   "alice",
			wantRoles: []string{"ROLE_ADMIN"},
		},
		{
			name:      "rolesScalar",
			token:     makeToken(t, map[string]interface{}{"sub": "bob", "roles": "ROLE_EMPLOYEE"}),
			wantSub:   "bob",
			wantRoles: []string{"ROLE_EMPLOYEE"},
		},
		{
			name:    "noRoles",
			token:   makeToken(t, map[string]interface{}{"sub": "carol"}),
			wantSub: "carol",
		},
		{
			name:    "malformedToken",
			token:   "not-a-jwt",
			wantErr: true,
		},
		{
			name:    "badBase64",
			token:   "header.%%%.sig",
			wantErr: true,
		},
		{
			name:    "badJSON",
			token:   "header." + base64.RawURLEncoding.EncodeToString([]byte("nope")) + ".sig",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := DecodeClaims(tt.token)
			if tt.wantErr {
				if err == nil {
					t.Fatal("DecodeClaims() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeClaims() error = %v", err)
			}
			if claims.Subject != tt.wantSub {
				t.Errorf("Subject = %q, want %q", claims.Subject, tt.wantSub)
			}
			if len(claims.Roles) != len(tt.wantRoles) {
				t.Fatalf("Roles = %v, want %v", claims.Roles, tt.wantRoles)
			}
			for i, role := range tt.wantRoles {
				if claims.Roles[i] != role {
					t.Errorf("Roles[%d] = %q, want %q", i, claims.Roles[i], role)
				}
			}
		})
	}
}

func TestDecodeClaimsExpiry(t *testing.T) {
	exp := time.Now().Add(30 * time.Second)
	token := makeToken(t, map[string]interface{}{"sub": "alice", "exp": exp.Unix()})

	claims, err := DecodeClaims(token)
	if err != nil {
		t.Fatalf("DecodeClaims() error = %v", err)
	}

	if claims.Expired(time.Now(), 0) {
		t.Error("Expired() = true for a token valid for 30s")
	}
	if !claims.Expired(time.Now(), time.Minute) {
		t.Error("Expired() = false with a skew larger than the remaining lifetime")
	}
}

func TestExpiredWithoutExpClaim(t *testing.T) {
	claims := &Claims{Subject: "alice"}
	if claims.Expired(time.Now(), time.Hour) {
		t.Error("Expired() = true for a token without exp claim")
	}

	var nilClaims *Claims
	if nilClaims.Expired(time.Now(), 0) {
		t.Error("Expired() = true for nil claims")
	}
}

func TestDeriveRole(t *testing.T) {
	tests := []struct {
		name   string
		claims *Claims
		want   Role
	}{
		{
			name:   "adminMarker",
			claims: &Claims{Subject: "alice", Roles: []string{"ROLE_ADMIN"}},
			want:   RoleAdmin,
		},
		{
			name:   "bareAdminMarker",
			claims: &Claims{Subject: "alice", Roles: []string{"ADMIN"}},
			want:   RoleAdmin,
		},
		{
			name:   "caseInsensitiveMarker",
			claims: &Claims{Subject: "alice", Roles: []string{"role_admin"}},
			want:   RoleAdmin,
		},
		{
			name:   "employeeMarker",
			claims: &Claims{Subject: "admin-adjacent", Roles: []string{"ROLE_EMPLOYEE"}},
			want:   RoleEmployee,
		},
		{
			name: "employeeMarkerBeatsAdminSubject",
			// The roles claim wins over the subject fallback.
			claims: &Claims{Subject: "administrator", Roles: []string{"EMPLOYEE"}},
			want:   RoleEmployee,
		},
		{
			name:   "adminMarkerBeatsEmployeeMarker",
			claims: &Claims{Subject: "bob", Roles: []string{"ROLE_EMPLOYEE", "ROLE_ADMIN"}},
			want:   RoleAdmin,
		},
		{
			name:   "subjectFallback",
			claims: &Claims{Subject: "admin"},
			want:   RoleAdmin,
		},
		{
			name:   "subjectContainsAdmin",
			claims: &Claims{Subject: "store-ADMIN-01"},
			want:   RoleAdmin,
		},
		{
			name:   "unknownRolesIgnored",
			claims: &Claims{Subject: "bob", Roles: []string{"ROLE_MANAGER"}},
			want:   RoleEmployee,
		},
		{
			name:   "defaultEmployee",
			claims: &Claims{Subject: "bob"},
			want:   RoleEmployee,
		},
		{
			name: "nilClaims",
			want: RoleEmployee,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveRole(tt.claims); got != tt.want {
				t.Errorf("DeriveRole() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"admin", RoleAdmin},
		{"ADMIN", RoleAdmin},
		{" admin ", RoleAdmin},
		{"employee", RoleEmployee},
		{"manager", RoleEmployee},
		{"", RoleEmployee},
	}

	for _, tt := range tests {
		if got := ParseRole(tt.in); got != tt.want {
			t.Errorf("ParseRole(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
