package mcp

import (
	"flag"
	"testing"

	"github.com/louisbranch/mocktrial/internal/platform/authtoken"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"MOCKTRIAL_TRIAL_ADDR", "MOCKTRIAL_MCP_TOKEN", "MOCKTRIAL_MCP_USER_ID", "MOCKTRIAL_TRIAL_JWT_SECRET", "MOCKTRIAL_TRIAL_JWT_ISSUER"} {
		t.Setenv(key, "")
	}
}

func TestParseConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := ParseConfig(flag.NewFlagSet("mcp", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != "localhost:8095" {
		t.Fatalf("addr = %q, want localhost:8095", cfg.Addr)
	}
	if cfg.JWTIssuer != authtoken.DefaultIssuer {
		t.Fatalf("issuer = %q, want %q", cfg.JWTIssuer, authtoken.DefaultIssuer)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MOCKTRIAL_TRIAL_ADDR", "env-trial:1")
	cfg, err := ParseConfig(flag.NewFlagSet("mcp", flag.ContinueOnError), []string{"-addr", "flag-trial:2", "-user", "agent"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != "flag-trial:2" || cfg.UserID != "agent" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestBearerTokenPrefersExplicitToken(t *testing.T) {
	token, err := Config{Token: " given ", UserID: "agent"}.bearerToken()
	if err != nil {
		t.Fatalf("bearer token: %v", err)
	}
	if token != "given" {
		t.Fatalf("token = %q, want given", token)
	}
}

func TestBearerTokenMintsForUser(t *testing.T) {
	cfg := Config{UserID: "agent", JWTSecret: "0123456789abcdef0123456789abcdef", JWTIssuer: authtoken.DefaultIssuer}
	token, err := cfg.bearerToken()
	if err != nil {
		t.Fatalf("bearer token: %v", err)
	}
	principal, err := authtoken.Verify(token, authtoken.Config{Secret: []byte(cfg.JWTSecret), Issuer: cfg.JWTIssuer})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if principal.UserID != "agent" {
		t.Fatalf("user = %q, want agent", principal.UserID)
	}
}

func TestBearerTokenRequiresIdentity(t *testing.T) {
	if _, err := (Config{}).bearerToken(); err == nil {
		t.Fatal("expected error without token or user")
	}
	if _, err := (Config{UserID: "agent", JWTSecret: "short", JWTIssuer: "mocktrial"}).bearerToken(); err == nil {
		t.Fatal("expected error for short secret")
	}
}
