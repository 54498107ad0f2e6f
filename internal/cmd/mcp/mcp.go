// Package mcp parses MCP command flags and launches the stdio bridge to the
// trial service.
package mcp

import (
	"context"
	"errors"
	"flag"
	"strings"
	"time"

	"github.com/louisbranch/mocktrial/internal/platform/authtoken"
	entrypoint "github.com/louisbranch/mocktrial/internal/platform/cmd"
	"github.com/louisbranch/mocktrial/internal/services/mcp/service"
)

// agentTokenTTL bounds tokens minted for a single MCP process.
const agentTokenTTL = 24 * time.Hour

// Config holds MCP command configuration.
type Config struct {
	Addr  string `env:"MOCKTRIAL_TRIAL_ADDR" envDefault:"localhost:8095"`
	Token string `env:"MOCKTRIAL_MCP_TOKEN"`
	// UserID and JWTSecret mint a token when Token is unset.
	UserID    string `env:"MOCKTRIAL_MCP_USER_ID"`
	JWTSecret string `env:"MOCKTRIAL_TRIAL_JWT_SECRET"`
	JWTIssuer string `env:"MOCKTRIAL_TRIAL_JWT_ISSUER" envDefault:"mocktrial"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "trial server address")
	fs.StringVar(&cfg.UserID, "user", cfg.UserID, "user id to act as when minting a token")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// bearerToken returns the configured token or mints one for UserID.
func (c Config) bearerToken() (string, error) {
	if token := strings.TrimSpace(c.Token); token != "" {
		return token, nil
	}
	if strings.TrimSpace(c.UserID) == "" {
		return "", errors.New("set MOCKTRIAL_MCP_TOKEN or MOCKTRIAL_MCP_USER_ID with MOCKTRIAL_TRIAL_JWT_SECRET")
	}
	return authtoken.Mint(authtoken.Config{
		Secret: []byte(strings.TrimSpace(c.JWTSecret)),
		Issuer: strings.TrimSpace(c.JWTIssuer),
	}, c.UserID, agentTokenTTL)
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	token, err := cfg.bearerToken()
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return service.Run(ctx, service.Config{GRPCAddr: cfg.Addr, Token: token})
	})
}
