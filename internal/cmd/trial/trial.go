// Package trial parses trial service flags and launches the service.
package trial

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/mocktrial/internal/platform/cmd"
	server "github.com/louisbranch/mocktrial/internal/services/trial/app"
)

// Config holds trial command configuration.
type Config struct {
	Port int `env:"MOCKTRIAL_TRIAL_PORT" envDefault:"8095"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The trial gRPC server port")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the trial gRPC service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceTrial, func(ctx context.Context) error {
		return server.Run(ctx, cfg.Port)
	})
}
