package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type testConfig struct {
	Port   int    `env:"MOCKTRIAL_CMD_TEST_PORT" envDefault:"8095"`
	DBPath string `env:"MOCKTRIAL_CMD_TEST_DB_PATH" envDefault:"data/trial.db"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("MOCKTRIAL_CMD_TEST_PORT", "9000")
	t.Setenv("MOCKTRIAL_CMD_TEST_DB_PATH", "env.db")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg := testConfig{}
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "port")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "db")

	if err := ParseArgs(fs, []string{"-port", "9001"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfg.Port != 9001 {
		t.Fatalf("expected flag value for port, got %d", cfg.Port)
	}
	if cfg.DBPath != "env.db" {
		t.Fatalf("expected env db path, got %q", cfg.DBPath)
	}
}

func TestParseConfigRejectsNil(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected nil target error")
	}
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetry(t *testing.T) {
	t.Setenv("MOCKTRIAL_OTEL_ENDPOINT", "")
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceTrial, nil); err == nil {
		t.Fatal("expected missing run function error")
	}

	want := errors.New("run failed")
	if err := RunWithTelemetry(context.Background(), ServiceTrial, func(context.Context) error { return want }); !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}
