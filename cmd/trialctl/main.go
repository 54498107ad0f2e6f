// Package main runs the trialctl operator CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/mocktrial/internal/platform/config"
	"github.com/louisbranch/mocktrial/internal/services/trialctl"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := trialctl.Execute(ctx)
	stop()
	if err != nil {
		config.Exitf("trialctl: %v", err)
	}
}
