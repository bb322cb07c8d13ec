package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(version, buildDate).ExecuteContext(ctx); err != nil {
		log.WithError(err).Error("routedesk failed")
		stop()
		os.Exit(1)
	}
}
