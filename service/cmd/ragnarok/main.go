// Command ragnarok is the operator tool for the Ragnarok rules engine: it
// digests states, replays and resumes journaled matches, runs bot
// simulations and validates card catalogs.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
