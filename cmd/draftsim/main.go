// Command draftsim runs simulated drafts against a chemdraft server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
