// Command ledger replays one or more per-client transaction streams
// into a final account summary.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ledger-engine/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
