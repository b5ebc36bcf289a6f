// Command reviewkit runs a project's linters and tests and reports the
// results.
//
// Usage:
//
//	reviewkit lint [--fail-on warning] <paths...>
//	reviewkit unit [paths...]
//	reviewkit doctor
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, errFindings) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
