package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tartampluch/go-wareki/internal/cli"
)

// main delegates to runMain so deferred calls run before os.Exit.
func main() {
	os.Exit(runMain())
}

// runMain wires a signal-aware context into the command line and returns
// the exit code.
func runMain() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return cli.Execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}
