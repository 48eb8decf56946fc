// Command modelql compiles model files into a GraphQL schema, an example
// operations document, Go models and resolvers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "modelql:", err)
		stop()
		os.Exit(1)
	}
}
