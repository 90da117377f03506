// Command shimhost runs a guest module against the host import module and
// prints what the call produced:
//
//	shimhost run --wasm guest.wasm --method greet --input world
//	shimhost schema > host.schema.json
//	shimhost functions
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(afero.NewOsFs()).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
