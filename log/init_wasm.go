//go:build wasip1 || tinygo

package log

import (
	"log/slog"

	"github.com/calimero-network/calimero-sdk-js/infrastructure/wasm"
)

// init configures the default slog handler to write through the host.
func init() {
	slog.SetDefault(slog.New(NewHandler(wasm.NewImportHost())))
}
