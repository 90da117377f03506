package wazero

import (
	"context"

	"github.com/calimero-network/calimero-sdk-js/domain/ports"
)

// contextKey is a private type for context keys.
type contextKey struct {
	name string
}

var hostKey = &contextKey{name: "host"}

// WithHost binds the environment that serves host calls made under ctx.
func WithHost(ctx context.Context, env ports.Environment) context.Context {
	return context.WithValue(ctx, hostKey, env)
}

// HostFromContext retrieves the environment bound with WithHost.
func HostFromContext(ctx context.Context) (ports.Environment, bool) {
	env, ok := ctx.Value(hostKey).(ports.Environment)
	return env, ok && env != nil
}
