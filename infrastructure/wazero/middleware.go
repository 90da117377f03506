package wazero

import (
	"context"
	"time"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
)

// TraceCalls returns a middleware that logs every host call at debug level
// and every trap at warn level. Traps are re-raised unchanged.
func TraceCalls(logger *zap.Logger) Middleware {
	return func(name string, next api.GoModuleFunc) api.GoModuleFunc {
		return func(ctx context.Context, mod api.Module, stack []uint64) {
			start := time.Now()
			defer func() {
				if r := recover(); r != nil {
					logger.Warn("host call trapped",
						zap.String("function", name),
						zap.String("module", mod.Name()),
						zap.Any("reason", r))
					panic(r)
				}
				logger.Debug("host call",
					zap.String("function", name),
					zap.Duration("elapsed", time.Since(start)))
			}()
			next(ctx, mod, stack)
		}
	}
}

// CallCounter counts host calls per function name. It is not safe for
// concurrent guests.
type CallCounter map[string]int

// Middleware returns a middleware that records calls into c.
func (c CallCounter) Middleware() Middleware {
	return func(name string, next api.GoModuleFunc) api.GoModuleFunc {
		return func(ctx context.Context, mod api.Module, stack []uint64) {
			c[name]++
			next(ctx, mod, stack)
		}
	}
}
