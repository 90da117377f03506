package hostfuncs

import (
	"encoding/binary"
	"strings"

	"github.com/calimero-network/calimero-sdk-js/domain/entities"
	"go.uber.org/zap"
)

// TimestampSize is the width of the TimeNow encoding: little-endian unix
// nanoseconds.
const TimestampSize = 8

// Emit records an event.
func (r *Runtime) Emit(event entities.Event) {
	r.record(entities.EmittedEvent{
		Kind: strings.Clone(event.Kind),
		Data: owned(event.Data),
	})
}

// EmitWithHandler records an event together with its handler token.
func (r *Runtime) EmitWithHandler(event entities.Event, handler entities.Buffer) {
	r.record(entities.EmittedEvent{
		Kind:    strings.Clone(event.Kind),
		Data:    owned(event.Data),
		Handler: owned(handler),
	})
}

func (r *Runtime) record(ev entities.EmittedEvent) {
	r.mu.Lock()
	r.outcome.Events = append(r.outcome.Events, ev)
	r.mu.Unlock()

	r.logger.Debug("guest event", zap.String("kind", ev.Kind), zap.Int("size", len(ev.Data)))
}

// Commit records a root/artifact pair.
func (r *Runtime) Commit(root, artifact entities.Buffer) {
	c := entities.Commit{Root: owned(root), Artifact: owned(artifact)}

	r.mu.Lock()
	r.outcome.Commits = append(r.outcome.Commits, c)
	r.mu.Unlock()

	r.logger.Debug("guest commit", zap.Int("root_size", len(c.Root)), zap.Int("artifact_size", len(c.Artifact)))
}

// TimeNow writes the current time as little-endian unix nanoseconds into the
// first TimestampSize bytes of dst. Shorter destinations are left untouched.
func (r *Runtime) TimeNow(dst entities.BufferMut) {
	if dst.Len() < TimestampSize {
		r.logger.Warn("time_now destination too small", zap.Int("size", dst.Len()))
		return
	}
	binary.LittleEndian.PutUint64(dst.Bytes(), uint64(r.config.clock().UnixNano()))
}

// owned copies a borrowed view into a non-nil slice.
func owned(b entities.Buffer) []byte {
	out := make([]byte, b.Len())
	copy(out, b.Bytes())
	return out
}
