package wazero

import (
	"context"
	"errors"
	"testing"

	sdkErrors "github.com/calimero-network/calimero-sdk-js/domain/errors"
	"github.com/calimero-network/calimero-sdk-js/internal/testutil/wasmbin"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"
)

func FuzzGuestMemory_Buffer(f *testing.F) {
	f.Add(uint64(0), uint64(0))
	f.Add(uint64(100), uint64(16))
	f.Add(uint64(65535), uint64(1))
	f.Add(uint64(1<<32), uint64(1))
	f.Add(uint64(0), uint64(1<<40))

	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	f.Cleanup(func() { _ = r.Close(ctx) })

	mod, err := r.Instantiate(ctx, wasmbin.New().Memory(1).Encode())
	require.NoError(f, err)
	mem := newGuestMemory(mod, "fuzz", DefaultMaxBufferSize)

	f.Fuzz(func(t *testing.T, ptr, length uint64) {
		require.True(t, mod.Memory().Write(0, wasmbin.Descriptor(ptr, length)))

		defer func() {
			r := recover()
			if r == nil {
				return
			}
			err, ok := r.(error)
			require.True(t, ok, "panic value %v is not an error", r)

			var memErr *sdkErrors.MemoryError
			require.True(t, errors.As(err, &memErr))
			require.True(t, errors.Is(err, sdkErrors.ErrOutOfBounds) || errors.Is(err, sdkErrors.ErrBufferTooLarge))
		}()

		view := mem.buffer(0)
		require.Equal(t, int(length), view.Len())
		if length > 0 {
			require.LessOrEqual(t, ptr+length, uint64(mod.Memory().Size()))
		}
	})
}

func TestNewGuestMemory_NoMemory(t *testing.T) {
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	mod, err := r.Instantiate(ctx, wasmbin.New().Encode())
	require.NoError(t, err)

	require.PanicsWithError(t, "log_utf8: memory at offset=0 length=0: module has no memory", func() {
		newGuestMemory(mod, "log_utf8", DefaultMaxBufferSize)
	})
}

func TestHasMemory(t *testing.T) {
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	bare, err := r.Instantiate(ctx, wasmbin.New().Encode())
	require.NoError(t, err)
	require.False(t, hasMemory(bare.Memory()))
	require.False(t, hasMemory(nil))

	withMem, err := r.InstantiateWithConfig(ctx, wasmbin.New().Memory(1).Encode(),
		wazero.NewModuleConfig().WithName("with-memory"))
	require.NoError(t, err)
	require.True(t, hasMemory(withMem.Memory()))
}
