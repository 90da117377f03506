package shim_test

import (
	"crypto/sha256"
	"encoding/binary"
	"runtime"
	"testing"
	"time"

	"github.com/calimero-network/calimero-sdk-js/domain/entities"
	"github.com/calimero-network/calimero-sdk-js/hostfuncs"
	"github.com/calimero-network/calimero-sdk-js/internal/rawspan"
	"github.com/calimero-network/calimero-sdk-js/shim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// span returns the address and length of b as the integer pair a guest would
// pass.
func span(b []byte) (uint64, uint64) {
	return rawspan.Addr(b), uint64(len(b))
}

func TestBoolToU32(t *testing.T) {
	tests := []struct {
		name string
		in   entities.Bool
		want uint32
	}{
		{"false", entities.False, 0},
		{"true", entities.True, 1},
		{"other passes through", entities.Bool(2), 2},
		{"max passes through", entities.Bool(0xFFFFFFFF), 0xFFFFFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shim.BoolToU32(tt.in))
		})
	}
}

func TestMarshaler_StorageThroughRegisters(t *testing.T) {
	m := shim.New(hostfuncs.NewRuntime())

	key := []byte("k")
	value := []byte("v1")
	kp, kl := span(key)
	vp, vl := span(value)

	assert.Equal(t, uint32(0), m.StorageWrite(kp, kl, vp, vl, 0))
	assert.Equal(t, uint32(1), m.StorageRead(kp, kl, 1))

	n := m.RegisterLen(1)
	require.Equal(t, uint64(2), n)

	dst := make([]byte, n)
	dp, dl := span(dst)
	assert.Equal(t, uint32(1), m.ReadRegister(1, dp, dl))
	assert.Equal(t, "v1", string(dst))

	assert.Equal(t, uint32(1), m.StorageRemove(kp, kl, 2))
	assert.Equal(t, uint32(0), m.StorageRead(kp, kl, 3))
	assert.Equal(t, uint64(entities.RegisterMissing), m.RegisterLen(3))

	runtime.KeepAlive(key)
	runtime.KeepAlive(value)
	runtime.KeepAlive(dst)
}

func TestMarshaler_ReadRegisterDestinationSize(t *testing.T) {
	m := shim.New(hostfuncs.NewRuntime())

	key, value := []byte("key"), []byte("value")
	kp, kl := span(key)
	vp, vl := span(value)
	m.StorageWrite(kp, kl, vp, vl, 0)
	require.Equal(t, uint32(1), m.StorageRead(kp, kl, 5))

	small := make([]byte, 2)
	sp, sl := span(small)
	assert.Equal(t, uint32(0), m.ReadRegister(5, sp, sl))

	exact := make([]byte, m.RegisterLen(5))
	ep, el := span(exact)
	assert.Equal(t, uint32(1), m.ReadRegister(5, ep, el))
	assert.Equal(t, "value", string(exact))

	runtime.KeepAlive(key)
	runtime.KeepAlive(value)
	runtime.KeepAlive(small)
	runtime.KeepAlive(exact)
}

func TestMarshaler_ZeroLengthSpans(t *testing.T) {
	rt := hostfuncs.NewRuntime()
	m := shim.New(rt)

	// A zero length never dereferences the address.
	m.LogUTF8(0xDEAD, 0)
	m.Emit(0xBEEF, 0, 0xBEEF, 0)
	assert.Equal(t, uint32(0), m.StorageRead(0, 0, 0))

	out := rt.Outcome()
	assert.Equal(t, []string{""}, out.Logs)
	require.Len(t, out.Events, 1)
	assert.Equal(t, "", out.Events[0].Kind)
	assert.Empty(t, out.Events[0].Data)
}

func TestMarshaler_EventsAndCommit(t *testing.T) {
	rt := hostfuncs.NewRuntime()
	m := shim.New(rt)

	kind, data, handler := []byte("Added"), []byte(`{"id":1}`), []byte("onAdded")
	kp, kl := span(kind)
	dp, dl := span(data)
	hp, hl := span(handler)

	m.Emit(kp, kl, dp, dl)
	m.EmitWithHandler(kp, kl, dp, dl, hp, hl)

	root, artifact := []byte("root-hash"), []byte("delta")
	rp, rl := span(root)
	ap, al := span(artifact)
	m.Commit(rp, rl, ap, al)

	msg := []byte("hello from guest")
	mp, ml := span(msg)
	m.LogUTF8(mp, ml)

	runtime.KeepAlive(kind)
	runtime.KeepAlive(data)
	runtime.KeepAlive(handler)
	runtime.KeepAlive(root)
	runtime.KeepAlive(artifact)
	runtime.KeepAlive(msg)

	out := rt.Outcome()
	require.Len(t, out.Events, 2)
	assert.Equal(t, "Added", out.Events[0].Kind)
	assert.False(t, out.Events[0].HasHandler())
	assert.Equal(t, []byte("onAdded"), out.Events[1].Handler)
	require.Len(t, out.Commits, 1)
	assert.Equal(t, []byte("root-hash"), out.Commits[0].Root)
	assert.Equal(t, []string{"hello from guest"}, out.Logs)
}

func TestMarshaler_IdentityAndTime(t *testing.T) {
	var ctxID entities.ContextID
	ctxID[0] = 7
	now := time.Unix(10, 0)
	m := shim.New(hostfuncs.NewRuntime(
		hostfuncs.WithContextID(ctxID),
		hostfuncs.WithClock(func() time.Time { return now }),
	))

	m.ContextID(3)
	require.Equal(t, uint64(entities.IDSize), m.RegisterLen(3))
	m.ExecutorID(4)
	require.Equal(t, uint64(entities.IDSize), m.RegisterLen(4))

	ts := make([]byte, 8)
	tp, tl := span(ts)
	m.TimeNow(tp, tl)
	runtime.KeepAlive(ts)
	assert.Equal(t, uint64(now.UnixNano()), binary.LittleEndian.Uint64(ts))
}

func TestMarshaler_Blobs(t *testing.T) {
	m := shim.New(hostfuncs.NewRuntime())

	fd := m.BlobCreate()
	require.NotZero(t, fd)

	payload := []byte("blob payload")
	pp, pl := span(payload)
	assert.Equal(t, uint64(len(payload)), m.BlobWrite(fd, pp, pl))

	id := make([]byte, entities.IDSize)
	ip, il := span(id)
	require.Equal(t, uint32(1), m.BlobClose(fd, ip, il))
	sum := sha256.Sum256(payload)
	assert.Equal(t, sum[:], id)

	rfd := m.BlobOpen(ip, il)
	require.NotZero(t, rfd)

	got := make([]byte, 64)
	gp, gl := span(got)
	n := m.BlobRead(rfd, gp, gl)
	assert.Equal(t, "blob payload", string(got[:n]))
	assert.Zero(t, m.BlobRead(rfd, gp, gl))

	unknown := make([]byte, entities.IDSize)
	up, ul := span(unknown)
	assert.Zero(t, m.BlobOpen(up, ul))

	runtime.KeepAlive(payload)
	runtime.KeepAlive(id)
	runtime.KeepAlive(got)
	runtime.KeepAlive(unknown)
}

// rawHost answers every boolean query with a fixed raw value.
type rawHost struct {
	*hostfuncs.Runtime
	answer entities.Bool
}

func (h rawHost) StorageRead(entities.Buffer, entities.RegisterID) entities.Bool {
	return h.answer
}

func (h rawHost) ReadRegister(entities.RegisterID, entities.BufferMut) entities.Bool {
	return h.answer
}

func TestMarshaler_NonCanonicalBoolPassesThrough(t *testing.T) {
	m := shim.New(rawHost{Runtime: hostfuncs.NewRuntime(), answer: entities.Bool(2)})

	assert.Equal(t, uint32(2), m.StorageRead(0, 0, 0))
	assert.Equal(t, uint32(2), m.ReadRegister(0, 0, 0))
}

func TestMarshaler_Host(t *testing.T) {
	rt := hostfuncs.NewRuntime()
	assert.Same(t, rt, shim.New(rt).Host())
}

func BenchmarkMarshaler_StorageRead(b *testing.B) {
	m := shim.New(hostfuncs.NewRuntime())
	key, value := []byte("bench-key"), []byte("bench-value")
	kp, kl := span(key)
	vp, vl := span(value)
	m.StorageWrite(kp, kl, vp, vl, 0)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.StorageRead(kp, kl, 1)
	}
	runtime.KeepAlive(key)
	runtime.KeepAlive(value)
}
