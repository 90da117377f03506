package hostfuncs

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/calimero-network/calimero-sdk-js/domain/entities"
	"github.com/calimero-network/calimero-sdk-js/infrastructure/blobstore"
	"github.com/calimero-network/calimero-sdk-js/infrastructure/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func buf(s string) entities.Buffer {
	return entities.BufferFrom([]byte(s))
}

func readRegister(t *testing.T, r *Runtime, reg entities.RegisterID) []byte {
	t.Helper()
	n := r.RegisterLen(reg)
	require.NotEqual(t, entities.RegisterMissing, n, "register %d is empty", reg)
	dst := make([]byte, n)
	require.Equal(t, entities.True, r.ReadRegister(reg, entities.BufferMutFrom(dst)))
	return dst
}

func TestRuntime_StorageRoundTrip(t *testing.T) {
	r := NewRuntime()

	assert.Equal(t, entities.False, r.StorageWrite(buf("k"), buf("v1"), 0))
	assert.Equal(t, entities.RegisterMissing, r.RegisterLen(0))

	assert.Equal(t, entities.True, r.StorageRead(buf("k"), 1))
	assert.Equal(t, []byte("v1"), readRegister(t, r, 1))

	assert.Equal(t, entities.True, r.StorageWrite(buf("k"), buf("v2"), 2))
	assert.Equal(t, []byte("v1"), readRegister(t, r, 2))

	assert.Equal(t, entities.True, r.StorageRemove(buf("k"), 3))
	assert.Equal(t, []byte("v2"), readRegister(t, r, 3))

	assert.Equal(t, entities.False, r.StorageRemove(buf("k"), 4))
	assert.Equal(t, entities.False, r.StorageRead(buf("k"), 4))
	assert.Equal(t, 0, r.Store().Len())
}

func TestRuntime_SharedStore(t *testing.T) {
	store := kvstore.NewMemory()
	first := NewRuntime(WithStore(store))
	second := NewRuntime(WithStore(store))

	first.StorageWrite(buf("shared"), buf("value"), 0)

	assert.Equal(t, entities.True, second.StorageRead(buf("shared"), 0))
	assert.Equal(t, entities.RegisterMissing, first.RegisterLen(0))
}

func TestRuntime_ReadRegisterExactLength(t *testing.T) {
	r := NewRuntime()
	r.StorageWrite(buf("k"), buf("hello"), 0)
	require.Equal(t, entities.True, r.StorageRead(buf("k"), 7))

	small := make([]byte, 3)
	assert.Equal(t, entities.False, r.ReadRegister(7, entities.BufferMutFrom(small)))
	assert.Equal(t, []byte{0, 0, 0}, small)

	large := make([]byte, 8)
	assert.Equal(t, entities.False, r.ReadRegister(7, entities.BufferMutFrom(large)))

	exact := make([]byte, 5)
	assert.Equal(t, entities.True, r.ReadRegister(7, entities.BufferMutFrom(exact)))
	assert.Equal(t, "hello", string(exact))

	assert.Equal(t, entities.False, r.ReadRegister(99, entities.BufferMutFrom(nil)))
}

func TestRuntime_EmptyRegister(t *testing.T) {
	r := NewRuntime()
	r.StorageWrite(buf("k"), entities.BufferFrom(nil), 0)
	require.Equal(t, entities.True, r.StorageRead(buf("k"), 1))

	assert.Equal(t, entities.PtrSizedInt(0), r.RegisterLen(1))
	assert.Equal(t, entities.True, r.ReadRegister(1, entities.BufferMutFrom(nil)))
}

func TestRuntime_MaxRegisterSize(t *testing.T) {
	r := NewRuntime(WithMaxRegisterSize(4))
	r.StorageWrite(buf("big"), buf("too large"), 0)

	assert.Equal(t, entities.RegisterOverflow, r.StorageRead(buf("big"), 1))
	assert.Equal(t, entities.RegisterMissing, r.RegisterLen(1))
	assert.Equal(t, entities.False, r.StorageRead(buf("absent"), 1))
}

func TestRuntime_StorageOverflowIsDistinct(t *testing.T) {
	r := NewRuntime(WithMaxRegisterSize(4))
	require.Equal(t, entities.False, r.StorageWrite(buf("k"), buf("too large"), 0))

	got := r.StorageWrite(buf("k"), buf("ok"), 1)
	assert.Equal(t, entities.RegisterOverflow, got)
	assert.Equal(t, entities.BoolOther, got.Kind())
	assert.Equal(t, entities.RegisterMissing, r.RegisterLen(1))

	require.Equal(t, entities.True, r.StorageRead(buf("k"), 2))
	assert.Equal(t, []byte("ok"), readRegister(t, r, 2))

	require.Equal(t, entities.True, r.StorageWrite(buf("k"), buf("too large"), 3))
	assert.Equal(t, entities.RegisterOverflow, r.StorageRemove(buf("k"), 4))
	assert.Equal(t, entities.False, r.StorageRead(buf("k"), 5))
}

func TestRuntime_Identity(t *testing.T) {
	var ctxID entities.ContextID
	var execID entities.ExecutorID
	ctxID[0], execID[31] = 0xAA, 0xBB

	r := NewRuntime(WithContextID(ctxID), WithExecutorID(execID))
	r.ContextID(1)
	r.ExecutorID(2)

	assert.Equal(t, ctxID[:], readRegister(t, r, 1))
	assert.Equal(t, execID[:], readRegister(t, r, 2))
}

func TestRuntime_Lifecycle(t *testing.T) {
	r := NewRuntime(WithInput([]byte(`{"name":"x"}`)))
	r.Input(0)
	assert.Equal(t, `{"name":"x"}`, string(readRegister(t, r, 0)))

	value := []byte("result")
	r.ValueReturn(entities.BufferFrom(value), false)
	value[0] = 'X'

	out := r.Outcome()
	assert.Equal(t, []byte("result"), out.Returned)
	assert.False(t, out.ReturnedError)
	assert.False(t, out.Failed())

	r.ValueReturn(buf("bad input"), true)
	out = r.Outcome()
	assert.Equal(t, []byte("bad input"), out.Returned)
	assert.True(t, out.ReturnedError)

	r.PanicUTF8("boom", "src/index.ts:3:7")
	out = r.Outcome()
	require.True(t, out.Failed())
	assert.EqualError(t, out.Panic, "guest panicked at src/index.ts:3:7: boom")
}

func TestRuntime_LogsAndEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := NewRuntime(WithLogger(zap.New(core)))

	line := []byte("hello")
	r.LogUTF8(string(line))
	r.LogUTF8("")
	r.Emit(entities.NewEvent("ItemAdded", buf("payload")))
	r.EmitWithHandler(entities.NewEvent("ItemRemoved", entities.BufferFrom(nil)), buf("on_removed"))
	r.Commit(buf("root"), buf("artifact"))

	out := r.Outcome()
	assert.Equal(t, []string{"hello", ""}, out.Logs)
	require.Len(t, out.Events, 2)
	assert.Equal(t, "ItemAdded", out.Events[0].Kind)
	assert.Equal(t, []byte("payload"), out.Events[0].Data)
	assert.False(t, out.Events[0].HasHandler())
	assert.Equal(t, "ItemRemoved", out.Events[1].Kind)
	assert.Empty(t, out.Events[1].Data)
	assert.Equal(t, []byte("on_removed"), out.Events[1].Handler)
	require.Len(t, out.Commits, 1)
	assert.Equal(t, []byte("root"), out.Commits[0].Root)
	assert.Equal(t, []byte("artifact"), out.Commits[0].Artifact)

	assert.Equal(t, 2, logs.FilterMessage("guest log").Len())
	assert.Equal(t, 2, logs.FilterMessage("guest event").Len())
}

func TestRuntime_OutcomeIsSnapshot(t *testing.T) {
	r := NewRuntime()
	r.LogUTF8("one")
	out := r.Outcome()
	r.LogUTF8("two")

	assert.Equal(t, []string{"one"}, out.Logs)
}

func TestRuntime_TimeNow(t *testing.T) {
	now := time.Unix(1700000000, 42)
	r := NewRuntime(WithClock(func() time.Time { return now }))

	dst := make([]byte, 8)
	r.TimeNow(entities.BufferMutFrom(dst))
	assert.Equal(t, uint64(now.UnixNano()), binary.LittleEndian.Uint64(dst))

	short := []byte{1, 2, 3}
	r.TimeNow(entities.BufferMutFrom(short))
	assert.Equal(t, []byte{1, 2, 3}, short)
}

func TestRuntime_BlobWriteAndRead(t *testing.T) {
	blobs := blobstore.NewMemory()
	r := NewRuntime(WithBlobStore(blobs))

	fd := r.BlobCreate()
	require.NotEqual(t, entities.InvalidBlobFd, fd)
	assert.Equal(t, entities.PtrSizedInt(5), r.BlobWrite(fd, buf("hello")))
	assert.Equal(t, entities.PtrSizedInt(6), r.BlobWrite(fd, buf(" world")))

	id := make([]byte, entities.IDSize)
	require.Equal(t, entities.True, r.BlobClose(fd, entities.BufferMutFrom(id)))
	sum := sha256.Sum256([]byte("hello world"))
	assert.Equal(t, sum[:], id)
	assert.Equal(t, 1, blobs.Len())

	assert.Equal(t, entities.False, r.BlobClose(fd, entities.BufferMutFrom(id)), "fd is closed")

	rfd := r.BlobOpen(entities.BufferFrom(id))
	require.NotEqual(t, entities.InvalidBlobFd, rfd)
	assert.NotEqual(t, fd, rfd)

	chunk := make([]byte, 4)
	var got []byte
	for {
		n := r.BlobRead(rfd, entities.BufferMutFrom(chunk))
		if n == 0 {
			break
		}
		got = append(got, chunk[:n]...)
	}
	assert.Equal(t, "hello world", string(got))

	// Closing a read handle reports the id it was opened with.
	again := make([]byte, entities.IDSize)
	assert.Equal(t, entities.True, r.BlobClose(rfd, entities.BufferMutFrom(again)))
	assert.Equal(t, id, again)
}

func TestRuntime_BlobFailures(t *testing.T) {
	r := NewRuntime()

	unknown := make([]byte, entities.IDSize)
	assert.Equal(t, entities.InvalidBlobFd, r.BlobOpen(entities.BufferFrom(unknown)))
	assert.Equal(t, entities.InvalidBlobFd, r.BlobOpen(buf("short")))

	assert.Equal(t, entities.PtrSizedInt(0), r.BlobRead(42, entities.BufferMutFrom(make([]byte, 4))))
	assert.Equal(t, entities.PtrSizedInt(0), r.BlobWrite(42, buf("x")))
	assert.Equal(t, entities.False, r.BlobClose(42, entities.BufferMutFrom(make([]byte, 32))))

	fd := r.BlobCreate()
	assert.Equal(t, entities.PtrSizedInt(0), r.BlobRead(fd, entities.BufferMutFrom(make([]byte, 4))), "write handle is not readable")
	assert.Equal(t, entities.False, r.BlobClose(fd, entities.BufferMutFrom(make([]byte, 16))), "destination too small")
	assert.Equal(t, entities.True, r.BlobClose(fd, entities.BufferMutFrom(make([]byte, 32))), "handle stays open after a failed close")
}

func TestRuntime_BlobSizeLimit(t *testing.T) {
	r := NewRuntime(WithMaxBlobSize(4))
	fd := r.BlobCreate()

	assert.Equal(t, entities.PtrSizedInt(4), r.BlobWrite(fd, buf("abcdef")))
	assert.Equal(t, entities.PtrSizedInt(0), r.BlobWrite(fd, buf("gh")))
}

type failingBlobStore struct{}

func (failingBlobStore) Put(entities.BlobID, []byte) error { return errors.New("disk full") }
func (failingBlobStore) Get(entities.BlobID) ([]byte, bool, error) {
	return nil, false, errors.New("disk gone")
}
func (failingBlobStore) Has(entities.BlobID) (bool, error) { return false, nil }

func TestRuntime_BlobStoreErrors(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := NewRuntime(WithBlobStore(failingBlobStore{}), WithLogger(zap.New(core)))

	fd := r.BlobCreate()
	r.BlobWrite(fd, buf("data"))
	assert.Equal(t, entities.False, r.BlobClose(fd, entities.BufferMutFrom(make([]byte, 32))))
	assert.Equal(t, entities.InvalidBlobFd, r.BlobOpen(entities.BufferFrom(make([]byte, 32))))
	assert.Equal(t, 2, logs.Len())
}

func TestLogger_DefaultIsNop(t *testing.T) {
	require.NotNil(t, Logger())
}

func TestRuntime_RandomBytes(t *testing.T) {
	r := NewRuntime(WithRandom(bytes.NewReader([]byte{1, 2, 3, 4, 5})))

	dst := make([]byte, 4)
	r.RandomBytes(entities.BufferMutFrom(dst))
	assert.Equal(t, []byte{1, 2, 3, 4}, dst)

	crypto := NewRuntime()
	a, b := make([]byte, 32), make([]byte, 32)
	crypto.RandomBytes(entities.BufferMutFrom(a))
	crypto.RandomBytes(entities.BufferMutFrom(b))
	assert.NotEqual(t, a, b)
}

func TestRuntime_Ed25519Verify(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	msg := []byte("signed payload")
	sig := ed25519.Sign(priv, msg)

	r := NewRuntime()
	assert.Equal(t, entities.True, r.Ed25519Verify(entities.BufferFrom(sig), entities.BufferFrom(pub), entities.BufferFrom(msg)))
	assert.Equal(t, entities.False, r.Ed25519Verify(entities.BufferFrom(sig), entities.BufferFrom(pub), buf("tampered")))
	assert.Equal(t, entities.False, r.Ed25519Verify(buf("short"), entities.BufferFrom(pub), entities.BufferFrom(msg)))
}
