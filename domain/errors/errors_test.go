package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryError(t *testing.T) {
	err := &MemoryError{
		Err:       ErrOutOfBounds,
		Function:  "storage_read",
		Operation: "read",
		Offset:    65530,
		Length:    16,
	}

	assert.Equal(t, "storage_read: read at offset=65530 length=16: out of bounds", err.Error())
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	wrapped := fmt.Errorf("host call: %w", err)
	var memErr *MemoryError
	require.True(t, errors.As(wrapped, &memErr))
	assert.Equal(t, "storage_read", memErr.Function)
}

func TestMemoryError_NoFunction(t *testing.T) {
	err := &MemoryError{Err: ErrBufferTooLarge, Operation: "descriptor", Offset: 8, Length: 1 << 30}
	assert.Equal(t, "descriptor at offset=8 length=1073741824: buffer too large", err.Error())
}

func TestConfigError(t *testing.T) {
	baseErr := fmt.Errorf("must be 64 hex characters")
	err := &ConfigError{Field: "context_id", Err: baseErr}

	assert.Equal(t, "config validation failed for field 'context_id': must be 64 hex characters", err.Error())
	assert.True(t, errors.Is(err, baseErr))

	err = &ConfigError{Err: baseErr}
	assert.Equal(t, "config validation failed: must be 64 hex characters", err.Error())
}

func TestImportError(t *testing.T) {
	err := &ImportError{Module: "env", Missing: []string{"js_crdt_map_new", "xcall"}}
	assert.Equal(t, "guest imports unknown env functions: js_crdt_map_new, xcall", err.Error())
}
