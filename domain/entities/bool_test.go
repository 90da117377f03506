package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBool_Kind(t *testing.T) {
	tests := []struct {
		name   string
		value  Bool
		want   BoolKind
		native bool
		ok     bool
	}{
		{name: "false", value: False, want: BoolFalse, native: false, ok: true},
		{name: "true", value: True, want: BoolTrue, native: true, ok: true},
		{name: "conflict code", value: Bool(2), want: BoolOther, ok: false},
		{name: "max", value: Bool(^uint32(0)), want: BoolOther, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.Kind())

			native, ok := tt.value.TryBool()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.native, native)
			assert.Equal(t, uint32(tt.value), tt.value.Raw())
		})
	}
}

func TestBoolFrom(t *testing.T) {
	assert.Equal(t, True, BoolFrom(true))
	assert.Equal(t, False, BoolFrom(false))
}

func TestBool_String(t *testing.T) {
	assert.Equal(t, "true", True.String())
	assert.Equal(t, "false", False.String())
	assert.Equal(t, "other(7)", Bool(7).String())
}
