package entities

import "strconv"

// Bool is the host boolean. It is a tri-state value: besides False and True the
// host may hand back any other raw value (for example an error code), which must
// be preserved rather than collapsed.
type Bool uint32

const (
	False Bool = 0
	True  Bool = 1

	// RegisterOverflow is returned by the storage functions when a value
	// exists but is larger than a register may hold. The register is left
	// untouched.
	RegisterOverflow Bool = 2
)

// BoolKind tags the three shapes a Bool can take.
type BoolKind uint8

const (
	BoolFalse BoolKind = iota
	BoolTrue
	BoolOther
)

// BoolFrom converts a native bool.
func BoolFrom(v bool) Bool {
	if v {
		return True
	}
	return False
}

// Kind reports which of the three shapes b has.
func (b Bool) Kind() BoolKind {
	switch b {
	case False:
		return BoolFalse
	case True:
		return BoolTrue
	default:
		return BoolOther
	}
}

// TryBool returns the native value when b is strictly False or True.
// ok is false for any other raw value.
func (b Bool) TryBool() (value bool, ok bool) {
	switch b {
	case False:
		return false, true
	case True:
		return true, true
	default:
		return false, false
	}
}

// Raw returns the underlying integer.
func (b Bool) Raw() uint32 {
	return uint32(b)
}

func (b Bool) String() string {
	switch b.Kind() {
	case BoolFalse:
		return "false"
	case BoolTrue:
		return "true"
	default:
		return "other(" + strconv.FormatUint(uint64(b), 10) + ")"
	}
}
