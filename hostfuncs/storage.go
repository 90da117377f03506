package hostfuncs

import (
	"github.com/calimero-network/calimero-sdk-js/domain/entities"
)

// StorageRead delivers the value stored under key into register.
func (r *Runtime) StorageRead(key entities.Buffer, register entities.RegisterID) entities.Bool {
	value, ok := r.config.store.Get(key.Bytes())
	if !ok {
		return entities.False
	}

	return r.deliver(register, value)
}

// StorageWrite stores value under key. When a previous value existed it is
// delivered into register and True is returned. The write happens even when
// the previous value does not fit a register.
func (r *Runtime) StorageWrite(key, value entities.Buffer, register entities.RegisterID) entities.Bool {
	previous, existed := r.config.store.Put(key.Bytes(), value.Bytes())
	if !existed {
		return entities.False
	}

	return r.deliver(register, previous)
}

// StorageRemove deletes key. When a value was removed it is delivered into
// register and True is returned.
func (r *Runtime) StorageRemove(key entities.Buffer, register entities.RegisterID) entities.Bool {
	removed, existed := r.config.store.Delete(key.Bytes())
	if !existed {
		return entities.False
	}

	return r.deliver(register, removed)
}

// deliver places a value found in storage into register. A value too large
// for a register yields RegisterOverflow so callers can tell it from absence.
func (r *Runtime) deliver(register entities.RegisterID, data []byte) entities.Bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.setRegister(register, data) {
		return entities.RegisterOverflow
	}
	return entities.True
}
