package hostfuncs

import (
	"github.com/calimero-network/calimero-sdk-js/domain/entities"
	"go.uber.org/zap"
)

// setRegister stores a copy of data. It reports false when data exceeds the
// register size limit. The caller must hold r.mu.
func (r *Runtime) setRegister(register entities.RegisterID, data []byte) bool {
	if len(data) > r.config.maxRegisterSize {
		r.logger.Warn("register write refused",
			zap.Uint64("register", uint64(register)),
			zap.Int("size", len(data)),
			zap.Int("limit", r.config.maxRegisterSize))
		return false
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	r.registers[register] = stored
	return true
}

// Register returns a copy of the register contents.
func (r *Runtime) Register(register entities.RegisterID) ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, ok := r.registers[register]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true
}

// RegisterLen returns the length of register, or entities.RegisterMissing
// when it holds nothing.
func (r *Runtime) RegisterLen(register entities.RegisterID) entities.PtrSizedInt {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, ok := r.registers[register]
	if !ok {
		return entities.RegisterMissing
	}
	return entities.PtrSizedInt(len(data))
}

// ReadRegister copies register into dst. It succeeds only when the register
// exists and dst has exactly the register's length; data is never truncated.
func (r *Runtime) ReadRegister(register entities.RegisterID, dst entities.BufferMut) entities.Bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, ok := r.registers[register]
	if !ok || dst.Len() != len(data) {
		return entities.False
	}
	copy(dst.Bytes(), data)
	return entities.True
}

// ===========================
// Context
// ===========================

// ContextID writes the context id into register.
func (r *Runtime) ContextID(register entities.RegisterID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setRegister(register, r.config.contextID[:])
}

// ExecutorID writes the executor id into register.
func (r *Runtime) ExecutorID(register entities.RegisterID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setRegister(register, r.config.executorID[:])
}
