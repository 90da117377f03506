package hostfuncs

import (
	"crypto/ed25519"
	"io"

	"github.com/calimero-network/calimero-sdk-js/domain/entities"
	"go.uber.org/zap"
)

// RandomBytes fills dst with cryptographically secure random bytes.
func (r *Runtime) RandomBytes(dst entities.BufferMut) {
	if _, err := io.ReadFull(r.config.random, dst.Bytes()); err != nil {
		r.logger.Error("random source failed", zap.Error(err))
	}
}

// Ed25519Verify reports whether signature is a valid signature of message by
// publicKey. Malformed keys or signatures verify as False.
func (r *Runtime) Ed25519Verify(signature, publicKey, message entities.Buffer) entities.Bool {
	if publicKey.Len() != ed25519.PublicKeySize || signature.Len() != ed25519.SignatureSize {
		return entities.False
	}
	return entities.BoolFrom(ed25519.Verify(publicKey.Bytes(), message.Bytes(), signature.Bytes()))
}
