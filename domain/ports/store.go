package ports

import "github.com/calimero-network/calimero-sdk-js/domain/entities"

// KVStore is the persistence behind host storage.
// Implementations must copy keys and values they retain.
type KVStore interface {
	// Get returns the stored value and whether the key exists.
	Get(key []byte) ([]byte, bool)

	// Put stores value and returns the previous value, if any.
	Put(key, value []byte) (previous []byte, existed bool)

	// Delete removes key and returns the removed value, if any.
	Delete(key []byte) (removed []byte, existed bool)

	// Len returns the number of stored keys.
	Len() int
}

// BlobStore is the content-addressed persistence behind host blobs.
type BlobStore interface {
	Put(id entities.BlobID, data []byte) error
	Get(id entities.BlobID) ([]byte, bool, error)
	Has(id entities.BlobID) (bool, error)
}
