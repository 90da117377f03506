package config

import (
	"fmt"

	"github.com/calimero-network/calimero-sdk-js/domain/ports"
	"github.com/calimero-network/calimero-sdk-js/infrastructure/blobstore"
	"github.com/calimero-network/calimero-sdk-js/infrastructure/kvstore"
	"github.com/spf13/afero"
)

// Stores are the backends selected by the configuration.
type Stores struct {
	KV    ports.KVStore
	Blobs ports.BlobStore

	file *kvstore.FileStore
}

// OpenStores builds the configured backends on fsys, loading the key-value
// snapshot when the file backend is selected.
func (c *Config) OpenStores(fsys afero.Fs) (*Stores, error) {
	s := &Stores{}

	switch c.Storage.Backend {
	case BackendFile:
		fs := kvstore.NewFileStore(kvstore.WithFs(fsys), kvstore.WithPath(c.Storage.Path))
		if err := fs.Load(); err != nil {
			return nil, fmt.Errorf("failed to load storage: %w", err)
		}
		s.KV, s.file = fs, fs
	default:
		s.KV = kvstore.NewMemory()
	}

	switch c.Blobs.Backend {
	case BackendFile:
		s.Blobs = blobstore.NewFileStore(blobstore.WithFs(fsys), blobstore.WithDir(c.Blobs.Dir))
	default:
		s.Blobs = blobstore.NewMemory()
	}

	return s, nil
}

// Flush persists the key-value store when it is file backed.
func (s *Stores) Flush() error {
	if s.file == nil {
		return nil
	}
	if err := s.file.Save(); err != nil {
		return fmt.Errorf("failed to save storage: %w", err)
	}
	return nil
}
