package kvstore

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// fileStoreConfig holds configuration for the FileStore.
type fileStoreConfig struct {
	fs       afero.Fs    // Filesystem holding the snapshot
	path     string      // Path to the snapshot file
	dirPerm  os.FileMode // Permission for created directories
	filePerm os.FileMode // Permission for the snapshot file
}

func defaultFileStoreConfig() fileStoreConfig {
	return fileStoreConfig{
		fs:       afero.NewOsFs(),
		path:     filepath.Join(os.Getenv("HOME"), ".calimero-js", "storage.yaml"),
		dirPerm:  0o755,
		filePerm: 0o600,
	}
}

// FileStoreOption configures a FileStore instance.
type FileStoreOption func(*fileStoreConfig)

// WithPath sets the path to the snapshot file.
func WithPath(path string) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.path = path
	}
}

// WithFs sets the filesystem the snapshot lives on.
func WithFs(fsys afero.Fs) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.fs = fsys
	}
}

// WithFilePermissions sets the file permissions for the snapshot file.
// Default is 0o600 (user-only).
func WithFilePermissions(perm os.FileMode) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.filePerm = perm
	}
}

// WithDirPermissions sets the directory permissions for the snapshot directory.
// Default is 0o755.
func WithDirPermissions(perm os.FileMode) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.dirPerm = perm
	}
}

// snapshot is the on-disk form: hex keys to hex values.
type snapshot struct {
	Entries map[string]string `yaml:"entries"`
}

// FileStore is an in-memory store persisted as a YAML snapshot.
// Changes are only durable after Save.
type FileStore struct {
	*Memory
	config fileStoreConfig
}

// NewFileStore creates a FileStore with the given options. Call Load to read
// an existing snapshot.
func NewFileStore(opts ...FileStoreOption) *FileStore {
	cfg := defaultFileStoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &FileStore{Memory: NewMemory(), config: cfg}
}

// Load replaces the store contents with the snapshot on disk.
// A missing file yields an empty store.
func (s *FileStore) Load() error {
	data, err := afero.ReadFile(s.config.fs, s.config.path)
	if os.IsNotExist(err) {
		s.reset(map[string][]byte{})
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read storage snapshot: %w", err)
	}

	var snap snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to parse storage snapshot: %w", err)
	}

	entries := make(map[string][]byte, len(snap.Entries))
	for k, v := range snap.Entries {
		key, err := hex.DecodeString(k)
		if err != nil {
			return fmt.Errorf("failed to decode snapshot key %q: %w", k, err)
		}
		value, err := hex.DecodeString(v)
		if err != nil {
			return fmt.Errorf("failed to decode snapshot value for key %q: %w", k, err)
		}
		entries[string(key)] = value
	}
	s.reset(entries)
	return nil
}

// Save writes the current contents to disk.
func (s *FileStore) Save() error {
	s.mu.RLock()
	snap := snapshot{Entries: make(map[string]string, len(s.data))}
	for k, v := range s.data {
		snap.Entries[hex.EncodeToString([]byte(k))] = hex.EncodeToString(v)
	}
	s.mu.RUnlock()

	data, err := yaml.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("failed to marshal storage snapshot: %w", err)
	}

	dir := filepath.Dir(s.config.path)
	if err := s.config.fs.MkdirAll(dir, s.config.dirPerm); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	if err := afero.WriteFile(s.config.fs, s.config.path, data, s.config.filePerm); err != nil {
		return fmt.Errorf("failed to write storage snapshot: %w", err)
	}
	return nil
}

// Path returns the path to the backing file.
func (s *FileStore) Path() string {
	return s.config.path
}

func (s *FileStore) reset(entries map[string][]byte) {
	s.mu.Lock()
	s.data = entries
	s.mu.Unlock()
}
