package blobstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/calimero-network/calimero-sdk-js/domain/entities"
	"github.com/calimero-network/calimero-sdk-js/domain/ports"
	"github.com/spf13/afero"
)

// Compile-time interface compliance check
var _ ports.BlobStore = (*FileStore)(nil)

// fileStoreConfig holds configuration for the FileStore.
type fileStoreConfig struct {
	fs       afero.Fs
	dir      string
	dirPerm  os.FileMode
	filePerm os.FileMode
}

func defaultFileStoreConfig() fileStoreConfig {
	return fileStoreConfig{
		fs:       afero.NewOsFs(),
		dir:      filepath.Join(os.Getenv("HOME"), ".calimero-js", "blobs"),
		dirPerm:  0o755,
		filePerm: 0o600,
	}
}

// FileStoreOption configures a FileStore instance.
type FileStoreOption func(*fileStoreConfig)

// WithDir sets the directory blobs are stored in.
func WithDir(dir string) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.dir = dir
	}
}

// WithFs sets the filesystem blobs are written to. Default is the OS filesystem.
func WithFs(fsys afero.Fs) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.fs = fsys
	}
}

// WithFilePermissions sets the permissions of blob files. Default is 0o600.
func WithFilePermissions(perm os.FileMode) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.filePerm = perm
	}
}

// FileStore keeps one file per blob, named by the hex blob id.
type FileStore struct {
	config fileStoreConfig
}

// NewFileStore creates a FileStore with the given options.
func NewFileStore(opts ...FileStoreOption) *FileStore {
	cfg := defaultFileStoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &FileStore{config: cfg}
}

// Put writes data under id. Existing blobs are left untouched.
func (s *FileStore) Put(id entities.BlobID, data []byte) error {
	fsys := s.config.fs
	path := s.path(id)
	if _, err := fsys.Stat(path); err == nil {
		return nil
	}

	if err := fsys.MkdirAll(s.config.dir, s.config.dirPerm); err != nil {
		return fmt.Errorf("failed to create blob directory: %w", err)
	}

	// Partial blobs never appear under their final name.
	tmp, err := afero.TempFile(fsys, s.config.dir, id.String()+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create blob %s: %w", id, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fsys.Remove(tmp.Name())
		return fmt.Errorf("failed to write blob %s: %w", id, err)
	}
	if err := tmp.Close(); err != nil {
		fsys.Remove(tmp.Name())
		return fmt.Errorf("failed to close blob %s: %w", id, err)
	}
	if err := fsys.Chmod(tmp.Name(), s.config.filePerm); err != nil {
		fsys.Remove(tmp.Name())
		return fmt.Errorf("failed to set blob %s permissions: %w", id, err)
	}
	if err := fsys.Rename(tmp.Name(), path); err != nil {
		fsys.Remove(tmp.Name())
		return fmt.Errorf("failed to store blob %s: %w", id, err)
	}
	return nil
}

// Get reads the blob stored under id.
func (s *FileStore) Get(id entities.BlobID) ([]byte, bool, error) {
	data, err := afero.ReadFile(s.config.fs, s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read blob %s: %w", id, err)
	}
	return data, true, nil
}

// Has reports whether id is stored.
func (s *FileStore) Has(id entities.BlobID) (bool, error) {
	ok, err := afero.Exists(s.config.fs, s.path(id))
	if err != nil {
		return false, fmt.Errorf("failed to stat blob %s: %w", id, err)
	}
	return ok, nil
}

// Dir returns the directory blobs are stored in.
func (s *FileStore) Dir() string {
	return s.config.dir
}

func (s *FileStore) path(id entities.BlobID) string {
	return filepath.Join(s.config.dir, id.String())
}
