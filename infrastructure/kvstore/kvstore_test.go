package kvstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_PutGetDelete(t *testing.T) {
	m := NewMemory()

	prev, existed := m.Put([]byte("k"), []byte("v1"))
	assert.False(t, existed)
	assert.Nil(t, prev)

	prev, existed = m.Put([]byte("k"), []byte("v2"))
	assert.True(t, existed)
	assert.Equal(t, []byte("v1"), prev)

	v, ok := m.Get([]byte("k"))
	require.True(t, ok)
	assert.Equal(t, []byte("v2"), v)

	removed, existed := m.Delete([]byte("k"))
	assert.True(t, existed)
	assert.Equal(t, []byte("v2"), removed)

	_, ok = m.Get([]byte("k"))
	assert.False(t, ok)
	assert.Zero(t, m.Len())

	_, existed = m.Delete([]byte("k"))
	assert.False(t, existed)
}

func TestMemory_CopiesCallerMemory(t *testing.T) {
	m := NewMemory()
	key := []byte("key")
	value := []byte("value")
	m.Put(key, value)

	key[0] = 'X'
	value[0] = 'X'

	v, ok := m.Get([]byte("key"))
	require.True(t, ok)
	assert.Equal(t, "value", string(v))

	v[0] = 'Y'
	again, _ := m.Get([]byte("key"))
	assert.Equal(t, "value", string(again), "Get must return a copy")
}

func TestMemory_EmptyValue(t *testing.T) {
	m := NewMemory()
	m.Put([]byte("empty"), nil)

	v, ok := m.Get([]byte("empty"))
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestMemory_Keys(t *testing.T) {
	m := NewMemory()
	m.Put([]byte("b"), []byte("2"))
	m.Put([]byte("a"), []byte("1"))
	m.Put([]byte{0x00, 0xff}, []byte("3"))

	assert.Equal(t, [][]byte{{0x00, 0xff}, []byte("a"), []byte("b")}, m.Keys())
}

func TestFileStore_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.yaml")

	s := NewFileStore(WithPath(path))
	require.NoError(t, s.Load())
	assert.Zero(t, s.Len())

	s.Put([]byte("k"), []byte("v1"))
	s.Put([]byte{0x00, 0x01}, []byte{0xff})
	require.NoError(t, s.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reloaded := NewFileStore(WithPath(path))
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 2, reloaded.Len())

	v, ok := reloaded.Get([]byte("k"))
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), v)

	v, ok = reloaded.Get([]byte{0x00, 0x01})
	require.True(t, ok)
	assert.Equal(t, []byte{0xff}, v)
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries:\n  zz: \"00\"\n"), 0o600))

	s := NewFileStore(WithPath(path))
	err := s.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode snapshot key")
}

func TestFileStore_Options(t *testing.T) {
	s := NewFileStore(WithPath("/tmp/x.yaml"), WithFilePermissions(0o644), WithDirPermissions(0o700))
	assert.Equal(t, "/tmp/x.yaml", s.Path())
	assert.Equal(t, os.FileMode(0o644), s.config.filePerm)
	assert.Equal(t, os.FileMode(0o700), s.config.dirPerm)
}

func TestFileStore_MemMapFs(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := NewFileStore(WithFs(fsys), WithPath("/state/storage.yaml"))
	s.Put([]byte("k"), []byte("v"))
	require.NoError(t, s.Save())

	ok, err := afero.Exists(fsys, "/state/storage.yaml")
	require.NoError(t, err)
	assert.True(t, ok)

	reloaded := NewFileStore(WithFs(fsys), WithPath("/state/storage.yaml"))
	require.NoError(t, reloaded.Load())
	v, found := reloaded.Get([]byte("k"))
	require.True(t, found)
	assert.Equal(t, []byte("v"), v)
}
