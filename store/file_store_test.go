package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreEmptyLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirrored.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)

	ok, err := s.Mirror().Contains(42)
	require.NoError(t, err)
	require.False(t, ok)

	numbers, err := s.Mirror().List()
	require.NoError(t, err)
	require.Empty(t, numbers)
}

func TestFileStoreAddIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirrored.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Mirror().Add(7))
	require.NoError(t, s.Mirror().Add(7))
	require.NoError(t, s.Mirror().Add(3))

	ok, err := s.Mirror().Contains(7)
	require.NoError(t, err)
	require.True(t, ok)

	numbers, err := s.Mirror().List()
	require.NoError(t, err)
	require.Equal(t, []int{3, 7}, numbers)
}

func TestFileStoreSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirrored.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Mirror().Add(101))
	require.NoError(t, s.Mirror().Add(99))
	require.NoError(t, s.Close())

	reloaded, err := NewFileStore(path)
	require.NoError(t, err)

	ok, err := reloaded.Mirror().Contains(101)
	require.NoError(t, err)
	require.True(t, ok)

	numbers, err := reloaded.Mirror().List()
	require.NoError(t, err)
	require.Equal(t, []int{99, 101}, numbers)
}

func TestFileStoreRejectsCorruptLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirrored.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := NewFileStore(path)
	require.Error(t, err)
}

func TestFileStoreTreatsEmptyFileAsEmptyLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirrored.json")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o600))

	s, err := NewFileStore(path)
	require.NoError(t, err)

	numbers, err := s.Mirror().List()
	require.NoError(t, err)
	require.Empty(t, numbers)
}
