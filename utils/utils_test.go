package utils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "nested", "srs")

	err := WriteFileAtomic(filename, func(w io.Writer) error {
		_, err := w.Write([]byte("powers"))
		return err
	})
	require.NoError(t, err)
	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	require.Equal(t, "powers", string(data))

	failure := errors.New("decode failed")
	err = WriteFileAtomic(filename, func(w io.Writer) error {
		w.Write([]byte("half"))
		return failure
	})
	require.ErrorIs(t, err, failure)
	data, err = os.ReadFile(filename)
	require.NoError(t, err)
	require.Equal(t, "powers", string(data), "a failed write keeps the old file")

	entries, err := os.ReadDir(filepath.Dir(filename))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary file is left behind")
}

func TestShouldRegenerate(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source")
	target := filepath.Join(dir, "target")

	require.NoError(t, os.WriteFile(source, nil, 0644))
	require.True(t, ShouldRegenerate(source, target), "missing target")

	require.NoError(t, os.WriteFile(target, nil, 0644))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(source, past, past))
	require.False(t, ShouldRegenerate(source, target))

	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(source, future, future))
	require.True(t, ShouldRegenerate(source, target))

	require.True(t, ShouldRegenerate(filepath.Join(dir, "missing"), target))
}

func TestCreateDirectoryIfNeeded(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, CreateDirectoryIfNeeded(dir))
	require.NoError(t, CreateDirectoryIfNeeded(dir))

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	require.Error(t, CreateDirectoryIfNeeded(file))
}
