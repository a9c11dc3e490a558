package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystemSink_ReadMissing(t *testing.T) {
	sink := NewFileSystemSink(t.TempDir())

	_, err := sink.Read(context.Background(), "man/man3/abs.3")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileSystemSink_WriteCreatesDirectories(t *testing.T) {
	root := t.TempDir()
	sink := NewFileSystemSink(root)
	ctx := context.Background()

	require.NoError(t, sink.Write(ctx, "man/man3/abs.3", []byte("page")))

	data, err := os.ReadFile(filepath.Join(root, "man", "man3", "abs.3"))
	require.NoError(t, err)
	assert.Equal(t, "page", string(data))

	data, err = sink.Read(ctx, "man/man3/abs.3")
	require.NoError(t, err)
	assert.Equal(t, "page", string(data))
}

func TestFileSystemSink_Overwrite(t *testing.T) {
	sink := NewFileSystemSink(t.TempDir())
	ctx := context.Background()

	require.NoError(t, sink.Write(ctx, "abs.3", []byte("old")))
	require.NoError(t, sink.Write(ctx, "abs.3", []byte("new")))

	data, err := sink.Read(ctx, "abs.3")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestFileSystemSink_AbsolutePathIgnoresRoot(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out", "abs.3")
	sink := NewFileSystemSink(t.TempDir())

	require.NoError(t, sink.Write(context.Background(), target, []byte("page")))

	_, err := os.Stat(target)
	assert.NoError(t, err)
}

func TestFileSystemSink_ReadError(t *testing.T) {
	root := t.TempDir()
	sink := NewFileSystemSink(root)

	// a directory cannot be read as a file
	require.NoError(t, os.MkdirAll(filepath.Join(root, "abs.3"), 0755))

	_, err := sink.Read(context.Background(), "abs.3")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNewSink(t *testing.T) {
	sink, err := NewSink(context.Background(), DefaultConfig())
	require.NoError(t, err)
	assert.IsType(t, &FileSystemSink{}, sink)

	_, err = NewSink(context.Background(), Config{Type: "ftp"})
	assert.EqualError(t, err, "unknown sink type: ftp")

	_, err = NewSink(context.Background(), Config{Type: SinkS3})
	assert.EqualError(t, err, "s3 bucket is required")
}
