package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystemSink implements Sink on the local filesystem
type FileSystemSink struct {
	rootDir string
}

// NewFileSystemSink creates a filesystem sink. Relative paths are resolved
// against rootDir; an empty rootDir means the working directory.
func NewFileSystemSink(rootDir string) *FileSystemSink {
	return &FileSystemSink{rootDir: rootDir}
}

// Read implements Sink.Read
func (s *FileSystemSink) Read(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(s.resolve(path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Write implements Sink.Write. Missing parent directories are created.
func (s *FileSystemSink) Write(ctx context.Context, path string, data []byte) error {
	target := s.resolve(path)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (s *FileSystemSink) resolve(path string) string {
	path = filepath.FromSlash(path)
	if s.rootDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.rootDir, path)
}
