package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Sink.Read when the destination does not exist
var ErrNotFound = errors.New("not found")

// Sink is a destination for generated documentation. Paths are slash or
// OS separated relative locations such as "man/man3/abs.3".
type Sink interface {
	// Read returns the current content at path, or ErrNotFound
	Read(ctx context.Context, path string) ([]byte, error)
	// Write replaces the content at path
	Write(ctx context.Context, path string, data []byte) error
}

// Sink types
const (
	SinkFileSystem = "filesystem"
	SinkS3         = "s3"
)

// Config selects and configures a sink
type Config struct {
	Type string // "filesystem" or "s3"

	// Filesystem config
	FilesystemRoot string

	// S3 config
	S3 S3Config
}

// DefaultConfig returns the filesystem sink rooted at the working directory
func DefaultConfig() Config {
	return Config{
		Type: SinkFileSystem,
	}
}

// NewSink creates the sink described by cfg
func NewSink(ctx context.Context, cfg Config) (Sink, error) {
	switch cfg.Type {
	case "", SinkFileSystem:
		return NewFileSystemSink(cfg.FilesystemRoot), nil
	case SinkS3:
		sink, err := NewS3Sink(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return sink, nil
	default:
		return nil, fmt.Errorf("unknown sink type: %s", cfg.Type)
	}
}
