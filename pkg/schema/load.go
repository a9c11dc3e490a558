package schema

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"
)

// ReadSources reads the given files and concatenates their contents in
// argument order. A newline is appended to any file that lacks one so the
// last line of one file never runs into the first line of the next.
func ReadSources(ctx context.Context, paths []string) ([]byte, error) {
	contents := make([][]byte, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			contents[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for _, data := range contents {
		buf.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}

// Load parses the API description from the given files, or from r when no
// paths are given.
func Load(ctx context.Context, paths []string, r io.Reader) (*Document, error) {
	var (
		data []byte
		err  error
	)
	if len(paths) > 0 {
		data, err = ReadSources(ctx, paths)
	} else {
		data, err = io.ReadAll(r)
		if err != nil {
			err = fmt.Errorf("failed to read standard input: %w", err)
		}
	}
	if err != nil {
		return nil, err
	}

	return Parse(data)
}
