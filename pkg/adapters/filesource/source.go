// Package filesource provides an image source reading from the file system.
package filesource

import (
	"context"
	"fmt"

	"github.com/user/timemark/pkg/ports"
)

// Source implements ports.ImageSource by reading a file path.
type Source struct {
	path string
	fs   ports.FileSystem
}

// New creates a Source for the given path.
func New(path string, fs ports.FileSystem) *Source {
	return &Source{path: path, fs: fs}
}

// Acquire reads the file contents.
func (s *Source) Acquire(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", s.path, err)
	}
	return data, nil
}

// Ensure Source implements ports.ImageSource
var _ ports.ImageSource = (*Source)(nil)
