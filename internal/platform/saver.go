package platform

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Save constants
const (
	PartialSuffix     = ".part"
	MaxNameCollisions = 1000
)

// FileSaver writes downloaded clips into a directory, picking a free name the
// way browsers do: "clip", "clip (1)", "clip (2)"...
type FileSaver struct {
	Dir string
}

// NewFileSaver creates a saver for dir
func NewFileSaver(dir string) *FileSaver {
	return &FileSaver{Dir: dir}
}

// Save streams r into a temporary .part file, then renames it to a free name
// derived from name. The temporary file is removed on any failure.
func (s *FileSaver) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	name = sanitizeFileName(name)
	if err := CreateDirectoryIfNotExists(s.Dir); err != nil {
		return "", fmt.Errorf("failed to create download directory %s: %w", s.Dir, err)
	}

	tmp, err := os.CreateTemp(s.Dir, "."+name+"-*"+PartialSuffix)
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmp, &contextReader{ctx: ctx, r: r}); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write video file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close video file: %w", err)
	}
	if err := os.Chmod(tmpPath, DefaultFilePermissions); err != nil {
		return "", fmt.Errorf("failed to set file permissions: %w", err)
	}

	finalPath, err := UniqueFilePath(s.Dir, name)
	if err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return "", fmt.Errorf("failed to move video file into place: %w", err)
	}
	committed = true

	return finalPath, nil
}

// UniqueFilePath returns dir/name, or dir/"base (n)ext" for the first n that
// does not exist yet
func UniqueFilePath(dir, name string) (string, error) {
	candidate := filepath.Join(dir, name)
	if _, err := os.Stat(candidate); os.IsNotExist(err) {
		return candidate, nil
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 1; i <= MaxNameCollisions; i++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", base, i, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free file name for %s in %s", name, dir)
}

// sanitizeFileName strips path separators so a name can never escape the directory
func sanitizeFileName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" || name == "." || name == ".." {
		return "clip"
	}
	return name
}

// contextReader stops copying once ctx is done
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
