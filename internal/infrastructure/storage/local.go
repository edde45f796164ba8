package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
)

// Local stores objects on disk for development. Files are served by the
// router under the public base URL.
type Local struct {
	dir        string
	publicBase string
}

func NewLocal(dir, publicBase string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("local storage: %w", err)
	}
	return &Local{dir: dir, publicBase: strings.TrimRight(publicBase, "/")}, nil
}

func (l *Local) Dir() string {
	return l.dir
}

func (l *Local) Put(_ context.Context, path, _ string, body io.Reader) error {
	full, err := l.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("local mkdir: %w", err)
	}

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return domain.ErrObjectExists
		}
		return fmt.Errorf("local open %s: %w", path, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = os.Remove(full)
		return fmt.Errorf("local write %s: %w", path, err)
	}
	return f.Close()
}

func (l *Local) Delete(_ context.Context, path string) error {
	full, err := l.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("local delete %s: %w", path, err)
	}
	return nil
}

func (l *Local) PublicURL(path string) string {
	return l.publicBase + "/" + path
}

// resolve maps an object path into dir, rejecting paths that escape it.
func (l *Local) resolve(path string) (string, error) {
	if !filepath.IsLocal(path) {
		return "", fmt.Errorf("local storage: invalid object path %q", path)
	}
	return filepath.Join(l.dir, filepath.FromSlash(path)), nil
}
