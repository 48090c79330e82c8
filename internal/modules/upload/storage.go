package upload

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/casastock/casastock-backend/internal/apperr"
)

// Storage persists uploaded files and resolves their public URLs.
type Storage interface {
	// Save writes the file under the given relative path and returns
	// the path it was stored at.
	Save(ctx context.Context, path string, r io.Reader) (string, error)

	// PublicURL returns the URL clients use to fetch a stored path.
	PublicURL(path string) string
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFilename reduces a client-supplied filename to a safe flat
// name with no path components.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	name = unsafeChars.ReplaceAllString(name, "_")
	if name == "" || name == "." || name == ".." {
		return "file"
	}
	return name
}

// DiskStorage stores uploads on the local filesystem and serves them
// from a static file route.
type DiskStorage struct {
	root    string
	baseURL string
}

// NewDiskStorage creates storage rooted at dir, served under baseURL.
func NewDiskStorage(dir, baseURL string) *DiskStorage {
	return &DiskStorage{root: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *DiskStorage) Save(_ context.Context, path string, r io.Reader) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", apperr.Store(err)
	}
	f, err := os.Create(full)
	if err != nil {
		return "", apperr.Store(err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(full)
		return "", apperr.Store(err)
	}
	return path, nil
}

func (s *DiskStorage) PublicURL(path string) string {
	return s.baseURL + "/" + path
}
