// Package media is the blob store the catalog references image paths
// into. Blobs are opaque to the rest of the system: the catalog keeps the
// returned path and never looks inside.
package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go-stock-api/internal/apperr"

	"github.com/google/uuid"
)

// Store is the blob interface the catalog and handlers depend on.
type Store interface {
	Put(file *multipart.FileHeader, folder string) (string, error)
	URL(path string) string
	Delete(path string) bool
	List(folder string) ([]string, error)
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".svg":  true,
}

// DiskStore keeps blobs under a root directory that the API serves
// statically under baseURL.
type DiskStore struct {
	root    string
	baseURL string
}

func NewDiskStore(root, baseURL string) *DiskStore {
	return &DiskStore{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Put stores the uploaded file under folder and returns its relative path.
func (s *DiskStore) Put(file *multipart.FileHeader, folder string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", apperr.Newf(apperr.KindValidation, "unsupported image type '%s'", ext)
	}

	folder, err := s.cleanFolder(folder)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Join(s.root, folder), 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.NewString()[:8], ext)
	relPath := filepath.ToSlash(filepath.Join(folder, name))

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.root, folder, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return relPath, nil
}

// URL maps a stored path to the location it is served under.
func (s *DiskStore) URL(path string) string {
	return s.baseURL + "/" + strings.TrimPrefix(filepath.ToSlash(path), "/")
}

// Delete removes a blob. It reports success only; callers treat a failed
// delete as best-effort cleanup.
func (s *DiskStore) Delete(path string) bool {
	full, err := s.resolve(path)
	if err != nil {
		return false
	}
	return os.Remove(full) == nil
}

// List returns the relative paths of all blobs under folder.
func (s *DiskStore) List(folder string) ([]string, error) {
	folder, err := s.cleanFolder(folder)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(s.root, folder))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, filepath.ToSlash(filepath.Join(folder, entry.Name())))
	}
	return paths, nil
}

func (s *DiskStore) cleanFolder(folder string) (string, error) {
	if folder == "" {
		folder = "images"
	}
	cleaned := filepath.Clean(folder)
	if cleaned == ".." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", apperr.New(apperr.KindValidation, "invalid folder name")
	}
	return cleaned, nil
}

// resolve maps a stored path back to disk, rejecting traversal outside root.
func (s *DiskStore) resolve(path string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(path))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", apperr.New(apperr.KindValidation, "invalid path")
	}
	return full, nil
}
