package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalStorage persists toolkit artifacts (manifests, reports) on the local
// filesystem.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	// Ensure the base directory exists
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Write saves bytes under the given relative path, creating intermediate
// directories. Artifact names are chosen by the caller so manifest filenames
// stay deterministic.
func (s *LocalStorage) Write(relativePath string, data []byte) error {
	filePath := filepath.Join(s.basePath, relativePath)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Read returns the contents of a stored artifact
func (s *LocalStorage) Read(relativePath string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.basePath, relativePath))
}

// List returns relative paths under a subdirectory matching the given
// extension, in lexical name order. Callers that need recency must order by
// the artifact's own timestamps.
func (s *LocalStorage) List(subDir, ext string) ([]string, error) {
	dir := filepath.Join(s.basePath, subDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		out = append(out, filepath.Join(subDir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

// Exists checks if a file exists
func (s *LocalStorage) Exists(relativePath string) bool {
	_, err := os.Stat(filepath.Join(s.basePath, relativePath))
	return err == nil
}

// GetFullPath returns the absolute path of an artifact
func (s *LocalStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.basePath, relativePath)
}
