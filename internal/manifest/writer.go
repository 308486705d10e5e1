package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/vendora/supplierctl/internal/storage"
	"github.com/vendora/supplierctl/pkg/logger"
)

// ErrManifestWriteFailed is returned when the manifest cannot be persisted.
// Callers decide whether that degrades to a warning (previews) or aborts the
// mutation (audit-before-commit policy).
var ErrManifestWriteFailed = errors.New("manifest write failed")

const manifestDir = "manifests"

// Writer persists change manifests to durable storage. It owns manifest
// files independently of transaction outcome: a dry run still leaves a
// manifest artifact behind.
type Writer struct {
	store *storage.LocalStorage
}

func NewWriter(store *storage.LocalStorage) *Writer {
	return &Writer{store: store}
}

// Write serializes the manifest to its deterministic path. Called before the
// mutation is attempted, and again after the outcome is known.
func (w *Writer) Write(m *ChangeManifest) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrManifestWriteFailed, err)
	}
	relPath := filepath.Join(manifestDir, m.Filename())
	if err := w.store.Write(relPath, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrManifestWriteFailed, err)
	}
	return w.store.GetFullPath(relPath), nil
}

// Recent loads up to limit manifests, newest first. Filenames lead with the
// subject id, so directory order says nothing about recency; ordering comes
// from the manifests' own creation timestamps.
func (w *Writer) Recent(limit int) ([]ChangeManifest, error) {
	paths, err := w.store.List(manifestDir, ".json")
	if err != nil {
		return nil, err
	}
	var out []ChangeManifest
	for _, path := range paths {
		data, err := w.store.Read(path)
		if err != nil {
			logger.Warn("skipping unreadable manifest", "path", path, "error", err)
			continue
		}
		var m ChangeManifest
		if err := json.Unmarshal(data, &m); err != nil {
			logger.Warn("skipping malformed manifest", "path", path, "error", err)
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
