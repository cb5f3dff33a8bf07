package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mindgrove/mindgrove/pkg/errors"
)

// FileStore keeps each map as a JSON file under a directory.
// Suited to single-user CLI workflows.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store, creating the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create store directory")
	}
	return &FileStore{dir: dir}, nil
}

// Get loads a map by ID.
func (s *FileStore) Get(ctx context.Context, id string) (*Map, error) {
	if err := errors.ValidateMapID(id); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(id))
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeMapNotFound, "map not found: %s", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read map file")
	}

	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse map file")
	}
	return &m, nil
}

// Put creates or replaces a map.
func (s *FileStore) Put(ctx context.Context, m *Map) error {
	if err := errors.ValidateMapID(m.ID); err != nil {
		return err
	}
	if m.Root == nil {
		return errors.New(errors.ErrCodeInvalidTree, "map has no root node")
	}

	now := time.Now().UTC()
	if existing, err := s.Get(ctx, m.ID); err == nil {
		m.CreatedAt = existing.CreatedAt
	} else if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode map")
	}

	// Write to a temp file first so a crash cannot leave a truncated map.
	path := s.path(m.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write map file")
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "replace map file")
	}
	return nil
}

// Delete removes a map by ID.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateMapID(id); err != nil {
		return err
	}
	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return errors.New(errors.ErrCodeMapNotFound, "map not found: %s", id)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete map file")
	}
	return nil
}

// List returns metadata for all stored maps, sorted by most recent update.
func (s *FileStore) List(ctx context.Context) ([]Info, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read store directory")
	}

	infos := make([]Info, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".json")
		m, err := s.Get(ctx, id)
		if err != nil {
			// Skip unreadable entries rather than failing the listing.
			continue
		}
		infos = append(infos, Info{ID: m.ID, Name: m.Name, UpdatedAt: m.UpdatedAt})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].UpdatedAt.After(infos[j].UpdatedAt)
	})
	return infos, nil
}

// Close does nothing for file store.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

var _ Store = (*FileStore)(nil)
