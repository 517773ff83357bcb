package templatestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"docverify/internal/domain"
	"docverify/internal/port"
)

// FSStore reads "<id>.yaml", "<id>.yml" or "<id>.json" from the root of an
// fs.FS, in that order.
type FSStore struct {
	fsys fs.FS
}

// NewFSStore creates a store over fsys.
func NewFSStore(fsys fs.FS) *FSStore {
	return &FSStore{fsys: fsys}
}

// NewDirStore creates a store over a directory on disk.
func NewDirStore(dir string) *FSStore {
	return NewFSStore(os.DirFS(dir))
}

func (s *FSStore) Load(_ context.Context, id string) (*port.TemplateDefinition, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: %q", domain.ErrTemplateNotFound, id)
	}
	for _, e := range domain.TemplateExtensions {
		data, err := fs.ReadFile(s.fsys, id+e.Ext)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading template %q: %w", id+e.Ext, err)
		}
		return &port.TemplateDefinition{ID: id, Format: e.Format, Data: data}, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrTemplateNotFound, id)
}

func (s *FSStore) List(_ context.Context) ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	set := make(map[string]struct{})
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if id, _, ok := splitDefinitionName(entry.Name()); ok {
			set[id] = struct{}{}
		}
	}
	return sortedIDs(set), nil
}
