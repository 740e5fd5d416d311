// Package store persists generated entities so interrupted runs can resume.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FileStore keeps one indented JSON file per entity under {root}/{kind}/{id}.json.
type FileStore struct {
	root string
}

// NewFileStore creates a file store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("output directory cannot be empty")
	}

	return &FileStore{root: dir}, nil
}

// Exists reports whether the kind's directory holds at least one entry.
func (s *FileStore) Exists(_ context.Context, kind string) (bool, error) {
	entries, err := os.ReadDir(s.kindDir(kind))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", kind, err)
	}

	return len(entries) > 0, nil
}

// Write stores item as {id}.json, replacing any previous version.
func (s *FileStore) Write(_ context.Context, kind, id string, item any) error {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("invalid entity id %q", id)
	}

	data, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s %s: %w", kind, id, err)
	}

	dir := s.kindDir(kind)
	if mkErr := os.MkdirAll(dir, dirPerm); mkErr != nil {
		return fmt.Errorf("failed to create %s: %w", dir, mkErr)
	}

	if writeErr := os.WriteFile(filepath.Join(dir, id+".json"), data, filePerm); writeErr != nil {
		return fmt.Errorf("failed to write %s %s: %w", kind, id, writeErr)
	}

	return nil
}

// ReadAll returns every stored document of the kind ordered by file name.
func (s *FileStore) ReadAll(_ context.Context, kind string) ([][]byte, error) {
	dir := s.kindDir(kind)

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	sort.Strings(paths)

	docs := make([][]byte, 0, len(paths))
	for _, path := range paths {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, readErr)
		}
		docs = append(docs, data)
	}

	return docs, nil
}

func (s *FileStore) kindDir(kind string) string {
	return filepath.Join(s.root, kind)
}
