package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type FSStore struct { // implements Store
	dir     string
	baseURL string
}

func NewFSStore(dir, baseURL string) *FSStore {
	return &FSStore{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *FSStore) Put(_ context.Context, name string, data []byte, _ string) (string, error) {
	// Uploaded names come from clients; keep only the final path element.
	name = filepath.Base(filepath.Clean(name))

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating upload dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("error writing upload: %w", err)
	}

	storageLogger.Debug().Str("file", name).Msg("Image stored")
	return s.baseURL + "/" + name, nil
}
