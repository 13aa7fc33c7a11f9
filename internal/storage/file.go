package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"proposalScope/internal/model"
)

// FileStore writes graph artifacts as indented JSON files. Writes go
// through a temp file rename so a crash never leaves a half-written
// artifact behind.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// SaveArtifact persists the artifact, creating the parent directory
// when needed.
func (s *FileStore) SaveArtifact(artifact *model.GraphArtifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := WriteJSONFile(s.path, artifact); err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}
	return nil
}

// WriteJSONFile marshals v as indented JSON and writes it through a
// sibling temp file plus rename, creating the parent directory when
// needed. An existing file at path survives any failure untouched.
func WriteJSONFile(path string, v any) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write tmp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename tmp file: %w", err)
	}

	return nil
}

// LoadArtifact reads a previously saved artifact back from disk.
func LoadArtifact(path string) (*model.GraphArtifact, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat artifact: %w", err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("artifact path %s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	var artifact model.GraphArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}

	return &artifact, nil
}
