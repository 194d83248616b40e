package notify

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// FileStore persists the last-checked map as a JSON file, the durable
// local store backing a Tracker between runs.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load() (map[string]int64, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return make(map[string]int64), nil
	}
	if err != nil {
		return nil, err
	}
	state := make(map[string]int64)
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *FileStore) Save(state map[string]int64) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o644)
}
