package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"Mufasa-Assistant/server/internal/apperr"
)

// Collection names used by the service.
const (
	CollectionRecords     = "records"
	CollectionStoryboards = "storyboards"
)

// FileStore persists one JSON document per key under
// <dataDir>/<collection>/<key>.json. There is no locking: writes to
// different keys are independent and a same-key write is last-write-wins.
type FileStore struct {
	dataDir string
}

// NewFileStore creates the base data directory if missing.
func NewFileStore(dataDir string) (*FileStore, error) {
	if strings.TrimSpace(dataDir) == "" {
		return nil, fmt.Errorf("storage data dir is required")
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &FileStore{dataDir: dataDir}, nil
}

// Write serializes v to the file for (collection, key), creating the
// collection directory as needed.
func (s *FileStore) Write(collection, key string, v interface{}) error {
	dir := filepath.Join(s.dataDir, collection)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperr.Wrap(apperr.KindStorageError, "failed to create collection dir", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperr.Wrap(apperr.KindStorageError, "failed to serialize record", err)
	}

	path := filepath.Join(dir, safeKey(key)+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperr.Wrap(apperr.KindStorageError, "failed to write record", err)
	}
	return nil
}

// Read loads the document for (collection, key) into out.
func (s *FileStore) Read(collection, key string, out interface{}) error {
	path := filepath.Join(s.dataDir, collection, safeKey(key)+".json")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return apperr.New(apperr.KindNotFound, fmt.Sprintf("%s/%s not found", collection, key))
	}
	if err != nil {
		return apperr.Wrap(apperr.KindStorageError, "failed to read record", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return apperr.Wrap(apperr.KindCorruptRecord, fmt.Sprintf("%s/%s is not valid JSON", collection, key), err)
	}
	return nil
}

// Exists reports whether a document is present for (collection, key).
func (s *FileStore) Exists(collection, key string) bool {
	path := filepath.Join(s.dataDir, collection, safeKey(key)+".json")
	_, err := os.Stat(path)
	return err == nil
}

// safeKey strips path separators so a key can never escape its collection.
func safeKey(key string) string {
	key = filepath.Base(key)
	key = strings.ReplaceAll(key, string(os.PathSeparator), "_")
	if key == "" || key == "." {
		return "_"
	}
	return key
}
