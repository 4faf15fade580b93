package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/standingsfeed/standings-service/internal/app/models"
)

const recordExtension = ".json"

// record is the persisted on-disk shape. It must stay stable across
// versions; Version gates future migrations.
type record struct {
	LeagueType string                `json:"leagueType"`
	Timestamp  int64                 `json:"timestamp"` // epoch milliseconds
	TTL        int64                 `json:"ttl"`       // milliseconds
	Data       models.LeagueSnapshot `json:"data"`
	Version    int                   `json:"version"`
}

// FileStore is the persistent cache tier: one JSON record per key.
type FileStore struct {
	directory string
}

func NewFileStore(directory string) (*FileStore, error) {
	if err := os.MkdirAll(directory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", directory, err)
	}

	return &FileStore{directory: directory}, nil
}

func (s *FileStore) Read(key string) (*Entry, error) {
	raw, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache record for key %s: %w", key, err)
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode cache record for key %s: %w", key, err)
	}

	return &Entry{
		Key:           key,
		Timestamp:     time.UnixMilli(rec.Timestamp),
		TTL:           time.Duration(rec.TTL) * time.Millisecond,
		Snapshot:      rec.Data,
		SchemaVersion: rec.Version,
	}, nil
}

func (s *FileStore) Write(entry Entry) error {
	rec := record{
		LeagueType: string(entry.Snapshot.LeagueType),
		Timestamp:  entry.Timestamp.UnixMilli(),
		TTL:        entry.TTL.Milliseconds(),
		Data:       entry.Snapshot,
		Version:    entry.SchemaVersion,
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode cache record for key %s: %w", entry.Key, err)
	}

	if err := os.WriteFile(s.path(entry.Key), raw, 0644); err != nil {
		return fmt.Errorf("failed to write cache record for key %s: %w", entry.Key, err)
	}

	return nil
}

func (s *FileStore) Remove(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove cache record for key %s: %w", key, err)
	}

	return nil
}

// Keys lists the keys of all persisted records, as stored on disk.
func (s *FileStore) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return nil, fmt.Errorf("failed to list cache directory %s: %w", s.directory, err)
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), recordExtension) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(entry.Name(), recordExtension))
	}

	return keys, nil
}

func (s *FileStore) Size(key string) (int64, error) {
	info, err := os.Stat(s.path(key))
	if err != nil {
		return 0, fmt.Errorf("failed to stat cache record for key %s: %w", key, err)
	}

	return info.Size(), nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.directory, safeKey(key)+recordExtension)
}

// safeKey transforms an arbitrary league identifier into a filesystem-safe
// file name.
func safeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range strings.ToLower(key) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	return b.String()
}
