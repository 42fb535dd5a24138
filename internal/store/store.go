package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"booktrack/internal/models"
)

// Store persists the full reminder collection. Every operation re-reads
// from durable storage; there is no caching across requests.
type Store interface {
	// Load returns all persisted records. A missing, unreadable or
	// malformed backing file degrades to an empty collection.
	Load() []models.ReminderRecord
	// Save rewrites the entire collection.
	Save(records []models.ReminderRecord) error
}

// FileStore keeps the collection as a pretty-printed JSON array in a
// single file, rewritten wholesale on every mutation.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() []models.ReminderRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to read reminder file %s: %v", s.path, err)
		}
		return nil
	}

	var records []models.ReminderRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("Reminder file %s is not a valid record list: %v", s.path, err)
		return nil
	}
	return records
}

// Save writes to a temp file in the same directory and renames it over
// the target, so a crash mid-write never leaves a partial file behind.
func (s *FileStore) Save(records []models.ReminderRecord) error {
	if records == nil {
		records = []models.ReminderRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace reminder file: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	Records []models.ReminderRecord
	SaveErr error // returned by Save when set
	Saves   int
}

func (s *MemoryStore) Load() []models.ReminderRecord {
	out := make([]models.ReminderRecord, len(s.Records))
	copy(out, s.Records)
	return out
}

func (s *MemoryStore) Save(records []models.ReminderRecord) error {
	s.Saves++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Records = make([]models.ReminderRecord, len(records))
	copy(s.Records, records)
	return nil
}
