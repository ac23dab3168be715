// Package store owns the on-disk representation of the systems catalog:
// a single JSON document of the form {"systems": [...]}, read in full at
// the start of every operation and rewritten in full after every
// mutation. Expected record counts are small; whole-file load/save is
// the contract, not an optimization target.
package store

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofrs/flock"

	"syscatalog/internal/models"
	"syscatalog/pkg/logger"
)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// catalogDocument is the persisted JSON layout.
type catalogDocument struct {
	Systems []models.SystemRecord `json:"systems"`
}

// Store reads and writes the catalog document. An advisory file lock
// guards writes against concurrent processes; in-process serialization
// is the caller's responsibility.
type Store struct {
	path string
	lock *flock.Flock
}

// New creates a Store for the catalog document at path.
func New(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the location of the catalog document.
func (s *Store) Path() string {
	return s.path
}

// Load reads the full record set. A missing or unreadable or corrupt
// document degrades to an empty catalog rather than failing the caller.
func (s *Store) Load() []models.SystemRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", s.path).Msg("catalog unreadable, treating as empty")
		}
		return []models.SystemRecord{}
	}

	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn().Err(err).Str("path", s.path).Msg("catalog corrupt, treating as empty")
		return []models.SystemRecord{}
	}
	if doc.Systems == nil {
		return []models.SystemRecord{}
	}
	return doc.Systems
}

// Save atomically replaces the catalog document with the given record
// set. The new content is written to a temp file in the same directory
// and renamed over the old document, so readers never observe a partial
// write. Returns an error on any storage fault; the previous document is
// left intact in that case.
func (s *Store) Save(records []models.SystemRecord) error {
	if records == nil {
		records = []models.SystemRecord{}
	}

	data, err := json.MarshalIndent(catalogDocument{Systems: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock catalog: %w", err)
	}
	defer s.lock.Unlock()

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp catalog: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close catalog: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}

// GenerateID produces a catalog identifier of the form SYS-TTTTTT-RRRRR:
// the last six digits of the unix timestamp plus five random characters
// from [A-Z0-9]. Uniqueness is by construction, not checked against
// existing records.
func (s *Store) GenerateID() string {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	if len(ts) > 6 {
		ts = ts[len(ts)-6:]
	}

	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return fmt.Sprintf("SYS-%s-%s", ts, suffix)
}
