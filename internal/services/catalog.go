package services

import (
	"errors"
	"sync"
	"time"

	"syscatalog/internal/models"
	"syscatalog/internal/store"
)

// ErrSystemNotFound reports that no record matches the given system_id.
var ErrSystemNotFound = errors.New("system not found")

// CatalogService implements CRUD over the catalog store. Every
// operation re-reads the full record set; every mutation rewrites it.
// A single RWMutex serializes the load-mutate-save sequence so two
// concurrent mutations cannot silently overwrite each other, and reads
// always observe a consistent snapshot.
type CatalogService struct {
	mu    sync.RWMutex
	store *store.Store
}

func NewCatalogService(s *store.Store) *CatalogService {
	return &CatalogService{store: s}
}

// now returns the current time as the string stored on disk.
func now() string {
	return time.Now().Format(time.RFC3339Nano)
}

// Create appends a new record with a generated id and fresh timestamps.
// Status defaults to "active" when the request leaves it empty.
func (s *CatalogService) Create(req *models.CreateSystemRequest) (*models.SystemRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := req.Status
	if status == "" {
		status = "active"
	}

	ts := now()
	record := models.SystemRecord{
		SystemID:                 s.store.GenerateID(),
		SystemName:               req.SystemName,
		SystemDescription:        req.SystemDescription,
		BusinessStewardEmail:     req.BusinessStewardEmail,
		BusinessStewardFullName:  req.BusinessStewardFullName,
		SecurityStewardEmail:     req.SecurityStewardEmail,
		SecurityStewardFullName:  req.SecurityStewardFullName,
		TechnicalStewardEmail:    req.TechnicalStewardEmail,
		TechnicalStewardFullName: req.TechnicalStewardFullName,
		Status:                   status,
		CreatedAt:                ts,
		UpdatedAt:                ts,
	}

	records := s.store.Load()
	records = append(records, record)
	if err := s.store.Save(records); err != nil {
		return nil, err
	}
	return &record, nil
}

// Get returns the record with the given id, matched by exact string
// equality.
func (s *CatalogService) Get(systemID string) (*models.SystemRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.store.Load() {
		if record.SystemID == systemID {
			r := record
			return &r, nil
		}
	}
	return nil, ErrSystemNotFound
}

// List returns the full record set, possibly empty.
func (s *CatalogService) List() []models.SystemRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.Load()
}

// Update applies the supplied fields to the matching record. A
// successful update always refreshes updated_at, whether or not any
// field was supplied; that is the documented contract.
func (s *CatalogService) Update(systemID string, req *models.UpdateSystemRequest) (*models.SystemRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.store.Load()
	for i := range records {
		if records[i].SystemID != systemID {
			continue
		}
		req.Apply(&records[i])
		records[i].UpdatedAt = now()
		if err := s.store.Save(records); err != nil {
			return nil, err
		}
		r := records[i]
		return &r, nil
	}
	return nil, ErrSystemNotFound
}

// Delete removes the matching record.
func (s *CatalogService) Delete(systemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.store.Load()
	for i := range records {
		if records[i].SystemID != systemID {
			continue
		}
		records = append(records[:i], records[i+1:]...)
		return s.store.Save(records)
	}
	return ErrSystemNotFound
}

// Count reports the number of records currently persisted.
func (s *CatalogService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.store.Load())
}
