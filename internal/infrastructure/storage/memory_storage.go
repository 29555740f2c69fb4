package storage

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/assetops/backend/internal/application/link"
	"github.com/assetops/backend/internal/application/report"
)

// Object is a stored blob
type Object struct {
	Data        []byte
	ContentType string
}

// MemoryObjectStorage keeps objects in process memory. Download URLs point at
// BaseURL and are not served; it backs tests and single-node demos.
type MemoryObjectStorage struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string]Object
}

// NewMemoryObjectStorage creates an empty in-memory storage
func NewMemoryObjectStorage() *MemoryObjectStorage {
	return &MemoryObjectStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string]Object),
	}
}

// Upload stores a copy of data
func (s *MemoryObjectStorage) Upload(_ context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return ErrKeyRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storageKey] = Object{Data: append([]byte(nil), data...), ContentType: contentType}
	return nil
}

// GenerateDownloadURL returns BaseURL/download/<key> with the expiry as a query
func (s *MemoryObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, ErrKeyRequired
	}
	expiresAt := time.Now().Add(expiresIn)
	u := s.BaseURL + "/download/" + storageKey + "?expires=" + url.QueryEscape(expiresAt.UTC().Format(time.RFC3339))
	return u, expiresAt, nil
}

// Get returns a stored object
func (s *MemoryObjectStorage) Get(storageKey string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[storageKey]
	return obj, ok
}

var (
	_ link.ObjectStorage   = (*MemoryObjectStorage)(nil)
	_ report.ObjectStorage = (*MemoryObjectStorage)(nil)
)
