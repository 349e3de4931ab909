package store

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sallamerger/backend/internal/domain"
)

// MemoryStore is a thread-safe in-memory store of produced workbooks with TTL support
type MemoryStore struct {
	files map[string]domain.StoredFile
	mutex sync.RWMutex
	now   func() time.Time
	stop  chan struct{}
}

// NewMemoryStore creates a new in-memory workbook store
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		files: make(map[string]domain.StoredFile),
		now:   time.Now,
		stop:  make(chan struct{}),
	}

	// Remove expired workbooks every minute
	go store.cleanupExpired(time.Minute)

	return store
}

// Put stores a workbook under a new id
func (s *MemoryStore) Put(ctx context.Context, name string, data []byte, ttl time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := uuid.NewString()
	now := s.now()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.files[id] = domain.StoredFile{
		ID:        id,
		Name:      name,
		Data:      append([]byte(nil), data...),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	return id, nil
}

// Get retrieves a workbook; missing and expired entries are ErrOutputNotFound
func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.StoredFile, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	file, exists := s.files[id]
	if !exists {
		return nil, domain.ErrOutputNotFound
	}

	// Check if expired
	if s.now().After(file.ExpiresAt) {
		return nil, domain.ErrOutputNotFound
	}

	return &file, nil
}

// Delete removes a workbook from the store
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.files, id)
	return nil
}

// Size returns the current number of stored workbooks (for debugging/monitoring)
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.files)
}

// Close stops the cleanup goroutine
func (s *MemoryStore) Close() {
	close(s.stop)
}

// cleanupExpired removes expired workbooks periodically
func (s *MemoryStore) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if removed := s.removeExpired(); removed > 0 {
				log.Printf("[STORE] removed %d expired workbooks", removed)
			}
		}
	}
}

// removeExpired deletes every expired entry and returns how many were removed
func (s *MemoryStore) removeExpired() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	removed := 0
	for id, file := range s.files {
		if now.After(file.ExpiresAt) {
			delete(s.files, id)
			removed++
		}
	}
	return removed
}
