package mocksmtpd

import (
	"context"
	"sync"
)

// Repository stores mails recorded by server, so tests can assert on them
type Repository interface {
	// Ping ensures Repository works
	Ping(ctx context.Context) error
	// Close closes repository, it should be called before application exits
	Close() error
	// Store saves mail
	Store(ctx context.Context, mail Mail) error
	// List returns all mails in order they were received
	List(ctx context.Context) ([]Mail, error)
	// Count returns number of mails stored
	Count(ctx context.Context) (int, error)
	// Clear removes all mails
	Clear(ctx context.Context) error
}

// MemoryRepository keeps mails in process memory, it is default Repository
type MemoryRepository struct {
	mu    sync.RWMutex
	mails []Mail
}

// Ping does nothing
func (m *MemoryRepository) Ping(_ context.Context) error {
	return nil
}

// Close does nothing
func (m *MemoryRepository) Close() error {
	return nil
}

// Store saves mail
func (m *MemoryRepository) Store(_ context.Context, mail Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mails = append(m.mails, mail)
	return nil
}

// List returns copy of mails stored
func (m *MemoryRepository) List(_ context.Context) ([]Mail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ret := make([]Mail, len(m.mails))
	copy(ret, m.mails)
	return ret, nil
}

// Count returns number of mails stored
func (m *MemoryRepository) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.mails), nil
}

// Clear removes all mails
func (m *MemoryRepository) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mails = nil
	return nil
}
