package cache

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/groupfit/backend/domain"
	"github.com/groupfit/backend/repository"
)

// Manager owns one Cache per signed-in user. Sign-in activates a session
// cache and triggers its initial load; sign-out drops it.
type Manager struct {
	tasks     repository.TaskRepository
	groupings repository.GroupingRepository
	members   repository.MemberRepository
	profiles  repository.ProfileRepository
	logger    *zap.Logger

	mu     sync.RWMutex
	caches map[string]*Cache
}

func NewManager(
	tasks repository.TaskRepository,
	groupings repository.GroupingRepository,
	members repository.MemberRepository,
	profiles repository.ProfileRepository,
	logger *zap.Logger,
) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		tasks:     tasks,
		groupings: groupings,
		members:   members,
		profiles:  profiles,
		logger:    logger,
		caches:    make(map[string]*Cache),
	}
}

// Activate returns the user's session cache, creating and loading it first
// if none is active. Safe to call on every request.
func (m *Manager) Activate(ctx context.Context, userID string) (*Cache, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	m.mu.RLock()
	existing := m.caches[userID]
	m.mu.RUnlock()
	if existing != nil {
		return existing, nil
	}

	c := New(userID, m.tasks, m.groupings, m.members, m.profiles, m.logger)
	if err := c.Load(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another request may have raced the load; keep the first one.
	if winner, ok := m.caches[userID]; ok {
		return winner, nil
	}
	m.caches[userID] = c
	m.logger.Info("session cache activated", zap.String("user_id", userID))
	return c, nil
}

// Drop discards the user's session cache, if any.
func (m *Manager) Drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.caches[userID]; ok {
		delete(m.caches, userID)
		m.logger.Info("session cache dropped", zap.String("user_id", userID))
	}
}

// Active returns a snapshot of all live session caches.
func (m *Manager) Active() []*Cache {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Cache, 0, len(m.caches))
	for _, c := range m.caches {
		out = append(out, c)
	}
	return out
}

// Count reports the number of active session caches.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.caches)
}
