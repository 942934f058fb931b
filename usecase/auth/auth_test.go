package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupfit/backend/domain"
	"github.com/groupfit/backend/usecase/cache"
)

type fakeProfileRepo struct {
	profiles map[string]domain.Profile
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return &p, nil
}

func (f *fakeProfileRepo) ListByIDs(ctx context.Context, ids []string) ([]domain.Profile, error) {
	return nil, nil
}

func (f *fakeProfileRepo) Upsert(ctx context.Context, profile *domain.Profile) error {
	f.profiles[profile.ID] = *profile
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]domain.Session
}

func (f *fakeSessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &s, nil
}

func (f *fakeSessionRepo) Save(ctx context.Context, session *domain.Session) error {
	f.sessions[session.ID] = *session
	return nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionRepo) Extend(ctx context.Context, id string, ttlSeconds int) error {
	s, ok := f.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.ExpiresAt = time.Now().Add(time.Duration(ttlSeconds) * time.Second)
	f.sessions[id] = s
	return nil
}

type fakeTaskRepo struct{}

func (fakeTaskRepo) ListForUser(ctx context.Context, userID string) ([]domain.Task, error) {
	return nil, nil
}
func (fakeTaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	return task, nil
}
func (fakeTaskRepo) Update(ctx context.Context, task *domain.Task) error { return nil }
func (fakeTaskRepo) Delete(ctx context.Context, id string) error         { return nil }

type fakeGroupingRepo struct{}

func (fakeGroupingRepo) ListByIDs(ctx context.Context, ids []string) ([]domain.Grouping, error) {
	return nil, nil
}
func (fakeGroupingRepo) Create(ctx context.Context, g *domain.Grouping) (*domain.Grouping, error) {
	return g, nil
}
func (fakeGroupingRepo) Rename(ctx context.Context, id, name string) error { return nil }

type fakeMemberRepo struct{}

func (fakeMemberRepo) GroupingIDs(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}
func (fakeMemberRepo) ListByGrouping(ctx context.Context, groupingID string) ([]domain.Membership, error) {
	return nil, nil
}
func (fakeMemberRepo) Add(ctx context.Context, m *domain.Membership) error { return nil }

func newTestUseCase(t *testing.T) (*UseCase, *fakeSessionRepo, *cache.Manager) {
	t.Helper()
	profiles := &fakeProfileRepo{profiles: map[string]domain.Profile{
		"user-1": {ID: "user-1", FullName: "Ada"},
	}}
	sessions := &fakeSessionRepo{sessions: map[string]domain.Session{}}
	caches := cache.NewManager(fakeTaskRepo{}, fakeGroupingRepo{}, fakeMemberRepo{}, profiles, nil)
	return New(profiles, sessions, caches, "test-secret", "groupfit-test", nil), sessions, caches
}

func TestSignInActivatesSessionCache(t *testing.T) {
	uc, sessions, caches := newTestUseCase(t)

	session, err := uc.SignIn(context.Background(), "user-1", time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.NotEmpty(t, session.Token)
	assert.Contains(t, sessions.sessions, session.ID)
	assert.Equal(t, 1, caches.Count(), "sign-in must activate the user's cache")
}

func TestSignInUnknownUser(t *testing.T) {
	uc, _, caches := newTestUseCase(t)

	_, err := uc.SignIn(context.Background(), "nobody", time.Hour)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	assert.Zero(t, caches.Count())
}

func TestSignInTokenCarriesUserAndSession(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	session, err := uc.SignIn(context.Background(), "user-1", time.Hour)
	require.NoError(t, err)

	token, err := jwt.Parse(session.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, session.ID, claims["session_id"])
	assert.Equal(t, "groupfit-test", claims["iss"])
}

func TestRefreshExtendsSession(t *testing.T) {
	uc, sessions, _ := newTestUseCase(t)
	created, err := uc.SignIn(context.Background(), "user-1", time.Hour)
	require.NoError(t, err)

	refreshed, err := uc.Refresh(context.Background(), created.ID, 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, created.ID, refreshed.ID)
	assert.NotEmpty(t, refreshed.Token)
	assert.True(t, sessions.sessions[created.ID].ExpiresAt.After(created.ExpiresAt))
}

func TestRefreshExpiredSessionIsRevoked(t *testing.T) {
	uc, sessions, _ := newTestUseCase(t)
	sessions.sessions["stale"] = domain.Session{
		ID:        "stale",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	_, err := uc.Refresh(context.Background(), "stale", time.Hour)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.NotContains(t, sessions.sessions, "stale")
}

func TestSignOutDropsCacheAndSession(t *testing.T) {
	uc, sessions, caches := newTestUseCase(t)
	session, err := uc.SignIn(context.Background(), "user-1", time.Hour)
	require.NoError(t, err)
	require.Equal(t, 1, caches.Count())

	require.NoError(t, uc.SignOut(context.Background(), session.ID))
	assert.Zero(t, caches.Count())
	assert.NotContains(t, sessions.sessions, session.ID)
}
