package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/groupfit/backend/domain"
	"github.com/groupfit/backend/repository"
	"github.com/groupfit/backend/usecase/cache"
)

// UseCase issues and revokes sessions. It is also the sign-in/sign-out
// signal for the session cache manager: signing in activates the user's
// cache and triggers its initial load, revoking drops it.
type UseCase struct {
	profiles repository.ProfileRepository
	sessions repository.SessionRepository
	caches   *cache.Manager
	secret   []byte
	issuer   string
	logger   *zap.Logger
}

func New(
	profiles repository.ProfileRepository,
	sessions repository.SessionRepository,
	caches *cache.Manager,
	secret, issuer string,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		profiles: profiles,
		sessions: sessions,
		caches:   caches,
		secret:   []byte(secret),
		issuer:   issuer,
		logger:   logger,
	}
}

// SignIn verifies the user has a profile, stores a session, signs a token
// carrying the user id and activates the user's session cache.
func (uc *UseCase) SignIn(ctx context.Context, userID string, ttl time.Duration) (*domain.Session, error) {
	if _, err := uc.profiles.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	token, err := uc.signToken(session)
	if err != nil {
		return nil, err
	}
	session.Token = token

	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	if _, err := uc.caches.Activate(ctx, userID); err != nil {
		uc.logger.Warn("session cache load failed on sign-in", zap.Error(err))
	}

	return session, nil
}

// Refresh extends an existing session and re-signs its token.
func (uc *UseCase) Refresh(ctx context.Context, sessionID string, ttl time.Duration) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}

	session.ExpiresAt = time.Now().Add(ttl)
	token, err := uc.signToken(session)
	if err != nil {
		return nil, err
	}
	session.Token = token

	if err := uc.sessions.Extend(ctx, sessionID, int(ttl.Seconds())); err != nil {
		return nil, err
	}
	return session, nil
}

// SignOut revokes the session and drops the user's cache.
func (uc *UseCase) SignOut(ctx context.Context, sessionID string) error {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err == nil {
		uc.caches.Drop(session.UserID)
	}
	return uc.sessions.Delete(ctx, sessionID)
}

func (uc *UseCase) signToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    session.UserID,
		"session_id": session.ID,
		"iss":        uc.issuer,
		"exp":        session.ExpiresAt.Unix(),
		"iat":        session.CreatedAt.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.secret)
}
