package profile

import (
	"context"

	"go.uber.org/zap"

	"github.com/groupfit/backend/domain"
	"github.com/groupfit/backend/repository"
)

type UseCase struct {
	profiles repository.ProfileRepository
	logger   *zap.Logger
}

func New(profiles repository.ProfileRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		profiles: profiles,
		logger:   logger,
	}
}

func (uc *UseCase) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	return uc.profiles.GetByID(ctx, userID)
}

func (uc *UseCase) Update(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	if p == nil || p.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if p.FullName == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "full name must not be empty")
	}
	if err := uc.profiles.Upsert(ctx, p); err != nil {
		return nil, domain.GatewayError("upsert profile", err)
	}
	return p, nil
}
