package repository

import (
	"context"

	"github.com/groupfit/backend/domain"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Profile, error)
	Upsert(ctx context.Context, profile *domain.Profile) error
}
