package repository

import (
	"context"

	"github.com/groupfit/backend/domain"
)

// TaskRepository is the remote-store surface for task rows. The session
// cache is its only writer.
type TaskRepository interface {
	ListForUser(ctx context.Context, userID string) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
}
