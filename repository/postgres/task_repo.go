package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/groupfit/backend/domain"
	"github.com/groupfit/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) ListForUser(ctx context.Context, userID string) ([]domain.Task, error) {
	const query = `
	SELECT t.id, t.title, t.start_date_time, t.end_date_time, t.location,
	       t.grouping_id, t.notes, t.priority, t.notification,
	       t.created_by, t.is_complete, t.completed_by
	FROM tasks t
	JOIN grouping_members gm ON gm.grouping_id = t.grouping_id
	WHERE gm.user_id = $1
	ORDER BY t.start_date_time
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, title, start_date_time, end_date_time, location,
	                   grouping_id, notes, priority, notification,
	                   created_by, is_complete, completed_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING id
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Start,
		task.End,
		task.Location,
		task.GroupingID,
		task.Notes,
		task.Priority,
		nullableTime(task.Notification),
		task.CreatedBy,
		task.IsComplete,
		nullString(task.CompletedBy),
	).Scan(&task.ID); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET title = $2,
		start_date_time = $3,
		end_date_time = $4,
		location = $5,
		grouping_id = $6,
		notes = $7,
		priority = $8,
		notification = $9,
		is_complete = $10,
		completed_by = $11
	WHERE id = $1
	RETURNING id
	`

	var id string
	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Start,
		task.End,
		task.Location,
		task.GroupingID,
		task.Notes,
		task.Priority,
		nullableTime(task.Notification),
		task.IsComplete,
		nullString(task.CompletedBy),
	).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var (
		notification *time.Time
		completedBy  *string
	)

	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Start,
		&task.End,
		&task.Location,
		&task.GroupingID,
		&task.Notes,
		&task.Priority,
		&notification,
		&task.CreatedBy,
		&task.IsComplete,
		&completedBy,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.Notification = notification
	if completedBy != nil {
		task.CompletedBy = *completedBy
	}

	return &task, nil
}
