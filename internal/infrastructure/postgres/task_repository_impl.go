package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/internal/domain/repository"
)

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) GetByID(id string) (*entity.Task, error) {
	// ids arrive as raw path strings; a non-UUID can never match the
	// uuid primary key, so treat it as no rows instead of letting the
	// uuid codec reject the parameter.
	if uuid.Validate(id) != nil {
		return nil, nil
	}

	ctx := context.Background()
	t := &entity.Task{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, title, description, priority, tags, due_date,
		       completed, archived, created_at
		FROM tasks
		WHERE id = $1
	`, id)

	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Priority,
		&t.Tags, &t.DueDate, &t.Completed, &t.Archived, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return t, nil
}

func (r *TaskRepository) ListByUser(userID string) ([]*entity.Task, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, title, description, priority, tags, due_date,
		       completed, archived, created_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*entity.Task, 0)
	for rows.Next() {
		t := &entity.Task{}
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Priority,
			&t.Tags, &t.DueDate, &t.Completed, &t.Archived, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) Create(t *entity.Task) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tasks (id, user_id, title, description, priority, tags,
		                   due_date, completed, archived, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, t.ID, t.UserID, t.Title, t.Description, t.Priority, t.Tags,
		t.DueDate, t.Completed, t.Archived, t.CreatedAt)
	return err
}

// Update overwrites every mutable column. user_id and created_at are
// deliberately absent from the SET list.
func (r *TaskRepository) Update(t *entity.Task) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, priority = $3, tags = $4,
		    due_date = $5, completed = $6, archived = $7
		WHERE id = $8
	`, t.Title, t.Description, t.Priority, t.Tags, t.DueDate,
		t.Completed, t.Archived, t.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *TaskRepository) Delete(id string) error {
	if uuid.Validate(id) != nil {
		return nil
	}
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
