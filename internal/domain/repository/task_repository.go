package repository

import "github.com/oksasatya/go-task-tracker/internal/domain/entity"

// TaskRepository defines the interface for task-store operations.
// It is used only by the task service; ownership checks live there,
// not here.
type TaskRepository interface {
	GetByID(id string) (*entity.Task, error)
	ListByUser(userID string) ([]*entity.Task, error)
	Create(t *entity.Task) error
	Update(t *entity.Task) error
	Delete(id string) error
}
