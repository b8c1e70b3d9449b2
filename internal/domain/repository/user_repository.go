package repository

import "github.com/oksasatya/go-task-tracker/internal/domain/entity"

// UserRepository defines the interface for credential-store operations.
// It is used only by the auth service.
type UserRepository interface {
	ExistsByUsername(username string) (bool, error)
	GetByUsername(username string) (*entity.User, error)
	Create(u *entity.User) error
}
