package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	repo "github.com/oksasatya/go-task-tracker/internal/domain/repository"
)

var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrTaskNotFound    = errors.New("task not found")
	ErrForbidden       = errors.New("not the task owner")
	ErrTitleRequired   = errors.New("task title is required")
)

// TaskService enforces authentication and ownership in front of the
// task store. The acting identity is passed explicitly into every
// operation; it is resolved once per request by the HTTP layer, never
// read from ambient state.
type TaskService struct {
	Repo   repo.TaskRepository
	Logger *logrus.Logger
}

func NewTaskService(repo repo.TaskRepository, logger *logrus.Logger) *TaskService {
	return &TaskService{Repo: repo, Logger: logger}
}

// CreateTaskInput carries the client-settable fields for a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    string
	Tags        []string
	DueDate     *time.Time
}

// UpdateTaskInput is a partial update: nil means "leave the stored
// value alone", a non-nil pointer overwrites it.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *string
	Tags        *[]string
	DueDate     *time.Time
	Completed   *bool
	Archived    *bool
}

// BulkResult aggregates per-item outcomes of a bulk operation. Bulk
// callers never get per-id detail.
type BulkResult struct {
	SuccessCount int `json:"successCount"`
	FailCount    int `json:"failCount"`
}

// authorize loads the task and verifies the acting user owns it.
// Existence is checked before ownership so the two failures stay
// distinct inside the service; the HTTP layer collapses them.
func (s *TaskService) authorize(userID, taskID string) (*entity.Task, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	t, err := s.Repo.GetByID(taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}
	if t.UserID != userID {
		if s.Logger != nil {
			s.Logger.WithFields(logrus.Fields{"task_id": taskID, "user": userID, "owner": t.UserID}).
				Warn("ownership check failed")
		}
		return nil, ErrForbidden
	}
	return t, nil
}

// List returns all tasks owned by the acting user, newest first.
func (s *TaskService) List(ctx context.Context, userID string) ([]*entity.Task, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.Repo.ListByUser(userID)
}

func (s *TaskService) Create(ctx context.Context, userID string, in CreateTaskInput) (*entity.Task, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.DefaultPriority
	}

	t := &entity.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    priority,
		Tags:        in.Tags,
		DueDate:     in.DueDate,
		Completed:   false,
		Archived:    false,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.Create(t); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"task_id": t.ID, "user": userID}).Info("task created")
	}
	return t, nil
}

// Update applies a field-by-field overwrite for fields present in the
// input. A present-but-blank title is skipped so a title can never be
// blanked through update.
func (s *TaskService) Update(ctx context.Context, userID, taskID string, in UpdateTaskInput) (*entity.Task, error) {
	t, err := s.authorize(userID, taskID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.Tags != nil {
		t.Tags = *in.Tags
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	if in.Archived != nil {
		t.Archived = *in.Archived
	}

	if err := s.Repo.Update(t); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"task_id": taskID, "user": userID}).Info("task updated")
	}
	return t, nil
}

// Toggle flips the completed flag.
func (s *TaskService) Toggle(ctx context.Context, userID, taskID string) (*entity.Task, error) {
	t, err := s.authorize(userID, taskID)
	if err != nil {
		return nil, err
	}
	t.Completed = !t.Completed
	if err := s.Repo.Update(t); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"task_id": taskID, "completed": t.Completed}).Info("task toggled")
	}
	return t, nil
}

// Archive flips the archived flag. It is a toggle despite the name,
// matching the public surface this service has always had.
func (s *TaskService) Archive(ctx context.Context, userID, taskID string) (*entity.Task, error) {
	t, err := s.authorize(userID, taskID)
	if err != nil {
		return nil, err
	}
	t.Archived = !t.Archived
	if err := s.Repo.Update(t); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"task_id": taskID, "archived": t.Archived}).Info("task archived flag flipped")
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	t, err := s.authorize(userID, taskID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(t.ID); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"task_id": taskID, "user": userID}).Info("task deleted")
	}
	return nil
}

// BulkToggle applies Toggle per id, continuing past individual
// failures. Items are processed sequentially; they are independent and
// no transactionality spans the batch.
func (s *TaskService) BulkToggle(ctx context.Context, userID string, taskIDs []string) BulkResult {
	var res BulkResult
	for _, id := range taskIDs {
		if _, err := s.Toggle(ctx, userID, id); err != nil {
			if s.Logger != nil {
				s.Logger.WithError(err).WithField("task_id", id).Warn("bulk toggle item failed")
			}
			res.FailCount++
			continue
		}
		res.SuccessCount++
	}
	return res
}

// BulkDelete applies Delete per id with the same isolation as
// BulkToggle.
func (s *TaskService) BulkDelete(ctx context.Context, userID string, taskIDs []string) BulkResult {
	var res BulkResult
	for _, id := range taskIDs {
		if err := s.Delete(ctx, userID, id); err != nil {
			if s.Logger != nil {
				s.Logger.WithError(err).WithField("task_id", id).Warn("bulk delete item failed")
			}
			res.FailCount++
			continue
		}
		res.SuccessCount++
	}
	return res
}
