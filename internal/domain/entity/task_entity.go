package entity

import (
	"time"
)

// Task is a single todo item owned by exactly one user.
//
// UserID carries the owner's username (the token subject) and is
// immutable after creation. Every read and mutation must be scoped to
// it; a mismatch is an ownership violation, not a missing record.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Tags        []string   `json:"tags"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
	Archived    bool       `json:"archived"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// DefaultPriority is applied when a create request omits priority.
const DefaultPriority = "medium"
