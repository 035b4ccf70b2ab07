package task

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status enumerates the lifecycle states of a task.
type Status string

const (
	StatusOpen Status = "open"
	StatusDone Status = "done"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusDone
}

// Task is owned by exactly one user; the owner is fixed at creation and
// never reassigned.
type Task struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Description string
	Status      Status
	CreatedAt   time.Time
}

var (
	ErrNotFound      = errors.New("task not found")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidStatus = errors.New("invalid status")
)

// Repository is the persistence port for tasks.
type Repository interface {
	Create(ctx context.Context, t Task) error
	GetByID(ctx context.Context, id uuid.UUID) (Task, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Task, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Delete(ctx context.Context, id uuid.UUID) error
}
