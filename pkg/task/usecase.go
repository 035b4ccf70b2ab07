package task

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UseCase exposes owner-scoped task operations. Every mutation takes the
// requesting user's id and refuses to touch tasks the requester does not own.
type UseCase interface {
	Create(ctx context.Context, ownerID uuid.UUID, description string, status Status) (Task, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]Task, error)
	UpdateStatus(ctx context.Context, requesterID, id uuid.UUID, status Status) (Task, error)
	Delete(ctx context.Context, requesterID, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService returns the default implementation of UseCase.
func NewService(repo Repository) UseCase {
	return &service{repo: repo}
}

// Owns is the single ownership predicate used by every mutation.
func Owns(t Task, requesterID uuid.UUID) bool {
	return t.OwnerID == requesterID
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, description string, status Status) (Task, error) {
	if status == "" {
		status = StatusOpen
	}
	if !status.Valid() {
		return Task{}, ErrInvalidStatus
	}
	t := Task{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Description: strings.TrimSpace(description),
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID) ([]Task, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// UpdateStatus changes only the status field. A missing task and a task
// owned by someone else are reported with distinct errors; the HTTP layer
// collapses both so callers cannot learn whether the id exists.
func (s *service) UpdateStatus(ctx context.Context, requesterID, id uuid.UUID, status Status) (Task, error) {
	if !status.Valid() {
		return Task{}, ErrInvalidStatus
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Task{}, err
	}
	if !Owns(t, requesterID) {
		return Task{}, ErrForbidden
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return Task{}, err
	}
	t.Status = status
	return t, nil
}

func (s *service) Delete(ctx context.Context, requesterID, id uuid.UUID) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !Owns(t, requesterID) {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
