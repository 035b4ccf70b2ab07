package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/vbncursed/tasktracker/api/http/presenter"
	"github.com/vbncursed/tasktracker/pkg/auth"
	"github.com/vbncursed/tasktracker/pkg/security/jwt"
	"github.com/vbncursed/tasktracker/pkg/task"
)

type TaskHandler struct {
	uc task.UseCase
}

func NewTaskHandler(uc task.UseCase) *TaskHandler { return &TaskHandler{uc: uc} }

type taskResponse struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toTaskResponse(t task.Task) taskResponse {
	return taskResponse{
		ID:          t.ID.String(),
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
	}
}

func currentUser(c *fiber.Ctx) (auth.User, bool) {
	return jwt.CurrentUser(c)
}

// List returns the caller's tasks in insertion order.
// @Summary List tasks
// @Tags    tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} taskResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusForbidden, "forbidden")
	}
	tasks, err := h.uc.List(c.Context(), user.ID)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list tasks")
	}
	res := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		res = append(res, toTaskResponse(t))
	}
	return presenter.JSON(c, http.StatusOK, res)
}

type createTaskRequest struct {
	Description string `json:"description"`
	Status      string `json:"status"`
}

// Create stores a new task owned by the caller. Status defaults to "open".
// @Summary Create task
// @Tags    tasks
// @Accept  json
// @Produce json
// @Param   input body createTaskRequest true "task fields"
// @Security BearerAuth
// @Success 200 {object} taskResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusForbidden, "forbidden")
	}
	var req createTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Description) == "" {
		return presenter.Error(c, http.StatusBadRequest, "description is required")
	}
	t, err := h.uc.Create(c.Context(), user.ID, req.Description, task.Status(req.Status))
	if err != nil {
		if errors.Is(err, task.ErrInvalidStatus) {
			return presenter.Error(c, http.StatusBadRequest, "invalid status")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to create task")
	}
	return presenter.JSON(c, http.StatusOK, toTaskResponse(t))
}

type updateTaskRequest struct {
	Status string `json:"status"`
}

// Update changes the status of one of the caller's tasks. A task that does
// not exist and a task owned by someone else get the same 403, so the
// endpoint leaks nothing about foreign task ids.
// @Summary Update task status
// @Tags    tasks
// @Accept  json
// @Produce json
// @Param   id path string true "task id (UUID)"
// @Param   input body updateTaskRequest true "new status"
// @Security BearerAuth
// @Success 200 {object} taskResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /tasks/{id} [put]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusForbidden, "forbidden")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusForbidden, "forbidden")
	}
	var req updateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	t, err := h.uc.UpdateStatus(c.Context(), user.ID, id, task.Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, task.ErrInvalidStatus):
			return presenter.Error(c, http.StatusBadRequest, "invalid status")
		case errors.Is(err, task.ErrNotFound), errors.Is(err, task.ErrForbidden):
			return presenter.Error(c, http.StatusForbidden, "forbidden")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to update task")
	}
	return presenter.JSON(c, http.StatusOK, toTaskResponse(t))
}

// Delete removes one of the caller's tasks, with the same 403 collapse as
// Update.
// @Summary Delete task
// @Tags    tasks
// @Produce json
// @Param   id path string true "task id (UUID)"
// @Security BearerAuth
// @Success 200 {object} nil
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusForbidden, "forbidden")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusForbidden, "forbidden")
	}
	if err := h.uc.Delete(c.Context(), user.ID, id); err != nil {
		if errors.Is(err, task.ErrNotFound) || errors.Is(err, task.ErrForbidden) {
			return presenter.Error(c, http.StatusForbidden, "forbidden")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to delete task")
	}
	return c.SendStatus(http.StatusOK)
}
