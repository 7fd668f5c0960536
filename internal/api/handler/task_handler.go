package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/evotodo/todo-backend/internal/core/domain"
	"github.com/evotodo/todo-backend/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations. Every method runs
// behind the Auth + TenantGuard pipeline and uses only the verified token
// identity to address storage — never the :user_id path parameter, even
// though the guard has already proven the two equal.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// Create handles POST /api/:user_id/tasks.
//
// @Summary      Create a new task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string             true  "Tenant identifier"
// @Param        body     body      createTaskRequest  true  "Task fields"
// @Success      201      {object}  taskResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /api/{user_id}/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	task, err := h.service.Create(c.Request().Context(), ident.TenantID, toCreateInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toTaskResponse(task))
}

// List handles GET /api/:user_id/tasks.
//
// @Summary      List the tenant's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string  true  "Tenant identifier"
// @Success      200      {object}  taskListResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Router       /api/{user_id}/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.List(c.Request().Context(), ident.TenantID)
	if err != nil {
		return err
	}

	data := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		data = append(data, toTaskResponse(t))
	}
	return c.JSON(http.StatusOK, taskListResponse{Data: data})
}

// Get handles GET /api/:user_id/tasks/:task_id.
//
// @Summary      Get a single task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string  true  "Tenant identifier"
// @Param        task_id  path      int     true  "Task id"
// @Success      200      {object}  taskResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /api/{user_id}/tasks/{task_id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id, err := parseTaskID(c)
	if err != nil {
		return err
	}

	task, err := h.service.Get(c.Request().Context(), ident.TenantID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Update handles PUT /api/:user_id/tasks/:task_id — full replacement of all
// mutable content fields.
//
// @Summary      Replace a task's content
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string             true  "Tenant identifier"
// @Param        task_id  path      int                true  "Task id"
// @Param        body     body      updateTaskRequest  true  "Replacement fields"
// @Success      200      {object}  taskResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /api/{user_id}/tasks/{task_id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id, err := parseTaskID(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	task, err := h.service.Update(c.Request().Context(), ident.TenantID, id, toUpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Patch handles PATCH /api/:user_id/tasks/:task_id — completion flag only.
//
// @Summary      Set a task's completion flag
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string            true  "Tenant identifier"
// @Param        task_id  path      int               true  "Task id"
// @Param        body     body      patchTaskRequest  true  "Completion flag"
// @Success      200      {object}  taskResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /api/{user_id}/tasks/{task_id} [patch]
func (h *TaskHandler) Patch(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id, err := parseTaskID(c)
	if err != nil {
		return err
	}

	var req patchTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	task, err := h.service.SetCompleted(c.Request().Context(), ident.TenantID, id, *req.Completed)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete handles DELETE /api/:user_id/tasks/:task_id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        user_id  path  string  true  "Tenant identifier"
// @Param        task_id  path  int     true  "Task id"
// @Success      204      "deleted"
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /api/{user_id}/tasks/{task_id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id, err := parseTaskID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), ident.TenantID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats handles GET /api/:user_id/tasks/stats.
//
// @Summary      Per-tenant task counters
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string  true  "Tenant identifier"
// @Success      200      {object}  taskStatsResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Router       /api/{user_id}/tasks/stats [get]
func (h *TaskHandler) Stats(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), ident.TenantID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, taskStatsResponse{
		Total:               stats.Total,
		Completed:           stats.Completed,
		Pending:             stats.Pending,
		HighPriorityPending: stats.HighPriorityPending,
	})
}

// parseTaskID reads the :task_id path parameter. A non-numeric id cannot name
// any task, so it maps to the uniform not-found outcome rather than a
// distinct error shape.
func parseTaskID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("task_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrTaskNotFound
	}
	return id, nil
}
