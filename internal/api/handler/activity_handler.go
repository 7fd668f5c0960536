package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/evotodo/todo-backend/internal/core/ports"
)

// ActivityHandler serves the tenant's activity feed.
type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// List handles GET /api/:user_id/activity.
//
// @Summary      Recent task activity for the tenant
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string  true   "Tenant identifier"
// @Param        limit    query     int     false  "Maximum entries to return (default 20, cap 100)"
// @Success      200      {object}  activityListResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Router       /api/{user_id}/activity [get]
func (h *ActivityHandler) List(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	events, err := h.service.Recent(c.Request().Context(), ident.TenantID, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activityListResponse{Data: toActivityEntries(events)})
}
