package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/issuetracker/issues-service/internal/core/ports"
)

// KeepAliveHandler exposes the keep-alive read over HTTP. It needs no
// identity; it is not a health probe.
type KeepAliveHandler struct {
	service ports.KeepAliveService
}

func NewKeepAliveHandler(service ports.KeepAliveService) *KeepAliveHandler {
	return &KeepAliveHandler{service: service}
}

// Trigger handles GET /keep-alive (alias /keep-db-awake).
//
// @Summary      Issue one read against the database
// @Tags         maintenance
// @Produce      plain
// @Success      200  {string}  string  "OK"
// @Failure      500  {object}  errorResponse
// @Router       /keep-alive [get]
func (h *KeepAliveHandler) Trigger(c echo.Context) error {
	if err := h.service.KeepAlive(c.Request().Context(), ports.TriggerHTTP); err != nil {
		return err
	}
	return c.String(http.StatusOK, "OK")
}
