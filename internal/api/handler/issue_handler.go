package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/issuetracker/issues-service/internal/core/domain"
	"github.com/issuetracker/issues-service/internal/core/ports"
)

// maxBodyBytes bounds the create body read.
const maxBodyBytes = 1 << 20

var errMissingTitle = fmt.Errorf("%w: Provide a title for the issue", domain.ErrBadRequest)

// IssueHandler serves the protected issue functions.
type IssueHandler struct {
	service ports.IssueService
}

func NewIssueHandler(service ports.IssueService) *IssueHandler {
	return &IssueHandler{service: service}
}

// List handles GET /list (alias /get).
//
// @Summary      List visible issues
// @Description  Returns every unassigned demo issue plus the caller's own issues.
// @Tags         issues
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  issueListResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /list [get]
func (h *IssueHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	issues, err := h.service.ListIssues(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, issues)
}

// Create handles POST /create.
//
// @Summary      Create an issue assigned to the caller
// @Tags         issues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string              false  "Key that makes retried submissions insert once"
// @Param        body             body      createIssueRequest  true   "Issue title"
// @Success      200              {object}  messageResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /create [post]
func (h *IssueHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: unreadable body", domain.ErrBadRequest)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errMissingTitle
	}

	var req createIssueRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	_, err = h.service.CreateIssue(c.Request().Context(), ports.CreateIssueInput{
		Principal:      p,
		Title:          req.Title,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Issue created"})
}

// Delete handles DELETE /delete: the caller's identity goes first, then
// every issue assigned to their email.
//
// @Summary      Delete the caller's account and issues
// @Tags         issues
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /delete [delete]
func (h *IssueHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteAccount(c.Request().Context(), p); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
