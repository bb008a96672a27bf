package handler

import "github.com/issuetracker/issues-service/internal/core/domain"

// errorResponse is the error envelope rendered by the API error handler.
// Declared here so the generated API docs can reference it.
type errorResponse struct {
	Error string `json:"error"`
}

// createIssueRequest is the create body. The title is stored verbatim: an
// empty string is a valid title.
type createIssueRequest struct {
	Title string `json:"title"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// issueListResponse documents the list payload.
type issueListResponse []domain.Issue
