package domain

import (
	"errors"
	"fmt"
	"strings"
)

// IssueStatus represents the workflow state of an issue.
type IssueStatus string

const (
	StatusToDo       IssueStatus = "to-do"
	StatusInProgress IssueStatus = "in-progress"
	StatusDone       IssueStatus = "done"
)

var ErrInvalidStatus = errors.New("invalid issue status")

// ParseIssueStatus normalises a stored status. The legacy spelling
// "in progress" maps to StatusInProgress; an empty value is StatusToDo.
func ParseIssueStatus(s string) (IssueStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(StatusToDo), "todo":
		return StatusToDo, nil
	case string(StatusInProgress), "in progress":
		return StatusInProgress, nil
	case string(StatusDone):
		return StatusDone, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Issue is a single row of the issues table.
//
// AssigneeEmail is nil for the unassigned demo rows that every caller sees.
type Issue struct {
	ID            int64       `json:"id"`
	Title         string      `json:"title"`
	Status        IssueStatus `json:"status"`
	AssigneeName  *string     `json:"assignee_name"`
	AssigneeEmail *string     `json:"assignee_email"`
}

// NewIssue is the insert payload for a freshly created issue.
type NewIssue struct {
	Title         string
	AssigneeName  string
	AssigneeEmail string
}

// NormalizeStatus is ParseIssueStatus for values read back from storage:
// unknown values are kept verbatim rather than failing the whole read.
func NormalizeStatus(s string) IssueStatus {
	st, err := ParseIssueStatus(s)
	if err != nil {
		return IssueStatus(s)
	}
	return st
}
