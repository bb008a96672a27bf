package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/issuetracker/issues-service/internal/core/domain"
)

// fakeRows yields pre-built issue rows to Scan.
type fakeRows struct {
	rows [][]any
	idx  int
	err  error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return r.rows[r.idx-1], nil }

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.idx-1]
	*dest[0].(*int64) = row[0].(int64)
	*dest[1].(*string) = row[1].(string)
	*dest[2].(*string) = row[2].(string)
	*dest[3].(**string) = row[3].(*string)
	*dest[4].(**string) = row[4].(*string)
	return nil
}

type fakeQuerier struct {
	sql     string
	args    []any
	rows    *fakeRows
	tag     pgconn.CommandTag
	execErr error
}

func (q *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.sql, q.args = sql, args
	return q.rows, nil
}

func (q *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.sql, q.args = sql, args
	return q.tag, q.execErr
}

func (q *fakeQuerier) Ping(context.Context) error { return nil }

func strPtr(s string) *string { return &s }

func TestListVisible_QueryShapeAndScan(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{rows: [][]any{
		{int64(1), "demo", "in progress", strPtr("Demo Team"), (*string)(nil)},
		{int64(2), "Buy milk", "to-do", strPtr("Ann"), strPtr("a@x.com")},
	}}}
	repo := NewIssueRepository(q)

	got, err := repo.ListVisible(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("ListVisible: %v", err)
	}
	if !strings.Contains(q.sql, "assignee_email IS NULL OR assignee_email = $1") {
		t.Errorf("unexpected query: %s", q.sql)
	}
	if len(q.args) != 1 || q.args[0] != "a@x.com" {
		t.Errorf("unexpected args: %v", q.args)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].Status != domain.StatusInProgress || got[0].AssigneeEmail != nil {
		t.Errorf("unexpected demo row: %+v", got[0])
	}
	if got[1].AssigneeEmail == nil || *got[1].AssigneeEmail != "a@x.com" {
		t.Errorf("unexpected own row: %+v", got[1])
	}
}

func TestListVisible_RowsError(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{err: errors.New("conn closed")}}
	repo := NewIssueRepository(q)

	if _, err := repo.ListVisible(context.Background(), "a@x.com"); err == nil {
		t.Fatal("expected error from rows.Err")
	}
}

func TestCreate_Args(t *testing.T) {
	q := &fakeQuerier{tag: pgconn.NewCommandTag("INSERT 0 1")}
	repo := NewIssueRepository(q)

	if err := repo.Create(context.Background(), domain.NewIssue{Title: "Buy milk", AssigneeName: "Ann", AssigneeEmail: "a@x.com"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.HasPrefix(q.sql, "INSERT INTO issues (title, assignee_name, assignee_email)") {
		t.Errorf("unexpected statement: %s", q.sql)
	}
	want := []any{"Buy milk", pgtype.Text{String: "Ann", Valid: true}, "a@x.com"}
	for i, w := range want {
		if q.args[i] != w {
			t.Errorf("arg %d: expected %v, got %v", i, w, q.args[i])
		}
	}
}

func TestCreate_NoNameIsNull(t *testing.T) {
	q := &fakeQuerier{tag: pgconn.NewCommandTag("INSERT 0 1")}
	repo := NewIssueRepository(q)

	if err := repo.Create(context.Background(), domain.NewIssue{Title: "Buy milk", AssigneeEmail: "a@x.com"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if name := q.args[1].(pgtype.Text); name.Valid {
		t.Errorf("expected NULL assignee_name, got %q", name.String)
	}
}

func TestDeleteByAssignee_RowsAffected(t *testing.T) {
	q := &fakeQuerier{tag: pgconn.NewCommandTag("DELETE 2")}
	repo := NewIssueRepository(q)

	n, err := repo.DeleteByAssignee(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("DeleteByAssignee: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 rows, got %d", n)
	}
	if q.args[0] != "a@x.com" {
		t.Errorf("unexpected args: %v", q.args)
	}
}

func TestDeleteByAssignee_Error(t *testing.T) {
	q := &fakeQuerier{execErr: errors.New("deadlock")}
	repo := NewIssueRepository(q)

	if _, err := repo.DeleteByAssignee(context.Background(), "a@x.com"); err == nil {
		t.Fatal("expected error")
	}
}
