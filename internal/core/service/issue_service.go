package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/issuetracker/issues-service/internal/api/metrics"
	"github.com/issuetracker/issues-service/internal/core/domain"
	"github.com/issuetracker/issues-service/internal/core/ports"
)

// IssueService implements the list, create and delete-account use cases.
// Each operation is a single repository call; nothing is retried.
type IssueService struct {
	repo     ports.IssueRepository
	identity ports.IdentityAdmin
	idem     ports.IdempotencyStore
	logger   zerolog.Logger
}

// NewIssueService wires the service. idem may be nil, which disables
// Idempotency-Key handling on create.
func NewIssueService(repo ports.IssueRepository, identity ports.IdentityAdmin, idem ports.IdempotencyStore, logger zerolog.Logger) *IssueService {
	return &IssueService{repo: repo, identity: identity, idem: idem, logger: logger}
}

// ListIssues returns the demo rows plus the caller's own rows.
func (s *IssueService) ListIssues(ctx context.Context, caller domain.Principal) ([]domain.Issue, error) {
	if err := requirePrincipal(caller); err != nil {
		return nil, err
	}

	issues, err := s.repo.ListVisible(ctx, caller.Email)
	if err != nil {
		metrics.IssuesListedTotal.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Str("email", caller.Email).Msg("failed to list issues")
		return nil, domain.Upstream("list issues", err)
	}

	metrics.IssuesListedTotal.WithLabelValues("ok").Inc()
	if issues == nil {
		issues = []domain.Issue{}
	}
	return issues, nil
}

// CreateIssue inserts one row assigned to the caller. The title is passed
// through verbatim. When an idempotency key is supplied and has been seen
// before for this caller, nothing is inserted.
func (s *IssueService) CreateIssue(ctx context.Context, input ports.CreateIssueInput) (*ports.CreateIssueResult, error) {
	if err := requirePrincipal(input.Principal); err != nil {
		return nil, err
	}

	claimed := false
	if input.IdempotencyKey != "" && s.idem != nil {
		first, err := s.idem.Claim(ctx, input.Principal.Email, input.IdempotencyKey)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("idempotency check failed, creating anyway")
		case !first:
			metrics.IssuesCreatedTotal.WithLabelValues("replayed").Inc()
			s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Str("email", input.Principal.Email).Msg("idempotent replay")
			return &ports.CreateIssueResult{Replayed: true}, nil
		default:
			claimed = true
		}
	}

	err := s.repo.Create(ctx, domain.NewIssue{
		Title:         input.Title,
		AssigneeName:  input.Principal.Name,
		AssigneeEmail: input.Principal.Email,
	})
	if err != nil {
		metrics.IssuesCreatedTotal.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Str("email", input.Principal.Email).Msg("failed to create issue")
		if claimed {
			if relErr := s.idem.Release(ctx, input.Principal.Email, input.IdempotencyKey); relErr != nil {
				s.logger.Warn().Err(relErr).Str("idempotency_key", input.IdempotencyKey).Msg("failed to release idempotency key")
			}
		}
		return nil, domain.Upstream("create issue", err)
	}

	metrics.IssuesCreatedTotal.WithLabelValues("created").Inc()
	s.logger.Info().Str("email", input.Principal.Email).Msg("issue created")
	return &ports.CreateIssueResult{}, nil
}

// DeleteAccount deletes the identity first and the caller's issues second.
// If the second step fails the identity is already gone and the rows stay
// orphaned; this ordering is kept on purpose and reported in the logs.
func (s *IssueService) DeleteAccount(ctx context.Context, caller domain.Principal) error {
	if err := requirePrincipal(caller); err != nil {
		return err
	}

	if err := s.identity.DeleteUser(ctx, caller.Subject); err != nil {
		metrics.AccountDeletionsTotal.WithLabelValues("identity_failed").Inc()
		s.logger.Error().Err(err).Str("sub", caller.Subject).Msg("failed to delete identity")
		return domain.Upstream("delete identity", err)
	}
	s.logger.Info().Str("sub", caller.Subject).Msg("identity deleted")

	n, err := s.repo.DeleteByAssignee(ctx, caller.Email)
	if err != nil {
		metrics.AccountDeletionsTotal.WithLabelValues("issues_failed").Inc()
		s.logger.Error().Err(err).
			Str("sub", caller.Subject).
			Str("email", caller.Email).
			Msg("identity deleted but issues remain")
		return domain.Upstream("delete issues", err)
	}

	metrics.IssuesDeletedTotal.Add(float64(n))
	metrics.AccountDeletionsTotal.WithLabelValues("ok").Inc()
	s.logger.Info().Str("email", caller.Email).Int64("rows", n).Msg("issues deleted")
	return nil
}

// requirePrincipal fails fast when the subject or email claim is missing.
func requirePrincipal(p domain.Principal) error {
	if p.Subject == "" || p.Email == "" {
		return domain.ErrUnauthorized
	}
	return nil
}
