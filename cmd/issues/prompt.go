package main

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/issuetracker/issues-service/internal/client/identity"
)

// formChallenger asks for email and password in the terminal.
type formChallenger struct{}

func (formChallenger) Challenge(ctx context.Context) (string, string, error) {
	var email, password string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&email).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("email is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", "", identity.ErrChallengeAbandoned
		}
		return "", "", err
	}
	return strings.TrimSpace(email), password, nil
}

// formConfirmer asks a yes/no question; aborting the form counts as no.
type formConfirmer struct{}

func (formConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Yes, delete everything").
				Negative("Cancel").
				Value(&confirmed),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}

// yesConfirmer answers yes without asking, for --yes.
type yesConfirmer struct{}

func (yesConfirmer) Confirm(context.Context, string) (bool, error) { return true, nil }
