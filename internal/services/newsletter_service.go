package services

import (
	"context"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/logging"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/repository"

	"github.com/google/uuid"
)

// NewsletterService handles signups for the mailing list. Emails are screened
// by the configured validator before they reach the table, and new
// subscribers get a confirmation mail when a mailer is wired up.
type NewsletterService struct {
	Repo      *repository.NewsletterRepository
	Validator EmailValidator
	Mailer    Mailer

	// base for confirmation links, e.g. https://site.example/newsletter/confirm
	ConfirmBaseURL string
}

func NewNewsletterService(r *repository.NewsletterRepository, v EmailValidator, m Mailer, confirmBaseURL string) *NewsletterService {
	return &NewsletterService{Repo: r, Validator: v, Mailer: m, ConfirmBaseURL: confirmBaseURL}
}

// Subscribe adds an email to the list. Duplicate signups are idempotent and
// do not resend the confirmation mail.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (*model.Subscriber, error) {
	if err := s.Validator.Validate(ctx, email); err != nil {
		return nil, err
	}

	sub, isNew, err := s.Repo.Subscribe(ctx, email, uuid.NewString())
	if err != nil {
		return nil, err
	}

	if isNew && s.Mailer != nil {
		confirmURL := s.ConfirmBaseURL + "?token=" + sub.ConfirmToken
		// confirmation mail is best effort; the signup itself already stuck
		if err := s.Mailer.SendNewsletterConfirmation(ctx, sub.Email, confirmURL); err != nil {
			logging.FromCtx(ctx).Warn("confirmation mail failed", "error", err)
		}
	}
	return sub, nil
}

// Confirm flips a subscriber to confirmed by their token.
func (s *NewsletterService) Confirm(ctx context.Context, token string) error {
	return s.Repo.Confirm(ctx, token)
}
