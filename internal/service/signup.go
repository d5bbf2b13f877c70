// Package service contains the business logic layer of the application.
//
// The layering follows the usual three layers:
//
//	Handler (HTTP)     → parses forms, writes JSON
//	Service (business) → validates, normalizes, orchestrates persistence
//	Repository (data)  → reads/writes SQLite
//
// SignupService is deliberately HTTP-agnostic: it takes a SignupInput built
// from form fields and returns domain errors from internal/apperror. The
// handler translates both directions.
package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/sakif/learning-waitlist/internal/apperror"
	"github.com/sakif/learning-waitlist/internal/model"
	"github.com/sakif/learning-waitlist/internal/repository"
)

// emailPattern is the format check applied to submitted emails: something
// before an @, something after it, and a dot in the domain part. It is a
// sanity filter, not an RFC 5322 validator — the real proof of an address is
// the welcome email eventually sent to it.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SignupInput is the raw form submission, one field per form input.
// Challenges carries the repeated multi-select values as submitted; all
// strings arrive untrimmed.
type SignupInput struct {
	Name           string
	Email          string
	CountryCode    string
	Phone          string
	Subject        string
	StayInLoop     string
	Challenges     []string
	OtherChallenge string
}

// SignupResult is the outcome of a successful submission.
//
// ChallengesPersisted records whether the secondary write (the challenge
// rows) landed. The signup itself is durable either way — a false here means
// "signup saved, selections lost", which is logged but still reported to the
// user as success. Snapshot is best-effort enrichment and may be nil when
// the post-signup stats read failed.
type SignupResult struct {
	Signup              *model.Signup
	Message             string
	Snapshot            *model.ChallengeSnapshot
	ChallengesPersisted bool
}

// SignupService handles waitlist signups.
type SignupService struct {
	repo   repository.SignupRepository
	stats  *StatsService
	logger *slog.Logger
}

// NewSignupService creates a SignupService. Like StatsService, repo may be
// nil when the store is unconfigured; Submit then fails with a store error
// rather than a nil-pointer panic.
func NewSignupService(repo repository.SignupRepository, stats *StatsService, logger *slog.Logger) *SignupService {
	return &SignupService{
		repo:   repo,
		stats:  stats,
		logger: logger,
	}
}

// Submit validates and persists one signup.
//
// Validation is fail-fast, in a fixed order: required fields, email format,
// at least one recognized challenge, sentinel requires a description. The
// first failure is returned; there is no aggregate error report.
//
// Normalization before persistence:
//   - every string trimmed; empty-after-trim counts as absent
//   - email lowercased (uniqueness is case-insensitive by construction)
//   - unrecognized challenge labels dropped silently, duplicates collapsed
//   - the sentinel is stored as its slug plus the free text in a separate
//     column — never as an "Other: <text>" concatenation
//
// Persistence is two writes with different guarantees: the signup insert is
// the durable one, and any failure there fails the submission. The challenge
// rows are best-effort — by the time they run the signup is committed, so a
// failure is logged and flagged on the result, never surfaced to the user.
func (s *SignupService) Submit(ctx context.Context, input SignupInput) (*SignupResult, error) {
	if s.repo == nil {
		return nil, apperror.StoreFailure("signup store is not configured")
	}

	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	subject := strings.TrimSpace(input.Subject)
	otherText := strings.TrimSpace(input.OtherChallenge)

	switch {
	case name == "":
		return nil, apperror.MissingField("name")
	case email == "":
		return nil, apperror.MissingField("email")
	case subject == "":
		return nil, apperror.MissingField("subject")
	}

	if !emailPattern.MatchString(email) {
		return nil, apperror.InvalidEmail()
	}

	selected := normalizeChallenges(input.Challenges)
	if len(selected) == 0 {
		return nil, apperror.NoChallengeSelected()
	}

	otherSelected := false
	for _, c := range selected {
		if c.Slug == model.SlugOther {
			otherSelected = true
		}
	}
	if otherSelected && otherText == "" {
		return nil, apperror.MissingOtherDescription()
	}

	signup := &model.Signup{
		Name:        name,
		Email:       strings.ToLower(email),
		CountryCode: optional(input.CountryCode),
		Phone:       optional(input.Phone),
		Subject:     subject,
		StayInLoop:  parseStayInLoop(input.StayInLoop),
	}

	if err := s.repo.CreateSignup(ctx, signup); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			// Already classified (duplicate email, schema missing).
			return nil, err
		}
		s.logger.Error("failed to create signup",
			slog.String("email", signup.Email),
			slog.String("error", err.Error()),
		)
		return nil, apperror.StoreFailure(err.Error())
	}

	result := &SignupResult{
		Signup:              signup,
		Message:             "Thank you for signing up! We'll be in touch soon.",
		ChallengesPersisted: true,
	}

	// Secondary write: the signup is committed, so from here on nothing can
	// turn this submission into a user-facing failure.
	selections := buildSelections(signup.ID, selected, otherText)
	if err := s.repo.AddSelections(ctx, signup.ID, selections); err != nil {
		s.logger.Warn("signup saved but challenge selections were not",
			slog.String("signupId", signup.ID),
			slog.String("error", err.Error()),
		)
		result.ChallengesPersisted = false
	}

	// Best-effort snapshot for the post-signup chart.
	snapshot, err := s.stats.Snapshot(ctx)
	if err != nil {
		s.logger.Warn("post-signup snapshot unavailable",
			slog.String("signupId", signup.ID),
			slog.String("error", err.Error()),
		)
	} else {
		result.Snapshot = snapshot
	}

	s.logger.Info("signup created",
		slog.String("id", signup.ID),
		slog.Int("challenges", len(selections)),
		slog.Bool("challengesPersisted", result.ChallengesPersisted),
	)

	return result, nil
}

// normalizeChallenges maps submitted labels onto the catalog. Unknown labels
// are dropped without error (a stale client is not the user's fault) and
// duplicates collapse to one — the catalog is a fixed enumeration, so a
// repeated checkbox value is a client bug, not signal. The returned slice is
// in catalog order, which makes downstream behaviour deterministic no matter
// how the browser ordered the fields.
func normalizeChallenges(raw []string) []model.Challenge {
	seen := make(map[string]bool, len(raw))
	for _, label := range raw {
		if c, ok := model.ChallengeByLabel(strings.TrimSpace(label)); ok {
			seen[c.Slug] = true
		}
	}

	selected := make([]model.Challenge, 0, len(seen))
	for _, c := range model.Catalog {
		if seen[c.Slug] {
			selected = append(selected, c)
		}
	}
	return selected
}

func buildSelections(signupID string, selected []model.Challenge, otherText string) []model.Selection {
	selections := make([]model.Selection, 0, len(selected))
	for _, c := range selected {
		sel := model.Selection{SignupID: signupID, Challenge: c.Slug}
		if c.Slug == model.SlugOther {
			sel.OtherDescription = &otherText
		}
		selections = append(selections, sel)
	}
	return selections
}

// parseStayInLoop accepts the form's "yes"/"no" plus the usual boolean
// encodings checkboxes produce. Anything unrecognized is false — the field
// defaults to opted-out.
func parseStayInLoop(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true", "1", "on":
		return true
	}
	return false
}

// optional turns a form string into a nullable column value: trimmed, and
// nil when empty so the store sees NULL rather than "".
func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
