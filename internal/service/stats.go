package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/learning-waitlist/internal/apperror"
	"github.com/sakif/learning-waitlist/internal/model"
	"github.com/sakif/learning-waitlist/internal/repository"
)

// StatsService computes challenge snapshots from current store contents.
//
// It is strictly read-only and stateless between calls — the snapshot is a
// value computed from one logical pass over the store, never cached. Calling
// it while intake is concurrently inserting may observe either state; that's
// fine for an eventually-consistent dashboard.
type StatsService struct {
	repo   repository.SignupRepository
	logger *slog.Logger
}

// NewStatsService creates a StatsService. repo may be nil when the store is
// not configured; Snapshot then degrades to apperror.ErrUnavailable instead
// of panicking on a nil client (the dashboard renders an empty state).
func NewStatsService(repo repository.SignupRepository, logger *slog.Logger) *StatsService {
	return &StatsService{
		repo:   repo,
		logger: logger,
	}
}

// Snapshot computes a fresh ChallengeSnapshot.
//
// Counting rules:
//   - each catalog entry counts the signups reporting it; selections are
//     stored one row per (signup, challenge), so a row count per slug is a
//     signup count per challenge
//   - the sentinel counts every signup that selected it regardless of the
//     free text; the texts are collected separately
//   - averagePerUser is totalSelections/totalUsers to one decimal place,
//     "0" for an empty store (an empty store is a valid empty state)
//
// Any store failure — unconfigured, unreachable, schema missing — comes back
// as apperror.ErrUnavailable so callers degrade instead of crashing.
func (s *StatsService) Snapshot(ctx context.Context) (*model.ChallengeSnapshot, error) {
	if s.repo == nil {
		return nil, apperror.Unavailable("signup store is not configured")
	}

	totalUsers, err := s.repo.CountSignups(ctx)
	if err != nil {
		return nil, s.unavailable("counting signups", err)
	}

	selections, err := s.repo.ListSelections(ctx)
	if err != nil {
		return nil, s.unavailable("listing selections", err)
	}

	counts := make(map[string]int, len(model.Catalog))
	var otherDescriptions []string
	totalSelections := 0

	for _, sel := range selections {
		if _, ok := model.ChallengeBySlug(sel.Challenge); !ok {
			// A slug from a retired catalog entry. Skip it rather than
			// invent a chart row the form can no longer produce.
			continue
		}
		counts[sel.Challenge]++
		totalSelections++

		if sel.Challenge == model.SlugOther && sel.OtherDescription != nil {
			if desc := strings.TrimSpace(*sel.OtherDescription); desc != "" {
				otherDescriptions = append(otherDescriptions, desc)
			}
		}
	}

	// Catalog order, zero counts included — presentation filters later.
	perChallenge := make([]model.ChallengeCount, 0, len(model.Catalog))
	for _, c := range model.Catalog {
		perChallenge = append(perChallenge, model.ChallengeCount{
			Challenge: c.DisplayLabel(),
			Count:     counts[c.Slug],
		})
	}

	average := "0"
	if totalUsers > 0 {
		average = fmt.Sprintf("%.1f", float64(totalSelections)/float64(totalUsers))
	}

	return &model.ChallengeSnapshot{
		TotalUsers:        totalUsers,
		PerChallenge:      perChallenge,
		TotalSelections:   totalSelections,
		AveragePerUser:    average,
		OtherDescriptions: otherDescriptions,
	}, nil
}

func (s *StatsService) unavailable(op string, err error) error {
	// StoreNotProvisioned already carries its remediation detail — keep it.
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && errors.Is(err, apperror.ErrStoreNotProvisioned) {
		return apperror.Unavailable(appErr.Detail)
	}
	s.logger.Error("snapshot computation failed",
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
	return apperror.Unavailable(err.Error())
}
