package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/learning-waitlist/internal/model"
)

// SnapshotProvider is the read-only slice of StatsService the analytics
// endpoints need.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*model.ChallengeSnapshot, error)
}

// StatsHandler serves the read-only analytics endpoints. Both endpoints are
// views over the same snapshot; neither mutates anything, so they are safe
// to hit arbitrarily often.
type StatsHandler struct {
	stats  SnapshotProvider
	logger *slog.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(stats SnapshotProvider, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, logger: logger}
}

type challengeStatsResponse struct {
	TotalUsers               int                    `json:"totalUsers"`
	TotalChallengeSelections int                    `json:"totalChallengeSelections"`
	AvgChallengesPerUser     string                 `json:"avgChallengesPerUser"`
	ChallengeStats           []model.ChallengeCount `json:"challengeStats"`
	OtherDescriptions        []string               `json:"otherDescriptions,omitempty"`
}

// HandleChallengeStats returns the admin dashboard numbers.
//
// HTTP: GET /api/challenge-stats
//
// challengeStats carries only challenges somebody actually selected, sorted
// by count descending. totalUsers == 0 with an empty list is a valid empty
// state, not an error.
func (h *StatsHandler) HandleChallengeStats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.stats.Snapshot(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, challengeStatsResponse{
		TotalUsers:               snapshot.TotalUsers,
		TotalChallengeSelections: snapshot.TotalSelections,
		AvgChallengesPerUser:     snapshot.AveragePerUser,
		ChallengeStats:           snapshot.VisibleCounts(),
		OtherDescriptions:        snapshot.OtherDescriptions,
	})
}

type challengesAnalyticsResponse struct {
	Data                     []model.ChartEntry `json:"data"`
	TotalSignups             int                `json:"totalSignups"`
	TotalChallengeSelections int                `json:"totalChallengeSelections"`
}

// HandleChallengesAnalytics returns the chart-shaped payload for the public
// analytics page: truncated labels, percentages, zero counts dropped.
//
// HTTP: GET /api/challenges-analytics
func (h *StatsHandler) HandleChallengesAnalytics(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.stats.Snapshot(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, challengesAnalyticsResponse{
		Data:                     snapshot.ChartData(),
		TotalSignups:             snapshot.TotalUsers,
		TotalChallengeSelections: snapshot.TotalSelections,
	})
}
