package model

import (
	"fmt"
	"sort"
)

// maxChartLabelLen is the longest challenge label a chart axis renders before
// the label gets truncated with an ellipsis.
const maxChartLabelLen = 15

// ChallengeCount pairs a display label with the number of signups reporting
// that challenge.
type ChallengeCount struct {
	Challenge string `json:"challenge"`
	Count     int    `json:"count"`
}

// ChallengeSnapshot is a derived, point-in-time aggregate over all signups.
// It is computed on demand and never persisted — a pure function of store
// state. PerChallenge is kept in catalog order and includes zero counts;
// user-facing payloads go through VisibleCounts/ChartData, which filter and
// sort for presentation.
type ChallengeSnapshot struct {
	TotalUsers        int              `json:"totalUsers"`
	PerChallenge      []ChallengeCount `json:"perChallenge"`
	TotalSelections   int              `json:"totalChallengeSelections"`
	AveragePerUser    string           `json:"avgChallengesPerUser"`
	OtherDescriptions []string         `json:"otherDescriptions,omitempty"`
}

// ChartEntry is one bar/slice in a dashboard chart. Challenge is truncated
// for axis labels; FullChallenge keeps the complete text for tooltips.
// Percentage is count/totalUsers as a one-decimal string (e.g. "75.0").
type ChartEntry struct {
	Challenge     string `json:"challenge"`
	FullChallenge string `json:"fullChallenge"`
	Count         int    `json:"count"`
	Percentage    string `json:"percentage"`
}

// VisibleCounts returns the per-challenge counts shaped for tables:
// zero counts dropped, sorted by count descending. The stable sort over the
// catalog-ordered input makes catalog order the tie-break, so two challenges
// with equal counts always render in the same order.
func (s *ChallengeSnapshot) VisibleCounts() []ChallengeCount {
	counts := make([]ChallengeCount, 0, len(s.PerChallenge))
	for _, c := range s.PerChallenge {
		if c.Count > 0 {
			counts = append(counts, c)
		}
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// ChartData shapes the snapshot for bar/pie charts. Like VisibleCounts it
// drops zero counts and sorts descending, and additionally truncates long
// labels and attaches percentages of TotalUsers.
//
// This is deliberately a pure transformation of an already-computed snapshot
// so chart shaping and challenge counting can be tested independently.
func (s *ChallengeSnapshot) ChartData() []ChartEntry {
	entries := make([]ChartEntry, 0, len(s.PerChallenge))
	for _, c := range s.VisibleCounts() {
		entries = append(entries, ChartEntry{
			Challenge:     truncateLabel(c.Challenge),
			FullChallenge: c.Challenge,
			Count:         c.Count,
			Percentage:    percentage(c.Count, s.TotalUsers),
		})
	}
	return entries
}

func truncateLabel(label string) string {
	if len(label) > maxChartLabelLen {
		return label[:maxChartLabelLen] + "..."
	}
	return label
}

func percentage(count, total int) string {
	if total == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", float64(count)/float64(total)*100)
}
