package model

import (
	"reflect"
	"testing"
)

func testSnapshot(counts map[string]int, totalUsers int) *ChallengeSnapshot {
	per := make([]ChallengeCount, 0, len(Catalog))
	total := 0
	for _, c := range Catalog {
		n := counts[c.Slug]
		per = append(per, ChallengeCount{Challenge: c.DisplayLabel(), Count: n})
		total += n
	}
	return &ChallengeSnapshot{
		TotalUsers:      totalUsers,
		PerChallenge:    per,
		TotalSelections: total,
	}
}

func TestVisibleCounts_FiltersZerosAndSortsDescending(t *testing.T) {
	s := testSnapshot(map[string]int{
		"information_overload":  1,
		"limited_time_learning": 5,
		"fragmented_resources":  3,
	}, 6)

	got := s.VisibleCounts()
	want := []ChallengeCount{
		{Challenge: "Limited Time for Learning", Count: 5},
		{Challenge: "Fragmented Learning Resources", Count: 3},
		{Challenge: "Information Overload", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("VisibleCounts() = %v, want %v", got, want)
	}
}

func TestVisibleCounts_TiesBreakByCatalogOrder(t *testing.T) {
	// Two equal counts: the one earlier in the catalog must come first, every
	// time — the sort is stable over catalog-ordered input.
	s := testSnapshot(map[string]int{
		"slow_knowledge_absorption": 2,
		"information_overload":      2,
	}, 4)

	got := s.VisibleCounts()
	if got[0].Challenge != "Information Overload" || got[1].Challenge != "Slow Knowledge Absorption" {
		t.Errorf("tie-break order wrong: %v", got)
	}
}

func TestChartData_PercentagesOfTotalUsers(t *testing.T) {
	s := testSnapshot(map[string]int{"information_overload": 3}, 4)

	got := s.ChartData()
	if len(got) != 1 {
		t.Fatalf("ChartData() = %v, want one entry", got)
	}
	if got[0].Percentage != "75.0" {
		t.Errorf("Percentage = %q, want \"75.0\"", got[0].Percentage)
	}
	if got[0].Count != 3 {
		t.Errorf("Count = %d, want 3", got[0].Count)
	}
}

func TestChartData_TruncatesLongLabels(t *testing.T) {
	s := testSnapshot(map[string]int{"finding_relevant_content": 1}, 1)

	got := s.ChartData()
	if got[0].Challenge != "Difficulty Find..." {
		t.Errorf("Challenge = %q, want truncated label", got[0].Challenge)
	}
	if got[0].FullChallenge != "Difficulty Finding Relevant Content" {
		t.Errorf("FullChallenge = %q, want full label", got[0].FullChallenge)
	}
}

func TestChartData_ShortLabelsUntouched(t *testing.T) {
	s := testSnapshot(map[string]int{"other": 1}, 1)

	got := s.ChartData()
	if got[0].Challenge != "Other" {
		t.Errorf("Challenge = %q, want \"Other\"", got[0].Challenge)
	}
}

func TestChartData_ZeroUsers(t *testing.T) {
	s := testSnapshot(nil, 0)

	if got := s.ChartData(); len(got) != 0 {
		t.Errorf("ChartData() on empty snapshot = %v, want empty", got)
	}
}

func TestCatalogShape(t *testing.T) {
	if len(Catalog) != 11 {
		t.Fatalf("catalog has %d entries, want 11", len(Catalog))
	}
	if Catalog[len(Catalog)-1].Slug != SlugOther {
		t.Error("sentinel must be the last catalog entry")
	}
	if c, _ := ChallengeBySlug(SlugOther); c.DisplayLabel() != "Other" {
		t.Errorf("sentinel display label = %q, want \"Other\"", c.DisplayLabel())
	}
	if _, ok := ChallengeByLabel("Information Overload"); !ok {
		t.Error("ChallengeByLabel failed for a catalog label")
	}
	if _, ok := ChallengeByLabel("Not A Real Challenge"); ok {
		t.Error("ChallengeByLabel matched an unknown label")
	}
}
