// Package model defines the data structures used throughout the application.
package model

// Challenge is one entry in the fixed catalog of learning challenges a user
// can report on the sign-up form. The catalog is a closed set — the form
// renders exactly these labels and the aggregator counts exactly these slugs.
//
// Slug is the stable identifier stored in the database; Label is what the
// form displays. Keeping the two separate means we can reword a label
// without migrating stored rows.
type Challenge struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

// The sentinel entry. Selecting it requires an accompanying free-text
// description, and it is displayed as plain "Other" everywhere outside the
// form itself.
const (
	SlugOther          = "other"
	OtherSentinelLabel = "Other: Please Specify"
	OtherDisplayLabel  = "Other"
)

// Catalog is the full, ordered challenge catalog. Order matters: it is the
// tie-break order for chart sorting and the iteration order for snapshots,
// so keep new entries at the end (before the sentinel).
var Catalog = []Challenge{
	{Slug: "information_overload", Label: "Information Overload"},
	{Slug: "finding_relevant_content", Label: "Difficulty Finding Relevant Content"},
	{Slug: "personalized_learning", Label: "Struggling with Personalized Learning"},
	{Slug: "slow_knowledge_absorption", Label: "Slow Knowledge Absorption"},
	{Slug: "inconsistent_skill_development", Label: "Inconsistent Skill Development"},
	{Slug: "lack_realtime_feedback", Label: "Lack of Real-Time Feedback"},
	{Slug: "gaps_existing_knowledge", Label: "Gaps in Existing Knowledge"},
	{Slug: "limited_time_learning", Label: "Limited Time for Learning"},
	{Slug: "overwhelmed_complex_topics", Label: "Overwhelmed by Complex Topics"},
	{Slug: "fragmented_resources", Label: "Fragmented Learning Resources"},
	{Slug: SlugOther, Label: OtherSentinelLabel},
}

// DisplayLabel returns the label used in snapshots and charts. The sentinel
// collapses to "Other"; every other entry displays its catalog label.
func (c Challenge) DisplayLabel() string {
	if c.Slug == SlugOther {
		return OtherDisplayLabel
	}
	return c.Label
}

// ChallengeByLabel looks up a catalog entry by its form label.
// Unrecognized labels (stale clients, tampered forms) return ok=false and
// are dropped by the caller — never stored, never an error.
func ChallengeByLabel(label string) (Challenge, bool) {
	for _, c := range Catalog {
		if c.Label == label {
			return c, true
		}
	}
	return Challenge{}, false
}

// ChallengeBySlug looks up a catalog entry by its stored slug.
func ChallengeBySlug(slug string) (Challenge, bool) {
	for _, c := range Catalog {
		if c.Slug == slug {
			return c, true
		}
	}
	return Challenge{}, false
}
