package domain

import (
	"regexp"
	"strings"
	"time"
)

// SchemaVersion is the current blueprint document schema version. Documents
// persisted with an older version are passed through the migrator at load.
const SchemaVersion = 2

// Blueprint is the single persisted unit of work: one educator's in-progress
// learning-unit design. It is intentionally storage-agnostic and shared
// across the repository, service and HTTP layers.
type Blueprint struct {
	ID            string `json:"id" firestore:"id"`
	UserID        string `json:"userId" firestore:"userId"`
	SchemaVersion int    `json:"schemaVersion" firestore:"schemaVersion"`

	Wizard       Wizard       `json:"wizard" firestore:"wizard"`
	Ideation     Ideation     `json:"ideation" firestore:"ideation"`
	Journey      Journey      `json:"journey" firestore:"journey"`
	Deliverables Deliverables `json:"deliverables" firestore:"deliverables"`

	// CurrentStep is a terminal marker only: StepComplete once the coach flow
	// has finished. Progress display is otherwise derived, never stored.
	CurrentStep string `json:"currentStep,omitempty" firestore:"currentStep,omitempty"`

	CreatedAt time.Time  `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" firestore:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty" firestore:"deletedAt,omitempty"`
}

// Wizard holds the one-time intake fields captured before the coach flow
// starts. They are immutable afterwards except through the coach itself.
type Wizard struct {
	Subjects  []string `json:"subjects" firestore:"subjects"`
	AgeGroup  string   `json:"ageGroup" firestore:"ageGroup"`
	Scope     string   `json:"scope" firestore:"scope"`
	Materials string   `json:"materials,omitempty" firestore:"materials,omitempty"`
	Idea      string   `json:"idea,omitempty" firestore:"idea,omitempty"`
}

type Ideation struct {
	BigIdea           string `json:"bigIdea,omitempty" firestore:"bigIdea,omitempty"`
	EssentialQuestion string `json:"essentialQuestion,omitempty" firestore:"essentialQuestion,omitempty"`
	Challenge         string `json:"challenge,omitempty" firestore:"challenge,omitempty"`
}

type Journey struct {
	Phases    []Phase  `json:"phases,omitempty" firestore:"phases,omitempty"`
	Resources []string `json:"resources,omitempty" firestore:"resources,omitempty"`
}

type Phase struct {
	Name       string   `json:"name" firestore:"name"`
	Activities []string `json:"activities,omitempty" firestore:"activities,omitempty"`
}

type Deliverables struct {
	Milestones []Milestone `json:"milestones,omitempty" firestore:"milestones,omitempty"`
	Rubric     Rubric      `json:"rubric" firestore:"rubric"`
	Impact     Impact      `json:"impact" firestore:"impact"`
}

type Milestone struct {
	Name        string `json:"name" firestore:"name"`
	Description string `json:"description,omitempty" firestore:"description,omitempty"`
}

type Rubric struct {
	Criteria []Criterion `json:"criteria,omitempty" firestore:"criteria,omitempty"`
}

type Criterion struct {
	Criterion   string `json:"criterion" firestore:"criterion"`
	Description string `json:"description,omitempty" firestore:"description,omitempty"`
}

type Impact struct {
	Audience string `json:"audience,omitempty" firestore:"audience,omitempty"`
	Method   string `json:"method,omitempty" firestore:"method,omitempty"`
}

var placeholderID = regexp.MustCompile(`^new-\d+$`)

// IsPlaceholderID reports whether id is a client-generated placeholder of the
// form "new-<timestamp>", used by the SPA before the first write completes.
// A placeholder is never a valid storage key.
func IsPlaceholderID(id string) bool {
	return placeholderID.MatchString(id)
}

// IsEmpty reports whether the blueprint has no content in any stage-bearing
// field. Empty blueprints are swept by the cleanup pass.
func (b *Blueprint) IsEmpty() bool {
	if b == nil {
		return true
	}
	if strings.TrimSpace(b.Ideation.BigIdea) != "" ||
		strings.TrimSpace(b.Ideation.EssentialQuestion) != "" ||
		strings.TrimSpace(b.Ideation.Challenge) != "" {
		return false
	}
	if len(b.Journey.Phases) > 0 || len(b.Journey.Resources) > 0 {
		return false
	}
	if len(b.Deliverables.Milestones) > 0 || len(b.Deliverables.Rubric.Criteria) > 0 {
		return false
	}
	return true
}

// IsDeleted reports whether the blueprint carries a tombstone.
func (b *Blueprint) IsDeleted() bool {
	return b != nil && b.DeletedAt != nil
}

// IdeationComplete reports whether all three ideation fields are filled.
// Completing ideation does not advance the displayed stage on its own; the
// chip stays on Ideation until the journey has enough named phases.
func (b *Blueprint) IdeationComplete() bool {
	if b == nil {
		return false
	}
	return strings.TrimSpace(b.Ideation.BigIdea) != "" &&
		strings.TrimSpace(b.Ideation.EssentialQuestion) != "" &&
		strings.TrimSpace(b.Ideation.Challenge) != ""
}
