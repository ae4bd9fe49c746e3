package domain

import "strings"

// Stage is the coarse progress phase of a blueprint, shown as a progress chip
// on the dashboard and used to pick the coach prompt set.
type Stage string

const (
	StageIdeation            Stage = "ideation"
	StageLearningJourney     Stage = "learning_journey"
	StageStudentDeliverables Stage = "student_deliverables"
	StageCompleted           Stage = "completed"
)

// StepComplete is the terminal CurrentStep marker set when the coach flow
// finishes and the syllabus is published.
const StepComplete = "COMPLETE"

// MinJourneyPhases is the minimum number of named phases for the journey to
// count as the current stage.
const MinJourneyPhases = 3

// Label returns the human-readable stage name shown in the UI.
func (s Stage) Label() string {
	switch s {
	case StageLearningJourney:
		return "Learning Journey"
	case StageStudentDeliverables:
		return "Student Deliverables"
	case StageCompleted:
		return "Completed"
	default:
		return "Ideation"
	}
}

// DeriveStage computes the current stage of a blueprint from which fields are
// populated, checking from the latest stage back to the earliest. It is pure
// and total: a nil or partially-filled blueprint falls back to Ideation,
// never panics, and nothing is ever cleared or reset here.
//
// Partial progress collapses for display: a blueprint with all three ideation
// fields but fewer than MinJourneyPhases named phases still reads Ideation.
// The stored content is untouched and is shown back to the user when they
// re-enter that stage's coach flow.
func DeriveStage(b *Blueprint) Stage {
	if b == nil {
		return StageIdeation
	}

	if b.CurrentStep == StepComplete {
		return StageCompleted
	}

	if len(b.Deliverables.Milestones) > 0 || len(b.Deliverables.Rubric.Criteria) > 0 {
		return StageStudentDeliverables
	}

	named := 0
	for _, p := range b.Journey.Phases {
		if strings.TrimSpace(p.Name) != "" {
			named++
		}
	}
	if named >= MinJourneyPhases {
		return StageLearningJourney
	}

	return StageIdeation
}
