package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedPhases(names ...string) []Phase {
	out := make([]Phase, 0, len(names))
	for _, n := range names {
		out = append(out, Phase{Name: n})
	}
	return out
}

func TestDeriveStage_TotalOnMalformedInput(t *testing.T) {
	t.Run("nil blueprint", func(t *testing.T) {
		assert.Equal(t, StageIdeation, DeriveStage(nil))
	})

	t.Run("zero-value blueprint", func(t *testing.T) {
		assert.Equal(t, StageIdeation, DeriveStage(&Blueprint{}))
	})

	t.Run("nil slices everywhere", func(t *testing.T) {
		b := &Blueprint{
			Journey:      Journey{Phases: nil, Resources: nil},
			Deliverables: Deliverables{Milestones: nil},
		}
		assert.Equal(t, StageIdeation, DeriveStage(b))
	})
}

func TestDeriveStage_DeliverablesImpliesContent(t *testing.T) {
	t.Run("milestones promote the stage", func(t *testing.T) {
		b := &Blueprint{
			Deliverables: Deliverables{Milestones: []Milestone{{Name: "Draft"}}},
		}
		assert.Equal(t, StageStudentDeliverables, DeriveStage(b))
	})

	t.Run("rubric criteria promote the stage", func(t *testing.T) {
		b := &Blueprint{
			Deliverables: Deliverables{Rubric: Rubric{Criteria: []Criterion{{Criterion: "Evidence"}}}},
		}
		assert.Equal(t, StageStudentDeliverables, DeriveStage(b))
	})

	t.Run("deliverables win over journey", func(t *testing.T) {
		b := &Blueprint{
			Journey:      Journey{Phases: namedPhases("a", "b", "c")},
			Deliverables: Deliverables{Milestones: []Milestone{{Name: "Draft"}}},
		}
		assert.Equal(t, StageStudentDeliverables, DeriveStage(b))
	})
}

func TestDeriveStage_JourneyThreshold(t *testing.T) {
	t.Run("two named phases stay on ideation", func(t *testing.T) {
		b := &Blueprint{Journey: Journey{Phases: namedPhases("Investigate", "Design")}}
		assert.Equal(t, StageIdeation, DeriveStage(b))
	})

	t.Run("unnamed phases do not count", func(t *testing.T) {
		b := &Blueprint{Journey: Journey{Phases: namedPhases("Investigate", "Design", "  ")}}
		assert.Equal(t, StageIdeation, DeriveStage(b))
	})

	t.Run("three named phases reach the journey", func(t *testing.T) {
		b := &Blueprint{Journey: Journey{Phases: namedPhases("Investigate", "Design", "Pitch")}}
		assert.Equal(t, StageLearningJourney, DeriveStage(b))
	})
}

func TestDeriveStage_PartialIdeationCollapses(t *testing.T) {
	// Completed ideation with no journey still displays as Ideation; the
	// content itself is preserved untouched.
	b := &Blueprint{
		Ideation: Ideation{
			BigIdea:           "Cities heat unevenly",
			EssentialQuestion: "How might we cool our schoolyard?",
			Challenge:         "Pitch a redesign",
		},
	}
	assert.Equal(t, StageIdeation, DeriveStage(b))
	assert.True(t, b.IdeationComplete())
	assert.Equal(t, "Cities heat unevenly", b.Ideation.BigIdea)
}

func TestDeriveStage_EndToEndProgression(t *testing.T) {
	b := &Blueprint{
		UserID: "u1",
		Wizard: Wizard{Subjects: []string{"Science"}, AgeGroup: "Grades 6-8"},
	}
	require.Equal(t, StageIdeation, DeriveStage(b))

	b.Ideation = Ideation{BigIdea: "x", EssentialQuestion: "y", Challenge: "z"}
	require.Equal(t, StageIdeation, DeriveStage(b), "ideation complete but not advanced collapses to Ideation")

	b.Journey.Phases = namedPhases("Investigate", "Design", "Pitch")
	require.Equal(t, StageLearningJourney, DeriveStage(b))

	b.Deliverables.Milestones = []Milestone{{Name: "Heat map"}}
	require.Equal(t, StageStudentDeliverables, DeriveStage(b))

	b.CurrentStep = StepComplete
	require.Equal(t, StageCompleted, DeriveStage(b))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, (&Blueprint{}).IsEmpty())
	assert.True(t, (&Blueprint{Wizard: Wizard{Subjects: []string{"Math"}}}).IsEmpty(),
		"wizard intake alone is not stage-bearing content")
	assert.False(t, (&Blueprint{Ideation: Ideation{BigIdea: "x"}}).IsEmpty())
	assert.False(t, (&Blueprint{Journey: Journey{Resources: []string{"r"}}}).IsEmpty())
}

func TestIsPlaceholderID(t *testing.T) {
	assert.True(t, IsPlaceholderID("new-1234567890"))
	assert.False(t, IsPlaceholderID("new-"))
	assert.False(t, IsPlaceholderID("renewed-123"))
	assert.False(t, IsPlaceholderID("b7a9c2"))
}

func TestStageLabel(t *testing.T) {
	assert.Equal(t, "Ideation", StageIdeation.Label())
	assert.Equal(t, "Learning Journey", StageLearningJourney.Label())
	assert.Equal(t, "Student Deliverables", StageStudentDeliverables.Label())
	assert.Equal(t, "Completed", StageCompleted.Label())
}
