package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/domain"
)

func TestDocument_WizardDataAlias(t *testing.T) {
	raw := map[string]any{
		"id":     "b1",
		"userId": "u1",
		"wizardData": map[string]any{
			"subjects": []any{"Science"},
			"ageGroup": "Grades 6-8",
		},
	}

	b, err := Document(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Science"}, b.Wizard.Subjects)
	assert.Equal(t, "Grades 6-8", b.Wizard.AgeGroup)
	assert.Equal(t, domain.SchemaVersion, b.SchemaVersion)
}

func TestDocument_StepAliases(t *testing.T) {
	t.Run("fsmState published maps to terminal step", func(t *testing.T) {
		b, err := Document(map[string]any{"id": "b1", "fsmState": "PUBLISHED"})
		require.NoError(t, err)
		assert.Equal(t, domain.StepComplete, b.CurrentStep)
		assert.Equal(t, domain.StageCompleted, domain.DeriveStage(b))
	})

	t.Run("currentState completed maps to terminal step", func(t *testing.T) {
		b, err := Document(map[string]any{"id": "b1", "currentState": "completed"})
		require.NoError(t, err)
		assert.Equal(t, domain.StepComplete, b.CurrentStep)
	})

	t.Run("intermediate stage strings are dropped", func(t *testing.T) {
		b, err := Document(map[string]any{"id": "b1", "fsmState": "JOURNEY_PHASES"})
		require.NoError(t, err)
		assert.Empty(t, b.CurrentStep, "display stage is derived, not stored")
		assert.Equal(t, domain.StageIdeation, domain.DeriveStage(b))
	})
}

func TestDocument_SubjectsShapes(t *testing.T) {
	t.Run("string subjects becomes a list", func(t *testing.T) {
		b, err := Document(map[string]any{
			"id":     "b1",
			"wizard": map[string]any{"subjects": "History"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"History"}, b.Wizard.Subjects)
	})

	t.Run("oldest singular subject field", func(t *testing.T) {
		b, err := Document(map[string]any{
			"id":     "b1",
			"wizard": map[string]any{"subject": "Art"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Art"}, b.Wizard.Subjects)
	})
}

func TestDocument_MalformedStillLoads(t *testing.T) {
	// A legacy document with junk-typed fields must still load: the junk
	// fields drop to zero values, everything that parses is kept, and the
	// result derives to Ideation rather than failing the dashboard.
	b, err := Document(map[string]any{
		"id":      "b1",
		"userId":  "u1",
		"wizard":  "not-a-map",
		"journey": map[string]any{"phases": "not-a-list"},
		"ideation": map[string]any{
			"bigIdea": "still here",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", b.UserID)
	assert.Empty(t, b.Journey.Phases)
	assert.Equal(t, "still here", b.Ideation.BigIdea, "parseable fields survive the junk")
	assert.Equal(t, domain.StageIdeation, domain.DeriveStage(b))
}

func TestNeedsMigration(t *testing.T) {
	assert.True(t, NeedsMigration(map[string]any{"id": "b1"}))
	assert.True(t, NeedsMigration(map[string]any{"schemaVersion": float64(1)}))
	assert.False(t, NeedsMigration(map[string]any{"schemaVersion": float64(domain.SchemaVersion)}))
	assert.True(t, NeedsMigration(map[string]any{"schemaVersion": "2"}), "non-numeric version is legacy")
}

func TestDocument_NilInput(t *testing.T) {
	_, err := Document(nil)
	require.Error(t, err)
}
