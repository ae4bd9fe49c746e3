package coach

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/domain"
	"github.com/kjbranchesi/alf-coach-backend/internal/logging"
)

type fakeGenerator struct {
	reply       string
	err         error
	gotSystem   string
	gotHistory  []Message
	gotMessage  string
	invocations int
}

func (f *fakeGenerator) Generate(_ context.Context, system string, history []Message, userMessage string) (string, error) {
	f.invocations++
	f.gotSystem = system
	f.gotHistory = history
	f.gotMessage = userMessage
	return f.reply, f.err
}

func newTestService(gen *fakeGenerator) *Service {
	return NewService(gen, logging.NewNop())
}

func TestTurn_ParsesDirectives(t *testing.T) {
	gen := &fakeGenerator{reply: "That frames the unit well. What audience would care most?\n" +
		"SUGGESTION: The town council\n" +
		"SUGGESTION: Younger students\n" +
		"CAPTURE bigIdea: Cities heat unevenly"}
	svc := newTestService(gen)

	resp := svc.Turn(context.Background(), TurnRequest{
		Blueprint: &domain.Blueprint{},
		Message:   "What do you think of urban heat as a topic?",
	})

	assert.Equal(t, "That frames the unit well. What audience would care most?", resp.Reply)
	assert.Equal(t, []string{"The town council", "Younger students"}, resp.Suggestions)
	require.NotNil(t, resp.Capture)
	assert.Equal(t, "bigIdea", resp.Capture.Field)
	assert.Equal(t, "Cities heat unevenly", resp.Capture.Value)
	assert.False(t, resp.Fallback)
	assert.Equal(t, domain.StageIdeation, resp.Stage)
	assert.NotEmpty(t, resp.QuickActions)
}

func TestTurn_ReplyTypeDetection(t *testing.T) {
	t.Run("affirmation reads as validation", func(t *testing.T) {
		gen := &fakeGenerator{reply: "Great choice — that question has real teeth."}
		resp := newTestService(gen).Turn(context.Background(), TurnRequest{Message: "hi"})
		assert.Equal(t, "validation", resp.ReplyType)
	})

	t.Run("plain reply is an answer", func(t *testing.T) {
		gen := &fakeGenerator{reply: "Let's narrow that down a little."}
		resp := newTestService(gen).Turn(context.Background(), TurnRequest{Message: "hi"})
		assert.Equal(t, "answer", resp.ReplyType)
	})
}

func TestTurn_FallbackOnModelFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	svc := newTestService(gen)

	b := &domain.Blueprint{
		Journey: domain.Journey{Phases: []domain.Phase{
			{Name: "a"}, {Name: "b"}, {Name: "c"},
		}},
	}
	resp := svc.Turn(context.Background(), TurnRequest{Blueprint: b, Message: "help"})

	assert.True(t, resp.Fallback)
	assert.Equal(t, FallbackMessage(domain.StageLearningJourney), resp.Reply)
	assert.Equal(t, domain.StageLearningJourney, resp.Stage)
	assert.NotEmpty(t, resp.QuickActions, "input re-enables with the usual actions")
}

func TestTurn_TruncatesHistory(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	svc := newTestService(gen)

	history := make([]Message, 0, 25)
	for i := 0; i < 25; i++ {
		history = append(history, Message{Role: RoleUser, Content: fmt.Sprintf("m%d", i)})
	}

	svc.Turn(context.Background(), TurnRequest{History: history, Message: "latest"})

	require.Len(t, gen.gotHistory, maxHistory)
	assert.Equal(t, "m15", gen.gotHistory[0].Content, "only the trailing messages are replayed")
	assert.Equal(t, "latest", gen.gotMessage)
}

func TestTurn_SystemPromptCarriesProjectContext(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	svc := newTestService(gen)

	b := &domain.Blueprint{
		Wizard:   domain.Wizard{Subjects: []string{"Science", "Civics"}, AgeGroup: "Grades 6-8"},
		Ideation: domain.Ideation{BigIdea: "Cities heat unevenly"},
	}
	svc.Turn(context.Background(), TurnRequest{Blueprint: b, Message: "next?"})

	assert.Contains(t, gen.gotSystem, "Science, Civics")
	assert.Contains(t, gen.gotSystem, "Grades 6-8")
	assert.Contains(t, gen.gotSystem, "Cities heat unevenly")
	assert.Contains(t, gen.gotSystem, "Current stage: Ideation")
}

func TestQuickActionsCoverEveryStage(t *testing.T) {
	for _, stage := range []domain.Stage{
		domain.StageIdeation,
		domain.StageLearningJourney,
		domain.StageStudentDeliverables,
		domain.StageCompleted,
	} {
		assert.NotEmpty(t, QuickActions(stage), string(stage))
		assert.NotEmpty(t, FallbackMessage(stage), string(stage))
	}
}
