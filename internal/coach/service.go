package coach

import (
	"context"
	"strings"

	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/domain"
	"github.com/kjbranchesi/alf-coach-backend/internal/logging"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	// maxHistory is how many trailing messages are replayed per turn. Each
	// call reconstructs the whole prompt; there is no server-side session.
	maxHistory = 10
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type TurnRequest struct {
	Blueprint *domain.Blueprint
	History   []Message
	// Message is the educator's utterance, or a quick-action label standing
	// in for one.
	Message string
}

// FieldCapture tells the caller which blueprint field the reply settled and
// the value to write into it.
type FieldCapture struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type TurnResponse struct {
	Reply        string        `json:"reply"`
	ReplyType    string        `json:"replyType"`
	Stage        domain.Stage  `json:"stage"`
	Suggestions  []string      `json:"suggestions,omitempty"`
	QuickActions []string      `json:"quickActions,omitempty"`
	Capture      *FieldCapture `json:"capture,omitempty"`
	// Fallback marks a reply substituted after a model failure. The client
	// renders it as a normal chat message.
	Fallback bool `json:"fallback,omitempty"`
}

// Generator is the model dependency of the turn loop; satisfied by
// GeminiClient and by test fakes.
type Generator interface {
	Generate(ctx context.Context, system string, history []Message, userMessage string) (string, error)
}

// Service runs one request/response cycle with the coach per call. At most
// one turn is in flight per chat session; the client disables its input
// while waiting, so no coordination happens here.
type Service struct {
	gen Generator
	log *logging.Logger
}

func NewService(gen Generator, log *logging.Logger) *Service {
	return &Service{gen: gen, log: log}
}

// Turn produces the assistant reply for the current stage. Model failures
// never propagate: the response degrades to a fixed, stage-appropriate
// fallback message and the caller re-enables input as usual.
func (s *Service) Turn(ctx context.Context, req TurnRequest) *TurnResponse {
	stage := domain.DeriveStage(req.Blueprint)
	system := buildSystemPrompt(stage, req.Blueprint)
	history := truncateHistory(req.History)

	raw, err := s.gen.Generate(ctx, system, history, req.Message)
	if err != nil {
		s.log.Warn("coach turn failed, using fallback", "stage", string(stage), "error", err)
		return &TurnResponse{
			Reply:        FallbackMessage(stage),
			ReplyType:    "answer",
			Stage:        stage,
			QuickActions: QuickActions(stage),
			Fallback:     true,
		}
	}

	resp := parseReply(raw)
	resp.Stage = stage
	resp.QuickActions = QuickActions(stage)
	return resp
}

func truncateHistory(history []Message) []Message {
	if len(history) <= maxHistory {
		return history
	}
	return history[len(history)-maxHistory:]
}

// parseReply splits the model output into the visible reply and the trailing
// directive lines (SUGGESTION / CAPTURE).
func parseReply(raw string) *TurnResponse {
	resp := &TurnResponse{}
	var replyLines []string

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "SUGGESTION:"):
			if s := strings.TrimSpace(strings.TrimPrefix(trimmed, "SUGGESTION:")); s != "" {
				resp.Suggestions = append(resp.Suggestions, s)
			}
		case strings.HasPrefix(trimmed, "CAPTURE "):
			if fc := parseCapture(trimmed); fc != nil {
				resp.Capture = fc
			}
		default:
			replyLines = append(replyLines, line)
		}
	}

	resp.Reply = strings.TrimSpace(strings.Join(replyLines, "\n"))
	resp.ReplyType = classifyReply(resp.Reply)
	return resp
}

func parseCapture(line string) *FieldCapture {
	rest := strings.TrimPrefix(line, "CAPTURE ")
	field, value, ok := strings.Cut(rest, ":")
	if !ok {
		return nil
	}
	field = strings.TrimSpace(field)
	value = strings.TrimSpace(value)
	if field == "" || value == "" {
		return nil
	}
	return &FieldCapture{Field: field, Value: value}
}

// classifyReply is the light pattern matching the UI uses to style the
// bubble: a reply opening with an affirmation reads as validation of the
// educator's input rather than a fresh question.
func classifyReply(reply string) string {
	lower := strings.ToLower(reply)
	for _, word := range affirmations {
		if strings.HasPrefix(lower, word) {
			return "validation"
		}
	}
	return "answer"
}
