package coach

import (
	"fmt"
	"strings"

	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/domain"
)

const systemPreamble = `You are the ALF coach, a warm, practical guide who helps
K-12 educators design project-based learning units. Keep replies short and
conversational: two or three sentences, then a concrete next step. Never
lecture. When the educator lands on wording worth keeping, capture it.

Output conventions, strictly one per line at the end of your reply:
- Up to three follow-up ideas the educator could click, each on its own line
  prefixed "SUGGESTION: ".
- When the educator has settled on a value for the field you are coaching,
  one line "CAPTURE <field>: <value>".`

var stageInstructions = map[domain.Stage]string{
	domain.StageIdeation: `Current stage: Ideation. You are helping the educator
settle three things, in order: a big idea (bigIdea), an essential question
(essentialQuestion), and a challenge statement (challenge). Work on the first
one still missing. Anchor every prompt in their subjects and age group.`,

	domain.StageLearningJourney: `Current stage: Learning Journey. You are
helping the educator lay out at least three named phases, each with a few
student activities, plus a resource list. Capture phases one at a time as
"CAPTURE phase: <name> | <activity>; <activity>". Capture resources as
"CAPTURE resource: <text>".`,

	domain.StageStudentDeliverables: `Current stage: Student Deliverables. You
are helping the educator define milestones, a rubric, and an authentic
audience. Capture as "CAPTURE milestone: <name> | <description>",
"CAPTURE criterion: <name> | <description>", "CAPTURE audience: <text>" or
"CAPTURE method: <text>".`,

	domain.StageCompleted: `The unit design is complete. Help the educator
refine wording or answer questions about running the unit. Do not capture
new fields unless they explicitly rework one.`,
}

// quickActions are the predefined buttons offered alongside the input for
// each stage. Clicking one sends its label as the user utterance.
var quickActions = map[domain.Stage][]string{
	domain.StageIdeation:            {"Give me ideas", "What makes a good essential question?", "Help me narrow this down"},
	domain.StageLearningJourney:     {"Suggest a phase structure", "What activities fit here?", "Recommend resources"},
	domain.StageStudentDeliverables: {"Draft milestones", "Build a rubric", "Who could the audience be?"},
	domain.StageCompleted:           {"Polish the syllabus", "How do I introduce this to students?"},
}

// fallbackMessages are substituted verbatim when the model call fails. The
// product treats AI failures as conversational hiccups, not faults, so these
// read as apologies, not errors.
var fallbackMessages = map[domain.Stage]string{
	domain.StageIdeation:            "I lost my train of thought there — sorry! While I regroup: what big idea keeps coming up when you picture this unit?",
	domain.StageLearningJourney:     "Apologies, I stumbled for a moment. Let's keep going: how would you describe the first phase of this journey in your own words?",
	domain.StageStudentDeliverables: "Sorry, I dropped the thread for a second. Picking back up: what would you most want students to walk away having made?",
	domain.StageCompleted:           "Sorry, I hiccuped there. Your blueprint is complete though — is there a section you'd like to polish?",
}

// affirmations drive the light reply-type detection: a reply opening with one
// of these reads as validation of the educator's input rather than a new
// question.
var affirmations = []string{"great", "excellent", "perfect", "wonderful", "love that", "exactly"}

func buildSystemPrompt(stage domain.Stage, b *domain.Blueprint) string {
	var sb strings.Builder
	sb.WriteString(systemPreamble)
	sb.WriteString("\n\n")

	inst, ok := stageInstructions[stage]
	if !ok {
		inst = stageInstructions[domain.StageIdeation]
	}
	sb.WriteString(inst)
	sb.WriteString("\n\n")
	sb.WriteString(projectContext(b))
	return sb.String()
}

// projectContext summarizes the captured blueprint fields so far. Only
// non-empty fields appear; the model should never see placeholder noise.
func projectContext(b *domain.Blueprint) string {
	if b == nil {
		return "Project context: none captured yet."
	}

	var sb strings.Builder
	sb.WriteString("Project context so far:\n")
	if len(b.Wizard.Subjects) > 0 {
		fmt.Fprintf(&sb, "- Subjects: %s\n", strings.Join(b.Wizard.Subjects, ", "))
	}
	if b.Wizard.AgeGroup != "" {
		fmt.Fprintf(&sb, "- Age group: %s\n", b.Wizard.AgeGroup)
	}
	if b.Wizard.Scope != "" {
		fmt.Fprintf(&sb, "- Scope: %s\n", b.Wizard.Scope)
	}
	if b.Wizard.Idea != "" {
		fmt.Fprintf(&sb, "- Educator's framing: %s\n", b.Wizard.Idea)
	}
	if b.Ideation.BigIdea != "" {
		fmt.Fprintf(&sb, "- Big idea: %s\n", b.Ideation.BigIdea)
	}
	if b.Ideation.EssentialQuestion != "" {
		fmt.Fprintf(&sb, "- Essential question: %s\n", b.Ideation.EssentialQuestion)
	}
	if b.Ideation.Challenge != "" {
		fmt.Fprintf(&sb, "- Challenge: %s\n", b.Ideation.Challenge)
	}
	for _, p := range b.Journey.Phases {
		fmt.Fprintf(&sb, "- Phase: %s (%d activities)\n", p.Name, len(p.Activities))
	}
	for _, m := range b.Deliverables.Milestones {
		fmt.Fprintf(&sb, "- Milestone: %s\n", m.Name)
	}
	if n := len(b.Deliverables.Rubric.Criteria); n > 0 {
		fmt.Fprintf(&sb, "- Rubric criteria: %d\n", n)
	}
	return sb.String()
}

// QuickActions returns the predefined action labels for a stage.
func QuickActions(stage domain.Stage) []string {
	if qa, ok := quickActions[stage]; ok {
		return qa
	}
	return quickActions[domain.StageIdeation]
}

// FallbackMessage returns the stage-appropriate apology used when the model
// call fails.
func FallbackMessage(stage domain.Stage) string {
	if msg, ok := fallbackMessages[stage]; ok {
		return msg
	}
	return fallbackMessages[domain.StageIdeation]
}
