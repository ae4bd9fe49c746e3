// Package showcase holds the hand-authored hero projects: fully pre-written
// exemplar units shown in the public gallery. They share the conceptual
// shape of a blueprint but are never mutated at runtime; the only contract
// is structural, enforced by the validator before the gallery trusts them.
package showcase

// Level is the canonical risk likelihood/impact scale.
type Level string

const (
	LevelLow  Level = "low"
	LevelMed  Level = "med"
	LevelHigh Level = "high"
)

// TechAccess is the canonical technology-access descriptor.
type TechAccess string

const (
	TechFull    TechAccess = "full"
	TechLimited TechAccess = "limited"
	TechNone    TechAccess = "none"
)

type HeroProject struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Tagline    string   `json:"tagline,omitempty"`
	Duration   string   `json:"duration"`
	GradeLevel string   `json:"gradeLevel"`
	Subjects   []string `json:"subjects"`

	BigIdea           string `json:"bigIdea,omitempty"`
	EssentialQuestion string `json:"essentialQuestion,omitempty"`
	Challenge         string `json:"challenge,omitempty"`

	Phases     []HeroPhase     `json:"phases,omitempty"`
	Milestones []string        `json:"milestones,omitempty"`
	Rubric     []HeroCriterion `json:"rubric,omitempty"`
	Standards  []Standard      `json:"standards,omitempty"`

	Risks         []Risk        `json:"risks,omitempty"`
	Contingencies []Contingency `json:"contingencies,omitempty"`
	Constraints   *Constraints  `json:"constraints,omitempty"`
}

type HeroPhase struct {
	Name       string   `json:"name"`
	Duration   string   `json:"duration"`
	Summary    string   `json:"summary,omitempty"`
	Activities []string `json:"activities,omitempty"`
}

type HeroCriterion struct {
	Criterion   string `json:"criterion"`
	Description string `json:"description,omitempty"`
}

type Standard struct {
	Code      string `json:"code"`
	Text      string `json:"text"`
	Framework string `json:"framework,omitempty"`
}

type Risk struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Likelihood Level  `json:"likelihood"`
	Impact     Level  `json:"impact"`
	Mitigation string `json:"mitigation"`
}

type Contingency struct {
	ID       string `json:"id"`
	Scenario string `json:"scenario"`
	Plan     string `json:"plan"`
}

type Constraints struct {
	Budget     string     `json:"budget,omitempty"`
	TechAccess TechAccess `json:"techAccess"`
	Materials  []string   `json:"materials,omitempty"`
	Safety     []string   `json:"safety,omitempty"`
}
