package showcase

import (
	"fmt"
	"strings"
)

// Result is the outcome of a structural validation pass. The same function
// runs in every build; the caller decides whether errors are fatal (tests
// and startup checks) or merely logged (the serving path).
type Result struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// ValidateHeroProject checks the structural contract every exemplar must
// satisfy before the gallery trusts it. One error per missing required
// field; warnings for gaps that degrade the showcase but don't break it.
func ValidateHeroProject(h *HeroProject) Result {
	var res Result

	if h == nil {
		res.Errors = append(res.Errors, "hero project is nil")
		return res
	}

	if strings.TrimSpace(h.ID) == "" {
		res.Errors = append(res.Errors, "missing required field: id")
	}
	if strings.TrimSpace(h.Title) == "" {
		res.Errors = append(res.Errors, "missing required field: title")
	}
	if strings.TrimSpace(h.Duration) == "" {
		res.Errors = append(res.Errors, "missing required field: duration")
	}
	if strings.TrimSpace(h.GradeLevel) == "" {
		res.Errors = append(res.Errors, "missing required field: gradeLevel")
	}
	if len(h.Subjects) == 0 {
		res.Errors = append(res.Errors, "missing required field: subjects (must be a non-empty list)")
	}

	for i, p := range h.Phases {
		if strings.TrimSpace(p.Name) == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("phase %d: missing name", i))
		}
		if strings.TrimSpace(p.Duration) == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("phase %d: missing duration", i))
		}
	}

	for i, s := range h.Standards {
		if strings.TrimSpace(s.Code) == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("standard %d: missing code", i))
		}
		if strings.TrimSpace(s.Text) == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("standard %d: missing text", i))
		}
	}

	if len(h.Phases) > 0 && len(h.Phases) < 3 {
		res.Warnings = append(res.Warnings, "fewer than 3 journey phases; the showcase timeline will look sparse")
	}
	if len(h.Standards) == 0 {
		res.Warnings = append(res.Warnings, "no standards alignment; the standards panel will be hidden")
	}

	res.Valid = len(res.Errors) == 0
	return res
}

// BuildRisk normalizes a loosely-shaped risk entry. Two historical authoring
// shapes exist: {name, likelihood, impact, mitigation} and the older
// {risk, likelihood, impact, mitigation}. Likelihood and impact accept
// "medium" and canonicalize it to "med".
func BuildRisk(data map[string]any) (Risk, error) {
	id := stringField(data, "id")
	if id == "" {
		return Risk{}, fmt.Errorf("risk: missing 'id' — give each risk a stable id like 'r1'")
	}

	name := stringField(data, "name")
	if name == "" {
		name = stringField(data, "risk")
	}
	if name == "" {
		return Risk{}, fmt.Errorf("risk %s: missing 'name' (or legacy 'risk') — describe the risk in a short phrase", id)
	}

	likelihood, err := buildLevel(stringField(data, "likelihood"))
	if err != nil {
		return Risk{}, fmt.Errorf("risk %s: bad 'likelihood': %w", id, err)
	}
	impact, err := buildLevel(stringField(data, "impact"))
	if err != nil {
		return Risk{}, fmt.Errorf("risk %s: bad 'impact': %w", id, err)
	}

	mitigation := stringField(data, "mitigation")
	if mitigation == "" {
		return Risk{}, fmt.Errorf("risk %s: missing 'mitigation' — say what the teacher does about it", id)
	}

	return Risk{ID: id, Name: name, Likelihood: likelihood, Impact: impact, Mitigation: mitigation}, nil
}

// BuildContingency normalizes a contingency entry, tolerating the legacy
// 'trigger' field name for 'scenario'.
func BuildContingency(data map[string]any) (Contingency, error) {
	id := stringField(data, "id")
	if id == "" {
		return Contingency{}, fmt.Errorf("contingency: missing 'id' — give each contingency a stable id like 'c1'")
	}

	scenario := stringField(data, "scenario")
	if scenario == "" {
		scenario = stringField(data, "trigger")
	}
	if scenario == "" {
		return Contingency{}, fmt.Errorf("contingency %s: missing 'scenario' (or legacy 'trigger')", id)
	}

	plan := stringField(data, "plan")
	if plan == "" {
		return Contingency{}, fmt.Errorf("contingency %s: missing 'plan' — describe the fallback", id)
	}

	return Contingency{ID: id, Scenario: scenario, Plan: plan}, nil
}

// BuildConstraints normalizes the constraints block and its tech-access enum.
func BuildConstraints(data map[string]any) (Constraints, error) {
	access, err := buildTechAccess(stringField(data, "techAccess"))
	if err != nil {
		return Constraints{}, fmt.Errorf("constraints: bad 'techAccess': %w", err)
	}

	c := Constraints{
		Budget:     stringField(data, "budget"),
		TechAccess: access,
	}
	c.Materials = stringsField(data, "materials")
	c.Safety = stringsField(data, "safety")
	return c, nil
}

func buildLevel(raw string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low":
		return LevelLow, nil
	case "med", "medium":
		return LevelMed, nil
	case "high":
		return LevelHigh, nil
	default:
		return "", fmt.Errorf("%q is not one of low|med|high (\"medium\" is accepted and stored as \"med\")", raw)
	}
}

func buildTechAccess(raw string) (TechAccess, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "full":
		return TechFull, nil
	case "limited", "partial":
		return TechLimited, nil
	case "none", "offline":
		return TechNone, nil
	default:
		return "", fmt.Errorf("%q is not one of full|limited|none", raw)
	}
}

func stringField(data map[string]any, key string) string {
	if s, ok := data[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func stringsField(data map[string]any, key string) []string {
	raw, ok := data[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}
