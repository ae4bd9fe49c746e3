package showcase

import (
	"fmt"
	"sync"
)

var (
	libOnce sync.Once
	lib     []HeroProject
	libErr  error
)

// Library returns the static hero-project set. Risks, contingencies and
// constraints are authored in the loose historical shape and run through the
// builders, so an authoring mistake surfaces as an error here instead of a
// broken gallery.
func Library() ([]HeroProject, error) {
	libOnce.Do(func() {
		lib, libErr = buildLibrary()
	})
	return lib, libErr
}

// Get returns one exemplar by id.
func Get(id string) (*HeroProject, error) {
	projects, err := Library()
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, fmt.Errorf("hero project %q not found", id)
}

// ValidateAll runs the structural validator over the whole library, keyed by
// exemplar id. Startup and tests treat errors as fatal; the serving path
// only logs them.
func ValidateAll() (map[string]Result, error) {
	projects, err := Library()
	if err != nil {
		return nil, err
	}
	out := make(map[string]Result, len(projects))
	for i := range projects {
		out[projects[i].ID] = ValidateHeroProject(&projects[i])
	}
	return out, nil
}

func buildLibrary() ([]HeroProject, error) {
	heroes := []struct {
		project       HeroProject
		risks         []map[string]any
		contingencies []map[string]any
		constraints   map[string]any
	}{
		{
			project: HeroProject{
				ID:                "hero-urban-heat",
				Title:             "Cooling Our Schoolyard",
				Tagline:           "Students redesign their own schoolyard to beat urban heat.",
				Duration:          "8 weeks",
				GradeLevel:        "Grades 6-8",
				Subjects:          []string{"Science", "Mathematics", "Civics"},
				BigIdea:           "Cities heat unevenly, and design choices decide who stays cool.",
				EssentialQuestion: "How might we redesign our schoolyard so everyone can use it on the hottest days?",
				Challenge:         "Propose a heat-mitigation plan for the schoolyard and pitch it to the facilities committee.",
				Phases: []HeroPhase{
					{
						Name:     "Investigate",
						Duration: "2 weeks",
						Summary:  "Measure surface temperatures across the schoolyard and map the hot spots.",
						Activities: []string{
							"Build simple datalogging thermometers",
							"Collect a week of surface temperature readings",
							"Produce a heat map of the schoolyard",
						},
					},
					{
						Name:     "Design",
						Duration: "3 weeks",
						Summary:  "Research mitigation strategies and draft schoolyard redesigns.",
						Activities: []string{
							"Case studies: three cities that cooled public spaces",
							"Sketch and cost out two redesign options",
							"Peer design critique",
						},
					},
					{
						Name:     "Pitch",
						Duration: "3 weeks",
						Summary:  "Refine one proposal and present it to a real decision maker.",
						Activities: []string{
							"Build a scale model or digital rendering",
							"Rehearse the pitch with a rubric partner",
							"Present to the facilities committee",
						},
					},
				},
				Milestones: []string{
					"Heat map poster complete",
					"Two costed redesign options drafted",
					"Final proposal pitched to the facilities committee",
				},
				Rubric: []HeroCriterion{
					{Criterion: "Evidence", Description: "Claims are grounded in the class's own temperature data."},
					{Criterion: "Feasibility", Description: "The proposal fits the stated budget and site constraints."},
					{Criterion: "Communication", Description: "The pitch is clear, persuasive and within time."},
				},
				Standards: []Standard{
					{Code: "MS-ESS3-3", Text: "Apply scientific principles to design a method for monitoring and minimizing a human impact on the environment.", Framework: "NGSS"},
					{Code: "6.SP.B.5", Text: "Summarize numerical data sets in relation to their context.", Framework: "CCSS-Math"},
				},
			},
			risks: []map[string]any{
				{"id": "r1", "risk": "A heat wave closes the schoolyard during data collection", "likelihood": "medium", "impact": "high", "mitigation": "Collect morning readings and keep two indoor analysis days in reserve."},
				{"id": "r2", "name": "Sensors drift or break", "likelihood": "high", "impact": "low", "mitigation": "Calibrate weekly against a reference thermometer; keep three spares."},
			},
			contingencies: []map[string]any{
				{"id": "c1", "trigger": "Facilities committee cannot attend the pitch", "plan": "Record the pitches and deliver them with a one-page brief; request written feedback."},
			},
			constraints: map[string]any{
				"budget":     "$150 classroom budget",
				"techAccess": "limited",
				"materials":  []any{"digital thermometers", "poster board", "graph paper"},
				"safety":     []any{"Outdoor work in shaded pairs during heat advisories"},
			},
		},
		{
			project: HeroProject{
				ID:                "hero-story-archive",
				Title:             "Voices of Our Neighborhood",
				Tagline:           "An oral-history archive built by students, kept by the town library.",
				Duration:          "10 weeks",
				GradeLevel:        "Grades 9-10",
				Subjects:          []string{"English Language Arts", "History"},
				BigIdea:           "A community's memory lives in its stories, and stories disappear unless someone keeps them.",
				EssentialQuestion: "Whose stories is our town's history missing, and how do we keep them?",
				Challenge:         "Produce a curated oral-history collection for the public library's local archive.",
				Phases: []HeroPhase{
					{
						Name:     "Listen",
						Duration: "3 weeks",
						Summary:  "Study oral-history craft and map the gaps in the existing archive.",
						Activities: []string{
							"Analyze three professional oral-history interviews",
							"Audit the library's current local collection",
							"Draft interview guides",
						},
					},
					{
						Name:     "Record",
						Duration: "4 weeks",
						Summary:  "Conduct, transcribe and edit community interviews.",
						Activities: []string{
							"Conduct two interviews per team",
							"Transcribe and time-code recordings",
							"Edit a 10-minute cut per narrator",
						},
					},
					{
						Name:     "Curate",
						Duration: "3 weeks",
						Summary:  "Write archival descriptions and hand the collection to the library.",
						Activities: []string{
							"Write finding-aid entries",
							"Secure narrator release forms",
							"Host a public listening night",
						},
					},
				},
				Milestones: []string{
					"Interview guides approved by the librarian",
					"All interviews recorded with signed releases",
					"Collection accepted into the library archive",
				},
				Rubric: []HeroCriterion{
					{Criterion: "Interview craft", Description: "Questions are open, follow-ups responsive, narrator centered."},
					{Criterion: "Archival quality", Description: "Transcripts, metadata and releases meet the library's standard."},
					{Criterion: "Ethics", Description: "Consent and representation handled with documented care."},
				},
				Standards: []Standard{
					{Code: "RI.9-10.7", Text: "Analyze various accounts of a subject told in different mediums.", Framework: "CCSS-ELA"},
					{Code: "W.9-10.6", Text: "Use technology to produce, publish, and update writing products.", Framework: "CCSS-ELA"},
				},
			},
			risks: []map[string]any{
				{"id": "r1", "name": "Narrators withdraw consent late", "likelihood": "low", "impact": "high", "mitigation": "Walk through the release at the first meeting and again before publication; keep alternates on the roster."},
			},
			contingencies: []map[string]any{
				{"id": "c1", "scenario": "Recording equipment fails mid-interview", "plan": "Every team carries a phone recorder as a hot spare and checks levels at the five-minute mark."},
			},
			constraints: map[string]any{
				"budget":     "No budget; equipment borrowed from the library",
				"techAccess": "full",
				"materials":  []any{"audio recorders", "transcription software", "release forms"},
			},
		},
	}

	out := make([]HeroProject, 0, len(heroes))
	for _, h := range heroes {
		p := h.project
		for _, raw := range h.risks {
			risk, err := BuildRisk(raw)
			if err != nil {
				return nil, fmt.Errorf("hero %s: %w", p.ID, err)
			}
			p.Risks = append(p.Risks, risk)
		}
		for _, raw := range h.contingencies {
			cont, err := BuildContingency(raw)
			if err != nil {
				return nil, fmt.Errorf("hero %s: %w", p.ID, err)
			}
			p.Contingencies = append(p.Contingencies, cont)
		}
		if h.constraints != nil {
			cons, err := BuildConstraints(h.constraints)
			if err != nil {
				return nil, fmt.Errorf("hero %s: %w", p.ID, err)
			}
			p.Constraints = &cons
		}
		out = append(out, p)
	}
	return out, nil
}
