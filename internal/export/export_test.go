package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/domain"
)

func fullBlueprint() *domain.Blueprint {
	return &domain.Blueprint{
		ID:     "bp-1",
		UserID: "u1",
		Wizard: domain.Wizard{
			Subjects:  []string{"Science", "Civics"},
			AgeGroup:  "Grades 6-8",
			Scope:     "unit",
			Materials: "thermometers, poster board",
		},
		Ideation: domain.Ideation{
			BigIdea:           "Cities heat unevenly",
			EssentialQuestion: "How might we cool our schoolyard?",
			Challenge:         "Pitch a heat-mitigation plan",
		},
		Journey: domain.Journey{
			Phases: []domain.Phase{
				{Name: "Investigate", Activities: []string{"Map hot spots"}},
				{Name: "Design", Activities: []string{"Draft redesigns", "Peer critique"}},
				{Name: "Pitch"},
			},
			Resources: []string{"City heat-island report"},
		},
		Deliverables: domain.Deliverables{
			Milestones: []domain.Milestone{
				{Name: "Heat map complete", Description: "Poster with a week of readings"},
				{Name: "Final pitch"},
			},
			Rubric: domain.Rubric{Criteria: []domain.Criterion{
				{Criterion: "Evidence", Description: "Grounded in class data"},
			}},
			Impact: domain.Impact{Audience: "Facilities committee", Method: "Live pitch"},
		},
	}
}

func TestToMarkdown(t *testing.T) {
	t.Run("full blueprint renders every section", func(t *testing.T) {
		md := ToMarkdown(fullBlueprint())

		assert.True(t, strings.HasPrefix(md, "# Cities heat unevenly\n"))
		for _, heading := range []string{
			"## Overview", "## Ideation", "## Learning Journey",
			"## Resources", "## Milestones", "## Rubric", "## Authentic Impact",
		} {
			assert.Contains(t, md, heading)
		}
		assert.Contains(t, md, "### Phase 1: Investigate")
		assert.Contains(t, md, "- Peer critique")
		assert.Contains(t, md, "1. **Heat map complete** — Poster with a week of readings")
		assert.Contains(t, md, "2. **Final pitch**\n")
		assert.Contains(t, md, "| Evidence | Grounded in class data |")
		assert.Contains(t, md, "- **Audience:** Facilities committee")
	})

	t.Run("empty sections are omitted", func(t *testing.T) {
		bp := &domain.Blueprint{
			Wizard:   domain.Wizard{Subjects: []string{"Art"}},
			Ideation: domain.Ideation{BigIdea: "Color is language"},
		}
		md := ToMarkdown(bp)

		assert.Contains(t, md, "# Color is language")
		assert.Contains(t, md, "## Overview")
		assert.Contains(t, md, "## Ideation")
		assert.NotContains(t, md, "## Learning Journey")
		assert.NotContains(t, md, "## Milestones")
		assert.NotContains(t, md, "## Rubric")
		assert.NotContains(t, md, "## Authentic Impact")
	})

	t.Run("title falls back to subjects then a default", func(t *testing.T) {
		bp := &domain.Blueprint{Wizard: domain.Wizard{Subjects: []string{"Math", "Music"}}}
		assert.True(t, strings.HasPrefix(ToMarkdown(bp), "# Math & Music Project\n"))

		assert.True(t, strings.HasPrefix(ToMarkdown(&domain.Blueprint{}), "# Untitled Project\n"))
	})
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		raw  string
		want Format
	}{
		{"", FormatMarkdown},
		{"md", FormatMarkdown},
		{"Markdown", FormatMarkdown},
		{" json ", FormatJSON},
	}
	for _, tc := range cases {
		got, err := ParseFormat(tc.raw)
		require.NoError(t, err, "raw=%q", tc.raw)
		assert.Equal(t, tc.want, got, "raw=%q", tc.raw)
	}

	_, err := ParseFormat("pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdf")
}

func TestRender(t *testing.T) {
	bp := fullBlueprint()

	t.Run("json round trips", func(t *testing.T) {
		payload, contentType, err := Render(bp, FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, "application/json", contentType)

		var back domain.Blueprint
		require.NoError(t, json.Unmarshal(payload, &back))
		assert.Equal(t, bp.ID, back.ID)
		assert.Equal(t, bp.Ideation.BigIdea, back.Ideation.BigIdea)
		assert.Len(t, back.Journey.Phases, 3)
	})

	t.Run("markdown", func(t *testing.T) {
		payload, contentType, err := Render(bp, FormatMarkdown)
		require.NoError(t, err)
		assert.Equal(t, "text/markdown; charset=utf-8", contentType)
		assert.Equal(t, ToMarkdown(bp), string(payload))
	})

	t.Run("unknown format", func(t *testing.T) {
		_, _, err := Render(bp, Format("pdf"))
		require.Error(t, err)
	})
}

func TestFilename(t *testing.T) {
	bp := fullBlueprint()
	assert.Equal(t, "cities-heat-unevenly.md", Filename(bp, FormatMarkdown))
	assert.Equal(t, "cities-heat-unevenly.json", Filename(bp, FormatJSON))

	assert.Equal(t, "untitled-project.md", Filename(&domain.Blueprint{}, FormatMarkdown))

	weird := &domain.Blueprint{Ideation: domain.Ideation{BigIdea: "  ¡¿What?!  "}}
	assert.Equal(t, "what.md", Filename(weird, FormatMarkdown))
}
