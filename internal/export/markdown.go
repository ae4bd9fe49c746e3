// Package export serializes a blueprint into the downloadable syllabus
// formats: Markdown for printing/sharing, JSON for machine re-import.
package export

import (
	"fmt"
	"strings"

	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/domain"
)

// ToMarkdown renders a blueprint as a printable syllabus document. Sections
// with no content are omitted entirely so a half-finished blueprint exports
// clean.
func ToMarkdown(bp *domain.Blueprint) string {
	var b strings.Builder

	title := syllabusTitle(bp)
	fmt.Fprintf(&b, "# %s\n\n", title)

	if len(bp.Wizard.Subjects) > 0 || bp.Wizard.AgeGroup != "" || bp.Wizard.Scope != "" {
		b.WriteString("## Overview\n\n")
		if len(bp.Wizard.Subjects) > 0 {
			fmt.Fprintf(&b, "- **Subjects:** %s\n", strings.Join(bp.Wizard.Subjects, ", "))
		}
		if bp.Wizard.AgeGroup != "" {
			fmt.Fprintf(&b, "- **Age group:** %s\n", bp.Wizard.AgeGroup)
		}
		if bp.Wizard.Scope != "" {
			fmt.Fprintf(&b, "- **Scope:** %s\n", bp.Wizard.Scope)
		}
		if bp.Wizard.Materials != "" {
			fmt.Fprintf(&b, "- **Materials:** %s\n", bp.Wizard.Materials)
		}
		b.WriteString("\n")
	}

	if bp.Ideation.BigIdea != "" || bp.Ideation.EssentialQuestion != "" || bp.Ideation.Challenge != "" {
		b.WriteString("## Ideation\n\n")
		if bp.Ideation.BigIdea != "" {
			fmt.Fprintf(&b, "**Big Idea:** %s\n\n", bp.Ideation.BigIdea)
		}
		if bp.Ideation.EssentialQuestion != "" {
			fmt.Fprintf(&b, "**Essential Question:** %s\n\n", bp.Ideation.EssentialQuestion)
		}
		if bp.Ideation.Challenge != "" {
			fmt.Fprintf(&b, "**Challenge:** %s\n\n", bp.Ideation.Challenge)
		}
	}

	if len(bp.Journey.Phases) > 0 {
		b.WriteString("## Learning Journey\n\n")
		for i, p := range bp.Journey.Phases {
			fmt.Fprintf(&b, "### Phase %d: %s\n\n", i+1, p.Name)
			for _, a := range p.Activities {
				fmt.Fprintf(&b, "- %s\n", a)
			}
			if len(p.Activities) > 0 {
				b.WriteString("\n")
			}
		}
	}

	if len(bp.Journey.Resources) > 0 {
		b.WriteString("## Resources\n\n")
		for _, r := range bp.Journey.Resources {
			fmt.Fprintf(&b, "- %s\n", r)
		}
		b.WriteString("\n")
	}

	if len(bp.Deliverables.Milestones) > 0 {
		b.WriteString("## Milestones\n\n")
		for i, m := range bp.Deliverables.Milestones {
			if m.Description != "" {
				fmt.Fprintf(&b, "%d. **%s** — %s\n", i+1, m.Name, m.Description)
			} else {
				fmt.Fprintf(&b, "%d. **%s**\n", i+1, m.Name)
			}
		}
		b.WriteString("\n")
	}

	if len(bp.Deliverables.Rubric.Criteria) > 0 {
		b.WriteString("## Rubric\n\n")
		b.WriteString("| Criterion | Description |\n|---|---|\n")
		for _, cr := range bp.Deliverables.Rubric.Criteria {
			fmt.Fprintf(&b, "| %s | %s |\n", cr.Criterion, cr.Description)
		}
		b.WriteString("\n")
	}

	if bp.Deliverables.Impact.Audience != "" || bp.Deliverables.Impact.Method != "" {
		b.WriteString("## Authentic Impact\n\n")
		if bp.Deliverables.Impact.Audience != "" {
			fmt.Fprintf(&b, "- **Audience:** %s\n", bp.Deliverables.Impact.Audience)
		}
		if bp.Deliverables.Impact.Method != "" {
			fmt.Fprintf(&b, "- **Method:** %s\n", bp.Deliverables.Impact.Method)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func syllabusTitle(bp *domain.Blueprint) string {
	if bp.Ideation.BigIdea != "" {
		return bp.Ideation.BigIdea
	}
	if len(bp.Wizard.Subjects) > 0 {
		return strings.Join(bp.Wizard.Subjects, " & ") + " Project"
	}
	return "Untitled Project"
}
