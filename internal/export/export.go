package export

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/domain"
)

type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat maps a query value to a Format, defaulting to Markdown.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// Render serializes the blueprint in the requested format and returns the
// payload with its content type.
func Render(bp *domain.Blueprint, format Format) ([]byte, string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(bp, "", "  ")
		if err != nil {
			return nil, "", fmt.Errorf("export json: %w", err)
		}
		return data, "application/json", nil
	case FormatMarkdown:
		return []byte(ToMarkdown(bp)), "text/markdown; charset=utf-8", nil
	default:
		return nil, "", fmt.Errorf("unsupported export format %q", format)
	}
}

var unsafeFilename = regexp.MustCompile(`[^a-z0-9]+`)

// Filename derives the suggested download filename from the syllabus title,
// the same trick the SPA plays with the document title before printing.
func Filename(bp *domain.Blueprint, format Format) string {
	slug := unsafeFilename.ReplaceAllString(strings.ToLower(syllabusTitle(bp)), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "syllabus"
	}
	ext := "md"
	if format == FormatJSON {
		ext = "json"
	}
	return slug + "." + ext
}
