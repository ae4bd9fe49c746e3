// Package migrate converts legacy blueprint documents into the current
// schema. Several historical document shapes coexist in the store with no
// upgrade step: the intake block was stored under "wizardData" before it was
// renamed "wizard", the stage marker has been called "currentState",
// "fsmState" and "currentStep" at different points, and subjects were once a
// single string. Migration happens once at load; documents are written back
// only on the next save.
package migrate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/domain"
)

// terminalSteps holds every historical stage-marker value that meant "done".
// Anything else is dropped: intermediate stage strings were display state,
// and display state is derived now.
var terminalSteps = map[string]bool{
	"COMPLETE":  true,
	"COMPLETED": true,
	"PUBLISHED": true,
	"PUBLISH":   true,
}

// Document migrates a raw document map into a current-schema Blueprint.
// Unknown fields are ignored; missing fields fall back to zero values so a
// malformed legacy document still loads (and derives to Ideation) rather
// than failing the dashboard.
func Document(raw map[string]any) (*domain.Blueprint, error) {
	if raw == nil {
		return nil, fmt.Errorf("migrate: nil document")
	}

	normalizeWizard(raw)
	normalizeStep(raw)
	normalizeSubjects(raw)

	// Round-trip through JSON to land the tolerant map in the typed model.
	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("migrate: marshal: %w", err)
	}

	var b domain.Blueprint
	if err := json.Unmarshal(buf, &b); err != nil {
		// Unmarshal keeps every field that parsed and reports the first type
		// mismatch. Junk-typed fields stay zero, so the document loads and
		// derives to Ideation instead of taking down the list view.
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("migrate: unmarshal: %w", err)
		}
	}

	b.SchemaVersion = domain.SchemaVersion
	return &b, nil
}

// NeedsMigration reports whether a raw document predates the current schema.
func NeedsMigration(raw map[string]any) bool {
	v, ok := raw["schemaVersion"]
	if !ok {
		return true
	}
	switch n := v.(type) {
	case float64:
		return int(n) < domain.SchemaVersion
	case int:
		return n < domain.SchemaVersion
	case int64:
		return int(n) < domain.SchemaVersion
	default:
		return true
	}
}

func normalizeWizard(raw map[string]any) {
	if _, ok := raw["wizard"]; ok {
		return
	}
	if wd, ok := raw["wizardData"].(map[string]any); ok {
		raw["wizard"] = wd
		delete(raw, "wizardData")
	}
}

func normalizeStep(raw map[string]any) {
	step := ""
	for _, key := range []string{"currentStep", "fsmState", "currentState", "stage"} {
		if s, ok := raw[key].(string); ok && s != "" {
			step = s
			break
		}
	}
	delete(raw, "fsmState")
	delete(raw, "currentState")
	delete(raw, "stage")

	if terminalSteps[strings.ToUpper(strings.TrimSpace(step))] {
		raw["currentStep"] = domain.StepComplete
	} else {
		delete(raw, "currentStep")
	}
}

func normalizeSubjects(raw map[string]any) {
	w, ok := raw["wizard"].(map[string]any)
	if !ok {
		return
	}
	switch s := w["subjects"].(type) {
	case string:
		if strings.TrimSpace(s) == "" {
			w["subjects"] = []any{}
		} else {
			w["subjects"] = []any{s}
		}
	case nil:
		// Oldest shape used a singular "subject" field.
		if single, ok := w["subject"].(string); ok && strings.TrimSpace(single) != "" {
			w["subjects"] = []any{single}
		}
	}
	delete(w, "subject")
}
