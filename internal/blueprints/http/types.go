package http

import "github.com/kjbranchesi/alf-coach-backend/internal/blueprints/domain"

type createReq struct {
	Wizard domain.Wizard `json:"wizard"`
	// ID may carry the SPA's client-generated placeholder ("new-<ts>"); the
	// repository mints a real id and the response carries it back.
	ID string `json:"id,omitempty"`
}

type saveReq struct {
	Wizard       domain.Wizard       `json:"wizard"`
	Ideation     domain.Ideation     `json:"ideation"`
	Journey      domain.Journey      `json:"journey"`
	Deliverables domain.Deliverables `json:"deliverables"`
	CurrentStep  string              `json:"currentStep,omitempty"`
}
