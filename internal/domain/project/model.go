package project

import (
	"time"

	"github.com/rpggio/estflow/internal/domain/workflow"
)

// Priority levels for a project.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Project is the top-level entity of the estimate workflow. UniqueID is
// the immutable identity; ProjectID is the human-facing code.
type Project struct {
	UniqueID           string          `json:"unique_id"`
	ProjectID          string          `json:"project_id"`
	Name               string          `json:"name"`
	Owner              string          `json:"owner"`
	Estimator          string          `json:"estimator"`
	Program            string          `json:"program,omitempty"`
	Client             string          `json:"client,omitempty"`
	EpicID             string          `json:"epic_id,omitempty"`
	Priority           string          `json:"priority,omitempty"`
	Status             workflow.Status `json:"status"`
	Notes              string          `json:"notes,omitempty"`
	EstimateNeededBy   *time.Time      `json:"estimate_needed_by,omitempty"`
	TargetDeliveryDate *time.Time      `json:"target_delivery_date,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
