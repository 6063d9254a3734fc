package revision

import (
	"time"

	"github.com/rpggio/estflow/internal/domain/workflow"
)

// Scope types.
const (
	ScopeTypeFunctional = "Functional"
	ScopeTypeTechnical  = "Technical"
	ScopeTypeBusiness   = "Business"
	ScopeTypeOther      = "Other"
)

// Estimate types.
const (
	EstimateTypeROM   = "ROM"
	EstimateTypeLOE   = "LOE"
	EstimateTypeFinal = "Final"
)

// Record is a versioned Scope, Estimate, or VE entry for a project. The
// Module tag discriminates which of the payload field groups applies;
// the versioning behavior is shared. At most one record per
// (project, module) carries IsLatest.
type Record struct {
	ID        string          `json:"id"`
	ProjectID string          `json:"project_id"`
	Module    workflow.Module `json:"module"`
	Version   int             `json:"version"`
	Status    workflow.Status `json:"status"`
	IsLatest  bool            `json:"is_latest"`

	// Scope payload.
	ScopeTitle   string `json:"scope_title,omitempty"`
	ScopeType    string `json:"scope_type,omitempty"`
	ArtifactLink string `json:"artifact_link,omitempty"`

	// Estimate payload.
	EstimateType         string   `json:"estimate_type,omitempty"`
	EstimatedFTP         *float64 `json:"estimated_ftp,omitempty"`
	EstimatedDollarValue *float64 `json:"estimated_dollar_value,omitempty"`
	Currency             string   `json:"currency,omitempty"`

	// VE payload.
	VEToolReference string   `json:"ve_tool_reference,omitempty"`
	VEFTP           *float64 `json:"ve_ftp,omitempty"`
	VEDollarValue   *float64 `json:"ve_dollar_value,omitempty"`

	Comments      string     `json:"comments,omitempty"`
	SubmittedDate *time.Time `json:"submitted_date,omitempty"`
	ApprovedDate  *time.Time `json:"approved_date,omitempty"`
	CreatedBy     string     `json:"created_by,omitempty"`
	UpdatedBy     string     `json:"updated_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
