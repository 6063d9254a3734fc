package history

import (
	"time"

	"github.com/rpggio/estflow/internal/domain/workflow"
)

// Entry is a single status transition in the append-only ledger.
// RecordID is empty for project-level transitions.
type Entry struct {
	ID         string          `json:"id"`
	ProjectID  string          `json:"project_id"`
	Module     workflow.Module `json:"module"`
	RecordID   string          `json:"record_id,omitempty"`
	FromStatus workflow.Status `json:"from_status"`
	ToStatus   workflow.Status `json:"to_status"`
	Reason     string          `json:"reason"`
	ChangedBy  string          `json:"changed_by"`
	ChangedAt  time.Time       `json:"changed_at"`
}
