package core

import (
	"context"
	"time"

	"github.com/JonMunkholm/vetrecords/internal/logging"
)

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionImport            AuditAction = "import"
	ActionClientImport      AuditAction = "client_import"
	ActionExport            AuditAction = "export"
	ActionHoldingCodeCreate AuditAction = "holding_code_create"
	ActionHoldingCodeUpdate AuditAction = "holding_code_update"
	ActionHoldingCodeDelete AuditAction = "holding_code_delete"
)

// AuditSeverity represents the severity level of an audit entry.
type AuditSeverity string

const (
	SeverityLow    AuditSeverity = "low"
	SeverityMedium AuditSeverity = "medium"
	SeverityHigh   AuditSeverity = "high"
)

// AuditEntry records one import, export or reference-table change.
type AuditEntry struct {
	ID          string        `json:"id"`
	Action      AuditAction   `json:"action"`
	Severity    AuditSeverity `json:"severity"`
	Kind        Kind          `json:"kind,omitempty"`
	Actor       string        `json:"actor"`
	IPAddress   string        `json:"ipAddress,omitempty"`
	UserAgent   string        `json:"userAgent,omitempty"`
	BatchID     string        `json:"batchId,omitempty"`
	Source      string        `json:"source,omitempty"`
	FileName    string        `json:"fileName,omitempty"`
	TotalRows   int           `json:"totalRows,omitempty"`
	SuccessRows int           `json:"successRows,omitempty"`
	ErrorRows   int           `json:"errorRows,omitempty"`
	Reason      string        `json:"reason,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// AuditFilter narrows an audit listing.
type AuditFilter struct {
	Action    AuditAction
	Kind      Kind
	Actor     string
	StartDate *time.Time
	EndDate   *time.Time // inclusive calendar day
	Limit     int
	Offset    int
}

// AuditStore persists audit entries.
type AuditStore interface {
	// InsertAudit stores e and returns it with ID and CreatedAt set.
	InsertAudit(ctx context.Context, e AuditEntry) (AuditEntry, error)
	// ListAudit returns entries newest first.
	ListAudit(ctx context.Context, f AuditFilter) ([]AuditEntry, error)
	// PurgeAudit deletes entries created before cutoff and reports how many.
	PurgeAudit(ctx context.Context, cutoff time.Time) (int64, error)
}

// determineSeverity returns the appropriate severity for an action.
func determineSeverity(action AuditAction) AuditSeverity {
	switch action {
	case ActionImport, ActionClientImport, ActionHoldingCodeDelete:
		return SeverityHigh
	case ActionExport:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// audit writes e with the request metadata from ctx. A failed write is
// logged and never fails the operation being audited.
func (s *Service) audit(ctx context.Context, e AuditEntry) {
	e.Severity = determineSeverity(e.Action)
	if e.Actor == "" {
		e.Actor = ActorFromContext(ctx)
	}
	e.IPAddress = IPAddressFromContext(ctx)
	e.UserAgent = UserAgentFromContext(ctx)

	// The import deadline may already have passed; the entry must still land.
	ctx = context.WithoutCancel(ctx)
	if _, err := s.store.InsertAudit(ctx, e); err != nil {
		logging.FromContext(ctx).Warn("audit write failed",
			"action", e.Action,
			"kind", e.Kind,
			"error", err,
		)
	}
}

// auditBatch records the outcome of an import batch.
func (s *Service) auditBatch(ctx context.Context, action AuditAction, fileName string, r *BatchResult, actor string) {
	if r == nil {
		return
	}
	s.audit(ctx, AuditEntry{
		Action:      action,
		Kind:        r.Kind,
		Actor:       actor,
		BatchID:     r.BatchID,
		Source:      r.Source,
		FileName:    fileName,
		TotalRows:   r.TotalRows,
		SuccessRows: r.SuccessRows,
		ErrorRows:   r.ErrorRows,
	})
}
