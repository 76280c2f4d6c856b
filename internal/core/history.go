package core

import (
	"context"
	"fmt"
)

// Audit listing limits.
const (
	DefaultAuditLimit = 100
	MaxAuditLimit     = 1000
)

// AuditExportFields are the columns of an audit listing export.
var AuditExportFields = []string{
	"createdAt", "action", "kind", "actor", "batchId", "source", "fileName",
	"totalRows", "successRows", "errorRows", "ipAddress",
}

// Values returns the entry's export fields.
func (e AuditEntry) Values() map[string]any {
	return map[string]any{
		"createdAt":   e.CreatedAt,
		"action":      string(e.Action),
		"severity":    string(e.Severity),
		"kind":        string(e.Kind),
		"actor":       e.Actor,
		"batchId":     e.BatchID,
		"source":      e.Source,
		"fileName":    e.FileName,
		"totalRows":   e.TotalRows,
		"successRows": e.SuccessRows,
		"errorRows":   e.ErrorRows,
		"ipAddress":   e.IPAddress,
		"reason":      e.Reason,
	}
}

// ImportHistory lists audit entries matching f, newest first.
func (s *Service) ImportHistory(ctx context.Context, f AuditFilter) ([]AuditEntry, error) {
	switch {
	case f.Limit <= 0:
		f.Limit = DefaultAuditLimit
	case f.Limit > MaxAuditLimit:
		f.Limit = MaxAuditLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	entries, err := s.store.ListAudit(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	return entries, nil
}

// ExportImportHistory flattens the audit entries matching f.
func (s *Service) ExportImportHistory(ctx context.Context, f AuditFilter) (*ExportResult, error) {
	entries, err := s.ImportHistory(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Name:    "import-history",
		Records: entries,
		Table:   BuildTable(entries, AuditExportFields, nil),
	}, nil
}
