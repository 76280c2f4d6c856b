package core

import (
	"context"
	"fmt"
)

// ExportResult holds the records of one export call and their table form.
type ExportResult struct {
	Name    string // file and sheet base name
	Records any    // JSON payload
	Table   *Table
}

// Export lists a kind's records matching f and flattens them for output.
// No matches yields a table with only the header row.
func (s *Service) Export(ctx context.Context, kind string, f ExportFilter) (*ExportResult, error) {
	def, err := Lookup(kind)
	if err != nil {
		return nil, err
	}
	f.Limit = s.clampLimit(f.Limit)

	records, err := s.store.ListRecords(ctx, def.Info.Key, f, def.NewRecord)
	if err != nil {
		return nil, fmt.Errorf("list %s records: %w", kind, err)
	}
	s.audit(ctx, AuditEntry{
		Action:    ActionExport,
		Kind:      def.Info.Key,
		TotalRows: len(records),
	})

	return &ExportResult{
		Name:    string(def.Info.Key),
		Records: records,
		Table:   BuildTable(records, def.ExportFields, def.Label),
	}, nil
}

// ExportClients lists clients matching f and flattens them for output.
func (s *Service) ExportClients(ctx context.Context, f ClientFilter) (*ExportResult, error) {
	f.Limit = s.clampLimit(f.Limit)

	clients, err := s.store.ListClients(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	s.audit(ctx, AuditEntry{
		Action:    ActionExport,
		Kind:      KindClient,
		TotalRows: len(clients),
	})

	return &ExportResult{
		Name:    string(KindClient),
		Records: clients,
		Table:   BuildTable(clients, ClientExportFields, nil),
	}, nil
}

// Template returns the import template for kind: its header row and one
// sample row. "clients" selects the client template.
func (s *Service) Template(kind string) (*Table, error) {
	if Kind(kind) == KindClient {
		return templateTable(ClientTemplateHeaders, ClientTemplateRow), nil
	}
	def, err := Lookup(kind)
	if err != nil {
		return nil, err
	}
	return templateTable(def.TemplateHeaders, def.TemplateRow), nil
}

func templateTable(headers []string, sample map[string]string) *Table {
	row := make([]string, len(headers))
	for i, h := range headers {
		row[i] = sample[h]
	}
	return &Table{Headers: headers, Rows: [][]string{row}}
}

func (s *Service) clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return s.exportLimit
	case limit > s.maxExportLimit:
		return s.maxExportLimit
	default:
		return limit
	}
}
