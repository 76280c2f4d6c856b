package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/JonMunkholm/vetrecords/internal/core"
)

// handleExport exports {kind} records as json, csv or excel.
//
// Query parameters: format (default excel), startDate, endDate (inclusive),
// interventionCategory, limit.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := core.ParseExportFormat(r.URL.Query().Get("format"), core.FormatExcel)
	if err != nil {
		respondError(w, r, err)
		return
	}

	now := time.Now()
	f := core.ExportFilter{InterventionCategory: strings.TrimSpace(r.URL.Query().Get("interventionCategory"))}
	if f.StartDate, err = parseDateParam(r, "startDate", now); err != nil {
		respondError(w, r, err)
		return
	}
	if f.EndDate, err = parseDateParam(r, "endDate", now); err != nil {
		respondError(w, r, err)
		return
	}
	if f.Limit, err = parseIntParam(r, "limit", 0); err != nil {
		respondError(w, r, err)
		return
	}

	result, err := s.service.Export(WithRequestMetadata(r.Context(), r), kindParam(r), f)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeExport(w, r, result, format)
}

// handleClientExport exports clients. status filters by exact status;
// active=true|false selects the active or inactive status.
func (s *Server) handleClientExport(w http.ResponseWriter, r *http.Request) {
	format, err := core.ParseExportFormat(r.URL.Query().Get("format"), core.FormatExcel)
	if err != nil {
		respondError(w, r, err)
		return
	}

	f := core.ClientFilter{Status: strings.TrimSpace(r.URL.Query().Get("status"))}
	active, err := parseBoolParam(r, "active")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if f.Status == "" && active != nil {
		f.Status = core.InactiveStatus
		if *active {
			f.Status = core.DefaultClientStatus
		}
	}
	if f.Limit, err = parseIntParam(r, "limit", 0); err != nil {
		respondError(w, r, err)
		return
	}

	result, err := s.service.ExportClients(WithRequestMetadata(r.Context(), r), f)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeExport(w, r, result, format)
}

// handleTemplate downloads the import template for {kind}, csv by default.
func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	s.writeTemplate(w, r, kindParam(r))
}

// handleClientTemplate downloads the client import template.
func (s *Server) handleClientTemplate(w http.ResponseWriter, r *http.Request) {
	s.writeTemplate(w, r, string(core.KindClient))
}

func (s *Server) writeTemplate(w http.ResponseWriter, r *http.Request, kind string) {
	format, err := core.ParseExportFormat(r.URL.Query().Get("format"), core.FormatCSV)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if format == core.FormatJSON {
		respondError(w, r, fmt.Errorf("%w: templates are csv or excel", core.ErrUnknownFormat))
		return
	}

	table, err := s.service.Template(kind)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeTable(w, r, table, format, kind+"-template"+format.Extension(), kind)
}

// writeExport encodes an export result in format as a download.
func writeExport(w http.ResponseWriter, r *http.Request, result *core.ExportResult, format core.ExportFormat) {
	if format == core.FormatJSON {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    result.Records,
		})
		return
	}
	filename := core.ExportFilename(result.Name, format, time.Now())
	writeTable(w, r, result.Table, format, filename, result.Name)
}

// writeTable buffers the encoded table so an encoding failure can still
// be reported as an error response.
func writeTable(w http.ResponseWriter, r *http.Request, t *core.Table, format core.ExportFormat, filename, sheet string) {
	var buf bytes.Buffer
	var err error
	if format == core.FormatExcel {
		err = core.WriteExcel(&buf, t, sheet)
	} else {
		err = core.WriteCSV(&buf, t)
	}
	if err != nil {
		respondError(w, r, fmt.Errorf("encode %s: %w", format, err))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
