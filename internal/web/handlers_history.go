package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/JonMunkholm/vetrecords/internal/core"
)

// auditFilter reads action, kind, actor, startDate, endDate, limit and
// offset from the query.
func auditFilter(r *http.Request) (core.AuditFilter, error) {
	q := r.URL.Query()
	f := core.AuditFilter{
		Action: core.AuditAction(strings.TrimSpace(q.Get("action"))),
		Kind:   core.Kind(strings.TrimSpace(q.Get("kind"))),
		Actor:  strings.TrimSpace(q.Get("actor")),
	}

	var err error
	now := time.Now()
	if f.StartDate, err = parseDateParam(r, "startDate", now); err != nil {
		return f, err
	}
	if f.EndDate, err = parseDateParam(r, "endDate", now); err != nil {
		return f, err
	}
	if f.Limit, err = parseIntParam(r, "limit", 0); err != nil {
		return f, err
	}
	if f.Offset, err = parseIntParam(r, "offset", 0); err != nil {
		return f, err
	}
	return f, nil
}

// handleImportHistory lists audit entries, newest first.
func (s *Server) handleImportHistory(w http.ResponseWriter, r *http.Request) {
	f, err := auditFilter(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	entries, err := s.service.ImportHistory(r.Context(), f)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": entries})
}

// handleImportHistoryExport downloads the audit listing.
func (s *Server) handleImportHistoryExport(w http.ResponseWriter, r *http.Request) {
	format, err := core.ParseExportFormat(r.URL.Query().Get("format"), core.FormatCSV)
	if err != nil {
		respondError(w, r, err)
		return
	}
	f, err := auditFilter(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	result, err := s.service.ExportImportHistory(r.Context(), f)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeExport(w, r, result, format)
}
