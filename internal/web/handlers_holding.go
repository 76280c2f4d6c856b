package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/vetrecords/internal/core"
	"github.com/go-chi/chi/v5"
)

// maxHoldingCodeBody bounds holding code JSON bodies.
const maxHoldingCodeBody = 64 << 10

func holdingCodeFilter(r *http.Request) (core.HoldingCodeFilter, error) {
	active, err := parseBoolParam(r, "active")
	if err != nil {
		return core.HoldingCodeFilter{}, err
	}
	return core.HoldingCodeFilter{
		Village: strings.TrimSpace(r.URL.Query().Get("village")),
		Active:  active,
	}, nil
}

func (s *Server) handleListHoldingCodes(w http.ResponseWriter, r *http.Request) {
	f, err := holdingCodeFilter(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	codes, err := s.service.ListHoldingCodes(r.Context(), f)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": codes})
}

func (s *Server) handleExportHoldingCodes(w http.ResponseWriter, r *http.Request) {
	format, err := core.ParseExportFormat(r.URL.Query().Get("format"), core.FormatExcel)
	if err != nil {
		respondError(w, r, err)
		return
	}
	f, err := holdingCodeFilter(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	result, err := s.service.ExportHoldingCodes(r.Context(), f)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeExport(w, r, result, format)
}

func (s *Server) handleGetHoldingCode(w http.ResponseWriter, r *http.Request) {
	hc, err := s.service.GetHoldingCode(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": hc})
}

func (s *Server) handleCreateHoldingCode(w http.ResponseWriter, r *http.Request) {
	in, err := decodeHoldingCode(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	ctx := WithRequestMetadata(r.Context(), r)
	hc, err := s.service.CreateHoldingCode(ctx, in, requestActor(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "data": hc})
}

func (s *Server) handleUpdateHoldingCode(w http.ResponseWriter, r *http.Request) {
	in, err := decodeHoldingCode(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	ctx := WithRequestMetadata(r.Context(), r)
	hc, err := s.service.UpdateHoldingCode(ctx, chi.URLParam(r, "id"), in, requestActor(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": hc})
}

func (s *Server) handleDeleteHoldingCode(w http.ResponseWriter, r *http.Request) {
	ctx := WithRequestMetadata(r.Context(), r)
	if err := s.service.DeleteHoldingCode(ctx, chi.URLParam(r, "id"), requestActor(r)); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeHoldingCode(w http.ResponseWriter, r *http.Request) (core.HoldingCodeInput, error) {
	var in core.HoldingCodeInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxHoldingCodeBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return core.HoldingCodeInput{}, fmt.Errorf("%w: holding code body: %v", errBadRequest, err)
	}
	return in, nil
}
