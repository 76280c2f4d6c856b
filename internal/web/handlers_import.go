package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/JonMunkholm/vetrecords/internal/core"
	"github.com/JonMunkholm/vetrecords/internal/logging"
)

// importResponse is the body returned for every import call.
type importResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	InsertedCount int    `json:"insertedCount"`
	*core.BatchResult
}

// handleImport imports an uploaded .csv/.xlsx/.xls file as {kind}.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	kind := kindParam(r)
	if _, err := core.Lookup(kind); err != nil {
		respondError(w, r, err)
		return
	}

	name, data, err := s.readUpload(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	result, err := s.service.ImportFile(ctx, kind, name, data, requestActor(r))
	s.respondImport(w, r, result, err)
}

// handleImportWebhook imports the rows of a JSON integration payload.
func (s *Server) handleImportWebhook(w http.ResponseWriter, r *http.Request) {
	kind := kindParam(r)
	if _, err := core.Lookup(kind); err != nil {
		respondError(w, r, err)
		return
	}

	body, err := readBody(w, r, s.cfg.Import.MaxFileSize)
	if err != nil {
		respondError(w, r, err)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	result, err := s.service.ImportWebhook(ctx, kind, body, requestActor(r))
	s.respondImport(w, r, result, err)
}

// handleClientImport imports a client list file.
func (s *Server) handleClientImport(w http.ResponseWriter, r *http.Request) {
	name, data, err := s.readUpload(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	result, err := s.service.ImportClients(ctx, name, data, requestActor(r))
	s.respondImport(w, r, result, err)
}

// respondImport writes a batch outcome. A batch that ran returns 200 even
// when rows failed; success is true only when every row was saved.
func (s *Server) respondImport(w http.ResponseWriter, r *http.Request, result *core.BatchResult, err error) {
	if err != nil && result == nil {
		respondError(w, r, err)
		return
	}
	if err != nil {
		logging.FromContext(r.Context()).Warn("import finished early", "error", err)
	}

	writeJSON(w, http.StatusOK, importResponse{
		Success:       result.ErrorRows == 0,
		Message:       fmt.Sprintf("تم استيراد %d سجل بنجاح", result.SuccessRows),
		InsertedCount: result.SuccessRows,
		BatchResult:   result,
	})
}

// readUpload reads the multipart "file" field, bounded by the import size
// limit.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, fmt.Errorf("%w: limit is %d bytes", errTooLarge, maxSize)
		}
		return "", nil, fmt.Errorf("%w: expected a multipart form: %v", errBadRequest, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, fmt.Errorf("%w: no file provided", errBadRequest)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	return header.Filename, data, nil
}

// readBody reads a request body of at most limit bytes.
func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: limit is %d bytes", errTooLarge, limit)
		}
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
