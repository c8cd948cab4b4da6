package server

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"budgetbot/constants"
	"budgetbot/internal/common"
	"budgetbot/internal/entity"
)

// maxUploadBytes caps receipt image uploads at 10 MB.
const maxUploadBytes = 10 << 20

type extractRequest struct {
	Text string `json:"text"`
}

// handleExtractReceipt runs the inference pipeline over already-recognized
// text and returns a pre-fill suggestion.
func (s *Server) handleExtractReceipt(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ValidationErrorf("invalid request body"))
		return
	}

	res := s.extractor.Extract(req.Text)
	writeJSON(w, http.StatusOK, entity.Suggestion{
		Amount:         res.Amount,
		Confidence:     res.Confidence,
		Category:       res.Category,
		CategoryIcon:   res.CategoryIcon,
		CustomCategory: res.CustomCategory,
	})
}

// handleScanReceipt accepts an image upload, OCRs it, and runs the same
// pipeline over the recognized text.
func (s *Server) handleScanReceipt(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, common.ValidationErrorf("upload must be multipart form data under 10MB"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, common.ValidationErrorf("file field is required"))
		return
	}
	defer file.Close()

	ext := constants.NormalizeExt(filepath.Ext(header.Filename))
	if _, ok := constants.AllowedExtensions[ext]; !ok {
		writeError(w, common.ValidationErrorf("unsupported file type %q", ext))
		return
	}

	tmpPath, cleanup, err := s.spool(file, ext)
	if err != nil {
		writeError(w, common.NewAppError("UPLOAD", "failed to store upload", err))
		return
	}
	defer cleanup()

	scan, err := s.scanner.Scan(r.Context(), tmpPath)
	if err != nil {
		writeError(w, err)
		return
	}

	res := s.extractor.Extract(scan.Text)
	writeJSON(w, http.StatusOK, entity.Suggestion{
		Amount:         res.Amount,
		Confidence:     res.Confidence,
		Category:       res.Category,
		CategoryIcon:   res.CategoryIcon,
		CustomCategory: res.CustomCategory,
	})
}

// spool writes the upload to a temp file so the OCR binary can read it.
func (s *Server) spool(src io.Reader, ext string) (string, func(), error) {
	f, err := os.CreateTemp("", "receipt-*."+ext)
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		cleanup()
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}
