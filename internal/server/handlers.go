package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/maelle/smartcv/internal/pipeline"
	"github.com/maelle/smartcv/internal/types"
)

// maxUploadBytes caps request bodies on the document endpoints.
const maxUploadBytes = 10 << 20

// ParseRequest is the JSON body of POST /api/v1/parse. Multipart uploads use
// a "file" part instead, with the same optional fields as form values.
type ParseRequest struct {
	Text         string `json:"text,omitempty"`
	URL          string `json:"url,omitempty"`
	Language     string `json:"language,omitempty"`
	DraftSummary bool   `json:"draft_summary,omitempty"`
}

// RenderRequest is the JSON body of POST /api/v1/render.
type RenderRequest struct {
	Resume   *types.StructuredResume `json:"resume"`
	Language string                  `json:"language,omitempty"`
	Polish   bool                    `json:"polish,omitempty"`
}

// handleParse extracts a structured record from an uploaded document, inline
// text, or a URL, and returns it as JSON for client-side review.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	opts := pipeline.ExtractOptions{
		APIKey:     s.cfg.APIKey,
		UseBrowser: s.cfg.UseBrowser,
		Timeout:    s.cfg.ExtractTimeout,
		Client:     s.client,
		Logger:     s.log,
	}

	if isMultipart(r) {
		data, filename, err := uploadedFile(r)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		opts.Data = data
		opts.Filename = filename
		opts.LanguageHint = r.FormValue("language")
		opts.DraftSummary = formBool(r, "draft_summary")
	} else {
		var req ParseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
		if strings.TrimSpace(req.Text) == "" && req.URL == "" {
			err := &ErrValidation{Field: "text", Message: "text or url is required"}
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		opts.Text = req.Text
		opts.URL = req.URL
		opts.LanguageHint = req.Language
		opts.DraftSummary = req.DraftSummary
	}

	result, err := pipeline.ExtractResume(r.Context(), opts)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleRender compiles a reviewed record into a PDF.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Resume == nil {
		err := &ErrValidation{Field: "resume", Message: "resume is required"}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	artifact, err := pipeline.RenderResume(r.Context(), req.Resume, pipeline.RenderOptions{
		LanguageHint:   req.Language,
		TemplatePath:   s.cfg.TemplatePath,
		Polish:         req.Polish,
		Engine:         s.cfg.Engine,
		CompileTimeout: s.cfg.CompileTimeout,
		APIKey:         s.cfg.APIKey,
		Client:         s.client,
		Logger:         s.log,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.pdfResponse(w, artifact.PDF)
}

// handleGenerate runs the whole flow in one shot: uploaded document in,
// finished PDF out, no review step.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	data, filename, err := uploadedFile(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result, err := pipeline.ExtractResume(r.Context(), pipeline.ExtractOptions{
		Data:         data,
		Filename:     filename,
		LanguageHint: r.FormValue("language"),
		DraftSummary: formBool(r, "draft_summary"),
		APIKey:       s.cfg.APIKey,
		Timeout:      s.cfg.ExtractTimeout,
		Client:       s.client,
		Logger:       s.log,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	artifact, err := pipeline.RenderResume(r.Context(), result.Record, pipeline.RenderOptions{
		LanguageHint:   result.Language.String(),
		TemplatePath:   s.cfg.TemplatePath,
		Polish:         formBool(r, "polish"),
		Engine:         s.cfg.Engine,
		CompileTimeout: s.cfg.CompileTimeout,
		APIKey:         s.cfg.APIKey,
		Client:         s.client,
		Logger:         s.log,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.pdfResponse(w, artifact.PDF)
}

// isMultipart reports whether the request carries a form upload.
func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// uploadedFile reads the "file" part of a multipart request.
func uploadedFile(r *http.Request) ([]byte, string, error) {
	if !isMultipart(r) {
		return nil, "", &ErrValidation{Field: "file", Message: "multipart/form-data upload required"}
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, "", &ErrValidation{Field: "file", Message: "failed to parse upload: " + err.Error()}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", &ErrValidation{Field: "file", Message: "file part is required"}
	}
	defer file.Close() //nolint:errcheck

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", &ErrValidation{Field: "file", Message: "failed to read upload: " + err.Error()}
	}
	if len(data) == 0 {
		return nil, "", &ErrValidation{Field: "file", Message: "uploaded file is empty"}
	}

	return data, header.Filename, nil
}

// formBool reads an optional boolean form value.
func formBool(r *http.Request, key string) bool {
	value := r.FormValue(key)
	if value == "" {
		return false
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return parsed
}

// pdfResponse writes a compiled document as a download.
func (s *Server) pdfResponse(w http.ResponseWriter, pdf []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		s.log.Warn("failed to write PDF response", zap.Error(err))
	}
}
