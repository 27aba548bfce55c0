package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/resume-structurer/internal/ingestion"
	"github.com/jonathan/resume-structurer/internal/logger"
	"github.com/jonathan/resume-structurer/internal/resumes"
	"github.com/jonathan/resume-structurer/internal/types"
	"github.com/jonathan/resume-structurer/internal/validation"
)

// maxJSONBodyBytes leaves room for the JSON envelope around MaxTextBytes of text.
const maxJSONBodyBytes = types.MaxTextBytes + 64<<10

// MaxBatchInputs bounds how many documents one batch request may carry.
const MaxBatchInputs = 50

var validate = validator.New()

// BatchRequest is the body of POST /parse/batch
type BatchRequest struct {
	Inputs          []BatchItem `json:"inputs" validate:"required,min=1,max=50,dive"`
	Clean           bool        `json:"clean,omitempty"`
	NormalizeSkills bool        `json:"normalize_skills,omitempty"`
}

// BatchItem is one document in a BatchRequest
type BatchItem struct {
	Source string `json:"source,omitempty" validate:"max=255"`
	Text   string `json:"text" validate:"max=1048576"`
}

// UploadResponse is returned by POST /parse/upload
type UploadResponse struct {
	Document types.ResumeDocument `json:"document"`
	Report   *types.Violations    `json:"report,omitempty"`
	Metadata *ingestion.Metadata  `json:"metadata"`
}

// ListResponse is returned by GET /resumes
type ListResponse struct {
	Resumes []types.StoredResume `json:"resumes"`
	Total   int                  `json:"total"`
	Limit   int                  `json:"limit"`
	Offset  int                  `json:"offset"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	storage := "disabled"
	if s.db != nil {
		storage = "ok"
		if err := s.db.Ping(r.Context()); err != nil {
			storage = "unavailable"
		}
	} else if s.resumes.HasStore() {
		storage = "ok"
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok", "storage": storage})
}

// handleParse structures the text in a JSON body. With resume_id set, a
// structured document stored for that resume is returned instead.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeParseRequest(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	resumeID := uuid.Nil
	if req.ResumeID != "" {
		if resumeID, err = uuid.Parse(req.ResumeID); err != nil {
			s.fail(w, r, &ErrValidation{Field: "resume_id", Message: "invalid resume ID format"})
			return
		}
	}

	doc, origin := s.resumes.Resolve(r.Context(), resumeID, req.Text, s.parseOptions(req.Clean, req.NormalizeSkills))
	resp := types.ParseResponse{Document: doc, Origin: origin}
	if req.Report {
		resp.Report = s.report(doc)
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleParseUpload extracts text from a multipart "file" field and structures it
func (s *Server) handleParseUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		s.fail(w, r, bodyError("file", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.fail(w, r, &ErrValidation{Field: "file", Message: "a file upload is required"})
		return
	}
	defer func() { _ = file.Close() }()

	text, meta, err := ingestion.ExtractReader(header.Filename, file)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	doc := s.resumes.Parse(text, s.parseOptions(formBool(r, "clean"), formBool(r, "normalize_skills")))
	resp := UploadResponse{Document: doc, Metadata: meta}
	if formBool(r, "report") {
		resp.Report = s.report(doc)
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleParseBatch structures several texts concurrently. With ?stream=true
// each document is sent as a server-sent event in input order.
func (s *Server) handleParseBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBatchInputs*maxJSONBodyBytes)

	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, r, bodyError("body", err))
		return
	}
	if err := validate.Struct(&req); err != nil {
		s.fail(w, r, err)
		return
	}

	inputs := make([]resumes.BatchInput, 0, len(req.Inputs))
	for _, item := range req.Inputs {
		inputs = append(inputs, resumes.BatchInput{Source: item.Source, Text: item.Text})
	}

	results, err := s.resumes.ParseBatch(r.Context(), inputs, s.parseOptions(req.Clean, req.NormalizeSkills))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if r.URL.Query().Get("stream") != "true" {
		s.jsonResponse(w, http.StatusOK, map[string]any{"results": results})
		return
	}

	stream, err := newBatchStream(w)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	for i, result := range results {
		if err := stream.WriteDocument(i, result); err != nil {
			logger.Ctx(r.Context()).Warn().Err(err).Int("index", i).Msg("batch stream aborted")
			stream.WriteError("stream aborted")
			return
		}
	}
	stream.WriteComplete(len(results))
}

// handleCreateResume parses and stores a resume
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	if !s.resumes.HasStore() {
		s.fail(w, r, resumes.ErrNoStore)
		return
	}

	req, err := s.decodeParseRequest(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	source := req.Source
	if source == "" {
		source = "api"
	}

	stored, created, err := s.resumes.Ingest(r.Context(), source, req.Text, s.parseOptions(req.Clean, req.NormalizeSkills))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	s.jsonResponse(w, status, stored)
}

// handleListResumes lists stored resumes, newest first
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	if !s.resumes.HasStore() {
		s.fail(w, r, resumes.ErrNoStore)
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	list, total, err := s.resumes.List(r.Context(), limit, offset)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ListResponse{Resumes: list, Total: total, Limit: limit, Offset: offset})
}

// handleGetResume returns a stored resume; a structured document supersedes the parse
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	if !s.resumes.HasStore() {
		s.fail(w, r, resumes.ErrNoStore)
		return
	}

	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	stored, err := s.resumes.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, stored)
}

// handleDeleteResume deletes a stored resume
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	if !s.resumes.HasStore() {
		s.fail(w, r, resumes.ErrNoStore)
		return
	}

	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.resumes.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) decodeParseRequest(w http.ResponseWriter, r *http.Request) (*types.ParseRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

	var req types.ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, bodyError("body", err)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// parseOptions combines request flags with the server-wide defaults.
func (s *Server) parseOptions(clean, normalizeSkills bool) resumes.ParseOptions {
	return resumes.ParseOptions{
		Clean:           clean || s.parseDefaults.Clean,
		NormalizeSkills: normalizeSkills || s.parseDefaults.NormalizeSkills,
	}
}

func (s *Server) report(doc types.ResumeDocument) *types.Violations {
	return validation.ValidateDocument(doc, s.validationOpts)
}

// bodyError keeps size errors intact and reports anything else as a bad field.
func bodyError(field string, err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return tooLarge
	}
	return &ErrValidation{Field: field, Message: err.Error()}
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "invalid resume ID format"}
	}
	return id, nil
}

func queryInt(r *http.Request, key string) (int, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, &ErrValidation{Field: key, Message: "must be a non-negative integer"}
	}
	return n, nil
}

func formBool(r *http.Request, key string) bool {
	b, _ := strconv.ParseBool(r.FormValue(key))
	return b
}
