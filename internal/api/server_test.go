package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resume-parser/internal/models"
	"resume-parser/internal/pipeline"
	"resume-parser/internal/validate"
)

// fakeParser returns a fixed result or error for every document.
type fakeParser struct {
	resume *models.ParsedResume
	err    error
}

func (f *fakeParser) Parse(ctx context.Context, data []byte) (*models.ParsedResume, error) {
	return f.resume, f.err
}

func sampleResume() *models.ParsedResume {
	years := 8
	return &models.ParsedResume{
		FullName:          "Jane Smith",
		Email:             "jane.smith@example.com",
		CurrentJobTitle:   "Senior Software Engineer",
		YearsOfExperience: &years,
		WorkExperience: []models.WorkExperience{
			{JobTitle: "Senior Software Engineer", Company: "Acme Corp", Responsibilities: []string{"Led the platform team"}},
		},
		Education:      []models.Education{},
		Skills:         []models.Skill{{Name: "Go"}},
		Certifications: []models.Certification{},
		Projects:       []models.Project{},
		Languages:      []string{},
	}
}

// uploadRequest builds a multipart POST with the given field and filename.
func uploadRequest(t *testing.T, field, filename, query string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	fw.Write([]byte("%PDF-stand-in"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/resume/parse"+query, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(parser ResumeParser, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	NewServer(parser, 10<<20, time.Minute).Router().ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, body *bytes.Buffer) errorBody {
	t.Helper()
	var resp map[string]errorBody
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp["error"]
}

func TestParseEndpointSuccess(t *testing.T) {
	rr := serve(&fakeParser{resume: sampleResume()}, uploadRequest(t, "file", "resume.pdf", ""))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rr.Code, rr.Body)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("response missing X-Request-ID header")
	}

	var got models.ParsedResume
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.FullName != "Jane Smith" {
		t.Errorf("FullName = %q", got.FullName)
	}
	if len(got.WorkExperience) != 1 || got.WorkExperience[0].Company != "Acme Corp" {
		t.Errorf("WorkExperience = %+v", got.WorkExperience)
	}
}

func TestParseEndpointRejectsNonPDF(t *testing.T) {
	rr := serve(&fakeParser{resume: sampleResume()}, uploadRequest(t, "file", "resume.docx", ""))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if e := decodeError(t, rr.Body); !strings.Contains(e.Message, "PDF") {
		t.Errorf("error message %q does not mention PDF", e.Message)
	}
}

func TestParseEndpointRequiresFileField(t *testing.T) {
	rr := serve(&fakeParser{resume: sampleResume()}, uploadRequest(t, "document", "resume.pdf", ""))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestParseEndpointStatusByCategory(t *testing.T) {
	tests := []struct {
		name     string
		err      *pipeline.Error
		want     int
		category string
	}{
		{
			name:     "input error",
			err:      &pipeline.Error{Stage: pipeline.StageExtraction, Category: pipeline.CategoryInput, Message: "unreadable document"},
			want:     http.StatusBadRequest,
			category: "input_error",
		},
		{
			name:     "validation failure",
			err:      &pipeline.Error{Stage: pipeline.StageValidation, Category: pipeline.CategoryValidation, Message: "model output failed schema validation"},
			want:     http.StatusUnprocessableEntity,
			category: "validation_failure",
		},
		{
			name:     "access denied",
			err:      &pipeline.Error{Stage: pipeline.StageProvider, Category: pipeline.CategoryAccessDenied, Message: "model access denied"},
			want:     http.StatusBadGateway,
			category: "access_denied",
		},
		{
			name:     "provider unavailable",
			err:      &pipeline.Error{Stage: pipeline.StageProvider, Category: pipeline.CategoryProviderUnavailable, Message: "provider unavailable after 3 attempts"},
			want:     http.StatusServiceUnavailable,
			category: "provider_unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(&fakeParser{err: tt.err}, uploadRequest(t, "file", "resume.pdf", ""))
			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d", rr.Code, tt.want)
			}
			if e := decodeError(t, rr.Body); e.Category != tt.category {
				t.Errorf("category = %q, want %q", e.Category, tt.category)
			}
		})
	}
}

func TestParseEndpointValidationViolationsInBody(t *testing.T) {
	perr := &pipeline.Error{
		Stage:    pipeline.StageValidation,
		Category: pipeline.CategoryValidation,
		Message:  "model output failed schema validation",
		Violations: []validate.Violation{
			{Field: "full_name", Reason: "required field is missing"},
			{Field: "years_of_experience", Reason: "must be between 0 and 50"},
		},
	}
	rr := serve(&fakeParser{err: perr}, uploadRequest(t, "file", "resume.pdf", ""))

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rr.Code)
	}
	e := decodeError(t, rr.Body)
	if len(e.Violations) != 2 {
		t.Fatalf("got %d violations, want 2: %v", len(e.Violations), e.Violations)
	}
	if e.Violations[0].Field != "full_name" || e.Violations[1].Field != "years_of_experience" {
		t.Errorf("violations out of order: %v", e.Violations)
	}
}

func TestParseEndpointUnexpectedErrorIsOpaque(t *testing.T) {
	rr := serve(&fakeParser{err: context.DeadlineExceeded}, uploadRequest(t, "file", "resume.pdf", ""))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if e := decodeError(t, rr.Body); e.Message != "internal error" {
		t.Errorf("message = %q, want opaque internal error", e.Message)
	}
}

func TestParseEndpointExcelFormat(t *testing.T) {
	rr := serve(&fakeParser{resume: sampleResume()}, uploadRequest(t, "file", "resume.pdf", "?format=xlsx"))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "parsed_resume.xlsx") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if rr.Body.Len() == 0 {
		t.Error("workbook body is empty")
	}
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := serve(&fakeParser{}, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %q", body["status"])
	}
}
