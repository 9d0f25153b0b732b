package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strings"

	"github.com/jonathan/ats-coach/internal/pipeline"
	"github.com/jonathan/ats-coach/internal/server/middleware"
	"github.com/jonathan/ats-coach/internal/session"
	"github.com/jonathan/ats-coach/internal/skills"
	"github.com/jonathan/ats-coach/internal/types"
)

// Response sizes.
const (
	MaxMissingShown = 10
	MaxSkillsShown  = 15
	CVPreviewRunes  = 800

	formOverhead    = 1 << 20
	multipartMemory = 32 << 20
)

// AnalyzeResponse is the body returned by the analyze endpoints.
type AnalyzeResponse struct {
	RunID             string                     `json:"run_id"`
	Score             float64                    `json:"score"`
	Similarity        float64                    `json:"similarity"`
	Coverage          float64                    `json:"coverage"`
	Missing           []string                   `json:"missing"`
	Issues            []string                   `json:"issues"`
	Suggestions       []string                   `json:"suggestions"`
	Sections          types.SectionMap           `json:"sections"`
	HasPhone          bool                       `json:"has_phone"`
	HasEmail          bool                       `json:"has_email"`
	JobSkills         []string                   `json:"job_skills"`
	CVSkills          []string                   `json:"cv_skills"`
	Matched           []string                   `json:"matched"`
	JobAliasMap       map[string]string          `json:"job_alias_map"`
	CVAliasMap        map[string]string          `json:"cv_alias_map"`
	JobNoise          []string                   `json:"job_noise"`
	CVNoise           []string                   `json:"cv_noise"`
	MatchedByCategory map[string][]string        `json:"matched_by_category"`
	MissingByCategory map[string][]string        `json:"missing_by_category"`
	CVPreview         string                     `json:"cv_preview"`
	Company           *types.CompanyMeta         `json:"company,omitempty"`
	Profession        *types.ProfessionDetection `json:"profession,omitempty"`
	SessionToken      string                     `json:"session_token,omitempty"`
}

// NewAnalyzeResponse trims a report for display.
func NewAnalyzeResponse(report *pipeline.Report, cvText string) AnalyzeResponse {
	a := report.Analysis
	return AnalyzeResponse{
		RunID:             report.RunID,
		Score:             a.Score,
		Similarity:        round3(a.Similarity),
		Coverage:          round3(a.Coverage),
		Missing:           firstN(a.Missing, MaxMissingShown),
		Issues:            firstN(a.Issues, len(a.Issues)),
		Suggestions:       firstN(a.Suggestions, len(a.Suggestions)),
		Sections:          a.Sections,
		HasPhone:          a.HasPhone,
		HasEmail:          a.HasEmail,
		JobSkills:         firstN(report.JobSkills.Skills, MaxSkillsShown),
		CVSkills:          firstN(report.CVSkills.Skills, MaxSkillsShown),
		Matched:           firstN(report.Alignment.Matched, MaxSkillsShown),
		JobAliasMap:       nonNilMap(report.JobSkills.AliasMap),
		CVAliasMap:        nonNilMap(report.CVSkills.AliasMap),
		JobNoise:          firstN(report.JobSkills.Noise, len(report.JobSkills.Noise)),
		CVNoise:           firstN(report.CVSkills.Noise, len(report.CVSkills.Noise)),
		MatchedByCategory: skills.Categorize(report.Alignment.Matched),
		MissingByCategory: skills.Categorize(report.Alignment.Missing),
		CVPreview:         skills.Truncate(cvText, CVPreviewRunes),
	}
}

// handleAnalyze scores an uploaded résumé against a job posting and stores
// the result in the caller's session.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	opts, err := s.readAnalyzeForm(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sess, token, err := s.openSession(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := pipeline.RunPipeline(r.Context(), *opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp, err := s.recordResult(r.Context(), sess, result)
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp.SessionToken = token
	s.setSessionCookie(w, token)
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleAnalyzeStream runs the same analysis and streams progress via SSE.
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	opts, err := s.readAnalyzeForm(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sess, token, err := s.openSession(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	// The cookie must go out before the stream starts.
	s.setSessionCookie(w, token)

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts.OnProgress = func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("step", event); err != nil {
			s.log.Debug().Err(err).Msg("failed to write progress event")
		}
	}
	result, err := pipeline.RunPipeline(r.Context(), *opts)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}
	resp, err := s.recordResult(r.Context(), sess, result)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}
	resp.SessionToken = token
	if err := sse.WriteEvent("result", resp); err != nil {
		s.log.Debug().Err(err).Msg("failed to write result event")
		return
	}
	sse.WriteComplete(result.RunID, "completed")
}

// handleAnalyzeText scores two raw texts without touching the session.
func (s *Server) handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeTextRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, s.cfg.UploadLimit())).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	report, err := pipeline.Analyze(r.Context(), req.JobText, req.CVText, pipeline.Options{Client: s.client})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, NewAnalyzeResponse(report, req.CVText))
}

// readAnalyzeForm parses the multipart analyze request into run options.
func (s *Server) readAnalyzeForm(w http.ResponseWriter, r *http.Request) (*pipeline.RunOptions, error) {
	limit := s.cfg.UploadLimit()
	r.Body = http.MaxBytesReader(w, r.Body, limit+formOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return nil, ErrUploadTooLarge
		}
		return nil, &ErrValidation{Field: "form", Message: "expected multipart/form-data"}
	}

	jobURL := strings.TrimSpace(r.FormValue("job_url"))
	jobText := strings.TrimSpace(r.FormValue("job_text"))
	if jobURL == "" && jobText == "" {
		return nil, &ErrValidation{Field: "job_url", Message: "job_url or job_text is required"}
	}

	file, header, err := r.FormFile("cv")
	if err != nil {
		return nil, &ErrValidation{Field: "cv", Message: "résumé file is required"}
	}
	defer file.Close() //nolint:errcheck
	if header.Size > limit {
		return nil, ErrUploadTooLarge
	}
	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, &ErrValidation{Field: "cv", Message: "could not read uploaded file"}
	}
	if int64(len(data)) > limit {
		return nil, ErrUploadTooLarge
	}

	return &pipeline.RunOptions{
		Options:             pipeline.Options{Client: s.client},
		JobURL:              jobURL,
		JobText:             jobText,
		CVName:              header.Filename,
		CVData:              data,
		URL:                 s.urlOptions,
		ProfessionThreshold: s.cfg.ProfessionThreshold,
	}, nil
}

// recordResult stores the analysis in sess and builds the response.
func (s *Server) recordResult(ctx context.Context, sess *session.Session, result *pipeline.RunResult) (AnalyzeResponse, error) {
	profession := result.Profession
	sess.RecordAnalysis(result.JobText, result.CVText, result.Company, result.Report)
	sess.Profession = &profession
	if err := s.store.Save(ctx, sess); err != nil {
		return AnalyzeResponse{}, err
	}

	resp := NewAnalyzeResponse(result.Report, result.CVText)
	company := result.Company
	resp.Company = &company
	resp.Profession = &profession
	return resp, nil
}

// openSession returns the caller's session, or a new one when the request
// carries none, together with a freshly signed token for it.
func (s *Server) openSession(r *http.Request) (*session.Session, string, error) {
	var sess *session.Session
	if id, ok := middleware.SessionID(r); ok {
		existing, err := s.store.Get(r.Context(), id)
		switch {
		case err == nil:
			sess = existing
		case !errors.Is(err, session.ErrNotFound):
			return nil, "", err
		}
	}
	if sess == nil {
		sess = session.New()
	}

	if s.tokens == nil {
		return sess, "", nil
	}
	token, err := s.tokens.Issue(sess.ID)
	if err != nil {
		return nil, "", err
	}
	return sess, token, nil
}

// loadSession returns the caller's existing session.
func (s *Server) loadSession(r *http.Request) (*session.Session, error) {
	id, ok := middleware.SessionID(r)
	if !ok {
		return nil, ErrNoSession
	}
	return s.store.Get(r.Context(), id)
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	if token == "" {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.tokens.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

func firstN(items []string, n int) []string {
	if len(items) < n {
		n = len(items)
	}
	out := make([]string, n)
	copy(out, items[:n])
	return out
}

func nonNilMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
