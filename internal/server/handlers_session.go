package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/ats-coach/internal/llm"
	"github.com/jonathan/ats-coach/internal/parsing"
	"github.com/jonathan/ats-coach/internal/session"
	"github.com/jonathan/ats-coach/internal/skills"
	"github.com/jonathan/ats-coach/internal/types"
)

// ChatRetryMillis is the reconnect delay sent to chat clients.
const ChatRetryMillis = 10000

type chatChunk struct {
	Content string `json:"content"`
	Done    bool   `json:"done"`
}

type chatEnd struct {
	Error string `json:"error,omitempty"`
	Done  bool   `json:"done"`
}

// StatusResponse describes the service and the caller's session.
type StatusResponse struct {
	Status           string   `json:"status"`
	Version          string   `json:"version"`
	HasSession       bool     `json:"has_session"`
	HasAnalysis      bool     `json:"has_analysis"`
	Profession       string   `json:"profession,omitempty"`
	Confidence       float64  `json:"confidence"`
	NeedsManualInput bool     `json:"needs_manual_input"`
	Score            *float64 `json:"score,omitempty"`
	LLMProvider      string   `json:"llm_provider"`
	LLMModel         string   `json:"llm_model,omitempty"`
}

// ProfessionResponse is returned after a manual profession override.
type ProfessionResponse struct {
	Profession   types.ProfessionDetection `json:"profession"`
	SessionToken string                    `json:"session_token,omitempty"`
}

// handleChat streams a coach answer to ?question= as unnamed SSE events.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	req := types.ChatRequest{Question: strings.TrimSpace(r.URL.Query().Get("question"))}
	if err := req.Validate(); err != nil {
		s.writeError(w, &ErrValidation{Field: "question", Message: "question is required (max 2000 characters)"})
		return
	}

	sess, err := s.loadSession(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !sess.HasAnalysis() {
		s.writeError(w, ErrAnalysisRequired)
		return
	}
	if sess.NeedsManualProfession() {
		s.writeError(w, ErrProfessionRequired)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := sse.WriteRetry(ChatRetryMillis); err != nil {
		return
	}

	err = s.coach.Stream(r.Context(), sess.CoachInput(req.Question), func(chunk string) error {
		return sse.WriteData(chatChunk{Content: chunk})
	})
	if err != nil {
		sse.WriteData(chatEnd{Error: err.Error(), Done: true}) //nolint:errcheck
		return
	}
	sse.WriteData(chatEnd{Done: true}) //nolint:errcheck
}

// handleProfessionOverride replaces the detected profession with the user's choice.
func (s *Server) handleProfessionOverride(w http.ResponseWriter, r *http.Request) {
	var req types.ProfessionOverrideRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	detection, err := parsing.Override(&req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	sess, token, err := s.openSession(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sess.Profession = detection
	if err := s.store.Save(r.Context(), sess); err != nil {
		s.writeError(w, err)
		return
	}

	s.setSessionCookie(w, token)
	s.jsonResponse(w, http.StatusOK, ProfessionResponse{Profession: *detection, SessionToken: token})
}

// handleStatus reports service health and the caller's session state.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Status:      "ok",
		Version:     s.version,
		LLMProvider: string(s.cfg.LLMProvider),
	}
	if s.client != nil {
		resp.LLMModel = s.client.GetModel(llm.TierAdvanced)
	}

	sess, err := s.loadSession(r)
	switch {
	case err == nil:
		resp.HasSession = true
		resp.HasAnalysis = sess.HasAnalysis()
		resp.NeedsManualInput = sess.NeedsManualProfession()
		if sess.Profession != nil {
			resp.Profession = sess.Profession.Profile.DisplayName
			resp.Confidence = sess.Profession.Confidence
		}
		if resp.HasAnalysis {
			score := sess.Score
			resp.Score = &score
		}
	case errors.Is(err, ErrNoSession), errors.Is(err, session.ErrNotFound):
	default:
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleProfessions lists the built-in professions for manual selection.
func (s *Server) handleProfessions(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"professions": parsing.ProfessionsByDisplayName(),
	})
}

// handleSkills returns the technology catalog.
func (s *Server) handleSkills(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"categories": skills.Catalog,
		"total":      skills.CatalogSize(),
	})
}
