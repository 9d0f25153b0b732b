package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-coach/internal/server/middleware"
	"github.com/jonathan/ats-coach/internal/session"
)

func chatRequest(question, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/chat?question="+url.QueryEscape(question), nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func overrideRequest(body, token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/profession/override", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestChat_Streams(t *testing.T) {
	client := &stubClient{profession: confidentProfession, chunks: []string{"Add ", "AWS projects."}}
	s := newTestServer(client)
	token := analyze(t, s).SessionToken

	rec := serve(s, chatRequest("How can I improve?", token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	want := "retry: 10000\n\n" +
		"data: {\"content\":\"Add \",\"done\":false}\n\n" +
		"data: {\"content\":\"AWS projects.\",\"done\":false}\n\n" +
		"data: {\"done\":true}\n\n"
	assert.Equal(t, want, rec.Body.String())

	assert.Contains(t, client.system, `Acme hiring for "Backend Engineer"`)
	assert.Contains(t, client.streamed, "How can I improve?")
	assert.Contains(t, client.streamed, "Backend Developer")
}

func TestChat_StreamError(t *testing.T) {
	client := &stubClient{profession: confidentProfession, chunks: []string{"partial"}, streamErr: errors.New("model went away")}
	s := newTestServer(client)
	token := analyze(t, s).SessionToken

	rec := serve(s, chatRequest("Hello?", token))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"content":"partial"`)
	assert.True(t, strings.HasSuffix(body, "\"done\":true}\n\n"))
	assert.Contains(t, body, `"error":"coach stream failed: model went away"`)
}

func TestChat_Preconditions(t *testing.T) {
	client := &stubClient{profession: unsureProfession}
	s := newTestServer(client)
	token := analyze(t, s).SessionToken

	orphan, err := s.tokens.Issue(uuid.New())
	require.NoError(t, err)

	empty := session.New()
	require.NoError(t, s.store.Save(context.Background(), empty))
	emptyToken, err := s.tokens.Issue(empty.ID)
	require.NoError(t, err)

	tests := []struct {
		name     string
		question string
		token    string
		want     int
	}{
		{"no question", "", token, http.StatusBadRequest},
		{"question too long", strings.Repeat("a", 2001), token, http.StatusBadRequest},
		{"no session", "Hi", "", http.StatusUnauthorized},
		{"invalid token", "Hi", "garbage", http.StatusUnauthorized},
		{"expired session", "Hi", orphan, http.StatusNotFound},
		{"no analysis", "Hi", emptyToken, http.StatusConflict},
		{"profession unconfirmed", "Hi", token, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(s, chatRequest(tt.question, tt.token))
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decode[map[string]string](t, rec)["error"])
		})
	}
}

func TestProfessionOverride_UnlocksChat(t *testing.T) {
	client := &stubClient{profession: unsureProfession, chunks: []string{"ok"}}
	s := newTestServer(client)
	analysis := analyze(t, s)
	require.True(t, analysis.Profession.NeedsManualInput)

	body := `{"name": "Data Engineer", "display_name": "Data Engineer", "description": "Builds data pipelines", "keywords": ["ETL", "etl"], "technologies": ["Spark"]}`
	rec := serve(s, overrideRequest(body, analysis.SessionToken))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[ProfessionResponse](t, rec)
	assert.Equal(t, "data_engineer", resp.Profession.Profile.Name)
	assert.Equal(t, 1.0, resp.Profession.Confidence)
	assert.False(t, resp.Profession.NeedsManualInput)
	assert.Equal(t, []string{"ETL"}, resp.Profession.Profile.Keywords)

	rec = serve(s, chatRequest("What next?", resp.SessionToken))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"content":"ok"`)
}

func TestProfessionOverride_Errors(t *testing.T) {
	s := newTestServer(nil)

	rec := serve(s, overrideRequest(`{"name": "x"}`, ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(s, overrideRequest(`{"name": "!!!", "display_name": "X", "description": "Y"}`, ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(s, overrideRequest(`not json`, ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfessionOverride_CreatesSession(t *testing.T) {
	s := newTestServer(nil)
	rec := serve(s, overrideRequest(`{"name": "designer", "display_name": "Designer", "description": "Designs products"}`, ""))
	require.Equal(t, http.StatusOK, rec.Code)

	token := decode[ProfessionResponse](t, rec).SessionToken
	require.NotEmpty(t, token)
	id, err := s.tokens.Parse(token)
	require.NoError(t, err)
	sess, err := s.store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, sess.NeedsManualProfession())
	assert.False(t, sess.HasAnalysis())
}

func TestStatus(t *testing.T) {
	s := newTestServer(&stubClient{profession: confidentProfession})

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	anon := decode[StatusResponse](t, rec)
	assert.Equal(t, "ok", anon.Status)
	assert.Equal(t, "test", anon.Version)
	assert.Equal(t, "ollama", anon.LLMProvider)
	assert.Equal(t, "stub-model", anon.LLMModel)
	assert.False(t, anon.HasSession)
	assert.Nil(t, anon.Score)

	token := analyze(t, s).SessionToken
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: token})
	rec = serve(s, req)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[StatusResponse](t, rec)
	assert.True(t, status.HasSession)
	assert.True(t, status.HasAnalysis)
	assert.Equal(t, "Backend Developer", status.Profession)
	assert.Equal(t, 0.92, status.Confidence)
	assert.False(t, status.NeedsManualInput)
	require.NotNil(t, status.Score)
}
