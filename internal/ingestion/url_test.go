package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobServer(t *testing.T, status int, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestIngestFromURL(t *testing.T) {
	server := jobServer(t, http.StatusOK, `<!DOCTYPE html><html><body>
		<nav>Nav</nav>
		<main><h1>Senior Software Engineer</h1>
			<h2>Requirements</h2><ul><li>Go experience</li><li>Distributed systems</li></ul>
		</main>
		<footer>Footer</footer>
	</body></html>`)

	text, meta, err := IngestFromURL(context.Background(), server.URL, URLOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Senior Software Engineer Requirements Go experience Distributed systems", text)
	assert.Equal(t, SourceURL, meta.Source)
	assert.Equal(t, server.URL, meta.URL)
	assert.Equal(t, "unknown", meta.Platform)
	assert.False(t, meta.Rendered)
}

func TestIngestFromURL_InvalidURL(t *testing.T) {
	_, _, err := IngestFromURL(context.Background(), "not a url", URLOptions{})
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestIngestFromURL_HTTPError(t *testing.T) {
	server := jobServer(t, http.StatusInternalServerError, "oops")

	_, _, err := IngestFromURL(context.Background(), server.URL, URLOptions{})
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
	assert.Contains(t, err.Error(), "500")
}

func TestIngestFromURL_EmptyPage(t *testing.T) {
	server := jobServer(t, http.StatusOK, "<html><body><script>render()</script></body></html>")

	_, _, err := IngestFromURL(context.Background(), server.URL, URLOptions{})
	assert.ErrorIs(t, err, ErrContentExtractionFailed)
}

func TestIngestFromURL_BrowserFallback(t *testing.T) {
	server := jobServer(t, http.StatusOK, `<html><body><div id="root">Loading...</div></body></html>`)
	posting := strings.Repeat("We need a Go engineer with Kafka. ", 20)

	var renderedURL string
	render := func(_ context.Context, url string) (string, error) {
		renderedURL = url
		return `<html><body><div class="job-description">` + posting + `</div></body></html>`, nil
	}

	text, meta, err := IngestFromURL(context.Background(), server.URL, URLOptions{Render: render})
	require.NoError(t, err)
	assert.Equal(t, server.URL, renderedURL)
	assert.Equal(t, strings.TrimSpace(posting), text)
	assert.True(t, meta.Rendered)
}

func TestIngestFromURL_BrowserFailureKeepsHTTPText(t *testing.T) {
	server := jobServer(t, http.StatusOK, `<html><body><main>Short Go posting</main></body></html>`)
	render := func(context.Context, string) (string, error) {
		return "", errors.New("chrome not installed")
	}

	text, meta, err := IngestFromURL(context.Background(), server.URL, URLOptions{Render: render})
	require.NoError(t, err)
	assert.Equal(t, "Short Go posting", text)
	assert.False(t, meta.Rendered)
}

func TestIngestFromURL_BrowserAfterHTTPFailure(t *testing.T) {
	server := jobServer(t, http.StatusForbidden, "blocked")
	render := func(context.Context, string) (string, error) {
		return `<html><body><p>Rendered Go posting</p></body></html>`, nil
	}

	text, meta, err := IngestFromURL(context.Background(), server.URL, URLOptions{Render: render})
	require.NoError(t, err)
	assert.Equal(t, "Rendered Go posting", text)
	assert.True(t, meta.Rendered)
}
