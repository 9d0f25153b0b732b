package ingestion

import (
	"context"
	"fmt"

	"github.com/jonathan/ats-coach/internal/fetch"
	"github.com/jonathan/ats-coach/internal/logger"
)

// URLOptions controls job page ingestion.
type URLOptions struct {
	Fetch *fetch.Options
	// Render is used when the downloaded page yields too little text.
	// Nil disables the headless fallback.
	Render fetch.Renderer
}

// IngestFromURL downloads a job posting and reduces it to one cleaned string.
// Board-specific selectors are used when the platform is recognized.
func IngestFromURL(ctx context.Context, rawURL string, opts URLOptions) (string, *Metadata, error) {
	log := logger.Component("ingestion")

	if _, err := fetch.ValidateURL(rawURL); err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	platform := fetch.DetectPlatform(rawURL)
	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)
	log.Debug().Str("url", rawURL).Str("platform", string(platform)).Msg("fetching job posting")

	var text string
	result, err := fetch.URL(ctx, rawURL, opts.Fetch)
	if err != nil {
		// A failed download may still be recoverable by rendering the page.
		if opts.Render == nil {
			return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
		}
		log.Warn().Err(err).Str("url", rawURL).Msg("HTTP fetch failed, trying browser")
	} else {
		text, err = fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
		}
	}

	rendered := false
	if opts.Render != nil && fetch.ShouldUseBrowser(text) {
		html, renderErr := opts.Render(ctx, rawURL)
		if renderErr != nil {
			log.Warn().Err(renderErr).Str("url", rawURL).Msg("browser rendering failed")
		} else {
			renderedText, extractErr := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
			if extractErr == nil && len([]rune(renderedText)) > len([]rune(text)) {
				text = renderedText
				rendered = true
			}
		}
	}

	if text == "" {
		if result == nil {
			return "", nil, fmt.Errorf("%w: page could not be downloaded or rendered", ErrHTTPRequestFailed)
		}
		return "", nil, fmt.Errorf("%w: page contains no text", ErrContentExtractionFailed)
	}

	meta := NewMetadata(text, SourceURL)
	meta.URL = rawURL
	meta.Platform = string(platform)
	meta.Rendered = rendered
	log.Debug().Int("chars", meta.Chars).Bool("rendered", rendered).Msg("job posting ingested")
	return text, meta, nil
}
