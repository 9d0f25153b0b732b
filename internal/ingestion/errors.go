// Package ingestion turns job postings and résumé documents into clean text.
package ingestion

import "errors"

var (
	// ErrInvalidURL is returned when a job URL is malformed
	ErrInvalidURL = errors.New("invalid URL")
	// ErrHTTPRequestFailed is returned when the job page cannot be downloaded
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text can be pulled from a page
	ErrContentExtractionFailed = errors.New("content extraction failed")
	// ErrUnsupportedDocument is returned for résumé files that are not PDF, DOCX or plain text
	ErrUnsupportedDocument = errors.New("unsupported document type")
	// ErrEmptyDocument is returned when a document yields no text
	ErrEmptyDocument = errors.New("no text could be extracted from the document")
)
