package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
	"unicode/utf8"

	"github.com/jonathan/ats-coach/internal/types"
)

// Where a text came from.
const (
	SourceURL      = "url"
	SourceFile     = "file"
	SourceText     = "text"
	SourceDocument = "document"
)

// Metadata describes an ingested text.
type Metadata struct {
	Source    string             `json:"source"`
	URL       string             `json:"url,omitempty"`
	Path      string             `json:"path,omitempty"`
	Platform  string             `json:"platform,omitempty"`
	Rendered  bool               `json:"rendered,omitempty"`
	Timestamp string             `json:"timestamp"`
	Hash      string             `json:"hash"`
	Chars     int                `json:"chars"`
	Company   *types.CompanyMeta `json:"company,omitempty"`
}

// NewMetadata stamps content with its hash, length and the current time.
func NewMetadata(content, source string) *Metadata {
	return &Metadata{
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		Chars:     utf8.RuneCountInString(content),
	}
}

func computeHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
