// Package parsing extracts company metadata from job postings and detects the
// candidate's profession from a résumé using LLM extraction.
package parsing

import (
	"context"
	"encoding/json"

	"github.com/jonathan/ats-coach/internal/llm"
	"github.com/jonathan/ats-coach/internal/schemas"
	"github.com/jonathan/ats-coach/internal/skills"
)

// MaxInputRunes is how much of a document is sent for metadata extraction.
const MaxInputRunes = 4000

// extract runs one schema-guided extraction and decodes the validated reply into out.
func extract(ctx context.Context, client llm.Client, schema llm.ExtractionSchema, schemaFile, text string, out any) error {
	if client == nil {
		return &APICallError{Extraction: schema.Name, Message: "LLM client is not configured"}
	}

	prompt := llm.BuildExtractionPrompt(schema, skills.Truncate(text, MaxInputRunes))
	reply, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return &APICallError{
			Extraction: schema.Name,
			Message:    "LLM request failed",
			Cause:      err,
		}
	}

	raw, err := llm.ParseLenient(reply)
	if err != nil {
		return &ParseError{Extraction: schema.Name, Message: "no JSON found", Cause: err}
	}
	if err := schemas.Validate(schemaFile, string(raw)); err != nil {
		return &ParseError{Extraction: schema.Name, Message: "schema mismatch", Cause: err}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ParseError{Extraction: schema.Name, Message: "cannot decode", Cause: err}
	}
	return nil
}
