// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "CompanyMeta", "Profession")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "map[string]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	// System description
	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	// Output schema
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	// Instructions
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Base every value on the text; do not invent facts.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	// Input text
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// CompanyMetaSchema returns the extraction schema for hiring-company metadata in a job posting.
func CompanyMetaSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "CompanyMeta",
		Description: `You are an expert job posting parser.
Identify the hiring company and the advertised role. Use null for anything the posting does not state.`,
		Fields: []SchemaField{
			{
				Name:        "company",
				Type:        "\"string\" | null",
				Description: "Hiring company name",
			},
			{
				Name:        "role_title",
				Type:        "\"string\" | null",
				Description: "Job title as written in the posting",
			},
			{
				Name:        "industry",
				Type:        "\"string\" | null",
				Description: "Industry or sector of the company",
			},
			{
				Name:        "location",
				Type:        "\"string\" | null",
				Description: "City, country or remote policy",
			},
		},
	}
}

// ProfessionSchema returns the extraction schema for detecting a candidate's profession from a résumé.
func ProfessionSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "Profession",
		Description: `You are an experienced technical recruiter.
Determine the candidate's primary profession from their résumé. If it cannot be determined, use "unknown" as the name and a confidence below 0.5.`,
		Fields: []SchemaField{
			{
				Name:        "name",
				Type:        "\"string\"",
				Description: "Short snake_case identifier, e.g. backend_developer",
				Required:    true,
			},
			{
				Name:        "display_name",
				Type:        "\"string\"",
				Description: "Human-readable profession name",
				Required:    true,
			},
			{
				Name:        "description",
				Type:        "\"string\"",
				Description: "One sentence describing the profession",
				Required:    true,
			},
			{
				Name:        "keywords",
				Type:        "[\"string\"]",
				Description: "Domain keywords typical for this profession",
			},
			{
				Name:        "technologies",
				Type:        "[\"string\"]",
				Description: "Tools and technologies the candidate uses",
			},
			{
				Name:        "seniority",
				Type:        "\"junior\" | \"mid\" | \"senior\" | \"lead\"",
				Description: "Seniority level inferred from experience",
			},
			{
				Name:        "confidence",
				Type:        "number",
				Description: "Confidence between 0 and 1",
				Required:    true,
			},
		},
	}
}
