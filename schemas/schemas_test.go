package schemas_test

import (
	"encoding/json"
	"io/fs"
	"testing"

	"github.com/jonathan/ats-coach/internal/schemas"
	rootschemas "github.com/jonathan/ats-coach/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	files, err := fs.Glob(rootschemas.Files, "*.schema.json")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"alignment.schema.json",
		"analysis_result.schema.json",
		"company_meta.schema.json",
		"profession.schema.json",
	}, files)

	for _, schemaFile := range files {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := rootschemas.Files.ReadFile(schemaFile)
			require.NoError(t, err)

			var v map[string]any
			require.NoError(t, json.Unmarshal(data, &v), "schema file should be valid JSON")
			assert.Equal(t, "object", v["type"])
		})
	}
}

func TestAnalysisResultSchema(t *testing.T) {
	valid := `{
		"similarity": 0.42, "coverage": 0.667, "score": 61.3,
		"issues": [], "missing": ["AWS"], "suggestions": ["Quantify achievements"],
		"sections": {"contact": true, "summary": false, "experience": true,
		             "education": true, "skills": true, "certifications": false},
		"has_phone": false, "has_email": true
	}`
	assert.NoError(t, schemas.Validate(schemas.AnalysisResult, valid))

	outOfRange := `{
		"similarity": 0.4, "coverage": 0.5, "score": 140,
		"issues": [], "missing": [], "suggestions": [],
		"sections": {"contact": true, "summary": true, "experience": true,
		             "education": true, "skills": true, "certifications": true}
	}`
	assert.Error(t, schemas.Validate(schemas.AnalysisResult, outOfRange))

	extraSection := `{
		"similarity": 0.4, "coverage": 0.5, "score": 40,
		"issues": [], "missing": [], "suggestions": [],
		"sections": {"contact": true, "summary": true, "experience": true,
		             "education": true, "skills": true, "certifications": true, "hobbies": true}
	}`
	assert.Error(t, schemas.Validate(schemas.AnalysisResult, extraSection))
}
