package parsing

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/ats-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectProfession(t *testing.T) {
	tests := []struct {
		name       string
		reply      string
		wantName   string
		wantManual bool
		wantConf   float64
	}{
		{
			name: "confident detection",
			reply: `{"name": "Backend Developer", "display_name": "Backend Developer", "description": "Builds APIs",
				"keywords": ["api", "API"], "technologies": ["Go", "PostgreSQL"], "seniority": "Senior", "confidence": 0.85}`,
			wantName:   "backend_developer",
			wantManual: false,
			wantConf:   0.85,
		},
		{
			name:       "low confidence",
			reply:      `{"name": "consultant", "confidence": 0.4}`,
			wantName:   "consultant",
			wantManual: true,
			wantConf:   0.4,
		},
		{
			name:       "unknown name",
			reply:      `{"name": "unknown", "confidence": 0.9}`,
			wantName:   types.UnknownProfession,
			wantManual: true,
			wantConf:   0.9,
		},
		{
			name:       "exactly at threshold",
			reply:      `{"name": "accountant", "confidence": 0.6}`,
			wantName:   "accountant",
			wantManual: false,
			wantConf:   0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			det, err := DetectProfession(context.Background(), &stubClient{reply: tt.reply}, "résumé", DefaultConfidenceThreshold)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, det.Profile.Name)
			assert.Equal(t, tt.wantManual, det.NeedsManualInput)
			assert.Equal(t, tt.wantConf, det.Confidence)
			assert.NotEmpty(t, det.Profile.DisplayName)
			assert.NotNil(t, det.Profile.Keywords)
		})
	}
}

func TestDetectProfession_NormalizesLists(t *testing.T) {
	reply := `{"name": "backend_developer", "display_name": "Backend Developer", "description": "x",
		"keywords": ["api", "API", " "], "technologies": ["Go"], "seniority": " Senior ", "confidence": 0.9}`
	det, err := DetectProfession(context.Background(), &stubClient{reply: reply}, "cv", 0.6)
	require.NoError(t, err)

	assert.Equal(t, []string{"api"}, det.Profile.Keywords)
	assert.Equal(t, "senior", det.Profile.Seniority)
}

func TestDetectProfession_Errors(t *testing.T) {
	_, err := DetectProfession(context.Background(), &stubClient{err: errors.New("timeout")}, "cv", 0.6)
	var apiErr *APICallError
	assert.ErrorAs(t, err, &apiErr)

	_, err = DetectProfession(context.Background(), &stubClient{reply: `{"name": "x", "confidence": 3}`}, "cv", 0.6)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestUnknownDetection(t *testing.T) {
	det := UnknownDetection()
	assert.Equal(t, types.UnknownProfession, det.Profile.Name)
	assert.True(t, det.NeedsManualInput)
	assert.Equal(t, 0.0, det.Confidence)
}

func TestOverride(t *testing.T) {
	det, err := Override(&types.ProfessionOverrideRequest{
		Name:         "Tile Setter",
		DisplayName:  " Tile Setter ",
		Description:  "Installs ceramic tile",
		Technologies: []string{"grout", "Grout"},
	})
	require.NoError(t, err)

	assert.Equal(t, "tile_setter", det.Profile.Name)
	assert.Equal(t, "Tile Setter", det.Profile.DisplayName)
	assert.Equal(t, []string{"grout"}, det.Profile.Technologies)
	assert.Equal(t, []string{}, det.Profile.Keywords)
	assert.Equal(t, 1.0, det.Confidence)
	assert.False(t, det.NeedsManualInput)
}

func TestOverride_Invalid(t *testing.T) {
	tests := []struct {
		name string
		req  types.ProfessionOverrideRequest
	}{
		{"missing name", types.ProfessionOverrideRequest{DisplayName: "X", Description: "Y"}},
		{"missing display name", types.ProfessionOverrideRequest{Name: "x", Description: "Y"}},
		{"missing description", types.ProfessionOverrideRequest{Name: "x", DisplayName: "X"}},
		{"symbol-only name", types.ProfessionOverrideRequest{Name: "--", DisplayName: "X", Description: "Y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Override(&tt.req)
			var valErr *ValidationError
			assert.ErrorAs(t, err, &valErr)
		})
	}
}

func TestCatalog(t *testing.T) {
	sorted := ProfessionsByDisplayName()
	require.Len(t, sorted, len(Professions))
	for i := 1; i < len(sorted); i++ {
		assert.LessOrEqual(t, sorted[i-1].DisplayName, sorted[i].DisplayName)
	}

	p, ok := LookupProfession("Backend Developer")
	require.True(t, ok)
	assert.Equal(t, "backend_developer", p.Name)

	_, ok = LookupProfession("astronaut")
	assert.False(t, ok)
}

func TestErrorMessages(t *testing.T) {
	cause := errors.New("connection refused")

	apiErr := &APICallError{Extraction: "profession", Message: "LLM request failed", Cause: cause}
	assert.Equal(t, "profession: LLM request failed: connection refused", apiErr.Error())
	assert.ErrorIs(t, apiErr, cause)

	parseErr := &ParseError{Extraction: "company_meta", Message: "no JSON found"}
	assert.Equal(t, "company_meta reply rejected: no JSON found", parseErr.Error())

	assert.Equal(t, "invalid profession name: empty", (&ValidationError{Field: "name", Message: "empty"}).Error())
	assert.Equal(t, "invalid profession: bad", (&ValidationError{Message: "bad"}).Error())
}
