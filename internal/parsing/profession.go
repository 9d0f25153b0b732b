package parsing

import (
	"context"
	"strings"

	"github.com/jonathan/ats-coach/internal/llm"
	"github.com/jonathan/ats-coach/internal/schemas"
	"github.com/jonathan/ats-coach/internal/types"
)

// DefaultConfidenceThreshold is the confidence below which the user is asked to enter a profession.
const DefaultConfidenceThreshold = 0.6

type professionReply struct {
	types.ProfessionProfile
	Confidence float64 `json:"confidence"`
}

// UnknownDetection is the result used when no profession could be detected.
func UnknownDetection() types.ProfessionDetection {
	return types.ProfessionDetection{
		Profile: types.ProfessionProfile{
			Name:         types.UnknownProfession,
			DisplayName:  "Unknown",
			Description:  "Profession could not be detected",
			Keywords:     []string{},
			Technologies: []string{},
		},
		Confidence:       0,
		NeedsManualInput: true,
	}
}

// DetectProfession infers the candidate's primary profession from résumé text.
// NeedsManualInput is set when confidence is below threshold or the name is unknown.
func DetectProfession(ctx context.Context, client llm.Client, cvText string, threshold float64) (*types.ProfessionDetection, error) {
	var reply professionReply
	if err := extract(ctx, client, llm.ProfessionSchema(), schemas.Profession, cvText, &reply); err != nil {
		return nil, err
	}

	detection := UnknownDetection()
	profile := reply.ProfessionProfile
	if name := NormalizeProfessionName(profile.Name); name != "" {
		detection.Profile.Name = name
	}
	if v := strings.TrimSpace(profile.DisplayName); v != "" {
		detection.Profile.DisplayName = v
	}
	if v := strings.TrimSpace(profile.Description); v != "" {
		detection.Profile.Description = v
	}
	detection.Profile.Keywords = NormalizeTerms(profile.Keywords)
	detection.Profile.Technologies = NormalizeTerms(profile.Technologies)
	detection.Profile.Seniority = strings.ToLower(strings.TrimSpace(profile.Seniority))
	detection.Confidence = reply.Confidence
	detection.NeedsManualInput = reply.Confidence < threshold || detection.Profile.Name == types.UnknownProfession

	return &detection, nil
}

// Override builds a detection from a user-supplied profile with full confidence.
func Override(req *types.ProfessionOverrideRequest) (*types.ProfessionDetection, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	profile := req.Profile()
	profile.Name = NormalizeProfessionName(profile.Name)
	if profile.Name == "" {
		return nil, &ValidationError{Field: "name", Message: "name must contain letters or digits"}
	}
	profile.DisplayName = strings.TrimSpace(profile.DisplayName)
	profile.Description = strings.TrimSpace(profile.Description)
	profile.Keywords = NormalizeTerms(profile.Keywords)
	profile.Technologies = NormalizeTerms(profile.Technologies)

	return &types.ProfessionDetection{
		Profile:          profile,
		Confidence:       1.0,
		NeedsManualInput: false,
	}, nil
}
