// Package types provides type definitions for structured data used throughout the ATS coach.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ProfessionOverrideRequest replaces a detected profession with a user-supplied one.
type ProfessionOverrideRequest struct {
	Name         string   `json:"name" validate:"required,max=100"`
	DisplayName  string   `json:"display_name" validate:"required,max=200"`
	Description  string   `json:"description" validate:"required,max=1000"`
	Keywords     []string `json:"keywords" validate:"omitempty,max=50,dive,max=100"`
	Technologies []string `json:"technologies" validate:"omitempty,max=50,dive,max=100"`
}

// ChatRequest is a coach question.
type ChatRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
}

// AnalyzeTextRequest carries raw texts for the JSON analysis endpoint.
type AnalyzeTextRequest struct {
	JobText string `json:"job_text" validate:"required"`
	CVText  string `json:"cv_text" validate:"required"`
}

// Validate validates the ProfessionOverrideRequest using the validator.
func (r *ProfessionOverrideRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ChatRequest using the validator.
func (r *ChatRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the AnalyzeTextRequest using the validator.
func (r *AnalyzeTextRequest) Validate() error {
	return validate.Struct(r)
}

// Profile converts the request into a profession profile.
func (r *ProfessionOverrideRequest) Profile() ProfessionProfile {
	keywords := r.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	technologies := r.Technologies
	if technologies == nil {
		technologies = []string{}
	}
	return ProfessionProfile{
		Name:         r.Name,
		DisplayName:  r.DisplayName,
		Description:  r.Description,
		Keywords:     keywords,
		Technologies: technologies,
	}
}
