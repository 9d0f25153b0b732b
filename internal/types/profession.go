// Package types provides type definitions for structured data used throughout the ATS coach.
//
//nolint:revive // types is a standard Go package name pattern
package types

// UnknownProfession is the profile name used when detection fails.
const UnknownProfession = "unknown"

// ProfessionProfile describes the candidate's primary profession.
type ProfessionProfile struct {
	Name         string   `json:"name"`
	DisplayName  string   `json:"display_name"`
	Description  string   `json:"description"`
	Keywords     []string `json:"keywords"`
	Technologies []string `json:"technologies"`
	Seniority    string   `json:"seniority,omitempty"`
}

// ProfessionDetection is a detected profile with the detector's confidence.
type ProfessionDetection struct {
	Profile          ProfessionProfile `json:"profile"`
	Confidence       float64           `json:"confidence"`
	NeedsManualInput bool              `json:"needs_manual_input"`
}

// CompanyMeta is metadata about the hiring company extracted from a job posting.
// Nil fields are unknown.
type CompanyMeta struct {
	Company   *string `json:"company"`
	RoleTitle *string `json:"role_title"`
	Industry  *string `json:"industry"`
	Location  *string `json:"location"`
}

// IsEmpty reports whether no field is known.
func (c CompanyMeta) IsEmpty() bool {
	return c.Company == nil && c.RoleTitle == nil && c.Industry == nil && c.Location == nil
}
