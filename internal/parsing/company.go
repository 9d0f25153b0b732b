package parsing

import (
	"context"
	"strings"

	"github.com/jonathan/ats-coach/internal/llm"
	"github.com/jonathan/ats-coach/internal/schemas"
	"github.com/jonathan/ats-coach/internal/types"
)

// ExtractCompany pulls hiring-company metadata out of a job posting.
func ExtractCompany(ctx context.Context, client llm.Client, jobText string) (*types.CompanyMeta, error) {
	var meta types.CompanyMeta
	if err := extract(ctx, client, llm.CompanyMetaSchema(), schemas.CompanyMeta, jobText, &meta); err != nil {
		return nil, err
	}

	meta.Company = cleanOptional(meta.Company)
	meta.RoleTitle = cleanOptional(meta.RoleTitle)
	meta.Industry = cleanOptional(meta.Industry)
	meta.Location = cleanOptional(meta.Location)
	return &meta, nil
}

// cleanOptional trims a value and maps blanks and "null"-like placeholders to nil.
func cleanOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	switch strings.ToLower(v) {
	case "", "null", "none", "n/a", "unknown":
		return nil
	}
	return &v
}
