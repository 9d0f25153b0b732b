package ingestion

import (
	"context"

	"github.com/jonathan/ats-coach/internal/llm"
	"github.com/jonathan/ats-coach/internal/logger"
	"github.com/jonathan/ats-coach/internal/parsing"
	"github.com/jonathan/ats-coach/internal/types"
)

// ExtractCompany asks the LLM for hiring-company metadata and records it on meta.
// Failures are logged and yield empty metadata.
func ExtractCompany(ctx context.Context, client llm.Client, jobText string, meta *Metadata) types.CompanyMeta {
	company, err := parsing.ExtractCompany(ctx, client, jobText)
	if err != nil {
		logger.Warn().Str("component", "company").Err(err).Msg("company extraction failed, continuing without it")
		company = &types.CompanyMeta{}
	}
	if meta != nil && !company.IsEmpty() {
		meta.Company = company
	}
	return *company
}
