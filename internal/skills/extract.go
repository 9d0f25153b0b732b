package skills

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jonathan/ats-coach/internal/llm"
	"github.com/jonathan/ats-coach/internal/logger"
	"github.com/jonathan/ats-coach/internal/prompts"
	"github.com/jonathan/ats-coach/internal/types"
)

// MaxExtractRunes is how much of a document is sent for extraction.
const MaxExtractRunes = 2500

// Extractor pulls skill vocabularies out of free text with an LLM.
type Extractor struct {
	client llm.Client
}

// NewExtractor creates an extractor. A nil client disables extraction.
func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{client: client}
}

// Extract returns the skills mentioned in text. Any failure is logged and
// yields an empty result.
func (e *Extractor) Extract(ctx context.Context, text string) types.ExtractionResult {
	if strings.TrimSpace(text) == "" {
		return types.EmptyExtraction()
	}
	if e == nil || e.client == nil {
		logger.Debug().Str("component", "extractor").Msg("no LLM client configured, skipping extraction")
		return types.EmptyExtraction()
	}

	template := prompts.MustGet("skills.json", "extract-skills")
	prompt := prompts.Format(template, map[string]string{
		"Text": Truncate(text, MaxExtractRunes),
	})

	reply, err := e.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		logger.Warn().Str("component", "extractor").Err(err).Msg("skill extraction failed")
		return types.EmptyExtraction()
	}

	raw, err := llm.ParseLenient(reply)
	if err != nil {
		logger.Warn().Str("component", "extractor").Err(err).Int("reply_len", len(reply)).Msg("unparseable extraction reply")
		return types.EmptyExtraction()
	}

	return Coerce(raw)
}

// Coerce turns a decoded model reply into an ExtractionResult.
// Objects contribute their skills, alias_map and noise fields; a bare array is
// taken as the skill list; anything else yields an empty result.
func Coerce(raw json.RawMessage) types.ExtractionResult {
	result := types.EmptyExtraction()

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return result
	}

	switch v := value.(type) {
	case map[string]any:
		result.Skills = Dedupe(toStrings(v["skills"]))
		result.Noise = compact(toStrings(v["noise"]))
		if aliasMap, ok := v["alias_map"].(map[string]any); ok {
			for variant, target := range aliasMap {
				variant = strings.TrimSpace(variant)
				preferred := strings.TrimSpace(stringify(target))
				if variant != "" && preferred != "" {
					result.AliasMap[variant] = preferred
				}
			}
		}
	case []any:
		result.Skills = Dedupe(toStrings(v))
	}

	return result
}

// toStrings flattens a JSON value into a string list. A lone string is a one-item list.
func toStrings(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			out = append(out, stringify(item))
		}
		return out
	default:
		return []string{stringify(v)}
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
