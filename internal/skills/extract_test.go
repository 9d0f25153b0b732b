package skills

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		skills   []string
		aliasMap map[string]string
		noise    []string
	}{
		{
			name:     "bare list deduped by key",
			raw:      `["Python","python","PYTHON "]`,
			skills:   []string{"Python"},
			aliasMap: map[string]string{},
			noise:    []string{},
		},
		{
			name:     "full object",
			raw:      `{"skills":["Go","golang","Kubernetes"],"alias_map":{"k8s":"Kubernetes"},"noise":["team player"],"confidence":0.8}`,
			skills:   []string{"Go", "Kubernetes"},
			aliasMap: map[string]string{"k8s": "Kubernetes"},
			noise:    []string{"team player"},
		},
		{
			name:     "null fields",
			raw:      `{"skills":null,"alias_map":null,"noise":null}`,
			skills:   []string{},
			aliasMap: map[string]string{},
			noise:    []string{},
		},
		{
			name:     "non-string entries are stringified",
			raw:      `{"skills":["SQL", 3, true, null, {"name":"x"}]}`,
			skills:   []string{"SQL", "3", "true", `{"name":"x"}`},
			aliasMap: map[string]string{},
			noise:    []string{},
		},
		{
			name:     "single string skill",
			raw:      `{"skills":"Terraform"}`,
			skills:   []string{"Terraform"},
			aliasMap: map[string]string{},
			noise:    []string{},
		},
		{
			name:     "scalar reply",
			raw:      `42`,
			skills:   []string{},
			aliasMap: map[string]string{},
			noise:    []string{},
		},
		{
			name:     "empty entries dropped",
			raw:      `{"skills":["", "  ", "Docker"],"noise":["", " misc "],"alias_map":{" ":"x","js":""}}`,
			skills:   []string{"Docker"},
			aliasMap: map[string]string{},
			noise:    []string{"misc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Coerce(json.RawMessage(tt.raw))
			assert.Equal(t, tt.skills, result.Skills)
			assert.Equal(t, tt.aliasMap, result.AliasMap)
			assert.Equal(t, tt.noise, result.Noise)
		})
	}
}

func TestExtractor_Extract(t *testing.T) {
	stub := &stubClient{reply: "Here you go:\n{\"skills\": [\"Python\", \"AWS\", \"python\"], \"confidence\": 0.9}"}
	extractor := NewExtractor(stub)

	result := extractor.Extract(context.Background(), "We need Python and AWS experience.")

	assert.Equal(t, []string{"Python", "AWS"}, result.Skills)
	require.Len(t, stub.prompts, 1)
	assert.Contains(t, stub.prompts[0], "We need Python and AWS experience.")
}

func TestExtractor_TruncatesInput(t *testing.T) {
	stub := &stubClient{reply: `{"skills": []}`}
	extractor := NewExtractor(stub)

	text := strings.Repeat("ş", MaxExtractRunes) + "TAIL"
	extractor.Extract(context.Background(), text)

	require.Len(t, stub.prompts, 1)
	assert.NotContains(t, stub.prompts[0], "TAIL")
	assert.Contains(t, stub.prompts[0], strings.Repeat("ş", MaxExtractRunes))
}

func TestExtractor_FailuresYieldEmpty(t *testing.T) {
	tests := []struct {
		name string
		stub *stubClient
	}{
		{"collaborator error", &stubClient{err: errors.New("connection refused")}},
		{"timeout", &stubClient{err: context.DeadlineExceeded}},
		{"unparseable reply", &stubClient{reply: "I cannot help with that."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewExtractor(tt.stub).Extract(context.Background(), "Python developer")
			assert.Empty(t, result.Skills)
			assert.NotNil(t, result.Skills)
			assert.NotNil(t, result.AliasMap)
		})
	}
}

func TestExtractor_NoClientOrEmptyText(t *testing.T) {
	assert.Empty(t, NewExtractor(nil).Extract(context.Background(), "Python").Skills)

	stub := &stubClient{reply: `["Go"]`}
	assert.Empty(t, NewExtractor(stub).Extract(context.Background(), "   ").Skills)
	assert.Empty(t, stub.prompts, "blank text should not reach the model")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "üö", Truncate("üöä", 2))
	assert.Equal(t, "ab", Truncate("ab", 10))
	assert.Equal(t, "", Truncate("ab", 0))
}
