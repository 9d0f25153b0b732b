package skills

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/ats-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertPartition checks that matched and missing partition JobCanon by key membership in CVCanon.
func assertPartition(t *testing.T, a types.AlignmentResult) {
	t.Helper()
	cvKeys := map[string]bool{}
	for _, s := range a.CVCanon {
		cvKeys[Normalize(s)] = true
	}
	var wantMatched, wantMissing []string
	for _, s := range a.JobCanon {
		if cvKeys[Normalize(s)] {
			wantMatched = append(wantMatched, s)
		} else {
			wantMissing = append(wantMissing, s)
		}
	}
	assert.ElementsMatch(t, wantMatched, a.Matched)
	assert.ElementsMatch(t, wantMissing, a.Missing)
}

func TestBaseAlignment(t *testing.T) {
	result := BaseAlignment([]string{"Python", "AWS", "Docker"}, []string{"python", "Docker", "Kubernetes"})

	assert.Equal(t, []string{"Python", "Docker"}, result.Matched)
	assert.Equal(t, []string{"AWS"}, result.Missing)
	assert.Equal(t, []string{"Python", "AWS", "Docker"}, result.JobCanon)
	assert.Equal(t, []string{"python", "Docker", "Kubernetes"}, result.CVCanon)
	assert.InDelta(t, 2.0/3.0, Coverage(result), 1e-9)
}

func TestBaseAlignment_AliasesMatch(t *testing.T) {
	result := BaseAlignment([]string{"JavaScript", "Kubernetes", "ML"}, []string{"JS", "k8s", "Machine Learning"})

	assert.Equal(t, []string{"JavaScript", "Kubernetes", "ML"}, result.Matched)
	assert.Empty(t, result.Missing)
	assert.Equal(t, 1.0, Coverage(result))
}

func TestBaseAlignment_DedupesFirstSeen(t *testing.T) {
	result := BaseAlignment([]string{"Go", "golang", "Go "}, []string{"GO"})

	assert.Equal(t, []string{"Go"}, result.JobCanon)
	assert.Equal(t, []string{"Go"}, result.Matched)
}

func TestCoverage_EmptyJob(t *testing.T) {
	result := BaseAlignment(nil, []string{"Python"})
	assert.Equal(t, 0.0, Coverage(result))
	assert.Empty(t, result.Matched)
	assert.Empty(t, result.Missing)
	assert.NotNil(t, result.Matched)
}

func TestAligner_InconsistentRefinementIsCorrected(t *testing.T) {
	// The refiner claims AWS matched and Python missing, which contradicts its own deduped_cv.
	stub := &stubClient{reply: `{"matched": ["AWS"], "missing": ["Python"], "deduped_cv": ["Python", "Docker"]}`}
	aligner := NewAligner(stub)

	result := aligner.Align(context.Background(), []string{"Python", "AWS", "Docker"}, []string{"Python", "Docker", "python"})

	assert.Equal(t, []string{"Python", "Docker"}, result.Matched)
	assert.Equal(t, []string{"AWS"}, result.Missing)
	assertPartition(t, result)
	require.Len(t, stub.prompts, 1)
	assert.Contains(t, stub.prompts[0], `["Python","AWS","Docker"]`)
}

func TestAligner_RefinementReplacesCV(t *testing.T) {
	stub := &stubClient{reply: `{"deduped_cv": ["Amazon Web Services", "AWS", "aws", "Python"]}`}
	aligner := NewAligner(stub)

	result := aligner.Align(context.Background(), []string{"AWS", "Terraform"}, []string{"Amazon Web Services", "Python"})

	assert.Equal(t, []string{"Amazon Web Services", "AWS", "Python"}, result.CVCanon)
	assert.Equal(t, []string{"AWS", "Terraform"}, result.JobCanon, "job side is never replaced")
	assert.Equal(t, []string{"AWS"}, result.Matched)
	assert.Equal(t, []string{"Terraform"}, result.Missing)
	assertPartition(t, result)
}

func TestAligner_EmptyDedupedCVKeepsBase(t *testing.T) {
	stub := &stubClient{reply: `{"matched": [], "missing": [], "deduped_cv": []}`}
	result := NewAligner(stub).Align(context.Background(), []string{"Python"}, []string{"Python"})

	assert.Equal(t, []string{"Python"}, result.CVCanon)
	assert.Equal(t, []string{"Python"}, result.Matched)
}

func TestAligner_FailuresFallBack(t *testing.T) {
	job := []string{"Python", "AWS", "Docker"}
	cv := []string{"Python", "Docker"}
	base := BaseAlignment(job, cv)

	tests := []struct {
		name string
		stub *stubClient
	}{
		{"collaborator error", &stubClient{err: errors.New("boom")}},
		{"timeout", &stubClient{err: context.DeadlineExceeded}},
		{"unparseable", &stubClient{reply: "no idea"}},
		{"schema invalid", &stubClient{reply: `{"deduped_cv": "Python, Docker"}`}},
		{"bare list", &stubClient{reply: `["Python"]`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewAligner(tt.stub).Align(context.Background(), job, cv)
			assert.Equal(t, base, result)
			assertPartition(t, result)
		})
	}
}

func TestAligner_CapsRefinementInput(t *testing.T) {
	job := make([]string, 0, 60)
	for i := 0; i < 60; i++ {
		job = append(job, "skill"+string(rune('a'+i%26))+string(rune('a'+i/26)))
	}
	stub := &stubClient{reply: `{}`}
	NewAligner(stub).Align(context.Background(), job, nil)

	require.Len(t, stub.prompts, 1)
	assert.Contains(t, stub.prompts[0], job[MaxRefineJobSkills-1])
	assert.NotContains(t, stub.prompts[0], job[MaxRefineJobSkills])
}

func TestAligner_NoClient(t *testing.T) {
	result := NewAligner(nil).Align(context.Background(), []string{"Python", "AWS"}, []string{"python"})
	assert.Equal(t, []string{"Python"}, result.Matched)
	assert.Equal(t, []string{"AWS"}, result.Missing)
}
