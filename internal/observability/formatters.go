// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/ats-coach/internal/skills"
	"github.com/jonathan/ats-coach/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox draws title and content inside a fixed-width frame.
// Lines longer than the frame are cut by rune.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAnalysis outputs the score, its components and the section checklist.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "ATS score:   %.1f / 100\n", result.Score)
	fmt.Fprintf(&sb, "Similarity:  %.0f%%\n", result.Similarity*100)
	fmt.Fprintf(&sb, "Coverage:    %.0f%%\n", result.Coverage*100)
	fmt.Fprintf(&sb, "Contact:     phone %s  email %s\n", mark(result.HasPhone), mark(result.HasEmail))
	sb.WriteString("\nSections:\n")
	for _, section := range types.AllSections {
		fmt.Fprintf(&sb, "  %s %s\n", mark(result.Sections.Present(section)), section.Label())
	}

	writeList(&sb, "Issues", result.Issues)
	writeList(&sb, "Suggestions", result.Suggestions)

	p.printBox("ATS ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkills outputs one extraction result.
func (p *Printer) PrintSkills(title string, result *types.ExtractionResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d skills extracted\n", len(result.Skills))
	writeList(&sb, "Skills", result.Skills)
	if len(result.AliasMap) > 0 {
		fmt.Fprintf(&sb, "\nAliases: %d\n", len(result.AliasMap))
	}
	writeList(&sb, "Filtered as noise", result.Noise)

	p.printBox(strings.ToUpper(title), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAlignment outputs matched and missing skills grouped by catalog category.
func (p *Printer) PrintAlignment(alignment *types.AlignmentResult) {
	if alignment == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Matched %d of %d job skills\n", len(alignment.Matched), len(alignment.JobCanon))
	writeGroups(&sb, "Matched", skills.Categorize(alignment.Matched))
	writeGroups(&sb, "Missing", skills.Categorize(alignment.Missing))

	p.printBox("SKILL ALIGNMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfile outputs the hiring company and the detected profession.
func (p *Printer) PrintProfile(company types.CompanyMeta, profession *types.ProfessionDetection) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Company:   %s\n", valueOr(company.Company))
	fmt.Fprintf(&sb, "Role:      %s\n", valueOr(company.RoleTitle))
	fmt.Fprintf(&sb, "Industry:  %s\n", valueOr(company.Industry))
	fmt.Fprintf(&sb, "Location:  %s\n", valueOr(company.Location))

	if profession != nil {
		fmt.Fprintf(&sb, "\nProfession: %s (%.0f%%)\n", profession.Profile.DisplayName, profession.Confidence*100)
		if profession.NeedsManualInput {
			sb.WriteString("⚠ Low confidence: confirm the profession before coaching\n")
		}
	}

	p.printBox("CANDIDATE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s:\n", title)
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
}

func writeGroups(sb *strings.Builder, title string, groups map[string][]string) {
	if len(groups) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s:\n", title)
	for _, category := range skills.Catalog {
		if items, ok := groups[category.Name]; ok {
			fmt.Fprintf(sb, "  %s: %s\n", category.Name, strings.Join(items, ", "))
		}
	}
	if other, ok := groups[skills.OtherCategory]; ok {
		fmt.Fprintf(sb, "  %s: %s\n", skills.OtherCategory, strings.Join(other, ", "))
	}
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func valueOr(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func clip(line string, width int) string {
	runes := []rune(line)
	if len(runes) <= width {
		return line
	}
	return string(runes[:width-3]) + "..."
}
