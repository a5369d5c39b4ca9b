// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/jonathan/career-advisor/internal/catalog"
	"github.com/jonathan/career-advisor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs the normalised profile that is scored.
func (p *Printer) PrintProfile(profile *types.UserProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Experience: %d years\n", profile.ExperienceYears()))
	sb.WriteString(fmt.Sprintf("Education:  %s\n", profile.EducationLevel()))
	sb.WriteString(fmt.Sprintf("Work style: %s\n", profile.PreferredWorkStyle()))
	sb.WriteString(fmt.Sprintf("Salary:     %d\n", profile.SalaryExpectation()))
	if loc := profile.LocationPreference(); loc != "" {
		sb.WriteString(fmt.Sprintf("Location:   %s\n", loc))
	}

	writeLevels(&sb, "Skills", profile.Skills())
	writeLevels(&sb, "Interests", profile.Interests())

	p.printBox("USER PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

func writeLevels[L interface {
	~int
	fmt.Stringer
}](sb *strings.Builder, heading string, levels map[string]L) {
	if len(levels) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n%s:\n", heading))

	names := slices.Sorted(maps.Keys(levels))
	count := min(len(names), maxItemsToShow)
	for _, name := range names[:count] {
		sb.WriteString(fmt.Sprintf("  • %s (%s)\n", name, levels[name]))
	}
	if len(names) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(names)-maxItemsToShow))
	}
}

// PrintCatalogInfo outputs the snapshot metadata of the catalog being scored against.
func (p *Printer) PrintCatalogInfo(info catalog.Info) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:   %s\n", info.Source))
	sb.WriteString(fmt.Sprintf("Careers:  %d\n", info.Careers))
	if info.Version > 0 {
		sb.WriteString(fmt.Sprintf("Version:  %d\n", info.Version))
	}
	if !info.LoadedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Loaded:   %s\n", info.LoadedAt.Format("2006-01-02 15:04:05")))
	}
	if info.Fallback {
		sb.WriteString("Fallback: yes")
	}

	p.printBox("CATALOG", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBreakdown outputs each rule's weighted contribution to a recommendation's score.
func (p *Printer) PrintBreakdown(rank int, rec types.Recommendation) {
	if len(rec.Breakdown) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %.3f\n\n", rec.Score))
	for _, rule := range rec.Breakdown {
		sb.WriteString(fmt.Sprintf("%-20s %.3f / %.2f\n", rule.Rule, rule.Score, rule.Weight))
	}

	p.printBox(fmt.Sprintf("#%d %s", rank, strings.ToUpper(rec.Career.Title)), strings.TrimSuffix(sb.String(), "\n"))
}
