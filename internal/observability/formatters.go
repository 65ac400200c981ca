// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/jonathan/career-roadmap/internal/export"
	"github.com/jonathan/career-roadmap/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Width(boxWidth)

	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

	durationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	enumeratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")).
			MarginRight(1)
)

// Printer handles formatted output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a bordered box with a title and content
//
//nolint:errcheck // terminal output; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	fmt.Fprintln(p.out, titleStyle.Render(title))
	fmt.Fprintln(p.out, boxStyle.Render(content))
}

// PrintOutput outputs the chosen career and the skills it was matched on.
func (p *Printer) PrintOutput(out *types.Output) {
	if out == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Career:   %s\n", out.ChosenCareer))
	sb.WriteString(fmt.Sprintf("Roadmaps: %d\n", len(out.Roadmaps)))

	if len(out.DerivedSkills) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(out.DerivedSkills), maxItemsToShow)
		for _, s := range out.DerivedSkills[:count] {
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
		if len(out.DerivedSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(out.DerivedSkills)-maxItemsToShow))
		}
	}

	p.printBox("CAREER MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRoadmap outputs one roadmap as a tree of steps with durations.
//
//nolint:errcheck // terminal output; errors are not recoverable
func (p *Printer) PrintRoadmap(rm *types.Roadmap) {
	if rm == nil {
		return
	}

	months := 0
	for i := range rm.Steps {
		months += rm.Steps[i].DurationMonths
	}
	header := fmt.Sprintf("%s · %s", rm.PathTitle, rm.Focus)
	fmt.Fprintln(p.out, titleStyle.Render(header))
	fmt.Fprintf(p.out, "confidence %.2f · %d months\n", rm.ConfidenceScore, months)

	t := tree.New().
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(enumeratorStyle)
	for i := range rm.Steps {
		t.Child(stepNode(&rm.Steps[i]))
	}
	fmt.Fprintln(p.out, t.String())
}

// PrintRoadmaps prints every roadmap of the output.
func (p *Printer) PrintRoadmaps(out *types.Output) {
	if out == nil {
		return
	}
	for i := range out.Roadmaps {
		p.PrintRoadmap(&out.Roadmaps[i])
	}
}

// PrintExport lists where an export wrote its artifacts.
func (p *Printer) PrintExport(res *export.Result) {
	if res == nil {
		return
	}

	var sb strings.Builder
	if res.LatestPath != "" {
		sb.WriteString(fmt.Sprintf("Latest:  %s\n", res.LatestPath))
	}
	if res.JSONPath != "" {
		sb.WriteString(fmt.Sprintf("Archive: %s\n", res.JSONPath))
	}
	for _, img := range res.Images {
		sb.WriteString(fmt.Sprintf("Image:   %s\n", img))
	}
	if sb.Len() == 0 {
		sb.WriteString("nothing written")
	}
	p.printBox("EXPORT "+res.RunID, strings.TrimSuffix(sb.String(), "\n"))
}

// stepNode renders a step label, or a subtree when the step has children.
func stepNode(step *types.RoadmapStep) any {
	label := stepStyle.Render(step.Title) + " " + durationStyle.Render(fmt.Sprintf("(%dmo)", step.DurationMonths))
	if len(step.Children) == 0 {
		return label
	}
	sub := tree.Root(label).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(enumeratorStyle)
	for i := range step.Children {
		sub.Child(stepNode(&step.Children[i]))
	}
	return sub
}
