// Package report renders pipeline reports for the terminal. One-shot
// output for operators, not an interactive surface.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hellothere012/ghostbrief/internal/model"
	"github.com/hellothere012/ghostbrief/internal/pipeline"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	rejectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Render formats a finished batch report as a stage table plus the grade
// distribution.
func Render(r model.PipelineReport) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Pipeline report %s", r.ID)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("ran %s, took %s",
		r.Started.Format("2006-01-02 15:04:05"), r.Finished.Sub(r.Started).Round(time.Millisecond))))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-26s %6s %7s %9s %10s", "stage", "in", "passed", "rejected", "took")))
	b.WriteString("\n")
	for _, st := range r.Stages {
		line := fmt.Sprintf("%-26s %6d %7d %9d %10s", st.Name, st.Input, st.Passed, st.Rejected, st.Took.Round(time.Millisecond))
		if st.Rejected > 0 {
			b.WriteString(rejectStyle.Render(line))
		} else {
			b.WriteString(passStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(r.Distribution) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("signal grades"))
		b.WriteString("\n")
		for _, grade := range []string{pipeline.GradePremium, pipeline.GradeHigh, pipeline.GradeStandard, pipeline.GradeBasic} {
			if n := r.Distribution[grade]; n > 0 {
				b.WriteString(fmt.Sprintf("  %-10s %d\n", grade, n))
			}
		}
	}

	if len(r.Clusters) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render(fmt.Sprintf("duplicate clusters: %d", len(r.Clusters))))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderSignals formats the passed set as a ranked list.
func RenderSignals(passed []pipeline.Outcome) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Signals (%d)", len(passed))))
	b.WriteString("\n")
	for i, o := range passed {
		b.WriteString(fmt.Sprintf("%3d. [%s/%s] %.0f  %s\n",
			i+1, o.Breakdown.Priority, o.Grade, o.Breakdown.Overall, o.Doc.Title))
		b.WriteString(dimStyle.Render(fmt.Sprintf("     %s  %s", o.Doc.Source.Name, o.Doc.URL)))
		b.WriteString("\n")
	}
	return b.String()
}
