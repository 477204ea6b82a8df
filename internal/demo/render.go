package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor = lipgloss.Color("#3B82F6")
	okColor     = lipgloss.Color("#10B981")
	failColor   = lipgloss.Color("#EF4444")
	mutedColor  = lipgloss.Color("#6B7280")

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	summaryStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(okColor)

	failStyle = lipgloss.NewStyle().
			Foreground(failColor).
			Bold(true)
)

// Run executes the named scenarios (all of them when names is empty) and
// renders each one's steps to w. The first scenario failure stops the run.
func Run(ctx context.Context, w io.Writer, names []string, env Env) error {
	scenarios := All()
	if len(names) > 0 {
		scenarios = scenarios[:0]
		for _, name := range names {
			s, err := ByName(name)
			if err != nil {
				return err
			}
			scenarios = append(scenarios, s)
		}
	}

	for _, s := range scenarios {
		fmt.Fprintln(w, headerStyle.Render("== "+s.Name+" =="))
		fmt.Fprintln(w, summaryStyle.Render(s.Summary))

		steps, err := s.Run(ctx, env)
		for _, step := range steps {
			fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(step.Label+":"), step.Detail)
		}
		if err != nil {
			fmt.Fprintln(w, failStyle.Render("  scenario failed: "+err.Error()))
			return fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		fmt.Fprintln(w)
	}
	return nil
}
