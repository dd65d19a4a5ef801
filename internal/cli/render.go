package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"coreselect/internal/recclient"
	"coreselect/internal/recommend/contract"
	"coreselect/internal/wizard"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color("8"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	currentStyle = lipgloss.NewStyle().Bold(true)
	lockedStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	textStyle    = lipgloss.NewStyle().Width(72)
)

type resultRow struct {
	label string
	value func(contract.Result) string
}

var resultRows = []resultRow{
	{"CPU", func(r contract.Result) string { return r.CPU }},
	{"CPU Cooler", func(r contract.Result) string { return r.CPUCooler }},
	{"Motherboard", func(r contract.Result) string { return r.Motherboard }},
	{"Memory", func(r contract.Result) string { return r.Memory }},
	{"Storage", func(r contract.Result) string { return r.Storage }},
	{"GPU", func(r contract.Result) string { return r.GPU }},
	{"Case", func(r contract.Result) string { return r.Case }},
	{"Case Fans", func(r contract.Result) string { return r.CaseFans }},
	{"PSU", func(r contract.Result) string { return r.PSU }},
}

func renderResult(res contract.Result) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Your recommended build"))
	b.WriteString("\n\n")
	for _, row := range resultRows {
		b.WriteString(labelStyle.Render(row.label))
		b.WriteString(row.value(res))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Total"))
	b.WriteString(currentStyle.Render(formatMoney(res.TotalCost)))
	if res.Explanation != "" {
		b.WriteString("\n\n")
		b.WriteString(textStyle.Render(res.Explanation))
	}
	return boxStyle.Render(b.String())
}

// renderSidebar lists the resolved steps with their state and a progress line.
func renderSidebar(s *wizard.Session) string {
	current, started := s.Current()
	var b strings.Builder
	for _, step := range s.Steps() {
		switch {
		case started && step.ID == current.ID:
			b.WriteString(currentStyle.Render("> " + step.Name))
		case s.Store().IsCompleted(step.ID):
			b.WriteString(doneStyle.Render("✓ " + step.Name))
		case s.Reachable(step.ID):
			b.WriteString("  " + step.Name)
		default:
			b.WriteString(lockedStyle.Render("  " + step.Name))
		}
		b.WriteString("\n")
	}
	b.WriteString(progressBar(s.Progress(), 20))
	return b.String()
}

func progressBar(frac float64, width int) string {
	frac = math.Max(0, math.Min(1, frac))
	filled := int(math.Round(frac * float64(width)))
	return fmt.Sprintf("[%s%s] %3.0f%%", strings.Repeat("#", filled), strings.Repeat("-", width-filled), frac*100)
}

func renderSummary(a wizard.Answers) string {
	lines := []string{
		"Budget: " + formatMoney(a.Budget),
		"Priorities: " + strings.Join(a.Priorities, ", "),
	}
	if contract.GamingSelected(a.Priorities) {
		lines = append(lines,
			"Want to play: "+orNone(a.WantToPlayGames),
			"Playing now: "+orNone(a.CurrentlyPlayingGames),
		)
	}
	return strings.Join(lines, "\n")
}

func renderError(err error) string {
	return errorStyle.Render("Error: " + err.Error())
}

func renderUsers(users []recclient.User) string {
	if len(users) == 0 {
		return "No users yet."
	}
	var b strings.Builder
	b.WriteString(labelStyle.Render("ID"))
	b.WriteString(titleStyle.Render("Name / Major"))
	for _, u := range users {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%d", u.ID)))
		b.WriteString(u.Name)
		if u.Major != "" {
			b.WriteString(" (" + u.Major + ")")
		}
	}
	return b.String()
}

func orNone(list []string) string {
	if len(list) == 0 {
		return "none"
	}
	return strings.Join(list, ", ")
}

// formatMoney renders a dollar amount with thousands separators.
func formatMoney(v float64) string {
	cents := int64(math.Round(math.Abs(v) * 100))
	whole := fmt.Sprintf("%d", cents/100)
	var groups []string
	for len(whole) > 3 {
		groups = append([]string{whole[len(whole)-3:]}, groups...)
		whole = whole[:len(whole)-3]
	}
	groups = append([]string{whole}, groups...)
	sign := ""
	if v < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s.%02d", sign, strings.Join(groups, ","), cents%100)
}
