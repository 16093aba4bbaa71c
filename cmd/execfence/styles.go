package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// verdictStyles holds the rendered verdict labels for check output.
type verdictStyles struct {
	blocked string
	allowed string
}

// newVerdictStyles renders the verdict labels, with color only when the
// destination is a terminal.
func newVerdictStyles(out *os.File) verdictStyles {
	if !term.IsTerminal(int(out.Fd())) {
		return verdictStyles{blocked: "BLOCKED", allowed: "allowed"}
	}
	blocked := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	allowed := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	return verdictStyles{
		blocked: blocked.Render("BLOCKED"),
		allowed: allowed.Render("allowed"),
	}
}
