package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Status is the outcome shown next to the last analysis.
type Status int

const (
	StatusNone Status = iota
	StatusStable
	StatusUnstable
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusStable:
		return "stable"
	case StatusUnstable:
		return "unstable"
	case StatusError:
		return "error"
	}
	return "idle"
}

func StatusFor(stable bool) Status {
	if stable {
		return StatusStable
	}
	return StatusUnstable
}

func StatusStyle(s Status) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch s {
	case StatusStable:
		return base.Foreground(CurrentTheme.Success)
	case StatusUnstable:
		return base.Foreground(CurrentTheme.Warning)
	case StatusError:
		return base.Foreground(CurrentTheme.Error)
	}
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
}

func Title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Primary)
}

func Subtle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
}

func Value() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Text)
}

func Highlight() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Accent)
}

func KeyHint() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Italic(true)
}

func Panel() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Muted).
		Padding(0, 1)
}

// Separator draws a muted rule with a marker in the middle.
func Separator(width int) string {
	if width < 8 {
		width = 8
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return Subtle().Render(left + " ◆ " + right)
}
