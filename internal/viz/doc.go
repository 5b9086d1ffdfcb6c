// Package viz renders frequency responses for the terminal.
//
//   - [ASCII]: line chart of one Bode curve drawn with asciigraph
//   - [Sparkline]: single row summary used by the interactive view
//   - Themes and lipgloss styles shared by the CLI and the TUI
//
// Non-finite samples (a pole sitting exactly on a sweep frequency) are left
// out of every chart.
package viz
