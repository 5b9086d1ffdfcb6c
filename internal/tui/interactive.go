package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/bode/internal/analysis"
	"github.com/san-kum/bode/internal/config"
	"github.com/san-kum/bode/internal/poly"
	"github.com/san-kum/bode/internal/response"
	"github.com/san-kum/bode/internal/viz"
)

const (
	idleMessage     = "No analysis performed."
	emptyMessage    = "Error: Numerator or Denominator input is empty."
	badNumMessage   = "Error: Invalid numerator coefficients."
	badDenMessage   = "Error: Invalid or zero denominator coefficients."
	numericsMessage = "Error: analysis failed."
)

type field int

const (
	fieldNumerator field = iota
	fieldDenominator
)

func (f field) label() string {
	if f == fieldNumerator {
		return "numerator"
	}
	return "denominator"
}

type model struct {
	inputs [2]string
	focus  field

	sweep     response.Sweep
	unwrap    bool
	allowZero bool

	result  *analysis.Result
	status  viz.Status
	message string
	detail  string

	width  int
	height int
}

// NewInteractiveApp seeds the editor from cfg.
func NewInteractiveApp(cfg *config.Config) *model {
	return &model{
		inputs: [2]string{
			poly.FormatCoefficients(cfg.Numerator),
			poly.FormatCoefficients(cfg.Denominator),
		},
		sweep:     cfg.Sweep.Sweep(),
		unwrap:    cfg.UnwrapPhase,
		allowZero: cfg.AllowZeroDenominator,
		status:    viz.StatusNone,
		message:   idleMessage,
		width:     cfg.Plot.Width + 12,
		height:    2*cfg.Plot.Height + 16,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		m.focus = 1 - m.focus
	case "enter":
		m.plot()
	case "c":
		m.clear()
	case "u":
		m.unwrap = !m.unwrap
		if m.result != nil {
			m.plot()
		}
	case "t":
		viz.NextTheme()
	case "backspace":
		buf := m.inputs[m.focus]
		if len(buf) > 0 {
			m.inputs[m.focus] = buf[:len(buf)-1]
		}
	case "ctrl+u":
		m.inputs[m.focus] = ""
	default:
		s := msg.String()
		if msg.Type == tea.KeySpace {
			s = " "
		}
		if len(s) == 1 && accepts(s[0]) {
			m.inputs[m.focus] += s
		}
	}
	return m, nil
}

func accepts(c byte) bool {
	return (c >= '0' && c <= '9') || strings.IndexByte(".-+e, ", c) >= 0
}

func (m *model) clear() {
	m.result = nil
	m.status = viz.StatusNone
	m.message = idleMessage
	m.detail = ""
}

func (m *model) fail(msg string, err error) {
	m.result = nil
	m.status = viz.StatusError
	m.message = msg
	m.detail = ""
	if err != nil {
		m.detail = err.Error()
	}
}

// plot validates both fields before touching the core. Malformed text never
// reaches analysis.Run.
func (m *model) plot() {
	if strings.TrimSpace(m.inputs[fieldNumerator]) == "" || strings.TrimSpace(m.inputs[fieldDenominator]) == "" {
		m.fail(emptyMessage, nil)
		return
	}

	num, err := poly.ParseCoefficients(m.inputs[fieldNumerator])
	if err != nil {
		m.fail(badNumMessage, err)
		return
	}
	den, err := poly.ParseDenominator(m.inputs[fieldDenominator], m.allowZero)
	if err != nil {
		m.fail(badDenMessage, err)
		return
	}

	res, err := analysis.Run(analysis.Request{
		Numerator:   num,
		Denominator: den,
		Sweep:       m.sweep,
		Unwrap:      m.unwrap,
	})
	if err != nil {
		msg := numericsMessage
		if errors.Is(err, poly.ErrInvalidInput) {
			msg = badDenMessage
		}
		m.fail(msg, err)
		return
	}

	m.result = res
	m.status = viz.StatusFor(res.Verdict.Stable)
	m.message = res.Verdict.Message()
	m.detail = ""
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("   " + viz.Title().Render("b o d e") + "  " + viz.Subtle().Render("frequency response and stability") + "\n")
	b.WriteString("   " + viz.Separator(40) + "\n\n")

	for f := fieldNumerator; f <= fieldDenominator; f++ {
		val := m.inputs[f]
		if val == "" && f != m.focus {
			val = viz.Subtle().Render("coeffs larger to smaller")
		}
		if f == m.focus {
			b.WriteString("   " + viz.Title().Render("▸ ") + viz.Value().Render(fmt.Sprintf("%-12s", f.label())) + viz.Highlight().Render(val+"▋") + "\n")
		} else {
			b.WriteString("     " + viz.Subtle().Render(fmt.Sprintf("%-12s", f.label())) + viz.Value().Render(val) + "\n")
		}
	}
	b.WriteString("\n")

	b.WriteString("   " + viz.StatusStyle(m.status).Render(m.message) + "\n")
	if m.detail != "" {
		b.WriteString("   " + viz.Subtle().Render(m.detail) + "\n")
	}

	if m.result != nil {
		b.WriteString(m.viewResult())
	}

	unwrap := "off"
	if m.unwrap {
		unwrap = "on"
	}
	b.WriteString("\n" + viz.KeyHint().Render(fmt.Sprintf(
		"   tab field  enter plot  c clear  u unwrap (%s)  t theme (%s)  q quit", unwrap, viz.CurrentTheme.Name)) + "\n")

	return b.String()
}

func (m model) viewResult() string {
	var b strings.Builder

	res := m.result
	b.WriteString("   " + viz.Subtle().Render("H(s) = ") +
		viz.Value().Render("("+res.Numerator.String()+") / ("+res.Denominator.String()+")") + "\n")

	if len(res.Verdict.Roots) > 0 {
		parts := make([]string, len(res.Verdict.Roots))
		for i, r := range res.Verdict.Roots {
			parts[i] = fmt.Sprintf("%.4g", r)
		}
		b.WriteString("   " + viz.Subtle().Render("poles ") + viz.Value().Render(strings.Join(parts, "  ")) + "\n")
	}
	b.WriteString("\n")

	w := max(m.width-14, 20)
	h := max((m.height-20)/2, 4)
	for _, q := range []response.Quantity{response.Magnitude, response.Phase} {
		chart := viz.ASCII(res.Response, q, w, h)
		for _, line := range strings.Split(chart, "\n") {
			b.WriteString("   " + line + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func RunInteractive(cfg *config.Config) error {
	p := tea.NewProgram(NewInteractiveApp(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
