// Package tui provides the interactive churn prediction form.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/churn/internal/churn"
	"github.com/f3rmion/churn/internal/form"
	"github.com/f3rmion/churn/internal/logger"
)

// submittedMsg arrives once a submission has finished, successfully or not.
// The outcome itself lives in the form state.
type submittedMsg struct{}

// Clipboard messages
type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

// AppModel is the Bubble Tea model for the prediction form.
type AppModel struct {
	state  *form.State
	runner form.Runner
	log    *logger.Logger

	// One input per field; choice fields keep a blurred, unused input so
	// indexes line up with form.Fields.
	inputs []textinput.Model
	focus  int

	spinner spinner.Model
	keys    keyMap
	help    help.Model

	endpoint string
	copied   bool
	copyErr  error

	width  int
	height int
}

// NewApp creates the form model. Submissions go through runner; endpoint is
// only displayed.
func NewApp(state *form.State, runner form.Runner, endpoint string, log *logger.Logger) AppModel {
	if log == nil {
		log = logger.Nop()
	}

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorAccent)),
	)

	m := AppModel{
		state:    state,
		runner:   runner,
		log:      log,
		spinner:  sp,
		keys:     newKeyMap(),
		help:     help.New(),
		endpoint: endpoint,
	}

	for range form.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 12
		ti.Width = 14
		ti.Placeholder = "0"
		ti.TextStyle = lipgloss.NewStyle().Foreground(ColorAccent)
		m.inputs = append(m.inputs, ti)
	}
	m.syncInputs()
	m.inputs[0].Focus()

	return m
}

// Init initializes the model.
func (m AppModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		field := form.Fields[m.focus]

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Next):
			return m, m.moveFocus(1)
		case key.Matches(msg, m.keys.Prev):
			return m, m.moveFocus(-1)
		case key.Matches(msg, m.keys.Submit):
			return m, m.submit()
		case key.Matches(msg, m.keys.Reset):
			m.state.Reset()
			m.syncInputs()
			return m, nil
		case key.Matches(msg, m.keys.Copy):
			return m, m.copyOutcome()
		case field.IsChoice() && key.Matches(msg, m.keys.Left):
			m.state.Cycle(field, -1)
			return m, nil
		case field.IsChoice() && key.Matches(msg, m.keys.Right):
			m.state.Cycle(field, 1)
			return m, nil
		}

		if field.IsChoice() {
			return m, nil
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		// Numeric fields never reject text; unparsable input becomes NaN.
		_ = m.state.Set(field, m.inputs[m.focus].Value())
		return m, cmd

	case submittedMsg:
		return m, nil

	case spinner.TickMsg:
		if !m.state.InFlight() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clearCopiedMsg:
		m.copied = false
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// moveFocus shifts focus by delta fields, wrapping around.
func (m *AppModel) moveFocus(delta int) tea.Cmd {
	m.inputs[m.focus].Blur()
	n := len(form.Fields)
	m.focus = ((m.focus+delta)%n + n) % n
	if form.Fields[m.focus].IsChoice() {
		return nil
	}
	return m.inputs[m.focus].Focus()
}

// syncInputs copies the form state into the text inputs.
func (m *AppModel) syncInputs() {
	for i, f := range form.Fields {
		if f.IsChoice() {
			continue
		}
		m.inputs[i].SetValue(m.state.Value(f))
	}
}

// submit starts a prediction unless one is already in flight.
func (m AppModel) submit() tea.Cmd {
	rec, ok := m.state.Begin()
	if !ok {
		return nil
	}
	m.log.Debug("submitting form", "record", rec)

	state, runner := m.state, m.runner
	run := func() tea.Msg {
		state.Complete(context.Background(), runner, rec)
		return submittedMsg{}
	}
	return tea.Batch(m.spinner.Tick, run)
}

// copyOutcome writes the last outcome to the system clipboard.
func (m *AppModel) copyOutcome() tea.Cmd {
	out, ok := m.state.Outcome()
	if !ok {
		return nil
	}
	if err := clipboardWrite(out.String()); err != nil {
		m.copyErr = err
		m.log.Warn("copying to clipboard", "error", err)
		return nil
	}
	m.copyErr = nil
	m.copied = true
	return clearCopiedAfter(2 * time.Second)
}

// View renders the UI.
func (m AppModel) View() string {
	var b strings.Builder

	header := TitleStyle.Render(" Customer Churn Prediction ") + "  " +
		SubtitleStyle.Render("Enter customer details to predict the likelihood of churn")
	b.WriteString(header)
	b.WriteString("\n\n")

	for i, f := range form.Fields {
		b.WriteString(m.renderField(i, f))
		b.WriteString("\n")
	}

	b.WriteString(m.renderResult())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("  " + m.endpoint))
	b.WriteString("\n")
	b.WriteString("  " + m.help.View(m.keys))

	return b.String()
}

func (m AppModel) renderField(i int, f form.Field) string {
	focused := i == m.focus

	cursor := "  "
	label := LabelStyle.Render(f.Label())
	if focused {
		cursor = CursorStyle.Render("▸ ")
		label = LabelFocusedStyle.Render(f.Label())
	}

	if !f.IsChoice() {
		return cursor + label + " " + m.inputs[i].View()
	}

	current := m.state.Value(f)
	var parts []string
	for _, c := range f.Choices() {
		switch {
		case c == current && focused:
			parts = append(parts, ChoiceFocusedStyle.Render(c))
		case c == current:
			parts = append(parts, ValueStyle.Bold(true).Underline(true).Render(c))
		default:
			parts = append(parts, HelpStyle.Render(c))
		}
	}
	return cursor + label + " " + strings.Join(parts, " ")
}

func (m AppModel) renderResult() string {
	if m.state.InFlight() {
		return "\n  " + m.spinner.View() + " " + LoadingStyle.Render("Predicting...") + "\n"
	}
	if msg := m.state.Error(); msg != "" {
		return "\n" + ErrorStyle.Render("  "+msg) + "\n"
	}

	out, ok := m.state.Outcome()
	if !ok {
		return "\n" + HelpStyle.Render("  Fill in the form and press enter to predict") + "\n"
	}

	width := 72
	if m.width > 0 && m.width-6 < width {
		width = m.width - 6
	}

	style := StayStyle
	if out.Label == churn.LabelChurn {
		style = ChurnStyle
	}
	header := style.Render(out.Label.Headline())
	if m.copied {
		header += "  " + CopiedStyle.Render("Copied!")
	} else if m.copyErr != nil {
		header += "  " + ErrorStyle.Render(fmt.Sprintf("Copy failed: %v", m.copyErr))
	}

	content := header
	if out.Reasons != "" {
		content += "\n\n" + ValueStyle.Render(wrapForBox(out.Reasons, width))
	}
	return BoxStyle.Width(width).Render(content)
}
