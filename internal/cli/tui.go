package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/ghrepos/pkg/widget"
)

// Form styles
var (
	formLabelStyle   = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	formFocusedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	formValueStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	formDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// WidgetFormModel - Interactive widget settings form
// =============================================================================

// Form field indexes.
const (
	fieldTitle = iota
	fieldURL
	fieldCount
)

type formField struct {
	label       string
	value       []rune
	placeholder string
}

// WidgetFormModel is the bubbletea model for editing a widget's settings.
type WidgetFormModel struct {
	ID        string
	Fields    [fieldCount]formField
	Focus     int
	Saved     bool
	Cancelled bool
}

// NewWidgetFormModel creates a form pre-filled from cfg. An empty title is
// shown as widget.DefaultTitle, as in the HTML settings form.
func NewWidgetFormModel(id string, cfg widget.Config) WidgetFormModel {
	title := cfg.Title
	if title == "" {
		title = widget.DefaultTitle
	}
	m := WidgetFormModel{ID: id}
	m.Fields[fieldTitle] = formField{label: "Title", value: []rune(title)}
	m.Fields[fieldURL] = formField{label: "GitHub URL", value: []rune(cfg.GitHubURL), placeholder: "https://github.com/username"}
	return m
}

// Config returns the form values as entered, before sanitization.
func (m WidgetFormModel) Config() widget.Config {
	return widget.Config{
		Title:     string(m.Fields[fieldTitle].value),
		GitHubURL: string(m.Fields[fieldURL].value),
	}
}

func (m WidgetFormModel) Init() tea.Cmd {
	return nil
}

func (m WidgetFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	f := &m.Fields[m.Focus]
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.Cancelled = true
		return m, tea.Quit
	case tea.KeyCtrlS:
		m.Saved = true
		return m, tea.Quit
	case tea.KeyEnter:
		if m.Focus == fieldCount-1 {
			m.Saved = true
			return m, tea.Quit
		}
		m.Focus++
	case tea.KeyTab, tea.KeyDown:
		m.Focus = (m.Focus + 1) % fieldCount
	case tea.KeyShiftTab, tea.KeyUp:
		m.Focus = (m.Focus + fieldCount - 1) % fieldCount
	case tea.KeyBackspace:
		if len(f.value) > 0 {
			f.value = f.value[:len(f.value)-1]
		}
	case tea.KeyCtrlU:
		f.value = nil
	case tea.KeySpace:
		f.value = append(f.value, ' ')
	case tea.KeyRunes:
		f.value = append(f.value, key.Runes...)
	}
	return m, nil
}

func (m WidgetFormModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(widget.Name + " · " + m.ID))
	b.WriteString("\n")
	b.WriteString(formDimStyle.Render("tab next field  ⏎ save on last field  ctrl+s save  esc cancel"))
	b.WriteString("\n\n")

	for i, f := range m.Fields {
		cursor := "  "
		value := formValueStyle.Render(string(f.value))
		if len(f.value) == 0 && f.placeholder != "" {
			value = formDimStyle.Render(f.placeholder)
		}
		if i == m.Focus {
			cursor = formFocusedStyle.Render("▸ ")
			value += formFocusedStyle.Render("█")
		}
		b.WriteString(cursor + formLabelStyle.Render(f.label) + " " + value + "\n")
	}

	return b.String()
}
