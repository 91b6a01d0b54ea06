package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusBarModel shows the last message and a spinner while the catalog loads.
type StatusBarModel struct {
	width   int
	message string
	isError bool
	loading bool
	spinner spinner.Model
}

func NewStatusBar() *StatusBarModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	return &StatusBarModel{spinner: s}
}

func (m *StatusBarModel) SetWidth(width int) {
	m.width = width
}

func (m *StatusBarModel) SetMessage(message string, isError bool) {
	m.message = message
	m.isError = isError
}

func (m *StatusBarModel) ClearMessage() {
	m.message = ""
	m.isError = false
}

func (m *StatusBarModel) Message() string {
	return m.message
}

func (m *StatusBarModel) SetLoading(loading bool) {
	m.loading = loading
}

func (m *StatusBarModel) IsLoading() bool {
	return m.loading
}

// Tick starts the spinner animation.
func (m *StatusBarModel) Tick() tea.Cmd {
	return m.spinner.Tick
}

func (m *StatusBarModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

func (m *StatusBarModel) View() string {
	content := " " + m.message
	if m.loading {
		content = " " + m.spinner.View() + " Loading..." + " " + m.message
	}

	if m.width > 3 && lipgloss.Width(content) > m.width {
		content = truncate(content, m.width-3) + "..."
	} else if lipgloss.Width(content) < m.width {
		content += strings.Repeat(" ", m.width-lipgloss.Width(content))
	}

	bgColor := lipgloss.Color("#374151")
	if m.isError {
		bgColor = lipgloss.Color("#991B1B")
	}

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F9FAFB")).
		Background(bgColor).
		Width(m.width)

	return style.Render(content)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}
