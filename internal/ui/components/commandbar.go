package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CommandBarModel is the ":" prompt at the bottom of the screen.
type CommandBarModel struct {
	textInput textinput.Model
	width     int
	active    bool

	history []string
	recall  int
}

const maxHistory = 50

var commandBarStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#F9FAFB")).
	Background(lipgloss.Color("#1F2937")).
	Border(lipgloss.NormalBorder(), true, false, false, false).
	BorderForeground(lipgloss.Color("#7C3AED"))

func NewCommandBar() *CommandBarModel {
	ti := textinput.New()
	ti.Placeholder = "tab themes | sort recent | hide | logs | q"
	ti.CharLimit = 128
	ti.Width = 50

	return &CommandBarModel{textInput: ti}
}

func (m *CommandBarModel) SetWidth(width int) {
	m.width = width
	if width > 10 {
		m.textInput.Width = width - 10
	}
}

func (m *CommandBarModel) Activate() {
	m.active = true
	m.textInput.Focus()
	m.textInput.SetValue(":")
	m.textInput.CursorEnd()
	m.recall = len(m.history)
}

func (m *CommandBarModel) Deactivate() {
	m.active = false
	m.textInput.Blur()
	m.textInput.SetValue("")
}

func (m *CommandBarModel) IsActive() bool {
	return m.active
}

func (m *CommandBarModel) Value() string {
	return m.textInput.Value()
}

func (m *CommandBarModel) SetValue(value string) {
	m.textInput.SetValue(value)
}

// Submit closes the bar and returns its input, remembering it for recall with
// the up and down keys.
func (m *CommandBarModel) Submit() string {
	value := m.textInput.Value()
	if value != "" && value != ":" && (len(m.history) == 0 || m.history[len(m.history)-1] != value) {
		m.history = append(m.history, value)
		if len(m.history) > maxHistory {
			m.history = m.history[1:]
		}
	}
	m.Deactivate()
	return value
}

func (m *CommandBarModel) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up":
			if m.recall > 0 {
				m.recall--
				m.textInput.SetValue(m.history[m.recall])
				m.textInput.CursorEnd()
			}
			return nil
		case "down":
			if m.recall < len(m.history)-1 {
				m.recall++
				m.textInput.SetValue(m.history[m.recall])
			} else {
				m.recall = len(m.history)
				m.textInput.SetValue(":")
			}
			m.textInput.CursorEnd()
			return nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return cmd
}

func (m *CommandBarModel) View() string {
	if !m.active {
		return ""
	}
	return commandBarStyle.Width(m.width).Render(" " + m.textInput.View())
}
