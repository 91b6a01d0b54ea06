package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mythicsoul/spicetify-marketplace/internal/logger"
)

var logColors = []struct {
	tag   string
	color lipgloss.Color
}{
	{"[ERROR]", "#EF4444"},
	{"[FILE_WRITE]", "#F59E0B"},
	{"[FILE_OPEN]", "#10B981"},
	{"[FETCH]", "#3B82F6"},
}

// LogsViewModel is an overlay listing the session's log buffer.
type LogsViewModel struct {
	viewport viewport.Model
	active   bool
	count    int
	width    int
	height   int
}

func NewLogsView() *LogsViewModel {
	return &LogsViewModel{viewport: viewport.New(80, 20)}
}

func (m *LogsViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-8, 1)
	m.viewport.Height = max(height-10, 1)
}

// Activate snapshots the log buffer and scrolls to the newest entry.
func (m *LogsViewModel) Activate() {
	m.active = true
	logs := logger.GetLogs()
	m.count = len(logs)

	lines := make([]string, 0, len(logs))
	for _, entry := range logs {
		line := fmt.Sprintf("[%s] %s", entry.Timestamp.Format("15:04:05.000"), entry.Message)
		lines = append(lines, lipgloss.NewStyle().Foreground(colorFor(entry.Message)).Render(line))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.GotoBottom()
}

func colorFor(message string) lipgloss.Color {
	for _, c := range logColors {
		if strings.Contains(message, c.tag) {
			return c.color
		}
	}
	return "#E5E7EB"
}

func (m *LogsViewModel) Deactivate() {
	m.active = false
}

func (m *LogsViewModel) IsActive() bool {
	return m.active
}

func (m *LogsViewModel) Update(msg tea.Msg) tea.Cmd {
	if !m.active {
		return nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "g", "home":
			m.viewport.GotoTop()
			return nil
		case "G", "end":
			m.viewport.GotoBottom()
			return nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *LogsViewModel) View() string {
	if !m.active {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true)

	b.WriteString(titleStyle.Render(fmt.Sprintf("Session Logs (%d entries)", m.count)))
	b.WriteString("\n\n")

	if m.count == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Italic(true)
		b.WriteString(emptyStyle.Render("No logs yet"))
	} else {
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Italic(true)
	help := fmt.Sprintf("j/k: Scroll | PgUp/PgDn: Page | g/G: Top/Bottom | Esc: Close | %3.f%%", m.viewport.ScrollPercent()*100)
	b.WriteString(helpStyle.Render(help))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7C3AED")).
		Padding(1, 2).
		Width(max(m.width-4, 1))

	return boxStyle.Render(b.String())
}
