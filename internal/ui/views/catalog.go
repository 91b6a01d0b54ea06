package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mythicsoul/spicetify-marketplace/internal/domain"
)

func getKindIndicator(kind domain.Kind) string {
	switch kind {
	case domain.KindExtension:
		return "⚙"
	case domain.KindTheme:
		return "🎨"
	case domain.KindSnippet:
		return "✂"
	default:
		return " "
	}
}

// CatalogViewModel renders the accepted entries of the active tab. Entries are
// only ever appended until the next reset.
type CatalogViewModel struct {
	table table.Model

	tab       domain.Tab
	entries   []domain.CatalogEntry
	installed func(key string) bool
	showStars bool

	loading bool
	ended   bool

	width  int
	height int
}

func NewCatalogView() *CatalogViewModel {
	t := table.New(
		table.WithColumns(catalogColumns(50)),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.HiddenBorder()).
		Bold(false).
		Foreground(lipgloss.Color("#6B7280"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#F59E0B")).
		Background(lipgloss.Color("#1F2937")).
		Bold(true)
	t.SetStyles(s)

	return &CatalogViewModel{
		table:     t,
		showStars: true,
		installed: func(string) bool { return false },
	}
}

func catalogColumns(titleWidth int) []table.Column {
	return []table.Column{
		{Title: "", Width: 2},
		{Title: "Name", Width: titleWidth},
		{Title: "Author", Width: 18},
		{Title: "Repository", Width: 30},
		{Title: "★", Width: 6},
		{Title: "", Width: 2},
	}
}

func (m *CatalogViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(1, height-9))

	const fixed = 2 + 18 + 30 + 6 + 2
	m.table.SetColumns(catalogColumns(clamp(width-fixed, 20, 80)))
	m.table.SetRows(m.rows())
}

// SetInstalledCheck sets how rows decide whether to show the installed mark.
func (m *CatalogViewModel) SetInstalledCheck(installed func(key string) bool) {
	m.installed = installed
	m.table.SetRows(m.rows())
}

func (m *CatalogViewModel) SetShowStars(show bool) {
	m.showStars = show
	m.table.SetRows(m.rows())
}

// Reset empties the list for tab.
func (m *CatalogViewModel) Reset(tab domain.Tab) {
	m.tab = tab
	m.entries = nil
	m.ended = false
	m.table.SetRows(nil)
	m.table.SetCursor(0)
}

func (m *CatalogViewModel) Append(entry domain.CatalogEntry) {
	m.entries = append(m.entries, entry)
	m.table.SetRows(m.rows())
	// SetCursor on an empty table leaves the cursor at -1.
	if m.table.Cursor() < 0 {
		m.table.SetCursor(0)
	}
}

// Refresh redraws rows, for example after an install mark changed.
func (m *CatalogViewModel) Refresh() {
	m.table.SetRows(m.rows())
}

func (m *CatalogViewModel) SetLoading(loading bool) {
	m.loading = loading
}

func (m *CatalogViewModel) SetEnded() {
	m.ended = true
}

func (m *CatalogViewModel) Tab() domain.Tab {
	return m.tab
}

func (m *CatalogViewModel) Len() int {
	return len(m.entries)
}

func (m *CatalogViewModel) Ended() bool {
	return m.ended
}

func (m *CatalogViewModel) GetSelected() *domain.CatalogEntry {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return nil
	}
	return &m.entries[idx]
}

// AtBottom reports whether the cursor sits on the last loaded entry.
func (m *CatalogViewModel) AtBottom() bool {
	return len(m.entries) > 0 && m.table.Cursor() >= len(m.entries)-1
}

func (m *CatalogViewModel) rows() []table.Row {
	rows := make([]table.Row, len(m.entries))
	titleWidth := m.table.Columns()[1].Width

	for i, e := range m.entries {
		author := ""
		if len(e.Authors) > 0 {
			author = e.Authors[0].Name
		}
		stars := ""
		if m.showStars && e.Kind != domain.KindSnippet {
			stars = fmt.Sprintf("%d", e.Stars)
		}
		mark := ""
		if m.installed(e.Key()) {
			mark = "✓"
		}
		rows[i] = table.Row{
			getKindIndicator(e.Kind),
			truncateString(e.Title, titleWidth),
			truncateString(author, 18),
			truncateString(e.Repository.FullName(), 30),
			stars,
			mark,
		}
		if e.Repository.User == "" {
			rows[i][3] = ""
		}
	}
	return rows
}

func (m *CatalogViewModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return cmd
}

func (m *CatalogViewModel) View() string {
	var b strings.Builder

	if len(m.entries) == 0 && !m.loading {
		empty := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
		b.WriteString(empty.Render(fmt.Sprintf("Nothing in %s yet", m.tab)))
		b.WriteString("\n")
	} else {
		b.WriteString(m.colorizeTableRows(m.table.View()))
		b.WriteString("\n")
	}

	footer := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	switch {
	case m.loading:
		b.WriteString(footer.Render(fmt.Sprintf("%d loaded, fetching more...", len(m.entries))))
	case m.ended:
		b.WriteString(footer.Render(fmt.Sprintf("%d loaded, end of list", len(m.entries))))
	case len(m.entries) > 0:
		b.WriteString(footer.Render(fmt.Sprintf("%d loaded, scroll down or press m for more", len(m.entries))))
	}

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Italic(true).
		Render("\n" + m.helpText())
	b.WriteString(help)

	return b.String()
}

func (m *CatalogViewModel) colorizeTableRows(tableOutput string) string {
	lines := strings.Split(tableOutput, "\n")
	installedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#86EFAC"))

	for i, line := range lines {
		if strings.Contains(line, "✓") {
			lines[i] = installedStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (m *CatalogViewModel) helpText() string {
	return "Enter: Readme | i: Install/Remove | Tab: Next tab | s: Sort | H: Hide installed | q: Quit"
}

func truncateString(s string, maxLen int) string {
	if maxLen <= 0 || len([]rune(s)) <= maxLen {
		return s
	}
	r := []rune(s)
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

func clamp(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
