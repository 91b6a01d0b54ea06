package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TopBarModel struct {
	width         int
	tabs          []string
	activeTab     string
	sortBy        string
	entries       int
	ended         bool
	hideInstalled bool
	currentView   string
	shortcuts     []string
}

var (
	titleStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleOrangeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	valueWhiteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	shortcutBlueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	descGrayStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	activeTabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("#7C3AED")).Bold(true).Padding(0, 1)
	inactiveTabStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("246")).Padding(0, 1)
)

func NewTopBar() *TopBarModel {
	return &TopBarModel{}
}

func (m *TopBarModel) SetWidth(width int) {
	m.width = width
}

func (m *TopBarModel) SetTabs(tabs []string, active string) {
	m.tabs = tabs
	m.activeTab = active
}

func (m *TopBarModel) SetSort(sortBy string) {
	m.sortBy = sortBy
}

func (m *TopBarModel) SetProgress(entries int, ended bool) {
	m.entries = entries
	m.ended = ended
}

func (m *TopBarModel) SetHideInstalled(hide bool) {
	m.hideInstalled = hide
}

func (m *TopBarModel) SetView(view string) {
	m.currentView = view
}

func (m *TopBarModel) SetShortcuts(shortcuts []string) {
	m.shortcuts = shortcuts
}

func (m *TopBarModel) View() string {
	titleLine := titleOrangeStyle.Render("Marketplace") + "  " + m.renderTabs()

	contextLines := m.buildContextInfo()
	shortcutCol1, shortcutCol2, col1Width := m.buildShortcutsDisplay(len(contextLines))

	var topSection []string
	topSection = append(topSection, titleLine)
	topSection = append(topSection, "")

	const fixedRows = 4

	const contextColWidth = 40
	const colMargin = 4

	for i := 0; i < fixedRows; i++ {
		var contextCol, sc1, sc2 string

		if i < len(contextLines) {
			contextCol = contextLines[i]
		}
		if i < len(shortcutCol1) {
			sc1 = shortcutCol1[i]
		}
		if i < len(shortcutCol2) {
			sc2 = shortcutCol2[i]
		}

		padding1 := max(contextColWidth-lipgloss.Width(contextCol), 1)
		line := contextCol + strings.Repeat(" ", padding1) + sc1

		if sc2 != "" {
			padding2 := max(col1Width-lipgloss.Width(sc1)+colMargin, colMargin)
			line += strings.Repeat(" ", padding2) + sc2
		}

		topSection = append(topSection, line)
	}

	content := strings.Join(topSection, "\n")
	return titleStyle.Width(m.width).Render(content)
}

func (m *TopBarModel) renderTabs() string {
	rendered := make([]string, 0, len(m.tabs))
	for _, tab := range m.tabs {
		if tab == m.activeTab {
			rendered = append(rendered, activeTabStyle.Render(tab))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(tab))
		}
	}
	return strings.Join(rendered, " ")
}

func (m *TopBarModel) buildContextInfo() []string {
	var lines []string

	lines = append(lines,
		"📂 "+titleOrangeStyle.Render("Tab: ")+valueWhiteStyle.Render(m.activeTab))

	sortBy := m.sortBy
	if sortBy == "" {
		sortBy = "top"
	}
	lines = append(lines,
		"⇅ "+titleOrangeStyle.Render("Sort: ")+valueWhiteStyle.Render(sortBy))

	progress := fmt.Sprintf("%d", m.entries)
	if m.ended {
		progress += " (all)"
	}
	if m.hideInstalled {
		progress += " · installed hidden"
	}
	lines = append(lines,
		"📦 "+titleOrangeStyle.Render("Loaded: ")+valueWhiteStyle.Render(progress))

	viewName := m.currentView
	if viewName == "" {
		viewName = "Catalog"
	}
	lines = append(lines,
		"🎯 "+titleOrangeStyle.Render("View: ")+valueWhiteStyle.Render(viewName))

	return lines
}

func (m *TopBarModel) buildShortcutsDisplay(contextHeight int) ([]string, []string, int) {
	var formattedShortcuts []string
	maxWidth := 0

	for _, shortcut := range m.shortcuts {
		parts := strings.SplitN(shortcut, ">", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimPrefix(parts[0], "<")
		desc := strings.TrimSpace(parts[1])

		formatted := shortcutBlueStyle.Render("<"+key+">") + " " + descGrayStyle.Render(desc)
		formattedShortcuts = append(formattedShortcuts, formatted)
		maxWidth = max(maxWidth, lipgloss.Width(formatted))
	}

	rows := max(contextHeight, 4)
	if len(formattedShortcuts) <= rows {
		return formattedShortcuts, nil, maxWidth
	}
	return formattedShortcuts[:rows], formattedShortcuts[rows:], maxWidth
}
