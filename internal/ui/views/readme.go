package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mythicsoul/spicetify-marketplace/internal/domain"
)

const minWrapWidth = 40

// ReadmeViewModel shows an entry's details and its rendered README.
type ReadmeViewModel struct {
	viewport viewport.Model
	entry    *domain.CatalogEntry
	markdown string
	err      error
	loading  bool
	width    int
	height   int
}

func NewReadmeView() *ReadmeViewModel {
	return &ReadmeViewModel{viewport: viewport.New(80, 20)}
}

func (m *ReadmeViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-4, 1)
	m.viewport.Height = max(height-12, 1)
	m.render()
}

// Open shows entry while its README loads.
func (m *ReadmeViewModel) Open(entry domain.CatalogEntry) {
	m.entry = &entry
	m.markdown = ""
	m.err = nil
	m.loading = entry.ReadmeURL != ""
	m.render()
}

func (m *ReadmeViewModel) SetContent(key, markdown string, err error) {
	if m.entry == nil || m.entry.Key() != key {
		return
	}
	m.markdown = markdown
	m.err = err
	m.loading = false
	m.render()
}

func (m *ReadmeViewModel) Entry() *domain.CatalogEntry {
	return m.entry
}

func (m *ReadmeViewModel) Close() {
	m.entry = nil
	m.markdown = ""
	m.err = nil
}

func (m *ReadmeViewModel) render() {
	if m.entry == nil {
		m.viewport.SetContent("")
		return
	}

	var body string
	switch {
	case m.loading:
		body = "Loading README..."
	case m.err != nil:
		body = fmt.Sprintf("Could not load README: %v", m.err)
	case m.entry.Kind == domain.KindSnippet:
		body = renderMarkdown("```css\n"+m.entry.Code+"\n```", m.viewport.Width)
	case m.markdown == "":
		body = "This entry has no README."
	default:
		body = renderMarkdown(m.markdown, m.viewport.Width)
	}

	m.viewport.SetContent(body)
	m.viewport.GotoTop()
}

func renderMarkdown(content string, width int) string {
	style := styles.DarkStyleConfig
	if !lipgloss.HasDarkBackground() {
		style = styles.LightStyleConfig
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(max(width-2, minWrapWidth)),
	)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

func (m *ReadmeViewModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *ReadmeViewModel) View() string {
	if m.entry == nil {
		return ""
	}

	e := m.entry
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render(e.Title))
	b.WriteString("\n")
	if e.Subtitle != "" {
		b.WriteString(e.Subtitle)
		b.WriteString("\n")
	}

	var authors []string
	for _, a := range e.Authors {
		authors = append(authors, a.Name)
	}
	if len(authors) > 0 {
		b.WriteString(labelStyle.Render("By: ") + strings.Join(authors, ", ") + "\n")
	}
	if url := e.Repository.URL(); url != "" {
		b.WriteString(labelStyle.Render("Repo: ") + url + "\n")
	}
	if e.ImageURL != "" {
		b.WriteString(labelStyle.Render("Preview: ") + e.ImageURL + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("j/k: Scroll | i: Install/Remove | Esc/q: Back"))

	return b.String()
}
