package ui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mythicsoul/spicetify-marketplace/internal/domain"
	"github.com/Mythicsoul/spicetify-marketplace/internal/engine"
	"github.com/Mythicsoul/spicetify-marketplace/internal/logger"
	"github.com/Mythicsoul/spicetify-marketplace/internal/ui/components"
	"github.com/Mythicsoul/spicetify-marketplace/internal/ui/views"
)

type ViewState int

const (
	ViewCatalog ViewState = iota
	ViewReadme
)

// Loader starts and continues catalog loads.
type Loader interface {
	Tabs() []domain.Tab
	StartNewQueue(tab domain.Tab, sort domain.SortOrder, quantity int) (*engine.Queue, error)
	ContinueQueue(quantity int) bool
	SetHideInstalled(hide bool)
}

type TextFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

type Options struct {
	Loader     Loader
	Mailbox    *Mailbox
	Repository domain.Repository
	Texts      TextFetcher
	Quantity   int
}

type Model struct {
	state      ViewState
	width      int
	height     int
	topBar     *components.TopBarModel
	statusBar  *components.StatusBarModel
	commandBar *components.CommandBarModel

	catalogView *views.CatalogViewModel
	readmeView  *views.ReadmeViewModel
	logsView    *views.LogsViewModel

	loader     Loader
	mailbox    *Mailbox
	repository domain.Repository
	texts      TextFetcher
	ctx        context.Context

	tabs      []domain.Tab
	activeTab domain.Tab
	sort      domain.SortOrder
	quantity  int

	commandRegistry *CommandRegistry
}

func NewModel(ctx context.Context, opts Options) Model {
	quantity := opts.Quantity
	if quantity <= 0 {
		quantity = engine.DefaultQuantity
	}

	m := Model{
		state:           ViewCatalog,
		topBar:          components.NewTopBar(),
		statusBar:       components.NewStatusBar(),
		commandBar:      components.NewCommandBar(),
		catalogView:     views.NewCatalogView(),
		readmeView:      views.NewReadmeView(),
		logsView:        views.NewLogsView(),
		loader:          opts.Loader,
		mailbox:         opts.Mailbox,
		repository:      opts.Repository,
		texts:           opts.Texts,
		ctx:             ctx,
		quantity:        quantity,
		commandRegistry: NewCommandRegistry(),
	}

	// Only tabs the loader can serve are offered.
	served := opts.Loader.Tabs()
	for _, tab := range opts.Repository.GetTabs() {
		if tab.Enabled && slices.Contains(served, tab.Name) {
			m.tabs = append(m.tabs, tab.Name)
		}
	}
	if len(m.tabs) == 0 {
		m.tabs = append(m.tabs, served...)
	}
	if len(m.tabs) == 0 {
		m.tabs = append(m.tabs, domain.AllTabs...)
	}
	m.activeTab = opts.Repository.GetActiveTab()
	if _, ok := m.findTab(string(m.activeTab)); !ok {
		m.activeTab = m.tabs[0]
	}
	m.sort = opts.Repository.GetSortBy()

	visual := opts.Repository.GetVisual()
	m.catalogView.SetInstalledCheck(opts.Repository.IsInstalled)
	m.catalogView.SetShowStars(visual.Stars)
	m.topBar.SetHideInstalled(visual.HideInstalled)
	m.refreshTopBar()
	m.updateShortcuts()

	return m
}

func (m Model) Init() tea.Cmd {
	tab, sort, quantity := m.activeTab, m.sort, m.quantity
	start := func() tea.Msg {
		if _, err := m.loader.StartNewQueue(tab, sort, quantity); err != nil {
			return ErrorMsg{err: err}
		}
		return nil
	}

	cmds := []tea.Cmd{start, m.statusBar.Tick()}
	if m.mailbox != nil {
		cmds = append(cmds, m.mailbox.Wait())
	}
	return tea.Batch(cmds...)
}

func (m Model) isInInputMode() bool {
	return m.commandBar.IsActive() || m.logsView.IsActive()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.topBar.SetWidth(msg.Width)
		m.statusBar.SetWidth(msg.Width)
		m.commandBar.SetWidth(msg.Width)
		m.catalogView.SetSize(msg.Width, msg.Height)
		m.readmeView.SetSize(msg.Width, msg.Height)
		m.logsView.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		key := msg.String()

		if m.isInInputMode() {
			if m.commandBar.IsActive() {
				switch key {
				case "enter":
					return m.handleCommand()
				case "esc":
					m.commandBar.Deactivate()
					return m, nil
				default:
					return m, m.commandBar.Update(msg)
				}
			}

			if m.logsView.IsActive() {
				switch key {
				case "esc", "q":
					m.logsView.Deactivate()
					return m, nil
				default:
					return m, m.logsView.Update(msg)
				}
			}
		}

		if newModel, cmd, handled := m.commandRegistry.HandleKey(m, key); handled {
			return newModel, cmd
		}

		if m.state == ViewCatalog {
			cmd = m.catalogView.Update(msg)
			if isScrollKey(key) && m.catalogView.AtBottom() {
				m.loadMore()
			}
			return m, cmd
		}

	case EngineEventsMsg:
		for _, event := range msg.Events {
			m.applyEngineEvent(event)
		}
		m.refreshTopBar()
		if m.mailbox != nil {
			return m, m.mailbox.Wait()
		}
		return m, nil

	case ReadmeLoadedMsg:
		m.readmeView.SetContent(msg.key, msg.content, msg.err)
		return m, nil

	case spinner.TickMsg:
		return m, m.statusBar.Update(msg)

	case ErrorMsg:
		m.statusBar.SetMessage(msg.err.Error(), true)
		return m, nil
	}

	if m.state == ViewReadme {
		cmd = m.readmeView.Update(msg)
	}
	return m, cmd
}

func isScrollKey(key string) bool {
	switch key {
	case "down", "j", "pgdown", "ctrl+d", "end", "G":
		return true
	}
	return false
}

func (m *Model) applyEngineEvent(event tea.Msg) {
	switch e := event.(type) {
	case CatalogResetMsg:
		m.catalogView.Reset(e.Tab)
	case EntryAcceptedMsg:
		m.catalogView.Append(e.Entry)
	case LoadStateMsg:
		m.catalogView.SetLoading(e.Loading)
		m.statusBar.SetLoading(e.Loading)
	case EndOfListMsg:
		m.catalogView.SetEnded()
	}
}

func (m Model) View() string {
	if m.width == 0 {
		return helpStyle.Render("Loading...")
	}

	var content string
	if m.logsView.IsActive() {
		content = m.logsView.View()
	} else {
		switch m.state {
		case ViewCatalog:
			content = m.catalogView.View()
		case ViewReadme:
			content = m.readmeView.View()
		}
	}

	topBar := m.topBar.View()
	if commandBar := m.commandBar.View(); commandBar != "" {
		return topBar + "\n" + content + "\n" + commandBar
	}
	return topBar + "\n" + content + "\n" + m.statusBar.View()
}

func (m Model) handleCommand() (tea.Model, tea.Cmd) {
	input := m.commandBar.Submit()

	command := ParseCommand(input)
	if command.Type == CommandUnknown && command.Name == "" {
		return m, nil
	}
	return m.commandRegistry.ExecuteCommand(m, command)
}

func (m Model) findTab(name string) (domain.Tab, bool) {
	for _, tab := range m.tabs {
		if strings.EqualFold(string(tab), name) {
			return tab, true
		}
	}
	return "", false
}

// startLoad replaces the catalog with a fresh load of the active tab.
func (m Model) startLoad() (Model, tea.Cmd) {
	if _, err := m.loader.StartNewQueue(m.activeTab, m.sort, m.quantity); err != nil {
		return m.withError(err)
	}
	m.refreshTopBar()
	return m, nil
}

func (m Model) loadMore() bool {
	if m.catalogView.Ended() {
		return false
	}
	return m.loader.ContinueQueue(m.quantity)
}

func (m Model) switchTab(tab domain.Tab) (Model, tea.Cmd) {
	logger.Log("UI: Switching tab from %s to %s", m.activeTab, tab)
	m.activeTab = tab
	m.state = ViewCatalog
	m.statusBar.ClearMessage()
	if err := m.repository.SetActiveTab(tab); err != nil {
		logger.LogError("SET_ACTIVE_TAB", string(tab), err)
	}
	m.updateShortcuts()
	return m.startLoad()
}

func (m Model) setSort(value string) (Model, tea.Cmd) {
	sort, ok := domain.ParseSortOrder(value)
	if !ok {
		return m.withError(fmt.Errorf("unknown sort order %q", value))
	}
	m.sort = sort
	if err := m.repository.SetSortBy(sort); err != nil {
		logger.LogError("SET_SORT", value, err)
	}
	m.statusBar.SetMessage(fmt.Sprintf("Sorting by %s", sort), false)
	return m.startLoad()
}

func (m Model) withError(err error) (Model, tea.Cmd) {
	logger.LogError("UI", string(m.activeTab), err)
	m.statusBar.SetMessage(err.Error(), true)
	return m, nil
}

func (m Model) refreshTopBar() {
	names := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		names[i] = string(tab)
	}
	m.topBar.SetTabs(names, string(m.activeTab))
	m.topBar.SetSort(string(m.sort))
	m.topBar.SetProgress(m.catalogView.Len(), m.catalogView.Ended())
}

func (m Model) updateShortcuts() {
	m.topBar.SetShortcuts(m.commandRegistry.GetContextualShortcuts(m.state))
	switch m.state {
	case ViewReadme:
		m.topBar.SetView("Readme")
	default:
		m.topBar.SetView("Catalog")
	}
}

func (m Model) fetchReadme(entry domain.CatalogEntry) tea.Cmd {
	if entry.ReadmeURL == "" || m.texts == nil {
		return nil
	}
	key, url := entry.Key(), entry.ReadmeURL
	return func() tea.Msg {
		content, err := m.texts.FetchText(m.ctx, url)
		return ReadmeLoadedMsg{key: key, content: content, err: err}
	}
}

func handleForceQuitKey(m Model) (Model, tea.Cmd) {
	return m, tea.Quit
}

func handleQuitKey(m Model) (Model, tea.Cmd) {
	if m.state == ViewReadme {
		logger.Log("UI: Navigating back from Readme to Catalog")
		m.state = ViewCatalog
		m.readmeView.Close()
		m.updateShortcuts()
		return m, nil
	}
	return m, tea.Quit
}

func handleCommandKey(m Model) (Model, tea.Cmd) {
	m.commandBar.Activate()
	return m, nil
}

func handleOpenReadmeKey(m Model) (Model, tea.Cmd) {
	entry := m.catalogView.GetSelected()
	if entry == nil {
		return m, nil
	}
	logger.Log("UI: Opening readme for %s", entry.Key())
	m.state = ViewReadme
	m.readmeView.Open(*entry)
	m.updateShortcuts()
	return m, m.fetchReadme(*entry)
}

func handleInstallKey(m Model) (Model, tea.Cmd) {
	var entry *domain.CatalogEntry
	if m.state == ViewReadme {
		entry = m.readmeView.Entry()
	} else {
		entry = m.catalogView.GetSelected()
	}
	if entry == nil {
		return m, nil
	}

	key := entry.Key()
	if m.repository.IsInstalled(key) {
		if err := m.repository.Uninstall(key); err != nil {
			return m.withError(err)
		}
		m.statusBar.SetMessage(fmt.Sprintf("Removed %s", entry.Title), false)
	} else {
		if err := m.repository.Install(*entry); err != nil {
			return m.withError(err)
		}
		m.statusBar.SetMessage(fmt.Sprintf("Installed %s", entry.Title), false)
	}
	m.catalogView.Refresh()

	if m.activeTab == domain.TabInstalled && m.state == ViewCatalog {
		return m.startLoad()
	}
	return m, nil
}

func handleNextTabKey(m Model) (Model, tea.Cmd) {
	return m.switchTab(m.tabs[(m.tabIndex()+1)%len(m.tabs)])
}

func handlePrevTabKey(m Model) (Model, tea.Cmd) {
	return m.switchTab(m.tabs[(m.tabIndex()-1+len(m.tabs))%len(m.tabs)])
}

func (m Model) tabIndex() int {
	for i, tab := range m.tabs {
		if tab == m.activeTab {
			return i
		}
	}
	return 0
}

var sortCycle = []domain.SortOrder{domain.SortTop, domain.SortRecent, domain.SortBest}

func handleSortKey(m Model) (Model, tea.Cmd) {
	next := sortCycle[0]
	for i, s := range sortCycle {
		if s == m.sort {
			next = sortCycle[(i+1)%len(sortCycle)]
			break
		}
	}
	return m.setSort(string(next))
}

func handleHideInstalledKey(m Model) (Model, tea.Cmd) {
	visual := m.repository.GetVisual()
	visual.HideInstalled = !visual.HideInstalled
	if err := m.repository.SetVisual(visual); err != nil {
		return m.withError(err)
	}

	m.loader.SetHideInstalled(visual.HideInstalled)
	m.topBar.SetHideInstalled(visual.HideInstalled)
	if visual.HideInstalled {
		m.statusBar.SetMessage("Hiding installed items", false)
	} else {
		m.statusBar.SetMessage("Showing installed items", false)
	}
	return m.startLoad()
}

func handleLoadMoreKey(m Model) (Model, tea.Cmd) {
	if !m.loadMore() {
		m.statusBar.SetMessage("Nothing more to load right now", false)
	}
	return m, nil
}

func handleReloadKey(m Model) (Model, tea.Cmd) {
	return m.startLoad()
}

func handleLogsKey(m Model) (Model, tea.Cmd) {
	m.logsView.Activate()
	return m, nil
}

type ReadmeLoadedMsg struct {
	key     string
	content string
	err     error
}

type ErrorMsg struct {
	err error
}
