package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mythicsoul/spicetify-marketplace/internal/logger"
)

type CommandType int

const (
	CommandUnknown CommandType = iota
	CommandQuit
	CommandTab
	CommandSort
	CommandHide
	CommandReload
	CommandMore
	CommandLogs
)

type Command struct {
	Type CommandType
	Name string
	Args []string
}

func ParseCommand(input string) Command {
	input = strings.TrimSpace(input)

	if !strings.HasPrefix(input, ":") {
		return Command{Type: CommandUnknown}
	}

	input = strings.TrimPrefix(input, ":")
	parts := strings.Fields(input)

	if len(parts) == 0 {
		return Command{Type: CommandUnknown}
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "q", "quit":
		return Command{Type: CommandQuit, Name: cmd, Args: args}
	case "t", "tab":
		return Command{Type: CommandTab, Name: cmd, Args: args}
	case "s", "sort":
		return Command{Type: CommandSort, Name: cmd, Args: args}
	case "hide":
		return Command{Type: CommandHide, Name: cmd, Args: args}
	case "r", "reload":
		return Command{Type: CommandReload, Name: cmd, Args: args}
	case "more":
		return Command{Type: CommandMore, Name: cmd, Args: args}
	case "logs":
		return Command{Type: CommandLogs, Name: cmd, Args: args}
	default:
		return Command{Type: CommandUnknown, Name: cmd, Args: args}
	}
}

type KeyHandler func(m Model) (Model, tea.Cmd)

type KeyBinding struct {
	Keys        []string
	Description string
	AvailableIn []ViewState
	Handler     KeyHandler
}

func (b *KeyBinding) availableIn(state ViewState) bool {
	for _, s := range b.AvailableIn {
		if s == state {
			return true
		}
	}
	return false
}

// CommandRegistry maps keys to handlers per view.
type CommandRegistry struct {
	keyBindings []*KeyBinding
}

func NewCommandRegistry() *CommandRegistry {
	both := []ViewState{ViewCatalog, ViewReadme}
	catalog := []ViewState{ViewCatalog}

	return &CommandRegistry{keyBindings: []*KeyBinding{
		{Keys: []string{"ctrl+c"}, Description: "Quit", AvailableIn: both, Handler: handleForceQuitKey},
		{Keys: []string{"q", "esc"}, Description: "Back/Quit", AvailableIn: both, Handler: handleQuitKey},
		{Keys: []string{":"}, Description: "Command", AvailableIn: both, Handler: handleCommandKey},
		{Keys: []string{"enter"}, Description: "Readme", AvailableIn: catalog, Handler: handleOpenReadmeKey},
		{Keys: []string{"i"}, Description: "Install/Remove", AvailableIn: both, Handler: handleInstallKey},
		{Keys: []string{"tab", "l", "right"}, Description: "Next tab", AvailableIn: catalog, Handler: handleNextTabKey},
		{Keys: []string{"shift+tab", "h", "left"}, Description: "Previous tab", AvailableIn: catalog, Handler: handlePrevTabKey},
		{Keys: []string{"s"}, Description: "Cycle sort", AvailableIn: catalog, Handler: handleSortKey},
		{Keys: []string{"H"}, Description: "Hide installed", AvailableIn: catalog, Handler: handleHideInstalledKey},
		{Keys: []string{"m"}, Description: "Load more", AvailableIn: catalog, Handler: handleLoadMoreKey},
		{Keys: []string{"r"}, Description: "Reload", AvailableIn: catalog, Handler: handleReloadKey},
		{Keys: []string{"L"}, Description: "Logs", AvailableIn: both, Handler: handleLogsKey},
	}}
}

func (r *CommandRegistry) HandleKey(m Model, key string) (Model, tea.Cmd, bool) {
	for _, binding := range r.keyBindings {
		if !binding.availableIn(m.state) {
			continue
		}
		for _, k := range binding.Keys {
			if k == key {
				newModel, cmd := binding.Handler(m)
				return newModel, cmd, true
			}
		}
	}
	return m, nil, false
}

// GetContextualShortcuts lists "<key> description" pairs for state.
func (r *CommandRegistry) GetContextualShortcuts(state ViewState) []string {
	var shortcuts []string
	for _, binding := range r.keyBindings {
		if binding.availableIn(state) && binding.Keys[0] != "ctrl+c" {
			shortcuts = append(shortcuts, fmt.Sprintf("<%s> %s", binding.Keys[0], binding.Description))
		}
	}
	return shortcuts
}

func (r *CommandRegistry) ExecuteCommand(m Model, cmd Command) (Model, tea.Cmd) {
	logger.Log("UI: Executing command: %s %v", cmd.Name, cmd.Args)

	switch cmd.Type {
	case CommandQuit:
		return m, tea.Quit
	case CommandTab:
		if len(cmd.Args) == 0 {
			return m.withError(fmt.Errorf("usage: :tab <name>"))
		}
		tab, ok := m.findTab(cmd.Args[0])
		if !ok {
			return m.withError(fmt.Errorf("no enabled tab named %q", cmd.Args[0]))
		}
		return m.switchTab(tab)
	case CommandSort:
		if len(cmd.Args) == 0 {
			return m.withError(fmt.Errorf("usage: :sort top|recent|best"))
		}
		return m.setSort(cmd.Args[0])
	case CommandHide:
		return handleHideInstalledKey(m)
	case CommandReload:
		return handleReloadKey(m)
	case CommandMore:
		return handleLoadMoreKey(m)
	case CommandLogs:
		return handleLogsKey(m)
	default:
		return m.withError(fmt.Errorf("unknown command: %s", cmd.Name))
	}
}
