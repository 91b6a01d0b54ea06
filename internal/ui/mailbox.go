package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mythicsoul/spicetify-marketplace/internal/domain"
)

type CatalogResetMsg struct {
	Tab domain.Tab
}

type EntryAcceptedMsg struct {
	Entry domain.CatalogEntry
}

type LoadStateMsg struct {
	Loading bool
}

type EndOfListMsg struct{}

// EngineEventsMsg carries every catalog event queued since the last delivery,
// oldest first.
type EngineEventsMsg struct {
	Events []tea.Msg
}

// Mailbox adapts catalog callbacks to bubbletea messages. Callbacks never
// block; events queue until the program asks for them.
type Mailbox struct {
	mu      sync.Mutex
	pending []tea.Msg
	signal  chan struct{}
}

func NewMailbox() *Mailbox {
	return &Mailbox{signal: make(chan struct{}, 1)}
}

func (b *Mailbox) OnCatalogReset(tab domain.Tab) {
	b.push(CatalogResetMsg{Tab: tab})
}

func (b *Mailbox) OnEntryAccepted(entry domain.CatalogEntry) {
	b.push(EntryAcceptedMsg{Entry: entry})
}

func (b *Mailbox) OnLoadStateChanged(loading bool) {
	b.push(LoadStateMsg{Loading: loading})
}

func (b *Mailbox) OnEndOfList() {
	b.push(EndOfListMsg{})
}

func (b *Mailbox) push(msg tea.Msg) {
	b.mu.Lock()
	b.pending = append(b.pending, msg)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// Drain returns and clears the queued events.
func (b *Mailbox) Drain() []tea.Msg {
	b.mu.Lock()
	defer b.mu.Unlock()
	events := b.pending
	b.pending = nil
	return events
}

// Wait returns a command that blocks until events are queued and delivers
// them as one EngineEventsMsg.
func (b *Mailbox) Wait() tea.Cmd {
	return func() tea.Msg {
		for {
			<-b.signal
			if events := b.Drain(); len(events) > 0 {
				return EngineEventsMsg{Events: events}
			}
		}
	}
}
