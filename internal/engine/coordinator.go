// Package engine drives incremental catalog loading. A Coordinator owns the
// catalog of the active tab and the load queues feeding it; only the most
// recently started queue may publish.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/Mythicsoul/spicetify-marketplace/internal/domain"
	"github.com/Mythicsoul/spicetify-marketplace/internal/logger"
	"github.com/Mythicsoul/spicetify-marketplace/internal/provider/common"
)

// Listener receives catalog changes. Callbacks run while the coordinator lock
// is held, so they must return quickly and must not call back into the
// coordinator.
type Listener interface {
	OnCatalogReset(tab domain.Tab)

	OnEntryAccepted(entry domain.CatalogEntry)

	OnLoadStateChanged(loading bool)

	OnEndOfList()
}

type Denylist interface {
	Contains(repoURL string) bool
}

type InstalledChecker interface {
	IsInstalled(key string) bool
}

type Options struct {
	PageSize      int
	Concurrency   int
	Denylist      Denylist
	Installed     InstalledChecker
	HideInstalled bool
}

type Coordinator struct {
	parent    context.Context
	sources   map[domain.Tab]domain.Source
	pager     *Pager
	listener  Listener
	denylist  Denylist
	installed InstalledChecker

	mu            sync.Mutex
	queues        []*Queue
	generation    uint64
	catalog       []domain.CatalogEntry
	seen          map[string]struct{}
	hideInstalled bool

	wg sync.WaitGroup
}

// NewCoordinator builds a coordinator over one source per tab. Queues derive
// their contexts from ctx.
func NewCoordinator(ctx context.Context, sources []domain.Source, listener Listener, opts Options) *Coordinator {
	bySource := make(map[domain.Tab]domain.Source, len(sources))
	for _, src := range sources {
		bySource[src.Tab()] = src
	}
	if listener == nil {
		listener = nopListener{}
	}
	return &Coordinator{
		parent:        ctx,
		sources:       bySource,
		pager:         NewPager(opts.PageSize, opts.Concurrency),
		listener:      listener,
		denylist:      opts.Denylist,
		installed:     opts.Installed,
		hideInstalled: opts.HideInstalled,
		seen:          make(map[string]struct{}),
	}
}

// Tabs lists the tabs that have a source.
func (c *Coordinator) Tabs() []domain.Tab {
	tabs := make([]domain.Tab, 0, len(c.sources))
	for _, tab := range domain.AllTabs {
		if _, ok := c.sources[tab]; ok {
			tabs = append(tabs, tab)
		}
	}
	return tabs
}

// StartNewQueue supersedes every outstanding queue, empties the catalog and
// starts loading tab until quantity entries are accepted.
func (c *Coordinator) StartNewQueue(tab domain.Tab, sort domain.SortOrder, quantity int) (*Queue, error) {
	src, ok := c.sources[tab]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrUnknownTab, tab)
	}
	if quantity <= 0 {
		quantity = DefaultQuantity
	}

	c.mu.Lock()
	c.generation++
	for _, old := range c.queues {
		old.cancel()
		if !old.State().Running() {
			old.setState(StateCancelled)
		}
	}
	q := newQueue(c.parent, c.generation, tab, sort)
	c.queues = append([]*Queue{q}, c.queues...)
	c.pruneLocked()
	c.catalog = nil
	c.seen = make(map[string]struct{})
	c.listener.OnCatalogReset(tab)
	c.mu.Unlock()

	logger.Log("Engine: queue %s (gen %d) started for %s sorted by %s", q.ID, q.Generation, tab, sort)
	c.launch(q, src, quantity)
	return q, nil
}

// ContinueQueue asks the current queue for quantity more entries. It is
// ignored while the queue is loading or once it has ended.
func (c *Coordinator) ContinueQueue(quantity int) bool {
	if quantity <= 0 {
		quantity = DefaultQuantity
	}

	c.mu.Lock()
	if len(c.queues) == 0 {
		c.mu.Unlock()
		return false
	}
	q := c.queues[0]
	if state := q.State(); state.Running() || state.Terminal() {
		c.mu.Unlock()
		return false
	}
	q.setState(StateAwaitingMore)
	target := len(c.catalog) + quantity
	c.mu.Unlock()

	logger.Log("Engine: queue %s continuing at page %d", q.ID, q.NextPage())
	c.launch(q, c.sources[q.Tab], target)
	return true
}

func (c *Coordinator) IsStale(q *Queue) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.currentLocked(q)
}

// Current returns the authoritative queue, or nil before the first start.
func (c *Coordinator) Current() *Queue {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queues) == 0 {
		return nil
	}
	return c.queues[0]
}

// Outstanding is the number of queues not yet pruned, the current one included.
func (c *Coordinator) Outstanding() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queues)
}

func (c *Coordinator) Catalog() []domain.CatalogEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CatalogEntry, len(c.catalog))
	copy(out, c.catalog)
	return out
}

// SetHideInstalled changes filtering for entries published from now on.
func (c *Coordinator) SetHideInstalled(hide bool) {
	c.mu.Lock()
	c.hideInstalled = hide
	c.mu.Unlock()
}

// Wait blocks until every launched load step has returned.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// Close cancels all queues and waits for their steps to return.
func (c *Coordinator) Close() {
	c.mu.Lock()
	for _, q := range c.queues {
		q.cancel()
	}
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *Coordinator) launch(q *Queue, src domain.Source, quantity int) {
	c.wg.Add(1)
	go c.run(q, src, quantity)
}

func (c *Coordinator) run(q *Queue, src domain.Source, target int) {
	defer c.wg.Done()
	state := c.pager.Step(q.ctx, q, src, target, c)
	c.finish(q, state)
}

func (c *Coordinator) finish(q *Queue, state State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.currentLocked(q) || state == StateCancelled {
		q.setState(StateCancelled)
		q.cancel()
		c.pruneLocked()
		logger.Log("Engine: queue %s (gen %d) dropped", q.ID, q.Generation)
		return
	}

	c.transitionLocked(q, state)
	if state == StateEndOfResults {
		c.listener.OnEndOfList()
	}
	c.pruneLocked()
	logger.Log("Engine: queue %s settled as %s with %d entries", q.ID, state, len(c.catalog))
}

// pruneLocked drops every queue except the head once it is stale or done.
func (c *Coordinator) pruneLocked() {
	if len(c.queues) <= 1 {
		return
	}
	kept := c.queues[:1]
	for _, q := range c.queues[1:] {
		if q.State() != StateCancelled {
			kept = append(kept, q)
		}
	}
	c.queues = kept
}

func (c *Coordinator) currentLocked(q *Queue) bool {
	return q != nil && q.Generation == c.generation
}

func (c *Coordinator) current(q *Queue) bool {
	return !c.IsStale(q)
}

func (c *Coordinator) transition(q *Queue, s State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.currentLocked(q) {
		return false
	}
	c.transitionLocked(q, s)
	return true
}

func (c *Coordinator) transitionLocked(q *Queue, s State) {
	prev := q.setState(s)
	if prev == s {
		return
	}
	if s == StateFetchingPage {
		c.listener.OnLoadStateChanged(true)
	} else if prev == StateFetchingPage {
		c.listener.OnLoadStateChanged(false)
	}
}

// publish appends entry to the catalog unless it is filtered. It returns false
// only when q has been superseded.
func (c *Coordinator) publish(q *Queue, entry domain.CatalogEntry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.currentLocked(q) {
		return false
	}

	if c.denylist != nil && c.denylist.Contains(entry.Repository.URL()) {
		return true
	}
	key := entry.Key()
	if _, dup := c.seen[key]; dup {
		return true
	}
	if c.hideInstalled && q.Tab != domain.TabInstalled && c.installed != nil && c.installed.IsInstalled(key) {
		return true
	}

	c.seen[key] = struct{}{}
	c.catalog = append(c.catalog, entry)
	c.listener.OnEntryAccepted(entry)
	return true
}

func (c *Coordinator) catalogLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.catalog)
}

type nopListener struct{}

func (nopListener) OnCatalogReset(domain.Tab)           {}
func (nopListener) OnEntryAccepted(domain.CatalogEntry) {}
func (nopListener) OnLoadStateChanged(bool)             {}
func (nopListener) OnEndOfList()                        {}
