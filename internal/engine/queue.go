package engine

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Mythicsoul/spicetify-marketplace/internal/domain"
)

type State int

const (
	StateFetchingPage State = iota
	StateAwaitingMore
	StateSatisfied
	StateEndOfResults
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateFetchingPage:
		return "fetching"
	case StateAwaitingMore:
		return "awaiting-more"
	case StateSatisfied:
		return "satisfied"
	case StateEndOfResults:
		return "end"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Running reports whether a load step owns the queue.
func (s State) Running() bool {
	return s == StateFetchingPage || s == StateAwaitingMore
}

// Terminal states never change again.
func (s State) Terminal() bool {
	return s == StateEndOfResults || s == StateCancelled
}

// Queue is one pagination run for one tab activation. Only the coordinator
// changes its state.
type Queue struct {
	ID         string
	Generation uint64
	Tab        domain.Tab
	Sort       domain.SortOrder

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	page  int
	state State
}

func newQueue(parent context.Context, generation uint64, tab domain.Tab, sort domain.SortOrder) *Queue {
	ctx, cancel := context.WithCancel(parent)
	return &Queue{
		ID:         uuid.New().String(),
		Generation: generation,
		Tab:        tab,
		Sort:       sort,
		ctx:        ctx,
		cancel:     cancel,
		state:      StateAwaitingMore,
	}
}

func (q *Queue) State() State {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

func (q *Queue) setState(s State) State {
	q.mu.Lock()
	defer q.mu.Unlock()
	prev := q.state
	q.state = s
	return prev
}

// NextPage is the page the next fetch will request. An unset page is page 1.
func (q *Queue) NextPage() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.page < 1 {
		return 1
	}
	return q.page
}

func (q *Queue) advance(page int) {
	q.mu.Lock()
	q.page = page + 1
	q.mu.Unlock()
}
