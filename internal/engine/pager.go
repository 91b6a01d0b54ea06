package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Mythicsoul/spicetify-marketplace/internal/domain"
	"github.com/Mythicsoul/spicetify-marketplace/internal/logger"
)

const (
	DefaultQuantity    = 100
	DefaultConcurrency = 8
)

// sink is where a load step publishes. The boolean methods report false once
// the queue is no longer current.
type sink interface {
	current(q *Queue) bool
	transition(q *Queue, s State) bool
	publish(q *Queue, entry domain.CatalogEntry) bool
	catalogLen() int
}

// Pager walks a source for one load step.
type Pager struct {
	pageSize    int
	concurrency int
}

func NewPager(pageSize, concurrency int) *Pager {
	if pageSize <= 0 || pageSize > domain.PageSize {
		pageSize = domain.PageSize
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Pager{pageSize: pageSize, concurrency: concurrency}
}

// Step loads until the catalog holds target entries or the source runs out.
// The returned state is what the queue should settle in.
func (p *Pager) Step(ctx context.Context, q *Queue, src domain.Source, target int, out sink) State {
	switch s := src.(type) {
	case domain.PagedSource:
		return p.stepPaged(ctx, q, s, target, out)
	case domain.ListSource:
		return p.stepList(ctx, q, s, out)
	default:
		logger.Log("Engine: tab %s has no usable source", q.Tab)
		return StateEndOfResults
	}
}

func (p *Pager) stepList(ctx context.Context, q *Queue, src domain.ListSource, out sink) State {
	if !out.transition(q, StateFetchingPage) {
		return StateCancelled
	}

	entries := src.FetchAll(ctx)
	for _, entry := range entries {
		if !out.publish(q, entry) {
			return StateCancelled
		}
	}

	logger.Log("Engine: %s listed %d entries", q.Tab, len(entries))
	return StateEndOfResults
}

func (p *Pager) stepPaged(ctx context.Context, q *Queue, src domain.PagedSource, target int, out sink) State {
	for {
		page := q.NextPage()
		if !out.transition(q, StateFetchingPage) {
			return StateCancelled
		}

		sp := src.FetchPage(ctx, page, q.Sort)
		if ctx.Err() != nil || !out.current(q) {
			return StateCancelled
		}

		for _, entries := range p.resolve(ctx, q, src, sp.Items, out) {
			for _, entry := range entries {
				if !out.publish(q, entry) {
					return StateCancelled
				}
			}
		}

		// An empty page ends the run even when the total claims more, since the
		// search API stops serving pages past its result cap.
		if sp.PageCount == 0 || p.pageSize*(page-1)+sp.PageCount >= sp.TotalCount {
			logger.Log("Engine: %s reached the end at page %d (%d total)", q.Tab, page, sp.TotalCount)
			return StateEndOfResults
		}

		q.advance(page)
		if out.catalogLen() >= target {
			return StateSatisfied
		}
		if !out.transition(q, StateAwaitingMore) {
			return StateCancelled
		}
	}
}

// resolve expands candidates with bounded concurrency. Results keep page
// order. Workers skip their candidate once the queue is superseded.
func (p *Pager) resolve(ctx context.Context, q *Queue, src domain.PagedSource, items []domain.Candidate, out sink) [][]domain.CatalogEntry {
	results := make([][]domain.CatalogEntry, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, candidate := range items {
		g.Go(func() error {
			if gctx.Err() != nil || !out.current(q) {
				return nil
			}
			results[i] = src.Resolve(gctx, candidate)
			return nil
		})
	}
	_ = g.Wait()

	return results
}
