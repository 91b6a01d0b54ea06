package domain

import "context"

// PageSize is the largest page the repository search API serves.
const PageSize = 100

type Source interface {
	Tab() Tab
}

// PagedSource walks remote search result pages. FetchPage never fails: transport
// problems produce an empty page.
type PagedSource interface {
	Source

	FetchPage(ctx context.Context, page int, sort SortOrder) SourcePage

	Resolve(ctx context.Context, candidate Candidate) []CatalogEntry
}

// ListSource has no pagination and yields everything in one step.
type ListSource interface {
	Source

	FetchAll(ctx context.Context) []CatalogEntry
}
