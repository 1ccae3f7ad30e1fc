// Package pagination normalizes untrusted paging and sorting input into a
// bounded query plan. It is pure: no I/O, no side effects.
package pagination

import (
	"math"
	"slices"
)

const (
	// DefaultPage is the first page. Pages are 1-based.
	DefaultPage = 1

	// MaxPage bounds the page number so Offset cannot overflow into a
	// negative value the store would reject. A page this deep is already
	// far past any real data set.
	MaxPage = math.MaxInt32

	// MaxPerPage caps the page size so a single request cannot ask the
	// store for an unbounded result set.
	MaxPerPage = 100

	// DefaultSortColumn is the fail-safe sort column used whenever the
	// requested column is absent or not allow-listed.
	DefaultSortColumn = "id"
)

// Query carries raw, client-supplied paging values. Zero values mean unset.
type Query struct {
	Page       int
	PerPage    int
	SortColumn string
}

// Options configures normalization per entity type.
type Options struct {
	// DefaultPerPage is the page size applied when the client sends none.
	DefaultPerPage int

	// AllowedSortColumns is the allow-list of real, indexable columns that
	// may be interpolated into an ORDER BY clause. Anything else falls back
	// to DefaultSortColumn.
	AllowedSortColumns []string
}

// Plan is a validated, bounded query plan safe to hand to a repository.
type Plan struct {
	Page       int
	PerPage    int
	SortColumn string
}

// Offset returns the row offset for the plan.
func (p Plan) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Normalize turns a raw Query into a Plan.
//
// Non-positive or unset page and per-page values clamp to their defaults,
// page is capped at MaxPage, per-page at MaxPerPage, and an unrecognized
// sort column silently
// falls back to DefaultSortColumn. Falling back is a fail-safe, not an error:
// a typo in order_by must never turn into SQL or into a 4xx.
func Normalize(q Query, opts Options) Plan {
	page := q.Page
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}

	perPage := q.PerPage
	if perPage < 1 {
		perPage = opts.DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	sortColumn := DefaultSortColumn
	if slices.Contains(opts.AllowedSortColumns, q.SortColumn) {
		sortColumn = q.SortColumn
	}

	return Plan{
		Page:       page,
		PerPage:    perPage,
		SortColumn: sortColumn,
	}
}

// TotalPages returns ceil(total/perPage), and 0 when total is 0.
func TotalPages(total int64, perPage int) int64 {
	if perPage < 1 {
		return 0
	}
	return (total + int64(perPage) - 1) / int64(perPage)
}

// Page is one page of results plus the paging metadata computed for it.
type Page[T any] struct {
	PageNumber int
	PerPage    int
	Total      int64
	TotalPages int64
	Data       []T
}

// NewPage builds a Page from a plan, an independently counted total and the
// fetched rows. The two queries behind total and data are not snapshotted
// together, so they may reflect slightly different points in time under
// concurrent writes.
func NewPage[T any](plan Plan, total int64, data []T) Page[T] {
	return Page[T]{
		PageNumber: plan.Page,
		PerPage:    plan.PerPage,
		Total:      total,
		TotalPages: TotalPages(total, plan.PerPage),
		Data:       data,
	}
}
