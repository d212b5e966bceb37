// Package listing defines the typed list-query contract shared by every
// paginated collection: a Query (limit/skip/sort/search) in, a Result
// envelope (total count + page slice) out. The envelope's Count always
// reflects the full filtered set; Skip and Limit shape Data only.
package listing

// SortDir is the sort direction for the list query. The wire values match
// the historical convention: 1 ascending, -1 descending.
type SortDir int

const (
	Asc  SortDir = 1
	Desc SortDir = -1
)

// Query is a coalesced list request. Search is matched case-insensitively as
// a substring against the entity's designated name-like fields; an empty
// Search adds no constraint. Soft-deleted records are always excluded
// regardless of Query contents.
type Query struct {
	Limit     int     `json:"limit"`
	Skip      int     `json:"skip"`
	SortField string  `json:"sortField,omitempty"`
	SortDir   SortDir `json:"sortDir"`
	Search    string  `json:"search,omitempty"`
}

// Normalize applies defaults and bounds in place.
func (q *Query) Normalize() {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > 200 {
		q.Limit = 200
	}
	if q.Skip < 0 {
		q.Skip = 0
	}
	if q.SortDir != Desc {
		q.SortDir = Asc
	}
}

// Result is the {count, data} envelope returned by listing operations.
type Result[T any] struct {
	Count int `json:"count"`
	Data  []T `json:"data"`
}
