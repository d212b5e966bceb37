package client

import (
	"context"
	"sync"

	"backoffice/internal/domain/listing"
	"backoffice/internal/domain/page"

	"github.com/rs/zerolog/log"
)

// PageLister is the remote surface the list controller drives. *Client
// satisfies it.
type PageLister interface {
	ListPages(ctx context.Context, q listing.Query) (listing.Result[page.Page], error)
	DeletePage(ctx context.Context, id string) error
}

// Hooks are the view-side callbacks. Any of them may be nil.
type Hooks struct {
	// Page receives the current page number on every coalesced emission,
	// before the query is issued.
	Page func(cur int)
	// Total receives the full filtered count after a successful fetch.
	Total func(n int)
	// Error receives every failed remote call and persistence failure.
	Error func(err error)
	// Info receives success notifications (currently only delete).
	Info func(msg string)
	// Confirm gates DeletePage; nil confirms unconditionally.
	Confirm func(id string) bool
}

// Input slots of the coalesced query. A query fires only once every slot
// has been written at least once.
const (
	slotPageSize = 1 << iota
	slotCurPage
	slotSortDir
	slotSearch

	slotAll = slotPageSize | slotCurPage | slotSortDir | slotSearch
)

// ListController joins four independently-changing inputs (page size,
// current page, sort direction, search text) into single coalesced queries
// against the page list. Every slot write after the initial seeding
// triggers one emission; writes landing while an emission is still queued
// collapse into it. Each emission persists the combined state, updates the
// pager, and issues exactly one list call.
//
// Responses are matched against a request sequence: a response that is no
// longer the newest issued query is dropped, so an in-flight fetch can
// never overwrite the result of a later one.
type ListController struct {
	api       PageLister
	prefs     PrefStore
	sortField string
	hooks     Hooks

	mu      sync.Mutex
	state   Options
	seeded  uint8
	seq     uint64
	closed  bool
	records []page.Page
	count   int

	ctx  context.Context
	kick chan struct{}
	done chan struct{}
	once sync.Once
}

// NewListController builds a controller sorting on the given field. Call
// Start before using the setters.
func NewListController(api PageLister, prefs PrefStore, sortField string, hooks Hooks) *ListController {
	return &ListController{
		api:       api,
		prefs:     prefs,
		sortField: sortField,
		hooks:     hooks,
		kick:      make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
}

// Start loads the persisted options (defaults on first run), begins the
// consumer loop, and seeds all four slots, which produces the first
// coalesced emission.
func (c *ListController) Start(ctx context.Context) {
	o, ok, err := c.prefs.Load(PrefKeyPageList)
	if err != nil {
		c.reportError(err)
		ok = false
	}
	if !ok {
		o = DefaultOptions()
	}

	c.ctx = ctx
	go c.loop()

	c.SetPageSize(o.PageSize)
	c.SetPage(o.CurPage)
	c.SetSortDirection(o.SortDir)
	c.SetSearchText(o.Search)
}

func (c *ListController) SetPageSize(n int) {
	c.set(slotPageSize, func(o *Options) {
		if n > 0 {
			o.PageSize = n
		}
	})
}

func (c *ListController) SetPage(p int) {
	c.set(slotCurPage, func(o *Options) {
		if p >= 1 {
			o.CurPage = p
		}
	})
}

func (c *ListController) SetSortDirection(d listing.SortDir) {
	c.set(slotSortDir, func(o *Options) {
		if d == listing.Desc {
			o.SortDir = listing.Desc
		} else {
			o.SortDir = listing.Asc
		}
	})
}

func (c *ListController) SetSearchText(s string) {
	c.set(slotSearch, func(o *Options) { o.Search = s })
}

func (c *ListController) set(slot uint8, apply func(*Options)) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	apply(&c.state)
	c.seeded |= slot
	ready := c.seeded == slotAll
	c.mu.Unlock()

	if !ready {
		return
	}
	select {
	case c.kick <- struct{}{}:
	default: // an emission is already queued; this change rides along
	}
}

func (c *ListController) loop() {
	for {
		select {
		case <-c.done:
			return
		case <-c.kick:
		}
		c.emit()
	}
}

// emit snapshots the combined state, persists it, updates the pager, and
// issues one query. The fetch runs off the loop so a slow response never
// delays the next emission.
func (c *ListController) emit() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	o := c.state
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	if err := c.prefs.Save(PrefKeyPageList, o); err != nil {
		c.reportError(err)
	}
	if c.hooks.Page != nil {
		c.hooks.Page(o.CurPage)
	}

	q := listing.Query{
		Limit:     o.PageSize,
		Skip:      (o.CurPage - 1) * o.PageSize,
		SortField: c.sortField,
		SortDir:   o.SortDir,
		Search:    o.Search,
	}

	go func() {
		res, err := c.api.ListPages(c.ctx, q)
		c.apply(seq, res, err)
	}()
}

func (c *ListController) apply(seq uint64, res listing.Result[page.Page], err error) {
	c.mu.Lock()
	if c.closed || seq != c.seq {
		c.mu.Unlock()
		return // stale response, a newer query has been issued
	}
	if err != nil {
		c.mu.Unlock()
		c.reportError(err)
		return
	}
	c.records = res.Data
	c.count = res.Count
	c.mu.Unlock()

	if c.hooks.Total != nil {
		c.hooks.Total(res.Count)
	}
}

// Records returns the current page slice and the total filtered count.
func (c *ListController) Records() ([]page.Page, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]page.Page, len(c.records))
	copy(out, c.records)
	return out, c.count
}

// DeletePage soft-deletes after confirmation. On success the local record
// is flagged deleted in place; the list is not re-fetched.
func (c *ListController) DeletePage(id string) {
	if c.hooks.Confirm != nil && !c.hooks.Confirm(id) {
		return
	}
	if err := c.api.DeletePage(c.ctx, id); err != nil {
		c.reportError(err)
		return
	}

	c.mu.Lock()
	for i := range c.records {
		if c.records[i].ID == id {
			c.records[i].Deleted = true
		}
	}
	c.mu.Unlock()

	if c.hooks.Info != nil {
		c.hooks.Info("page deleted")
	}
}

// Close tears the controller down. No emission or request is started after
// Close returns; an in-flight response is discarded.
func (c *ListController) Close() {
	c.once.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		close(c.done)
	})
}

func (c *ListController) reportError(err error) {
	if c.hooks.Error != nil {
		c.hooks.Error(err)
		return
	}
	log.Warn().Err(err).Msg("page list query failed")
}
