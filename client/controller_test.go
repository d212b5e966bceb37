package client

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"backoffice/internal/domain/listing"
	"backoffice/internal/domain/page"
)

type fakeLister struct {
	mu        sync.Mutex
	respond   func(q listing.Query) (listing.Result[page.Page], error)
	deletes   []string
	deleteErr error

	calls chan listing.Query
}

func newFakeLister() *fakeLister {
	f := &fakeLister{calls: make(chan listing.Query, 16)}
	f.respond = func(listing.Query) (listing.Result[page.Page], error) {
		return listing.Result[page.Page]{}, nil
	}
	return f
}

func (f *fakeLister) ListPages(_ context.Context, q listing.Query) (listing.Result[page.Page], error) {
	f.mu.Lock()
	respond := f.respond
	f.mu.Unlock()
	f.calls <- q
	return respond(q)
}

func (f *fakeLister) DeletePage(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, id)
	return nil
}

func waitCall(t *testing.T, f *fakeLister) listing.Query {
	t.Helper()
	select {
	case q := <-f.calls:
		return q
	case <-time.After(2 * time.Second):
		t.Fatal("expected a list call, got none")
		return listing.Query{}
	}
}

func expectNoCall(t *testing.T, f *fakeLister) {
	t.Helper()
	select {
	case q := <-f.calls:
		t.Fatalf("expected no list call, got %+v", q)
	case <-time.After(150 * time.Millisecond):
	}
}

func tempPrefs(t *testing.T) *FilePrefs {
	t.Helper()
	return NewFilePrefs(filepath.Join(t.TempDir(), "prefs.json"))
}

func TestNoQueryBeforeAllSlotsSeeded(t *testing.T) {
	f := newFakeLister()
	c := NewListController(f, tempPrefs(t), "title", Hooks{})
	c.ctx = context.Background()
	go c.loop()
	defer c.Close()

	c.SetPage(2)
	c.SetPageSize(20)
	c.SetSortDirection(listing.Desc)
	expectNoCall(t, f)

	c.SetSearchText("")
	q := waitCall(t, f)
	if q.Limit != 20 || q.Skip != 20 || q.SortDir != listing.Desc {
		t.Fatalf("first query should combine all seeded slots, got %+v", q)
	}
}

func TestStartSeedsDefaultsAndFiresOnce(t *testing.T) {
	f := newFakeLister()
	c := NewListController(f, tempPrefs(t), "title", Hooks{})
	c.Start(context.Background())
	defer c.Close()

	q := waitCall(t, f)
	if q.Limit != 10 || q.Skip != 0 || q.SortDir != listing.Asc || q.Search != "" {
		t.Fatalf("default query = %+v", q)
	}
	expectNoCall(t, f)
}

func TestStartLoadsPersistedOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	// Numbers land as float64 when read back; Load must coerce them.
	raw := `{"page-list.options":{"pageSize":25,"curPage":3,"sortDirection":-1,"searchString":"ali"}}`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	f := newFakeLister()
	c := NewListController(f, NewFilePrefs(path), "title", Hooks{})
	c.Start(context.Background())
	defer c.Close()

	q := waitCall(t, f)
	if q.Limit != 25 || q.Skip != 50 || q.SortDir != listing.Desc || q.Search != "ali" {
		t.Fatalf("persisted query = %+v", q)
	}
}

func TestEachChangeEmitsExactlyOnce(t *testing.T) {
	f := newFakeLister()
	c := NewListController(f, tempPrefs(t), "title", Hooks{})
	c.Start(context.Background())
	defer c.Close()
	waitCall(t, f)

	c.SetPage(2)
	q := waitCall(t, f)
	if q.Skip != 10 {
		t.Fatalf("page 2 skip = %d, want 10", q.Skip)
	}
	expectNoCall(t, f)

	c.SetSearchText("bob")
	q = waitCall(t, f)
	if q.Search != "bob" || q.Skip != 10 {
		t.Fatalf("search query = %+v", q)
	}
	expectNoCall(t, f)
}

// blockingPrefs holds Save until released, pinning the consumer inside one
// emission so later slot writes have to pile up behind it.
type blockingPrefs struct {
	inner   PrefStore
	entered chan struct{}
	release chan struct{}
}

func (b *blockingPrefs) Load(key string) (Options, bool, error) { return b.inner.Load(key) }

func (b *blockingPrefs) Save(key string, o Options) error {
	b.entered <- struct{}{}
	<-b.release
	return b.inner.Save(key, o)
}

func TestBurstOfChangesCoalesces(t *testing.T) {
	f := newFakeLister()
	bp := &blockingPrefs{
		inner:   tempPrefs(t),
		entered: make(chan struct{}, 8),
		release: make(chan struct{}, 8),
	}
	c := NewListController(f, bp, "title", Hooks{})
	bp.release <- struct{}{}
	c.Start(context.Background())
	defer c.Close()
	<-bp.entered
	waitCall(t, f)

	// Next change enters emit and blocks on Save; two more changes land
	// while it is held and must collapse into a single follow-up emission.
	c.SetPage(2)
	<-bp.entered
	c.SetPageSize(50)
	c.SetSearchText("ali")
	bp.release <- struct{}{}
	waitCall(t, f) // the held emission (page 2 only)

	bp.release <- struct{}{}
	q := waitCall(t, f)
	if q.Limit != 50 || q.Search != "ali" || q.Skip != 50 {
		t.Fatalf("coalesced query = %+v", q)
	}
	expectNoCall(t, f)
}

func TestStaleResponseDropped(t *testing.T) {
	f := newFakeLister()
	hold := make(chan struct{})
	slow := listing.Result[page.Page]{Count: 1, Data: []page.Page{{ID: "old"}}}
	fast := listing.Result[page.Page]{Count: 1, Data: []page.Page{{ID: "new"}}}
	first := true
	var mu sync.Mutex
	f.respond = func(q listing.Query) (listing.Result[page.Page], error) {
		mu.Lock()
		mine := first
		first = false
		mu.Unlock()
		if mine {
			<-hold
			return slow, nil
		}
		return fast, nil
	}

	c := NewListController(f, tempPrefs(t), "title", Hooks{})
	c.Start(context.Background())
	defer c.Close()
	waitCall(t, f) // first query in flight, blocked

	c.SetPage(2)
	waitCall(t, f) // second query answers immediately

	deadline := time.Now().Add(2 * time.Second)
	for {
		recs, _ := c.Records()
		if len(recs) == 1 && recs[0].ID == "new" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("second response never applied, records=%+v", recs)
		}
		time.Sleep(10 * time.Millisecond)
	}

	// Release the first response; it is stale and must not win.
	close(hold)
	time.Sleep(100 * time.Millisecond)
	recs, _ := c.Records()
	if len(recs) != 1 || recs[0].ID != "new" {
		t.Fatalf("stale response overwrote newer result: %+v", recs)
	}
}

func TestEmissionUpdatesPagerAndTotal(t *testing.T) {
	f := newFakeLister()
	f.respond = func(listing.Query) (listing.Result[page.Page], error) {
		return listing.Result[page.Page]{Count: 42}, nil
	}

	pages := make(chan int, 8)
	totals := make(chan int, 8)
	c := NewListController(f, tempPrefs(t), "title", Hooks{
		Page:  func(cur int) { pages <- cur },
		Total: func(n int) { totals <- n },
	})
	c.Start(context.Background())
	defer c.Close()
	waitCall(t, f)

	if cur := <-pages; cur != 1 {
		t.Fatalf("pager page = %d, want 1", cur)
	}
	if n := <-totals; n != 42 {
		t.Fatalf("pager total = %d, want 42", n)
	}
}

func TestFailedFetchKeepsPreviousList(t *testing.T) {
	f := newFakeLister()
	good := listing.Result[page.Page]{Count: 1, Data: []page.Page{{ID: "p1"}}}
	f.respond = func(listing.Query) (listing.Result[page.Page], error) { return good, nil }

	errs := make(chan error, 8)
	c := NewListController(f, tempPrefs(t), "title", Hooks{
		Error: func(err error) { errs <- err },
	})
	c.Start(context.Background())
	defer c.Close()
	waitCall(t, f)

	deadline := time.Now().Add(2 * time.Second)
	for {
		if recs, _ := c.Records(); len(recs) == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("first fetch never applied")
		}
		time.Sleep(10 * time.Millisecond)
	}

	f.mu.Lock()
	f.respond = func(listing.Query) (listing.Result[page.Page], error) {
		return listing.Result[page.Page]{}, errors.New("boom")
	}
	f.mu.Unlock()

	c.SetPage(2)
	waitCall(t, f)
	select {
	case <-errs:
	case <-time.After(2 * time.Second):
		t.Fatal("fetch failure was not reported")
	}

	recs, count := c.Records()
	if len(recs) != 1 || recs[0].ID != "p1" || count != 1 {
		t.Fatalf("failed fetch mutated the list: recs=%+v count=%d", recs, count)
	}
}

func TestDeletePageFlagsLocallyWithoutRefetch(t *testing.T) {
	f := newFakeLister()
	f.respond = func(listing.Query) (listing.Result[page.Page], error) {
		return listing.Result[page.Page]{Count: 1, Data: []page.Page{{ID: "p1"}}}, nil
	}

	infos := make(chan string, 8)
	c := NewListController(f, tempPrefs(t), "title", Hooks{
		Confirm: func(id string) bool { return true },
		Info:    func(msg string) { infos <- msg },
	})
	c.Start(context.Background())
	defer c.Close()
	waitCall(t, f)

	deadline := time.Now().Add(2 * time.Second)
	for {
		if recs, _ := c.Records(); len(recs) == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("fetch never applied")
		}
		time.Sleep(10 * time.Millisecond)
	}

	c.DeletePage("p1")
	select {
	case <-infos:
	case <-time.After(2 * time.Second):
		t.Fatal("delete success was not notified")
	}

	recs, _ := c.Records()
	if !recs[0].Deleted {
		t.Fatal("deleted record not flagged locally")
	}
	if got := f.deletes; len(got) != 1 || got[0] != "p1" {
		t.Fatalf("delete calls = %v", got)
	}
	expectNoCall(t, f) // no refetch
}

func TestDeletePageDeclinedConfirmation(t *testing.T) {
	f := newFakeLister()
	c := NewListController(f, tempPrefs(t), "title", Hooks{
		Confirm: func(id string) bool { return false },
	})
	c.Start(context.Background())
	defer c.Close()
	waitCall(t, f)

	c.DeletePage("p1")
	if len(f.deletes) != 0 {
		t.Fatalf("declined confirmation still deleted: %v", f.deletes)
	}
}

func TestCloseStopsEmissions(t *testing.T) {
	f := newFakeLister()
	c := NewListController(f, tempPrefs(t), "title", Hooks{})
	c.Start(context.Background())
	waitCall(t, f)

	c.Close()
	c.SetPage(5)
	expectNoCall(t, f)
}
