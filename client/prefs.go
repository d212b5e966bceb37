// Package client is the programmatic consumer of the backoffice API: an
// HTTP client for the remote surface plus the list controller that turns
// independent paging/sorting/search inputs into coalesced queries.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"backoffice/internal/domain/listing"
)

// PrefKeyPageList is the preference slot for the page list view.
const PrefKeyPageList = "page-list.options"

// Options is the persisted list-view state. The zero value is not usable;
// call DefaultOptions for the first-run state.
type Options struct {
	PageSize int
	CurPage  int
	SortDir  listing.SortDir
	Search   string
}

func DefaultOptions() Options {
	return Options{PageSize: 10, CurPage: 1, SortDir: listing.Asc, Search: ""}
}

// PrefStore persists view options across sessions, keyed by view identity.
// Last write wins.
type PrefStore interface {
	Load(key string) (Options, bool, error)
	Save(key string, o Options) error
}

// FilePrefs keeps all preference slots in one JSON file.
type FilePrefs struct {
	path string
}

func NewFilePrefs(path string) *FilePrefs { return &FilePrefs{path: path} }

func (f *FilePrefs) read() (map[string]map[string]any, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}
	all := map[string]map[string]any{}
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("preferences file %s: %w", f.path, err)
	}
	return all, nil
}

// Load reads one slot. Numeric fields come back from JSON as float64 and are
// coerced here; missing fields fall back to the defaults.
func (f *FilePrefs) Load(key string) (Options, bool, error) {
	all, err := f.read()
	if err != nil {
		return Options{}, false, err
	}
	slot, ok := all[key]
	if !ok {
		return Options{}, false, nil
	}

	o := DefaultOptions()
	if n, ok := asInt(slot["pageSize"]); ok && n > 0 {
		o.PageSize = n
	}
	if n, ok := asInt(slot["curPage"]); ok && n >= 1 {
		o.CurPage = n
	}
	if n, ok := asInt(slot["sortDirection"]); ok && listing.SortDir(n) == listing.Desc {
		o.SortDir = listing.Desc
	}
	if s, ok := slot["searchString"].(string); ok {
		o.Search = s
	}
	return o, true, nil
}

func (f *FilePrefs) Save(key string, o Options) error {
	all, err := f.read()
	if err != nil {
		return err
	}
	all[key] = map[string]any{
		"pageSize":      o.PageSize,
		"curPage":       o.CurPage,
		"sortDirection": int(o.SortDir),
		"searchString":  o.Search,
	}
	raw, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(f.path, raw, 0o600)
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}
