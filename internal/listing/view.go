// Package listing holds the in-memory business collection behind the
// list pages: it refreshes from the directory API, derives filter
// facets, and computes the visible subset for the current selection.
package listing

import (
	"context"
	"sync"

	"github.com/grensregio/directory-ui/internal/directory"
)

// Lister is the slice of the API client the view needs.
type Lister interface {
	ListBusinesses(ctx context.Context, filters directory.Filters) ([]directory.Business, error)
}

// Field names a filterable business attribute.
type Field string

const (
	FieldCategory Field = "category"
	FieldCity     Field = "city"
)

// View caches the last fetched business collection and applies the
// current filter selection to it. Safe for concurrent use.
//
// Refreshes carry a monotonically increasing sequence number; a
// response is applied only when no newer refresh has been issued, so a
// slow in-flight request can never clobber fresher data.
type View struct {
	lister Lister

	// serverSide asks the API to filter instead of filtering the held
	// collection locally. The admin page uses the local variant so its
	// facet dropdowns stay complete.
	serverSide bool

	mu         sync.RWMutex
	businesses []directory.Business
	category   string
	city       string
	issued     uint64
}

// NewView builds a view that filters the held collection locally.
func NewView(lister Lister) *View {
	return &View{lister: lister}
}

// NewServerFilteredView builds a view that passes the current selection
// to the API on every refresh.
func NewServerFilteredView(lister Lister) *View {
	return &View{lister: lister, serverSide: true}
}

// Refresh replaces the held collection with a fresh fetch. Stale
// responses, ones overtaken by a newer Refresh before they landed, are
// discarded without error.
func (v *View) Refresh(ctx context.Context) error {
	v.mu.Lock()
	v.issued++
	seq := v.issued
	filters := v.requestFilters()
	v.mu.Unlock()

	businesses, err := v.lister.ListBusinesses(ctx, filters)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if seq != v.issued {
		return nil
	}
	v.businesses = businesses
	return nil
}

// requestFilters builds the query filters for a server-side view.
// Callers must hold v.mu.
func (v *View) requestFilters() directory.Filters {
	if !v.serverSide {
		return directory.Filters{}
	}
	var f directory.Filters
	if v.category != "" {
		c := v.category
		f.Category = &c
	}
	if v.city != "" {
		c := v.city
		f.City = &c
	}
	return f
}

// SetFilter updates one field of the filter selection. The empty value
// clears the field. Unknown fields are ignored.
func (v *View) SetFilter(field Field, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch field {
	case FieldCategory:
		v.category = value
	case FieldCity:
		v.city = value
	}
}

// ClearFilters resets the selection so every held business is visible.
func (v *View) ClearFilters() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.category = ""
	v.city = ""
}

// Selection returns the current filter values, empty meaning unset.
func (v *View) Selection() (category, city string) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.category, v.city
}

// Visible returns the held businesses matching the current selection,
// in collection order. An unset field matches everything; a set field
// matches only on exact, case-sensitive equality.
func (v *View) Visible() []directory.Business {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]directory.Business, 0, len(v.businesses))
	for _, b := range v.businesses {
		if v.category != "" && b.Category != v.category {
			continue
		}
		if v.city != "" && b.City != v.city {
			continue
		}
		out = append(out, b)
	}
	return out
}

// VisibleWith applies an ad hoc selection without touching the view's
// own one. Used by request handlers where the selection arrives in the
// query string and must not leak between users.
func (v *View) VisibleWith(category, city string) []directory.Business {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]directory.Business, 0, len(v.businesses))
	for _, b := range v.businesses {
		if category != "" && b.Category != category {
			continue
		}
		if city != "" && b.City != city {
			continue
		}
		out = append(out, b)
	}
	return out
}

// All returns a copy of the held collection regardless of selection.
func (v *View) All() []directory.Business {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]directory.Business, len(v.businesses))
	copy(out, v.businesses)
	return out
}

// Categories returns the distinct category values in the held
// collection, in first-seen order.
func (v *View) Categories() []string {
	return v.facet(func(b directory.Business) string { return b.Category })
}

// Cities returns the distinct city values in the held collection, in
// first-seen order.
func (v *View) Cities() []string {
	return v.facet(func(b directory.Business) string { return b.City })
}

func (v *View) facet(key func(directory.Business) string) []string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	seen := make(map[string]struct{}, len(v.businesses))
	out := make([]string, 0, len(v.businesses))
	for _, b := range v.businesses {
		k := key(b)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
