package todo

import (
	"github.com/fastygo/todoview/domain"
)

// Selector resolves view requests against a store and remembers the
// current one. It never caches data: every call reads the store.
type Selector struct {
	store  *Store
	active domain.ActiveView
}

// NewSelector binds a selector to store. The initial view is the full
// collection.
func NewSelector(store *Store) *Selector {
	s := &Selector{store: store}
	s.Select(domain.AllTodosView, false)
	return s
}

// Select computes the view for title, optionally restricted to completed
// todos, and makes it current. Unknown date labels yield an empty view.
func (s *Selector) Select(title string, completedOnly bool) domain.ActiveView {
	var data []domain.Todo
	if domain.IsWholeCollection(title) {
		data = s.store.All()
	} else {
		data = s.store.GroupByDueDate()[title]
	}

	if completedOnly {
		data = domain.OnlyCompleted(data)
	}

	s.active = domain.ActiveView{
		Title:     title,
		Completed: completedOnly,
		Data:      domain.OrderForDisplay(data),
	}
	return s.active
}

// Refresh recomputes the current view with the same parameters. Callers
// run it after every store mutation.
func (s *Selector) Refresh() domain.ActiveView {
	return s.Select(s.active.Title, s.active.Completed)
}

// Active returns the current view.
func (s *Selector) Active() domain.ActiveView {
	return s.active
}
