package todo

import (
	"github.com/fastygo/todoview/domain"
)

// Store owns the todo collection of one session. Order is insertion order
// and only matters for bucket order; ids come from the persistence side.
type Store struct {
	todos []domain.Todo
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Init replaces the collection with todos built from records. On error the
// previous collection is kept.
func (s *Store) Init(records []domain.Record) error {
	todos := make([]domain.Todo, 0, len(records))
	for _, rec := range records {
		t, err := domain.NewTodo(rec)
		if err != nil {
			return err
		}
		todos = append(todos, t)
	}
	s.todos = todos
	return nil
}

// Add appends a todo built from rec. Ids are not checked for duplicates.
func (s *Store) Add(rec domain.Record) (domain.Todo, error) {
	t, err := domain.NewTodo(rec)
	if err != nil {
		return domain.Todo{}, err
	}
	s.todos = append(s.todos, t)
	return t, nil
}

// Remove deletes the todo with the given id.
func (s *Store) Remove(id int) error {
	i := s.index(id)
	if i < 0 {
		return domain.NotFound(id)
	}
	s.todos = append(s.todos[:i:i], s.todos[i+1:]...)
	return nil
}

// Update replaces the todo with the given id by one built from rec, as a
// remove followed by an add. rec must carry the same id.
func (s *Store) Update(id int, rec domain.Record) (domain.Todo, error) {
	t, err := domain.NewTodo(rec)
	if err != nil {
		return domain.Todo{}, err
	}
	if t.ID != id {
		return domain.Todo{}, domain.ErrIDMismatch
	}
	if err := s.Remove(id); err != nil {
		return domain.Todo{}, err
	}
	s.todos = append(s.todos, t)
	return t, nil
}

// Get returns the todo with the given id.
func (s *Store) Get(id int) (domain.Todo, error) {
	i := s.index(id)
	if i < 0 {
		return domain.Todo{}, domain.NotFound(id)
	}
	return s.todos[i], nil
}

// All returns a copy of the collection in store order.
func (s *Store) All() []domain.Todo {
	return append([]domain.Todo(nil), s.todos...)
}

// Len returns the number of todos.
func (s *Store) Len() int {
	return len(s.todos)
}

// Completed returns the completed todos in store order.
func (s *Store) Completed() []domain.Todo {
	return domain.OnlyCompleted(s.todos)
}

// GroupByDueDate maps each due-date label to its todos in store order.
func (s *Store) GroupByDueDate() map[string][]domain.Todo {
	return domain.GroupByDueDate(s.todos)
}

// GroupByDueDateSorted returns the buckets ordered by due date.
func (s *Store) GroupByDueDateSorted() []domain.DateGroup {
	return domain.SortedGroups(s.GroupByDueDate())
}

// GroupCompletedByDueDateSorted is GroupByDueDateSorted restricted to
// completed todos. Buckets left empty are dropped.
func (s *Store) GroupCompletedByDueDateSorted() []domain.DateGroup {
	groups := s.GroupByDueDate()
	for label, todos := range groups {
		completed := domain.OnlyCompleted(todos)
		if len(completed) == 0 {
			delete(groups, label)
			continue
		}
		groups[label] = completed
	}
	return domain.SortedGroups(groups)
}

func (s *Store) index(id int) int {
	for i, t := range s.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}
