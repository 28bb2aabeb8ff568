// Package todo holds the todo collection of a session, the active-view
// selection over it, and the use case that keeps both in step with the
// persistence API.
package todo

import (
	"context"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/fastygo/todoview/domain"
	"github.com/fastygo/todoview/pkg/logger"
	"github.com/fastygo/todoview/repository"
)

// MinTitleLength is the shortest title accepted for create and update.
const MinTitleLength = 3

// UseCase is one session: it exclusively owns a Store and its Selector.
// Every mutation refreshes the active view and returns it.
type UseCase struct {
	todos    repository.TodoRepository
	store    *Store
	selector *Selector
	logger   *zap.Logger
}

func New(todos repository.TodoRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	store := NewStore()
	return &UseCase{
		todos:    todos,
		store:    store,
		selector: NewSelector(store),
		logger:   logger,
	}
}

// Load fetches all records and selects the full collection.
func (uc *UseCase) Load(ctx context.Context) (domain.ActiveView, error) {
	records, err := uc.todos.List(ctx)
	if err != nil {
		return domain.ActiveView{}, err
	}
	if err := uc.store.Init(records); err != nil {
		uc.log(ctx).Error("failed to build todos", zap.Error(err))
		return domain.ActiveView{}, err
	}
	uc.log(ctx).Debug("todos loaded", zap.Int("count", uc.store.Len()))
	return uc.selector.Select(domain.AllTodosView, false), nil
}

// Create stores a new todo and switches to the full collection.
func (uc *UseCase) Create(ctx context.Context, rec domain.Record) (domain.ActiveView, error) {
	if err := validateTitle(rec.Title); err != nil {
		return domain.ActiveView{}, err
	}
	created, err := uc.todos.Create(ctx, rec)
	if err != nil {
		return domain.ActiveView{}, err
	}
	t, err := uc.store.Add(created)
	if err != nil {
		uc.log(ctx).Error("created record is unusable", zap.Error(err))
		return domain.ActiveView{}, err
	}
	uc.log(ctx).Info("todo created", zap.Int("id", t.ID))
	return uc.selector.Select(domain.AllTodosView, false), nil
}

// Update replaces the todo with the given id and refreshes the current view.
func (uc *UseCase) Update(ctx context.Context, id int, rec domain.Record) (domain.ActiveView, error) {
	if _, err := uc.store.Get(id); err != nil {
		return domain.ActiveView{}, err
	}
	if err := validateTitle(rec.Title); err != nil {
		return domain.ActiveView{}, err
	}
	return uc.update(ctx, id, rec)
}

// update skips title validation so toggling works on any stored todo.
func (uc *UseCase) update(ctx context.Context, id int, rec domain.Record) (domain.ActiveView, error) {
	if rec.ID != nil && *rec.ID != id {
		return domain.ActiveView{}, domain.ErrIDMismatch
	}

	updated, err := uc.todos.Update(ctx, id, rec)
	if err != nil {
		return domain.ActiveView{}, err
	}
	if _, err := uc.store.Update(id, updated); err != nil {
		uc.log(ctx).Error("updated record rejected", zap.Int("id", id), zap.Error(err))
		return domain.ActiveView{}, err
	}
	uc.log(ctx).Info("todo updated", zap.Int("id", id))
	return uc.selector.Refresh(), nil
}

// Toggle flips the completion flag of a todo.
func (uc *UseCase) Toggle(ctx context.Context, id int) (domain.ActiveView, error) {
	t, err := uc.store.Get(id)
	if err != nil {
		return domain.ActiveView{}, err
	}
	rec := t.Record()
	rec.Completed = !rec.Completed
	return uc.update(ctx, id, rec)
}

// MarkComplete completes a todo unless it already is.
func (uc *UseCase) MarkComplete(ctx context.Context, id int) (domain.ActiveView, error) {
	t, err := uc.store.Get(id)
	if err != nil {
		return domain.ActiveView{}, err
	}
	if t.Completed {
		return uc.selector.Active(), nil
	}
	return uc.Toggle(ctx, id)
}

// Delete removes a todo remotely and then locally.
func (uc *UseCase) Delete(ctx context.Context, id int) (domain.ActiveView, error) {
	if _, err := uc.store.Get(id); err != nil {
		return domain.ActiveView{}, err
	}
	if err := uc.todos.Delete(ctx, id); err != nil {
		return domain.ActiveView{}, err
	}
	if err := uc.store.Remove(id); err != nil {
		return domain.ActiveView{}, err
	}
	uc.log(ctx).Info("todo deleted", zap.Int("id", id))
	return uc.selector.Refresh(), nil
}

// Select changes the current view.
func (uc *UseCase) Select(title string, completedOnly bool) domain.ActiveView {
	uc.logger.Debug("view selected", zap.String("view", title), zap.Bool("completed", completedOnly))
	return uc.selector.Select(title, completedOnly)
}

// Active returns the current view.
func (uc *UseCase) Active() domain.ActiveView {
	return uc.selector.Active()
}

// Todo returns a single todo.
func (uc *UseCase) Todo(id int) (domain.Todo, error) {
	return uc.store.Get(id)
}

// Sidebar summarises the collection for navigation.
func (uc *UseCase) Sidebar() domain.Sidebar {
	return domain.Sidebar{
		AllCount:       uc.store.Len(),
		Lists:          uc.store.GroupByDueDateSorted(),
		CompletedCount: len(uc.store.Completed()),
		CompletedLists: uc.store.GroupCompletedByDueDateSorted(),
		Active:         uc.selector.Active(),
	}
}

func (uc *UseCase) log(ctx context.Context) *zap.Logger {
	return logger.WithRequestID(ctx, uc.logger)
}

func validateTitle(title string) error {
	if utf8.RuneCountInString(title) < MinTitleLength {
		return domain.ErrTitleTooShort
	}
	return nil
}
