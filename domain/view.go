package domain

import (
	"cmp"
	"slices"
)

// View titles owned by the rendering side. Both select the whole collection;
// "Completed" relies on the completed-only flag to filter.
const (
	AllTodosView  = "All Todos"
	CompletedView = "Completed"
)

// ActiveView is the ordered list currently selected for display together
// with the parameters that produced it.
type ActiveView struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Data      []Todo `json:"data"`
}

// DateGroup is one due-date bucket.
type DateGroup struct {
	Title string `json:"title"`
	Data  []Todo `json:"data"`
}

// Sidebar carries everything a sidebar renders.
type Sidebar struct {
	AllCount       int         `json:"all_count"`
	Lists          []DateGroup `json:"lists"`
	CompletedCount int         `json:"completed_count"`
	CompletedLists []DateGroup `json:"completed_lists"`
	Active         ActiveView  `json:"active"`
}

// IsWholeCollection reports whether title selects every todo.
func IsWholeCollection(title string) bool {
	return title == AllTodosView || title == CompletedView
}

// GroupByDueDate buckets todos by label, keeping input order in each bucket.
func GroupByDueDate(todos []Todo) map[string][]Todo {
	groups := make(map[string][]Todo)
	for _, t := range todos {
		groups[t.DueDate] = append(groups[t.DueDate], t)
	}
	return groups
}

// SortedGroups flattens a grouping into buckets ordered by CompareDueDates.
func SortedGroups(groups map[string][]Todo) []DateGroup {
	result := make([]DateGroup, 0, len(groups))
	for label, todos := range groups {
		result = append(result, DateGroup{Title: label, Data: todos})
	}
	slices.SortFunc(result, func(a, b DateGroup) int {
		return CompareDueDates(a.Title, b.Title)
	})
	return result
}

// CompareDueDates orders labels: NoDueDate first, then by year and month
// ascending. Labels that do not parse as month/year sort last, by text.
func CompareDueDates(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == NoDueDate:
		return -1
	case b == NoDueDate:
		return 1
	}

	am, ay, aok := parseLabel(a)
	bm, by, bok := parseLabel(b)
	switch {
	case aok && bok:
		if c := cmp.Compare(ay, by); c != 0 {
			return c
		}
		if c := cmp.Compare(am, bm); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	case aok:
		return -1
	case bok:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}

// OnlyCompleted returns the completed members of todos in input order.
func OnlyCompleted(todos []Todo) []Todo {
	var completed []Todo
	for _, t := range todos {
		if t.Completed {
			completed = append(completed, t)
		}
	}
	return completed
}

// OrderForDisplay puts uncompleted todos before completed ones, each part
// sorted by id ascending. The input slice is left untouched.
func OrderForDisplay(todos []Todo) []Todo {
	var open, done []Todo
	for _, t := range todos {
		if t.Completed {
			done = append(done, t)
		} else {
			open = append(open, t)
		}
	}
	byID := func(a, b Todo) int { return cmp.Compare(a.ID, b.ID) }
	slices.SortStableFunc(open, byID)
	slices.SortStableFunc(done, byID)

	result := make([]Todo, 0, len(todos))
	result = append(result, open...)
	return append(result, done...)
}
