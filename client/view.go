package client

import (
	"sort"
	"strings"
	"time"
)

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

type Sort string

const (
	SortCreated      Sort = "created"
	SortPriority     Sort = "priority"
	SortDueDate      Sort = "dueDate"
	SortAlphabetical Sort = "alphabetical"
)

// View is the user's current filter/sort/search selection.
type View struct {
	Filter Filter
	Sort   Sort
	Search string
}

// DefaultView matches the initial UI state: everything, newest first.
func DefaultView() View {
	return View{Filter: FilterAll, Sort: SortCreated}
}

// ApplyView produces the ordered todo list the UI renders. The input slice
// is never modified; the result is recomputed from scratch on every call.
func ApplyView(todos []Todo, view View) []Todo {
	result := make([]Todo, 0, len(todos))
	search := strings.ToLower(view.Search)

	for _, todo := range todos {
		if view.Filter == FilterActive && todo.Completed {
			continue
		}
		if view.Filter == FilterCompleted && !todo.Completed {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(todo.Text), search) {
			continue
		}
		result = append(result, todo)
	}

	// Stable sort keeps input order on ties.
	switch view.Sort {
	case SortPriority:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Priority.Weight() > result[j].Priority.Weight()
		})
	case SortDueDate:
		// Dated todos ascending, undated after all dated ones.
		sort.SliceStable(result, func(i, j int) bool {
			if result[i].DueDate == nil {
				return false
			}
			if result[j].DueDate == nil {
				return true
			}
			return result[i].DueDate.Before(*result[j].DueDate)
		})
	case SortAlphabetical:
		sort.SliceStable(result, func(i, j int) bool {
			return strings.ToLower(result[i].Text) < strings.ToLower(result[j].Text)
		})
	default: // SortCreated, newest first
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	}

	return result
}

// ViewStats aggregates the unfiltered todo set.
type ViewStats struct {
	Total     int
	Completed int
	Active    int
	Overdue   int
}

// Stats counts over the full todo set. Overdue means incomplete with a due
// date strictly before now; now is supplied by the caller so the count is
// evaluated at computation time.
func Stats(todos []Todo, now time.Time) ViewStats {
	stats := ViewStats{Total: len(todos)}
	for _, todo := range todos {
		if todo.Completed {
			stats.Completed++
			continue
		}
		stats.Active++
		if todo.DueDate != nil && todo.DueDate.Before(now) {
			stats.Overdue++
		}
	}
	return stats
}
