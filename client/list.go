package client

import (
	"context"
	"errors"
	"time"

	"github.com/akashsingh062/Smart-Ai-Todo/models"
)

// Notifier receives the transient user-facing outcome of each operation,
// the way a toast widget would.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// TodoList mirrors the server-side task set. Every mutation calls the API
// first and touches local state only after a successful response; a failed
// call leaves the mirror exactly as it was.
type TodoList struct {
	api      *Client
	notifier Notifier
	todos    []Todo
	view     View
}

func NewTodoList(api *Client, notifier Notifier) *TodoList {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &TodoList{
		api:      api,
		notifier: notifier,
		view:     DefaultView(),
	}
}

// Refresh reloads the mirror from the server. Before authentication the
// call is a silent no-op; a 401 is left to the login flow, while any other
// failure is reported.
func (l *TodoList) Refresh(ctx context.Context) error {
	if l.api.Token() == "" {
		l.todos = nil
		return nil
	}

	todos, err := l.api.Todos(ctx)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			if apiErr.StatusCode != 401 {
				l.notifier.Error("Failed to load todos")
			}
		} else {
			l.notifier.Error("Failed to load todos: Network or Server Issue")
		}
		return err
	}

	l.todos = todos
	return nil
}

func (l *TodoList) Add(ctx context.Context, text string, priority models.Priority, category string, dueDate *time.Time) error {
	todo, err := l.api.AddTodo(ctx, text, priority, category, dueDate)
	if err != nil {
		l.notifier.Error("Failed to add task")
		return err
	}

	l.todos = append([]Todo{todo}, l.todos...)
	l.notifier.Success("Task added successfully!")
	return nil
}

// Toggle flips the completed flag of the given todo. Unknown ids are
// ignored.
func (l *TodoList) Toggle(ctx context.Context, id string) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return nil
	}

	completed := !l.todos[idx].Completed
	updated, err := l.api.UpdateTodo(ctx, id, TodoUpdate{Completed: &completed})
	if err != nil {
		l.notifier.Error("Failed to update task")
		return err
	}

	l.todos[idx] = updated
	if completed {
		l.notifier.Success("Task completed!")
	} else {
		l.notifier.Success("Task marked as incomplete")
	}
	return nil
}

func (l *TodoList) Update(ctx context.Context, id string, update TodoUpdate) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return nil
	}

	updated, err := l.api.UpdateTodo(ctx, id, update)
	if err != nil {
		l.notifier.Error("Failed to update task")
		return err
	}

	l.todos[idx] = updated
	l.notifier.Success("Task updated successfully!")
	return nil
}

func (l *TodoList) Delete(ctx context.Context, id string) error {
	if err := l.api.DeleteTodo(ctx, id); err != nil {
		l.notifier.Error("Failed to delete task")
		return err
	}

	remaining := l.todos[:0:0]
	for _, todo := range l.todos {
		if todo.ID != id {
			remaining = append(remaining, todo)
		}
	}
	l.todos = remaining
	l.notifier.Success("Task deleted successfully!")
	return nil
}

func (l *TodoList) ClearCompleted(ctx context.Context) error {
	if err := l.api.ClearCompleted(ctx); err != nil {
		l.notifier.Error("Failed to clear completed tasks")
		return err
	}

	remaining := l.todos[:0:0]
	for _, todo := range l.todos {
		if !todo.Completed {
			remaining = append(remaining, todo)
		}
	}
	l.todos = remaining
	l.notifier.Success("Completed tasks cleared!")
	return nil
}

// GenerateSubtasks replaces the todo's subtasks with a model-generated
// decomposition.
func (l *TodoList) GenerateSubtasks(ctx context.Context, id, taskText string) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return nil
	}

	updated, err := l.api.GenerateSubtasks(ctx, id, taskText)
	if err != nil {
		l.notifier.Error("Failed to generate subtasks")
		return err
	}

	l.todos[idx].Subtasks = updated.Subtasks
	l.notifier.Success("Subtasks generated successfully!")
	return nil
}

func (l *TodoList) SetFilter(filter Filter) { l.view.Filter = filter }
func (l *TodoList) SetSort(sortBy Sort)     { l.view.Sort = sortBy }
func (l *TodoList) SetSearch(search string) { l.view.Search = search }

func (l *TodoList) View() View { return l.view }

// Todos returns the filtered and sorted projection of the mirror.
func (l *TodoList) Todos() []Todo {
	return ApplyView(l.todos, l.view)
}

// All returns the unfiltered mirror, as Stats expects it.
func (l *TodoList) All() []Todo {
	return l.todos
}

// Stats aggregates the unfiltered set against the current instant.
func (l *TodoList) Stats() ViewStats {
	return Stats(l.todos, time.Now())
}

func (l *TodoList) indexOf(id string) int {
	for i, todo := range l.todos {
		if todo.ID == id {
			return i
		}
	}
	return -1
}
