package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akashsingh062/Smart-Ai-Todo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(message string) { n.successes = append(n.successes, message) }
func (n *recordingNotifier) Error(message string)   { n.errors = append(n.errors, message) }

// fakeServer serves a fixed todo set and accepts mutations.
func fakeServer(t *testing.T, todosJSON string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			w.Write([]byte(`{"message":"Server error"}`))
			return
		}
		w.Write([]byte(todosJSON))
	}))
}

func TestRefreshSilentWhenUnauthenticated(t *testing.T) {
	notifier := &recordingNotifier{}
	list := NewTodoList(New("http://unused.invalid"), notifier)

	err := list.Refresh(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notifier.errors, "no notification before authentication")
	assert.Empty(t, list.All())
}

func TestRefreshReportsServerFailure(t *testing.T) {
	server := fakeServer(t, "", http.StatusInternalServerError)
	defer server.Close()

	notifier := &recordingNotifier{}
	c := New(server.URL)
	c.SetToken("tok")
	list := NewTodoList(c, notifier)

	err := list.Refresh(context.Background())
	require.Error(t, err)
	require.Len(t, notifier.errors, 1)
	assert.Equal(t, "Failed to load todos", notifier.errors[0])
}

func TestRefreshSuppresses401(t *testing.T) {
	server := fakeServer(t, "", http.StatusUnauthorized)
	defer server.Close()

	notifier := &recordingNotifier{}
	c := New(server.URL)
	c.SetToken("stale-token")
	list := NewTodoList(c, notifier)

	err := list.Refresh(context.Background())
	require.Error(t, err)
	assert.Empty(t, notifier.errors, "401 is handled by the login flow, not a toast")
}

func TestRefreshReportsNetworkFailure(t *testing.T) {
	notifier := &recordingNotifier{}
	c := New("http://127.0.0.1:1") // nothing listens here
	c.SetToken("tok")
	list := NewTodoList(c, notifier)

	err := list.Refresh(context.Background())
	require.Error(t, err)
	require.Len(t, notifier.errors, 1)
	assert.Equal(t, "Failed to load todos: Network or Server Issue", notifier.errors[0])
}

func TestAddPrependsOnSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"_id":"new1","text":"New task","completed":false,"priority":"medium","category":"General","createdAt":"2026-08-28T10:00:00Z"}`))
	}))
	defer server.Close()

	notifier := &recordingNotifier{}
	c := New(server.URL)
	c.SetToken("tok")
	list := NewTodoList(c, notifier)
	list.todos = []Todo{{ID: "old1", Text: "Old task"}}

	err := list.Add(context.Background(), "New task", models.PriorityMedium, "General", nil)
	require.NoError(t, err)
	require.Len(t, list.All(), 2)
	assert.Equal(t, "new1", list.All()[0].ID)
	assert.Equal(t, []string{"Task added successfully!"}, notifier.successes)
}

func TestAddFailureLeavesStateUntouched(t *testing.T) {
	server := fakeServer(t, "", http.StatusInternalServerError)
	defer server.Close()

	notifier := &recordingNotifier{}
	c := New(server.URL)
	c.SetToken("tok")
	list := NewTodoList(c, notifier)
	list.todos = []Todo{{ID: "old1", Text: "Old task"}}

	err := list.Add(context.Background(), "New task", models.PriorityMedium, "General", nil)
	require.Error(t, err)
	require.Len(t, list.All(), 1)
	assert.Equal(t, "old1", list.All()[0].ID)
	assert.Equal(t, []string{"Failed to add task"}, notifier.errors)
}

func TestToggleUpdatesLocalState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var update map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&update))
		require.Equal(t, true, update["completed"])
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"_id":"t1","text":"Task","completed":true,"priority":"medium","category":"General","createdAt":"2026-08-01T10:00:00Z"}`))
	}))
	defer server.Close()

	notifier := &recordingNotifier{}
	c := New(server.URL)
	c.SetToken("tok")
	list := NewTodoList(c, notifier)
	list.todos = []Todo{{ID: "t1", Text: "Task", Completed: false}}

	err := list.Toggle(context.Background(), "t1")
	require.NoError(t, err)
	assert.True(t, list.All()[0].Completed)
	assert.Equal(t, []string{"Task completed!"}, notifier.successes)
}

func TestToggleUnknownIDIsNoOp(t *testing.T) {
	notifier := &recordingNotifier{}
	list := NewTodoList(New("http://unused.invalid"), notifier)

	err := list.Toggle(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, notifier.errors)
}

func TestDeleteRemovesOnSuccess(t *testing.T) {
	server := fakeServer(t, `{"message":"Todo deleted successfully"}`, http.StatusOK)
	defer server.Close()

	notifier := &recordingNotifier{}
	c := New(server.URL)
	c.SetToken("tok")
	list := NewTodoList(c, notifier)
	list.todos = []Todo{{ID: "t1"}, {ID: "t2"}}

	err := list.Delete(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, list.All(), 1)
	assert.Equal(t, "t2", list.All()[0].ID)
}

func TestClearCompletedKeepsActive(t *testing.T) {
	server := fakeServer(t, `{"message":"Completed todos cleared successfully"}`, http.StatusOK)
	defer server.Close()

	notifier := &recordingNotifier{}
	c := New(server.URL)
	c.SetToken("tok")
	list := NewTodoList(c, notifier)
	list.todos = []Todo{{ID: "t1", Completed: true}, {ID: "t2", Completed: false}}

	err := list.ClearCompleted(context.Background())
	require.NoError(t, err)
	require.Len(t, list.All(), 1)
	assert.Equal(t, "t2", list.All()[0].ID)
	assert.Equal(t, []string{"Completed tasks cleared!"}, notifier.successes)
}

func TestGenerateSubtasksStoresReplacedList(t *testing.T) {
	server := fakeServer(t, `{"todo":{"_id":"t1","text":"Plan trip","completed":false,"priority":"medium","category":"General","createdAt":"2026-08-01T10:00:00Z","subtasks":[{"text":"Pack","completed":false}]}}`, http.StatusOK)
	defer server.Close()

	notifier := &recordingNotifier{}
	c := New(server.URL)
	c.SetToken("tok")
	list := NewTodoList(c, notifier)
	list.todos = []Todo{{ID: "t1", Text: "Plan trip", Subtasks: []models.Subtask{{Text: "stale", Completed: true}}}}

	err := list.GenerateSubtasks(context.Background(), "t1", "Plan trip")
	require.NoError(t, err)
	require.Len(t, list.All()[0].Subtasks, 1)
	assert.Equal(t, "Pack", list.All()[0].Subtasks[0].Text)
}

func TestTodosAppliesCurrentView(t *testing.T) {
	list := NewTodoList(New("http://unused.invalid"), nil)
	now := time.Now()
	list.todos = []Todo{
		{ID: "a", Text: "alpha", Completed: true, CreatedAt: now},
		{ID: "b", Text: "beta", Completed: false, CreatedAt: now.Add(time.Hour)},
	}

	list.SetFilter(FilterActive)
	result := list.Todos()
	require.Len(t, result, 1)
	assert.Equal(t, "b", result[0].ID)

	list.SetFilter(FilterAll)
	list.SetSearch("ALP")
	result = list.Todos()
	require.Len(t, result, 1)
	assert.Equal(t, "a", result[0].ID)
}
