package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akashsingh062/Smart-Ai-Todo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodosDecodesWireFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/todos", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"_id":"652f1a2b3c4d5e6f70818283","text":"Write report","completed":false,
			 "priority":"high","category":"Work","createdAt":"2026-08-01T10:00:00Z",
			 "dueDate":"2026-09-01T00:00:00Z","subtasks":[{"text":"Outline","completed":true}]},
			{"_id":"652f1a2b3c4d5e6f70818284","text":"Buy milk","completed":true,
			 "priority":"low","category":"General","createdAt":"2026-08-02T10:00:00Z"}
		]`))
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetToken("tok")

	todos, err := c.Todos(context.Background())
	require.NoError(t, err)
	require.Len(t, todos, 2)

	first := todos[0]
	assert.Equal(t, "652f1a2b3c4d5e6f70818283", first.ID)
	assert.Equal(t, "Write report", first.Text)
	assert.Equal(t, models.PriorityHigh, first.Priority)
	assert.Equal(t, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC), first.CreatedAt)
	require.NotNil(t, first.DueDate)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), *first.DueDate)
	require.Len(t, first.Subtasks, 1)
	assert.Equal(t, models.Subtask{Text: "Outline", Completed: true}, first.Subtasks[0])

	assert.Nil(t, todos[1].DueDate, "absent dueDate must stay nil")
}

func TestAPIErrorCarriesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Todo not found"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetToken("tok")

	_, err := c.UpdateTodo(context.Background(), "652f1a2b3c4d5e6f70818283", TodoUpdate{})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Todo not found", apiErr.Message)
}

func TestLoginStoresToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "a@b.c", req["email"])
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"issued-token","user":{"_id":"652f1a2b3c4d5e6f70818283","username":"alice","email":"a@b.c"}}`))
	}))
	defer server.Close()

	c := New(server.URL)
	result, err := c.Login(context.Background(), "a@b.c", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "issued-token", result.Token)
	assert.Equal(t, "alice", result.User.Username)
	assert.Equal(t, "issued-token", c.Token())
}

func TestUpdateTodoSendsOnlyProvidedFields(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"_id":"652f1a2b3c4d5e6f70818283","text":"x","completed":true,"priority":"medium","category":"General","createdAt":"2026-08-01T10:00:00Z"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetToken("tok")

	completed := true
	_, err := c.UpdateTodo(context.Background(), "652f1a2b3c4d5e6f70818283", TodoUpdate{Completed: &completed})
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"completed": true}, received)
}

func TestGenerateSubtasksUnwrapsTodo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/ai/subtasks", r.URL.Path)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "652f1a2b3c4d5e6f70818283", req["todoId"])
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"todo":{"_id":"652f1a2b3c4d5e6f70818283","text":"Plan trip","completed":false,
			"priority":"medium","category":"General","createdAt":"2026-08-01T10:00:00Z",
			"subtasks":[{"text":"Pack bags","completed":false},{"text":"Book hotel","completed":false}]}}`))
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetToken("tok")

	todo, err := c.GenerateSubtasks(context.Background(), "652f1a2b3c4d5e6f70818283", "Plan trip")
	require.NoError(t, err)
	require.Len(t, todo.Subtasks, 2)
	assert.Equal(t, "Pack bags", todo.Subtasks[0].Text)
}
