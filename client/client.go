// Package client is the Go client for the todos service: an HTTP sync layer
// that translates the wire representation into local types, plus the
// derived-view engine the UI renders from.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/akashsingh062/Smart-Ai-Todo/models"
)

// Todo is the client-local task representation: string identifier and
// decoded timestamps instead of the wire's "_id" and ISO strings.
type Todo struct {
	ID        string
	Text      string
	Completed bool
	Priority  models.Priority
	Category  string
	CreatedAt time.Time
	DueDate   *time.Time
	Subtasks  []models.Subtask
}

type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// wireTodo mirrors the server's JSON shape.
type wireTodo struct {
	ID        string           `json:"_id"`
	Text      string           `json:"text"`
	Completed bool             `json:"completed"`
	Priority  models.Priority  `json:"priority"`
	Category  string           `json:"category"`
	CreatedAt time.Time        `json:"createdAt"`
	DueDate   *time.Time       `json:"dueDate"`
	Subtasks  []models.Subtask `json:"subtasks"`
}

func (w wireTodo) local() Todo {
	return Todo{
		ID:        w.ID,
		Text:      w.Text,
		Completed: w.Completed,
		Priority:  w.Priority,
		Category:  w.Category,
		CreatedAt: w.CreatedAt,
		DueDate:   w.DueDate,
		Subtasks:  w.Subtasks,
	}
}

// APIError is a non-2xx response, carrying the server's message body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// SetToken stores the bearer token sent on subsequent requests. An empty
// token means unauthenticated.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &errBody) == nil {
			apiErr.Message = errBody.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// Register creates an account and stores the returned token.
func (c *Client) Register(ctx context.Context, username, email, password string) (AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return AuthResult{}, err
	}
	c.token = result.Token
	return result, nil
}

// Login authenticates and stores the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return AuthResult{}, err
	}
	c.token = result.Token
	return result, nil
}

// Logout revokes the current token server-side and forgets it locally.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// Todos fetches the full task set, newest first.
func (c *Client) Todos(ctx context.Context) ([]Todo, error) {
	var wire []wireTodo
	if err := c.do(ctx, http.MethodGet, "/api/todos", nil, &wire); err != nil {
		return nil, err
	}
	todos := make([]Todo, 0, len(wire))
	for _, w := range wire {
		todos = append(todos, w.local())
	}
	return todos, nil
}

type addTodoRequest struct {
	Text     string          `json:"text"`
	Priority models.Priority `json:"priority,omitempty"`
	Category string          `json:"category,omitempty"`
	DueDate  *time.Time      `json:"dueDate,omitempty"`
}

func (c *Client) AddTodo(ctx context.Context, text string, priority models.Priority, category string, dueDate *time.Time) (Todo, error) {
	var wire wireTodo
	err := c.do(ctx, http.MethodPost, "/api/todos", addTodoRequest{
		Text:     text,
		Priority: priority,
		Category: category,
		DueDate:  dueDate,
	}, &wire)
	if err != nil {
		return Todo{}, err
	}
	return wire.local(), nil
}

// TodoUpdate is a client-side partial update; nil fields are omitted from
// the request body.
type TodoUpdate struct {
	Text      *string          `json:"text,omitempty"`
	Completed *bool            `json:"completed,omitempty"`
	Priority  *models.Priority `json:"priority,omitempty"`
	Category  *string          `json:"category,omitempty"`
	DueDate   *time.Time       `json:"dueDate,omitempty"`
	Subtasks  []models.Subtask `json:"subtasks,omitempty"`
}

func (c *Client) UpdateTodo(ctx context.Context, id string, update TodoUpdate) (Todo, error) {
	var wire wireTodo
	if err := c.do(ctx, http.MethodPut, "/api/todos/"+id, update, &wire); err != nil {
		return Todo{}, err
	}
	return wire.local(), nil
}

func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/todos/"+id, nil, nil)
}

func (c *Client) ClearCompleted(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/todos/completed/clear", nil, nil)
}

func (c *Client) Summarize(ctx context.Context) (string, error) {
	var result struct {
		Summary string `json:"summary"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/ai/summarize", nil, &result); err != nil {
		return "", err
	}
	return result.Summary, nil
}

func (c *Client) Prioritize(ctx context.Context) (string, error) {
	var result struct {
		Suggestions string `json:"suggestions"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/ai/prioritize", nil, &result); err != nil {
		return "", err
	}
	return result.Suggestions, nil
}

// GenerateSubtasks asks the server to decompose the task and returns the
// todo with its replaced subtask list.
func (c *Client) GenerateSubtasks(ctx context.Context, todoID, taskText string) (Todo, error) {
	var result struct {
		Todo wireTodo `json:"todo"`
	}
	err := c.do(ctx, http.MethodPost, "/api/ai/subtasks", map[string]string{
		"todoId":   todoID,
		"taskText": taskText,
	}, &result)
	if err != nil {
		return Todo{}, err
	}
	return result.Todo.local(), nil
}
