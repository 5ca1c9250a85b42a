package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/akashsingh062/Smart-Ai-Todo/models"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TextGenerator is the outbound contract for the language-model service.
// GenerateJSON asks the model to reply with a JSON document; Generate leaves
// the reply free-form.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// AssistStore is the slice of TodoService the assist endpoints need.
type AssistStore interface {
	GetTodos(ctx context.Context, userID primitive.ObjectID) ([]models.Todo, error)
	ReplaceSubtasks(ctx context.Context, userID, todoID primitive.ObjectID, subtasks []models.Subtask) (*models.Todo, error)
}

const (
	noTasksSummary     = "You don't have any tasks yet. Start by adding your first task!"
	noPendingMessage   = "No pending tasks to prioritize!"
	summarizePreamble  = "You are a helpful assistant that summarizes todo lists. Provide a concise, encouraging summary of the user's tasks, highlighting priorities and progress."
	prioritizePreamble = "You are a productivity expert. Analyze the todo list and suggest how to prioritize tasks based on urgency, importance, and deadlines. Be specific and actionable."
	subtasksPreamble   = `You are a task management expert. Break down a task into smaller, actionable subtasks. Respond with ONLY a valid JSON array of strings, where each string is a subtask. Do not include any other text or explanations. For example: ["Subtask 1", "Subtask 2", "Subtask 3"]`
)

type AIService struct {
	generator TextGenerator
	store     AssistStore
	breaker   *gobreaker.CircuitBreaker
}

func NewAIService(generator TextGenerator, store AssistStore, breaker *gobreaker.CircuitBreaker) *AIService {
	return &AIService{
		generator: generator,
		store:     store,
		breaker:   breaker,
	}
}

// Summarize builds a one-line-per-task prompt over all of the user's todos
// and returns the model's summary. With zero todos a canned message is
// returned without calling the model.
func (s *AIService) Summarize(ctx context.Context, userID primitive.ObjectID) (string, error) {
	todos, err := s.store.GetTodos(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(todos) == 0 {
		return noTasksSummary, nil
	}

	lines := make([]string, 0, len(todos))
	for _, todo := range todos {
		status := "Pending"
		if todo.Completed {
			status = "Completed"
		}
		lines = append(lines, fmt.Sprintf("- %s (Priority: %s, Category: %s, Status: %s)", todo.Text, todo.Priority, todo.Category, status))
	}

	prompt := fmt.Sprintf("%s\n\nPlease summarize this todo list:\n%s", summarizePreamble, strings.Join(lines, "\n"))
	return s.generate(ctx, prompt)
}

// Prioritize asks the model for ordering advice over the user's pending
// todos only.
func (s *AIService) Prioritize(ctx context.Context, userID primitive.ObjectID) (string, error) {
	todos, err := s.store.GetTodos(ctx, userID)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(todos))
	for _, todo := range todos {
		if todo.Completed {
			continue
		}
		line := fmt.Sprintf("- %s (Current Priority: %s, Category: %s", todo.Text, todo.Priority, todo.Category)
		if todo.DueDate != nil {
			line += fmt.Sprintf(", Due: %s", todo.DueDate.Format("Mon Jan 02 2006"))
		}
		line += ")"
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return noPendingMessage, nil
	}

	prompt := fmt.Sprintf("%s\n\nPlease suggest how to prioritize these tasks:\n%s", prioritizePreamble, strings.Join(lines, "\n"))
	return s.generate(ctx, prompt)
}

// GenerateSubtasks asks the model to decompose taskText, parses the reply
// and replaces the subtask list on the user's todo. A reply with nothing
// usable fails with ErrNoSubtasks and persists nothing.
func (s *AIService) GenerateSubtasks(ctx context.Context, userID, todoID primitive.ObjectID, taskText string) (*models.Todo, error) {
	prompt := fmt.Sprintf("%s\n\nBreak down this task into 3-5 smaller subtasks: %q", subtasksPreamble, taskText)

	raw, err := s.generateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	parsed, err := ParseSubtasks(raw)
	if err != nil {
		return nil, err
	}

	subtasks := make([]models.Subtask, 0, len(parsed))
	for _, text := range parsed {
		subtasks = append(subtasks, models.Subtask{Text: text, Completed: false})
	}

	return s.store.ReplaceSubtasks(ctx, userID, todoID, subtasks)
}

func (s *AIService) generate(ctx context.Context, prompt string) (string, error) {
	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.generator.Generate(ctx, prompt)
	})
	if err != nil {
		return "", fmt.Errorf("text generation failed: %w", err)
	}
	return result.(string), nil
}

func (s *AIService) generateJSON(ctx context.Context, prompt string) (string, error) {
	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.generator.GenerateJSON(ctx, prompt)
	})
	if err != nil {
		return "", fmt.Errorf("text generation failed: %w", err)
	}
	return result.(string), nil
}
