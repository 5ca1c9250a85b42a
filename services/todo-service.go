package services

import (
	"context"
	"fmt"
	"time"

	"github.com/akashsingh062/Smart-Ai-Todo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TodoService struct {
	TodoCollection *mongo.Collection
}

func NewTodoService(todoCollection *mongo.Collection) *TodoService {
	return &TodoService{TodoCollection: todoCollection}
}

func (s *TodoService) EnsureIndexes(ctx context.Context) error {
	_, err := s.TodoCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create todo index: %w", err)
	}
	return nil
}

// GetTodos returns all todos owned by the user, newest first.
func (s *TodoService) GetTodos(ctx context.Context, userID primitive.ObjectID) ([]models.Todo, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.TodoCollection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve todos: %w", err)
	}
	defer cursor.Close(ctx)

	todos := []models.Todo{}
	if err := cursor.All(ctx, &todos); err != nil {
		return nil, fmt.Errorf("failed to decode todos: %w", err)
	}
	return todos, nil
}

func (s *TodoService) CreateTodo(ctx context.Context, userID primitive.ObjectID, text string, priority models.Priority, category string, dueDate *time.Time) (*models.Todo, error) {
	if priority == "" {
		priority = models.PriorityMedium
	}
	if category == "" {
		category = "General"
	}

	todo := &models.Todo{
		ID:        primitive.NewObjectID(),
		Text:      text,
		Completed: false,
		Priority:  priority,
		Category:  category,
		CreatedAt: time.Now(),
		DueDate:   dueDate,
		UserID:    userID,
	}

	if _, err := s.TodoCollection.InsertOne(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return todo, nil
}

// TodoUpdate carries a partial update; nil fields are left untouched.
type TodoUpdate struct {
	Text      *string          `json:"text"`
	Completed *bool            `json:"completed"`
	Priority  *models.Priority `json:"priority"`
	Category  *string          `json:"category"`
	DueDate   *time.Time       `json:"dueDate"`
	Subtasks  []models.Subtask `json:"subtasks"`
}

// UpdateTodo applies the non-nil fields of update to the user's todo and
// returns the updated document. Last write wins on concurrent updates.
func (s *TodoService) UpdateTodo(ctx context.Context, userID, todoID primitive.ObjectID, update TodoUpdate) (*models.Todo, error) {
	set := bson.M{}
	if update.Text != nil {
		set["text"] = *update.Text
	}
	if update.Completed != nil {
		set["completed"] = *update.Completed
	}
	if update.Priority != nil {
		set["priority"] = *update.Priority
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.DueDate != nil {
		set["dueDate"] = *update.DueDate
	}
	if update.Subtasks != nil {
		set["subtasks"] = update.Subtasks
	}
	if len(set) == 0 {
		var todo models.Todo
		err := s.TodoCollection.FindOne(ctx, bson.M{"_id": todoID, "userId": userID}).Decode(&todo)
		if err == mongo.ErrNoDocuments {
			return nil, ErrTodoNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve todo: %w", err)
		}
		return &todo, nil
	}

	var todo models.Todo
	err := s.TodoCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": todoID, "userId": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&todo)
	if err == mongo.ErrNoDocuments {
		return nil, ErrTodoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	return &todo, nil
}

func (s *TodoService) DeleteTodo(ctx context.Context, userID, todoID primitive.ObjectID) error {
	result, err := s.TodoCollection.DeleteOne(ctx, bson.M{"_id": todoID, "userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// ClearCompleted deletes the user's completed todos. Deleting zero documents
// is not an error, so the call is idempotent.
func (s *TodoService) ClearCompleted(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	result, err := s.TodoCollection.DeleteMany(ctx, bson.M{"userId": userID, "completed": true})
	if err != nil {
		return 0, fmt.Errorf("failed to clear completed todos: %w", err)
	}
	return result.DeletedCount, nil
}

// ReplaceSubtasks swaps the todo's subtask list wholesale. Subtasks carry no
// identity of their own, so there is nothing to merge.
func (s *TodoService) ReplaceSubtasks(ctx context.Context, userID, todoID primitive.ObjectID, subtasks []models.Subtask) (*models.Todo, error) {
	var todo models.Todo
	err := s.TodoCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": todoID, "userId": userID},
		bson.M{"$set": bson.M{"subtasks": subtasks}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&todo)
	if err == mongo.ErrNoDocuments {
		return nil, ErrTodoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to replace subtasks: %w", err)
	}
	return &todo, nil
}
