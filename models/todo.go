package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Weight maps a priority onto a comparable numeric rank.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type Subtask struct {
	Text      string `json:"text" bson:"text"`
	Completed bool   `json:"completed" bson:"completed"`
}

// Todo is one task document. The identifier is serialized as "_id" on the
// wire; clients rename it locally.
type Todo struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Text      string             `json:"text" bson:"text"`
	Completed bool               `json:"completed" bson:"completed"`
	Priority  Priority           `json:"priority" bson:"priority"`
	Category  string             `json:"category" bson:"category"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	DueDate   *time.Time         `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	Subtasks  []Subtask          `json:"subtasks,omitempty" bson:"subtasks,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
}
