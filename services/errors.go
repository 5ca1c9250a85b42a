package services

import "errors"

var (
	// ErrTodoNotFound covers both a missing document and a document owned
	// by another user, so the API never reveals which one it was.
	ErrTodoNotFound = errors.New("todo not found")

	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoSubtasks means the model replied but nothing usable could be
	// extracted. Distinct from transport failures.
	ErrNoSubtasks = errors.New("AI failed to generate subtasks")
)
