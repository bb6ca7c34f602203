package domain

import (
	"strings"

	"github.com/reuben-baek/todo-store/data"
)

type Todo struct {
	ID        uint
	Title     string
	Completed bool
}

func (t Todo) Identity() uint {
	return t.ID
}

func (t Todo) WithIdentity(id uint) Todo {
	t.ID = id
	return t
}

// TodoInput carries the mutable fields of a Todo.
type TodoInput struct {
	Title     string
	Completed bool
}

// Validate rejects a blank title. The title itself is stored as given.
func (in TodoInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return data.NewValidationError("title", "is required")
	}
	return nil
}

func (in TodoInput) apply(t Todo) Todo {
	t.Title = in.Title
	t.Completed = in.Completed
	return t
}
