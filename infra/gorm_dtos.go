package infra

import (
	"github.com/reuben-baek/todo-store/domain"
)

// Todo is the gorm record of domain.Todo.
type Todo struct {
	ID        uint   `gorm:"primaryKey;column:id"`
	Title     string `gorm:"column:title;not null"`
	Completed bool   `gorm:"column:completed;not null"`
}

func (Todo) TableName() string {
	return "todos"
}

func (t Todo) Identity() uint {
	return t.ID
}

func (t Todo) WithIdentity(id uint) Todo {
	t.ID = id
	return t
}

func (t Todo) To() domain.Todo {
	return domain.Todo{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
	}
}

func (t Todo) From(m domain.Todo) any {
	t.ID = m.ID
	t.Title = m.Title
	t.Completed = m.Completed
	return t
}
