package domain

import (
	"context"

	"github.com/reuben-baek/todo-store/data"
)

type TodoRepository interface {
	data.Repository[Todo, uint]
}

// TodoStore is the persistence boundary for todos. Errors are data.NotFoundError,
// *data.ValidationError or *data.StorageError.
type TodoStore interface {
	Create(ctx context.Context, input TodoInput) (Todo, error)
	FindByID(ctx context.Context, id uint) (Todo, error)
	FindAll(ctx context.Context) ([]Todo, error)
	Update(ctx context.Context, id uint, input TodoInput) (Todo, error)
	Delete(ctx context.Context, id uint) error
	ExistsByID(ctx context.Context, id uint) (bool, error)
}
