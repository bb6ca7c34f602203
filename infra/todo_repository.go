package infra

import (
	"github.com/reuben-baek/todo-store/data"
	"github.com/reuben-baek/todo-store/domain"
)

type TodoRepository struct {
	data.Repository[domain.Todo, uint]
}

func NewTodoRepository(repository data.Repository[domain.Todo, uint]) *TodoRepository {
	return &TodoRepository{Repository: repository}
}

func NewGormTodoRepository(transactionManager *data.GormTransactionManager) *TodoRepository {
	gormRepository := data.NewGormRepository[Todo, uint](transactionManager)
	return NewTodoRepository(data.NewDtoWrapRepository[Todo, domain.Todo, uint](gormRepository))
}

func NewInMemoryTodoRepository(transactionManager data.TransactionManager) *TodoRepository {
	return NewTodoRepository(data.NewInMemoryRepository[domain.Todo, uint](transactionManager))
}
