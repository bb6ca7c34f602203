package domain

import (
	"context"

	"github.com/reuben-baek/todo-store/data"
	"github.com/sirupsen/logrus"
)

// Store runs every operation as one transaction of its TransactionManager.
type Store struct {
	repository         TodoRepository
	transactionManager data.TransactionManager
}

func NewStore(repository TodoRepository, transactionManager data.TransactionManager) *Store {
	return &Store{
		repository:         repository,
		transactionManager: transactionManager,
	}
}

func (s *Store) Create(ctx context.Context, input TodoInput) (Todo, error) {
	if err := input.Validate(); err != nil {
		return Todo{}, err
	}
	var created Todo
	err := s.transactionManager.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.repository.Create(ctx, input.apply(Todo{}))
		return err
	})
	if err != nil {
		return Todo{}, err
	}
	logrus.Infof("Store.Create: todo [%d] created", created.ID)
	return created, nil
}

func (s *Store) FindByID(ctx context.Context, id uint) (Todo, error) {
	var found Todo
	err := s.transactionManager.Do(ctx, func(ctx context.Context) error {
		var err error
		found, err = s.repository.FindOne(ctx, id)
		return err
	})
	if err != nil {
		return Todo{}, err
	}
	return found, nil
}

func (s *Store) FindAll(ctx context.Context) ([]Todo, error) {
	var todos []Todo
	err := s.transactionManager.Do(ctx, func(ctx context.Context) error {
		var err error
		todos, err = s.repository.FindAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return todos, nil
}

func (s *Store) Update(ctx context.Context, id uint, input TodoInput) (Todo, error) {
	if err := input.Validate(); err != nil {
		return Todo{}, err
	}
	var updated Todo
	err := s.transactionManager.Do(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.repository.Update(ctx, input.apply(Todo{ID: id}))
		return err
	})
	if err != nil {
		return Todo{}, err
	}
	logrus.Infof("Store.Update: todo [%d] updated", id)
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, id uint) error {
	err := s.transactionManager.Do(ctx, func(ctx context.Context) error {
		return s.repository.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	logrus.Infof("Store.Delete: todo [%d] deleted", id)
	return nil
}

func (s *Store) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var exists bool
	err := s.transactionManager.Do(ctx, func(ctx context.Context) error {
		var err error
		exists, err = s.repository.ExistsByID(ctx, id)
		return err
	})
	return exists, err
}

var _ TodoStore = (*Store)(nil)
