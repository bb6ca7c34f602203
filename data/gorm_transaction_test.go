package data_test

import (
	"context"
	"errors"
	"testing"

	"github.com/reuben-baek/todo-store/data"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestGormTransactionManager(t *testing.T) {
	db := getGormDB(t)

	transactionManager := data.NewGormTransactionManager(db)
	userRepository := data.NewGormRepository[User, uint](transactionManager)

	t.Run("commit", func(t *testing.T) {
		ctx := context.Background()
		var created User
		err := transactionManager.Do(ctx, func(ctx context.Context) error {
			var err error
			created, err = userRepository.Create(ctx, User{Name: "reuben.b"})
			return err
		})
		assert.Nil(t, err)
		assert.NotEmpty(t, created.ID)

		found, err := userRepository.FindOne(ctx, created.ID)
		assert.Nil(t, err)
		assert.Equal(t, created, found)
	})

	t.Run("rollback", func(t *testing.T) {
		ctx := context.Background()
		var created User
		err := transactionManager.Do(ctx, func(ctx context.Context) error {
			created, _ = userRepository.Create(ctx, User{Name: "reuben.b"})
			return errors.New("fail to save")
		})
		assert.NotNil(t, err)
		assert.NotEmpty(t, created.ID)

		found, err := userRepository.FindOne(ctx, created.ID)
		assert.Equal(t, data.NotFoundError, err)
		assert.Empty(t, found)
	})

	t.Run("rollback on panic", func(t *testing.T) {
		ctx := context.Background()
		var created User
		assert.Panics(t, func() {
			_ = transactionManager.Do(ctx, func(ctx context.Context) error {
				created, _ = userRepository.Create(ctx, User{Name: "reuben.b"})
				panic("something wrong")
			})
		})
		assert.NotEmpty(t, created.ID)

		found, err := userRepository.FindOne(ctx, created.ID)
		assert.Equal(t, data.NotFoundError, err)
		assert.Empty(t, found)
	})

	t.Run("nested do joins outer transaction", func(t *testing.T) {
		ctx := context.Background()
		var created User
		err := transactionManager.Do(ctx, func(ctx context.Context) error {
			outer := transactionManager.Get(ctx).(*gorm.DB)
			innerErr := transactionManager.Do(ctx, func(ctx context.Context) error {
				assert.Same(t, outer, transactionManager.Get(ctx).(*gorm.DB))
				var err error
				created, err = userRepository.Create(ctx, User{Name: "nested"})
				return err
			})
			assert.Nil(t, innerErr)
			return errors.New("outer fails")
		})
		assert.NotNil(t, err)

		exists, err := userRepository.ExistsByID(ctx, created.ID)
		assert.Nil(t, err)
		assert.False(t, exists)
	})
}
