package data

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GormRepository keys every query on an "id" primary key column. Sessions come from the
// transaction manager so that a call inside TransactionManager.Do uses its transaction.
type GormRepository[T Entity[T, ID], ID comparable] struct {
	transactionManager TransactionManager
}

func NewGormRepository[T Entity[T, ID], ID comparable](transactionManager TransactionManager) *GormRepository[T, ID] {
	return &GormRepository[T, ID]{transactionManager: transactionManager}
}

func (u *GormRepository[T, ID]) session(ctx context.Context) *gorm.DB {
	return u.transactionManager.Get(ctx).(*gorm.DB)
}

func (u *GormRepository[T, ID]) FindOne(ctx context.Context, id ID) (T, error) {
	var entity T
	if err := u.session(ctx).First(&entity, "id = ?", id).Error; err != nil {
		var zero T
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, NotFoundError
		}
		return zero, WrapStorageError("find one", err)
	}
	return entity, nil
}

func (u *GormRepository[T, ID]) FindAll(ctx context.Context) ([]T, error) {
	entities := make([]T, 0)
	if err := u.session(ctx).Order("id").Find(&entities).Error; err != nil {
		return nil, WrapStorageError("find all", err)
	}
	return entities, nil
}

func (u *GormRepository[T, ID]) Create(ctx context.Context, entity T) (T, error) {
	var zeroID ID
	created := entity.WithIdentity(zeroID)
	if err := u.session(ctx).Create(&created).Error; err != nil {
		var zero T
		return zero, WrapStorageError("create", err)
	}
	logrus.Debugf("GormRepository.Create: entity [%+v]", created)
	return created, nil
}

func (u *GormRepository[T, ID]) Update(ctx context.Context, entity T) (T, error) {
	var zero T
	db := u.session(ctx)
	exists, err := u.exists(db, entity.Identity())
	if err != nil {
		return zero, WrapStorageError("update", err)
	}
	if !exists {
		return zero, NotFoundError
	}
	if err := db.Save(&entity).Error; err != nil {
		return zero, WrapStorageError("update", err)
	}
	logrus.Debugf("GormRepository.Update: entity [%+v]", entity)
	return entity, nil
}

func (u *GormRepository[T, ID]) Delete(ctx context.Context, id ID) error {
	var entity T
	result := u.session(ctx).Where("id = ?", id).Delete(&entity)
	if result.Error != nil {
		return WrapStorageError("delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return NotFoundError
	}
	logrus.Debugf("GormRepository.Delete: id [%v]", id)
	return nil
}

func (u *GormRepository[T, ID]) ExistsByID(ctx context.Context, id ID) (bool, error) {
	exists, err := u.exists(u.session(ctx), id)
	if err != nil {
		return false, WrapStorageError("exists", err)
	}
	return exists, nil
}

func (u *GormRepository[T, ID]) exists(db *gorm.DB, id ID) (bool, error) {
	var entity T
	var count int64
	if err := db.Model(&entity).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
