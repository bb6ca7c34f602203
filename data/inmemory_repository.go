package data

import (
	"context"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

type InMemoryRepository[T Entity[T, ID], ID Sequence] struct {
	lock               sync.RWMutex
	database           map[ID]T
	lastID             ID
	transactionManager TransactionManager
}

func NewInMemoryRepository[T Entity[T, ID], ID Sequence](transactionManager TransactionManager) *InMemoryRepository[T, ID] {
	return &InMemoryRepository[T, ID]{
		database:           make(map[ID]T),
		transactionManager: transactionManager,
	}
}

func (u *InMemoryRepository[T, ID]) FindOne(ctx context.Context, id ID) (T, error) {
	u.lock.RLock()
	defer u.lock.RUnlock()
	if v, ok := u.database[id]; ok {
		return v, nil
	}
	var zero T
	return zero, NotFoundError
}

func (u *InMemoryRepository[T, ID]) FindAll(ctx context.Context) ([]T, error) {
	u.lock.RLock()
	defer u.lock.RUnlock()
	ids := make([]ID, 0, len(u.database))
	for id := range u.database {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	entities := make([]T, 0, len(ids))
	for _, id := range ids {
		entities = append(entities, u.database[id])
	}
	return entities, nil
}

// Create ignores any identity already set on entity; ids come from a counter and are
// never reused.
func (u *InMemoryRepository[T, ID]) Create(ctx context.Context, entity T) (T, error) {
	u.lock.Lock()
	defer u.lock.Unlock()
	u.lastID++
	created := entity.WithIdentity(u.lastID)
	u.database[u.lastID] = created
	logrus.Debugf("InMemoryRepository.Create: transaction [%v] entity [%+v]", u.transactionManager.Get(ctx), created)
	return created, nil
}

func (u *InMemoryRepository[T, ID]) Update(ctx context.Context, entity T) (T, error) {
	u.lock.Lock()
	defer u.lock.Unlock()
	id := entity.Identity()
	if _, ok := u.database[id]; !ok {
		var zero T
		return zero, NotFoundError
	}
	u.database[id] = entity
	logrus.Debugf("InMemoryRepository.Update: transaction [%v] entity [%+v]", u.transactionManager.Get(ctx), entity)
	return entity, nil
}

func (u *InMemoryRepository[T, ID]) Delete(ctx context.Context, id ID) error {
	u.lock.Lock()
	defer u.lock.Unlock()
	if _, ok := u.database[id]; !ok {
		return NotFoundError
	}
	delete(u.database, id)
	logrus.Debugf("InMemoryRepository.Delete: transaction [%v] id [%v]", u.transactionManager.Get(ctx), id)
	return nil
}

func (u *InMemoryRepository[T, ID]) ExistsByID(ctx context.Context, id ID) (bool, error) {
	u.lock.RLock()
	defer u.lock.RUnlock()
	_, ok := u.database[id]
	return ok, nil
}
