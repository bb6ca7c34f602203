package data

import "context"

// Entity is implemented by values a Repository can store. WithIdentity returns a copy
// of the entity carrying id.
type Entity[T any, ID comparable] interface {
	Identity() ID
	WithIdentity(id ID) T
}

// Sequence constrains store-assigned identifiers.
type Sequence interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

type Repository[T any, ID comparable] interface {
	FindOne(ctx context.Context, id ID) (T, error)
	FindAll(ctx context.Context) ([]T, error)
	Create(ctx context.Context, entity T) (T, error)
	Update(ctx context.Context, entity T) (T, error)
	Delete(ctx context.Context, id ID) error
	ExistsByID(ctx context.Context, id ID) (bool, error)
}
