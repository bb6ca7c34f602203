package data

import (
	"context"
)

// DTO converts between a storage record and the domain model M. From returns the
// record as any so that it can be called on the zero value of the record type.
type DTO[M any] interface {
	To() M
	From(m M) any
}

type DtoWrapRepository[D DTO[M], M any, ID comparable] struct {
	dtoRepository Repository[D, ID]
}

func NewDtoWrapRepository[D DTO[M], M any, ID comparable](dtoRepository Repository[D, ID]) *DtoWrapRepository[D, M, ID] {
	return &DtoWrapRepository[D, M, ID]{
		dtoRepository: dtoRepository,
	}
}

func (d *DtoWrapRepository[D, M, ID]) FindOne(ctx context.Context, id ID) (M, error) {
	dto, err := d.dtoRepository.FindOne(ctx, id)
	if err != nil {
		var zero M
		return zero, err
	}
	return dto.To(), nil
}

func (d *DtoWrapRepository[D, M, ID]) FindAll(ctx context.Context) ([]M, error) {
	dtos, err := d.dtoRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	entities := make([]M, 0, len(dtos))
	for _, dto := range dtos {
		entities = append(entities, dto.To())
	}
	return entities, nil
}

func (d *DtoWrapRepository[D, M, ID]) Create(ctx context.Context, entity M) (M, error) {
	var dto D
	dto = dto.From(entity).(D)
	created, err := d.dtoRepository.Create(ctx, dto)
	if err != nil {
		var zero M
		return zero, err
	}
	return created.To(), nil
}

func (d *DtoWrapRepository[D, M, ID]) Update(ctx context.Context, entity M) (M, error) {
	var dto D
	dto = dto.From(entity).(D)
	updated, err := d.dtoRepository.Update(ctx, dto)
	if err != nil {
		var zero M
		return zero, err
	}
	return updated.To(), nil
}

func (d *DtoWrapRepository[D, M, ID]) Delete(ctx context.Context, id ID) error {
	return d.dtoRepository.Delete(ctx, id)
}

func (d *DtoWrapRepository[D, M, ID]) ExistsByID(ctx context.Context, id ID) (bool, error) {
	return d.dtoRepository.ExistsByID(ctx, id)
}
