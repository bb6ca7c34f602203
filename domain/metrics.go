package domain

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/reuben-baek/todo-store/data"
)

const (
	resultOK           = "ok"
	resultNotFound     = "not_found"
	resultInvalid      = "invalid"
	resultStorageError = "storage_error"
)

// InstrumentedStore counts and times the operations of the wrapped TodoStore.
type InstrumentedStore struct {
	next       TodoStore
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func NewInstrumentedStore(next TodoStore, registerer prometheus.Registerer) (*InstrumentedStore, error) {
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "todo",
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Todo store operations by operation and result.",
	}, []string{"operation", "result"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "todo",
		Subsystem: "store",
		Name:      "operation_duration_seconds",
		Help:      "Todo store operation latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	for _, collector := range []prometheus.Collector{operations, duration} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}
	return &InstrumentedStore{next: next, operations: operations, duration: duration}, nil
}

func (s *InstrumentedStore) observe(operation string, start time.Time, err error) {
	s.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	s.operations.WithLabelValues(operation, resultOf(err)).Inc()
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return resultOK
	case errors.Is(err, data.NotFoundError):
		return resultNotFound
	case errors.Is(err, data.ErrValidation):
		return resultInvalid
	default:
		return resultStorageError
	}
}

func (s *InstrumentedStore) Create(ctx context.Context, input TodoInput) (Todo, error) {
	start := time.Now()
	created, err := s.next.Create(ctx, input)
	s.observe("create", start, err)
	return created, err
}

func (s *InstrumentedStore) FindByID(ctx context.Context, id uint) (Todo, error) {
	start := time.Now()
	found, err := s.next.FindByID(ctx, id)
	s.observe("find_by_id", start, err)
	return found, err
}

func (s *InstrumentedStore) FindAll(ctx context.Context) ([]Todo, error) {
	start := time.Now()
	todos, err := s.next.FindAll(ctx)
	s.observe("find_all", start, err)
	return todos, err
}

func (s *InstrumentedStore) Update(ctx context.Context, id uint, input TodoInput) (Todo, error) {
	start := time.Now()
	updated, err := s.next.Update(ctx, id, input)
	s.observe("update", start, err)
	return updated, err
}

func (s *InstrumentedStore) Delete(ctx context.Context, id uint) error {
	start := time.Now()
	err := s.next.Delete(ctx, id)
	s.observe("delete", start, err)
	return err
}

func (s *InstrumentedStore) ExistsByID(ctx context.Context, id uint) (bool, error) {
	start := time.Now()
	exists, err := s.next.ExistsByID(ctx, id)
	s.observe("exists_by_id", start, err)
	return exists, err
}

var _ TodoStore = (*InstrumentedStore)(nil)
