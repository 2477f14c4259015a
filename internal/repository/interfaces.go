package repository

import (
	"context"

	"github.com/alexanderramin/tripsheet/internal/domain"
)

type TripRepo interface {
	Create(ctx context.Context, t *domain.Trip) error
	GetByID(ctx context.Context, id string) (*domain.Trip, error)
	GetByName(ctx context.Context, name string) (*domain.Trip, error)
	// FindByIDPrefix returns every trip whose ID starts with prefix.
	FindByIDPrefix(ctx context.Context, prefix string) ([]*domain.Trip, error)
	List(ctx context.Context) ([]*domain.Trip, error)
	Update(ctx context.Context, t *domain.Trip) error
	Delete(ctx context.Context, id string) error
}

// KVRepo is a string-keyed JSON value store partitioned by trip.
type KVRepo interface {
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	Set(ctx context.Context, namespace, key string, value []byte) error
	Delete(ctx context.Context, namespace, key string) error
	// Keys lists the namespace's keys in ascending order.
	Keys(ctx context.Context, namespace string) ([]string, error)
}

// ItineraryRepo stores a trip's ordered day list.
type ItineraryRepo interface {
	DayOrder(ctx context.Context, tripID string) ([]string, error)
	ListDays(ctx context.Context, tripID string) ([]domain.Day, error)
	// SaveDays replaces the day order and every stored day.
	SaveDays(ctx context.Context, tripID string, days []domain.Day) error
	SaveDay(ctx context.Context, tripID string, day domain.Day) error
}
