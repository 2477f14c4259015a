package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tripsheet/internal/db"
	"github.com/alexanderramin/tripsheet/internal/domain"
	"github.com/alexanderramin/tripsheet/internal/repository"
	"github.com/google/uuid"
)

// minPrefixLen is the shortest ID prefix Resolve will try.
const minPrefixLen = 4

type tripService struct {
	trips repository.TripRepo
	uow   db.UnitOfWork
}

func NewTripService(trips repository.TripRepo, uow db.UnitOfWork) TripService {
	return &tripService{trips: trips, uow: uow}
}

func (s *tripService) Create(ctx context.Context, t *domain.Trip) error {
	t.Name = strings.TrimSpace(t.Name)
	if err := t.Validate(); err != nil {
		return err
	}
	if _, err := s.trips.GetByName(ctx, t.Name); err == nil {
		return fmt.Errorf("%q: %w", t.Name, ErrTripExists)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC().Truncate(time.Second)
	t.CreatedAt = now
	t.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteTripRepo(tx).Create(ctx, t); err != nil {
			return err
		}
		itinerary := repository.NewKVItineraryRepo(repository.NewSQLiteKVRepo(tx))
		return itinerary.SaveDays(ctx, t.ID, SeedDays(t))
	})
}

// SeedDays builds one empty day per calendar day of the trip, labelled
// "Day N" and dated "M/D".
func SeedDays(t *domain.Trip) []domain.Day {
	n := t.DayCount()
	days := make([]domain.Day, 0, n)
	for i := 0; i < n; i++ {
		date := t.StartDate.AddDate(0, 0, i)
		label := fmt.Sprintf("%d/%d", int(date.Month()), date.Day())
		days = append(days, domain.NewPlaceholderDay(fmt.Sprintf("day-%d", i+1), i+1, label, t.Destination))
	}
	return days
}

func (s *tripService) Get(ctx context.Context, id string) (*domain.Trip, error) {
	t, err := s.trips.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", id, ErrTripNotFound)
	}
	return t, err
}

func (s *tripService) Resolve(ctx context.Context, ref string) (*domain.Trip, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("empty trip reference: %w", ErrTripNotFound)
	}

	if t, err := s.trips.GetByID(ctx, ref); err == nil {
		return t, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if t, err := s.trips.GetByName(ctx, ref); err == nil {
		return t, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if len(ref) >= minPrefixLen {
		matches, err := s.trips.FindByIDPrefix(ctx, ref)
		if err != nil {
			return nil, err
		}
		switch len(matches) {
		case 0:
		case 1:
			return matches[0], nil
		default:
			return nil, fmt.Errorf("%q matches %d trips: %w", ref, len(matches), ErrAmbiguousTrip)
		}
	}
	return nil, fmt.Errorf("%q: %w", ref, ErrTripNotFound)
}

func (s *tripService) List(ctx context.Context) ([]*domain.Trip, error) {
	return s.trips.List(ctx)
}

func (s *tripService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.trips.Delete(ctx, id)
}
