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
	"github.com/alexanderramin/tripsheet/internal/share"
)

type shareService struct {
	trips     repository.TripRepo
	itinerary repository.ItineraryRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewShareService(
	trips repository.TripRepo,
	itinerary repository.ItineraryRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ShareService {
	return &shareService{
		trips:     trips,
		itinerary: itinerary,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *shareService) Export(ctx context.Context, tripID string) (string, error) {
	trip, err := s.getTrip(ctx, tripID)
	if err != nil {
		return "", err
	}
	order, err := s.itinerary.DayOrder(ctx, tripID)
	if err != nil {
		return "", err
	}
	days, err := s.itinerary.ListDays(ctx, tripID)
	if err != nil {
		return "", err
	}

	return share.Encode(share.Payload{
		Config: share.Config{
			Name:        trip.Name,
			Destination: trip.Destination,
			StartDate:   trip.StartDate.Format(domain.DateLayout),
			EndDate:     trip.EndDate.Format(domain.DateLayout),
		},
		DayOrder: order,
		Days:     days,
	})
}

func (s *shareService) Import(ctx context.Context, tripID, code string) (trip *domain.Trip, err error) {
	fields := map[string]any{"trip": tripID}
	done := trackUseCase(ctx, s.observer, "share-import", fields)
	defer func() { done(err) }()

	payload, err := share.Decode(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShareCode, err)
	}
	trip, err = s.getTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if err := s.applyConfig(ctx, trip, payload.Config); err != nil {
		return nil, err
	}
	days := orderedDays(payload)
	fields["days"] = len(days)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteTripRepo(tx).Update(ctx, trip); err != nil {
			return err
		}
		itinerary := repository.NewKVItineraryRepo(repository.NewSQLiteKVRepo(tx))
		return itinerary.SaveDays(ctx, tripID, days)
	})
	if err != nil {
		return nil, err
	}
	return trip, nil
}

// applyConfig copies the shared settings onto trip. Empty or unparsable
// values keep the local ones, and a name used by another trip is not taken.
func (s *shareService) applyConfig(ctx context.Context, trip *domain.Trip, cfg share.Config) error {
	updated := *trip

	if name := strings.TrimSpace(cfg.Name); name != "" && name != trip.Name {
		other, err := s.trips.GetByName(ctx, name)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			updated.Name = name
		case err != nil:
			return err
		case other.ID == trip.ID:
			updated.Name = name
		}
	}
	if cfg.Destination != "" {
		updated.Destination = cfg.Destination
	}
	if d, err := time.Parse(domain.DateLayout, cfg.StartDate); err == nil {
		updated.StartDate = d
	}
	if d, err := time.Parse(domain.DateLayout, cfg.EndDate); err == nil {
		updated.EndDate = d
	}
	if err := updated.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidShareCode, err)
	}

	updated.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	*trip = updated
	return nil
}

// orderedDays returns the payload's days in dayOrder. Days the order does
// not name are dropped, as are order entries without a day.
func orderedDays(p share.Payload) []domain.Day {
	byID := make(map[string]domain.Day, len(p.Days))
	for _, d := range p.Days {
		byID[d.ID] = d
	}
	days := make([]domain.Day, 0, len(p.DayOrder))
	seen := make(map[string]bool, len(p.DayOrder))
	for _, id := range p.DayOrder {
		d, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		days = append(days, d)
	}
	return days
}

func (s *shareService) getTrip(ctx context.Context, id string) (*domain.Trip, error) {
	t, err := s.trips.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", id, ErrTripNotFound)
	}
	return t, err
}
