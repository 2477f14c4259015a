package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tripsheet/internal/db"
	"github.com/alexanderramin/tripsheet/internal/domain"
	"github.com/alexanderramin/tripsheet/internal/repository"
	"github.com/google/uuid"
)

type itineraryService struct {
	trips     TripService
	itinerary repository.ItineraryRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewItineraryService(
	trips TripService,
	itinerary repository.ItineraryRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ItineraryService {
	return &itineraryService{
		trips:     trips,
		itinerary: itinerary,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *itineraryService) Days(ctx context.Context, tripID string) ([]domain.Day, error) {
	if _, err := s.trips.Get(ctx, tripID); err != nil {
		return nil, err
	}
	return s.itinerary.ListDays(ctx, tripID)
}

func (s *itineraryService) AddAttraction(ctx context.Context, tripID string, day int, in NewAttraction) (added *domain.Attraction, err error) {
	done := trackUseCase(ctx, s.observer, "add-attraction", map[string]any{"trip": tripID, "day": day})
	defer func() { done(err) }()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("attraction name is required")
	}
	category := in.Category
	if category == "" {
		category = domain.CategorySight
	}
	if _, ok := domain.ParseCategory(string(category)); !ok {
		return nil, fmt.Errorf("unknown category %q", category)
	}

	a := domain.Attraction{
		ID:          "attr-" + uuid.NewString(),
		Name:        name,
		Category:    category,
		Description: strings.TrimSpace(in.Description),
		Tags:        []domain.Tag{},
		MapQuery:    domain.CoalesceStr(strings.TrimSpace(in.MapQuery), name),
		PlanVariant: strings.TrimSpace(in.PlanVariant),
	}
	err = s.editDay(ctx, tripID, day, func(d *domain.Day) error {
		d.Attractions = append(d.Attractions, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *itineraryService) RemoveAttraction(ctx context.Context, tripID string, day, pos int) (removed *domain.Attraction, err error) {
	done := trackUseCase(ctx, s.observer, "remove-attraction", map[string]any{"trip": tripID, "day": day, "pos": pos})
	defer func() { done(err) }()

	err = s.editDay(ctx, tripID, day, func(d *domain.Day) error {
		if err := checkPosition(d, pos); err != nil {
			return err
		}
		a := d.Attractions[pos-1]
		removed = &a
		d.Attractions = append(d.Attractions[:pos-1], d.Attractions[pos:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (s *itineraryService) MoveAttraction(ctx context.Context, tripID string, day, from, to int) (err error) {
	done := trackUseCase(ctx, s.observer, "move-attraction", map[string]any{"trip": tripID, "day": day, "from": from, "to": to})
	defer func() { done(err) }()

	return s.editDay(ctx, tripID, day, func(d *domain.Day) error {
		if err := checkPosition(d, from); err != nil {
			return err
		}
		if err := checkPosition(d, to); err != nil {
			return err
		}
		a := d.Attractions[from-1]
		rest := append(d.Attractions[:from-1:from-1], d.Attractions[from:]...)
		d.Attractions = append(rest[:to-1:to-1], append([]domain.Attraction{a}, rest[to-1:]...)...)
		return nil
	})
}

// editDay loads day n (1-based), applies fn and stores the day together with
// the trip's new UpdatedAt in one transaction.
func (s *itineraryService) editDay(ctx context.Context, tripID string, n int, fn func(*domain.Day) error) error {
	trip, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return err
	}
	days, err := s.itinerary.ListDays(ctx, tripID)
	if err != nil {
		return fmt.Errorf("loading days: %w", err)
	}
	if n < 1 || n > len(days) {
		return fmt.Errorf("day %d of %d: %w", n, len(days), ErrDayOutOfRange)
	}
	day := days[n-1]
	if err := fn(&day); err != nil {
		return err
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		itinerary := repository.NewKVItineraryRepo(repository.NewSQLiteKVRepo(tx))
		if err := itinerary.SaveDay(ctx, tripID, day); err != nil {
			return fmt.Errorf("saving day: %w", err)
		}
		trip.UpdatedAt = time.Now().UTC().Truncate(time.Second)
		return repository.NewSQLiteTripRepo(tx).Update(ctx, trip)
	})
}

func checkPosition(d *domain.Day, pos int) error {
	if pos < 1 || pos > len(d.Attractions) {
		return fmt.Errorf("entry %d of %d on %s: %w", pos, len(d.Attractions), d.DayLabel, ErrEntryOutOfRange)
	}
	return nil
}
