package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/tripsheet/internal/db"
	"github.com/alexanderramin/tripsheet/internal/domain"
	"github.com/alexanderramin/tripsheet/internal/importer"
	"github.com/alexanderramin/tripsheet/internal/repository"
	"github.com/alexanderramin/tripsheet/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db        *sql.DB
	uow       db.UnitOfWork
	tripRepo  repository.TripRepo
	kv        repository.KVRepo
	itinerary repository.ItineraryRepo
	trips     TripService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	tripRepo := repository.NewSQLiteTripRepo(database)
	kv := repository.NewSQLiteKVRepo(database)
	return &testEnv{
		db:        database,
		uow:       uow,
		tripRepo:  tripRepo,
		kv:        kv,
		itinerary: repository.NewKVItineraryRepo(kv),
		trips:     NewTripService(tripRepo, uow),
	}
}

// createTrip stores a fixture trip through the service so its days are seeded.
func (e *testEnv) createTrip(t *testing.T, name string, opts ...testutil.TripOption) *domain.Trip {
	t.Helper()
	trip := testutil.NewTestTrip(name, opts...)
	trip.ID = ""
	require.NoError(t, e.trips.Create(context.Background(), trip))
	return trip
}

func (e *testEnv) days(t *testing.T, tripID string) []domain.Day {
	t.Helper()
	days, err := e.itinerary.ListDays(context.Background(), tripID)
	require.NoError(t, err)
	return days
}

func (e *testEnv) importService(observers ...UseCaseObserver) ImportService {
	return NewImportService(e.trips, e.itinerary, e.uow, importer.NewParser(), observers...)
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}
