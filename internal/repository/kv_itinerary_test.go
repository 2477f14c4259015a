package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/tripsheet/internal/db"
	"github.com/alexanderramin/tripsheet/internal/domain"
	"github.com/alexanderramin/tripsheet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItineraryFixture(t *testing.T) (*KVItineraryRepo, *SQLiteKVRepo, string) {
	t.Helper()
	db := testutil.NewTestDB(t)
	trip := testutil.NewTestTrip("Hokkaido")
	require.NoError(t, NewSQLiteTripRepo(db).Create(context.Background(), trip))
	kv := NewSQLiteKVRepo(db)
	return NewKVItineraryRepo(kv), kv, trip.ID
}

func TestItineraryRepo_EmptyTrip(t *testing.T) {
	repo, _, tripID := newItineraryFixture(t)
	ctx := context.Background()

	order, err := repo.DayOrder(ctx, tripID)
	require.NoError(t, err)
	assert.Nil(t, order)

	days, err := repo.ListDays(ctx, tripID)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestItineraryRepo_SaveAndListRoundTrip(t *testing.T) {
	repo, _, tripID := newItineraryFixture(t)
	ctx := context.Background()

	lunch := domain.Attraction{
		ID:       "attr-1",
		Name:     "[12:00] 午餐",
		Category: domain.CategoryFood,
		Tags:     []domain.Tag{},
		MapQuery: "午餐",
		SubOptions: []domain.SubOption{
			{Label: "A plan", Name: "一蘭", Description: "一蘭", MapQuery: "一蘭"},
			{Label: "B plan", Name: "松屋", Description: "松屋", MapQuery: "松屋"},
		},
	}
	day1 := testutil.NewTestDay(1, testutil.WithDate("2/10"))
	day1.Attractions = append(day1.Attractions, lunch)
	day2 := testutil.NewTestDay(2, testutil.WithAttractions("Otaru Canal"))

	require.NoError(t, repo.SaveDays(ctx, tripID, []domain.Day{day2, day1}))

	order, err := repo.DayOrder(ctx, tripID)
	require.NoError(t, err)
	assert.Equal(t, []string{"day-2", "day-1"}, order)

	days, err := repo.ListDays(ctx, tripID)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, day2, days[0])
	assert.Equal(t, day1, days[1])
}

func TestItineraryRepo_SaveDaysPrunesStaleDays(t *testing.T) {
	repo, kv, tripID := newItineraryFixture(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveDays(ctx, tripID, []domain.Day{testutil.NewTestDay(1), testutil.NewTestDay(2), testutil.NewTestDay(3)}))
	require.NoError(t, repo.SaveDays(ctx, tripID, []domain.Day{testutil.NewTestDay(1)}))

	keys, err := kv.Keys(ctx, tripID)
	require.NoError(t, err)
	assert.Equal(t, []string{"day:day-1", "dayOrder"}, keys)
}

func TestItineraryRepo_SaveDaysRejectsDuplicateIDs(t *testing.T) {
	repo, _, tripID := newItineraryFixture(t)

	err := repo.SaveDays(context.Background(), tripID, []domain.Day{testutil.NewTestDay(1), testutil.NewTestDay(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate day id")
}

func TestItineraryRepo_SaveDayUpdatesOne(t *testing.T) {
	repo, _, tripID := newItineraryFixture(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveDays(ctx, tripID, []domain.Day{testutil.NewTestDay(1), testutil.NewTestDay(2)}))

	updated := testutil.NewTestDay(2, testutil.WithAttractions("Asahiyama Zoo"))
	require.NoError(t, repo.SaveDay(ctx, tripID, updated))

	days, err := repo.ListDays(ctx, tripID)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Empty(t, days[0].Attractions)
	require.Len(t, days[1].Attractions, 1)
	assert.Equal(t, "Asahiyama Zoo", days[1].Attractions[0].Name)
}

func TestItineraryRepo_OrderedIDWithoutDayIsSkipped(t *testing.T) {
	repo, kv, tripID := newItineraryFixture(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveDays(ctx, tripID, []domain.Day{testutil.NewTestDay(1)}))
	require.NoError(t, kv.Set(ctx, tripID, "dayOrder", []byte(`["day-1","day-404"]`)))

	days, err := repo.ListDays(ctx, tripID)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "day-1", days[0].ID)
}

func TestItineraryRepo_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	first, path := testutil.NewFileTestDB(t)
	trip := testutil.NewTestTrip("Hokkaido")
	require.NoError(t, NewSQLiteTripRepo(first).Create(ctx, trip))

	days := []domain.Day{testutil.NewTestDay(1, testutil.WithAttractions("Clock tower"))}
	require.NoError(t, NewKVItineraryRepo(NewSQLiteKVRepo(first)).SaveDays(ctx, trip.ID, days))
	require.NoError(t, first.Close())

	second, err := db.OpenDB(path)
	require.NoError(t, err)
	defer second.Close()

	got, err := NewKVItineraryRepo(NewSQLiteKVRepo(second)).ListDays(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Clock tower", got[0].Attractions[0].Name)
}
