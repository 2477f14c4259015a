package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tripsheet/internal/db"
	"github.com/alexanderramin/tripsheet/internal/domain"
)

// SQLiteTripRepo implements TripRepo using a SQLite database.
type SQLiteTripRepo struct {
	db db.DBTX
}

// NewSQLiteTripRepo creates a new SQLiteTripRepo.
func NewSQLiteTripRepo(conn db.DBTX) *SQLiteTripRepo {
	return &SQLiteTripRepo{db: conn}
}

const tripColumns = `id, name, destination, start_date, end_date, created_at, updated_at`

func (r *SQLiteTripRepo) Create(ctx context.Context, t *domain.Trip) error {
	query := `INSERT INTO trips (` + tripColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Name,
		t.Destination,
		t.StartDate.Format(domain.DateLayout),
		t.EndDate.Format(domain.DateLayout),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting trip: %w", err)
	}
	return nil
}

func (r *SQLiteTripRepo) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+tripColumns+` FROM trips WHERE id = ?`, id)
	return scanTripRow(row)
}

func (r *SQLiteTripRepo) GetByName(ctx context.Context, name string) (*domain.Trip, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+tripColumns+` FROM trips WHERE name = ?`, name)
	return scanTripRow(row)
}

func (r *SQLiteTripRepo) FindByIDPrefix(ctx context.Context, prefix string) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id LIKE ? ESCAPE '\' ORDER BY start_date, created_at`
	return r.queryTrips(ctx, query, escapeLike(prefix)+"%")
}

func (r *SQLiteTripRepo) List(ctx context.Context) ([]*domain.Trip, error) {
	return r.queryTrips(ctx, `SELECT `+tripColumns+` FROM trips ORDER BY start_date, created_at`)
}

func (r *SQLiteTripRepo) Update(ctx context.Context, t *domain.Trip) error {
	query := `UPDATE trips SET name = ?, destination = ?, start_date = ?, end_date = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Name,
		t.Destination,
		t.StartDate.Format(domain.DateLayout),
		t.EndDate.Format(domain.DateLayout),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating trip: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("trip %s: %w", t.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a trip. Its key/value rows go with it (ON DELETE CASCADE).
func (r *SQLiteTripRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting trip: %w", err)
	}
	return nil
}

func (r *SQLiteTripRepo) queryTrips(ctx context.Context, query string, args ...any) ([]*domain.Trip, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing trips: %w", err)
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trips: %w", err)
	}
	return trips, nil
}

func scanTripRow(row *sql.Row) (*domain.Trip, error) {
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trip: %w", ErrNotFound)
	}
	return t, err
}

func scanTrip(s rowScanner) (*domain.Trip, error) {
	var t domain.Trip
	var startStr, endStr, createdStr, updatedStr string

	if err := s.Scan(&t.ID, &t.Name, &t.Destination, &startStr, &endStr, &createdStr, &updatedStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning trip: %w", err)
	}

	var err error
	if t.StartDate, err = time.Parse(domain.DateLayout, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if t.EndDate, err = time.Parse(domain.DateLayout, endStr); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &t, nil
}
