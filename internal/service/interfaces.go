package service

import (
	"context"
	"io"

	"github.com/alexanderramin/tripsheet/internal/domain"
	"github.com/alexanderramin/tripsheet/internal/importer"
)

type TripService interface {
	// Create stores the trip and seeds one empty day per calendar day.
	Create(ctx context.Context, t *domain.Trip) error
	Get(ctx context.Context, id string) (*domain.Trip, error)
	// Resolve finds a trip by full ID, exact name, or unique ID prefix.
	Resolve(ctx context.Context, ref string) (*domain.Trip, error)
	List(ctx context.Context) ([]*domain.Trip, error)
	Delete(ctx context.Context, id string) error
}

// NewAttraction describes a manually added itinerary entry. An empty
// Category means sight and an empty MapQuery means the name.
type NewAttraction struct {
	Name        string
	Category    domain.Category
	Description string
	MapQuery    string
	PlanVariant string
}

// ItineraryService reads and edits a trip's days. Day numbers and entry
// positions are 1-based.
type ItineraryService interface {
	Days(ctx context.Context, tripID string) ([]domain.Day, error)
	AddAttraction(ctx context.Context, tripID string, day int, in NewAttraction) (*domain.Attraction, error)
	RemoveAttraction(ctx context.Context, tripID string, day, pos int) (*domain.Attraction, error)
	// MoveAttraction moves the entry at from so that it ends up at to.
	MoveAttraction(ctx context.Context, tripID string, day, from, to int) error
}

// ImportOptions tunes an import run.
type ImportOptions struct {
	// DryRun parses and reports without writing anything.
	DryRun bool
}

// ImportResult holds the outcome of an itinerary import.
type ImportResult struct {
	Trip     *domain.Trip
	Days     []domain.Day
	Mode     importer.Mode
	Blocks   []importer.Block
	Imported int
	Skipped  int
	// Created counts days appended because the sheet had more day blocks.
	Created int
	// Replaced counts the attractions the import discarded.
	Replaced int
	NoOp     bool
	DryRun   bool
}

type ImportService interface {
	ImportText(ctx context.Context, tripID, text string, opts ImportOptions) (*ImportResult, error)
	ImportWorkbook(ctx context.Context, tripID string, r io.Reader, sheet string, opts ImportOptions) (*ImportResult, error)
}

type ShareService interface {
	Export(ctx context.Context, tripID string) (string, error)
	// Import overwrites the trip's settings and days with a share code's.
	Import(ctx context.Context, tripID, code string) (*domain.Trip, error)
}
