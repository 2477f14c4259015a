package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/tripsheet/internal/db"
	"github.com/alexanderramin/tripsheet/internal/domain"
	"github.com/alexanderramin/tripsheet/internal/importer"
	"github.com/alexanderramin/tripsheet/internal/repository"
)

type importService struct {
	trips     TripService
	itinerary repository.ItineraryRepo
	uow       db.UnitOfWork
	parser    *importer.Parser
	observer  UseCaseObserver
}

func NewImportService(
	trips TripService,
	itinerary repository.ItineraryRepo,
	uow db.UnitOfWork,
	parser *importer.Parser,
	observers ...UseCaseObserver,
) ImportService {
	if parser == nil {
		parser = importer.NewParser()
	}
	return &importService{
		trips:     trips,
		itinerary: itinerary,
		uow:       uow,
		parser:    parser,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportText(ctx context.Context, tripID, text string, opts ImportOptions) (*ImportResult, error) {
	return s.importRows(ctx, "import-text", tripID, opts, func() ([][]string, error) {
		return importer.Tokenize(text), nil
	})
}

func (s *importService) ImportWorkbook(ctx context.Context, tripID string, r io.Reader, sheet string, opts ImportOptions) (*ImportResult, error) {
	return s.importRows(ctx, "import-workbook", tripID, opts, func() ([][]string, error) {
		return importer.ReadWorkbook(r, sheet)
	})
}

// importRows runs the engine over the trip's current days and writes the
// result back in one transaction. The sheet is read only after the trip is
// known to exist.
func (s *importService) importRows(
	ctx context.Context,
	name, tripID string,
	opts ImportOptions,
	read func() ([][]string, error),
) (result *ImportResult, err error) {
	fields := map[string]any{
		"trip":    tripID,
		"dry_run": opts.DryRun,
	}
	done := trackUseCase(ctx, s.observer, name, fields)
	defer func() { done(err) }()

	trip, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return nil, err
	}
	rows, err := read()
	if err != nil {
		return nil, err
	}
	days, err := s.itinerary.ListDays(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("loading days: %w", err)
	}

	res := s.parser.Run(rows, days)
	result = &ImportResult{
		Trip:     trip,
		Days:     res.Days,
		Mode:     res.Mode,
		Blocks:   res.Blocks,
		Imported: res.Imported,
		Skipped:  res.Skipped,
		Created:  res.Created,
		NoOp:     res.NoOp,
		DryRun:   opts.DryRun,
	}
	fields["rows"] = res.Rows
	fields["mode"] = string(res.Mode)
	fields["imported"] = res.Imported
	fields["skipped"] = res.Skipped

	if res.NoOp {
		return result, nil
	}
	result.Replaced = domain.CountAttractions(days)
	if opts.DryRun {
		return result, nil
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		itinerary := repository.NewKVItineraryRepo(repository.NewSQLiteKVRepo(tx))
		if err := itinerary.SaveDays(ctx, tripID, res.Days); err != nil {
			return fmt.Errorf("saving days: %w", err)
		}
		trip.UpdatedAt = time.Now().UTC().Truncate(time.Second)
		return repository.NewSQLiteTripRepo(tx).Update(ctx, trip)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
