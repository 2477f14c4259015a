package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/tripsheet/internal/cli"
	"github.com/alexanderramin/tripsheet/internal/config"
	"github.com/alexanderramin/tripsheet/internal/db"
	"github.com/alexanderramin/tripsheet/internal/importer"
	"github.com/alexanderramin/tripsheet/internal/repository"
	"github.com/alexanderramin/tripsheet/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var opts []importer.Option
	if cfg.DictionaryPath != "" {
		dict, err := importer.LoadDictionary(cfg.DictionaryPath)
		if err != nil {
			return fmt.Errorf("loading dictionary %s: %w", cfg.DictionaryPath, err)
		}
		opts = append(opts, importer.WithDictionary(dict))
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	tripRepo := repository.NewSQLiteTripRepo(database)
	itineraryRepo := repository.NewKVItineraryRepo(repository.NewSQLiteKVRepo(database))

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogCalls {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	// Wire services
	tripSvc := service.NewTripService(tripRepo, uow)

	app := &cli.App{
		Trips:     tripSvc,
		Itinerary: service.NewItineraryService(tripSvc, itineraryRepo, uow, observer),
		Import:    service.NewImportService(tripSvc, itineraryRepo, uow, importer.NewParser(opts...), observer),
		Share:     service.NewShareService(tripRepo, itineraryRepo, uow, observer),
	}

	// Detect interactive terminal for prompts and the itinerary browser.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
