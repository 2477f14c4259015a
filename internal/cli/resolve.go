package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/tripsheet/internal/domain"
	"github.com/alexanderramin/tripsheet/internal/service"
)

// resolveTrip resolves a trip reference which can be:
//   - A full UUID
//   - The exact trip name
//   - A unique UUID prefix (4+ characters)
func resolveTrip(ctx context.Context, app *App, ref string) (*domain.Trip, error) {
	t, err := app.Trips.Resolve(ctx, ref)
	switch {
	case errors.Is(err, service.ErrTripNotFound):
		return nil, fmt.Errorf("%w (see: tripsheet trip list)", err)
	case errors.Is(err, service.ErrAmbiguousTrip):
		return nil, fmt.Errorf("%w; use more of the ID or the full name", err)
	case err != nil:
		return nil, err
	}
	return t, nil
}
