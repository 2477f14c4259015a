package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/tripsheet/internal/domain"
)

const (
	dayOrderKey  = "dayOrder"
	dayKeyPrefix = "day:"
)

// KVItineraryRepo keeps a trip's days in its key/value namespace: one JSON
// array of day IDs under "dayOrder" and one JSON document per day.
type KVItineraryRepo struct {
	kv KVRepo
}

// NewKVItineraryRepo creates an ItineraryRepo over kv.
func NewKVItineraryRepo(kv KVRepo) *KVItineraryRepo {
	return &KVItineraryRepo{kv: kv}
}

func dayKey(id string) string { return dayKeyPrefix + id }

// DayOrder returns the stored day IDs, or nil when the trip has none yet.
func (r *KVItineraryRepo) DayOrder(ctx context.Context, tripID string) ([]string, error) {
	raw, err := r.kv.Get(ctx, tripID, dayOrderKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var order []string
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("decoding day order: %w", err)
	}
	return order, nil
}

// ListDays returns the days in stored order. IDs in the order without a
// stored day are skipped.
func (r *KVItineraryRepo) ListDays(ctx context.Context, tripID string) ([]domain.Day, error) {
	order, err := r.DayOrder(ctx, tripID)
	if err != nil {
		return nil, err
	}

	days := make([]domain.Day, 0, len(order))
	for _, id := range order {
		raw, err := r.kv.Get(ctx, tripID, dayKey(id))
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var d domain.Day
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decoding day %s: %w", id, err)
		}
		if d.Attractions == nil {
			d.Attractions = []domain.Attraction{}
		}
		days = append(days, d)
	}
	return days, nil
}

func (r *KVItineraryRepo) SaveDays(ctx context.Context, tripID string, days []domain.Day) error {
	order := make([]string, 0, len(days))
	keep := make(map[string]bool, len(days))
	for _, d := range days {
		if keep[dayKey(d.ID)] {
			return fmt.Errorf("duplicate day id %q", d.ID)
		}
		order = append(order, d.ID)
		keep[dayKey(d.ID)] = true
	}

	raw, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encoding day order: %w", err)
	}
	if err := r.kv.Set(ctx, tripID, dayOrderKey, raw); err != nil {
		return err
	}
	for _, d := range days {
		if err := r.SaveDay(ctx, tripID, d); err != nil {
			return err
		}
	}

	keys, err := r.kv.Keys(ctx, tripID)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if strings.HasPrefix(k, dayKeyPrefix) && !keep[k] {
			if err := r.kv.Delete(ctx, tripID, k); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *KVItineraryRepo) SaveDay(ctx context.Context, tripID string, day domain.Day) error {
	if day.Attractions == nil {
		day.Attractions = []domain.Attraction{}
	}
	raw, err := json.Marshal(day)
	if err != nil {
		return fmt.Errorf("encoding day %s: %w", day.ID, err)
	}
	return r.kv.Set(ctx, tripID, dayKey(day.ID), raw)
}
