package tripcache

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/yatraplan/trip-planner-api/internal/domain"
	"github.com/yatraplan/trip-planner-api/internal/ports/out/clock"
	"github.com/yatraplan/trip-planner-api/internal/ports/out/kvstore"
)

// DefaultStorageKey is the namespaced key the saved-trips blob lives under.
const DefaultStorageKey = "travelApp.savedTrips.v1"

// maxSavedTrips bounds the store; older records are dropped on insert.
const maxSavedTrips = 50

// Cache is the bounded, newest-first store of SavedTrip records. The whole
// list is kept as one JSON blob under a single key, so each write is a full
// replace. Storage failures never propagate to the planning flow: reads fail
// soft to an empty list and insert errors are logged and swallowed.
type Cache struct {
	kv  kvstore.Store
	clk clock.Clock
	key string

	newTripID func(now time.Time) domain.TripID
}

func New(kv kvstore.Store, clk clock.Clock) *Cache {
	return &Cache{
		kv:  kv,
		clk: clk,
		key: DefaultStorageKey,
		newTripID: func(now time.Time) domain.TripID {
			return domain.TripID(strconv.FormatInt(now.UnixMilli(), 10))
		},
	}
}

// SetNewTripIDForTest overrides record id generation for deterministic tests.
// It should not be used in production code.
func (c *Cache) SetNewTripIDForTest(fn func(now time.Time) domain.TripID) {
	if fn != nil {
		c.newTripID = fn
	}
}

// List returns the saved trips, newest first. It never fails: read errors and
// corrupt content yield an empty list and a log line.
func (c *Cache) List(ctx context.Context) []domain.SavedTrip {
	raw, ok, err := c.kv.Get(ctx, c.key)
	if err != nil {
		log.Printf("tripcache: read %q failed: %v", c.key, err)
		return []domain.SavedTrip{}
	}
	if !ok {
		return []domain.SavedTrip{}
	}
	var trips []domain.SavedTrip
	if err := json.Unmarshal(raw, &trips); err != nil {
		log.Printf("tripcache: corrupt blob under %q: %v", c.key, err)
		return []domain.SavedTrip{}
	}
	if trips == nil {
		trips = []domain.SavedTrip{}
	}
	return trips
}

// Insert creates a new record, prepends it, truncates to the capacity bound
// and writes the list back. The record is returned even when the write fails:
// the in-memory planning flow must not block on storage errors.
func (c *Cache) Insert(ctx context.Context, prefs domain.TripPreferences, it domain.Itinerary) domain.SavedTrip {
	now := c.clk.Now()
	rec := domain.SavedTrip{
		ID:        c.newTripID(now),
		SavedAt:   now.UTC().Format(time.RFC3339),
		FormData:  prefs,
		Itinerary: it,
	}

	trips := append([]domain.SavedTrip{rec}, c.List(ctx)...)
	if len(trips) > maxSavedTrips {
		trips = trips[:maxSavedTrips]
	}

	if err := c.write(ctx, trips); err != nil {
		log.Printf("tripcache: save trip %s failed: %v", rec.ID, err)
	}
	return rec
}

// Delete removes the record with the given id and writes the remainder back.
// Deleting an absent id is a no-op that returns true; false means the write
// itself failed.
func (c *Cache) Delete(ctx context.Context, id domain.TripID) bool {
	trips := c.List(ctx)
	kept := make([]domain.SavedTrip, 0, len(trips))
	for _, t := range trips {
		if t.ID == id {
			continue
		}
		kept = append(kept, t)
	}
	if err := c.write(ctx, kept); err != nil {
		log.Printf("tripcache: delete trip %s failed: %v", id, err)
		return false
	}
	return true
}

func (c *Cache) write(ctx context.Context, trips []domain.SavedTrip) error {
	raw, err := json.Marshal(trips)
	if err != nil {
		return err
	}
	return c.kv.Set(ctx, c.key, raw)
}
