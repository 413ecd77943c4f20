package planner_test

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	memclock "github.com/yatraplan/trip-planner-api/internal/adapters/memory/clock"
	memkvstore "github.com/yatraplan/trip-planner-api/internal/adapters/memory/kvstore"
	"github.com/yatraplan/trip-planner-api/internal/app/planner"
	"github.com/yatraplan/trip-planner-api/internal/app/tripcache"
	"github.com/yatraplan/trip-planner-api/internal/domain"
	"github.com/yatraplan/trip-planner-api/internal/ports/out/aigateway"
	"github.com/yatraplan/trip-planner-api/internal/ports/out/kvstore"
)

// stubGateway returns a canned completion or error.
type stubGateway struct {
	raw   string
	err   error
	calls int
}

func (g *stubGateway) Generate(ctx context.Context, req aigateway.Request) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.raw, nil
}

// blockingGateway counts calls and holds each one open until released, so
// tests can guarantee requests overlap in flight.
type blockingGateway struct {
	mu      sync.Mutex
	calls   int
	release chan struct{}
	raw     string
}

func (g *blockingGateway) Generate(ctx context.Context, req aigateway.Request) (string, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	select {
	case <-g.release:
		return g.raw, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (g *blockingGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// cancelAwareGateway fails when its context is already cancelled.
type cancelAwareGateway struct {
	raw string
}

func (g *cancelAwareGateway) Generate(ctx context.Context, req aigateway.Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return g.raw, nil
}

// failingStore refuses writes so storage soft-fail can be exercised.
type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (failingStore) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("write refused")
}

const validItineraryJSON = `{
  "destination": "Goa",
  "summary": "A relaxed beach trip.",
  "days": [
    {
      "day": 1,
      "title": "Arrival",
      "activities": [
        {"time": "Morning", "activity": "Train from Hyderabad", "description": "Sleeper class", "cost": 500}
      ]
    }
  ],
  "budget": {"travel": 1000, "stay": 1500, "food": 800, "activities": 700, "total": 4000},
  "tips": ["Carry sunscreen"],
  "foodRecommendations": ["Fish thali"],
  "accommodation": {"name": "Anjuna Backpackers", "type": "hostel", "costPerNight": 500}
}`

func validPrefs() domain.TripPreferences {
	return domain.TripPreferences{
		Source:        "Hyderabad",
		Destination:   "Goa",
		Duration:      3,
		Budget:        5000,
		Interests:     []string{"Beaches"},
		GroupSize:     2,
		Transport:     domain.TransportTrain,
		Accommodation: domain.AccommodationHostel,
	}
}

func newService(gw aigateway.Gateway, kv kvstore.Store) (*planner.Service, *tripcache.Cache) {
	cache := tripcache.New(kv, memclock.NewManualClock(time.Unix(1700000000, 0).UTC()))
	return planner.NewService(gw, cache), cache
}

func TestGenerateItinerary_SavesAndReturnsRecord(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{raw: validItineraryJSON}
	svc, cache := newService(gw, memkvstore.NewStore())

	prefs := validPrefs()
	rec, err := svc.GenerateItinerary(context.Background(), prefs)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if rec.ID == "" || rec.SavedAt == "" {
		t.Fatalf("rec=%+v", rec)
	}
	if rec.Itinerary.Destination != "Goa" {
		t.Fatalf("destination=%s", rec.Itinerary.Destination)
	}
	if !reflect.DeepEqual(rec.FormData, prefs) {
		t.Fatalf("formData=%+v", rec.FormData)
	}

	trips := cache.List(context.Background())
	if len(trips) != 1 || trips[0].ID != rec.ID {
		t.Fatalf("trips=%+v", trips)
	}
}

func TestGenerateItinerary_RejectsMissingOrigin(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{raw: validItineraryJSON}
	svc, _ := newService(gw, memkvstore.NewStore())

	for _, source := range []string{"", "   "} {
		prefs := validPrefs()
		prefs.Source = source

		_, err := svc.GenerateItinerary(context.Background(), prefs)
		var perr *planner.Error
		if !errors.As(err, &perr) {
			t.Fatalf("source=%q err=%v", source, err)
		}
		if perr.Status != 422 || perr.Code != "VALIDATION_ERROR" {
			t.Fatalf("source=%q got %d %s", source, perr.Status, perr.Code)
		}
	}
	if gw.calls != 0 {
		t.Fatalf("gateway called %d times", gw.calls)
	}
}

func TestGenerateItinerary_MapsGatewayErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"rate limited", aigateway.ErrRateLimited, 429, "RATE_LIMITED"},
		{"quota exhausted", aigateway.ErrQuotaExhausted, 402, "QUOTA_EXHAUSTED"},
		{"other failure", errors.New("connection reset"), 502, "AI_SERVICE_ERROR"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, cache := newService(&stubGateway{err: tc.err}, memkvstore.NewStore())
			_, err := svc.GenerateItinerary(context.Background(), validPrefs())

			var perr *planner.Error
			if !errors.As(err, &perr) {
				t.Fatalf("err=%v", err)
			}
			if perr.Status != tc.wantStatus || perr.Code != tc.wantCode {
				t.Fatalf("got %d %s, want %d %s", perr.Status, perr.Code, tc.wantStatus, tc.wantCode)
			}
			if got := cache.List(context.Background()); len(got) != 0 {
				t.Fatalf("cache not empty: %+v", got)
			}
		})
	}
}

func TestGenerateItinerary_ParseFailureDoesNotTouchCache(t *testing.T) {
	t.Parallel()

	svc, cache := newService(&stubGateway{raw: "Sorry, I cannot help with that."}, memkvstore.NewStore())

	_, err := svc.GenerateItinerary(context.Background(), validPrefs())
	var perr *planner.Error
	if !errors.As(err, &perr) {
		t.Fatalf("err=%v", err)
	}
	if perr.Status != 502 || perr.Code != "ITINERARY_PARSE_FAILED" {
		t.Fatalf("got %d %s", perr.Status, perr.Code)
	}
	if perr.Message != "Failed to generate itinerary. Please try again." {
		t.Fatalf("message=%q", perr.Message)
	}
	if got := cache.List(context.Background()); len(got) != 0 {
		t.Fatalf("cache not empty: %+v", got)
	}
}

func TestGenerateItinerary_SucceedsWhenStorageWriteFails(t *testing.T) {
	t.Parallel()

	svc, _ := newService(&stubGateway{raw: validItineraryJSON}, failingStore{})

	rec, err := svc.GenerateItinerary(context.Background(), validPrefs())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if rec.Itinerary.Destination != "Goa" {
		t.Fatalf("rec=%+v", rec)
	}
}

func TestGenerateItinerary_CoalescesConcurrentIdenticalRequests(t *testing.T) {
	t.Parallel()

	gw := &blockingGateway{release: make(chan struct{}), raw: validItineraryJSON}
	svc, _ := newService(gw, memkvstore.NewStore())

	const n = 5
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.GenerateItinerary(context.Background(), validPrefs())
		}(i)
	}

	// Let every goroutine reach the in-flight guard before the gateway
	// responds.
	time.Sleep(250 * time.Millisecond)
	close(gw.release)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if got := gw.callCount(); got != 1 {
		t.Fatalf("upstream calls=%d, want 1", got)
	}
}

func TestGenerateItinerary_UpstreamCallIsDetachedFromCallerCancellation(t *testing.T) {
	t.Parallel()

	svc, _ := newService(&cancelAwareGateway{raw: validItineraryJSON}, memkvstore.NewStore())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec, err := svc.GenerateItinerary(ctx, validPrefs())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if rec.Itinerary.Destination != "Goa" {
		t.Fatalf("rec=%+v", rec)
	}
}

func TestDeleteSavedTrip_RemovesOnlyThatRecord(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{raw: validItineraryJSON}
	clk := memclock.NewManualClock(time.Unix(1700000000, 0).UTC())
	cache := tripcache.New(memkvstore.NewStore(), clk)
	svc := planner.NewService(gw, cache)

	first, err := svc.GenerateItinerary(context.Background(), validPrefs())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	clk.Advance(time.Second)
	second, err := svc.GenerateItinerary(context.Background(), validPrefs())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !svc.DeleteSavedTrip(context.Background(), first.ID) {
		t.Fatalf("delete returned false")
	}
	trips := svc.ListSavedTrips(context.Background())
	if len(trips) != 1 || trips[0].ID != second.ID {
		t.Fatalf("trips=%+v", trips)
	}
}
