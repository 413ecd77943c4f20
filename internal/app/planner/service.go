package planner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/yatraplan/trip-planner-api/internal/app/tripcache"
	"github.com/yatraplan/trip-planner-api/internal/domain"
	"github.com/yatraplan/trip-planner-api/internal/ports/out/aigateway"
)

// Service orchestrates itinerary generation: validate, build the prompt, call
// the collaborator, normalize the response, remember the result. Identical
// concurrent generation requests are coalesced into one upstream call.
type Service struct {
	gateway aigateway.Gateway
	cache   *tripcache.Cache

	inflight singleflight.Group
}

func NewService(gateway aigateway.Gateway, cache *tripcache.Cache) *Service {
	return &Service{
		gateway: gateway,
		cache:   cache,
	}
}

// GenerateItinerary runs the full planning flow. A storage failure while
// saving never fails the call: the generated record is returned regardless.
func (s *Service) GenerateItinerary(ctx context.Context, prefs domain.TripPreferences) (domain.SavedTrip, error) {
	if strings.TrimSpace(prefs.Source) == "" {
		return domain.SavedTrip{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "missing origin",
			Details: map[string]any{"source": "must be non-empty"},
		}
	}

	req := BuildRequest(prefs)
	raw, err := s.generate(ctx, req)
	if err != nil {
		return domain.SavedTrip{}, mapGatewayError(err)
	}

	it, err := domain.NormalizeItinerary(raw)
	if err != nil {
		pe := (*domain.ParseError)(nil)
		if errors.As(err, &pe) {
			log.Printf("planner: failed to parse itinerary response: %v; raw: %q", pe.Err, pe.Raw)
		}
		return domain.SavedTrip{}, &Error{
			Status:  502,
			Code:    "ITINERARY_PARSE_FAILED",
			Message: "Failed to generate itinerary. Please try again.",
		}
	}

	return s.cache.Insert(ctx, prefs, it), nil
}

// ListSavedTrips returns the cached history, newest first.
func (s *Service) ListSavedTrips(ctx context.Context) []domain.SavedTrip {
	return s.cache.List(ctx)
}

// DeleteSavedTrip removes a record by id; absent ids are a no-op success.
func (s *Service) DeleteSavedTrip(ctx context.Context, id domain.TripID) bool {
	return s.cache.Delete(ctx, id)
}

func (s *Service) generate(ctx context.Context, req aigateway.Request) (string, error) {
	// Coalesced waiters share one upstream call; it is detached from the
	// initiating caller's context so one caller cancelling does not fail
	// every waiter.
	callCtx := context.WithoutCancel(ctx)
	v, err, _ := s.inflight.Do(requestKey(req), func() (any, error) {
		return s.gateway.Generate(callCtx, req)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// requestKey fingerprints a request so identical in-flight generations share
// one upstream call.
func requestKey(req aigateway.Request) string {
	raw, err := json.Marshal(req.Preferences)
	if err != nil {
		return req.Prompt
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func mapGatewayError(err error) error {
	switch {
	case errors.Is(err, aigateway.ErrRateLimited):
		return &Error{
			Status:  429,
			Code:    "RATE_LIMITED",
			Message: "Rate limit exceeded. Please try again in a moment.",
		}
	case errors.Is(err, aigateway.ErrQuotaExhausted):
		return &Error{
			Status:  402,
			Code:    "QUOTA_EXHAUSTED",
			Message: "AI credits exhausted. Please add credits.",
		}
	default:
		log.Printf("planner: ai gateway error: %v", err)
		return &Error{
			Status:  502,
			Code:    "AI_SERVICE_ERROR",
			Message: "AI service error",
		}
	}
}
