package aigateway

import (
	"context"
	"errors"

	"github.com/yatraplan/trip-planner-api/internal/domain"
)

var (
	// ErrRateLimited maps the collaborator's HTTP 429.
	ErrRateLimited = errors.New("ai gateway rate limited")
	// ErrQuotaExhausted maps the collaborator's HTTP 402.
	ErrQuotaExhausted = errors.New("ai gateway quota exhausted")
)

// Request is the payload sent to the planning collaborator: the preference
// fields verbatim plus the natural-language prompt built from them.
type Request struct {
	Preferences domain.TripPreferences
	Prompt      string
}

// Gateway generates itinerary content from a request. The return value is the
// collaborator's raw message content, which is expected (but not guaranteed)
// to be an Itinerary JSON document, possibly fence-wrapped.
type Gateway interface {
	Generate(ctx context.Context, req Request) (string, error)
}
