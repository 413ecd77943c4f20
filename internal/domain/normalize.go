package domain

import (
	"encoding/json"
	"strings"
)

// ParseError reports that planner output was not valid structured data after
// cleanup. Raw keeps the original text for diagnostics; it is logged, never
// shown to users.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return "itinerary response is not valid JSON: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// NormalizeItinerary converts raw planner output into an Itinerary. The
// planner is asked for bare JSON but routinely wraps it in markdown code
// fences, so fences are stripped before decoding. Beyond a successful
// structural parse there is no schema validation: missing sub-fields decode to
// zero values and are the consumer's responsibility to guard.
func NormalizeItinerary(raw string) (Itinerary, error) {
	cleaned := raw
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```JSON", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var it Itinerary
	if err := json.Unmarshal([]byte(cleaned), &it); err != nil {
		return Itinerary{}, &ParseError{Raw: raw, Err: err}
	}
	return it, nil
}
