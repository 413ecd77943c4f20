package planner

import (
	"fmt"
	"strings"

	"github.com/yatraplan/trip-planner-api/internal/domain"
	"github.com/yatraplan/trip-planner-api/internal/ports/out/aigateway"
)

// outputSchema instructs the collaborator to return bare JSON in the exact
// shape NormalizeItinerary decodes. Keep the two in sync.
const outputSchema = `Return a JSON object with this exact structure (no markdown, just JSON):
{
  "destination": "string - the recommended destination",
  "summary": "string - 1-2 sentence trip summary",
  "days": [
    {
      "day": 1,
      "title": "string - theme for the day",
      "activities": [
        {
          "time": "string - e.g. 9:00 AM",
          "activity": "string - what to do",
          "description": "string - brief details",
          "cost": number
        }
      ]
    }
  ],
  "budget": {
    "travel": number,
    "stay": number,
    "food": number,
    "activities": number,
    "total": number
  },
  "tips": ["string - helpful tips for students"],
  "foodRecommendations": ["string - affordable food spots"],
  "accommodation": {
    "name": "string",
    "type": "string",
    "costPerNight": number
  }
}`

// BuildRequest converts trip preferences into a gateway request. It is a pure
// transformation: every preference is embedded verbatim, with explicit
// fallback phrasing for empty fields, followed by the output schema. Origin
// presence is enforced by the caller, not here.
func BuildRequest(prefs domain.TripPreferences) aigateway.Request {
	source := prefs.Source
	if source == "" {
		source = "Not specified"
	}
	destination := prefs.Destination
	if destination == "" {
		destination = "Suggest the best destinations"
	}
	interests := strings.Join(prefs.Interests, ", ")
	if interests == "" {
		interests = "General"
	}
	groupSize := prefs.GroupSize
	if groupSize == 0 {
		groupSize = 1
	}
	transport := string(prefs.Transport)
	if transport == "" {
		transport = "Any"
	}
	accommodation := string(prefs.Accommodation)
	if accommodation == "" {
		accommodation = "Budget hostel"
	}

	var b strings.Builder
	b.WriteString("Plan a student-friendly, budget trip with these details:\n")
	fmt.Fprintf(&b, "- Source: %s\n", source)
	fmt.Fprintf(&b, "- Destination: %s\n", destination)
	fmt.Fprintf(&b, "- Duration: %d days\n", prefs.Duration)
	fmt.Fprintf(&b, "- Budget: ₹%d\n", prefs.Budget)
	fmt.Fprintf(&b, "- Interests: %s\n", interests)
	fmt.Fprintf(&b, "- Group size: %d\n", groupSize)
	fmt.Fprintf(&b, "- Transport preference: %s\n", transport)
	fmt.Fprintf(&b, "- Accommodation: %s\n", accommodation)
	if prefs.Dates != "" {
		fmt.Fprintf(&b, "- Travel dates: %s\n", prefs.Dates)
	}
	b.WriteString("\n")
	b.WriteString(outputSchema)

	return aigateway.Request{
		Preferences: prefs,
		Prompt:      b.String(),
	}
}
