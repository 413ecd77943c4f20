package clock

import "time"

// Clock provides time to the application. An interface keeps record ids and
// timestamps deterministic in tests.
type Clock interface {
	Now() time.Time
}
