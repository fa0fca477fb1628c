package impl

import "time"

// utcNow is the single source of application timestamps. Services take it as
// a field so tests can pin the time.
func utcNow() time.Time {
	return time.Now().UTC()
}
