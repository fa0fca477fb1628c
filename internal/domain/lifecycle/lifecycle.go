// Package lifecycle holds process-wide timing constants for start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds every start/stop hook (DB ping, server shutdown, publisher close).
const DefaultTimeout = 10 * time.Second
