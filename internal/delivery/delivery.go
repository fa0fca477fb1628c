// Package delivery holds the long-running surfaces of the application.
package delivery

import "context"

// Delivery is a long-running surface started by the fx application: the REST
// API, the closure scheduler or the push worker.
type Delivery interface {
	Serve(ctx context.Context) error
}
