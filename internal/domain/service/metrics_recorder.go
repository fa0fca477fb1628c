package service

import "time"

// MetricsRecorder records business events for monitoring.
type MetricsRecorder interface {
	ObserveHTTPRequest(method, route string, status int, elapsed time.Duration)
	BookingTransitioned(to string)
	ContainerReviewed(decision string)
	ClosureRun(result string, closed int)
}
