// Package retry provides bounded retry with configurable backoff.
//
// Retrying is opt-in: the HTTP transport only wraps calls in a Retrier
// when retries are enabled in configuration, so the default contract of
// a single attempt per call is preserved. The default predicate retries
// transient conditions only (network failures, 429 and 5xx statuses)
// and treats context cancellation as final.
package retry
