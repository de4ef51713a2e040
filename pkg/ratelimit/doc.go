// Package ratelimit provides rate limiting for the X API transport.
//
// The recent search and counts endpoints are quota limited per 15-minute
// window on the standard tiers, so the pagination loop throttles itself
// locally instead of burning requests into 429 responses.
//
// Available Implementations:
//
// Token Bucket:
//   - Fixed capacity bucket that refills after a specified period
//   - Suitable for burst traffic followed by quiet periods
//
// Sliding Window:
//   - Tracks requests within a moving time window
//   - Matches the API's windowed quota model
//   - Default implementation used by the search loop
//
// All rate limiters implement the Limiter interface:
//   - Allow() bool - Check if a request is allowed
//   - Wait(ctx) error - Block until a request is allowed or ctx ends
//   - Reset() - Reset the limiter state
//
// Usage:
//
//	// Sliding window: 180 requests per 15 minutes
//	limiter := ratelimit.NewSlidingWindow(180, 15*time.Minute)
//
//	if err := limiter.Wait(ctx); err != nil {
//	    return err
//	}
//	// Proceed with request
package ratelimit
