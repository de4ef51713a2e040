// Package twitter provides the X API v2 boundary for xplore: typed
// response models, URL/header builders, and the HTTP transport.
//
// The transport is deliberately simple. Each call is a single synchronous
// GET with the bearer authorization header; the JSON body is decoded once
// here into typed structs with explicitly nullable optional fields, and a
// non-success status becomes a typed error carrying the status code and
// response body. A bounded retry policy can be enabled through
// configuration but is off by default.
package twitter
