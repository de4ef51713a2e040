// Package search drives the paginated recent-search loop: it walks the
// API's next_token chain, aggregates tweets in return order, and merges
// the side-loaded author profiles into a deduplicated map.
//
// Pagination stops when the API stops returning a next_token, when the
// configured page cap is reached, or when enough tweets have been
// collected. A page that carries zero tweets but still has a next_token
// keeps the loop going; only the absent token is authoritative.
package search
