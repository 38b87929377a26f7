// Package trending implements the scrape-and-cache pipeline for the
// GitHub trending page.
//
// # Components
//
//   - Extractor: parses the trending page markup into ordered Project records
//   - Client: fetches the page over HTTP and probes source reachability
//   - Guard: single-slot TTL cache with stale and static fallbacks
//
// # Failure model
//
// The pipeline is designed so that callers of Guard.Projects never see an
// error. A failed refresh falls back to previously cached data when any
// exists, and to a fixed example dataset otherwise. Unexpected markup is
// a valid empty result, not an error.
package trending
