// Package model defines the core data structures shared across trendwatch.
//
// The types here represent scraped trending projects, cache state, source
// health, and stored report metadata. All types are JSON-serializable and
// form the wire contract exposed by the HTTP layer, so field names and
// JSON tags must remain stable.
package model
