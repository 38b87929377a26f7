// Package main provides the entry point for the trendwatch CLI.
//
// trendwatch monitors the GitHub trending page: it scrapes trending
// repositories on a daily schedule, caches results in memory, renders
// Markdown reports, and serves live and historical data over HTTP.
//
// Usage:
//
//	trendwatch serve
//	trendwatch generate
//	trendwatch reports
//
// See --help for all available options.
package main

// main is the entry point for trendwatch.
func main() {
	Execute()
}
