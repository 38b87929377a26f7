// Package server exposes the trending pipeline over HTTP.
//
// This is a thin request/response mapping layer: handlers translate HTTP
// requests into core calls and core results (or sentinel errors) into
// status codes and JSON. No scraping, caching, or rendering logic lives
// here.
package server
