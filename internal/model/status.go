package model

import "time"

// CacheStatus describes the current state of the trending cache slot.
// It is computed from the slot without mutating it.
type CacheStatus struct {
	// HasCache reports whether the slot currently holds a payload.
	HasCache bool `json:"hasCache"`

	// LastFetch is the time of the last successful fetch, or nil when
	// the slot has never been populated (or was cleared).
	LastFetch *time.Time `json:"lastFetch"`

	// CacheAge is the age of the cached payload in milliseconds.
	// Zero when the slot is empty.
	CacheAge int64 `json:"cacheAge"`

	// IsExpired reports whether the payload is older than the TTL.
	// An empty slot is reported as expired.
	IsExpired bool `json:"isExpired"`
}

// Health status values reported by the source reachability probe.
const (
	// HealthStatusHealthy indicates the source origin answered the probe.
	HealthStatusHealthy = "healthy"

	// HealthStatusUnhealthy indicates the probe failed.
	HealthStatusUnhealthy = "unhealthy"
)

// Health is the result of a lightweight reachability probe against the
// source origin. The probe never raises; failures are reported in Error.
type Health struct {
	// Status is either HealthStatusHealthy or HealthStatusUnhealthy.
	Status string `json:"status"`

	// Timestamp is when the probe completed.
	Timestamp time.Time `json:"timestamp"`

	// Error carries the failure detail when Status is unhealthy.
	Error string `json:"error,omitempty"`
}

// ReportInfo is the metadata for one stored report document.
type ReportInfo struct {
	// FileName is the date-derived report file name
	// (pattern trending-YYYY-MM-DD.md).
	FileName string `json:"fileName"`

	// FilePath is the absolute path of the document on disk.
	FilePath string `json:"filePath"`

	// CreatedAt is the document creation time as reported by storage.
	// File birth time is not portable, so this equals ModifiedAt.
	CreatedAt time.Time `json:"createdAt"`

	// ModifiedAt is the document modification time.
	ModifiedAt time.Time `json:"modifiedAt"`

	// Size is the document size in bytes.
	Size int64 `json:"size"`
}
