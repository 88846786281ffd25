package api

import "time"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components []ComponentStatus `json:"components"`
}

// ComponentStatus is the health of one backend the API depends on.
type ComponentStatus struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

// HeadResponse reports how far the archive and the live node have progressed.
type HeadResponse struct {
	Archive ArchiveStatus `json:"archive"`

	// LiveFinalized is the live node's finalized height
	LiveFinalized uint64 `json:"live_finalized"`

	// Lag is the number of finalized blocks the archive has not stored yet
	Lag uint64 `json:"lag"`
}

// ArchiveStatus describes the stored block range.
type ArchiveStatus struct {
	Oldest    uint64 `json:"oldest"`
	Newest    uint64 `json:"newest"`
	Count     uint64 `json:"count"`
	SizeBytes int64  `json:"size_bytes"`
}
