package model

import "time"

// Export describes a snapshot of one record collection written to object storage.
type Export struct {
	Kind      string    `json:"kind"`
	Key       string    `json:"key"`
	Count     int       `json:"count"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
	URL       string    `json:"url,omitempty"`
}
