package projection

import (
	v1 "github.com/blitzfilter/item-read/internal/api/v1"
)

// ItemRequest carries the query parameters of the item endpoints.
// Item ids are URLs, so they travel as query parameters rather than path segments.
type ItemRequest struct {
	ItemID string `form:"item_id" binding:"required"`
}

// ItemEventsRequest carries the query parameters of the event-series endpoint.
type ItemEventsRequest struct {
	ItemID    string `form:"item_id" binding:"required"`
	Direction string `form:"direction" binding:"required"`
}

// SourceRequest carries the query parameters of the hash endpoints.
type SourceRequest struct {
	SourceID string `form:"source_id" binding:"required"`
}

// ItemEventsResponse is the body of GET /v1/items/events.
type ItemEventsResponse struct {
	ItemID    string         `json:"item_id"`
	Direction string         `json:"direction"`
	Events    []v1.ItemEvent `json:"events"`
}

// LatestHashesResponse is the body of GET /v1/sources/hashes/latest.
type LatestHashesResponse struct {
	SourceID string            `json:"source_id"`
	Hashes   map[string]string `json:"hashes"`
}

// FullHashesResponse is the body of GET /v1/sources/hashes.
type FullHashesResponse struct {
	SourceID string              `json:"source_id"`
	Hashes   map[string][]string `json:"hashes"`
}

// EventHashesResponse is the body of GET /v1/sources/hashes/all.
type EventHashesResponse struct {
	SourceID string             `json:"source_id"`
	Hashes   []v1.ItemEventHash `json:"hashes"`
}
