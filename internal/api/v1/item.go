package v1

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ItemState is the lifecycle state an item was observed in.
type ItemState string

const (
	ItemStateListed    ItemState = "LISTED"
	ItemStateAvailable ItemState = "AVAILABLE"
	ItemStateActive    ItemState = "ACTIVE"
	ItemStateReserved  ItemState = "RESERVED"
	ItemStateSold      ItemState = "SOLD"
	ItemStateRemoved   ItemState = "REMOVED"
)

// ParseItemState maps the stored representation to a known ItemState.
func ParseItemState(s string) (ItemState, error) {
	switch state := ItemState(s); state {
	case ItemStateListed, ItemStateAvailable, ItemStateActive,
		ItemStateReserved, ItemStateSold, ItemStateRemoved:
		return state, nil
	}
	return "", fmt.Errorf("unknown item state %q", s)
}

// ItemEvent is one immutable fact about an item at a point in time.
//
// Every field except ItemID may be absent on any given event: producers only
// emit the fields they observed, so a nil pointer means "not carried by this
// event" rather than "cleared".
type ItemEvent struct {
	// ItemID is the stable identity of the item across its whole event series.
	ItemID string `json:"item_id"`

	// SourceID identifies the feed or shop the item was observed on.
	SourceID *string `json:"source_id,omitempty"`

	// EventID is globally unique, conventionally "{item_id}#{created}".
	EventID *string `json:"event_id,omitempty"`

	// Created is the event version: an ISO-8601 timestamp whose lexicographic
	// order equals its chronological order.
	Created *string `json:"created,omitempty"`

	State         *ItemState       `json:"state,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Category      *string          `json:"category,omitempty"`
	NameEn        *string          `json:"name_en,omitempty"`
	DescriptionEn *string          `json:"description_en,omitempty"`
	NameDe        *string          `json:"name_de,omitempty"`
	DescriptionDe *string          `json:"description_de,omitempty"`
	URL           *string          `json:"url,omitempty"`
	ImageURL      *string          `json:"image_url,omitempty"`

	// Hash is the content hash of the event's semantic payload. Identity and
	// version fields are not part of it.
	Hash *string `json:"hash,omitempty"`
}

// MaterializedItem is the current-state projection of an item, derived from
// its event series on every read and never persisted.
type MaterializedItem struct {
	ItemID        string           `json:"item_id"`
	SourceID      *string          `json:"source_id,omitempty"`
	Created       *string          `json:"created,omitempty"`
	State         *ItemState       `json:"state,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Category      *string          `json:"category,omitempty"`
	NameEn        *string          `json:"name_en,omitempty"`
	DescriptionEn *string          `json:"description_en,omitempty"`
	NameDe        *string          `json:"name_de,omitempty"`
	DescriptionDe *string          `json:"description_de,omitempty"`
	URL           *string          `json:"url,omitempty"`
	ImageURL      *string          `json:"image_url,omitempty"`

	// Hash is always nil on a materialized item.
	Hash *string `json:"hash,omitempty"`
}

// ItemEventHash is the change-detection projection of an event, read from the
// hash index ordered by version.
type ItemEventHash struct {
	ItemID   string  `json:"item_id"`
	SourceID *string `json:"source_id,omitempty"`
	EventID  *string `json:"event_id,omitempty"`
	Created  *string `json:"created,omitempty"`
	Hash     string  `json:"hash"`
}
