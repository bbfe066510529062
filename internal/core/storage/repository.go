package storage

import (
	"context"
	"errors"
)

// ErrUnknownIndex is returned when a query names an index the store does not maintain.
var ErrUnknownIndex = errors.New("unknown index")

// HashIndexName is the secondary index keyed by source and ordered by event version.
const HashIndexName = "gsi_1_hash_index"

// Direction selects the sort-key order of a query.
//
// IndexOrder (the zero value) leaves ordering to the index itself and is only
// meant for unscoped audit scans. Everything that depends on version order must
// ask for OldestFirst or LatestFirst explicitly.
type Direction int

const (
	IndexOrder Direction = iota
	OldestFirst
	LatestFirst
)

func (d Direction) String() string {
	switch d {
	case OldestFirst:
		return "oldest_first"
	case LatestFirst:
		return "latest_first"
	case IndexOrder:
		return "index_order"
	}
	return "unknown"
}

// ParseDirection maps the wire form back to a Direction.
// Only the two explicit orderings are accepted.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "oldest_first":
		return OldestFirst, nil
	case "latest_first":
		return LatestFirst, nil
	}
	return IndexOrder, errors.New("direction must be oldest_first or latest_first")
}

// Cursor identifies the last record of a page. Queries resume strictly after it.
type Cursor struct {
	PartitionKey string
	SortKey      string
}

// Query scopes a read to one partition of the table or of a secondary index.
type Query struct {
	// Index is empty for the base table.
	Index string

	PartitionKey string

	// SortKeyPrefix restricts results to one record kind. Empty matches every
	// record in the partition.
	SortKeyPrefix string

	Direction  Direction
	Limit      int
	StartAfter *Cursor
}

// Record is one stored record as a generic attribute map plus its keys.
type Record struct {
	PartitionKey string
	SortKey      string
	Attributes   map[string]any

	// DecodeErr is set when the stored attributes are not a JSON object.
	// Attributes is nil then; the record is still returned so one bad row
	// does not fail its page.
	DecodeErr error
}

// Page is one slice of query results.
// LastEvaluated is nil once the partition is exhausted.
type Page struct {
	Records       []Record
	LastEvaluated *Cursor
}

// EventStore is the partitioned, ordered key-value store events live in.
type EventStore interface {
	// Query returns one page of records matching q in the requested order.
	Query(ctx context.Context, q Query) (*Page, error)
}
