package storage

// Key layout shared by the event producer and this read path.
//
// Base table:   pk = "item#{item_id}",     sk = "item#{created}"
// Hash index:   pk = "source#{source_id}", sk = "item#{created}"
//
// Other record kinds may share an item partition under a different sort-key
// prefix; EventSortKeyPrefix selects events only.
const (
	itemPartitionPrefix   = "item#"
	sourcePartitionPrefix = "source#"

	EventSortKeyPrefix = "item#"
)

// ItemPartitionKey returns the base-table partition key of an item's event series.
func ItemPartitionKey(itemID string) string {
	return itemPartitionPrefix + itemID
}

// SourcePartitionKey returns the hash-index partition key of a source.
func SourcePartitionKey(sourceID string) string {
	return sourcePartitionPrefix + sourceID
}

// EventSortKey returns the sort key of the event created at the given version.
func EventSortKey(created string) string {
	return EventSortKeyPrefix + created
}

// EventID returns the conventional event identifier "{item_id}#{created}".
func EventID(itemID, created string) string {
	return itemID + "#" + created
}
