// Package materialize folds an item's event series into its current-state view.
package materialize

import (
	v1 "github.com/blitzfilter/item-read/internal/api/v1"
)

// Materialize folds events, oldest first, into one MaterializedItem.
//
// Each optional field takes the first non-nil value met during the fold; later
// events never override it. ItemID is always the caller's itemID and Hash is
// always nil. An empty series yields nil.
//
// The result shares pointed-to values with the input events.
func Materialize(itemID string, eventsOldestFirst []v1.ItemEvent) *v1.MaterializedItem {
	if len(eventsOldestFirst) == 0 {
		return nil
	}

	item := &v1.MaterializedItem{ItemID: itemID}
	for i := range eventsOldestFirst {
		evt := &eventsOldestFirst[i]

		keepFirst(&item.SourceID, evt.SourceID)
		keepFirst(&item.Created, evt.Created)
		keepFirst(&item.State, evt.State)
		keepFirst(&item.Price, evt.Price)
		keepFirst(&item.Category, evt.Category)
		keepFirst(&item.NameEn, evt.NameEn)
		keepFirst(&item.DescriptionEn, evt.DescriptionEn)
		keepFirst(&item.NameDe, evt.NameDe)
		keepFirst(&item.DescriptionDe, evt.DescriptionDe)
		keepFirst(&item.URL, evt.URL)
		keepFirst(&item.ImageURL, evt.ImageURL)
	}

	return item
}

func keepFirst[T any](dst **T, candidate *T) {
	if *dst == nil && candidate != nil {
		*dst = candidate
	}
}
