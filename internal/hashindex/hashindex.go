// Package hashindex builds the change-detection maps an ingestion pipeline
// consults to decide whether a newly observed item state is actually new.
//
// Both builders expect hash records ordered latest first, as returned by a
// LatestFirst hash-index query.
package hashindex

import (
	v1 "github.com/blitzfilter/item-read/internal/api/v1"
)

// BuildLatestHashMap maps each item to the hash of the first record seen for
// it, which is its most recent event when the input is latest first.
func BuildLatestHashMap(hashesLatestFirst []v1.ItemEventHash) map[string]string {
	latest := make(map[string]string)
	for _, h := range hashesLatestFirst {
		if _, seen := latest[h.ItemID]; seen {
			continue
		}
		latest[h.ItemID] = h.Hash
	}
	return latest
}

// BuildFullHashMap maps each item to every hash seen for it, in input order.
// Index 0 is the latest hash when the input is latest first.
func BuildFullHashMap(hashesLatestFirst []v1.ItemEventHash) map[string][]string {
	full := make(map[string][]string)
	for _, h := range hashesLatestFirst {
		full[h.ItemID] = append(full[h.ItemID], h.Hash)
	}
	return full
}
