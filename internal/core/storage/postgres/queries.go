package postgres

// SQL queries for the item record table and its hash index.
//
// Every query is keyset-paginated: $3 (and $4 on the index) carry the cursor of
// the previous page, an empty $3 means "first page". The limit is always one
// more than the page size so the adapter can tell whether another page exists.

const (
	// queryItemPartitionAsc reads one base-table partition, oldest sort key first.
	queryItemPartitionAsc = `
		SELECT pk, sk, attributes
		FROM item_records
		WHERE pk = $1
		  AND starts_with(sk, $2)
		  AND ($3::text = '' OR sk > $3)
		ORDER BY sk ASC
		LIMIT $4
	`

	// queryItemPartitionDesc reads one base-table partition, latest sort key first.
	queryItemPartitionDesc = `
		SELECT pk, sk, attributes
		FROM item_records
		WHERE pk = $1
		  AND starts_with(sk, $2)
		  AND ($3::text = '' OR sk < $3)
		ORDER BY sk DESC
		LIMIT $4
	`

	// queryHashIndexAsc reads one source partition of the hash index, oldest first.
	// Versions are not unique across items, so the base pk breaks ties.
	queryHashIndexAsc = `
		SELECT pk, gsi_1_sk, attributes
		FROM item_records
		WHERE gsi_1_pk = $1
		  AND starts_with(gsi_1_sk, $2)
		  AND ($3::text = '' OR (gsi_1_sk, pk) > ($3, $4))
		ORDER BY gsi_1_sk ASC, pk ASC
		LIMIT $5
	`

	// queryHashIndexDesc reads one source partition of the hash index, latest first.
	queryHashIndexDesc = `
		SELECT pk, gsi_1_sk, attributes
		FROM item_records
		WHERE gsi_1_pk = $1
		  AND starts_with(gsi_1_sk, $2)
		  AND ($3::text = '' OR (gsi_1_sk, pk) < ($3, $4))
		ORDER BY gsi_1_sk DESC, pk DESC
		LIMIT $5
	`
)
