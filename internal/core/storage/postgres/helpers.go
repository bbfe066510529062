package postgres

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blitzfilter/item-read/internal/core/storage"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRecordRow scans a (pk, sort key, attributes) row into a storage.Record.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
//
// Only a failed Scan is an error. Attributes that are not a JSON object are
// reported on Record.DecodeErr.
func scanRecordRow(row scanner) (storage.Record, error) {
	var rec storage.Record
	var attributesJSON []byte

	if err := row.Scan(&rec.PartitionKey, &rec.SortKey, &attributesJSON); err != nil {
		return storage.Record{}, fmt.Errorf("failed to scan record row: %w", err)
	}

	attrs, err := decodeAttributes(attributesJSON)
	if err != nil {
		rec.DecodeErr = fmt.Errorf("record %s/%s: %w", rec.PartitionKey, rec.SortKey, err)
		return rec, nil
	}
	rec.Attributes = attrs

	return rec, nil
}

// decodeAttributes keeps numbers as json.Number so prices survive without float rounding.
func decodeAttributes(raw []byte) (map[string]any, error) {
	var attrs map[string]any

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&attrs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attributes: %w", err)
	}
	if attrs == nil {
		return nil, errors.New("attributes are null")
	}
	return attrs, nil
}
