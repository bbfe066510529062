package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	v1 "github.com/blitzfilter/item-read/internal/api/v1"
	"github.com/go-viper/mapstructure/v2"
	"github.com/shopspring/decimal"
)

var (
	decimalType   = reflect.TypeOf(decimal.Decimal{})
	itemStateType = reflect.TypeOf(v1.ItemState(""))
)

// decodeItemEvent turns a stored attribute map into an ItemEvent.
// Unknown attributes are ignored so older readers tolerate newer producers.
func decodeItemEvent(attrs map[string]any) (v1.ItemEvent, error) {
	var evt v1.ItemEvent
	if err := decodeAttributes(attrs, &evt); err != nil {
		return v1.ItemEvent{}, err
	}
	if evt.ItemID == "" {
		return v1.ItemEvent{}, errors.New("item_id is required")
	}
	return evt, nil
}

// decodeItemEventHash turns a hash-index projection into an ItemEventHash.
func decodeItemEventHash(attrs map[string]any) (v1.ItemEventHash, error) {
	var h v1.ItemEventHash
	if err := decodeAttributes(attrs, &h); err != nil {
		return v1.ItemEventHash{}, err
	}
	if h.ItemID == "" {
		return v1.ItemEventHash{}, errors.New("item_id is required")
	}
	if h.Hash == "" {
		return v1.ItemEventHash{}, errors.New("hash is required")
	}
	return h, nil
}

func decodeAttributes(attrs map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			decimalHook,
			itemStateHook,
		),
	})
	if err != nil {
		return fmt.Errorf("failed to build decoder: %w", err)
	}
	return dec.Decode(attrs)
}

// decimalHook accepts prices stored as JSON numbers, plain floats/ints or
// numeric strings.
func decimalHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != decimalType {
		return data, nil
	}
	switch v := data.(type) {
	case decimal.Decimal:
		return v, nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		return decimal.NewFromString(v)
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	}
	return nil, fmt.Errorf("cannot decode %T as a decimal", data)
}

func itemStateHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != itemStateType {
		return data, nil
	}
	s, ok := data.(string)
	if !ok {
		return nil, fmt.Errorf("cannot decode %T as an item state", data)
	}
	return v1.ParseItemState(s)
}
