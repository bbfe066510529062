package v1

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseItemState(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ItemState
		wantErr bool
	}{
		{name: "sold", input: "SOLD", want: ItemStateSold},
		{name: "reserved", input: "RESERVED", want: ItemStateReserved},
		{name: "active", input: "ACTIVE", want: ItemStateActive},
		{name: "lowercase is not a known state", input: "sold", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "unknown", input: "ARCHIVED", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseItemState(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseItemState(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseItemState(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMaterializedItem_JSONOmitsAbsentFields(t *testing.T) {
	name := "75th Regiment badge"
	price := decimal.NewFromInt(160)
	item := MaterializedItem{
		ItemID: "https://a1militaria.com#50109",
		NameEn: &name,
		Price:  &price,
	}

	body, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded["item_id"] != "https://a1militaria.com#50109" {
		t.Errorf("item_id = %v", decoded["item_id"])
	}
	if decoded["name_en"] != name {
		t.Errorf("name_en = %v", decoded["name_en"])
	}
	for _, absent := range []string{"hash", "state", "name_de", "url"} {
		if _, ok := decoded[absent]; ok {
			t.Errorf("expected %q to be omitted, got %v", absent, decoded[absent])
		}
	}
}
