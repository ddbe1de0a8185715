package item

import (
	"encoding/json"
	"testing"
)

func TestPriceText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PriceText
		wantErr bool
	}{
		{"string", `"2.50"`, "2.50", false},
		{"number keeps literal", `10000.999`, "10000.999", false},
		{"integer", `3`, "3", false},
		{"leading dot string", `".5"`, ".5", false},
		{"boolean", `true`, "", true},
		{"object", `{}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got PriceText
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPriceText_UnmarshalTOML(t *testing.T) {
	tests := []struct {
		input   any
		want    PriceText
		wantErr bool
	}{
		{"2.50", "2.50", false},
		{int64(7), "7", false},
		{1.19, "1.19", false},
		{true, "", true},
	}

	for _, tt := range tests {
		var got PriceText
		err := got.UnmarshalTOML(tt.input)
		if (err != nil) != tt.wantErr {
			t.Fatalf("UnmarshalTOML(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("UnmarshalTOML(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPriceText_Parse(t *testing.T) {
	p, err := PriceText("10000.999").Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.String() != "10001.00" {
		t.Errorf("Parse() = %s, want 10001.00", p)
	}

	if _, err := PriceText("1e3").Parse(); err == nil {
		t.Error("Parse(1e3) expected error")
	}
}
