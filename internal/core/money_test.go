package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"dot separator", "12.34", 1234, false},
		{"comma separator", "12,34", 1234, false},
		{"integer", "42", 4200, false},
		{"one decimal digit", "7.5", 750, false},
		{"third digit rounds down", "12.344", 1234, false},
		{"third digit rounds up", "12.346", 1235, false},
		{"leading dot", ".50", 50, false},
		{"whitespace trimmed", "  9.99 ", 999, false},
		{"empty", "", 0, true},
		{"zero", "0", 0, true},
		{"negative", "-5", 0, true},
		{"explicit plus", "+5", 0, true},
		{"letters", "12a.30", 0, true},
		{"two dots", "1.2.3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimalToCents(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDecimalToCents(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDecimalToCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoney_JSON(t *testing.T) {
	tests := []struct {
		name  string
		money Money
		want  string
	}{
		{"whole units", Money{Cents: 500000}, "5000"},
		{"fractional", Money{Cents: 120050}, "1200.5"},
		{"cents", Money{Cents: 7}, "0.07"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := json.Marshal(tt.money)
			if err != nil {
				t.Fatalf("Marshal error: %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("Marshal(%d cents) = %s, want %s", tt.money.Cents, out, tt.want)
			}

			var back Money
			if err := json.Unmarshal(out, &back); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", out, err)
			}
			if back != tt.money {
				t.Errorf("round trip = %d cents, want %d", back.Cents, tt.money.Cents)
			}
		})
	}

	var m Money
	if err := json.Unmarshal([]byte(`"12,50"`), &m); err != nil || m.Cents != 1250 {
		t.Errorf("string amount = %d (%v), want 1250 cents", m.Cents, err)
	}
	if err := json.Unmarshal([]byte(`-3`), &m); err == nil {
		t.Error("Unmarshal accepted a negative amount")
	}
}

func TestMoney_String(t *testing.T) {
	if got := (Money{Cents: 1234}).String(); got != "12.34" {
		t.Errorf("String() = %q, want 12.34", got)
	}
	if got := (Money{Cents: -50}).String(); got != "-0.50" {
		t.Errorf("String() = %q, want -0.50", got)
	}
}
