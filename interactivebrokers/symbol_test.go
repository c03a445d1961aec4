package interactivebrokers

import (
	"testing"

	"github.com/cowwoc/capi"
)

func TestParseSymbol(t *testing.T) {
	tests := []struct {
		input      string
		value      string
		underlying string
		strike     capi.Quantity
		wantErr    bool
	}{
		{input: "AAPL", value: "AAPL", underlying: "", strike: capi.Quantity{}},
		{input: "BRK B", wantErr: true}, // two tokens: neither plain nor an option
		{input: "SQQQ 17JUN22 42.0 P", value: "PUT SQQQ 17JUN22@42.0000", underlying: "SQQQ", strike: capi.Q(42)},
		{input: "SQQQ 17JUN22 42 P", value: "PUT SQQQ 17JUN22@42.0000", underlying: "SQQQ", strike: capi.Q(42)},
		{input: "TSLA 20JAN23 250.5 C", value: "CALL TSLA 20JAN23@250.5000", underlying: "TSLA", strike: capi.Q(250.5)},
		{input: "", wantErr: true},
		{input: "SQQQ 17JUN22 42.0 X", wantErr: true},
		{input: "SQQQ 17JUN22 -42.0 P", wantErr: true},
		{input: "SQQQ 17JUN22 abc P", wantErr: true},
		{input: "SQQQ 17JUN22 42.0 P extra", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseSymbol(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSymbol(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.value != tt.value {
				t.Errorf("parseSymbol(%q).value = %q, want %q", tt.input, got.value, tt.value)
			}
			if got.underlyingAsset != tt.underlying {
				t.Errorf("parseSymbol(%q).underlyingAsset = %q, want %q", tt.input, got.underlyingAsset, tt.underlying)
			}
			if !got.strikePrice.Equal(tt.strike.Round()) {
				t.Errorf("parseSymbol(%q).strikePrice = %v, want %v", tt.input, got.strikePrice, tt.strike)
			}
		})
	}
}

// Two spellings of the same contract normalize to the same symbol, so the
// position tracker sees them as one instrument.
func TestParseSymbol_NormalizesEquivalentSpellings(t *testing.T) {
	a, err := parseSymbol("SQQQ 17JUN22 42.0 P")
	if err != nil {
		t.Fatalf("parseSymbol() error = %v", err)
	}
	b, err := parseSymbol("SQQQ 17JUN22 42 P")
	if err != nil {
		t.Fatalf("parseSymbol() error = %v", err)
	}
	if a.value != b.value {
		t.Errorf("normalized symbols differ: %q vs %q", a.value, b.value)
	}
}
