package capi

import (
	"encoding/json"
	"testing"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{input: "1,234.56"},
		{input: "-0.35"},
		{input: " 12 "},
		{input: "", wantErr: true},
		{input: "12a", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseMoney(tt.input, "USD")
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMoney(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
	got, err := ParseMoney("1,234.56", "USD")
	if err != nil {
		t.Fatalf("ParseMoney() error = %v", err)
	}
	if !got.Equal(M(1234.56, "USD")) {
		t.Errorf("ParseMoney(1,234.56) = %v, want 1234.56 USD", got)
	}
}

func TestMoneyString(t *testing.T) {
	if got, want := M(1234.5, "USD").String(), "$1,234.50"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := M(-5, "USD").String(), "-$5.00"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestMoneySignedString(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{1234.5, "+$1,234.50"},
		{-5, "-$5.00"},
		{0, "-"},
	}
	for _, tt := range tests {
		if got := M(tt.value, "USD").SignedString(); got != tt.want {
			t.Errorf("M(%v).SignedString() = %q, want %q", tt.value, got, tt.want)
		}
	}
}

// The empty currency is weak: it adopts the other operand's currency in
// binary operations, so zero values compose without panicking.
func TestMoneyWeakCurrency(t *testing.T) {
	var zero Money
	sum := zero.Add(M(10, "EUR"))
	if got := sum.Currency(); got != "EUR" {
		t.Errorf("Currency() = %q, want EUR", got)
	}
	if !sum.Equal(M(10, "EUR")) {
		t.Errorf("sum = %v, want 10 EUR", sum)
	}
}

func TestMoneyArithmetic(t *testing.T) {
	m := M(80, "USD")
	if got := m.Mul(Q(0.625)); !got.Equal(M(50, "USD")) {
		t.Errorf("Mul() = %v, want 50 USD", got)
	}
	if got := m.Sub(M(30, "USD")); !got.Equal(M(50, "USD")) {
		t.Errorf("Sub() = %v, want 50 USD", got)
	}
	if got := m.Neg(); !got.Equal(M(-80, "USD")) {
		t.Errorf("Neg() = %v, want -80 USD", got)
	}
	if got := M(1.23456, "USD").Round(); !got.Equal(M(1.2346, "USD")) {
		t.Errorf("Round() = %v, want 1.2346 USD", got)
	}
}

func TestMoneyMarshalJSON(t *testing.T) {
	data, err := json.Marshal(M(12.5, "USD"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got, want := string(data), `{"currency":"USD","amount":"12.5"}`; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
	// the weak empty currency is omitted
	data, err = json.Marshal(M(1, ""))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got, want := string(data), `{"amount":"1"}`; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}
