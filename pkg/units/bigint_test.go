package units

import (
	"encoding/json"
	"math/big"
	"testing"
)

func TestToBigIntSupportedInputs(t *testing.T) {
	huge, _ := new(big.Int).SetString("340282366920938463463374607431768211455", 10)

	cases := []struct {
		name     string
		input    any
		expected string
	}{
		{"digit string", "1000000", "1000000"},
		{"padded string", "  42 ", "42"},
		{"hex string", "0xff", "255"},
		{"u128 string", "340282366920938463463374607431768211455", huge.String()},
		{"int", 7, "7"},
		{"int64", int64(-3), "-3"},
		{"uint64", uint64(18446744073709551615), "18446744073709551615"},
		{"uint16", uint16(250), "250"},
		{"json number", json.Number("99"), "99"},
		{"big pointer", huge, huge.String()},
		{"big value", *big.NewInt(12), "12"},
		{"float floored", 12.99, "12"},
		{"negative float floored", -1.5, "-2"},
		{"decimal string floored", "12.7", "12"},
	}

	for _, tc := range cases {
		result, err := ToBigInt(tc.input)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if result.String() != tc.expected {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.expected, result.String())
		}
	}
}

func TestToBigIntCopiesBigInput(t *testing.T) {
	input := big.NewInt(5)
	result, err := ToBigInt(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result.SetInt64(6)
	if input.Int64() != 5 {
		t.Fatal("ToBigInt must not alias its input")
	}
}

func TestToBigIntRejectsInvalid(t *testing.T) {
	var nilBig *big.Int
	for _, input := range []any{nil, nilBig, "", "abc", "0xzz", true, struct{}{}} {
		if _, err := ToBigInt(input); err == nil {
			t.Fatalf("expected error for %#v", input)
		}
	}
}

func TestMustBigIntPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustBigInt("not a number")
}
