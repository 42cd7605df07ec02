package parser

import (
	"strconv"
	"strings"
	"testing"
)

func TestExtractFirstNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"123.45", "123.45", true},
		{"Dewey 001.2 filosofía", "001.2", true},
		{"3,5", "3,5", true},
		{"abc 12 and 34", "12", true},
		{"12.", "12", true},
		{".5", "5", true},
		{"abc", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		result, ok := ExtractFirstNumber(tt.input)
		if result != tt.expected || ok != tt.ok {
			t.Errorf("ExtractFirstNumber(%q) = (%q, %v), expected (%q, %v)",
				tt.input, result, ok, tt.expected, tt.ok)
		}
	}
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"001.2", 1.2, true},
		{"3,5", 3.5, true},
		{" 7 ", 7, true},
		{"-2.5", -2.5, true},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		result, ok := ToFloat(tt.input)
		if result != tt.expected || ok != tt.ok {
			t.Errorf("ToFloat(%q) = (%v, %v), expected (%v, %v)",
				tt.input, result, ok, tt.expected, tt.ok)
		}
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		ok       bool
	}{
		{"3", 3, true},
		{"3.0", 3, true},
		{"3.9", 3, true},
		{"4,0", 4, true},
		{"x", 0, false},
	}

	for _, tt := range tests {
		result, ok := ToInt(tt.input)
		if result != tt.expected || ok != tt.ok {
			t.Errorf("ToInt(%q) = (%d, %v), expected (%d, %v)",
				tt.input, result, ok, tt.expected, tt.ok)
		}
	}
}

func TestExtractThenParseMatchesDirectParse(t *testing.T) {
	for _, token := range []string{"0", "1", "001.2", "123.45", "9,75", "000", "42,0"} {
		extracted, ok := ExtractFirstNumber(token)
		if !ok {
			t.Fatalf("ExtractFirstNumber(%q) found nothing", token)
		}
		got, ok := ToFloat(extracted)
		if !ok {
			t.Fatalf("ToFloat(%q) failed", extracted)
		}
		want, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
		if err != nil {
			t.Fatalf("ParseFloat(%q): %v", token, err)
		}
		if got != want {
			t.Errorf("token %q: got %v, want %v", token, got, want)
		}
	}
}
