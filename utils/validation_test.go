package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateGSTIN(t *testing.T) {
	tests := []struct {
		name  string
		gstin string
		want  bool
	}{
		{"valid maharashtra", "27AAPFU0939F1ZV", true},
		{"valid gujarat", "24AABCP1234Q1Z5", true},
		{"lowercase accepted", "27aapfu0939f1zv", true},
		{"spaces stripped", "27 AAPFU0939F 1ZV", true},
		{"too short", "27AAPFU0939F1Z", false},
		{"missing Z marker", "27AAPFU0939F1XV", false},
		{"bad state code", "2XAAPFU0939F1ZV", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateGSTIN(tt.gstin))
		})
	}
}

func TestNormalizeGSTIN(t *testing.T) {
	assert.Equal(t, "27AAPFU0939F1ZV", NormalizeGSTIN("27 aapfu0939f 1zv"))
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "Steel Bars", "Steel Bars"},
		{"percent escaped", "100%", `100\%`},
		{"underscore escaped", "bar_code", `bar\_code`},
		{"backslash escaped first", `a\%b`, `a\\\%b`},
		{"wildcard only", "%", `\%`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLike(tt.input))
		})
	}
}

func TestFiscalYear(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), "2025-26"},
		{time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), "2025-26"},
		{time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), "2026-27"},
		{time.Date(1999, 12, 1, 0, 0, 0, 0, time.UTC), "1999-00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FiscalYear(tt.date))
	}
}

func TestGenerateInvoiceNumberContainsSlashes(t *testing.T) {
	number := GenerateInvoiceNumber(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	assert.Regexp(t, `^INV/2025-26/[A-Z2-9]{4}$`, number)
}

func TestGenerateRandomStringLength(t *testing.T) {
	assert.Len(t, GenerateRandomString(6), 6)
	assert.NotEqual(t, GenerateRandomString(12), GenerateRandomString(12))
}

func TestDueDateFor(t *testing.T) {
	from := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, from, DueDateFor("immediate", from))
	assert.Equal(t, from.AddDate(0, 0, 15), DueDateFor("15days", from))
	assert.Equal(t, from.AddDate(0, 0, 30), DueDateFor("30days", from))
	assert.Equal(t, from.AddDate(0, 0, 30), DueDateFor("", from))
	assert.Equal(t, from.AddDate(0, 0, 45), DueDateFor("45days", from))
}
