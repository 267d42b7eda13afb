package utils

import (
	"strings"
	"testing"
)

func isGeneratedShortCode(code string, length int) bool {
	if len(code) != length {
		return false
	}
	for _, char := range code {
		if !strings.ContainsRune(generatedChars, char) {
			return false
		}
	}
	return true
}

func TestGenerateShortCode(t *testing.T) {
	tests := []struct {
		name   string
		length int
		want   bool // whether we expect an error
	}{
		{"Valid length 6", 6, false},
		{"Valid length 8", 8, false},
		{"Valid length 10", 10, false},
		{"Zero length", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateShortCode(tt.length)

			if (err != nil) != tt.want {
				t.Errorf("GenerateShortCode() error = %v, want error %v", err, tt.want)
				return
			}

			if err == nil {
				if len(got) != tt.length {
					t.Errorf("GenerateShortCode() length = %v, want %v", len(got), tt.length)
				}
				if tt.length > 0 && !isGeneratedShortCode(got, tt.length) {
					t.Errorf("GenerateShortCode() = %v, not lowercase alphanumeric", got)
				}
			}
		})
	}
}

func TestGenerateShortCodeUniqueness(t *testing.T) {
	const iterations = 1000
	const length = 6
	generated := make(map[string]bool)

	for i := 0; i < iterations; i++ {
		code, err := GenerateShortCode(length)
		if err != nil {
			t.Fatalf("GenerateShortCode() error = %v", err)
		}
		if generated[code] {
			t.Fatalf("GenerateShortCode() generated duplicate code: %v", code)
		}
		generated[code] = true
	}
}

func TestIsValidShortCode(t *testing.T) {
	tests := []struct {
		name      string
		shortCode string
		want      bool
	}{
		{"Valid alphanumeric", "abc123", true},
		{"Valid with uppercase", "AbC123", true},
		{"Invalid with special chars", "abc-123", false},
		{"Invalid with space", "abc 123", false},
		{"Invalid with underscore", "abc_123", false},
		{"Invalid non-ascii letter", "abcé", false},
		{"Empty string", "", false},
		{"Valid single char", "a", true},
		{"Valid all numbers", "123456", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidShortCode(tt.shortCode); got != tt.want {
				t.Errorf("IsValidShortCode(%v) = %v, want %v", tt.shortCode, got, tt.want)
			}
		})
	}
}

func TestGenerateShortCodeCharacterSet(t *testing.T) {
	const iterations = 100
	const length = 10

	for i := 0; i < iterations; i++ {
		code, err := GenerateShortCode(length)
		if err != nil {
			t.Fatalf("GenerateShortCode() error = %v", err)
		}
		if code != strings.ToLower(code) {
			t.Errorf("GenerateShortCode() produced uppercase characters: %v", code)
		}
		if !IsValidShortCode(code) {
			t.Errorf("GenerateShortCode() produced invalid characters: %v", code)
		}
	}
}

func TestShortCodeGenerator_Generate(t *testing.T) {
	gen := NewShortCodeGenerator(0)
	if gen.length != 6 {
		t.Fatalf("default length = %d, want 6", gen.length)
	}

	got, err := gen.Generate("MyCode42")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "MyCode42" {
		t.Errorf("Generate() = %q, want user supplied code unchanged", got)
	}

	got, err = gen.Generate("")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !isGeneratedShortCode(got, 6) {
		t.Errorf("Generate() = %q, want 6 lowercase alphanumeric characters", got)
	}
}
