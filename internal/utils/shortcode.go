package utils

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/rowjay/link-batch-shortener/internal/constants"
)

const (
	// Generated codes use lowercase letters and digits only.
	generatedChars = "0123456789abcdefghijklmnopqrstuvwxyz"
	base62Chars    = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// GenerateShortCode generates a random lowercase alphanumeric string of the specified length
func GenerateShortCode(length int) (string, error) {
	result := make([]byte, length)
	max := big.NewInt(int64(len(generatedChars)))

	for i := range result {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		result[i] = generatedChars[num.Int64()]
	}

	return string(result), nil
}

// IsValidShortCode validates if a short code contains only base62 characters
func IsValidShortCode(shortCode string) bool {
	if len(shortCode) == 0 {
		return false
	}
	for _, char := range shortCode {
		if !strings.ContainsRune(base62Chars, char) {
			return false
		}
	}
	return true
}

type ShortCodeGenerator struct {
	length int
}

func NewShortCodeGenerator(length int) *ShortCodeGenerator {
	if length <= 0 {
		length = constants.DefaultShortCodeLength
	}
	return &ShortCodeGenerator{length: length}
}

// Generate returns userSupplied unchanged when it is non-empty, otherwise a
// fresh random code. It does not look at existing records.
func (g *ShortCodeGenerator) Generate(userSupplied string) (string, error) {
	if userSupplied != "" {
		return userSupplied, nil
	}
	return GenerateShortCode(g.length)
}
