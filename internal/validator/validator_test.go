package validator

import (
	"testing"

	"github.com/rowjay/link-batch-shortener/internal/dto"
	serviceErrors "github.com/rowjay/link-batch-shortener/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkValidator_ValidateSubmission(t *testing.T) {
	v := NewLinkValidator()

	tests := []struct {
		name      string
		input     dto.Submission
		wantKinds []serviceErrors.FieldKind
	}{
		{
			name:  "valid without shortcode",
			input: dto.Submission{OriginalURL: "https://example.com", ValidityDays: "1"},
		},
		{
			name:  "valid with shortcode",
			input: dto.Submission{OriginalURL: "https://example.com/a?b=c", ValidityDays: "30", Shortcode: "MyCode42"},
		},
		{
			name:  "validity with surrounding spaces",
			input: dto.Submission{OriginalURL: "http://example.com", ValidityDays: " 7 "},
		},
		{
			name:      "relative url",
			input:     dto.Submission{OriginalURL: "not-a-url", ValidityDays: "3"},
			wantKinds: []serviceErrors.FieldKind{serviceErrors.InvalidURL},
		},
		{
			name:      "empty url",
			input:     dto.Submission{OriginalURL: "", ValidityDays: "3"},
			wantKinds: []serviceErrors.FieldKind{serviceErrors.InvalidURL},
		},
		{
			name:      "zero validity",
			input:     dto.Submission{OriginalURL: "https://example.com", ValidityDays: "0"},
			wantKinds: []serviceErrors.FieldKind{serviceErrors.InvalidValidity},
		},
		{
			name:      "negative validity",
			input:     dto.Submission{OriginalURL: "https://example.com", ValidityDays: "-4"},
			wantKinds: []serviceErrors.FieldKind{serviceErrors.InvalidValidity},
		},
		{
			name:      "non-numeric validity",
			input:     dto.Submission{OriginalURL: "https://example.com", ValidityDays: "week"},
			wantKinds: []serviceErrors.FieldKind{serviceErrors.InvalidValidity},
		},
		{
			name:      "fractional validity",
			input:     dto.Submission{OriginalURL: "https://example.com", ValidityDays: "1.5"},
			wantKinds: []serviceErrors.FieldKind{serviceErrors.InvalidValidity},
		},
		{
			name:      "missing validity",
			input:     dto.Submission{OriginalURL: "https://example.com"},
			wantKinds: []serviceErrors.FieldKind{serviceErrors.InvalidValidity},
		},
		{
			name:  "longest allowed validity",
			input: dto.Submission{OriginalURL: "https://example.com", ValidityDays: "36500"},
		},
		{
			name:      "validity past the maximum",
			input:     dto.Submission{OriginalURL: "https://example.com", ValidityDays: "3000000"},
			wantKinds: []serviceErrors.FieldKind{serviceErrors.InvalidValidity},
		},
		{
			name:      "validity overflowing int64",
			input:     dto.Submission{OriginalURL: "https://example.com", ValidityDays: "9223372036854775807"},
			wantKinds: []serviceErrors.FieldKind{serviceErrors.InvalidValidity},
		},
		{
			name:      "validity beyond int64",
			input:     dto.Submission{OriginalURL: "https://example.com", ValidityDays: "99999999999999999999"},
			wantKinds: []serviceErrors.FieldKind{serviceErrors.InvalidValidity},
		},
		{
			name:  "ftp url",
			input: dto.Submission{OriginalURL: "ftp://files.example.com/pub", ValidityDays: "1"},
		},
		{
			name:      "scheme without host",
			input:     dto.Submission{OriginalURL: "http://", ValidityDays: "1"},
			wantKinds: []serviceErrors.FieldKind{serviceErrors.InvalidURL},
		},
		{
			name:      "space in path",
			input:     dto.Submission{OriginalURL: "https://example.com/x y", ValidityDays: "1"},
			wantKinds: []serviceErrors.FieldKind{serviceErrors.InvalidURL},
		},
		{
			name:      "opaque url",
			input:     dto.Submission{OriginalURL: "foo:bar", ValidityDays: "1"},
			wantKinds: []serviceErrors.FieldKind{serviceErrors.InvalidURL},
		},
		{
			name:      "mailto url",
			input:     dto.Submission{OriginalURL: "mailto:a@b.c", ValidityDays: "1"},
			wantKinds: []serviceErrors.FieldKind{serviceErrors.InvalidURL},
		},
		{
			name:      "javascript url",
			input:     dto.Submission{OriginalURL: "javascript:alert(1)", ValidityDays: "1"},
			wantKinds: []serviceErrors.FieldKind{serviceErrors.InvalidURL},
		},
		{
			name:      "shortcode with dash",
			input:     dto.Submission{OriginalURL: "https://example.com", ValidityDays: "2", Shortcode: "my-code"},
			wantKinds: []serviceErrors.FieldKind{serviceErrors.InvalidShortcode},
		},
		{
			name:  "every field invalid",
			input: dto.Submission{OriginalURL: "nope", ValidityDays: "x", Shortcode: "a b"},
			wantKinds: []serviceErrors.FieldKind{
				serviceErrors.InvalidURL,
				serviceErrors.InvalidValidity,
				serviceErrors.InvalidShortcode,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.ValidateSubmission(0, tt.input)

			var kinds []serviceErrors.FieldKind
			for _, fe := range got {
				kinds = append(kinds, fe.Kind)
				assert.Equal(t, 0, fe.Index)
				assert.Contains(t, fe.Message, "URL 1: ")
			}
			assert.Equal(t, tt.wantKinds, kinds)
		})
	}
}

func TestLinkValidator_ValidateBatch(t *testing.T) {
	v := NewLinkValidator()

	batch := []dto.Submission{
		{OriginalURL: "https://example.com", ValidityDays: "1"},
		{OriginalURL: "not-a-url", ValidityDays: "3"},
		{OriginalURL: "https://example.org", ValidityDays: "0"},
	}

	got := v.ValidateBatch(batch)
	require.Len(t, got, 2)

	assert.Equal(t, 1, got[0].Index)
	assert.Equal(t, serviceErrors.InvalidURL, got[0].Kind)
	assert.Equal(t, "originalUrl", got[0].Field)
	assert.Equal(t, "URL 2: Please enter a valid URL", got[0].Message)

	assert.Equal(t, 2, got[1].Index)
	assert.Equal(t, serviceErrors.InvalidValidity, got[1].Kind)
	assert.Equal(t, "validityDays", got[1].Field)
}

func TestLinkValidator_ValidityMessages(t *testing.T) {
	v := NewLinkValidator()

	tests := []struct {
		days string
		want string
	}{
		{"0", "URL 1: Must be at least 1 day"},
		{"", "URL 1: Validity period is required"},
		{"3000000", "URL 1: Must be at most 36500 days"},
		{"9223372036854775807", "URL 1: Must be at most 36500 days"},
		{"99999999999999999999", "URL 1: Must be at most 36500 days"},
	}

	for _, tt := range tests {
		t.Run(tt.days, func(t *testing.T) {
			got := v.ValidateSubmission(0, dto.Submission{OriginalURL: "https://example.com", ValidityDays: dto.DaysValue(tt.days)})
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Message)
		})
	}
}

func TestParseValidityDays(t *testing.T) {
	days, err := ParseValidityDays(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, days)

	_, err = ParseValidityDays("twelve")
	assert.Error(t, err)
}
