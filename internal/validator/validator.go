package validator

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rowjay/link-batch-shortener/internal/constants"
	"github.com/rowjay/link-batch-shortener/internal/dto"
	serviceErrors "github.com/rowjay/link-batch-shortener/internal/errors"
)

const (
	fieldOriginalURL  = "originalUrl"
	fieldValidityDays = "validityDays"
	fieldShortcode    = "shortcode"
)

// LinkValidator checks submissions before any record is built. It reports
// problems as field errors and never fails on its own.
type LinkValidator struct {
	validate *validator.Validate
}

func NewLinkValidator() *LinkValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("validity_days", isValidityDays)
	_ = v.RegisterValidation("link_url", isLinkURL)

	return &LinkValidator{validate: v}
}

// ValidateSubmission returns the field errors of one submission; index is its
// zero-based position in the batch.
func (v *LinkValidator) ValidateSubmission(index int, s dto.Submission) []serviceErrors.FieldError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []serviceErrors.FieldError{newFieldError(index, fieldOriginalURL, serviceErrors.InvalidURL, err.Error())}
	}

	result := make([]serviceErrors.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		result = append(result, translate(index, fe))
	}
	return result
}

// ValidateBatch validates every submission independently and returns all
// errors in batch order.
func (v *LinkValidator) ValidateBatch(batch []dto.Submission) []serviceErrors.FieldError {
	var result []serviceErrors.FieldError
	for i, s := range batch {
		result = append(result, v.ValidateSubmission(i, s)...)
	}
	return result
}

// DuplicateShortcodeError builds the error used when uniqueness is enforced.
func DuplicateShortcodeError(index int, code string) serviceErrors.FieldError {
	return newFieldError(index, fieldShortcode, serviceErrors.DuplicateShortcode,
		fmt.Sprintf("Shortcode %q is already in use", code))
}

func translate(index int, fe validator.FieldError) serviceErrors.FieldError {
	switch fe.Field() {
	case fieldOriginalURL:
		msg := "Please enter a valid URL"
		switch fe.Tag() {
		case "required":
			msg = "URL is required"
		case "max":
			msg = fmt.Sprintf("URL must be at most %s characters", fe.Param())
		}
		return newFieldError(index, fieldOriginalURL, serviceErrors.InvalidURL, msg)
	case fieldValidityDays:
		raw := strings.TrimSpace(fmt.Sprint(fe.Value()))
		msg := "Must be at least 1 day"
		if raw == "" {
			msg = "Validity period is required"
		} else if exceedsMaxDays(raw) {
			msg = fmt.Sprintf("Must be at most %d days", constants.MaxValidityDays)
		}
		return newFieldError(index, fieldValidityDays, serviceErrors.InvalidValidity, msg)
	default:
		return newFieldError(index, fieldShortcode, serviceErrors.InvalidShortcode, "Shortcode must be alphanumeric")
	}
}

func newFieldError(index int, field string, kind serviceErrors.FieldKind, msg string) serviceErrors.FieldError {
	return serviceErrors.FieldError{
		Index:   index,
		Field:   field,
		Kind:    kind,
		Message: fmt.Sprintf("URL %d: %s", index+1, msg),
	}
}

func isValidityDays(fl validator.FieldLevel) bool {
	days, err := ParseValidityDays(fl.Field().String())
	return err == nil && days >= 1 && days <= constants.MaxValidityDays
}

// exceedsMaxDays reports whether raw is a whole number above the allowed maximum,
// including values too large for an int.
func exceedsMaxDays(raw string) bool {
	days, err := ParseValidityDays(raw)
	if err == nil {
		return days > constants.MaxValidityDays
	}
	var numErr *strconv.NumError
	return errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) && !strings.HasPrefix(raw, "-")
}

// isLinkURL accepts absolute http, https and ftp URLs with a host and no
// whitespace.
func isLinkURL(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if strings.ContainsAny(raw, " \t\r\n") {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "ftp":
	default:
		return false
	}
	return parsed.Hostname() != ""
}

// ParseValidityDays parses a whole number of days, ignoring surrounding spaces.
func ParseValidityDays(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}
