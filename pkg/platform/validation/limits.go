package validation

import (
	"fmt"
	"strings"
	"unicode"

	dErrors "datasentinel/pkg/domain-errors"
)

const (
	// MaxBodySize is the maximum allowed request body size (256 KB).
	MaxBodySize = 256 * 1024

	// MaxReferenceLength bounds partner and user identifiers.
	MaxReferenceLength = 128

	// MaxRequestedUsers bounds the users evaluated in a single partner data request.
	MaxRequestedUsers = 500

	// MaxBulkRequests bounds partner requests in one bulk call.
	MaxBulkRequests = 50

	// MaxDaysValid bounds the validity window a partner may request.
	MaxDaysValid = 3650
)

// CheckSliceCount validates that a slice does not exceed the maximum count.
func CheckSliceCount(fieldName string, count, max int) error {
	if count > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("too many %s: max %d allowed", fieldName, max))
	}
	return nil
}

// CheckReference validates a partner or user identifier taken from a path or
// query parameter, where struct tags do not apply.
func CheckReference(fieldName, value string) error {
	if value == "" {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s is required", fieldName))
	}
	if len(value) > MaxReferenceLength || strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be a non-empty identifier without spaces", fieldName))
	}
	return nil
}
