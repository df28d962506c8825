package errors

import (
	"math"
)

// ValidateFinite rejects NaN and infinite configuration values.
func ValidateFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Config("%s must be a finite number, got %v", field, v)
	}
	return nil
}

// ValidatePositive rejects values that are not strictly greater than zero.
func ValidatePositive(field string, v float64) error {
	if err := ValidateFinite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return Config("%s must be > 0, got %v", field, v)
	}
	return nil
}

// ValidateNonNegative rejects negative values.
//
// Margins and widths are allowed to be zero (the element simply takes no
// room) but never negative, since negative room would push cells outside
// the canvas.
func ValidateNonNegative(field string, v float64) error {
	if err := ValidateFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return Config("%s must be >= 0, got %v", field, v)
	}
	return nil
}

// ValidateOneOf rejects a string that is not in the allowed set.
func ValidateOneOf(field, v string, allowed ...string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return Config("%s must be one of %v, got %q", field, allowed, v)
}
