package config

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// autoKeyword is the configuration spelling of an automatic field.
const autoKeyword = "auto"

// Size is a numeric configuration field that is either fixed by the caller or
// left automatic, in which case it is derived from the cell size by
// [Config.ResolveAuto]. The zero Size is Fixed(0).
type Size struct {
	value float64
	auto  bool
}

// Fixed returns a Size holding v.
func Fixed(v float64) Size { return Size{value: v} }

// Auto returns an automatic Size.
func Auto() Size { return Size{auto: true} }

// IsAuto reports whether the size still awaits resolution.
func (s Size) IsAuto() bool { return s.auto }

// Value returns the fixed value. Automatic sizes report 0.
func (s Size) Value() float64 {
	if s.auto {
		return 0
	}
	return s.value
}

// resolve replaces an automatic size with max(floor, v).
func (s *Size) resolve(v, floor float64) {
	if s.auto {
		*s = Fixed(max(floor, v))
	}
}

// String implements fmt.Stringer.
func (s Size) String() string {
	if s.auto {
		return autoKeyword
	}
	return strconv.FormatFloat(s.value, 'f', -1, 64)
}

// MarshalJSON encodes automatic sizes as "auto" and fixed sizes as numbers.
func (s Size) MarshalJSON() ([]byte, error) {
	if s.auto {
		return json.Marshal(autoKeyword)
	}
	return json.Marshal(s.value)
}

// MarshalTOML encodes automatic sizes as "auto" and fixed sizes as numbers.
func (s Size) MarshalTOML() ([]byte, error) {
	if s.auto {
		return []byte(strconv.Quote(autoKeyword)), nil
	}
	return []byte(strconv.FormatFloat(s.value, 'f', -1, 64)), nil
}

// UnmarshalJSON accepts a number or the string "auto".
func (s *Size) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return s.set(raw)
}

// UnmarshalTOML accepts an integer, a float or the string "auto".
func (s *Size) UnmarshalTOML(v any) error {
	return s.set(v)
}

func (s *Size) set(raw any) error {
	switch v := raw.(type) {
	case string:
		if v != autoKeyword {
			return fmt.Errorf("size must be a number or %q, got %q", autoKeyword, v)
		}
		*s = Auto()
	case float64:
		*s = Fixed(v)
	case int64:
		*s = Fixed(float64(v))
	case int:
		*s = Fixed(float64(v))
	default:
		return fmt.Errorf("size must be a number or %q, got %T", autoKeyword, raw)
	}
	return nil
}
