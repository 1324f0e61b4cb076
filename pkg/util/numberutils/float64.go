package numberutils

import (
	"math"
	"strconv"
	"strings"
)

// IsFloat64 checks if the given string can be converted to a finite float64.
func IsFloat64(str string) bool {
	_, err := ToFloat64WithError(str)
	return err == nil
}

// ToFloat64WithError converts the given string, ignoring surrounding blanks, to a float64.
// NaN and infinities are rejected so callers always get a usable measurement.
func ToFloat64WithError(str string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &strconv.NumError{Func: "ParseFloat", Num: str, Err: strconv.ErrRange}
	}
	return value, nil
}

// ToFloat64WithDefault converts the given string to a float64.
// If the string cannot be converted, it returns the provided default value.
func ToFloat64WithDefault(s string, defaultVal float64) float64 {
	if f, err := ToFloat64WithError(s); err == nil {
		return f
	}
	return defaultVal
}

// RoundToInt64 converts a float64 to the nearest int64.
func RoundToInt64(value float64) int64 {
	return int64(math.Round(value))
}
