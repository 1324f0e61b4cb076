package numberutils

import (
	"strconv"
	"strings"
)

// IsInt64 checks if the given string can be converted to a valid int64.
// It returns true if the string can be converted to an int64, false otherwise.
func IsInt64(str string) bool {
	_, err := ToInt64WithError(str)
	return err == nil
}

// ToInt64WithDefault converts the given string to an int64.
// If the string cannot be converted, it returns the provided default value.
func ToInt64WithDefault(s string, defaultVal int64) int64 {
	if i, err := ToInt64WithError(s); err == nil {
		return i
	}
	return defaultVal
}

// ToInt64WithError converts the given string, ignoring surrounding blanks, to an int64.
// Integral decimals such as "70.0" are accepted.
func ToInt64WithError(str string) (int64, error) {
	trimmed := strings.TrimSpace(str)
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return i, nil
	}
	f, err := ToFloat64WithError(trimmed)
	if err != nil {
		return 0, err
	}
	if f != float64(int64(f)) {
		return 0, &strconv.NumError{Func: "ParseInt", Num: str, Err: strconv.ErrSyntax}
	}
	return int64(f), nil
}
