package document

import (
	"strconv"
	"strings"
)

// SentinelWorkID is returned when no work identifier can be parsed so that
// such books sort after books with a real identifier.
const SentinelWorkID int64 = 999_999_999

// ExtractWorkID parses the digits between "OL" and the following "W" of a
// provider key such as "/works/OL45883W". It never fails.
func ExtractWorkID(key string) int64 {
	_, rest, ok := strings.Cut(key, "OL")
	if !ok {
		return SentinelWorkID
	}
	digits, _, ok := strings.Cut(rest, "W")
	if !ok || digits == "" {
		return SentinelWorkID
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return SentinelWorkID
		}
	}
	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return SentinelWorkID
	}
	return id
}
