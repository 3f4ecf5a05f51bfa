package validation

import (
	"regexp"
	"strings"
)

// Chat platform snowflake IDs are 17-20 digit decimals.
var snowflakeRe = regexp.MustCompile(`^[0-9]{17,20}$`)

func NormalizeID(id string) string {
	return strings.TrimSpace(id)
}

func ValidateSnowflake(id string) bool {
	return snowflakeRe.MatchString(NormalizeID(id))
}

// ValidateMultiplier enforces the boost write-time bounds.
func ValidateMultiplier(multiplier int) bool {
	return multiplier >= 1 && multiplier <= 10
}

// ValidateAmountRange checks a caller-supplied claim range: both bounds
// positive and ordered.
func ValidateAmountRange(min, max int64) bool {
	return min > 0 && max >= min
}

// ValidateDuration rejects negative boost durations.
func ValidateDuration(durationSeconds *int64) bool {
	return durationSeconds == nil || *durationSeconds >= 0
}
