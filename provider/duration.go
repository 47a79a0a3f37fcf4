package provider

import (
	"strconv"
	"strings"
)

// parseDuration converts a clock-formatted duration
// ("3:21", "1:02:45") to seconds, returning 0 for
// anything it cannot make sense of
func parseDuration(duration string) int {
	if duration == "" {
		return 0
	}

	var (
		seconds    int
		multiplier = 1
		chunks     = strings.Split(duration, ":")
	)
	for index := len(chunks) - 1; index >= 0; index-- {
		value, err := strconv.Atoi(strings.TrimSpace(chunks[index]))
		if err != nil {
			return 0
		}
		seconds += value * multiplier
		multiplier *= 60
	}
	return seconds
}
