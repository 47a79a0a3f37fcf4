package util

import (
	"fmt"
	"strings"
)

const excerptLength = 30

// Excerpt cuts the given text down
// to a log-friendly one-liner
func Excerpt(text string, length ...int) string {
	size := excerptLength
	if len(length) > 0 {
		size = length[0]
	}

	text = strings.ReplaceAll(text, "\n", " ")
	if len(text) <= size {
		return text
	}
	return text[:size] + "..."
}

func HumanizeBytes(size int) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%dB", size)
	}

	div, exp := unit, 0
	for measure := size / unit; measure >= unit; measure /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(size)/float64(div), "KMGTPE"[exp])
}
