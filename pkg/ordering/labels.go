package ordering

import (
	"strings"
	"unicode/utf8"
)

const (
	maxLabelLength   = 30
	truncLabelLength = 25
)

// ShortenLabel trims long composite names for axis labels.
//
// Names shorter than 30 characters are returned unchanged. Longer names made
// of "|"-separated fields keep the first and third fields; anything else is
// cut to its first 25 characters.
func ShortenLabel(name string) string {
	if utf8.RuneCountInString(name) < maxLabelLength {
		return name
	}
	if parts := strings.Split(name, "|"); len(parts) >= 3 {
		return parts[0] + "|" + parts[2]
	}
	return string([]rune(name)[:truncLabelLength])
}

// ShortLabels applies [ShortenLabel] to every label.
func ShortLabels(labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = ShortenLabel(l)
	}
	return out
}
