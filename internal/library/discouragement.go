package library

import "strings"

// modifDiscTag and usageDiscTag are the exact comment substrings
// original_source/library.cpp scans for when deciding whether an
// assertion's proof may be modified or the assertion newly used, mirrored
// here as a literal string match against the ModifDisc/UsageDisc flags.
const (
	modifDiscTag = "(Proof modification is discouraged.)"
	usageDiscTag = "(New usage is discouraged.)"
)

// ParseDiscouragement scans a free-text comment for the two discouragement
// tags and returns whether each was found.
func ParseDiscouragement(comment string) (modifDisc, usageDisc bool) {
	return strings.Contains(comment, modifDiscTag), strings.Contains(comment, usageDiscTag)
}
