package meta

import "strings"

// AttributeName derives the attribute name of a property by putting a hyphen
// in front of every ASCII uppercase letter and lower-casing the result:
//
//	label        → label
//	initialCount → initial-count
//	isHTML       → is-h-t-m-l
//
// The mapping is part of the markup contract and must stay stable.
func AttributeName(property string) string {
	var sb strings.Builder
	sb.Grow(len(property) + 4)
	for i := 0; i < len(property); i++ {
		c := property[i]
		if c >= 'A' && c <= 'Z' {
			sb.WriteByte('-')
			sb.WriteByte(c + ('a' - 'A'))
			continue
		}
		sb.WriteByte(c)
	}
	return strings.ToLower(sb.String())
}
