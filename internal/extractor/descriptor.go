package extractor

import "strings"

// ParseDescriptorTable extracts the ordinal-to-name map from the
// descriptor-table declaration in comment-stripped source text.
//
// The scan finds the declaration token, the first '=' after it and the
// first '{' after that, then walks the brace-balanced body. The body is
// split into top-level '{...}' items; the first item is a reserved
// placeholder and skipped, so item ordinals start at 1. Each item
// contributes the first quoted string found anywhere inside it, verbatim.
// Items without a quoted string are omitted. Unbalanced input fails soft
// with an empty map.
func ParseDescriptorTable(text string, pats Patterns) map[int]string {
	names := make(map[int]string)

	pos := strings.Index(text, pats.DescriptorToken)
	if pos == -1 {
		return names
	}
	eq := strings.Index(text[pos:], "=")
	if eq == -1 {
		return names
	}
	open := strings.Index(text[pos+eq:], "{")
	if open == -1 {
		return names
	}
	start := pos + eq + open

	end, ok := matchBrace(text, start)
	if !ok {
		return names
	}
	body := text[start+1 : end]

	for ordinal, item := range topLevelItems(body) {
		if ordinal == 0 {
			continue
		}
		m := pats.Quoted.FindStringSubmatch(item)
		if m == nil {
			continue
		}
		names[ordinal] = m[1]
	}
	return names
}

// matchBrace returns the offset of the brace closing the one at start.
func matchBrace(text string, start int) (int, bool) {
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// topLevelItems splits a table body into its top-level brace-delimited
// items, ignoring whitespace and separating commas. Depth is only tracked
// from the opening brace of each item; a truncated final item is dropped.
func topLevelItems(body string) []string {
	var items []string
	i := 0
	for i < len(body) {
		if body[i] != '{' {
			i++
			continue
		}
		start := i
		depth := 0
		closed := false
		for i < len(body) && !closed {
			switch body[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					i++
					items = append(items, body[start:i])
					closed = true
					continue
				}
			}
			i++
		}
	}
	return items
}
