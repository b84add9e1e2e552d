// Package label derives human-readable display labels from contract
// filenames and procedure identifiers.
package label

import (
	"strings"
	"unicode"
)

// minorWords are lowercased when they appear in the interior of a phrase.
var minorWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "but": true, "or": true,
	"nor": true, "so": true, "yet": true, "at": true, "by": true, "for": true,
	"from": true, "in": true, "into": true, "of": true, "on": true, "onto": true,
	"out": true, "over": true, "to": true, "up": true, "with": true, "as": true,
	"per": true, "via": true, "vs": true, "vs.": true, "off": true, "than": true,
	"till": true, "until": true, "past": true, "near": true, "down": true,
	"upon": true, "within": true, "without": true, "through": true, "about": true,
	"before": true, "after": true, "around": true, "behind": true, "below": true,
	"beneath": true, "beside": true, "between": true, "beyond": true,
	"during": true, "inside": true, "outside": true, "under": true,
	"underneath": true, "across": true, "along": true, "amid": true,
	"among": true, "despite": true, "except": true, "including": true,
	"like": true, "since": true, "toward": true, "towards": true,
	"regarding": true,
}

// SplitWords breaks an identifier into words. Underscores win over camel
// case: if the identifier contains any underscore it is split only on
// underscores, otherwise on uppercase-letter boundaries. Each part is then
// reduced to its contiguous alphabetic and numeric runs; anything else is
// discarded.
func SplitWords(name string) []string {
	var parts []string
	if strings.Contains(name, "_") {
		parts = strings.Split(name, "_")
	} else {
		parts = splitCamel(name)
	}

	var words []string
	for _, p := range parts {
		words = append(words, alnumRuns(p)...)
	}
	return words
}

// splitCamel splits before every uppercase letter that is not at the start.
func splitCamel(s string) []string {
	var parts []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			parts = append(parts, s[start:i])
			start = i
		}
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}

// alnumRuns extracts maximal runs of letters and maximal runs of digits.
func alnumRuns(s string) []string {
	var runs []string
	var cur strings.Builder
	curKind := -1 // 0 letters, 1 digits
	flush := func() {
		if cur.Len() > 0 {
			runs = append(runs, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		var kind int
		switch {
		case unicode.IsLetter(r):
			kind = 0
		case unicode.IsDigit(r):
			kind = 1
		default:
			flush()
			curKind = -1
			continue
		}
		if kind != curKind {
			flush()
			curKind = kind
		}
		cur.WriteRune(r)
	}
	flush()
	return runs
}

// TitleCase joins words into a display phrase. Acronyms (all-uppercase
// tokens longer than one rune) are kept verbatim; interior minor words are
// lowercased; every other word gets its first letter forced upper with the
// rest left unchanged.
func TitleCase(words []string) string {
	if len(words) == 0 {
		return ""
	}
	out := make([]string, 0, len(words))
	last := len(words) - 1
	for i, w := range words {
		wl := strings.ToLower(w)
		switch {
		case isAcronym(w):
			out = append(out, w)
		case i != 0 && i != last && minorWords[wl]:
			out = append(out, wl)
		default:
			out = append(out, capitalize(w))
		}
	}
	return strings.Join(out, " ")
}

// FromIdentifier formats a procedure identifier into a display phrase.
func FromIdentifier(ident string) string {
	return TitleCase(SplitWords(ident))
}

// FromFilename builds a label from a filename stem with the Q-prefix rule:
// a stem starting with 'Q' or 'q' keeps the leading Q and forces the next
// character upper. When the whole stem was all-uppercase the remaining tail
// is lowered, so QVAULT becomes QVault while Qswap becomes QSwap. Stems not
// starting with the prefix fall back to the title-cased phrase.
func FromFilename(stem string) string {
	if stem == "" {
		return ""
	}
	r := []rune(stem)
	if unicode.ToLower(r[0]) != 'q' || len(r) == 1 {
		return FromIdentifier(stem)
	}

	rest := r[1:]
	if len(rest) == 1 {
		// Two-character stems keep their casing: Qx stays Qx.
		return "Q" + string(rest)
	}
	first := unicode.ToUpper(rest[0])
	tail := string(rest[1:])

	if isAllUpper(stem) {
		return "Q" + string(first) + strings.ToLower(tail)
	}
	return "Q" + string(first) + tail
}

// isAcronym reports whether w is an all-uppercase token longer than one rune.
func isAcronym(w string) bool {
	if len([]rune(w)) <= 1 {
		return false
	}
	return isAllUpper(w)
}

// isAllUpper reports whether s contains at least one cased rune and no
// lowercase ones.
func isAllUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// capitalize forces the first rune upper and leaves the rest untouched.
func capitalize(w string) string {
	r := []rune(w)
	if len(r) == 0 {
		return w
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
