package extractor

import (
	"path"
	"sort"
	"strconv"
	"strings"
)

// DefaultLookback is how many lines above an include directive are
// searched for the index macro. The upstream layout keeps the macro within
// a couple of lines of the include, but the window is a parameter because
// the heuristic is position-fragile.
const DefaultLookback = 5

// IncludeBasenames returns the sorted set of basenames referenced by
// include directives in comment-stripped text.
func IncludeBasenames(text string, pats Patterns) []string {
	seen := make(map[string]bool)
	for _, m := range pats.Include.FindAllStringSubmatch(text, -1) {
		seen[path.Base(m[1])] = true
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ResolveIndices maps include basenames to their contract indices. For
// each include directive whose basename passes the allow-list (nil allows
// everything), the lines above it are searched upward, nearest first,
// within the lookback window; the first index macro found wins. Basenames
// with no macro in range are dropped.
func ResolveIndices(text string, allow map[string]bool, pats Patterns, lookback int) map[string]int {
	if lookback <= 0 {
		lookback = DefaultLookback
	}

	lines := strings.Split(text, "\n")
	indices := make(map[string]int)

	for i, line := range lines {
		m := pats.Include.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		basename := path.Base(m[1])
		if allow != nil && !allow[basename] {
			continue
		}

		for j := i - 1; j >= 0 && j >= i-lookback; j-- {
			im := pats.IndexMacro.FindStringSubmatch(lines[j])
			if im == nil {
				continue
			}
			idx, err := strconv.Atoi(im[1])
			if err != nil {
				continue
			}
			indices[basename] = idx
			break
		}
	}
	return indices
}
