package extractor

import (
	"sort"
	"strconv"
)

// Registration is one procedure-registration call site.
type Registration struct {
	ID     int
	Symbol string
}

// ScanProcedures collects procedure registrations from comment-stripped
// per-file source text. Matches are taken in textual order; when two call
// sites share an id only the first is kept. The result is sorted ascending
// by id. Zero matches is a valid outcome, not an error.
func ScanProcedures(text string, pats Patterns) []Registration {
	var regs []Registration
	seen := make(map[int]bool)

	for _, m := range pats.Register.FindAllStringSubmatch(text, -1) {
		id, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		regs = append(regs, Registration{ID: id, Symbol: m[1]})
	}

	sort.Slice(regs, func(i, j int) bool { return regs[i].ID < regs[j].ID })
	return regs
}
