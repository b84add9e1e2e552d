package registry

// Merge folds freshly extracted contracts into the persisted collection,
// keyed by filename. Unseen filenames are appended with normalized
// procedures. For existing entries the authoritative fields (name,
// contract index) are overwritten, the address only when the fresh value
// is non-empty, and the label only when the persisted one is empty, so a
// manual label always survives re-extraction. Procedure lists are unioned
// by id with the persisted name winning, then re-sorted.
//
// Contracts absent from the fresh run are retained verbatim; the merge
// never deletes.
func Merge(existing, fresh []*Contract) []*Contract {
	byFilename := make(map[string]*Contract, len(existing))
	for _, c := range existing {
		if c.Filename != "" {
			byFilename[c.Filename] = c
		}
	}

	for _, f := range fresh {
		if f.Filename == "" {
			continue
		}

		ex, ok := byFilename[f.Filename]
		if !ok {
			f.Procedures = NormalizeProcedures(f.Procedures)
			existing = append(existing, f)
			byFilename[f.Filename] = f
			continue
		}

		ex.Name = f.Name
		ex.ContractIndex = f.ContractIndex
		if f.Address != "" {
			ex.Address = f.Address
		}
		if ex.Label == "" {
			ex.Label = f.Label
		}

		merged := NormalizeProcedures(ex.Procedures)
		have := make(map[int]bool, len(merged))
		for _, p := range merged {
			have[p.ID] = true
		}
		for _, p := range NormalizeProcedures(f.Procedures) {
			if !have[p.ID] {
				merged = append(merged, p)
				have[p.ID] = true
			}
		}
		ex.Procedures = NormalizeProcedures(merged)
	}

	return existing
}
