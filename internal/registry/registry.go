// Package registry holds the persisted contract collection: the
// descriptor model, document load/save, and the merge that folds a fresh
// extraction into previously persisted data without discarding manual
// edits.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// Procedure is one callable registered by a contract.
type Procedure struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProcedureList accepts both the canonical array form and the legacy
// object form ({"2": "Foo"}) when decoding persisted data. It always
// marshals as an array.
type ProcedureList []Procedure

func (p *ProcedureList) UnmarshalJSON(data []byte) error {
	var list []Procedure
	if err := json.Unmarshal(data, &list); err == nil {
		*p = list
		return nil
	}

	var byID map[string]string
	if err := json.Unmarshal(data, &byID); err != nil {
		return fmt.Errorf("procedures are neither a list nor an id map: %w", err)
	}
	list = make([]Procedure, 0, len(byID))
	for k, name := range byID {
		id, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		list = append(list, Procedure{ID: id, Name: name})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	*p = list
	return nil
}

// Contract is one row of the registry. Filename is the stable merge key;
// Label is user-facing and preserved across merges once set.
type Contract struct {
	Filename      string        `json:"filename"`
	Name          string        `json:"name"`
	Label         string        `json:"label"`
	SourceURL     string        `json:"source_url"`
	ContractIndex *int          `json:"contract_index,omitempty"`
	Address       string        `json:"address,omitempty"`
	Procedures    ProcedureList `json:"procedures"`
}

// Document is the persisted top-level structure. Top-level fields other
// than the contract list are carried through a rewrite untouched.
type Document struct {
	Contracts []*Contract

	extra map[string]json.RawMessage
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return err
	}
	if raw, ok := top["smart_contracts"]; ok {
		if err := json.Unmarshal(raw, &d.Contracts); err != nil {
			return fmt.Errorf("parsing smart_contracts: %w", err)
		}
		delete(top, "smart_contracts")
	}
	d.extra = top
	return nil
}

func (d *Document) MarshalJSON() ([]byte, error) {
	top := make(map[string]json.RawMessage, len(d.extra)+1)
	for k, v := range d.extra {
		top[k] = v
	}
	contracts := d.Contracts
	if contracts == nil {
		contracts = []*Contract{}
	}
	raw, err := json.Marshal(contracts)
	if err != nil {
		return nil, err
	}
	top["smart_contracts"] = raw
	return json.Marshal(top)
}

// Load reads the persisted document. A missing file yields an empty
// document with no error (a first-ever run is normal); malformed content
// also yields an empty document but reports the parse error so the caller
// can warn.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Document{}, nil
		}
		return &Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return &Document{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &doc, nil
}

// Save writes the document pretty-printed, via a temp file and rename so a
// crash never leaves a truncated registry behind.
func Save(path string, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling registry: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("registry dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*.json")
	if err != nil {
		return fmt.Errorf("temp registry file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing registry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("closing registry file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("renaming registry file: %w", err)
	}
	return nil
}

// NormalizeProcedures dedupes by id (first occurrence wins) and sorts
// ascending.
func NormalizeProcedures(procs ProcedureList) ProcedureList {
	seen := make(map[int]bool, len(procs))
	out := make(ProcedureList, 0, len(procs))
	for _, p := range procs {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SortContracts orders the collection ascending by contract index.
// Contracts without an index sort after every contract that has one.
func SortContracts(contracts []*Contract) {
	sort.SliceStable(contracts, func(i, j int) bool {
		return sortKey(contracts[i]) < sortKey(contracts[j])
	})
}

func sortKey(c *Contract) int {
	if c.ContractIndex == nil {
		return int(^uint(0) >> 1) // missing index sorts last
	}
	return *c.ContractIndex
}
