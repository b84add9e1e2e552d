package validator

import (
	"testing"

	"github.com/qubicscan/contract-registry/internal/registry"
)

func TestValidDocumentPasses(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("creating validator: %v", err)
	}

	idx := 1
	doc := &registry.Document{Contracts: []*registry.Contract{{
		Filename:      "Qx.h",
		Name:          "QX",
		Label:         "Qx",
		SourceURL:     "https://example.com/Qx.h",
		ContractIndex: &idx,
		Address:       "ADDR",
		Procedures:    registry.ProcedureList{{ID: 1, Name: "Foo"}},
	}}}

	if err := v.ValidateDocument(doc); err != nil {
		t.Fatalf("valid document rejected: %v", err)
	}
}

func TestEmptyDocumentPasses(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("creating validator: %v", err)
	}
	if err := v.ValidateDocument(&registry.Document{}); err != nil {
		t.Fatalf("empty document rejected: %v", err)
	}
}

func TestInvalidDocumentFails(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("creating validator: %v", err)
	}

	cases := []struct {
		name string
		json string
	}{
		{"wrong id type", `{"smart_contracts": [{"filename": "A.h", "name": "", "label": "", "source_url": "", "procedures": [{"id": "nope", "name": "x"}]}]}`},
		{"empty filename", `{"smart_contracts": [{"filename": "", "name": "", "label": "", "source_url": "", "procedures": []}]}`},
		{"negative index", `{"smart_contracts": [{"filename": "A.h", "name": "", "label": "", "source_url": "", "contract_index": -1, "procedures": []}]}`},
	}
	for _, tc := range cases {
		if err := v.ValidateJSON([]byte(tc.json)); err == nil {
			t.Fatalf("%s: expected validation failure", tc.name)
		}
	}
}
