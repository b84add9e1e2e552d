package extractor

import "testing"

func TestParseDescriptorTable(t *testing.T) {
	text := `
struct ContractDescription contractDescriptions[] = {
    {"", 0, 0, 0},
    {"QX", 66, 10000, sizeof(QX)},
    {"QUOTTERY", 72, 10000, {sizeof(QUOTTERY), 0}},
    {"RANDOM", 88, 10000, sizeof(RANDOM)},
};
`
	names := ParseDescriptorTable(text, DefaultPatterns())
	if len(names) != 3 {
		t.Fatalf("expected 3 names, got %d: %#v", len(names), names)
	}
	if names[1] != "QX" || names[2] != "QUOTTERY" || names[3] != "RANDOM" {
		t.Fatalf("unexpected names: %#v", names)
	}
	if _, ok := names[0]; ok {
		t.Fatalf("ordinal 0 is reserved and must be skipped")
	}
}

func TestParseDescriptorTableItemWithoutQuote(t *testing.T) {
	text := `contractDescriptions[] = {
    {0},
    {1, 2},
    {"KEPT", 3},
};`
	names := ParseDescriptorTable(text, DefaultPatterns())
	if len(names) != 1 {
		t.Fatalf("expected 1 name, got %#v", names)
	}
	if names[2] != "KEPT" {
		t.Fatalf("item without a quoted string must be omitted, others keyed by ordinal: %#v", names)
	}
}

func TestParseDescriptorTableSoftFailures(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"missing token", "int x = {1};"},
		{"missing equals", "contractDescriptions"},
		{"missing brace", "contractDescriptions = 5;"},
		{"unbalanced", "contractDescriptions = { {\"A\"}, { };"},
	}
	for _, tc := range cases {
		if names := ParseDescriptorTable(tc.text, DefaultPatterns()); len(names) != 0 {
			t.Fatalf("%s: expected empty map, got %#v", tc.name, names)
		}
	}
}

func TestParseDescriptorTableNestedBraces(t *testing.T) {
	text := `contractDescriptions = {
    {{0}},
    {{1}, "Nested"},
};`
	names := ParseDescriptorTable(text, DefaultPatterns())
	if names[1] != "Nested" {
		t.Fatalf("nested braces must stay inside their item: %#v", names)
	}
}
