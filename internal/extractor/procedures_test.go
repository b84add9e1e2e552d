package extractor

import "testing"

func TestScanProcedures(t *testing.T) {
	text := `
REGISTER_USER_PROCEDURE(IssueAsset, 1);
REGISTER_USER_PROCEDURE(&TransferShare, 2);
REGISTER_USER_PROCEDURE(
    Placeholder,
    3
);
`
	got := ScanProcedures(text, DefaultPatterns())
	if len(got) != 3 {
		t.Fatalf("expected 3 registrations, got %#v", got)
	}
	want := []Registration{
		{ID: 1, Symbol: "IssueAsset"},
		{ID: 2, Symbol: "TransferShare"},
		{ID: 3, Symbol: "Placeholder"},
	}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("registration %d = %#v, want %#v", i, got[i], w)
		}
	}
}

func TestScanProceduresDuplicateIDKeepsFirst(t *testing.T) {
	text := `
REGISTER_USER_PROCEDURE(Second, 7);
REGISTER_USER_PROCEDURE(First, 3);
REGISTER_USER_PROCEDURE(Shadowed, 3);
`
	got := ScanProcedures(text, DefaultPatterns())
	if len(got) != 2 {
		t.Fatalf("duplicate ids must collapse: %#v", got)
	}
	if got[0].ID != 3 || got[0].Symbol != "First" {
		t.Fatalf("first occurrence must win and list must be sorted: %#v", got)
	}
	if got[1].ID != 7 || got[1].Symbol != "Second" {
		t.Fatalf("unexpected second entry: %#v", got)
	}
}

func TestScanProceduresNoMatches(t *testing.T) {
	if got := ScanProcedures("int main() { return 0; }", DefaultPatterns()); len(got) != 0 {
		t.Fatalf("zero matches is valid and must yield an empty list, got %#v", got)
	}
}
