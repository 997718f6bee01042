package fs

import "testing"

func TestEntryKindPredicates(t *testing.T) {
	dir := Entry{Path: "/home/user/docs", Name: "docs", Kind: KindDir}
	file := Entry{Path: "/home/user/notes.txt", Name: "notes.txt", Kind: KindFile}
	hidden := Entry{Path: "/home/user/.config", Name: ".config", Kind: KindDir}

	if !dir.IsDir() || file.IsDir() {
		t.Error("Expected only the directory to report IsDir")
	}
	if !hidden.IsHidden() || file.IsHidden() {
		t.Error("Expected only the dot-prefixed entry to report IsHidden")
	}
}

func TestFingerprintStable(t *testing.T) {
	entries := []Entry{
		{Path: "/d/a", Name: "a"},
		{Path: "/d/b", Name: "b"},
	}
	if Fingerprint(entries) != Fingerprint(entries) {
		t.Error("Expected the same listing to fingerprint identically")
	}
}

func TestFingerprintSensitivity(t *testing.T) {
	base := []Entry{
		{Path: "/d/a", Name: "a"},
		{Path: "/d/b", Name: "b"},
	}

	renamed := []Entry{
		{Path: "/d/a", Name: "a"},
		{Path: "/d/c", Name: "c"},
	}
	if Fingerprint(base) == Fingerprint(renamed) {
		t.Error("Expected a renamed path to change the fingerprint")
	}

	reordered := []Entry{base[1], base[0]}
	if Fingerprint(base) == Fingerprint(reordered) {
		t.Error("Expected listing order to affect the fingerprint")
	}

	longer := append(append([]Entry(nil), base...), Entry{Path: "/d/c", Name: "c"})
	if Fingerprint(base) == Fingerprint(longer) {
		t.Error("Expected listing length to affect the fingerprint")
	}

	if Fingerprint(nil) != Fingerprint([]Entry{}) {
		t.Error("Expected nil and empty listings to fingerprint identically")
	}
}
