package dict

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinLookups(t *testing.T) {
	store := Builtin()
	if store.IsEmpty() {
		t.Fatalf("builtin store is empty")
	}
	entry, ok := store.LookupExtension("FXA")
	if !ok || entry.Name != "Fix accuracy" || entry.Unit != "m" {
		t.Fatalf("LookupExtension(FXA) = %+v, %v", entry, ok)
	}
	// Lookup is case-insensitive.
	if _, ok := store.LookupExtension("enl"); !ok {
		t.Fatalf("LookupExtension(enl) failed")
	}
	hdr, ok := store.LookupHeader("GID")
	if !ok || hdr.Name != "Glider registration" {
		t.Fatalf("LookupHeader(GID) = %+v, %v", hdr, ok)
	}
	if _, ok := store.LookupExtension("QQQ"); ok {
		t.Fatalf("LookupExtension(QQQ) unexpectedly succeeded")
	}
}

func TestFromJSONValidation(t *testing.T) {
	_, err := FromJSON(JSONFile{Extensions: []JSONExtensionEntry{{Mnemonic: "TOOLONG", Name: "x"}}})
	if err == nil {
		t.Fatalf("overlong mnemonic accepted")
	}
	_, err = FromJSON(JSONFile{Extensions: []JSONExtensionEntry{
		{Mnemonic: "FXA", Name: "a"},
		{Mnemonic: "fxa", Name: "b"},
	}})
	if err == nil {
		t.Fatalf("duplicate mnemonic accepted")
	}
	_, err = FromJSON(JSONFile{Headers: []JSONHeaderEntry{{Mnemonic: "G!D", Name: "x"}}})
	if err == nil {
		t.Fatalf("invalid character accepted")
	}
}

func TestMergeOverride(t *testing.T) {
	override, err := FromJSON(JSONFile{Extensions: []JSONExtensionEntry{
		{Mnemonic: "FXA", Name: "Estimated fix accuracy", Unit: "m"},
		{Mnemonic: "XYZ", Name: "Site specific"},
	}})
	if err != nil {
		t.Fatalf("FromJSON returned error: %v", err)
	}
	merged := Builtin().Merge(override)
	entry, ok := merged.LookupExtension("FXA")
	if !ok || entry.Name != "Estimated fix accuracy" {
		t.Fatalf("override lost: %+v", entry)
	}
	if _, ok := merged.LookupExtension("XYZ"); !ok {
		t.Fatalf("new entry lost")
	}
	if _, ok := merged.LookupExtension("TAS"); !ok {
		t.Fatalf("builtin entry lost")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.json")
	payload := `{"extensions":[{"mnemonic":"cur","name":"Current","unit":"A"}],"headers":[{"mnemonic":"ABC","name":"Custom header"}]}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write dictionary: %v", err)
	}
	store, err := EnsureLoaded(path)
	if err != nil {
		t.Fatalf("EnsureLoaded returned error: %v", err)
	}
	entry, ok := store.LookupExtension("CUR")
	if !ok || entry.Unit != "A" {
		t.Fatalf("LookupExtension(CUR) = %+v, %v", entry, ok)
	}

	if _, err := EnsureLoaded(""); err == nil {
		t.Fatalf("empty path accepted")
	}
	if _, err := EnsureLoaded(dir); err == nil {
		t.Fatalf("directory path accepted")
	}
}
