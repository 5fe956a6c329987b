package igc

import "testing"

func TestManufacturerFromSingle(t *testing.T) {
	m := ManufacturerFromSingle("C")
	if m.Vendor != CambridgeAeroInstruments || m.Code != "C" || !m.Known() {
		t.Fatalf("ManufacturerFromSingle(\"C\") = %+v", m)
	}
	// The table is case-sensitive; Flytech's approval letter is lowercase.
	m = ManufacturerFromSingle("n")
	if m.Vendor != Flytech || !m.Known() {
		t.Fatalf("ManufacturerFromSingle(\"n\") = %+v", m)
	}
	m = ManufacturerFromSingle("N")
	if m.Vendor != NewTechnologies {
		t.Fatalf("ManufacturerFromSingle(\"N\") = %+v", m)
	}
	m = ManufacturerFromSingle("Q")
	if m.Known() || m.Code != "Q" {
		t.Fatalf("unknown letter = %+v, want fallback carrying %q", m, "Q")
	}
}

func TestManufacturerFromTriple(t *testing.T) {
	m := ManufacturerFromTriple("LXV")
	if m.Vendor != LxNav || m.Code != "LXV" || !m.Known() {
		t.Fatalf("ManufacturerFromTriple(\"LXV\") = %+v", m)
	}
	m = ManufacturerFromTriple("XXX")
	if m.Known() || m.Code != "XXX" {
		t.Fatalf("unknown code = %+v, want fallback carrying %q", m, "XXX")
	}
}

// Every single-letter vendor also appears in the three-letter table.
func TestVendorTablesConsistent(t *testing.T) {
	triples := make(map[Vendor]bool)
	for _, v := range tripleCharVendors {
		triples[v] = true
	}
	for code, v := range singleCharVendors {
		if !triples[v] {
			t.Fatalf("single-letter vendor %q (%c) missing from triple table", v, code)
		}
	}
}
