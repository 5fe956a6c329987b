package igc

import (
	"errors"
	"testing"
)

func TestParseExtensionRange(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		want    ExtensionRange
		wantErr error
	}{
		{name: "simple", field: "0812", want: ExtensionRange{Start: 8, End: 12}},
		{name: "degenerate single column", field: "1010", want: ExtensionRange{Start: 10, End: 10}},
		{name: "inverted", field: "1208", wantErr: ErrBadExtension},
		{name: "non-digits", field: "08a2", wantErr: ErrSyntax},
		{name: "too short", field: "081", wantErr: ErrSyntax},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseExtensionRange(tc.field)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("ParseExtensionRange(%q) error = %v, want %v", tc.field, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseExtensionRange(%q) returned error: %v", tc.field, err)
			}
			if got != tc.want {
				t.Fatalf("ParseExtensionRange(%q) = %+v, want %+v", tc.field, got, tc.want)
			}
		})
	}
}

func TestParseExtension(t *testing.T) {
	ext, err := ParseExtension("3638FXA")
	if err != nil {
		t.Fatalf("ParseExtension returned error: %v", err)
	}
	want := Extension{Range: ExtensionRange{Start: 36, End: 38}, Mnemonic: "FXA"}
	if ext != want {
		t.Fatalf("ParseExtension = %+v, want %+v", ext, want)
	}
	if got := ext.String(); got != "3638FXA" {
		t.Fatalf("String() = %q, want original text", got)
	}

	if _, err := ParseExtension("3638FX"); !errors.Is(err, ErrSyntax) {
		t.Fatalf("short extension error = %v, want %v", err, ErrSyntax)
	}
}

func TestParseExtensionSet(t *testing.T) {
	set, err := parseExtensionSet("033638FXA3941ENL4246TAS")
	if err != nil {
		t.Fatalf("parseExtensionSet returned error: %v", err)
	}
	if set.DeclaredCount != 3 {
		t.Fatalf("DeclaredCount = %d, want 3", set.DeclaredCount)
	}
	want := []Extension{
		{Range: ExtensionRange{Start: 36, End: 38}, Mnemonic: "FXA"},
		{Range: ExtensionRange{Start: 39, End: 41}, Mnemonic: "ENL"},
		{Range: ExtensionRange{Start: 42, End: 46}, Mnemonic: "TAS"},
	}
	if len(set.Extensions) != len(want) {
		t.Fatalf("got %d extensions, want %d", len(set.Extensions), len(want))
	}
	for i, ext := range set.Extensions {
		if ext != want[i] {
			t.Fatalf("extension %d = %+v, want %+v", i, ext, want[i])
		}
	}
	if got := set.String(); got != "033638FXA3941ENL4246TAS" {
		t.Fatalf("String() = %q, want original text", got)
	}
}

func TestParseExtensionSetErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "count exceeds definitions", body: "023638FXA", wantErr: ErrSyntax},
		{name: "count below definitions", body: "013638FXA3941ENL", wantErr: ErrSyntax},
		{name: "count not numeric", body: "ab3638FXA", wantErr: ErrSyntax},
		{name: "missing count", body: "0", wantErr: ErrSyntax},
		{name: "inverted range inside set", body: "013836FXA", wantErr: ErrBadExtension},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseExtensionSet(tc.body); !errors.Is(err, tc.wantErr) {
				t.Fatalf("parseExtensionSet(%q) error = %v, want %v", tc.body, err, tc.wantErr)
			}
		})
	}
}

func TestGetExtensionKRecord(t *testing.T) {
	rec, err := ParseLine("K095214FooTheBar")
	if err != nil {
		t.Fatalf("ParseLine returned error: %v", err)
	}
	k, ok := rec.(*KRecord)
	if !ok {
		t.Fatalf("record is %T, want *KRecord", rec)
	}

	tests := []struct {
		rng  ExtensionRange
		want string
	}{
		{ExtensionRange{Start: 8, End: 10}, "Foo"},
		{ExtensionRange{Start: 11, End: 13}, "The"},
		{ExtensionRange{Start: 14, End: 16}, "Bar"},
		{ExtensionRange{Start: 8, End: 16}, "FooTheBar"},
	}
	for _, tc := range tests {
		got, err := GetExtension(k, tc.rng)
		if err != nil {
			t.Fatalf("GetExtension(%+v) returned error: %v", tc.rng, err)
		}
		if got != tc.want {
			t.Fatalf("GetExtension(%+v) = %q, want %q", tc.rng, got, tc.want)
		}
	}
}

func TestGetExtensionInvertedRange(t *testing.T) {
	rec, err := ParseLine("K095214FooTheBar")
	if err != nil {
		t.Fatalf("ParseLine returned error: %v", err)
	}
	k := rec.(*KRecord)

	// An inverted range cannot come out of ParseExtensionRange, but nothing
	// stops a caller from building one; it must fail, never slice.
	inverted := []ExtensionRange{
		{Start: 10, End: 5},
		{Start: 16, End: 8},
		{Start: 9, End: 8},
	}
	for _, rng := range inverted {
		if _, err := GetExtension(k, rng); !errors.Is(err, ErrBadExtension) {
			t.Fatalf("GetExtension(%+v) error = %v, want %v", rng, err, ErrBadExtension)
		}
	}
}

func TestGetExtensionBRecord(t *testing.T) {
	rec, err := ParseLine("B0941145152265N00032642WA00115-0116FooExtensionString")
	if err != nil {
		t.Fatalf("ParseLine returned error: %v", err)
	}
	b, ok := rec.(*BRecord)
	if !ok {
		t.Fatalf("record is %T, want *BRecord", rec)
	}

	got, err := GetExtension(b, ExtensionRange{Start: 36, End: 38})
	if err != nil {
		t.Fatalf("GetExtension returned error: %v", err)
	}
	if got != "Foo" {
		t.Fatalf("GetExtension = %q, want %q", got, "Foo")
	}

	// Columns up to 35 belong to the mandatory fields and are never
	// addressable through an extension.
	if _, err := GetExtension(b, ExtensionRange{Start: 35, End: 38}); !errors.Is(err, ErrBadExtension) {
		t.Fatalf("overlapping range error = %v, want %v", err, ErrBadExtension)
	}
	if _, err := GetExtension(b, ExtensionRange{Start: 1, End: 3}); !errors.Is(err, ErrBadExtension) {
		t.Fatalf("mandatory-field range error = %v, want %v", err, ErrBadExtension)
	}

	// The tail is 18 characters, so columns past 53 do not exist.
	if _, err := GetExtension(b, ExtensionRange{Start: 54, End: 56}); !errors.Is(err, ErrMissingExtension) {
		t.Fatalf("past-end range error = %v, want %v", err, ErrMissingExtension)
	}
	if _, err := GetExtension(b, ExtensionRange{Start: 50, End: 60}); !errors.Is(err, ErrMissingExtension) {
		t.Fatalf("straddling range error = %v, want %v", err, ErrMissingExtension)
	}
}
