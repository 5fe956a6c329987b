package igc

import (
	"errors"
	"strings"
	"testing"
)

func TestParseARecord(t *testing.T) {
	tests := []struct {
		name string
		line string
		want ARecord
	}{
		{
			name: "current layout",
			line: "ACAMWatFoo",
			want: ARecord{
				Manufacturer: Manufacturer{Vendor: CambridgeAeroInstruments, Code: "CAM"},
				UniqueID:     "Wat",
				IDExtension:  "Foo",
			},
		},
		{
			name: "single letter with numeric serial",
			line: "AC00069",
			want: ARecord{
				Manufacturer: Manufacturer{Vendor: CambridgeAeroInstruments, Code: "C"},
				UniqueID:     "00069",
			},
		},
		{
			name: "triple code with numeric serial",
			line: "AFIL01460FLIGHT:1",
			want: ARecord{
				Manufacturer: Manufacturer{Vendor: Filser, Code: "FIL"},
				UniqueID:     "01460",
				IDExtension:  "FLIGHT:1",
			},
		},
		{
			name: "unknown triple code",
			line: "AXYZABC",
			want: ARecord{
				Manufacturer: Manufacturer{Code: "XYZ"},
				UniqueID:     "ABC",
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := ParseLine(tc.line)
			if err != nil {
				t.Fatalf("ParseLine(%q) returned error: %v", tc.line, err)
			}
			a, ok := rec.(*ARecord)
			if !ok {
				t.Fatalf("ParseLine(%q) = %T, want *ARecord", tc.line, rec)
			}
			if *a != tc.want {
				t.Fatalf("ParseLine(%q) = %+v, want %+v", tc.line, *a, tc.want)
			}
		})
	}

	if _, err := ParseLine("ACAM"); !errors.Is(err, ErrSyntax) {
		t.Fatalf("short A record error = %v, want %v", err, ErrSyntax)
	}
}

func TestParseBRecord(t *testing.T) {
	line := "B0941145152265N00032642WA00115-0116FooExtensionString"
	rec, err := ParseLine(line)
	if err != nil {
		t.Fatalf("ParseLine returned error: %v", err)
	}
	b, ok := rec.(*BRecord)
	if !ok {
		t.Fatalf("ParseLine = %T, want *BRecord", rec)
	}
	if b.Timestamp != (Time{Hours: 9, Minutes: 41, Seconds: 14}) {
		t.Fatalf("Timestamp = %+v", b.Timestamp)
	}
	if got := b.Pos.String(); got != "5152265N00032642W" {
		t.Fatalf("Pos = %q", got)
	}
	if b.FixValid != Valid {
		t.Fatalf("FixValid = %c, want A", byte(b.FixValid))
	}
	if b.PressureAlt != 115 || b.GpsAlt != -116 {
		t.Fatalf("altitudes = %d/%d, want 115/-116", b.PressureAlt, b.GpsAlt)
	}
	if b.ExtensionTail() != "FooExtensionString" {
		t.Fatalf("tail = %q", b.ExtensionTail())
	}

	if _, err := ParseLine("B094114"); !errors.Is(err, ErrSyntax) {
		t.Fatalf("short B record error = %v, want %v", err, ErrSyntax)
	}
	if _, err := ParseLine("B0941145152265N00032642WX00115-0116"); !errors.Is(err, ErrSyntax) {
		t.Fatalf("bad fix validity error = %v, want %v", err, ErrSyntax)
	}
}

func TestParseCDeclaration(t *testing.T) {
	line := "C230718092044000000000204Foo task"
	rec, err := ParseLine(line)
	if err != nil {
		t.Fatalf("ParseLine returned error: %v", err)
	}
	c, ok := rec.(*CDeclaration)
	if !ok {
		t.Fatalf("ParseLine = %T, want *CDeclaration", rec)
	}
	if c.Date != (Date{Day: 23, Month: 7, Year: 18}) {
		t.Fatalf("Date = %+v", c.Date)
	}
	if c.Time != (Time{Hours: 9, Minutes: 20, Seconds: 44}) {
		t.Fatalf("Time = %+v", c.Time)
	}
	if c.FlightDate != (Date{}) {
		t.Fatalf("FlightDate = %+v, want zero", c.FlightDate)
	}
	if c.TaskID != 2 || c.TurnpointCount != 4 {
		t.Fatalf("TaskID/TurnpointCount = %d/%d, want 2/4", c.TaskID, c.TurnpointCount)
	}
	if c.Name != "Foo task" {
		t.Fatalf("Name = %q", c.Name)
	}
}

func TestParseCTurnpoint(t *testing.T) {
	line := "C5156040N00038120WLBZ-Leighton Buzzard NE"
	rec, err := ParseLine(line)
	if err != nil {
		t.Fatalf("ParseLine returned error: %v", err)
	}
	c, ok := rec.(*CTurnpoint)
	if !ok {
		t.Fatalf("ParseLine = %T, want *CTurnpoint", rec)
	}
	if got := c.Pos.String(); got != "5156040N00038120W" {
		t.Fatalf("Pos = %q", got)
	}
	if c.Name != "LBZ-Leighton Buzzard NE" {
		t.Fatalf("Name = %q", c.Name)
	}

	// An 8-character C line cannot be classified at all.
	if _, err := ParseLine("C5156040"); !errors.Is(err, ErrSyntax) {
		t.Fatalf("unclassifiable C record error = %v, want %v", err, ErrSyntax)
	}
}

func TestParseDRecord(t *testing.T) {
	rec, err := ParseLine("D20331")
	if err != nil {
		t.Fatalf("ParseLine returned error: %v", err)
	}
	d, ok := rec.(*DRecord)
	if !ok {
		t.Fatalf("ParseLine = %T, want *DRecord", rec)
	}
	if !d.Qualifier.Differential || !d.Qualifier.Recognized() {
		t.Fatalf("Qualifier = %+v, want differential", d.Qualifier)
	}
	if d.StationID != "0331" {
		t.Fatalf("StationID = %q", d.StationID)
	}

	// Qualifier bytes outside 1/2 survive verbatim rather than failing.
	rec, err = ParseLine("D90331")
	if err != nil {
		t.Fatalf("ParseLine returned error: %v", err)
	}
	d = rec.(*DRecord)
	if d.Qualifier.Recognized() || d.Qualifier.Raw != '9' {
		t.Fatalf("Qualifier = %+v, want unrecognized raw 9", d.Qualifier)
	}

	if _, err := ParseLine("D2033"); !errors.Is(err, ErrSyntax) {
		t.Fatalf("short D record error = %v, want %v", err, ErrSyntax)
	}
	if _, err := ParseLine("D203310"); !errors.Is(err, ErrSyntax) {
		t.Fatalf("long D record error = %v, want %v", err, ErrSyntax)
	}
}

func TestParseERecord(t *testing.T) {
	rec, err := ParseLine("E120515FOOText")
	if err != nil {
		t.Fatalf("ParseLine returned error: %v", err)
	}
	e, ok := rec.(*ERecord)
	if !ok {
		t.Fatalf("ParseLine = %T, want *ERecord", rec)
	}
	if e.Time != (Time{Hours: 12, Minutes: 5, Seconds: 15}) {
		t.Fatalf("Time = %+v", e.Time)
	}
	if e.Mnemonic != "FOO" || e.Text != "Text" {
		t.Fatalf("Mnemonic/Text = %q/%q", e.Mnemonic, e.Text)
	}

	// The free text is optional but the mnemonic is not.
	rec, err = ParseLine("E120515FOO")
	if err != nil {
		t.Fatalf("ParseLine returned error: %v", err)
	}
	if e := rec.(*ERecord); e.Text != "" {
		t.Fatalf("Text = %q, want empty", e.Text)
	}
	if _, err := ParseLine("E120515FO"); !errors.Is(err, ErrSyntax) {
		t.Fatalf("short E record error = %v, want %v", err, ErrSyntax)
	}
}

func TestParseFRecord(t *testing.T) {
	rec, err := ParseLine("F095212AABBCCDDEE")
	if err != nil {
		t.Fatalf("ParseLine returned error: %v", err)
	}
	f, ok := rec.(*FRecord)
	if !ok {
		t.Fatalf("ParseLine = %T, want *FRecord", rec)
	}
	if f.Time != (Time{Hours: 9, Minutes: 52, Seconds: 12}) {
		t.Fatalf("Time = %+v", f.Time)
	}
	if f.Satellites.Len() != 5 {
		t.Fatalf("Len = %d, want 5", f.Satellites.Len())
	}
	if got := f.Satellites.At(2); got != "CC" {
		t.Fatalf("At(2) = %q, want CC", got)
	}
	want := []string{"AA", "BB", "CC", "DD", "EE"}
	ids := f.Satellites.IDs()
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("IDs()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}

	if _, err := ParseLine("F095212"); !errors.Is(err, ErrSyntax) {
		t.Fatalf("empty satellite list error = %v, want %v", err, ErrSyntax)
	}
	if _, err := ParseLine("F095212AAB"); !errors.Is(err, ErrSyntax) {
		t.Fatalf("odd satellite list error = %v, want %v", err, ErrSyntax)
	}
}

func TestParseHRecord(t *testing.T) {
	tests := []struct {
		name string
		line string
		want HRecord
	}{
		{
			name: "glider id",
			line: "HFGIDGLIDERID:D-KOOL",
			want: HRecord{
				Source:          DataSource{Raw: 'F'},
				Mnemonic:        "GID",
				FriendlyName:    "GLIDERID",
				HasFriendlyName: true,
				Data:            "D-KOOL",
			},
		},
		{
			name: "no friendly name",
			line: "HFFXA035",
			want: HRecord{
				Source:   DataSource{Raw: 'F'},
				Mnemonic: "FXA",
				Data:     "035",
			},
		},
		{
			name: "empty but present friendly name",
			line: "HFGID:D-KOOL",
			want: HRecord{
				Source:          DataSource{Raw: 'F'},
				Mnemonic:        "GID",
				HasFriendlyName: true,
				Data:            "D-KOOL",
			},
		},
		{
			name: "colon inside mnemonic region is data",
			line: "H:00 a ",
			want: HRecord{
				Source:   DataSource{Raw: ':'},
				Mnemonic: "00 ",
				Data:     "a ",
			},
		},
		{
			name: "space in tail without colon",
			line: "HAaA :a",
			want: HRecord{
				Source:          DataSource{Raw: 'A'},
				Mnemonic:        "aA ",
				HasFriendlyName: true,
				Data:            "a",
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := ParseLine(tc.line)
			if err != nil {
				t.Fatalf("ParseLine(%q) returned error: %v", tc.line, err)
			}
			h, ok := rec.(*HRecord)
			if !ok {
				t.Fatalf("ParseLine(%q) = %T, want *HRecord", tc.line, rec)
			}
			if *h != tc.want {
				t.Fatalf("ParseLine(%q) = %+v, want %+v", tc.line, *h, tc.want)
			}
		})
	}

	if _, err := ParseLine("HFGID"); !errors.Is(err, ErrSyntax) {
		t.Fatalf("short H record error = %v, want %v", err, ErrSyntax)
	}
}

func TestParseIRecord(t *testing.T) {
	rec, err := ParseLine("I033638FXA3941ENL4246TAS")
	if err != nil {
		t.Fatalf("ParseLine returned error: %v", err)
	}
	i, ok := rec.(*IRecord)
	if !ok {
		t.Fatalf("ParseLine = %T, want *IRecord", rec)
	}
	if i.Set.DeclaredCount != 3 || len(i.Set.Extensions) != 3 {
		t.Fatalf("Set = %+v", i.Set)
	}
	if i.Set.Extensions[1].Mnemonic != "ENL" {
		t.Fatalf("Extensions[1] = %+v", i.Set.Extensions[1])
	}
}

func TestParseKRecord(t *testing.T) {
	rec, err := ParseLine("K095214FooTheBar")
	if err != nil {
		t.Fatalf("ParseLine returned error: %v", err)
	}
	k, ok := rec.(*KRecord)
	if !ok {
		t.Fatalf("ParseLine = %T, want *KRecord", rec)
	}
	if k.Time != (Time{Hours: 9, Minutes: 52, Seconds: 14}) {
		t.Fatalf("Time = %+v", k.Time)
	}
	if k.ExtensionTail() != "FooTheBar" {
		t.Fatalf("tail = %q", k.ExtensionTail())
	}

	// A K record with no data past the timestamp serves no purpose.
	if _, err := ParseLine("K095214"); !errors.Is(err, ErrSyntax) {
		t.Fatalf("dataless K record error = %v, want %v", err, ErrSyntax)
	}
}

func TestParseOpaqueKinds(t *testing.T) {
	rec, err := ParseLine("GREJNGJERJKNJKRE31895478537H43982FJN")
	if err != nil {
		t.Fatalf("ParseLine returned error: %v", err)
	}
	if g, ok := rec.(*GRecord); !ok || g.Data != "REJNGJERJKNJKRE31895478537H43982FJN" {
		t.Fatalf("G record = %#v", rec)
	}

	rec, err = ParseLine("LCU::HPGTYGLIDERTYPE:SZD 55")
	if err != nil {
		t.Fatalf("ParseLine returned error: %v", err)
	}
	if l, ok := rec.(*LRecord); !ok || l.LogText != "CU::HPGTYGLIDERTYPE:SZD 55" {
		t.Fatalf("L record = %#v", rec)
	}

	rec, err = ParseLine("Zsomething else")
	if err != nil {
		t.Fatalf("ParseLine returned error: %v", err)
	}
	if u, ok := rec.(*Unrecognized); !ok || u.Raw != "Zsomething else" {
		t.Fatalf("unrecognized record = %#v", rec)
	}

	if _, err := ParseLine(""); !errors.Is(err, ErrSyntax) {
		t.Fatalf("empty line error = %v, want %v", err, ErrSyntax)
	}
}

// Malformed input of any shape must come back as an error value, never a
// panic, including multi-byte characters truncated mid-sequence.
func TestParseLineNeverPanics(t *testing.T) {
	lines := []string{
		"B",
		"B🌀",
		"B09411451🌀2265N00032642WA00115-0116",
		"C🌀",
		"C2307180🌀",
		"A\xff\xfe\xfd1234",
		"I99",
		"K09521🌀x",
		"F09521🌀AABB",
		"HF🌀",
		"D\xc3",
		"E12051🌀FOO",
		strings.Repeat("\xf0", 40),
	}
	for _, line := range lines {
		kinds := []byte{'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L'}
		if _, err := ParseLine(line); err == nil {
			// Some of these decode as opaque kinds; that is fine as long
			// as nothing panics.
			continue
		}
		for _, k := range kinds {
			ParseLine(string(k) + line)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	lines := []string{
		"ACAMWatFoo",
		"AC00069",
		"AFIL01460FLIGHT:1",
		"AXYZ123Extra",
		"B0941145152265N00032642WA00115-0116FooExtensionString",
		"B1414065016925N00953112WA0103700859",
		"C230718092044000000000204Foo task",
		"C5156040N00038120WLBZ-Leighton Buzzard NE",
		"D20331",
		"D90331",
		"E120515FOOText",
		"E120515FOO",
		"F095212AABBCCDDEE",
		"GREJNGJERJKNJKRE31895478537H43982FJN",
		"HFGIDGLIDERID:D-KOOL",
		"HFFXA035",
		"HFGID:D-KOOL",
		"H:00 a ",
		"HAaA :a",
		"I033638FXA3941ENL4246TAS",
		"J010812HDT",
		"K095214FooTheBar",
		"LCU::HPGTYGLIDERTYPE:SZD 55",
		"Zsomething else",
	}
	for _, line := range lines {
		rec, err := ParseLine(line)
		if err != nil {
			t.Fatalf("ParseLine(%q) returned error: %v", line, err)
		}
		if got := rec.String(); got != line {
			t.Fatalf("round trip of %q produced %q", line, got)
		}
		// Formatting is idempotent: re-parsing the rendered form yields
		// the same bytes again.
		again, err := ParseLine(rec.String())
		if err != nil {
			t.Fatalf("re-parsing %q returned error: %v", rec.String(), err)
		}
		if again.String() != line {
			t.Fatalf("second round trip of %q produced %q", line, again.String())
		}
	}
}
