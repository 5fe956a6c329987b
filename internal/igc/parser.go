package igc

import (
	"fmt"
	"math"
	"strings"
)

// ParseLine decodes a single line of an IGC trace into its typed record.
//
// The first byte selects the record kind; a C-led line additionally needs
// its 9th byte inspected, because declaration and turnpoint layouts overlap
// visually at that position. Lines led by an unknown byte decode to
// *Unrecognized rather than failing: the format reserves room for kinds
// this package does not know.
//
// The returned record borrows substrings of line and must not outlive it.
func ParseLine(line string) (Record, error) {
	if len(line) == 0 {
		return nil, fmt.Errorf("%w: empty line", ErrSyntax)
	}
	switch line[0] {
	case 'A':
		return parseARecord(line)
	case 'B':
		return parseBRecord(line)
	case 'C':
		// In a turnpoint record the 9th character is the N/S of the
		// latitude; in a declaration it is a digit of the declaration
		// time.
		if len(line) < 9 {
			return nil, fmt.Errorf("%w: C record too short to classify", ErrSyntax)
		}
		if line[8] == 'N' || line[8] == 'S' {
			return parseCTurnpoint(line)
		}
		return parseCDeclaration(line)
	case 'D':
		return parseDRecord(line)
	case 'E':
		return parseERecord(line)
	case 'F':
		return parseFRecord(line)
	case 'G':
		return &GRecord{Data: line[1:]}, nil
	case 'H':
		return parseHRecord(line)
	case 'I':
		set, err := parseExtensionSet(line[1:])
		if err != nil {
			return nil, err
		}
		return &IRecord{Set: set}, nil
	case 'J':
		set, err := parseExtensionSet(line[1:])
		if err != nil {
			return nil, err
		}
		return &JRecord{Set: set}, nil
	case 'K':
		return parseKRecord(line)
	case 'L':
		return &LRecord{LogText: line[1:]}, nil
	default:
		return &Unrecognized{Raw: line}, nil
	}
}

// allDigits reports whether s is non-empty and entirely decimal digits.
func allDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseARecord decodes the recorder identification record.
//
// Historical equipment used at least three incompatible layouts behind the
// same leading letter. The shape of the first few columns picks one, in
// strict priority order:
//
//  1. single approval letter + 5-digit serial (oldest units)
//  2. three-letter code + 5-digit serial
//  3. three-letter code + 3-character ID (current layout, the default)
func parseARecord(line string) (*ARecord, error) {
	if len(line) < 7 {
		return nil, fmt.Errorf("%w: A record shorter than 7 characters", ErrSyntax)
	}
	head := line
	if len(head) > 9 {
		head = head[:9]
	}
	if !isASCII(head) {
		return nil, ErrNonASCII
	}

	if allDigits(line[2:7]) {
		return &ARecord{
			Manufacturer: ManufacturerFromSingle(line[1:2]),
			UniqueID:     line[2:7],
			IDExtension:  line[7:],
		}, nil
	}
	if len(line) >= 9 && allDigits(line[4:9]) {
		return &ARecord{
			Manufacturer: ManufacturerFromTriple(line[1:4]),
			UniqueID:     line[4:9],
			IDExtension:  line[9:],
		}, nil
	}
	return &ARecord{
		Manufacturer: ManufacturerFromTriple(line[1:4]),
		UniqueID:     line[4:7],
		IDExtension:  line[7:],
	}, nil
}

// parseAltitude decodes a 5-character signed altitude column.
func parseAltitude(field string) (int16, error) {
	n, err := parseSigned(field)
	if err != nil {
		return 0, err
	}
	if n < math.MinInt16 || n > math.MaxInt16 {
		return 0, fmt.Errorf("%w: altitude %d overflows", ErrSyntax, n)
	}
	return int16(n), nil
}

func parseBRecord(line string) (*BRecord, error) {
	if len(line) < bRecordBaseLength {
		return nil, fmt.Errorf("%w: B record shorter than %d characters", ErrSyntax, bRecordBaseLength)
	}
	if !isASCII(line) {
		return nil, ErrNonASCII
	}

	timestamp, err := ParseTime(line[1:7])
	if err != nil {
		return nil, err
	}
	pos, err := ParsePosition(line[7:24])
	if err != nil {
		return nil, err
	}
	var fixValid FixValid
	switch line[24] {
	case 'A':
		fixValid = Valid
	case 'V':
		fixValid = NavWarning
	default:
		return nil, fmt.Errorf("%w: unrecognized fix validity %q", ErrSyntax, line[24:25])
	}
	pressureAlt, err := parseAltitude(line[25:30])
	if err != nil {
		return nil, err
	}
	gpsAlt, err := parseAltitude(line[30:35])
	if err != nil {
		return nil, err
	}

	return &BRecord{
		Timestamp:     timestamp,
		Pos:           pos,
		FixValid:      fixValid,
		PressureAlt:   pressureAlt,
		GpsAlt:        gpsAlt,
		extensionTail: line[35:],
	}, nil
}

func parseCDeclaration(line string) (*CDeclaration, error) {
	if len(line) < 25 {
		return nil, fmt.Errorf("%w: C declaration shorter than 25 characters", ErrSyntax)
	}
	if !isASCII(line[:25]) {
		return nil, ErrNonASCII
	}

	date, err := ParseDate(line[1:7])
	if err != nil {
		return nil, err
	}
	time, err := ParseTime(line[7:13])
	if err != nil {
		return nil, err
	}
	flightDate, err := ParseDate(line[13:19])
	if err != nil {
		return nil, err
	}
	taskID, err := parseDigits(line[19:23])
	if err != nil {
		return nil, err
	}
	turnpointCount, err := parseDigits(line[23:25])
	if err != nil {
		return nil, err
	}

	return &CDeclaration{
		Date:           date,
		Time:           time,
		FlightDate:     flightDate,
		TaskID:         uint16(taskID),
		TurnpointCount: uint8(turnpointCount),
		Name:           line[25:],
	}, nil
}

func parseCTurnpoint(line string) (*CTurnpoint, error) {
	if len(line) < 18 {
		return nil, fmt.Errorf("%w: C turnpoint shorter than 18 characters", ErrSyntax)
	}
	pos, err := ParsePosition(line[1:18])
	if err != nil {
		return nil, err
	}
	return &CTurnpoint{Pos: pos, Name: line[18:]}, nil
}

func parseDRecord(line string) (*DRecord, error) {
	if len(line) != 6 {
		return nil, fmt.Errorf("%w: D record must be 6 characters", ErrSyntax)
	}
	if !isASCII(line) {
		return nil, ErrNonASCII
	}
	return &DRecord{
		Qualifier: GpsQualifier{Differential: line[1] == '2', Raw: line[1]},
		StationID: line[2:6],
	}, nil
}

func parseERecord(line string) (*ERecord, error) {
	if len(line) < 10 {
		return nil, fmt.Errorf("%w: E record shorter than 10 characters", ErrSyntax)
	}
	if !isASCII(line[:10]) {
		return nil, ErrNonASCII
	}
	time, err := ParseTime(line[1:7])
	if err != nil {
		return nil, err
	}
	return &ERecord{Time: time, Mnemonic: line[7:10], Text: line[10:]}, nil
}

func parseFRecord(line string) (*FRecord, error) {
	if len(line) < 7 {
		return nil, fmt.Errorf("%w: F record shorter than 7 characters", ErrSyntax)
	}
	if !isASCII(line) {
		return nil, ErrNonASCII
	}
	time, err := ParseTime(line[1:7])
	if err != nil {
		return nil, err
	}
	ids := line[7:]
	if len(ids) < 2 || len(ids)%2 != 0 {
		return nil, fmt.Errorf("%w: satellite list must be a non-empty run of 2-character IDs", ErrSyntax)
	}
	return &FRecord{Time: time, Satellites: SatelliteList(ids)}, nil
}

func parseHRecord(line string) (*HRecord, error) {
	if len(line) < 6 {
		return nil, fmt.Errorf("%w: H record shorter than 6 characters", ErrSyntax)
	}
	if !isASCII(line[:5]) {
		return nil, ErrNonASCII
	}

	rec := &HRecord{
		Source:   DataSource{Raw: line[1]},
		Mnemonic: line[2:5],
	}
	tail := line[5:]
	if idx := strings.IndexByte(tail, ':'); idx >= 0 {
		rec.FriendlyName = tail[:idx]
		rec.HasFriendlyName = true
		rec.Data = tail[idx+1:]
	} else {
		rec.Data = tail
	}
	return rec, nil
}

func parseKRecord(line string) (*KRecord, error) {
	if len(line) <= kRecordBaseLength {
		return nil, fmt.Errorf("%w: K record needs data past its timestamp", ErrSyntax)
	}
	time, err := ParseTime(line[1:7])
	if err != nil {
		return nil, err
	}
	return &KRecord{Time: time, extensionTail: line[7:]}, nil
}
