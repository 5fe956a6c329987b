package igc

// Record is one decoded line of an IGC trace, tagged by the line's leading
// character. The variant set is closed: it mirrors the record kinds fixed
// by the file format, and the sealed marker keeps consumers exhaustive.
//
// Every variant borrows substrings of the line it was decoded from; a
// Record must not outlive the buffer backing that line. String renders the
// canonical form of the record, byte-identical to well-formed input.
type Record interface {
	String() string
	isRecord()
}

// ARecord identifies the flight recorder: manufacturer plus unit serial.
//
// Three incompatible historical layouts share the leading 'A'; Code inside
// Manufacturer preserves whichever code form the line used so that
// formatting reproduces it.
type ARecord struct {
	Manufacturer Manufacturer
	UniqueID     string
	// IDExtension is the optional free text after the unique ID; empty
	// when absent.
	IDExtension string
}

// FixValid is the validity flag of a position fix.
type FixValid byte

const (
	Valid      FixValid = 'A'
	NavWarning FixValid = 'V'
)

// BRecord is a single time-stamped position-and-altitude sample.
//
// The altitude fields technically cannot represent the full five-digit
// column range, but exceeding int16 would require beating the Perlan
// Project's target altitude by a wide margin.
type BRecord struct {
	Timestamp   Time
	Pos         Position
	FixValid    FixValid
	PressureAlt int16
	GpsAlt      int16

	extensionTail string
}

// CDeclaration is the first flavor of C record: properties of the declared
// task. A conforming file follows it with turnpoint C records.
type CDeclaration struct {
	Date           Date
	Time           Time
	FlightDate     Date
	TaskID         uint16
	TurnpointCount uint8
	// Name is the optional task name; empty when absent.
	Name string
}

// CTurnpoint is the second flavor of C record: one point of the declared
// task.
type CTurnpoint struct {
	Pos Position
	// Name is the optional turnpoint name; empty when absent.
	Name string
}

// GpsQualifier distinguishes plain GPS from differential GPS in a D record.
// Unknown qualifier bytes are carried verbatim rather than rejected.
type GpsQualifier struct {
	Differential bool
	// Raw is the qualifier byte as it appeared on the line.
	Raw byte
}

// Recognized reports whether the qualifier byte was one of the defined
// values '1' or '2'.
func (q GpsQualifier) Recognized() bool {
	return q.Raw == '1' || q.Raw == '2'
}

// DRecord carries the differential GPS station in use.
type DRecord struct {
	Qualifier GpsQualifier
	StationID string
}

// ERecord describes an event logged during the flight, associated with the
// B record immediately following it.
type ERecord struct {
	Time     Time
	Mnemonic string
	// Text is the optional free text after the mnemonic; empty when absent.
	Text string
}

// SatelliteList is the raw even-length run of 2-character satellite IDs
// from an F record. It indexes into the source line without copying.
type SatelliteList string

// Len returns the number of satellite IDs.
func (l SatelliteList) Len() int {
	return len(l) / 2
}

// At returns the i-th 2-character satellite ID.
func (l SatelliteList) At(i int) string {
	return string(l[i*2 : i*2+2])
}

// IDs returns all satellite IDs as a freshly allocated slice.
func (l SatelliteList) IDs() []string {
	ids := make([]string, 0, l.Len())
	for i := 0; i < l.Len(); i++ {
		ids = append(ids, l.At(i))
	}
	return ids
}

// FRecord is a satellite constellation snapshot.
type FRecord struct {
	Time       Time
	Satellites SatelliteList
}

// GRecord is a security record; its contents are vendor dependent and kept
// opaque.
type GRecord struct {
	Data string
}

// DataSource tags which party recorded an H record. Unknown source bytes
// are carried verbatim rather than rejected.
type DataSource struct {
	Raw byte
}

// Defined data-source bytes.
const (
	SourceFVU              = 'F'
	SourceOfficialObserver = 'O'
	SourcePilot            = 'P'
)

// Recognized reports whether the source byte is one of the defined values.
func (s DataSource) Recognized() bool {
	switch s.Raw {
	case SourceFVU, SourceOfficialObserver, SourcePilot:
		return true
	}
	return false
}

// HRecord is a header information record. The tail after the mnemonic is
// split on the first colon into an optional human-readable name and the
// data payload; with no colon the whole tail is data.
type HRecord struct {
	Source   DataSource
	Mnemonic string
	// FriendlyName distinguishes an absent name (no colon on the line)
	// from an empty one (colon immediately after the mnemonic), so
	// HasFriendlyName is a separate flag.
	FriendlyName    string
	HasFriendlyName bool
	Data            string
}

// IRecord declares the extensions widening every B record in the file.
type IRecord struct {
	Set ExtensionSet
}

// JRecord declares the extensions widening every K record in the file.
type JRecord struct {
	Set ExtensionSet
}

// KRecord is a slow-rate data record: a timestamp plus J-declared columns.
type KRecord struct {
	Time Time

	extensionTail string
}

// LRecord is an opaque log line.
type LRecord struct {
	LogText string
}

// Unrecognized holds a line whose leading character matches no known record
// kind. It is a valid outcome, not an error.
type Unrecognized struct {
	Raw string
}

func (*ARecord) isRecord()      {}
func (*BRecord) isRecord()      {}
func (*CDeclaration) isRecord() {}
func (*CTurnpoint) isRecord()   {}
func (*DRecord) isRecord()      {}
func (*ERecord) isRecord()      {}
func (*FRecord) isRecord()      {}
func (*GRecord) isRecord()      {}
func (*HRecord) isRecord()      {}
func (*IRecord) isRecord()      {}
func (*JRecord) isRecord()      {}
func (*KRecord) isRecord()      {}
func (*LRecord) isRecord()      {}
func (*Unrecognized) isRecord() {}

// bRecordBaseLength is the width of a B record's mandatory fields.
const bRecordBaseLength = 35

// BaseLength implements Extendable.
func (r *BRecord) BaseLength() int { return bRecordBaseLength }

// ExtensionTail implements Extendable.
func (r *BRecord) ExtensionTail() string { return r.extensionTail }

// kRecordBaseLength is the width of a K record's mandatory fields.
const kRecordBaseLength = 7

// BaseLength implements Extendable.
func (r *KRecord) BaseLength() int { return kRecordBaseLength }

// ExtensionTail implements Extendable.
func (r *KRecord) ExtensionTail() string { return r.extensionTail }
