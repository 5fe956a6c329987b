package igc

import "fmt"

// extensionWidth is the width of one extension definition: a 4-character
// column range followed by a 3-character mnemonic.
const extensionWidth = 7

// ExtensionRange is a pair of 1-indexed columns over the entire physical
// line, including the leading kind character. End is inclusive and never
// smaller than Start.
type ExtensionRange struct {
	Start uint8
	End   uint8
}

// ParseExtensionRange decodes a 4-character "SSEE" column pair.
func ParseExtensionRange(field string) (ExtensionRange, error) {
	if len(field) != 4 {
		return ExtensionRange{}, fmt.Errorf("%w: extension range must be 4 characters", ErrSyntax)
	}
	start, err := parseDigits(field[0:2])
	if err != nil {
		return ExtensionRange{}, err
	}
	end, err := parseDigits(field[2:4])
	if err != nil {
		return ExtensionRange{}, err
	}
	if end < start {
		return ExtensionRange{}, fmt.Errorf("%w: range %02d-%02d is inverted", ErrBadExtension, start, end)
	}
	return ExtensionRange{Start: uint8(start), End: uint8(end)}, nil
}

func (r ExtensionRange) String() string {
	return fmt.Sprintf("%02d%02d", r.Start, r.End)
}

// Extension names the data carried in a column range of a record's tail.
type Extension struct {
	Range    ExtensionRange
	Mnemonic string
}

// ParseExtension decodes a 7-character range+mnemonic definition.
func ParseExtension(field string) (Extension, error) {
	if len(field) != extensionWidth {
		return Extension{}, fmt.Errorf("%w: extension must be %d characters", ErrSyntax, extensionWidth)
	}
	rng, err := ParseExtensionRange(field[0:4])
	if err != nil {
		return Extension{}, err
	}
	return Extension{Range: rng, Mnemonic: field[4:7]}, nil
}

func (e Extension) String() string {
	return e.Range.String() + e.Mnemonic
}

// ExtensionSet is the ordered list of extensions declared by an I or J
// record, together with the count the record claimed.
type ExtensionSet struct {
	DeclaredCount uint8
	Extensions    []Extension
}

// parseExtensionSet decodes the body of an I or J record after the kind
// letter: a 2-digit count followed by exactly count definitions.
func parseExtensionSet(body string) (ExtensionSet, error) {
	if len(body) < 2 {
		return ExtensionSet{}, fmt.Errorf("%w: missing extension count", ErrSyntax)
	}
	if !isASCII(body[0:2]) {
		return ExtensionSet{}, ErrNonASCII
	}
	count, err := parseDigits(body[0:2])
	if err != nil {
		return ExtensionSet{}, err
	}
	defs := body[2:]
	if len(defs) != count*extensionWidth {
		return ExtensionSet{}, fmt.Errorf("%w: expected %d extension definitions in %d characters", ErrSyntax, count, len(defs))
	}
	if !isASCII(defs) {
		return ExtensionSet{}, ErrNonASCII
	}
	set := ExtensionSet{
		DeclaredCount: uint8(count),
		Extensions:    make([]Extension, 0, count),
	}
	for i := 0; i < count; i++ {
		ext, err := ParseExtension(defs[i*extensionWidth : (i+1)*extensionWidth])
		if err != nil {
			return ExtensionSet{}, err
		}
		set.Extensions = append(set.Extensions, ext)
	}
	return set, nil
}

func (s ExtensionSet) String() string {
	out := fmt.Sprintf("%02d", s.DeclaredCount)
	for _, ext := range s.Extensions {
		out += ext.String()
	}
	return out
}

// Extendable is the capability shared by record kinds whose trailing free
// text can be widened by declared extensions. BaseLength is the fixed width
// of the kind's mandatory fields; ExtensionTail is everything after them.
type Extendable interface {
	BaseLength() int
	ExtensionTail() string
}

// GetExtension extracts the column range from the record's tail. The range
// is 1-indexed over the whole line, so the record's base length is
// subtracted before slicing. Ranges that touch the mandatory region fail
// with ErrBadExtension; ranges beyond the record's actual length fail with
// ErrMissingExtension.
func GetExtension(rec Extendable, rng ExtensionRange) (string, error) {
	// Ranges from ParseExtensionRange are never inverted, but a caller may
	// build one directly.
	if rng.End < rng.Start {
		return "", fmt.Errorf("%w: range %02d-%02d is inverted", ErrBadExtension, rng.Start, rng.End)
	}
	base := rec.BaseLength()
	if int(rng.Start) <= base {
		return "", fmt.Errorf("%w: range %02d-%02d overlaps mandatory fields", ErrBadExtension, rng.Start, rng.End)
	}
	tail := rec.ExtensionTail()
	start := int(rng.Start) - base - 1
	end := int(rng.End) - base
	if start >= len(tail) || end > len(tail) {
		return "", fmt.Errorf("%w: range %02d-%02d beyond record end", ErrMissingExtension, rng.Start, rng.End)
	}
	return tail[start:end], nil
}
