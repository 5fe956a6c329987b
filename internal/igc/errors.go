package igc

import "errors"

var (
	// ErrSyntax reports a structurally malformed record: wrong length,
	// unparsable digits or an unexpected delimiter.
	ErrSyntax = errors.New("syntax error")

	// ErrOutOfRange reports a numeric field outside its declared domain.
	ErrOutOfRange = errors.New("number out of range")

	// ErrNonASCII reports a multi-byte character inside a window that the
	// fixed-column layout requires to be single-byte text. Rejecting it up
	// front keeps every later byte-offset slice on a character boundary.
	ErrNonASCII = errors.New("non-ASCII characters")

	// ErrBadExtension reports an extension range that is inverted or that
	// references the mandatory region of a record.
	ErrBadExtension = errors.New("bad extension")

	// ErrMissingExtension reports an extension range beyond the end of the
	// record it is applied to.
	ErrMissingExtension = errors.New("missing extension")
)

// isASCII reports whether s contains only single-byte characters.
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// parseDigits interprets s as an unsigned decimal number. Unlike
// strconv.Atoi it rejects signs and spaces, which fixed-width numeric
// fields never contain.
func parseDigits(s string) (int, error) {
	if len(s) == 0 {
		return 0, ErrSyntax
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, ErrSyntax
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

// parseSigned interprets s as a decimal number with an optional leading
// sign, as used by the altitude fields.
func parseSigned(s string) (int, error) {
	neg := false
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, err := parseDigits(s)
	if err != nil {
		return 0, err
	}
	if neg {
		n = -n
	}
	return n, nil
}
