package igc

import "fmt"

// Time is a time of day with second precision. The IGC format mandates UTC
// everywhere, so no zone is carried.
//
// The format tolerates 24/60/60 as upper bounds rather than strict
// wall-clock ranges; loggers in the field emit them as midnight-exclusive
// sentinels, so the laxity is kept on purpose.
type Time struct {
	Hours   uint8
	Minutes uint8
	Seconds uint8
}

// ParseTime decodes a 6-character "HHMMSS" field.
func ParseTime(field string) (Time, error) {
	if len(field) != 6 {
		return Time{}, fmt.Errorf("%w: time field must be 6 characters", ErrSyntax)
	}
	if !isASCII(field) {
		return Time{}, ErrNonASCII
	}
	hours, err := parseDigits(field[0:2])
	if err != nil {
		return Time{}, err
	}
	minutes, err := parseDigits(field[2:4])
	if err != nil {
		return Time{}, err
	}
	seconds, err := parseDigits(field[4:6])
	if err != nil {
		return Time{}, err
	}
	if hours > 24 || minutes > 60 || seconds > 60 {
		return Time{}, ErrOutOfRange
	}
	return Time{Hours: uint8(hours), Minutes: uint8(minutes), Seconds: uint8(seconds)}, nil
}

// SecondsSinceMidnight returns the time as an offset from 00:00:00.
func (t Time) SecondsSinceMidnight() uint32 {
	mins := uint32(t.Hours)*60 + uint32(t.Minutes)
	return mins*60 + uint32(t.Seconds)
}

func (t Time) String() string {
	return fmt.Sprintf("%02d%02d%02d", t.Hours, t.Minutes, t.Seconds)
}

// Date is a single Gregorian calendar day. Only the least significant two
// digits of the year fit the format; no century resolution is attempted.
type Date struct {
	Day   uint8
	Month uint8
	Year  uint8
}

// ParseDate decodes a 6-character "DDMMYY" field.
func ParseDate(field string) (Date, error) {
	if len(field) != 6 {
		return Date{}, fmt.Errorf("%w: date field must be 6 characters", ErrSyntax)
	}
	if !isASCII(field) {
		return Date{}, ErrNonASCII
	}
	day, err := parseDigits(field[0:2])
	if err != nil {
		return Date{}, err
	}
	month, err := parseDigits(field[2:4])
	if err != nil {
		return Date{}, err
	}
	year, err := parseDigits(field[4:6])
	if err != nil {
		return Date{}, err
	}
	if day > 31 || month > 12 {
		return Date{}, ErrOutOfRange
	}
	return Date{Day: uint8(day), Month: uint8(month), Year: uint8(year)}, nil
}

func (d Date) String() string {
	return fmt.Sprintf("%02d%02d%02d", d.Day, d.Month, d.Year)
}
