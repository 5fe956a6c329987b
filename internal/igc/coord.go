package igc

import "fmt"

// Compass is a cardinal direction acting as the sign of a coordinate.
type Compass byte

const (
	North Compass = 'N'
	South Compass = 'S'
	East  Compass = 'E'
	West  Compass = 'W'
)

func (c Compass) String() string {
	return string(byte(c))
}

// Coord is a latitude or longitude in the raw form used by the format:
// whole degrees, thousandths of minutes and a hemisphere letter.
type Coord struct {
	Degrees          uint8
	MinuteThousandth uint16
	Sign             Compass
}

// Degrees64 converts the coordinate to signed decimal degrees.
func (c Coord) Degrees64() float64 {
	value := float64(c.Degrees) + float64(c.MinuteThousandth)/60_000
	if c.Sign == South || c.Sign == West {
		return -value
	}
	return value
}

// Latitude is a north/south coordinate.
type Latitude struct {
	Coord
}

// ParseLatitude decodes an 8-character "DDMMMMMN" field.
func ParseLatitude(field string) (Latitude, error) {
	if len(field) != 8 {
		return Latitude{}, fmt.Errorf("%w: latitude field must be 8 characters", ErrSyntax)
	}
	degrees, err := parseDigits(field[0:2])
	if err != nil {
		return Latitude{}, err
	}
	thousandths, err := parseDigits(field[2:7])
	if err != nil {
		return Latitude{}, err
	}
	var sign Compass
	switch field[7] {
	case 'N':
		sign = North
	case 'S':
		sign = South
	default:
		return Latitude{}, fmt.Errorf("%w: unrecognized hemisphere %q", ErrSyntax, field[7:8])
	}
	if degrees > 90 || thousandths > 60_000 {
		return Latitude{}, ErrOutOfRange
	}
	return Latitude{Coord{
		Degrees:          uint8(degrees),
		MinuteThousandth: uint16(thousandths),
		Sign:             sign,
	}}, nil
}

func (l Latitude) String() string {
	return fmt.Sprintf("%02d%05d%s", l.Degrees, l.MinuteThousandth, l.Sign)
}

// Longitude is an east/west coordinate.
type Longitude struct {
	Coord
}

// ParseLongitude decodes a 9-character "DDDMMMMMW" field.
func ParseLongitude(field string) (Longitude, error) {
	if len(field) != 9 {
		return Longitude{}, fmt.Errorf("%w: longitude field must be 9 characters", ErrSyntax)
	}
	degrees, err := parseDigits(field[0:3])
	if err != nil {
		return Longitude{}, err
	}
	thousandths, err := parseDigits(field[3:8])
	if err != nil {
		return Longitude{}, err
	}
	var sign Compass
	switch field[8] {
	case 'E':
		sign = East
	case 'W':
		sign = West
	default:
		return Longitude{}, fmt.Errorf("%w: unrecognized hemisphere %q", ErrSyntax, field[8:9])
	}
	if degrees > 180 || thousandths > 60_000 {
		return Longitude{}, ErrOutOfRange
	}
	return Longitude{Coord{
		Degrees:          uint8(degrees),
		MinuteThousandth: uint16(thousandths),
		Sign:             sign,
	}}, nil
}

func (l Longitude) String() string {
	return fmt.Sprintf("%03d%05d%s", l.Degrees, l.MinuteThousandth, l.Sign)
}

// Position pairs one latitude with one longitude.
type Position struct {
	Lat Latitude
	Lon Longitude
}

// ParsePosition decodes a 17-character latitude+longitude block.
func ParsePosition(field string) (Position, error) {
	if len(field) != 17 {
		return Position{}, fmt.Errorf("%w: position field must be 17 characters", ErrSyntax)
	}
	lat, err := ParseLatitude(field[0:8])
	if err != nil {
		return Position{}, err
	}
	lon, err := ParseLongitude(field[8:17])
	if err != nil {
		return Position{}, err
	}
	return Position{Lat: lat, Lon: lon}, nil
}

func (p Position) String() string {
	return p.Lat.String() + p.Lon.String()
}
