package igc

import "fmt"

// The String methods below are the exact inverse of ParseLine: for any
// well-formed input line, parsing and re-formatting reproduces the line
// byte for byte.

func (r *ARecord) String() string {
	return "A" + r.Manufacturer.Code + r.UniqueID + r.IDExtension
}

func (r *BRecord) String() string {
	return fmt.Sprintf("B%s%s%c%05d%05d%s",
		r.Timestamp, r.Pos, byte(r.FixValid), r.PressureAlt, r.GpsAlt, r.extensionTail)
}

func (r *CDeclaration) String() string {
	return fmt.Sprintf("C%s%s%s%04d%02d%s",
		r.Date, r.Time, r.FlightDate, r.TaskID, r.TurnpointCount, r.Name)
}

func (r *CTurnpoint) String() string {
	return "C" + r.Pos.String() + r.Name
}

func (r *DRecord) String() string {
	return "D" + string(r.Qualifier.Raw) + r.StationID
}

func (r *ERecord) String() string {
	return "E" + r.Time.String() + r.Mnemonic + r.Text
}

func (r *FRecord) String() string {
	return "F" + r.Time.String() + string(r.Satellites)
}

func (r *GRecord) String() string {
	return "G" + r.Data
}

func (r *HRecord) String() string {
	// The colon separating the friendly name disappears entirely when the
	// name is absent; an empty-but-present name keeps it.
	if r.HasFriendlyName {
		return "H" + string(r.Source.Raw) + r.Mnemonic + r.FriendlyName + ":" + r.Data
	}
	return "H" + string(r.Source.Raw) + r.Mnemonic + r.Data
}

func (r *IRecord) String() string {
	return "I" + r.Set.String()
}

func (r *JRecord) String() string {
	return "J" + r.Set.String()
}

func (r *KRecord) String() string {
	return "K" + r.Time.String() + r.extensionTail
}

func (r *LRecord) String() string {
	return "L" + r.LogText
}

func (r *Unrecognized) String() string {
	return r.Raw
}
