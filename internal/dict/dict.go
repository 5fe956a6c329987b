package dict

import (
	"fmt"
	"strings"
)

// ExtensionEntry describes a 3-letter mnemonic declared by an I or J record.
type ExtensionEntry struct {
	Mnemonic string
	Name     string
	Unit     string
}

// HeaderEntry describes a 3-letter H record subject mnemonic.
type HeaderEntry struct {
	Mnemonic string
	Name     string
}

type Store struct {
	ext map[string]ExtensionEntry
	hdr map[string]HeaderEntry
}

type JSONFile struct {
	Extensions []JSONExtensionEntry `json:"extensions"`
	Headers    []JSONHeaderEntry    `json:"headers"`
}

type JSONExtensionEntry struct {
	Mnemonic string `json:"mnemonic"`
	Name     string `json:"name"`
	Unit     string `json:"unit,omitempty"`
}

type JSONHeaderEntry struct {
	Mnemonic string `json:"mnemonic"`
	Name     string `json:"name"`
}

func FromJSON(file JSONFile) (*Store, error) {
	store := &Store{
		ext: make(map[string]ExtensionEntry),
		hdr: make(map[string]HeaderEntry),
	}
	for i, entry := range file.Extensions {
		key, err := normalizeMnemonic(entry.Mnemonic)
		if err != nil {
			return nil, fmt.Errorf("extensions[%d]: %w", i, err)
		}
		if _, exists := store.ext[key]; exists {
			return nil, fmt.Errorf("extensions[%d]: duplicate mnemonic %s", i, key)
		}
		store.ext[key] = ExtensionEntry{
			Mnemonic: key,
			Name:     strings.TrimSpace(entry.Name),
			Unit:     strings.TrimSpace(entry.Unit),
		}
	}
	for i, entry := range file.Headers {
		key, err := normalizeMnemonic(entry.Mnemonic)
		if err != nil {
			return nil, fmt.Errorf("headers[%d]: %w", i, err)
		}
		if _, exists := store.hdr[key]; exists {
			return nil, fmt.Errorf("headers[%d]: duplicate mnemonic %s", i, key)
		}
		store.hdr[key] = HeaderEntry{
			Mnemonic: key,
			Name:     strings.TrimSpace(entry.Name),
		}
	}
	return store, nil
}

// normalizeMnemonic upper-cases and validates a 3-character mnemonic.
func normalizeMnemonic(m string) (string, error) {
	m = strings.ToUpper(strings.TrimSpace(m))
	if len(m) != 3 {
		return "", fmt.Errorf("mnemonic %q must be 3 characters", m)
	}
	for i := 0; i < len(m); i++ {
		c := m[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return "", fmt.Errorf("mnemonic %q has invalid character", m)
		}
	}
	return m, nil
}

func (s *Store) LookupExtension(mnemonic string) (ExtensionEntry, bool) {
	if s == nil {
		return ExtensionEntry{}, false
	}
	entry, ok := s.ext[strings.ToUpper(mnemonic)]
	return entry, ok
}

func (s *Store) LookupHeader(mnemonic string) (HeaderEntry, bool) {
	if s == nil {
		return HeaderEntry{}, false
	}
	entry, ok := s.hdr[strings.ToUpper(mnemonic)]
	return entry, ok
}

func (s *Store) IsEmpty() bool {
	if s == nil {
		return true
	}
	return len(s.ext) == 0 && len(s.hdr) == 0
}

// Merge overlays other on top of s, other winning on conflicts, and returns
// the combined store. Either side may be nil.
func (s *Store) Merge(other *Store) *Store {
	merged := &Store{
		ext: make(map[string]ExtensionEntry),
		hdr: make(map[string]HeaderEntry),
	}
	if s != nil {
		for k, v := range s.ext {
			merged.ext[k] = v
		}
		for k, v := range s.hdr {
			merged.hdr[k] = v
		}
	}
	if other != nil {
		for k, v := range other.ext {
			merged.ext[k] = v
		}
		for k, v := range other.hdr {
			merged.hdr[k] = v
		}
	}
	return merged
}

// Builtin returns the dictionary of mnemonics fixed by the file format
// specification. Callers overlay site-specific entries with Merge.
func Builtin() *Store {
	store, err := FromJSON(JSONFile{
		Extensions: []JSONExtensionEntry{
			{Mnemonic: "FXA", Name: "Fix accuracy", Unit: "m"},
			{Mnemonic: "ENL", Name: "Engine noise level"},
			{Mnemonic: "TAS", Name: "True airspeed", Unit: "km/h"},
			{Mnemonic: "GSP", Name: "Ground speed", Unit: "km/h"},
			{Mnemonic: "HDT", Name: "True heading", Unit: "deg"},
			{Mnemonic: "HDM", Name: "Magnetic heading", Unit: "deg"},
			{Mnemonic: "TRT", Name: "True track", Unit: "deg"},
			{Mnemonic: "VAT", Name: "Compensated variometer", Unit: "m/s"},
			{Mnemonic: "OAT", Name: "Outside air temperature", Unit: "degC"},
			{Mnemonic: "SIU", Name: "Satellites in use"},
			{Mnemonic: "ACZ", Name: "Z acceleration", Unit: "g"},
			{Mnemonic: "RPM", Name: "Engine revolutions", Unit: "1/min"},
			{Mnemonic: "WDI", Name: "Wind direction", Unit: "deg"},
			{Mnemonic: "WSP", Name: "Wind speed", Unit: "km/h"},
			{Mnemonic: "MOP", Name: "Means of propulsion"},
		},
		Headers: []JSONHeaderEntry{
			{Mnemonic: "DTE", Name: "Date of flight"},
			{Mnemonic: "FXA", Name: "Fix accuracy"},
			{Mnemonic: "PLT", Name: "Pilot in charge"},
			{Mnemonic: "CM2", Name: "Second crew member"},
			{Mnemonic: "GTY", Name: "Glider type"},
			{Mnemonic: "GID", Name: "Glider registration"},
			{Mnemonic: "DTM", Name: "GPS datum"},
			{Mnemonic: "RFW", Name: "Firmware revision"},
			{Mnemonic: "RHW", Name: "Hardware revision"},
			{Mnemonic: "FTY", Name: "Recorder type"},
			{Mnemonic: "GPS", Name: "GPS receiver"},
			{Mnemonic: "PRS", Name: "Pressure sensor"},
			{Mnemonic: "CID", Name: "Competition ID"},
			{Mnemonic: "CCL", Name: "Competition class"},
			{Mnemonic: "TZN", Name: "Time zone offset"},
		},
	})
	if err != nil {
		panic(err)
	}
	return store
}
