package igc

// Vendor names an approved flight-recorder manufacturer.
type Vendor string

const (
	Aircotec                  Vendor = "Aircotec"
	CambridgeAeroInstruments  Vendor = "Cambridge Aero Instruments"
	ClearNavInstruments       Vendor = "ClearNav Instruments"
	DataSwan                  Vendor = "Data Swan"
	EwAvionics                Vendor = "EW Avionics"
	Filser                    Vendor = "Filser"
	Flarm                     Vendor = "Flarm"
	Flytech                   Vendor = "Flytech"
	Garrecht                  Vendor = "Garrecht"
	ImiGlidingEquipment       Vendor = "IMI Gliding Equipment"
	Logstream                 Vendor = "Logstream"
	LxNavigation              Vendor = "LX Navigation"
	LxNav                     Vendor = "LXNAV"
	Naviter                   Vendor = "Naviter"
	NewTechnologies           Vendor = "New Technologies"
	NielsenKellerman          Vendor = "Nielsen Kellerman"
	Peschges                  Vendor = "Peschges"
	PressFinishElectronics    Vendor = "Press Finish Electronics"
	PrintTechnik              Vendor = "Print Technik"
	Scheffel                  Vendor = "Scheffel"
	StreamlineDataInstruments Vendor = "Streamline Data Instruments"
	TriadisEngineering        Vendor = "Triadis Engineering"
	Zander                    Vendor = "Zander"

	// VendorUnknown marks a code outside the approved table. The raw code
	// survives in Manufacturer.Code so formatting reproduces the line.
	VendorUnknown Vendor = ""
)

// Manufacturer pairs a vendor with the raw code it was decoded from. Code is
// either a single approval letter or a three-letter code, exactly as it
// appeared; it is the authoritative form for re-encoding.
type Manufacturer struct {
	Vendor Vendor
	Code   string
}

// Known reports whether the code matched the approved vendor table.
func (m Manufacturer) Known() bool {
	return m.Vendor != VendorUnknown
}

var singleCharVendors = map[byte]Vendor{
	'I': Aircotec,
	'C': CambridgeAeroInstruments,
	'D': DataSwan,
	'E': EwAvionics,
	'F': Filser,
	'G': Flarm,
	// Flytech is the one vendor approved under a lowercase letter.
	'n': Flytech,
	'A': Garrecht,
	'M': ImiGlidingEquipment,
	'L': LxNavigation,
	'V': LxNav,
	'N': NewTechnologies,
	'K': NielsenKellerman,
	'P': Peschges,
	'R': PrintTechnik,
	'H': Scheffel,
	'S': StreamlineDataInstruments,
	'T': TriadisEngineering,
	'Z': Zander,
}

var tripleCharVendors = map[string]Vendor{
	"ACT": Aircotec,
	"CAM": CambridgeAeroInstruments,
	"CNI": ClearNavInstruments,
	"DSX": DataSwan,
	"EWA": EwAvionics,
	"FIL": Filser,
	"FLA": Flarm,
	"FLY": Flytech,
	"GCS": Garrecht,
	"IMI": ImiGlidingEquipment,
	"LGS": Logstream,
	"LXN": LxNavigation,
	"LXV": LxNav,
	"NAV": Naviter,
	"NTE": NewTechnologies,
	"NKL": NielsenKellerman,
	"PES": Peschges,
	"PFE": PressFinishElectronics,
	"PRT": PrintTechnik,
	"SCH": Scheffel,
	"SDI": StreamlineDataInstruments,
	"TRI": TriadisEngineering,
	"ZAN": Zander,
}

// ManufacturerFromSingle resolves a single approval letter. Unrecognized
// letters yield the unknown fallback carrying the raw code.
func ManufacturerFromSingle(code string) Manufacturer {
	if len(code) == 1 {
		if v, ok := singleCharVendors[code[0]]; ok {
			return Manufacturer{Vendor: v, Code: code}
		}
	}
	return Manufacturer{Vendor: VendorUnknown, Code: code}
}

// ManufacturerFromTriple resolves a three-letter manufacturer code.
func ManufacturerFromTriple(code string) Manufacturer {
	if v, ok := tripleCharVendors[code]; ok {
		return Manufacturer{Vendor: v, Code: code}
	}
	return Manufacturer{Vendor: VendorUnknown, Code: code}
}
