package report

import (
	"encoding/json"
	"os"

	"example.com/igcgate/internal/scan"
)

func SaveScanJSON(rep scan.Report, out string) error {
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(out, b, 0644)
}

func LoadScanJSON(path string) (scan.Report, error) {
	var rep scan.Report
	b, err := os.ReadFile(path)
	if err != nil {
		return rep, err
	}
	err = json.Unmarshal(b, &rep)
	return rep, err
}
