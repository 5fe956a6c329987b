package scan

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
)

// WriteNDJSON serializes diagnostics one JSON object per line.
func WriteNDJSON(w io.Writer, diags []Diagnostic) error {
	bw := bufio.NewWriter(w)
	for _, d := range diags {
		b, err := json.Marshal(d)
		if err != nil {
			return err
		}
		if _, err := bw.Write(b); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteDiagnosticsNDJSON writes the findings of the last scan to path.
func (s *Scanner) WriteDiagnosticsNDJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteNDJSON(f, s.diagnostics)
}

// Diagnostics returns the findings of the last scan.
func (s *Scanner) Diagnostics() []Diagnostic {
	return s.diagnostics
}
