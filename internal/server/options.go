package server

import (
	"strings"

	"example.com/igcgate/internal/dict"
)

// Options configures server creation.
type Options struct {
	// StorageDir roots the daemon's temporary workspace. Empty selects the
	// system temp directory.
	StorageDir string
	// DictPath optionally points at a JSON mnemonic dictionary overlaid on
	// the builtin table.
	DictPath string
	// ScanLogPath optionally appends every completed scan to a JSONL audit
	// log.
	ScanLogPath string
	// Concurrency is the number of decode workers per scan.
	Concurrency int
}

// LoadDictionary resolves the effective mnemonic dictionary for the given
// options: the builtin table, overlaid with the configured JSON file when one
// is set.
func LoadDictionary(opts Options) (*dict.Store, error) {
	builtin := dict.Builtin()
	path := strings.TrimSpace(opts.DictPath)
	if path == "" {
		return builtin, nil
	}
	override, err := dict.EnsureLoaded(path)
	if err != nil {
		return nil, err
	}
	return builtin.Merge(override), nil
}
