package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"example.com/igcgate/internal/report"
	"example.com/igcgate/internal/scan"
)

// batchCmd scans every .igc file under a directory tree, writing one output
// directory per trace with its diagnostics and report.
func batchCmd(args []string) {
	flags := flag.NewFlagSet("batch", flag.ExitOnError)
	inDir := flags.String("in", ".", "input directory")
	outDir := flags.String("out-dir", "out", "results directory")
	dictPath := flags.String("dict", "", "dictionary JSON file")
	roundTrip := flags.Bool("roundtrip", false, "verify round-trip encoding")
	workers := flags.Int("workers", runtime.NumCPU(), "concurrent decode workers")
	flags.Parse(args)

	store, err := loadDict(*dictPath)
	if err != nil {
		fmt.Println("dictionary:", err)
		os.Exit(1)
	}

	var traces []string
	err = filepath.WalkDir(*inDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".igc") {
			traces = append(traces, path)
		}
		return nil
	})
	if err != nil {
		fmt.Println("walk inputs:", err)
		os.Exit(1)
	}
	if len(traces) == 0 {
		fmt.Println("no .igc files found under", *inDir)
		os.Exit(1)
	}

	failed := 0
	for _, trace := range traces {
		name := strings.TrimSuffix(filepath.Base(trace), filepath.Ext(trace))
		dest := filepath.Join(*outDir, name)
		if err := os.MkdirAll(dest, 0o755); err != nil {
			fmt.Println("output dir:", err)
			os.Exit(1)
		}
		scanner := scan.NewScanner(scan.Options{
			Workers:   *workers,
			RoundTrip: *roundTrip,
			Dict:      store,
		})
		rep, err := scanner.ScanFile(trace)
		if err != nil {
			fmt.Printf("%s: scan: %v\n", trace, err)
			failed++
			continue
		}
		if err := scanner.WriteDiagnosticsNDJSON(filepath.Join(dest, "diagnostics.ndjson")); err != nil {
			fmt.Printf("%s: write diags: %v\n", trace, err)
			failed++
			continue
		}
		if err := report.SaveScanJSON(rep, filepath.Join(dest, "report.json")); err != nil {
			fmt.Printf("%s: write report: %v\n", trace, err)
			failed++
			continue
		}
		fmt.Printf("%s: PASS=%v errors=%d warnings=%d\n", trace, rep.Summary.Pass, rep.Summary.Errors, rep.Summary.Warnings)
		if !rep.Summary.Pass {
			failed++
		}
	}
	if failed > 0 {
		fmt.Printf("%d of %d trace(s) failed\n", failed, len(traces))
		os.Exit(1)
	}
}
