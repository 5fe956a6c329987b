package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"text/tabwriter"
	"time"

	"example.com/igcgate/internal/common"
	"example.com/igcgate/internal/dict"
	"example.com/igcgate/internal/igc"
	"example.com/igcgate/internal/report"
	"example.com/igcgate/internal/scan"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	cmd := os.Args[1]
	switch cmd {
	case "scan":
		scanCmd(os.Args[2:])
	case "fixes":
		fixesCmd(os.Args[2:])
	case "roundtrip":
		roundtripCmd(os.Args[2:])
	case "report":
		reportCmd(os.Args[2:])
	case "batch":
		batchCmd(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Printf(`igcctl %s (built %s) <command> [options]

Commands:
  scan      --in <file.igc> [--dict <dict.json>] [--roundtrip] [--workers <n>] --out <diagnostics.ndjson> --report <report.json> [--audit <scans.jsonl>] [--metrics] [--progress]
  fixes     --in <file.igc> [--limit <n>]
  roundtrip --in <file.igc>
  report    --report <report.json> --pdf <report.pdf> [--lang en|tr]
  batch     --in <dir> --out-dir <dir> [--dict <dict.json>] [--roundtrip]
`, version, buildDate)
}

func loadDict(flagValue string) (*dict.Store, error) {
	store := dict.Builtin()
	path := strings.TrimSpace(flagValue)
	if path == "" {
		return store, nil
	}
	override, err := dict.EnsureLoaded(path)
	if err != nil {
		return nil, fmt.Errorf("load dictionary %s: %w", path, err)
	}
	return store.Merge(override), nil
}

func scanCmd(args []string) {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	in := fs.String("in", "", "input .igc trace")
	dictPath := fs.String("dict", "", "dictionary JSON file")
	roundTrip := fs.Bool("roundtrip", false, "verify every decoded record re-encodes byte for byte")
	workers := fs.Int("workers", runtime.NumCPU(), "concurrent decode workers")
	outDiag := fs.String("out", "diagnostics.ndjson", "diagnostics output")
	outReport := fs.String("report", "scan_report.json", "report json output")
	auditPath := fs.String("audit", "", "append scan result to a JSONL audit log")
	metricsFlag := fs.Bool("metrics", false, "print scan throughput metrics")
	progressFlag := fs.Bool("progress", false, "display scan progress updates")
	fs.Parse(args)

	if *in == "" {
		fmt.Println("required: --in")
		os.Exit(1)
	}
	store, err := loadDict(*dictPath)
	if err != nil {
		fmt.Println("dictionary:", err)
		os.Exit(1)
	}

	var metrics *common.Metrics
	if *metricsFlag || *progressFlag {
		metrics = common.NewMetrics()
	}
	var stopProgress func()
	if metrics != nil && *progressFlag {
		stopProgress = common.StartProgressPrinter(os.Stderr, metrics, 500*time.Millisecond)
	}

	scanner := scan.NewScanner(scan.Options{
		Workers:   *workers,
		RoundTrip: *roundTrip,
		Dict:      store,
		Metrics:   metrics,
	})
	rep, err := scanner.ScanFile(*in)
	if stopProgress != nil {
		stopProgress()
	}
	if err != nil {
		fmt.Println("scan:", err)
		os.Exit(1)
	}

	if err := scanner.WriteDiagnosticsNDJSON(*outDiag); err != nil {
		fmt.Println("write diags:", err)
		os.Exit(1)
	}
	if err := report.SaveScanJSON(rep, *outReport); err != nil {
		fmt.Println("write report:", err)
		os.Exit(1)
	}
	if strings.TrimSpace(*auditPath) != "" {
		err := common.NewScanLog(*auditPath).Append(common.ScanEntry{
			File:     rep.File,
			Digest:   rep.Digest,
			Pass:     rep.Summary.Pass,
			Lines:    int64(rep.Summary.Lines),
			Failures: int64(rep.Summary.Errors),
		})
		if err != nil {
			fmt.Println("append audit:", err)
			os.Exit(1)
		}
	}
	fmt.Printf("PASS=%v, lines=%d, records=%d, errors=%d, warnings=%d\n",
		rep.Summary.Pass, rep.Summary.Lines, rep.Summary.Records, rep.Summary.Errors, rep.Summary.Warnings)
	if metrics != nil && *metricsFlag {
		snap := metrics.Snapshot()
		mbPerSec := snap.ThroughputBytesPerSecond() / 1_000_000
		fmt.Printf("Metrics: duration=%s lines=%d records=%d failures=%d processed=%s throughput=%.2f MB/s\n",
			snap.Duration.Round(10*time.Millisecond),
			snap.Lines,
			snap.Records,
			snap.Failures,
			common.FormatBytes(snap.Bytes),
			mbPerSec,
		)
	}
	if !rep.Summary.Pass {
		os.Exit(1)
	}
}

// fixesCmd prints the position fixes of a trace in tabular form.
func fixesCmd(args []string) {
	fs := flag.NewFlagSet("fixes", flag.ExitOnError)
	in := fs.String("in", "", "input .igc trace")
	limit := fs.Int("limit", 0, "print at most this many fixes (0 = all)")
	fs.Parse(args)

	if *in == "" {
		fmt.Println("required: --in")
		os.Exit(1)
	}
	f, err := os.Open(*in)
	if err != nil {
		fmt.Println("open:", err)
		os.Exit(1)
	}
	defer f.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tLATITUDE\tLONGITUDE\tVALID\tPRESSURE ALT\tGPS ALT")
	printed := 0
	lineNo := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSuffix(sc.Text(), "\r")
		if len(line) == 0 || line[0] != 'B' {
			continue
		}
		rec, err := igc.ParseLine(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "line %d: %v\n", lineNo, err)
			continue
		}
		b := rec.(*igc.BRecord)
		fmt.Fprintf(w, "%s\t%.5f\t%.5f\t%c\t%d\t%d\n",
			b.Timestamp, b.Pos.Lat.Degrees64(), b.Pos.Lon.Degrees64(), byte(b.FixValid), b.PressureAlt, b.GpsAlt)
		printed++
		if *limit > 0 && printed >= *limit {
			break
		}
	}
	if err := sc.Err(); err != nil {
		fmt.Println("read:", err)
		os.Exit(1)
	}
	w.Flush()
	fmt.Printf("%d fix(es)\n", printed)
}

// roundtripCmd re-encodes every decodable line and reports byte mismatches.
func roundtripCmd(args []string) {
	fs := flag.NewFlagSet("roundtrip", flag.ExitOnError)
	in := fs.String("in", "", "input .igc trace")
	fs.Parse(args)

	if *in == "" {
		fmt.Println("required: --in")
		os.Exit(1)
	}
	f, err := os.Open(*in)
	if err != nil {
		fmt.Println("open:", err)
		os.Exit(1)
	}
	defer f.Close()

	lineNo := 0
	mismatches := 0
	undecodable := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSuffix(sc.Text(), "\r")
		rec, err := igc.ParseLine(line)
		if err != nil {
			undecodable++
			continue
		}
		if got := rec.String(); got != line {
			mismatches++
			fmt.Printf("line %d: %q re-encoded as %q\n", lineNo, line, got)
		}
	}
	if err := sc.Err(); err != nil {
		fmt.Println("read:", err)
		os.Exit(1)
	}
	fmt.Printf("%d line(s), %d undecodable, %d mismatch(es)\n", lineNo, undecodable, mismatches)
	if mismatches > 0 {
		os.Exit(1)
	}
}

func reportCmd(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	reportPath := fs.String("report", "", "scan report json")
	pdfPath := fs.String("pdf", "", "output report PDF")
	langFlag := fs.String("lang", "en", "report language (en, tr)")
	fs.Parse(args)

	if *reportPath == "" || *pdfPath == "" {
		fmt.Println("required: --report, --pdf")
		os.Exit(1)
	}
	lang, err := report.ParseLanguage(*langFlag)
	if err != nil {
		fmt.Println("lang:", err)
		os.Exit(1)
	}
	rep, err := report.LoadScanJSON(*reportPath)
	if err != nil {
		fmt.Println("load report:", err)
		os.Exit(1)
	}
	if err := report.SaveScanPDF(rep, lang, *pdfPath); err != nil {
		fmt.Println("write pdf:", err)
		os.Exit(1)
	}
	fmt.Println("Wrote PDF:", *pdfPath)
}
