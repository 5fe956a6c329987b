package scan

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"example.com/igcgate/internal/common"
	"example.com/igcgate/internal/dict"
	"example.com/igcgate/internal/igc"
)

type Severity string

const (
	ERROR Severity = "ERROR"
	WARN  Severity = "WARN"
	INFO  Severity = "INFO"
)

// Diagnostic is one finding about one physical line of a trace file.
type Diagnostic struct {
	Ts       time.Time `json:"ts"`
	File     string    `json:"file"`
	Line     int       `json:"line"`
	Kind     string    `json:"kind,omitempty"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	Err      string    `json:"error,omitempty"`
}

// Report is the aggregate outcome of scanning one trace file.
type Report struct {
	File   string `json:"file"`
	Digest string `json:"digest"`
	Size   int64  `json:"sizeBytes"`

	Summary struct {
		Lines        int  `json:"lines"`
		Records      int  `json:"records"`
		Errors       int  `json:"errors"`
		Warnings     int  `json:"warnings"`
		Unrecognized int  `json:"unrecognized"`
		Pass         bool `json:"pass"`
	} `json:"summary"`

	// KindCounts maps the record kind letter to the number of decoded
	// records of that kind. Unknown leading characters count under
	// "unrecognized".
	KindCounts map[string]int `json:"kindCounts"`

	// Declared holds the rendered I and J declarations encountered, in
	// file order.
	Declared []string `json:"declared,omitempty"`

	Findings []Diagnostic `json:"findings,omitempty"`
}

// Options configures a Scanner. The zero value scans serially with no
// dictionary and no round-trip verification.
type Options struct {
	// Workers is the number of goroutines decoding lines. Zero or less
	// selects GOMAXPROCS.
	Workers int
	// RoundTrip re-encodes every decoded record and reports any byte
	// mismatch against the source line.
	RoundTrip bool
	// Dict, when set, is consulted for the mnemonics declared by I and J
	// records; unknown mnemonics are annotated as warnings.
	Dict *dict.Store
	// Metrics, when set, receives per-line progress counts.
	Metrics *common.Metrics
}

type Scanner struct {
	opts        Options
	diagnostics []Diagnostic
}

func NewScanner(opts Options) *Scanner {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Scanner{opts: opts}
}

// lineResult is the decode outcome of a single line, reassembled in input
// order after parallel decoding.
type lineResult struct {
	rec igc.Record
	err error
}

// ScanFile scans path and returns the report. I/O and digest failures are
// returned as errors; per-line decode failures become findings in the
// report, never errors.
func (s *Scanner) ScanFile(path string) (Report, error) {
	var rep Report
	rep.File = path
	rep.KindCounts = make(map[string]int)

	digest, size, err := common.Sha256OfFile(path)
	if err != nil {
		return rep, err
	}
	rep.Digest = digest
	rep.Size = size

	f, err := os.Open(path)
	if err != nil {
		return rep, err
	}
	defer f.Close()

	if s.opts.Metrics != nil {
		s.opts.Metrics.SetTotalBytes(size)
		s.opts.Metrics.Start()
		defer s.opts.Metrics.Stop()
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		// bufio strips the LF; a CRLF file leaves the CR behind.
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return rep, err
	}

	results := s.decodeAll(lines)
	// A fresh slice per scan: earlier reports hand out their findings slice,
	// so the backing array must never be recycled.
	s.diagnostics = nil
	now := time.Now().UTC()
	for i, res := range results {
		lineNo := i + 1
		if s.opts.Metrics != nil {
			s.opts.Metrics.AddLine(int64(len(lines[i])))
		}
		if res.err != nil {
			if s.opts.Metrics != nil {
				s.opts.Metrics.IncFailure()
			}
			rep.Summary.Errors++
			s.diagnostics = append(s.diagnostics, Diagnostic{
				Ts: now, File: path, Line: lineNo, Kind: errKind(res.err),
				Severity: ERROR, Message: "line failed to decode", Err: res.err.Error(),
			})
			continue
		}
		if s.opts.Metrics != nil {
			s.opts.Metrics.IncRecord()
		}
		rep.Summary.Records++
		s.collectRecord(&rep, path, now, lineNo, lines[i], res.rec)
	}
	rep.Summary.Lines = len(lines)
	for _, d := range s.diagnostics {
		if d.Severity == WARN {
			rep.Summary.Warnings++
		}
	}
	rep.Summary.Pass = rep.Summary.Errors == 0
	rep.Findings = s.diagnostics
	return rep, nil
}

// decodeAll decodes every line on the configured number of workers. The
// decoder is pure, so ordering needs nothing beyond indexed assignment.
func (s *Scanner) decodeAll(lines []string) []lineResult {
	results := make([]lineResult, len(lines))
	workers := s.opts.Workers
	if workers > len(lines) {
		workers = len(lines)
	}
	if workers <= 1 {
		for i, line := range lines {
			rec, err := igc.ParseLine(line)
			results[i] = lineResult{rec: rec, err: err}
		}
		return results
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rec, err := igc.ParseLine(lines[i])
				results[i] = lineResult{rec: rec, err: err}
			}
		}()
	}
	for i := range lines {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

func (s *Scanner) collectRecord(rep *Report, path string, now time.Time, lineNo int, line string, rec igc.Record) {
	kind := kindOf(rec)
	rep.KindCounts[kind]++

	if s.opts.RoundTrip {
		if got := rec.String(); got != line {
			rep.Summary.Errors++
			s.diagnostics = append(s.diagnostics, Diagnostic{
				Ts: now, File: path, Line: lineNo, Kind: kind, Severity: ERROR,
				Message: fmt.Sprintf("round trip mismatch: re-encoded as %q", got),
			})
		}
	}

	switch r := rec.(type) {
	case *igc.Unrecognized:
		rep.Summary.Unrecognized++
		s.diagnostics = append(s.diagnostics, Diagnostic{
			Ts: now, File: path, Line: lineNo, Kind: kind, Severity: INFO,
			Message: "unrecognized record kind",
		})
	case *igc.HRecord:
		s.checkHeaderMnemonic(path, now, lineNo, kind, r.Mnemonic)
	case *igc.IRecord:
		rep.Declared = append(rep.Declared, r.String())
		s.checkMnemonics(path, now, lineNo, kind, r.Set)
	case *igc.JRecord:
		rep.Declared = append(rep.Declared, r.String())
		s.checkMnemonics(path, now, lineNo, kind, r.Set)
	}
}

func (s *Scanner) checkHeaderMnemonic(path string, now time.Time, lineNo int, kind, mnemonic string) {
	if s.opts.Dict == nil || s.opts.Dict.IsEmpty() {
		return
	}
	if _, ok := s.opts.Dict.LookupHeader(mnemonic); !ok {
		s.diagnostics = append(s.diagnostics, Diagnostic{
			Ts: now, File: path, Line: lineNo, Kind: kind, Severity: WARN,
			Message: fmt.Sprintf("unknown header mnemonic %s", mnemonic),
		})
	}
}

func (s *Scanner) checkMnemonics(path string, now time.Time, lineNo int, kind string, set igc.ExtensionSet) {
	if s.opts.Dict == nil || s.opts.Dict.IsEmpty() {
		return
	}
	for _, ext := range set.Extensions {
		if _, ok := s.opts.Dict.LookupExtension(ext.Mnemonic); !ok {
			s.diagnostics = append(s.diagnostics, Diagnostic{
				Ts: now, File: path, Line: lineNo, Kind: kind, Severity: WARN,
				Message: fmt.Sprintf("unknown extension mnemonic %s", ext.Mnemonic),
			})
		}
	}
}

// kindOf names a decoded record by its leading character, or "unrecognized".
func kindOf(rec igc.Record) string {
	switch rec.(type) {
	case *igc.ARecord:
		return "A"
	case *igc.BRecord:
		return "B"
	case *igc.CDeclaration, *igc.CTurnpoint:
		return "C"
	case *igc.DRecord:
		return "D"
	case *igc.ERecord:
		return "E"
	case *igc.FRecord:
		return "F"
	case *igc.GRecord:
		return "G"
	case *igc.HRecord:
		return "H"
	case *igc.IRecord:
		return "I"
	case *igc.JRecord:
		return "J"
	case *igc.KRecord:
		return "K"
	case *igc.LRecord:
		return "L"
	default:
		return "unrecognized"
	}
}

// errKind names the sentinel a decode error wraps.
func errKind(err error) string {
	switch {
	case errors.Is(err, igc.ErrNonASCII):
		return "non-ascii"
	case errors.Is(err, igc.ErrOutOfRange):
		return "out-of-range"
	case errors.Is(err, igc.ErrBadExtension):
		return "bad-extension"
	case errors.Is(err, igc.ErrMissingExtension):
		return "missing-extension"
	case errors.Is(err, igc.ErrSyntax):
		return "syntax"
	default:
		return "unknown"
	}
}
