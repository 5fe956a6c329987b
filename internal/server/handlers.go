package server

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"example.com/igcgate/internal/common"
	"example.com/igcgate/internal/dict"
	"example.com/igcgate/internal/report"
	"example.com/igcgate/internal/scan"
)

// Server coordinates HTTP handlers and manages temporary artifacts produced
// by scan requests.
type Server struct {
	artifacts   *ArtifactStore
	workDir     string
	uploadsDir  string
	dict        *dict.Store
	scanLog     *common.ScanLog
	concurrency int
}

// Artifact represents a file generated or stored by the daemon.
type Artifact struct {
	ID          string
	Path        string
	Name        string
	ContentType string
	Size        int64
	Kind        string
}

// ArtifactRef is the public representation returned in API responses.
type ArtifactRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"contentType,omitempty"`
	Size        int64  `json:"size,omitempty"`
	Kind        string `json:"kind,omitempty"`
}

// ArtifactStore keeps track of generated artifacts for later download.
type ArtifactStore struct {
	mu      sync.RWMutex
	entries map[string]Artifact
}

// NewServer constructs a Server rooted at a temporary workspace directory.
func NewServer(opts Options) (*Server, error) {
	storageDir := opts.StorageDir
	if storageDir == "" {
		storageDir = os.TempDir()
	}
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		return nil, err
	}
	workDir, err := os.MkdirTemp(storageDir, "igcd-")
	if err != nil {
		return nil, err
	}
	uploadsDir := filepath.Join(workDir, "uploads")
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		os.RemoveAll(workDir)
		return nil, err
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	store, err := LoadDictionary(opts)
	if err != nil {
		os.RemoveAll(workDir)
		return nil, err
	}
	var scanLog *common.ScanLog
	if strings.TrimSpace(opts.ScanLogPath) != "" {
		scanLog = common.NewScanLog(opts.ScanLogPath)
	}
	s := &Server{
		artifacts:   &ArtifactStore{entries: make(map[string]Artifact)},
		workDir:     workDir,
		uploadsDir:  uploadsDir,
		dict:        store,
		scanLog:     scanLog,
		concurrency: concurrency,
	}
	return s, nil
}

// Close removes any temporary state associated with the server.
func (s *Server) Close() error {
	if s == nil || s.workDir == "" {
		return nil
	}
	return os.RemoveAll(s.workDir)
}

func (s *Server) tempPath(pattern string) (string, error) {
	f, err := os.CreateTemp(s.workDir, pattern)
	if err != nil {
		return "", err
	}
	name := f.Name()
	f.Close()
	return name, nil
}

func (s *Server) addArtifact(path, displayName, contentType, kind string) (Artifact, error) {
	if path == "" {
		return Artifact{}, errors.New("empty path")
	}
	info, err := os.Stat(path)
	if err != nil {
		return Artifact{}, err
	}
	id := randomID()
	art := Artifact{
		ID:          id,
		Path:        path,
		Name:        displayName,
		ContentType: contentType,
		Size:        info.Size(),
		Kind:        kind,
	}
	if art.Name == "" {
		art.Name = filepath.Base(path)
	}
	if art.ContentType == "" {
		art.ContentType = guessContentType(art.Name)
	}
	s.artifacts.mu.Lock()
	s.artifacts.entries[id] = art
	s.artifacts.mu.Unlock()
	return art, nil
}

func (s *Server) getArtifact(id string) (Artifact, bool) {
	s.artifacts.mu.RLock()
	art, ok := s.artifacts.entries[id]
	s.artifacts.mu.RUnlock()
	return art, ok
}

// resolvePath accepts either an artifact ID from a prior upload or a plain
// filesystem path.
func (s *Server) resolvePath(token string) (string, error) {
	if token == "" {
		return "", errors.New("empty input path")
	}
	if art, ok := s.getArtifact(token); ok {
		return art.Path, nil
	}
	abs := token
	if !filepath.IsAbs(token) {
		abs = filepath.Clean(token)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", err
	}
	return abs, nil
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	stream := r.URL.Query().Get("stream") == "true"
	var req struct {
		Input     string `json:"input"`
		RoundTrip bool   `json:"roundTrip"`
		Lang      string `json:"lang"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid json: %v", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Input) == "" {
		http.Error(w, "input required", http.StatusBadRequest)
		return
	}
	inputPath, err := s.resolvePath(req.Input)
	if err != nil {
		http.Error(w, fmt.Sprintf("input resolve: %v", err), http.StatusBadRequest)
		return
	}
	lang, err := report.ParseLanguage(req.Lang)
	if err != nil {
		http.Error(w, fmt.Sprintf("lang: %v", err), http.StatusBadRequest)
		return
	}

	scanner := scan.NewScanner(scan.Options{
		Workers:   s.concurrency,
		RoundTrip: req.RoundTrip,
		Dict:      s.dict,
	})
	rep, err := scanner.ScanFile(inputPath)
	if err != nil {
		http.Error(w, fmt.Sprintf("scan: %v", err), http.StatusInternalServerError)
		return
	}
	s.appendScanLog(rep)

	if stream {
		w.Header().Set("Content-Type", "application/x-ndjson")
		writer := NewNDJSONWriter(w)
		for _, d := range rep.Findings {
			if err := writer.WriteDiagnostic(d); err != nil {
				return
			}
		}
		arts, err := s.saveScanArtifacts(scanner, rep, lang)
		if err != nil {
			_ = writer.WriteObject(map[string]any{"type": "error", "error": err.Error()})
			return
		}
		_ = writer.WriteObject(struct {
			Type      string        `json:"type"`
			Report    scan.Report   `json:"report"`
			Artifacts []ArtifactRef `json:"artifacts"`
		}{Type: "report", Report: rep, Artifacts: arts})
		return
	}

	arts, err := s.saveScanArtifacts(scanner, rep, lang)
	if err != nil {
		http.Error(w, fmt.Sprintf("save artifacts: %v", err), http.StatusInternalServerError)
		return
	}
	resp := struct {
		Report    scan.Report   `json:"report"`
		Artifacts []ArtifactRef `json:"artifacts"`
	}{Report: rep, Artifacts: arts}
	writeJSON(w, http.StatusOK, resp)
}

// saveScanArtifacts persists the diagnostics NDJSON, the report JSON, and
// the rendered PDF, and registers each for download.
func (s *Server) saveScanArtifacts(scanner *scan.Scanner, rep scan.Report, lang report.Language) ([]ArtifactRef, error) {
	diagPath, err := s.tempPath("diagnostics-*.ndjson")
	if err != nil {
		return nil, err
	}
	if err := scanner.WriteDiagnosticsNDJSON(diagPath); err != nil {
		return nil, err
	}
	jsonPath, err := s.tempPath("report-*.json")
	if err != nil {
		return nil, err
	}
	if err := report.SaveScanJSON(rep, jsonPath); err != nil {
		return nil, err
	}
	pdfPath, err := s.tempPath("report-*.pdf")
	if err != nil {
		return nil, err
	}
	if err := report.SaveScanPDF(rep, lang, pdfPath); err != nil {
		return nil, err
	}
	diagArt, err := s.addArtifact(diagPath, "diagnostics.ndjson", "application/x-ndjson", "diagnostics")
	if err != nil {
		return nil, err
	}
	jsonArt, err := s.addArtifact(jsonPath, "scan_report.json", "application/json", "report")
	if err != nil {
		return nil, err
	}
	pdfArt, err := s.addArtifact(pdfPath, "scan_report.pdf", "application/pdf", "report")
	if err != nil {
		return nil, err
	}
	return []ArtifactRef{toRef(diagArt), toRef(jsonArt), toRef(pdfArt)}, nil
}

func (s *Server) appendScanLog(rep scan.Report) {
	if s.scanLog == nil {
		return
	}
	err := s.scanLog.Append(common.ScanEntry{
		File:     rep.File,
		Digest:   rep.Digest,
		Pass:     rep.Summary.Pass,
		Lines:    int64(rep.Summary.Lines),
		Failures: int64(rep.Summary.Errors),
	})
	if err != nil {
		common.Logf("scan log append: %v", err)
	}
}

func (s *Server) handleArtifactDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/artifacts/")
	if id == "" {
		writeJSON(w, http.StatusOK, s.listArtifacts())
		return
	}
	art, ok := s.getArtifact(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	f, err := os.Open(art.Path)
	if err != nil {
		http.Error(w, fmt.Sprintf("open artifact: %v", err), http.StatusInternalServerError)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		http.Error(w, fmt.Sprintf("stat artifact: %v", err), http.StatusInternalServerError)
		return
	}
	if art.ContentType != "" {
		w.Header().Set("Content-Type", art.ContentType)
	}
	w.Header().Set("Content-Length", fmt.Sprintf("%d", info.Size()))
	disposition := fmt.Sprintf("attachment; filename=\"%s\"", art.Name)
	w.Header().Set("Content-Disposition", disposition)
	io.Copy(w, f)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"concurrency": s.concurrency,
	})
}

func toRef(art Artifact) ArtifactRef {
	return ArtifactRef{
		ID:          art.ID,
		Name:        art.Name,
		ContentType: art.ContentType,
		Size:        art.Size,
		Kind:        art.Kind,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func guessContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	case ".ndjson":
		return "application/x-ndjson"
	case ".pdf":
		return "application/pdf"
	case ".igc", ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}

func randomID() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		now := time.Now().UTC()
		return fmt.Sprintf("%d%06d", now.UnixNano(), os.Getpid())
	}
	return hex.EncodeToString(b[:])
}

func (s *Server) listArtifacts() []ArtifactRef {
	s.artifacts.mu.RLock()
	refs := make([]ArtifactRef, 0, len(s.artifacts.entries))
	for _, art := range s.artifacts.entries {
		refs = append(refs, toRef(art))
	}
	s.artifacts.mu.RUnlock()
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs
}
