package server

import "net/http"

// NewRouter wires HTTP routes to the server's handlers.
func NewRouter(s *Server) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/scan", s.handleScan)
	mux.HandleFunc("/upload", s.handleUpload)
	mux.HandleFunc("/artifacts/", s.handleArtifactDownload)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}
