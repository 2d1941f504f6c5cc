package server

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"

	"foodcycle/internal/ratelimit"
	"foodcycle/internal/util"
)

const defaultMaxDocumentBytes = 1 << 20

// Config wires required dependencies for the HTTP server.
type Config struct {
	Store            DocumentStore
	MaxDocumentBytes int64
	// WriteLimiter, when set, throttles document replacements per client.
	WriteLimiter *ratelimit.FixedWindowLimiter
}

// Server exposes HTTP endpoints for the store service.
type Server struct {
	store            DocumentStore
	mux              *http.ServeMux
	maxDocumentBytes int64
	writeLimiter     *ratelimit.FixedWindowLimiter
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	maxDocumentBytes := cfg.MaxDocumentBytes
	if maxDocumentBytes <= 0 {
		maxDocumentBytes = defaultMaxDocumentBytes
	}
	s := &Server{
		store:            cfg.Store,
		mux:              http.NewServeMux(),
		maxDocumentBytes: maxDocumentBytes,
		writeLimiter:     cfg.WriteLimiter,
	}
	s.routes()
	return s
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(util.WithRequestLog("store", util.WithSecurityHeaders(util.WithCORS(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/api/store", s.handleStore)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStore(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleFetch(w)
	case http.MethodPost:
		s.handleReplace(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleFetch(w http.ResponseWriter) {
	doc, err := s.store.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	if s.writeLimiter != nil && !s.writeLimiter.Allow(clientIP(r)) {
		w.Header().Set("Retry-After", "60")
		writeError(w, http.StatusTooManyRequests, "too many requests")
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxDocumentBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "document too large")
		return
	}
	// The payload must be a JSON object. Its collections are stored
	// verbatim, unknown keys included.
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil || doc == nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := s.store.Save(body); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func clientIP(r *http.Request) string {
	if xfwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); xfwd != "" {
		if ip := strings.TrimSpace(strings.Split(xfwd, ",")[0]); ip != "" {
			return ip
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"requestId,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{
		Error:     msg,
		Code:      errorCodeForStore(status, msg),
		RequestID: strings.TrimSpace(w.Header().Get("X-Request-Id")),
	})
}

func errorCodeForStore(status int, msg string) string {
	switch strings.ToLower(strings.TrimSpace(msg)) {
	case "invalid json body":
		return "STORE_INVALID_DOCUMENT"
	case "document too large":
		return "STORE_DOCUMENT_TOO_LARGE"
	case "method not allowed":
		return "SYSTEM_METHOD_NOT_ALLOWED"
	case "too many requests":
		return "STORE_RATE_LIMITED"
	}
	switch {
	case status == http.StatusBadRequest:
		return "STORE_INVALID_DOCUMENT"
	case status >= http.StatusInternalServerError:
		return "SYSTEM_INTERNAL_ERROR"
	default:
		return "REQUEST_ERROR"
	}
}
