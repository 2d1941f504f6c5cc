// Package syncer pushes the local dataset to the backing store service and
// pulls it back on startup. Pushes are debounced and fire-and-forget: the
// caller never waits on the network and failures are logged, not surfaced.
package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"foodcycle/internal/kv"
	"foodcycle/pkg/domain"
)

// DefaultDebounce is the quiet period after the last mutation before a
// push actually fires. Bursts of rapid mutations collapse into one round
// trip.
const DefaultDebounce = 300 * time.Millisecond

// Engine synchronizes the five local collections with the backing service
// as one composite document. Whole-document replace, last writer wins.
type Engine struct {
	baseURL    string
	store      kv.Store
	httpClient *http.Client
	debounce   time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// Option tweaks engine construction.
type Option func(*Engine)

// WithDebounce overrides the push quiet period.
func WithDebounce(d time.Duration) Option {
	return func(e *Engine) { e.debounce = d }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Engine) { e.httpClient = c }
}

// New constructs a sync engine for the given backing service base URL.
func New(baseURL string, store kv.Store, opts ...Option) *Engine {
	e := &Engine{
		baseURL:    strings.TrimRight(baseURL, "/"),
		store:      store,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		debounce:   DefaultDebounce,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Schedule arms (or re-arms) the push timer. Only the most recently
// scheduled push fires; superseded ones are silently dropped.
func (e *Engine) Schedule() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.debounce, e.push)
}

// Flush runs any pending push immediately and synchronously. Intended for
// shutdown and tests; regular callers never wait on a push.
func (e *Engine) Flush() {
	e.mu.Lock()
	pending := e.timer != nil && e.timer.Stop()
	e.timer = nil
	e.mu.Unlock()
	if pending {
		e.push()
	}
}

// push serializes all collections into one composite document and POSTs
// it. Failures are discarded; the next mutation's debounce cycle is the
// only implicit retry.
func (e *Engine) push() {
	body, err := json.Marshal(e.snapshot())
	if err != nil {
		slog.Warn("sync push skipped", "err", err)
		return
	}
	resp, err := e.httpClient.Post(e.baseURL+"/api/store", "application/json", bytes.NewReader(body))
	if err != nil {
		slog.Warn("sync push failed", "err", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("sync push rejected", "status", resp.StatusCode)
	}
}

// snapshot reads each collection's raw bytes from local storage,
// defaulting missing or unreadable ones to empty lists.
func (e *Engine) snapshot() map[string]json.RawMessage {
	doc := make(map[string]json.RawMessage, len(domain.Collections))
	for _, name := range domain.Collections {
		raw, ok, err := e.store.Get(name)
		if err != nil || !ok || len(raw) == 0 {
			doc[name] = json.RawMessage("[]")
			continue
		}
		doc[name] = json.RawMessage(raw)
	}
	return doc
}

// Pull fetches the remote composite document once and overwrites each
// local collection wholesale. Collections absent (or null) in the remote
// document are left untouched.
func (e *Engine) Pull(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/api/store", nil)
	if err != nil {
		return fmt.Errorf("build pull request: %w", err)
	}
	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch store: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch store: unexpected status %d", resp.StatusCode)
	}
	var doc map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("decode store document: %w", err)
	}
	for _, name := range domain.Collections {
		raw, ok := doc[name]
		if !ok || string(raw) == "null" {
			continue
		}
		if err := e.store.Set(name, raw); err != nil {
			return fmt.Errorf("replace %s: %w", name, err)
		}
	}
	return nil
}
