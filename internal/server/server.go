// Package server implements the storage backend consumed by the deck store:
// a single collection endpoint holding one JSON document.
package server

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/cors"

	"github.com/mdelacru/fichas/internal/deck"
)

// CollectionPath is the endpoint the client and server agree on.
const CollectionPath = "/api/decks"

// handler serves the collection file. Writes replace it wholesale: no partial
// update, no conflict detection, last writer wins.
type handler struct {
	path   string
	logger *log.Logger

	mu sync.Mutex
}

// New returns the backend handler persisting to the given file, with the
// permissive CORS policy browser clients expect from this endpoint.
func New(path string, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.New(os.Stderr, "fichas-serve ", log.LstdFlags)
	}
	mux := http.NewServeMux()
	h := &handler{path: path, logger: logger}
	mux.HandleFunc("GET "+CollectionPath, h.get)
	mux.HandleFunc("HEAD "+CollectionPath, h.head)
	mux.HandleFunc("POST "+CollectionPath, h.post)
	return cors.AllowAll().Handler(mux)
}

func (h *handler) head(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *handler) get(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	data, err := os.ReadFile(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			// No collection stored yet: an empty array, not an error.
			w.Write([]byte("[]"))
			return
		}
		h.logger.Printf("read %s: %v", h.path, err)
		http.Error(w, `{"error":"storage unavailable"}`, http.StatusInternalServerError)
		return
	}
	w.Write(data)
}

func (h *handler) post(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		http.Error(w, `{"error":"No data"}`, http.StatusBadRequest)
		return
	}
	// The stored document must be readable back; reject garbage rather than
	// poisoning every future GET.
	if _, err := deck.Decode(body); err != nil {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.write(body); err != nil {
		h.logger.Printf("write %s: %v", h.path, err)
		http.Error(w, `{"error":"storage unavailable"}`, http.StatusInternalServerError)
		return
	}
	w.Write([]byte(`{"status":"saved"}`))
}

func (h *handler) write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(h.path), ".decks-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), h.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace collection: %w", err)
	}
	return nil
}
