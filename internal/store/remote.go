package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mdelacru/fichas/internal/deck"
)

// ErrRemoteSync is returned when the remote backend fails or times out.
// Callers composing Local and Remote recover from it locally: the local write
// already succeeded, so no data is lost.
var ErrRemoteSync = errors.New("remote sync failed")

// DefaultRemoteTimeout bounds every remote call.
const DefaultRemoteTimeout = 5 * time.Second

// Remote talks to a storage backend exposing the collection endpoint:
// GET returns the serialized collection (an empty array if none has been
// stored), POST replaces it wholesale (last writer wins), HEAD is a liveness
// probe where any 2xx means available.
type Remote struct {
	endpoint string
	client   *http.Client
}

// NewRemote creates a remote store for the given collection endpoint URL.
func NewRemote(endpoint string, timeout time.Duration) *Remote {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	return &Remote{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Load fetches and decodes the stored collection.
func (r *Remote) Load(ctx context.Context) (*deck.Collection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteSync, err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteSync, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s: %s", ErrRemoteSync, r.endpoint, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteSync, err)
	}
	c, err := deck.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode remote collection: %w", err)
	}
	return c, nil
}

// Save replaces the stored collection with the given one.
func (r *Remote) Save(ctx context.Context, c *deck.Collection) error {
	data, err := c.Encode()
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteSync, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteSync, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: POST %s: %s", ErrRemoteSync, r.endpoint, resp.Status)
	}
	return nil
}

// Ping probes the endpoint with HEAD. Any 2xx means the server is available.
func (r *Remote) Ping(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, r.endpoint, nil)
	if err != nil {
		return false
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}
