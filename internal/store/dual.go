package store

import (
	"context"
	"sync"

	"github.com/mdelacru/fichas/internal/deck"
)

// Dual composes the required local backend with an optional remote one.
// Saves hit the local file first, synchronously; the remote attempt is
// best-effort and its failure is never surfaced to the caller. Writes to the
// store are serialized so two saves can never interleave on the remote.
type Dual struct {
	local  *Local
	remote *Remote

	mu     sync.Mutex
	synced bool // last remote attempt succeeded
}

// NewDual creates a dual store. remote may be nil for local-only operation.
func NewDual(local *Local, remote *Remote) *Dual {
	return &Dual{local: local, remote: remote}
}

// Load prefers the remote collection when the server answers the liveness
// probe, mirroring it into the local file; otherwise it falls back to the
// local copy.
func (d *Dual) Load(ctx context.Context) (*deck.Collection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.remote != nil && d.remote.Ping(ctx) {
		c, err := d.remote.Load(ctx)
		if err == nil {
			d.synced = true
			// Best-effort mirror; the remote copy is already durable.
			_ = d.local.Save(ctx, c)
			return c, nil
		}
		d.synced = false
	}
	return d.local.Load(ctx)
}

// Save writes local-first. A remote failure marks the store out of sync and
// is retried opportunistically on the next save, never for the same write.
func (d *Dual) Save(ctx context.Context, c *deck.Collection) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.local.Save(ctx, c); err != nil {
		return err
	}
	if d.remote != nil {
		d.synced = d.remote.Save(ctx, c) == nil
	}
	return nil
}

// Synced reports whether the last remote attempt succeeded. Always true for
// a local-only store.
func (d *Dual) Synced() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.remote == nil || d.synced
}
