// Package multihash implements the multi-algorithm hashing context
// (component C4): a single object that runs every selected algorithm
// over one input stream in parallel, grounded on the teacher's
// hash.Hasher pattern in hash/hash.go generalized from one algorithm to
// an arbitrary selection mask.
package multihash

import (
	"context"
	"io"
	"sync"

	mherrors "github.com/ielm/mhash/errors"
	"github.com/ielm/mhash/registry"
)

// Callback is invoked periodically during Update/Copy with the number of
// bytes processed so far, mirroring librhash's progress-callback hook.
// The engine itself never throttles or formats progress; that is left to
// the caller (e.g. a CLI progress bar), per spec's non-goals.
type Callback func(totalBytes int64)

// Context runs every algorithm in a selection mask over one logical
// input stream.
type Context struct {
	mu         sync.Mutex
	mask       registry.ID
	leaves     map[registry.ID]leafState
	totalBytes int64
	finalized  bool
	canceled   bool
	onProgress Callback
}

type leafState struct {
	desc *registry.Descriptor
	h    interface {
		io.Writer
		Sum([]byte) []byte
		Reset()
	}
}

// New builds a Context selecting every algorithm whose bit is set in
// mask. Tree-hash algorithms (TTH/BTIH/AICH) are intentionally excluded:
// they have their own state machine in package treehash and are driven
// alongside a Context rather than through it, since they need the whole
// file's structure (piece boundaries), not just a byte stream.
func New(mask registry.ID) (*Context, error) {
	if mask == 0 {
		return nil, mherrors.New(mherrors.ErrNotSelected, "multihash: empty algorithm selection")
	}
	c := &Context{mask: mask, leaves: make(map[registry.ID]leafState)}
	for _, id := range registry.Split(mask) {
		desc, ok := registry.Lookup(id)
		if !ok || desc.IsTreeHash {
			continue
		}
		c.leaves[id] = leafState{desc: desc, h: desc.New()}
	}
	if len(c.leaves) == 0 {
		return nil, mherrors.New(mherrors.ErrNotSelected, "multihash: selection contains no streamable leaf algorithm")
	}
	return c, nil
}

// SetCallback installs a progress callback, replacing any previous one.
func (c *Context) SetCallback(cb Callback) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onProgress = cb
}

// Update feeds bytes to every selected algorithm. It returns
// ErrInvalidState once the context has been finalized, and ErrCanceled
// once it has been canceled.
func (c *Context) Update(p []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.finalized {
		return mherrors.New(mherrors.ErrInvalidState, "multihash: Update after Final")
	}
	if c.canceled {
		return mherrors.New(mherrors.ErrCanceled, "multihash: Update after Cancel")
	}
	for _, ls := range c.leaves {
		ls.h.Write(p)
	}
	c.totalBytes += int64(len(p))
	if c.onProgress != nil {
		c.onProgress(c.totalBytes)
	}
	return nil
}

// Copy streams r through every selected algorithm, checking for
// cancellation between reads so a long-running hash of a large file can
// be aborted promptly - the cancellation-liveness property spec.md §8
// names.
func (c *Context) Copy(ctx context.Context, r io.Reader) (int64, error) {
	buf := make([]byte, 256*1024)
	var total int64
	for {
		select {
		case <-ctx.Done():
			c.mu.Lock()
			c.canceled = true
			c.mu.Unlock()
			return total, mherrors.New(mherrors.ErrCanceled, "multihash: Copy canceled")
		default:
		}
		n, rerr := r.Read(buf)
		if n > 0 {
			if uerr := c.Update(buf[:n]); uerr != nil {
				return total, uerr
			}
			total += int64(n)
		}
		if rerr == io.EOF {
			return total, nil
		}
		if rerr != nil {
			return total, mherrors.New(mherrors.ErrIO, rerr.Error())
		}
	}
}

// Cancel marks the context canceled; subsequent Update/Final calls fail
// with ErrCanceled.
func (c *Context) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.canceled = true
}

// Final finalizes every selected algorithm and returns each one's digest
// bytes, keyed by algorithm ID. Final is idempotent: calling it again
// recomputes the same digests, since each leaf's Sum leaves its running
// state untouched.
func (c *Context) Final() (map[registry.ID][]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.canceled {
		return nil, mherrors.New(mherrors.ErrCanceled, "multihash: Final after Cancel")
	}
	c.finalized = true
	out := make(map[registry.ID][]byte, len(c.leaves))
	for id, ls := range c.leaves {
		out[id] = ls.h.Sum(nil)
	}
	return out, nil
}

// Reset returns the context to its freshly-constructed state, reusing
// the same algorithm selection - the reset-equivalence property spec.md
// §8 names: Reset then Update(x) must equal a fresh Context fed x.
func (c *Context) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ls := range c.leaves {
		ls.h.Reset()
	}
	c.totalBytes = 0
	c.finalized = false
	c.canceled = false
}

// TotalBytes reports how many bytes have been fed to the context so far.
func (c *Context) TotalBytes() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalBytes
}

// Mask reports the algorithm selection this context was built with.
func (c *Context) Mask() registry.ID {
	return c.mask
}
