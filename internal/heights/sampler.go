// Package heights samples block timestamps from a daemon to build the
// restore-height table shipped with the wallet.
package heights

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/starford/feather-contrib/internal/daemon"
)

// DefaultInterval is the spacing between sampled heights.
const DefaultInterval = 1500

// ErrInvalidInterval is returned for a zero sampling interval.
var ErrInvalidInterval = errors.New("interval must be positive")

// Daemon is the subset of the daemon RPC the sampler needs.
type Daemon interface {
	GetBlockCount(ctx context.Context) (uint64, error)
	GetBlockHeaderByHeight(ctx context.Context, height uint64) (*daemon.BlockHeader, error)
}

// Sample pairs a block height with its timestamp in Unix seconds.
type Sample struct {
	Height    uint64 `json:"height"`
	Timestamp int64  `json:"timestamp"`
}

func (s Sample) String() string {
	return fmt.Sprintf("%d:%d", s.Timestamp, s.Height)
}

// Heights returns the heights to sample for a chain of height current:
// block 1, then every multiple of interval below current, ascending.
func Heights(current, interval uint64) []uint64 {
	out := []uint64{1}
	if interval == 0 {
		return out
	}
	for h := interval; h < current; h += interval {
		out = append(out, h)
	}
	return out
}

// Collect queries d for the chain height, then for the timestamp of every
// sampled height, one request at a time. The first failure aborts the run
// and no samples are returned.
func Collect(ctx context.Context, d Daemon, interval uint64) ([]Sample, error) {
	if interval == 0 {
		return nil, ErrInvalidInterval
	}

	current, err := d.GetBlockCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("heights: current height: %w", err)
	}

	heights := Heights(current, interval)
	samples := make([]Sample, 0, len(heights))
	for _, h := range heights {
		hdr, err := d.GetBlockHeaderByHeight(ctx, h)
		if err != nil {
			return nil, fmt.Errorf("heights: block %d: %w", h, err)
		}
		if hdr.Timestamp == nil {
			return nil, fmt.Errorf("heights: block %d: %w: timestamp", h, daemon.ErrMissingField)
		}
		samples = append(samples, Sample{Height: h, Timestamp: *hdr.Timestamp})
	}
	return samples, nil
}

// Write prints one "timestamp:height" line per sample, in slice order.
func Write(w io.Writer, samples []Sample) error {
	for _, s := range samples {
		if _, err := fmt.Fprintln(w, s.String()); err != nil {
			return fmt.Errorf("heights: write: %w", err)
		}
	}
	return nil
}
