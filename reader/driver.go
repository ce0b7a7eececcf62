package reader

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/digimatspa/entwine/geom"
	"github.com/digimatspa/entwine/internal/logging"
)

// ErrDriverUnknown names the case where no registered driver recognizes a
// source path's extension. Registry.Good, Preview and Run report that case
// by returning false; none of them returns this error value.
var ErrDriverUnknown = errors.New("reader: no driver recognizes this source")

// ErrReprojectionUnresolved is returned when a reprojection was requested
// with an empty source SRS and the driver could not infer one either.
var ErrReprojectionUnresolved = errors.New("reader: reprojection requested but source SRS could not be resolved")

// Reprojection names a target SRS and, optionally, an explicit source SRS
// to reproject from. An empty SourceSRS falls back to whatever SRS the
// driver infers from the source itself.
type Reprojection struct {
	SourceSRS string
	TargetSRS string
}

// Preview summarizes a source without fully reading it.
type Preview struct {
	BBox       geom.BBox
	PointCount int
	SRS        string
	DimNames   []string
}

// Driver resolves one source format (by file extension) into points.
type Driver interface {
	// Extensions lists the file extensions this driver recognizes, e.g.
	// ".las".
	Extensions() []string

	// InferSRS attempts to determine path's native SRS from its own
	// header/metadata, without a full read. Returns "" if the source
	// carries none.
	InferSRS(path string) (string, error)

	// Preview inspects a source's header without reading every point.
	Preview(path string, inferredSRS string) (Preview, error)

	// Run reads every point from path and emits it into table. srs is the
	// SRS to tag points with, already resolved by the caller.
	Run(table Table, path string, srs string) error
}

// previewCacher is the subset of *PreviewCache a Registry consults; kept as
// an interface so tests can stub it without a live mongo collection.
type previewCacher interface {
	Get(ctx context.Context, path, srs string) (Preview, bool)
	Put(ctx context.Context, path, srs string, p Preview) error
}

// hintCacher is the subset of *HintCache a Registry consults; kept as an
// interface so tests can stub it without a live redis client.
type hintCacher interface {
	Get(ctx context.Context, path string) (uint64, bool)
	Put(ctx context.Context, path string, numPoints uint64) error
}

// Registry maps file extensions to drivers. Driver registration and driver
// lookup are serialized under a single mutex scoped narrowly around the map
// access; there is no separate release step. The heavy point-emission work
// in Driver.Run happens entirely outside the critical section, per spec.md §5.
type Registry struct {
	mu      sync.Mutex
	drivers map[string]Driver

	previewCache previewCacher
	hintCache    hintCacher
}

// NewRegistry returns an empty driver registry.
func NewRegistry() *Registry {
	return &Registry{drivers: make(map[string]Driver)}
}

// SetPreviewCache attaches a cache Preview consults before reading a
// source's header, and populates on a miss.
func (r *Registry) SetPreviewCache(c *PreviewCache) {
	r.previewCache = c
}

// SetHintCache attaches a cache Preview and Run keep a source's point-count
// hint fresh in, for building a tree.Structure without a full pre-scan.
func (r *Registry) SetHintCache(c *HintCache) {
	r.hintCache = c
}

// Register adds driver under each of its extensions. Safe for concurrent
// use.
func (r *Registry) Register(d Driver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range d.Extensions() {
		r.drivers[ext] = d
	}
}

// inferReaderDriver resolves a source path to a driver by extension, the
// one dispatch rule the registry supports today; pipeline-style sources
// are reserved for a future extension and are reported as not readable.
func (r *Registry) inferReaderDriver(path string) (Driver, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drivers[filepath.Ext(path)]
	return d, ok
}

// acquire resolves path to a driver under the registry's lock, then
// releases the lock before returning — the driver itself is then owned
// exclusively by the caller and used without further locking.
func (r *Registry) acquire(path string) (Driver, bool) {
	return r.inferReaderDriver(path)
}

// Good reports whether the registry has a driver for path.
func (r *Registry) Good(path string) bool {
	_, ok := r.acquire(path)
	return ok
}

// Preview previews a source, optionally reprojecting the reported bounds'
// SRS. Returns (Preview{}, false) if no driver matches or the requested
// reprojection cannot be resolved. The driver's InferSRS always runs, since
// the preview cache is keyed by the resolved SRS; a hit in that cache, if
// one is attached, then skips the driver's Preview call, and a miss
// populates both the preview cache and the point-count hint cache for next
// time.
func (r *Registry) Preview(ctx context.Context, path string, reproj *Reprojection) (Preview, bool) {
	d, ok := r.acquire(path)
	if !ok {
		logging.Global().Warnw("no driver for source", "path", path)
		return Preview{}, false
	}

	inferred, err := d.InferSRS(path)
	if err != nil {
		logging.Global().Warnw("SRS inference failed", "path", path, "error", err)
	}

	srs, err := resolveSRS(reproj, inferred)
	if err != nil {
		return Preview{}, false
	}

	if r.previewCache != nil {
		if p, ok := r.previewCache.Get(ctx, path, srs); ok {
			return p, true
		}
	}

	p, err := d.Preview(path, srs)
	if err != nil {
		logging.Global().Warnw("preview failed", "path", path, "error", err)
		return Preview{}, false
	}

	if r.previewCache != nil {
		if err := r.previewCache.Put(ctx, path, srs, p); err != nil {
			logging.Global().Warnw("preview cache write failed", "path", path, "error", err)
		}
	}
	if r.hintCache != nil {
		if err := r.hintCache.Put(ctx, path, uint64(p.PointCount)); err != nil {
			logging.Global().Warnw("hint cache write failed", "path", path, "error", err)
		}
	}
	return p, true
}

// Run reads path fully via its matching driver and emits every point into
// table outside the registry's lock. Returns false if no driver matches
// or the requested reprojection cannot be resolved. On success, refreshes
// the point-count hint cache, if one is attached, with the exact count just
// read.
func (r *Registry) Run(ctx context.Context, table Table, path string, reproj *Reprojection) bool {
	d, ok := r.acquire(path)
	if !ok {
		logging.Global().Warnw("no driver for source", "path", path)
		return false
	}

	inferred, err := d.InferSRS(path)
	if err != nil {
		logging.Global().Warnw("SRS inference failed", "path", path, "error", err)
	}

	srs, err := resolveSRS(reproj, inferred)
	if err != nil {
		logging.Global().Warnw("reprojection unresolved", "path", path, "error", err)
		return false
	}

	if err := d.Run(table, path, srs); err != nil {
		logging.Global().Warnw("run failed", "path", path, "error", err)
		return false
	}

	if r.hintCache != nil {
		if err := r.hintCache.Put(ctx, path, uint64(table.Size())); err != nil {
			logging.Global().Warnw("hint cache write failed", "path", path, "error", err)
		}
	}
	return true
}

// resolveSRS applies the fallback rule: an empty SourceSRS in the
// requested reprojection falls back to inferredSRS; if neither exists,
// the reprojection cannot be resolved.
func resolveSRS(reproj *Reprojection, inferredSRS string) (string, error) {
	if reproj == nil {
		return inferredSRS, nil
	}
	src := reproj.SourceSRS
	if src == "" {
		src = inferredSRS
	}
	if src == "" {
		return "", ErrReprojectionUnresolved
	}
	return reproj.TargetSRS, nil
}
