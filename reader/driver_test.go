package reader

import (
	"context"
	"testing"

	"go.viam.com/test"

	"github.com/golang/geo/r3"
)

type fakeDriver struct {
	ext      string
	pts      []r3.Vector
	prev     Preview
	inferSRS string
}

func (d fakeDriver) Extensions() []string { return []string{d.ext} }

func (d fakeDriver) InferSRS(path string) (string, error) {
	return d.inferSRS, nil
}

func (d fakeDriver) Preview(path string, srs string) (Preview, error) {
	p := d.prev
	p.SRS = srs
	return p, nil
}

func (d fakeDriver) Run(table Table, path string, srs string) error {
	for _, p := range d.pts {
		if err := table.Add(p, nil); err != nil {
			return err
		}
	}
	return nil
}

// fakePreviewCache and fakeHintCache are in-memory stand-ins for
// *PreviewCache/*HintCache, letting Registry's cache wiring be exercised
// without a live mongo collection or redis client.
type fakePreviewCache struct {
	entries map[string]Preview
	puts    int
}

func newFakePreviewCache() *fakePreviewCache {
	return &fakePreviewCache{entries: make(map[string]Preview)}
}

func (c *fakePreviewCache) Get(ctx context.Context, path, srs string) (Preview, bool) {
	p, ok := c.entries[previewCacheKey(path, srs)]
	return p, ok
}

func (c *fakePreviewCache) Put(ctx context.Context, path, srs string, p Preview) error {
	c.puts++
	c.entries[previewCacheKey(path, srs)] = p
	return nil
}

type fakeHintCache struct {
	hints map[string]uint64
	puts  int
}

func newFakeHintCache() *fakeHintCache {
	return &fakeHintCache{hints: make(map[string]uint64)}
}

func (c *fakeHintCache) Get(ctx context.Context, path string) (uint64, bool) {
	n, ok := c.hints[path]
	return n, ok
}

func (c *fakeHintCache) Put(ctx context.Context, path string, numPoints uint64) error {
	c.puts++
	c.hints[path] = numPoints
	return nil
}

func TestGoodReportsDriverPresence(t *testing.T) {
	reg := NewRegistry()
	reg.Register(fakeDriver{ext: ".fake"})

	test.That(t, reg.Good("source.fake"), test.ShouldBeTrue)
	test.That(t, reg.Good("source.unknown"), test.ShouldBeFalse)
}

func TestRunEmitsIntoTable(t *testing.T) {
	reg := NewRegistry()
	pts := []r3.Vector{{X: 1, Y: 2, Z: 3}, {X: -1, Y: 0, Z: 5}}
	reg.Register(fakeDriver{ext: ".fake", pts: pts})

	table := NewTable(0)
	ok := reg.Run(context.Background(), table, "source.fake", nil)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, table.Size(), test.ShouldEqual, 2)

	min, max, hasAny := table.Bounds()
	test.That(t, hasAny, test.ShouldBeTrue)
	test.That(t, min, test.ShouldResemble, r3.Vector{X: -1, Y: 0, Z: 3})
	test.That(t, max, test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 5})
}

func TestRunFailsForUnknownDriver(t *testing.T) {
	reg := NewRegistry()
	ok := reg.Run(context.Background(), NewTable(0), "source.unknown", nil)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestReprojectionFallsBackToInferredSRS(t *testing.T) {
	srs, err := resolveSRS(&Reprojection{TargetSRS: "EPSG:4326"}, "EPSG:3857")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, srs, test.ShouldEqual, "EPSG:4326")
}

func TestReprojectionUnresolvedWithNoSRS(t *testing.T) {
	_, err := resolveSRS(&Reprojection{TargetSRS: "EPSG:4326"}, "")
	test.That(t, err, test.ShouldEqual, ErrReprojectionUnresolved)
}

func TestPreviewReturnsFalseForUnknownDriver(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.Preview(context.Background(), "source.unknown", nil)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestPreviewFallsBackToDriverInferredSRS(t *testing.T) {
	reg := NewRegistry()
	reg.Register(fakeDriver{ext: ".fake", inferSRS: "EPSG:3857"})

	p, ok := reg.Preview(context.Background(), "source.fake", &Reprojection{TargetSRS: "EPSG:4326"})
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, p.SRS, test.ShouldEqual, "EPSG:4326")
}

func TestPreviewFailsWhenNeitherSourceNorInferredSRSAvailable(t *testing.T) {
	reg := NewRegistry()
	reg.Register(fakeDriver{ext: ".fake"})

	_, ok := reg.Preview(context.Background(), "source.fake", &Reprojection{TargetSRS: "EPSG:4326"})
	test.That(t, ok, test.ShouldBeFalse)
}

func TestRunFallsBackToDriverInferredSRS(t *testing.T) {
	reg := NewRegistry()
	pts := []r3.Vector{{X: 1, Y: 2, Z: 3}}
	reg.Register(fakeDriver{ext: ".fake", pts: pts, inferSRS: "EPSG:3857"})

	ok := reg.Run(context.Background(), NewTable(0), "source.fake", &Reprojection{TargetSRS: "EPSG:4326"})
	test.That(t, ok, test.ShouldBeTrue)
}

func TestPreviewPopulatesCachesOnMiss(t *testing.T) {
	reg := NewRegistry()
	reg.Register(fakeDriver{
		ext:  ".fake",
		prev: Preview{PointCount: 42},
	})

	previews := newFakePreviewCache()
	hints := newFakeHintCache()
	reg.previewCache = previews
	reg.hintCache = hints

	ctx := context.Background()
	p, ok := reg.Preview(ctx, "source.fake", nil)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, p.PointCount, test.ShouldEqual, 42)
	test.That(t, previews.puts, test.ShouldEqual, 1)

	n, hit := hints.Get(ctx, "source.fake")
	test.That(t, hit, test.ShouldBeTrue)
	test.That(t, n, test.ShouldEqual, uint64(42))
}

func TestPreviewHitsCacheWithoutCallingDriver(t *testing.T) {
	reg := NewRegistry()
	reg.Register(fakeDriver{ext: ".fake"})

	previews := newFakePreviewCache()
	previews.entries[previewCacheKey("source.fake", "")] = Preview{PointCount: 7}
	reg.previewCache = previews

	p, ok := reg.Preview(context.Background(), "source.fake", nil)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, p.PointCount, test.ShouldEqual, 7)
	test.That(t, previews.puts, test.ShouldEqual, 0)
}

func TestRunRefreshesHintCache(t *testing.T) {
	reg := NewRegistry()
	pts := []r3.Vector{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}}
	reg.Register(fakeDriver{ext: ".fake", pts: pts})

	hints := newFakeHintCache()
	reg.hintCache = hints

	ctx := context.Background()
	ok := reg.Run(ctx, NewTable(0), "source.fake", nil)
	test.That(t, ok, test.ShouldBeTrue)

	n, hit := hints.Get(ctx, "source.fake")
	test.That(t, hit, test.ShouldBeTrue)
	test.That(t, n, test.ShouldEqual, uint64(2))
}
