package reader

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/digimatspa/entwine/geom"
)

// previewDoc is the BSON shape a Preview is stored as.
type previewDoc struct {
	Key        string   `bson:"_id"`
	MinX       float64  `bson:"minX"`
	MinY       float64  `bson:"minY"`
	MinZ       float64  `bson:"minZ"`
	MaxX       float64  `bson:"maxX"`
	MaxY       float64  `bson:"maxY"`
	MaxZ       float64  `bson:"maxZ"`
	Is3D       bool     `bson:"is3d"`
	PointCount int      `bson:"pointCount"`
	SRS        string   `bson:"srs"`
	DimNames   []string `bson:"dimNames"`
}

// PreviewCache stores a Preview per (source path, SRS) pair so repeated
// preview() calls on the same shard avoid re-reading headers. Backed by
// mongo, the way both the teacher's and huynhanx03-go-common's go.mod use
// it for document-shaped caches.
type PreviewCache struct {
	coll *mongo.Collection
}

// NewPreviewCache wraps an existing mongo collection as a PreviewCache.
func NewPreviewCache(coll *mongo.Collection) *PreviewCache {
	return &PreviewCache{coll: coll}
}

func previewCacheKey(path, srs string) string {
	return path + "|" + srs
}

// Get returns a previously stored Preview, if any.
func (c *PreviewCache) Get(ctx context.Context, path, srs string) (Preview, bool) {
	var doc previewDoc
	err := c.coll.FindOne(ctx, bson.M{"_id": previewCacheKey(path, srs)}).Decode(&doc)
	if err != nil {
		return Preview{}, false
	}

	bbox, err := bboxFromDoc(doc)
	if err != nil {
		return Preview{}, false
	}

	return Preview{
		BBox:       bbox,
		PointCount: doc.PointCount,
		SRS:        doc.SRS,
		DimNames:   doc.DimNames,
	}, true
}

// Put stores a Preview, replacing any existing entry for the same key.
func (c *PreviewCache) Put(ctx context.Context, path, srs string, p Preview) error {
	doc := previewDoc{
		Key:        previewCacheKey(path, srs),
		MinX:       p.BBox.Min.X,
		MinY:       p.BBox.Min.Y,
		MinZ:       p.BBox.Min.Z,
		MaxX:       p.BBox.Max.X,
		MaxY:       p.BBox.Max.Y,
		MaxZ:       p.BBox.Max.Z,
		Is3D:       p.BBox.Is3D,
		PointCount: p.PointCount,
		SRS:        p.SRS,
		DimNames:   p.DimNames,
	}
	opts := options.Replace().SetUpsert(true)
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": doc.Key}, doc, opts)
	return err
}

// bboxFromDoc reconstructs a geom.BBox from its stored fields.
func bboxFromDoc(doc previewDoc) (geom.BBox, error) {
	return geom.NewBBox(
		geom.NewPoint(doc.MinX, doc.MinY, doc.MinZ),
		geom.NewPoint(doc.MaxX, doc.MaxY, doc.MaxZ),
		doc.Is3D,
	)
}
