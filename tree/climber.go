package tree

import "github.com/digimatspa/entwine/geom"

// Climber is a stateful walker that descends a tree one child at a time,
// tracking the current bounding region. It is transient: construct one per
// query, discard it afterward. Grounded on original_source/entwine's own
// Climber and structurally similar to the level-at-a-time recursion in the
// teacher's CollisionOctree.Transform.
type Climber struct {
	bbox geom.BBox
}

// NewClimber starts a climber at the root of full.
func NewClimber(full geom.BBox) *Climber {
	return &Climber{bbox: full}
}

// GoNwd descends into the north-west-down child.
func (c *Climber) GoNwd() { c.bbox = c.bbox.GoNwd() }

// GoNed descends into the north-east-down child.
func (c *Climber) GoNed() { c.bbox = c.bbox.GoNed() }

// GoSwd descends into the south-west-down child.
func (c *Climber) GoSwd() { c.bbox = c.bbox.GoSwd() }

// GoSed descends into the south-east-down child.
func (c *Climber) GoSed() { c.bbox = c.bbox.GoSed() }

// Go descends into the child in the given direction.
func (c *Climber) Go(dir geom.Direction) { c.bbox = c.bbox.Go(dir) }

// BBox returns the climber's current bounding region.
func (c *Climber) BBox() geom.BBox { return c.bbox }
