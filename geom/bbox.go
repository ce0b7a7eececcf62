package geom

import "fmt"

// BBox is an axis-aligned bounding region, 2D or 3D. The invariant
// Min.i <= Max.i holds per active axis; Z is ignored when Is3D is false.
type BBox struct {
	Min, Max Point
	Is3D     bool
}

// NewBBox validates and constructs a bounding region.
func NewBBox(min, max Point, is3d bool) (BBox, error) {
	b := BBox{Min: min, Max: max, Is3D: is3d}
	if min.X > max.X || min.Y > max.Y {
		return BBox{}, fmt.Errorf("geom: invalid bbox, min %v exceeds max %v", min, max)
	}
	if is3d && min.Z > max.Z {
		return BBox{}, fmt.Errorf("geom: invalid bbox, min %v exceeds max %v", min, max)
	}
	return b, nil
}

// Mid returns the geometric center of the region.
func (b BBox) Mid() Point {
	p := NewPoint(
		(b.Min.X+b.Max.X)/2,
		(b.Min.Y+b.Max.Y)/2,
		0,
	)
	if b.Is3D {
		p.Z = (b.Min.Z + b.Max.Z) / 2
	}
	return p
}

// Go descends into the child region in the given direction. Only the four
// 2D directions are valid when !b.Is3D; all eight are valid in 3D.
func (b BBox) Go(dir Direction) BBox {
	mid := b.Mid()

	result := b
	if b.Is3D {
		result.Min.Z, result.Max.Z = b.Min.Z, mid.Z
	}
	switch dir {
	case DirNwd:
		result.Min.X, result.Max.X = b.Min.X, mid.X
		result.Min.Y, result.Max.Y = mid.Y, b.Max.Y
	case DirNed:
		result.Min.X, result.Max.X = mid.X, b.Max.X
		result.Min.Y, result.Max.Y = mid.Y, b.Max.Y
	case DirSwd:
		result.Min.X, result.Max.X = b.Min.X, mid.X
		result.Min.Y, result.Max.Y = b.Min.Y, mid.Y
	case DirSed:
		result.Min.X, result.Max.X = mid.X, b.Max.X
		result.Min.Y, result.Max.Y = b.Min.Y, mid.Y
	case DirNwu, DirNeu, DirSwu, DirSeu:
		if !b.Is3D {
			panic("geom: 3D direction requested on a 2D bbox")
		}
		result = b.Go(dir - DirNwu)
		result.Min.Z, result.Max.Z = mid.Z, b.Max.Z
	default:
		panic(fmt.Sprintf("geom: unknown direction %v", dir))
	}
	return result
}

// GoNwd descends into the north-west-down child.
func (b BBox) GoNwd() BBox { return b.Go(DirNwd) }

// GoNed descends into the north-east-down child.
func (b BBox) GoNed() BBox { return b.Go(DirNed) }

// GoSwd descends into the south-west-down child.
func (b BBox) GoSwd() BBox { return b.Go(DirSwd) }

// GoSed descends into the south-east-down child.
func (b BBox) GoSed() BBox { return b.Go(DirSed) }

// Volume returns the area (2D) or volume (3D) of the region.
func (b BBox) Volume() float64 {
	v := (b.Max.X - b.Min.X) * (b.Max.Y - b.Min.Y)
	if b.Is3D {
		v *= b.Max.Z - b.Min.Z
	}
	return v
}

// Contains reports whether other lies entirely within b.
func (b BBox) Contains(other BBox) bool {
	if other.Min.X < b.Min.X || other.Max.X > b.Max.X {
		return false
	}
	if other.Min.Y < b.Min.Y || other.Max.Y > b.Max.Y {
		return false
	}
	if b.Is3D && (other.Min.Z < b.Min.Z || other.Max.Z > b.Max.Z) {
		return false
	}
	return true
}
