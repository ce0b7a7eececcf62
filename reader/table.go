// Package reader implements the reader-pipeline adapter described in
// spec.md §4.E: it resolves a source path to a driver, resolves the SRS of
// an optional reprojection request, and emits points into a pooled table.
// No reprojection filter is applied: point coordinates are emitted as the
// driver reads them.
// It is the one boundary surface of the module that performs I/O; the
// index algebra in package tree never imports it.
package reader

import (
	"encoding"
	"image/color"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Data describes the attributes carried alongside a single point's
// position, grounded on the teacher's pointcloud.Data interface.
type Data interface {
	HasColor() bool
	RGB255() (uint8, uint8, uint8)
	Color() color.Color
	SetColor(c color.NRGBA) Data

	HasValue() bool
	Value() int
	SetValue(v int) Data

	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

type basicData struct {
	hasColor bool
	c        color.NRGBA
	hasValue bool
	value    int
}

// NewBasicData returns a point with no color or user-data value.
func NewBasicData() Data { return &basicData{} }

// NewColoredData returns a point carrying the given color.
func NewColoredData(c color.NRGBA) Data { return &basicData{c: c, hasColor: true} }

func (d *basicData) HasColor() bool       { return d.hasColor }
func (d *basicData) RGB255() (uint8, uint8, uint8) { return d.c.R, d.c.G, d.c.B }
func (d *basicData) Color() color.Color   { return &d.c }
func (d *basicData) SetColor(c color.NRGBA) Data {
	d.c = c
	d.hasColor = true
	return d
}
func (d *basicData) HasValue() bool { return d.hasValue }
func (d *basicData) Value() int     { return d.value }
func (d *basicData) SetValue(v int) Data {
	d.hasValue = true
	d.value = v
	return d
}

func (d *basicData) MarshalBinary() ([]byte, error) {
	var out []byte
	if d.hasColor {
		out = append(out, d.c.R, d.c.G, d.c.B, d.c.A)
	}
	if d.hasValue {
		out = append(out, byte(d.value))
	}
	return out, nil
}

func (d *basicData) UnmarshalBinary(b []byte) error {
	switch len(b) {
	case 5:
		d.SetColor(color.NRGBA{R: b[0], G: b[1], B: b[2], A: b[3]})
		d.SetValue(int(b[4]))
	case 4:
		d.SetColor(color.NRGBA{R: b[0], G: b[1], B: b[2], A: b[3]})
	case 1:
		d.SetValue(int(b[0]))
	case 0:
	default:
		return errors.Errorf("reader: invalid data packet size (%d)", len(b))
	}
	return nil
}

// Table is the pooled sink that a driver emits points into. It is
// deliberately narrower than a full PointCloud: the reader boundary only
// needs to accumulate points and track bounds, not support random access.
type Table interface {
	// Add appends a point and its data to the table.
	Add(p r3.Vector, d Data) error
	// Size returns the number of points added so far.
	Size() int
	// Bounds returns the running min/max of every point added so far.
	Bounds() (min, max r3.Vector, ok bool)
}

// pooledTable is the default Table implementation: a preallocated slice,
// grown geometrically, mirroring the teacher's NewWithPrealloc pattern.
type pooledTable struct {
	points   []r3.Vector
	data     []Data
	min, max r3.Vector
	hasAny   bool
}

// NewTable returns an empty Table preallocated to hint points, the same
// sizing hint a Structure's numPointsHint serves for chunk layout.
func NewTable(hint int) Table {
	return &pooledTable{
		points: make([]r3.Vector, 0, hint),
		data:   make([]Data, 0, hint),
	}
}

func (t *pooledTable) Add(p r3.Vector, d Data) error {
	t.points = append(t.points, p)
	t.data = append(t.data, d)
	if !t.hasAny {
		t.min, t.max = p, p
		t.hasAny = true
		return nil
	}
	if p.X < t.min.X {
		t.min.X = p.X
	}
	if p.Y < t.min.Y {
		t.min.Y = p.Y
	}
	if p.Z < t.min.Z {
		t.min.Z = p.Z
	}
	if p.X > t.max.X {
		t.max.X = p.X
	}
	if p.Y > t.max.Y {
		t.max.Y = p.Y
	}
	if p.Z > t.max.Z {
		t.max.Z = p.Z
	}
	return nil
}

func (t *pooledTable) Size() int { return len(t.points) }

func (t *pooledTable) Bounds() (r3.Vector, r3.Vector, bool) {
	return t.min, t.max, t.hasAny
}
