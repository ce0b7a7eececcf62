package reader

import (
	"github.com/edaniels/lidario"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/digimatspa/entwine/geom"
)

// lasDriver reads ASPRS LAS/LAZ-uncompressed point files via lidario,
// grounded directly on the teacher's NewFromLASFile.
type lasDriver struct{}

// NewLASDriver returns the LAS driver.
func NewLASDriver() Driver { return lasDriver{} }

func (lasDriver) Extensions() []string { return []string{".las"} }

// InferSRS reports "": lidario exposes LAS VLRs for writing but not for
// reading back a projection VLR's contents, so a bare LAS file carries no
// SRS this driver can recover without a source-specific hint.
func (lasDriver) InferSRS(path string) (string, error) {
	return "", nil
}

func (lasDriver) Preview(path string, srs string) (Preview, error) {
	lf, err := lidario.NewLasFile(path, "r")
	if err != nil {
		return Preview{}, errors.Wrap(err, "reader: opening LAS file")
	}
	defer lf.Close() //nolint:errcheck

	bbox, err := geom.NewBBox(
		geom.NewPoint(lf.Header.MinX, lf.Header.MinY, lf.Header.MinZ),
		geom.NewPoint(lf.Header.MaxX, lf.Header.MaxY, lf.Header.MaxZ),
		true,
	)
	if err != nil {
		return Preview{}, err
	}

	return Preview{
		BBox:       bbox,
		PointCount: lf.Header.NumberPoints,
		SRS:        srs,
		DimNames:   []string{"X", "Y", "Z"},
	}, nil
}

func (lasDriver) Run(table Table, path string, srs string) error {
	lf, err := lidario.NewLasFile(path, "r")
	if err != nil {
		return errors.Wrap(err, "reader: opening LAS file")
	}
	defer lf.Close() //nolint:errcheck

	for i := 0; i < lf.Header.NumberPoints; i++ {
		p, err := lf.LasPoint(i)
		if err != nil {
			return errors.Wrapf(err, "reader: reading LAS point %d", i)
		}
		data := p.PointData()

		var d Data
		if lf.Header.PointFormatID == 2 && p.RgbData() != nil {
			rgb := p.RgbData()
			d = NewColoredData(colorFrom16Bit(rgb.Red, rgb.Green, rgb.Blue))
		}

		if err := table.Add(r3.Vector{X: data.X, Y: data.Y, Z: data.Z}, d); err != nil {
			return err
		}
	}
	return nil
}
