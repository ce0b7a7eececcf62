package geom

import (
	"testing"

	"go.viam.com/test"
)

func TestNewBBoxRejectsInverted(t *testing.T) {
	_, err := NewBBox(NewPoint(1, 0, 0), NewPoint(0, 1, 0), false)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestGoQuadrants(t *testing.T) {
	full, err := NewBBox(NewPoint(0, 0, 0), NewPoint(10, 10, 0), false)
	test.That(t, err, test.ShouldBeNil)

	sed := full.GoSed()
	test.That(t, sed.Min.X, test.ShouldEqual, 5.0)
	test.That(t, sed.Max.X, test.ShouldEqual, 10.0)
	test.That(t, sed.Min.Y, test.ShouldEqual, 0.0)
	test.That(t, sed.Max.Y, test.ShouldEqual, 5.0)

	nwd := sed.GoNwd()
	test.That(t, nwd.Min.X, test.ShouldEqual, 5.0)
	test.That(t, nwd.Max.X, test.ShouldEqual, 7.5)
	test.That(t, nwd.Min.Y, test.ShouldEqual, 2.5)
	test.That(t, nwd.Max.Y, test.ShouldEqual, 5.0)
}

func TestVolumeAfterSplitIsQuartered(t *testing.T) {
	full, err := NewBBox(NewPoint(0, 0, 0), NewPoint(10, 10, 0), false)
	test.That(t, err, test.ShouldBeNil)

	quarter := full.GoNed()
	test.That(t, quarter.Volume(), test.ShouldEqual, full.Volume()/4)
	test.That(t, full.Contains(quarter), test.ShouldBeTrue)
}

func Test3DDirectionOnFlatBBoxPanics(t *testing.T) {
	full, err := NewBBox(NewPoint(0, 0, 0), NewPoint(10, 10, 0), false)
	test.That(t, err, test.ShouldBeNil)

	defer func() {
		r := recover()
		test.That(t, r, test.ShouldNotBeNil)
	}()
	full.Go(DirNwu)
}

func TestDirectionFromTwoBits(t *testing.T) {
	test.That(t, DirectionFromTwoBits(0), test.ShouldEqual, DirNwd)
	test.That(t, DirectionFromTwoBits(1), test.ShouldEqual, DirNed)
	test.That(t, DirectionFromTwoBits(2), test.ShouldEqual, DirSwd)
	test.That(t, DirectionFromTwoBits(3), test.ShouldEqual, DirSed)
}
