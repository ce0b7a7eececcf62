package bigid

import (
	"testing"

	"go.viam.com/test"
)

func TestAddSub(t *testing.T) {
	a := FromUint64(7)
	b := FromUint64(3)

	test.That(t, a.Add(b).Equal(FromUint64(10)), test.ShouldBeTrue)
	test.That(t, a.Sub(b).Equal(FromUint64(4)), test.ShouldBeTrue)
}

func TestSubUnderflowPanics(t *testing.T) {
	defer func() {
		r := recover()
		test.That(t, r, test.ShouldNotBeNil)
	}()
	FromUint64(1).Sub(FromUint64(2))
}

func TestDivMod(t *testing.T) {
	a := FromUint64(100)
	q, r := a.DivMod(7)

	test.That(t, q.Equal(FromUint64(14)), test.ShouldBeTrue)
	test.That(t, r.Equal(FromUint64(2)), test.ShouldBeTrue)
}

func TestLsh(t *testing.T) {
	a := FromUint64(1)
	test.That(t, a.Lsh(10).Equal(FromUint64(1024)), test.ShouldBeTrue)
}

func TestAsSimple(t *testing.T) {
	a := FromUint64(42)
	n, err := a.AsSimple()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, n, test.ShouldEqual, uint64(42))

	huge := a.Lsh(100)
	_, err = huge.AsSimple()
	test.That(t, err, test.ShouldNotBeNil)
}

func TestCmp(t *testing.T) {
	test.That(t, FromUint64(3).Less(FromUint64(5)), test.ShouldBeTrue)
	test.That(t, FromUint64(5).LessOrEqual(FromUint64(5)), test.ShouldBeTrue)
	test.That(t, FromUint64(3).Cmp(FromUint64(3)), test.ShouldEqual, 0)
}

func TestMulSmall(t *testing.T) {
	test.That(t, FromUint64(6).MulSmall(7).Equal(FromUint64(42)), test.ShouldBeTrue)
}

func TestString(t *testing.T) {
	test.That(t, FromUint64(12345).String(), test.ShouldEqual, "12345")
}

func TestFromString(t *testing.T) {
	id, err := FromString("12345678901234567890")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, id.String(), test.ShouldEqual, "12345678901234567890")

	_, err = FromString("-4")
	test.That(t, err, test.ShouldNotBeNil)

	_, err = FromString("not-a-number")
	test.That(t, err, test.ShouldNotBeNil)
}
