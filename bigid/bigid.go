// Package bigid provides a non-negative, arbitrary-precision integer
// suitable for addressing tree indices that outgrow a machine word.
package bigid

import (
	"fmt"
	"math/big"
)

// Id is an exact non-negative integer. The zero value is zero. Id is never
// negative: any operation that would produce a negative value panics, since
// that always indicates corrupted index arithmetic rather than a condition
// a caller can recover from.
type Id struct {
	v big.Int
}

// Zero returns the Id value 0.
func Zero() Id {
	return Id{}
}

// FromUint64 constructs an Id from a machine word.
func FromUint64(n uint64) Id {
	var id Id
	id.v.SetUint64(n)
	return id
}

// FromBig constructs an Id from a big.Int, which must be non-negative.
func FromBig(n *big.Int) Id {
	if n.Sign() < 0 {
		panic("bigid: negative value")
	}
	var id Id
	id.v.Set(n)
	return id
}

// FromString parses a decimal, non-negative Id, the form a tree index or
// chunk id takes on the command line or in a metadata document.
func FromString(s string) (Id, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Id{}, fmt.Errorf("bigid: %q is not a decimal integer", s)
	}
	if n.Sign() < 0 {
		return Id{}, fmt.Errorf("bigid: %q is negative", s)
	}
	return Id{v: *n}, nil
}

// Add returns a + b.
func (a Id) Add(b Id) Id {
	var id Id
	id.v.Add(&a.v, &b.v)
	return id
}

// Sub returns a - b. Panics if the result would be negative.
func (a Id) Sub(b Id) Id {
	var id Id
	id.v.Sub(&a.v, &b.v)
	if id.v.Sign() < 0 {
		panic(fmt.Sprintf("bigid: underflow computing %s - %s", a.v.String(), b.v.String()))
	}
	return id
}

// MulSmall returns a * k.
func (a Id) MulSmall(k uint64) Id {
	var id Id
	id.v.Mul(&a.v, new(big.Int).SetUint64(k))
	return id
}

// Lsh returns a << s.
func (a Id) Lsh(s uint) Id {
	var id Id
	id.v.Lsh(&a.v, s)
	return id
}

// DivMod returns (a/k, a%k) for a small positive divisor k.
func (a Id) DivMod(k uint64) (Id, Id) {
	if k == 0 {
		panic("bigid: division by zero")
	}
	var q, r big.Int
	q.QuoRem(&a.v, new(big.Int).SetUint64(k), &r)
	return Id{v: q}, Id{v: r}
}

// AsSimple narrows a to a uint64, failing if it does not fit.
func (a Id) AsSimple() (uint64, error) {
	if !a.v.IsUint64() {
		return 0, fmt.Errorf("bigid: value %s exceeds word width", a.v.String())
	}
	return a.v.Uint64(), nil
}

// MustSimple narrows a to a uint64, panicking if it does not fit. Used at
// call sites where the caller has already established the value must be
// representable (a capacity violation there is a programmer error).
func (a Id) MustSimple() uint64 {
	n, err := a.AsSimple()
	if err != nil {
		panic(err)
	}
	return n
}

// Cmp returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func (a Id) Cmp(b Id) int {
	return a.v.Cmp(&b.v)
}

// Equal reports whether a and b hold the same value.
func (a Id) Equal(b Id) bool {
	return a.Cmp(b) == 0
}

// LessOrEqual reports whether a <= b.
func (a Id) LessOrEqual(b Id) bool {
	return a.Cmp(b) <= 0
}

// Less reports whether a < b.
func (a Id) Less(b Id) bool {
	return a.Cmp(b) < 0
}

// String returns the decimal representation of a, used for chunk naming.
func (a Id) String() string {
	return a.v.String()
}
