// Package field implements arithmetic in a prime field p, with pairs
// (val, inv) cached for every value that is ever divided by. The field
// modulus is chosen so p < 2^32, keeping val*val within a 64-bit word for
// every multiplication the matching engines perform.
package field

import "fmt"

// Prime is a field modulus. Callers must choose a prime p < 2^32; the
// engines above this package never validate primality at runtime (that
// would be a per-construction cost, not a hot-path one) and rely on the
// caller's choice per spec.
type Prime uint64

// DefaultPrime is the modulus MP-BG uses when the caller does not supply
// one: 2^31 - 1, a Mersenne prime comfortably below 2^32.
const DefaultPrime Prime = (1 << 31) - 1

// Value is a field element paired with its modular inverse. For any live
// Value, Val is in [0, p) and Inv == Modinv(Val, p). Go's value semantics
// mean passing a Value by value already copies it, so the aliasing hazard
// the original C implementation guards against in Div (dst overlapping den)
// cannot arise here: num and den are local copies the moment Div is called.
type Value struct {
	Val uint64
	Inv uint64
}

// NewValue builds a Value for val, computing and caching its inverse.
// Panics if val is not invertible mod p (val == 0, or gcd(val, p) != 1) —
// per spec this is a fatal invariant break, never a recoverable condition,
// since callers guarantee invertibility by construction (p prime, r in [2,p)).
func NewValue(val uint64, p Prime) Value {
	v := val % uint64(p)
	return Value{Val: v, Inv: Modinv(v, p)}
}

// One returns the multiplicative identity of the field.
func One(p Prime) Value {
	return Value{Val: 1 % uint64(p), Inv: 1 % uint64(p)}
}

// Copy overwrites dst with src. Exists (rather than a bare `*dst = src`) to
// match the Mul/Div destination-pointer calling convention used throughout
// the BG engine's hot VO-progression paths.
func Copy(dst *Value, src Value) {
	*dst = src
}

func mulmod(a, b uint64, p Prime) uint64 {
	return (a * b) % uint64(p)
}

// Mul computes dst = a*b, multiplying both the value and the inverse
// componentwise mod p: (a*b)^-1 = a^-1 * b^-1.
func Mul(dst *Value, a, b Value, p Prime) {
	av, ai := a.Val, a.Inv
	bv, bi := b.Val, b.Inv
	dst.Val = mulmod(av, bv, p)
	dst.Inv = mulmod(ai, bi, p)
}

// Div computes dst = num/den = num * den^-1. dst.Val = num.Val*den.Inv mod p;
// dst.Inv = den.Val*num.Inv mod p (the inverse of a quotient is the inverse
// of its reciprocal). Local copies of num/den are taken up front so that
// Div(dst, a, b, p) is safe to call even when dst aliases &a or &b.
func Div(dst *Value, num, den Value, p Prime) {
	nv, ninv := num.Val, num.Inv
	dv, dinv := den.Val, den.Inv
	dst.Val = mulmod(nv, dinv, p)
	dst.Inv = mulmod(dv, ninv, p)
}

// Modinv computes the modular inverse of a mod p via the extended Euclidean
// algorithm, tracked with the unsigned-safe recurrence the matching engines
// need: invariants t*a ≡ r (mod p) and tt*a ≡ rr (mod p), terminating when
// rr == 0 and returning t brought into [0, p).
//
// Every subtraction that could underflow in unsigned arithmetic instead
// computes t + p - (q*tt mod p), mirroring the same underflow-safe pattern
// the fingerprint package uses for its own modular subtractions.
func Modinv(a uint64, p Prime) uint64 {
	pu := uint64(p)
	a %= pu

	r, rr := pu, a
	t, tt := uint64(0), uint64(1)

	for rr != 0 {
		q := r / rr
		r, rr = rr, r-q*rr

		qtt := mulmod(q, tt, p)
		var next uint64
		if t >= qtt {
			next = t - qtt
		} else {
			next = t + pu - qtt
		}
		t, tt = tt, next
	}

	if r != 1 {
		panic(fmt.Sprintf("field: modinv(%d, %d): gcd != 1, value is not invertible mod p", a, pu))
	}
	return t % pu
}

// Sub computes (a - b) mod p using the unsigned-safe form a >= b ? a-b : p-b+a,
// avoiding the need for signed intermediate arithmetic. Used by fingerprint
// composition, not by Value itself, but lives here since it operates on raw
// field elements under the same modulus discipline.
func Sub(a, b uint64, p Prime) uint64 {
	pu := uint64(p)
	if a >= b {
		return a - b
	}
	return pu - b + a
}

// Add computes (a + b) mod p.
func Add(a, b uint64, p Prime) uint64 {
	return (a + b) % uint64(p)
}
