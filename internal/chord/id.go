package chord

import (
	"crypto/sha256"
	"math/big"
)

// idSpace returns 2^m as a big.Int, the size of the identifier ring.
func idSpace(m int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(m))
}

// HashID derives a node or key identifier from a socket address string.
//
// id = int(sha256(addr).hexdigest, 16) mod 2^m
//
// The address must be exactly "host:port" — no scheme, no trailing slash —
// to interoperate bit-for-bit with other implementations of this derivation.
func HashID(addr string, m int) *big.Int {
	sum := sha256.Sum256([]byte(addr))
	id := new(big.Int).SetBytes(sum[:])
	return id.Mod(id, idSpace(m))
}

// belongsTo reports whether x lies on the clockwise arc from a to b
// (inclusive of both ends) on the 2^m-ring. x < 0 (the sentinel id) never
// belongs to any arc.
//
//   - a <= b:  true iff a <= x <= b
//   - a > b:   wrap case, true iff a <= x < 2^m or 0 <= x <= b
func belongsTo(x, a, b *big.Int) bool {
	if x.Sign() < 0 {
		return false
	}
	cmp := a.Cmp(b)
	if cmp <= 0 {
		return a.Cmp(x) <= 0 && x.Cmp(b) <= 0
	}
	return a.Cmp(x) <= 0 || x.Cmp(b) <= 0
}

// arcMod reduces v modulo 2^m, wrapping negative values back into [0, 2^m).
func arcMod(v *big.Int, m int) *big.Int {
	space := idSpace(m)
	r := new(big.Int).Mod(v, space)
	if r.Sign() < 0 {
		r.Add(r, space)
	}
	return r
}

// addPow2 computes (base + 2^i) mod 2^m.
func addPow2(base *big.Int, i, m int) *big.Int {
	offset := new(big.Int).Lsh(big.NewInt(1), uint(i))
	sum := new(big.Int).Add(base, offset)
	return arcMod(sum, m)
}

// plusOne computes (v + 1) mod 2^m, the lower bound of a half-open arc (a, b].
func plusOne(v *big.Int, m int) *big.Int {
	return arcMod(new(big.Int).Add(v, big.NewInt(1)), m)
}

// minusOne computes (v - 1) mod 2^m, the upper bound of an open arc (a, b).
func minusOne(v *big.Int, m int) *big.Int {
	return arcMod(new(big.Int).Sub(v, big.NewInt(1)), m)
}
