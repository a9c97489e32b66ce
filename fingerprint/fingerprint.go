// Package fingerprint implements Karp-Rabin rolling fingerprints over a
// prime field, with the prefix/suffix composition identities the BG engine
// uses to splice fingerprints of adjacent byte ranges without rehashing
// them.
//
// For a byte sequence s[0..n), fingerprint fp(s) = Σ s[i]*r^i (mod p). All
// five operations below hold these identities exactly (mod p):
//
//	fp(a·b)       = fp(a) + r^|a| * fp(b)
//	fp(b)         = (fp(a·b) − fp(a)) * r^-|a|
//	fp(a)         = fp(a·b) − r^|a| * fp(b)
package fingerprint

import "github.com/coregx/streammatch/field"

func mulmod(a, b uint64, p field.Prime) uint64 {
	return (a * b) % uint64(p)
}

// FP computes the fingerprint of seq under base r in field p, returning both
// the fingerprint and r^len (as a field.Value, so callers can later divide
// by it without recomputing a modular inverse).
func FP(seq []byte, r field.Value, p field.Prime) (fp uint64, rlen field.Value) {
	rlen = field.One(p)
	for _, c := range seq {
		fp = field.Add(fp, mulmod(uint64(c), rlen.Val, p), p)
		var next field.Value
		field.Mul(&next, rlen, r, p)
		rlen = next
	}
	return fp, rlen
}

// Extend continues hashing extra bytes onto an already-computed prefix
// fingerprint, returning the fingerprint and r-power of the combined
// sequence. Equivalent to FP(prefix+extra, r, p) but does not re-walk
// prefix.
func Extend(extra []byte, prefixFP uint64, prefixRLen field.Value, r field.Value, p field.Prime) (fp uint64, rlen field.Value) {
	fp, rlen = prefixFP, prefixRLen
	for _, c := range extra {
		fp = field.Add(fp, mulmod(uint64(c), rlen.Val, p), p)
		var next field.Value
		field.Mul(&next, rlen, r, p)
		rlen = next
	}
	return fp, rlen
}

// Suffix computes fp(b) given fp(a·b), fp(a), and r^|a|:
// fp(b) = (fp(a·b) − fp(a)) * r^-|a|.
func Suffix(allFP, prefixFP uint64, prefixRLen field.Value, p field.Prime) uint64 {
	diff := field.Sub(allFP, prefixFP, p)
	return mulmod(diff, prefixRLen.Inv, p)
}

// Prefix computes fp(a) given fp(a·b), fp(b), and r^|a|:
// fp(a) = fp(a·b) − r^|a| * fp(b).
func Prefix(allFP, suffixFP uint64, prefixRLen field.Value, p field.Prime) uint64 {
	return field.Sub(allFP, mulmod(suffixFP, prefixRLen.Val, p), p)
}

// Concat computes fp(a·b) given fp(a), fp(b), and r^|a|:
// fp(a·b) = fp(a) + r^|a| * fp(b).
func Concat(prefixFP, suffixFP uint64, prefixRLen field.Value, p field.Prime) uint64 {
	return field.Add(prefixFP, mulmod(suffixFP, prefixRLen.Val, p), p)
}
