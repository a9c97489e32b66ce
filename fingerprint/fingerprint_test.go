package fingerprint

import (
	"bytes"
	"testing"

	"github.com/coregx/streammatch/field"
)

const testPrime = field.DefaultPrime

var testR = field.NewValue(131, testPrime)

func TestConcatMatchesWholeFingerprint(t *testing.T) {
	a := []byte("ABCDAB")
	b := []byte("DABC")
	whole := append(append([]byte{}, a...), b...)

	wantFP, _ := FP(whole, testR, testPrime)

	faFP, faR := FP(a, testR, testPrime)
	fbFP, _ := FP(b, testR, testPrime)

	got := Concat(faFP, fbFP, faR, testPrime)
	if got != wantFP {
		t.Fatalf("Concat(fp(a),fp(b),r^|a|) = %d, want fp(a.b) = %d", got, wantFP)
	}
}

func TestSuffixRecoversB(t *testing.T) {
	a := []byte("hello")
	b := []byte("world123")
	whole := append(append([]byte{}, a...), b...)

	wholeFP, _ := FP(whole, testR, testPrime)
	aFP, aR := FP(a, testR, testPrime)
	bFP, _ := FP(b, testR, testPrime)

	got := Suffix(wholeFP, aFP, aR, testPrime)
	if got != bFP {
		t.Fatalf("Suffix(fp(a.b),fp(a),r^|a|) = %d, want fp(b) = %d", got, bFP)
	}
}

func TestPrefixRecoversA(t *testing.T) {
	a := []byte("prefix-chunk")
	b := []byte("-suffix-chunk")
	whole := append(append([]byte{}, a...), b...)

	wholeFP, _ := FP(whole, testR, testPrime)
	aFP, aR := FP(a, testR, testPrime)
	bFP, _ := FP(b, testR, testPrime)

	got := Prefix(wholeFP, bFP, aR, testPrime)
	if got != aFP {
		t.Fatalf("Prefix(fp(a.b),fp(b),r^|a|) = %d, want fp(a) = %d", got, aFP)
	}
}

func TestExtendMatchesFreshFP(t *testing.T) {
	prefix := []byte("0123456789")
	extra := []byte("abcdefgh")
	whole := append(append([]byte{}, prefix...), extra...)

	prefixFP, prefixR := FP(prefix, testR, testPrime)
	extendedFP, extendedR := Extend(extra, prefixFP, prefixR, testR, testPrime)

	wantFP, wantR := FP(whole, testR, testPrime)
	if extendedFP != wantFP {
		t.Fatalf("Extend fp = %d, want %d", extendedFP, wantFP)
	}
	if extendedR.Val != wantR.Val || extendedR.Inv != wantR.Inv {
		t.Fatalf("Extend r^len = %+v, want %+v", extendedR, wantR)
	}
}

func TestFPZeroBytesAndHighBytes(t *testing.T) {
	seq := []byte{0x00, 0xFF, 0x00, 0xFF, 0x01}
	fp1, r1 := FP(seq, testR, testPrime)
	fp2, r2 := FP(bytes.Clone(seq), testR, testPrime)
	if fp1 != fp2 || r1 != r2 {
		t.Fatalf("FP not deterministic for zero/0xFF bytes")
	}
}

func TestFPEmptySequence(t *testing.T) {
	fp, r := FP(nil, testR, testPrime)
	if fp != 0 {
		t.Fatalf("FP(nil) fingerprint = %d, want 0", fp)
	}
	if r.Val != 1 {
		t.Fatalf("FP(nil) r^0 = %d, want 1", r.Val)
	}
}
