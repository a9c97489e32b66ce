package bg

import "github.com/coregx/streammatch/field"

func mulmod(a, b uint64, p field.Prime) uint64 {
	return (a * b) % uint64(p)
}

// ceilLog2 returns the smallest k such that 2^k >= x, for x >= 1.
func ceilLog2(x int) int {
	if x <= 1 {
		return 0
	}
	k, v := 0, 1
	for v < x {
		v <<= 1
		k++
	}
	return k
}

// floorLog2 returns the largest k such that 2^k <= x, for x >= 1.
func floorLog2(x int) int {
	k := 0
	for (1 << uint(k+1)) <= x {
		k++
	}
	return k
}

// powValue computes r^k in field p via binary exponentiation. Used only at
// construction time, where an O(log k) loop of field.Mul calls is cheap
// compared to the per-character hot path.
func powValue(r field.Value, k int, p field.Prime) field.Value {
	result := field.One(p)
	base := r
	for k > 0 {
		if k&1 == 1 {
			var tmp field.Value
			field.Mul(&tmp, result, base, p)
			result = tmp
		}
		var sq field.Value
		field.Mul(&sq, base, base, p)
		base = sq
		k >>= 1
	}
	return result
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
