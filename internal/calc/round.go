package calc

import (
	"math"
	"math/big"
)

var (
	hundred = big.NewFloat(100)
	half    = big.NewFloat(0.5)
)

// Round2 rounds x to two decimal places the way the calculators have always
// presented numbers: the exact binary value is compared against the halfway
// point, ties go away from zero, and the result is the double closest to the
// two-decimal string. Negative zero is folded into zero.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	neg := x < 0
	// 53-bit mantissa times 100 fits comfortably in 128 bits, so the product is exact.
	f := new(big.Float).SetPrec(128).SetFloat64(math.Abs(x))
	f.Mul(f, hundred)

	n, _ := f.Int(nil) // truncation == floor for non-negative values
	frac := new(big.Float).SetPrec(128).Sub(f, new(big.Float).SetInt(n))
	if frac.Cmp(half) >= 0 {
		n.Add(n, big.NewInt(1))
	}
	if !n.IsInt64() {
		return x
	}
	r := float64(n.Int64()) / 100
	if r == 0 {
		return 0
	}
	if neg {
		return -r
	}
	return r
}
