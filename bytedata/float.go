package bytedata

import "math"

// floatLayout returns the exponent and stored fraction widths of an IEEE-754
// binary16/32/64 value.
func floatLayout(bits int) (ebits, fbits int) {
	switch bits {
	case 16:
		return 5, 10
	case 32:
		return 8, 23
	default:
		return 11, 52
	}
}

// packFloat writes v little-endian into field using the IEEE-754 bit rules.
// It never goes through a native float32, so 16-bit floats and float32
// rounding share one path.
func packFloat(field []byte, v float64, ebits, fbits int) {
	bias := 1<<(ebits-1) - 1
	expMax := uint64(1)<<ebits - 1
	implicit := math.Exp2(float64(fbits))

	var (
		sign     uint64
		exp      uint64
		fraction uint64
	)

	if !math.IsNaN(v) && math.Signbit(v) {
		sign = 1
	}

	num := math.Abs(v)

	switch {
	case math.IsNaN(num):
		exp = expMax
		fraction = uint64(1) << (fbits - 1)
	case math.IsInf(num, 0):
		exp = expMax
	case num == 0:
	case num >= math.Exp2(float64(1-bias)):
		frac, e := math.Frexp(num)
		e--

		f := math.RoundToEven(frac * 2 * implicit)
		if f >= 2*implicit {
			e++
			f = implicit
		}

		if e > bias {
			exp = expMax
		} else {
			exp = uint64(e + bias)
			fraction = uint64(f - implicit)
		}
	default:
		// Subnormal. A fraction that rounds up to the implicit bit carries
		// into the exponent field, which yields the smallest normal value.
		fraction = uint64(math.RoundToEven(math.Ldexp(num, fbits+bias-1)))
	}

	bits := (sign<<(ebits+fbits) | exp<<fbits) + fraction
	for i := range field {
		field[i] = byte(bits >> (8 * i))
	}
}

func unpackFloat(field []byte, ebits, fbits int) float64 {
	var bits uint64
	for i := len(field) - 1; i >= 0; i-- {
		bits = bits<<8 | uint64(field[i])
	}

	bias := 1<<(ebits-1) - 1
	expMax := uint64(1)<<ebits - 1

	negative := bits>>(ebits+fbits)&1 == 1
	exp := bits >> fbits & expMax
	fraction := bits & (uint64(1)<<fbits - 1)

	var v float64

	switch exp {
	case expMax:
		if fraction != 0 {
			return math.NaN()
		}

		v = math.Inf(1)
	case 0:
		v = math.Ldexp(float64(fraction), 1-bias-fbits)
	default:
		v = math.Ldexp(float64(fraction|uint64(1)<<fbits), int(exp)-bias-fbits)
	}

	if negative {
		return math.Copysign(v, -1)
	}

	return v
}
