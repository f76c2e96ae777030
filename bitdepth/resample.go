package bitdepth

import (
	"fmt"
	"math"
)

type transform func(s float64, r ranges) float64

type ranges struct {
	oldMin, oldMax float64
	newMin, newMax float64
}

func newRanges(from, to Depth) ranges {
	oldMin := math.Exp2(float64(from.Bits)) / 2
	newMin := math.Exp2(float64(to.Bits)) / 2

	return ranges{oldMin: oldMin, oldMax: oldMin - 1, newMin: newMin, newMax: newMin - 1}
}

// int to int keeps the asymmetric two's complement range: positive and
// negative samples are scaled by different ratios.
func intToInt(s float64, r ranges) float64 {
	if s > 0 {
		return math.Trunc(s / r.oldMax * r.newMax)
	}

	return math.Trunc(s / r.oldMin * r.newMin)
}

func floatToInt(s float64, r ranges) float64 {
	if s > 0 {
		return math.Trunc(s * r.newMax)
	}

	return math.Trunc(s * r.newMin)
}

func intToFloat(s float64, r ranges) float64 {
	if s > 0 {
		return s / r.oldMax
	}

	return s / r.oldMin
}

func narrowToFloat32(s float64, _ ranges) float64 {
	return float64(float32(s))
}

func same(s float64, _ ranges) float64 {
	return s
}

func resampleDepth(c Code) (Depth, error) {
	d, err := Lookup(c)
	if err != nil {
		return d, err
	}

	if d.Compressed() {
		return d, fmt.Errorf("%w: can't resample %q samples", ErrInvalidBitDepth, string(c))
	}

	return d, nil
}

func pickTransform(from, to Depth) transform {
	switch {
	case from.Code == to.Code:
		return same
	case from.Float() && to.Float():
		if to.Code == Float32 {
			return narrowToFloat32
		}

		return same
	case from.Float():
		return floatToInt
	case to.Float():
		return intToFloat
	default:
		return intToInt
	}
}

// Resample converts samples from one representation to another and
// returns the converted copy. Only linear codes ("8".."53", "32f", "64")
// can be resampled.
//
// "8" is unsigned in WAVE files, so 8-bit input is offset by -128 before
// scaling and 8-bit output by +128 after it. Float input is expected in
// [-1, 1]; run Truncate first when it may not be.
func Resample(samples []float64, from, to Code) ([]float64, error) {
	src, err := resampleDepth(from)
	if err != nil {
		return nil, err
	}

	dst, err := resampleDepth(to)
	if err != nil {
		return nil, err
	}

	fn := pickTransform(src, dst)
	r := newRanges(src, dst)

	out := make([]float64, len(samples))

	for i, s := range samples {
		if from == PCM8 {
			s -= 128
		}

		s = fn(s, r)

		if to == PCM8 {
			s += 128
		}

		out[i] = s
	}

	return out, nil
}

// Truncate clamps float samples to [-1, 1] in place.
func Truncate(samples []float64) {
	for i, s := range samples {
		samples[i] = max(-1, min(1, s))
	}
}
