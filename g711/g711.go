// Package g711 implements the A-law and mu-law companders of ITU-T G.711
// used by WAVE files with format tags 6 and 7.
//
// Both are stateless and map one signed 16-bit sample to one byte.
package g711

import "math/bits"

const (
	muLawBias = 0x84
	clip      = 32635
)

// aLawSegment maps the top 7 magnitude bits of a sample to its A-law
// exponent. muLawSegment does the same for the top 8 bits of a biased
// mu-law sample.
var (
	aLawSegment  [128]byte
	muLawSegment [256]byte
)

func init() {
	for i := range aLawSegment {
		aLawSegment[i] = byte(max(1, bits.Len(uint(i))))
	}

	for i := range muLawSegment {
		muLawSegment[i] = byte(max(0, bits.Len(uint(i))-1))
	}
}

// EncodeALawSample compresses one sample.
func EncodeALawSample(sample int16) byte {
	s := int(sample)
	if s == -32768 {
		s = -32767
	}

	sign := (^s >> 8) & 0x80
	if sign == 0 {
		s = -s
	}

	s = min(s, clip)

	var v int
	if s >= 256 {
		exp := int(aLawSegment[(s>>8)&0x7F])
		v = exp<<4 | (s>>(exp+3))&0x0F
	} else {
		v = s >> 4
	}

	return byte(v ^ (sign ^ 0x55))
}

// DecodeALawSample expands one A-law byte.
func DecodeALawSample(b byte) int16 {
	v := b ^ 0x55
	exp := (v >> 4) & 0x07

	s := int(v&0x0F) << 4
	switch exp {
	case 0:
		s += 8
	case 1:
		s += 0x108
	default:
		s = (s + 0x108) << (exp - 1)
	}

	if v&0x80 == 0 {
		s = -s
	}

	return int16(s)
}

// EncodeMuLawSample compresses one sample.
func EncodeMuLawSample(sample int16) byte {
	s := int(sample)

	sign := (s >> 8) & 0x80
	if sign != 0 {
		s = -s
	}

	s = min(s, clip) + muLawBias

	exp := int(muLawSegment[(s>>7)&0xFF])
	mant := (s >> (exp + 3)) & 0x0F

	return ^byte(sign | exp<<4 | mant)
}

// DecodeMuLawSample expands one mu-law byte.
func DecodeMuLawSample(b byte) int16 {
	v := ^b
	exp := (v >> 4) & 0x07
	mant := int(v & 0x0F)

	s := (mant<<3+muLawBias)<<exp - muLawBias
	if v&0x80 != 0 {
		s = -s
	}

	return int16(s)
}

// EncodeALaw compresses samples into one byte each.
func EncodeALaw(samples []int16) []byte {
	out := make([]byte, len(samples))
	for i, s := range samples {
		out[i] = EncodeALawSample(s)
	}

	return out
}

// DecodeALaw expands A-law bytes.
func DecodeALaw(data []byte) []int16 {
	out := make([]int16, len(data))
	for i, b := range data {
		out[i] = DecodeALawSample(b)
	}

	return out
}

// EncodeMuLaw compresses samples into one byte each.
func EncodeMuLaw(samples []int16) []byte {
	out := make([]byte, len(samples))
	for i, s := range samples {
		out[i] = EncodeMuLawSample(s)
	}

	return out
}

// DecodeMuLaw expands mu-law bytes.
func DecodeMuLaw(data []byte) []int16 {
	out := make([]int16, len(data))
	for i, b := range data {
		out[i] = DecodeMuLawSample(b)
	}

	return out
}
