// Package adpcm implements the IMA ADPCM codec used by WAVE files with
// format tag 17.
//
// Samples are encoded in blocks of 505 16-bit samples, each taking 256
// bytes: a 4-byte header holding the first sample and the step index, then
// the remaining samples packed two per byte with the first one in the low
// nibble.
package adpcm

const (
	// BlockAlign is the size in bytes of one encoded block.
	BlockAlign = 256
	// SamplesPerBlock is the number of samples encoded in one block.
	SamplesPerBlock = 505

	headerSize = 4
	maxIndex   = 88
)

var indexTable = [16]int{
	-1, -1, -1, -1, 2, 4, 6, 8,
	-1, -1, -1, -1, 2, 4, 6, 8,
}

var stepTable = [maxIndex + 1]int32{
	7, 8, 9, 10, 11, 12, 13, 14,
	16, 17, 19, 21, 23, 25, 28, 31,
	34, 37, 41, 45, 50, 55, 60, 66,
	73, 80, 88, 97, 107, 118, 130, 143,
	157, 173, 190, 209, 230, 253, 279, 307,
	337, 371, 408, 449, 494, 544, 598, 658,
	724, 796, 876, 963, 1060, 1166, 1282, 1411,
	1552, 1707, 1878, 2066, 2272, 2499, 2749, 3024,
	3327, 3660, 4026, 4428, 4871, 5358, 5894, 6484,
	7132, 7845, 8630, 9493, 10442, 11487, 12635, 13899,
	15289, 16818, 18500, 20350, 22385, 24623, 27086, 29794,
	32767,
}

func clampIndex(i int) int {
	switch {
	case i < 0:
		return 0
	case i > maxIndex:
		return maxIndex
	default:
		return i
	}
}

// Encode compresses a 16-bit stream. The result is a whole number of
// blocks; the last one is zero padded.
func Encode(samples []int16) []byte {
	var enc Encoder

	n := (len(samples) + SamplesPerBlock - 1) / SamplesPerBlock
	out := make([]byte, 0, n*BlockAlign)

	for start := 0; start < len(samples); start += SamplesPerBlock {
		end := min(start+SamplesPerBlock, len(samples))
		out = append(out, enc.EncodeBlock(samples[start:end])...)
	}

	return out
}

// Decode expands an ADPCM stream made of blocks of blockAlign bytes. A
// blockAlign of 0 selects BlockAlign. A trailing block shorter than a
// header is ignored.
func Decode(data []byte, blockAlign int) []int16 {
	if blockAlign <= 0 {
		blockAlign = BlockAlign
	}

	var dec Decoder

	blocks := (len(data) + blockAlign - 1) / blockAlign
	out := make([]int16, 0, blocks*(1+2*(blockAlign-headerSize)))

	for start := 0; start < len(data); start += blockAlign {
		end := min(start+blockAlign, len(data))
		out = append(out, dec.DecodeBlock(data[start:end])...)
	}

	return out
}
