// Package bitdepth names the sample representations a WAVE file can carry
// and converts sample streams between them.
//
// A Code is the short string used throughout the module: "8" to "53" for
// integer PCM, "32f" and "64" for IEEE floats, "4" for IMA ADPCM and "8a" /
// "8m" for A-law and mu-law.
package bitdepth

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/cwbudde/wavefile/bytedata"
)

// ErrInvalidBitDepth is returned for an unknown or malformed bit depth code.
var ErrInvalidBitDepth = errors.New("invalid bit depth")

// Code identifies a sample representation.
type Code string

const (
	ADPCM   Code = "4"
	PCM8    Code = "8"
	ALaw    Code = "8a"
	MuLaw   Code = "8m"
	PCM16   Code = "16"
	PCM24   Code = "24"
	PCM32   Code = "32"
	Float32 Code = "32f"
	Float64 Code = "64"
)

// Audio format tags of the fmt chunk.
const (
	FormatPCM        uint16 = 1
	FormatIEEEFloat  uint16 = 3
	FormatALaw       uint16 = 6
	FormatMuLaw      uint16 = 7
	FormatIMAADPCM   uint16 = 17
	FormatExtensible uint16 = 0xFFFE
)

// Depth is everything a Code implies about how samples are stored.
type Depth struct {
	Code Code
	// Bits is the nominal resolution: 4 for ADPCM, 8 for the companded
	// codes, the number itself for PCM and floats.
	Bits int
	// Format is the fmt chunk audio format tag.
	Format uint16
	// Storage is the type of one sample in the data chunk.
	Storage bytedata.Type
}

// Float reports whether samples are IEEE floats.
func (d Depth) Float() bool {
	return d.Storage.Float
}

// Compressed reports whether the data chunk holds ADPCM or companded
// bytes instead of linear samples.
func (d Depth) Compressed() bool {
	switch d.Code {
	case ADPCM, ALaw, MuLaw:
		return true
	default:
		return false
	}
}

// Codec returns the codec for one sample in the given byte order.
func (d Depth) Codec(bigEndian bool) *bytedata.Codec {
	return bytedata.MustCodec(d.Storage.WithBigEndian(bigEndian))
}

func (c Code) String() string {
	return string(c)
}

// Lookup validates c and returns its Depth.
func Lookup(c Code) (Depth, error) {
	switch c {
	case ADPCM:
		return Depth{Code: c, Bits: 4, Format: FormatIMAADPCM, Storage: bytedata.Uint8}, nil
	case ALaw:
		return Depth{Code: c, Bits: 8, Format: FormatALaw, Storage: bytedata.Uint8}, nil
	case MuLaw:
		return Depth{Code: c, Bits: 8, Format: FormatMuLaw, Storage: bytedata.Uint8}, nil
	case Float32:
		return Depth{Code: c, Bits: 32, Format: FormatIEEEFloat, Storage: bytedata.Float32}, nil
	case Float64:
		return Depth{Code: c, Bits: 64, Format: FormatIEEEFloat, Storage: bytedata.Float64}, nil
	}

	n, err := strconv.Atoi(string(c))
	if err != nil || n < 8 || n > bytedata.MaxIntBits || strconv.Itoa(n) != string(c) {
		return Depth{}, fmt.Errorf("%w: %q", ErrInvalidBitDepth, string(c))
	}

	// Samples wider than 48 bits take 7 bytes, but only 53 of those 56
	// bits can be carried exactly, so the field stays 53 bits wide.
	d := Depth{
		Code:    c,
		Bits:    n,
		Format:  FormatExtensible,
		Storage: bytedata.Type{Bits: min(StorageBits(n), bytedata.MaxIntBits), Signed: n > 8},
	}

	switch n {
	case 8, 16, 24, 32:
		d.Format = FormatPCM
	}

	return d, nil
}

// StorageBits rounds a nominal resolution up to whole bytes.
func StorageBits(bits int) int {
	return ((bits-1)|7) + 1
}

// FromFormat derives the code of a decoded fmt chunk. validBits is the
// valid bits field of an extensible header, 0 when absent. It only names
// the code when its storage width matches bitsPerSample, so 24 valid bits
// in 32-bit slots read as "32".
func FromFormat(format, bitsPerSample, validBits uint16) (Code, error) {
	var c Code

	switch {
	case format == FormatIEEEFloat && bitsPerSample == 32:
		c = Float32
	case format == FormatALaw:
		c = ALaw
	case format == FormatMuLaw:
		c = MuLaw
	case validBits > 0 && validBits < bitsPerSample && format != FormatIEEEFloat &&
		StorageBits(int(validBits)) == int(bitsPerSample):
		c = Code(strconv.Itoa(int(validBits)))
	default:
		c = Code(strconv.Itoa(int(bitsPerSample)))
	}

	if _, err := Lookup(c); err != nil {
		return "", fmt.Errorf("format %d with %d bits: %w", format, bitsPerSample, err)
	}

	return c, nil
}
