package wavefile

import (
	"fmt"
	"math"

	"github.com/cwbudde/wavefile/adpcm"
	"github.com/cwbudde/wavefile/bitdepth"
)

// Fixed fmt fields of IMA ADPCM at 8 kHz mono.
const (
	adpcmByteRate = 4055
	adpcmCbSize   = 2
	extCbSize     = 22
)

// channelMasks maps channel counts to the speaker layout of extensible
// headers. Other counts get no mask.
var channelMasks = map[int]uint32{
	1: 0x4,   // FC
	2: 0x3,   // FL FR
	4: 0x33,  // FL FR BL BR
	6: 0x3F,  // FL FR FC LF BL BR
	8: 0x63F, // FL FR FC LF BL BR SL SR
}

// makeFormat builds the fmt chunk for a new file. Codes and layouts plain
// WAVE can't describe, like 20-bit PCM or more than two channels, get an
// extensible header.
func makeFormat(channels, sampleRate int, d bitdepth.Depth) (Format, error) {
	bits := d.Bits

	if err := validateHeader(channels, sampleRate, bitdepth.StorageBits(bits)); err != nil {
		return nil, err
	}

	bytesPerSample := bitdepth.StorageBits(bits) / 8

	basic := BasicFormat{
		AudioFormat:   d.Format,
		NumChannels:   uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(channels * bytesPerSample * sampleRate),
		BlockAlign:    uint16(channels * bytesPerSample),
		BitsPerSample: uint16(bits),
	}

	switch {
	case d.Code == bitdepth.ADPCM:
		basic.ByteRate = adpcmByteRate
		basic.BlockAlign = adpcm.BlockAlign
		basic.BitsPerSample = 4

		return &ExtendedFormat{
			BasicFormat:        basic,
			CbSize:             adpcmCbSize,
			ValidBitsPerSample: adpcm.SamplesPerBlock,
			HasValidBits:       true,
		}, nil
	case d.Compressed():
		return &ExtendedFormat{
			BasicFormat:        basic,
			CbSize:             adpcmCbSize,
			ValidBitsPerSample: 8,
			HasValidBits:       true,
		}, nil
	case d.Format == bitdepth.FormatExtensible || channels > 2:
		tag := bitdepth.FormatPCM
		if d.Float() {
			tag = bitdepth.FormatIEEEFloat
		}

		basic.AudioFormat = bitdepth.FormatExtensible
		basic.BitsPerSample = uint16(bitdepth.StorageBits(bits))

		return &ExtensibleFormat{
			BasicFormat:        basic,
			CbSize:             extCbSize,
			ValidBitsPerSample: uint16(bits),
			ChannelMask:        channelMasks[channels],
			SubFormat:          subFormatFor(tag),
			HasSubFormat:       true,
		}, nil
	default:
		return &basic, nil
	}
}

// validateHeader checks the channel count and sample rate against the
// ranges of the block align and byte rate fields.
func validateHeader(channels, sampleRate, bitsPerSample int) error {
	blockAlign := float64(channels) * float64(bitsPerSample) / 8
	if channels < 1 || blockAlign > math.MaxUint16 {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	if sampleRate < 1 || blockAlign*float64(sampleRate) > math.MaxUint32 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	return nil
}
