package wavefile

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"

	"github.com/cwbudde/wavefile/bitdepth"
)

// The fmt chunk grows optional fields with its size: cbSize past 16 bytes,
// valid bits past 18, the channel mask past 20 and the sub format past 24.
const (
	fmtBasicSize      = 16
	fmtCbSizeEnd      = 18
	fmtValidBitsEnd   = 20
	fmtChannelMaskEnd = 24
	fmtSubFormatEnd   = 40
)

// ksDataFormatTail is the last three words every KSDATAFORMAT sub format
// GUID shares. The first word holds the format tag.
var ksDataFormatTail = [3]uint32{0x00100000, 0xAA000080, 0x719B3800}

var (
	// KSDataFormatPCM is the sub format of extensible integer PCM.
	KSDataFormatPCM = uuid.MustParse("00000001-0000-0010-8000-00aa00389b71")
	// KSDataFormatIEEEFloat is the sub format of extensible float PCM.
	KSDataFormatIEEEFloat = uuid.MustParse("00000003-0000-0010-8000-00aa00389b71")
)

// Format is a decoded fmt chunk. The concrete type depends on the chunk
// size: *BasicFormat, *ExtendedFormat or *ExtensibleFormat.
type Format interface {
	// Header returns the 16 bytes every fmt chunk starts with.
	Header() *BasicFormat
	// EffectiveFormat is the audio format tag, looked up in the sub format
	// for extensible chunks.
	EffectiveFormat() uint16
	// ValidBits returns the valid bits per sample field, 0 when absent.
	ValidBits() uint16
	// Size is the size of the encoded chunk.
	Size() int

	encode(w *fieldWriter)
	clone() Format
}

// BasicFormat is a fmt chunk of 16 bytes. Extra keeps any trailing bytes the
// chunk holds past the last decoded field.
type BasicFormat struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Extra         []byte
}

func (f *BasicFormat) Header() *BasicFormat     { return f }
func (f *BasicFormat) EffectiveFormat() uint16 { return f.AudioFormat }
func (f *BasicFormat) ValidBits() uint16       { return 0 }
func (f *BasicFormat) Size() int               { return fmtBasicSize + len(f.Extra) }

func (f *BasicFormat) encodeHeader(w *fieldWriter) {
	w.uint16(f.AudioFormat)
	w.uint16(f.NumChannels)
	w.uint32(f.SampleRate)
	w.uint32(f.ByteRate)
	w.uint16(f.BlockAlign)
	w.uint16(f.BitsPerSample)
}

func (f *BasicFormat) encode(w *fieldWriter) {
	f.encodeHeader(w)
	w.raw(f.Extra)
}

func (f *BasicFormat) clone() Format {
	out := *f
	out.Extra = append([]byte(nil), f.Extra...)

	return &out
}

// ExtendedFormat is a fmt chunk of 18 to 23 bytes (WAVEFORMATEX).
type ExtendedFormat struct {
	BasicFormat
	CbSize             uint16
	ValidBitsPerSample uint16
	// HasValidBits is set when the chunk is long enough to hold
	// ValidBitsPerSample.
	HasValidBits bool
}

func (f *ExtendedFormat) ValidBits() uint16 { return f.ValidBitsPerSample }

func (f *ExtendedFormat) Size() int {
	n := fmtCbSizeEnd + len(f.Extra)
	if f.HasValidBits {
		n += 2
	}

	return n
}

func (f *ExtendedFormat) encode(w *fieldWriter) {
	f.encodeHeader(w)
	w.uint16(f.CbSize)

	if f.HasValidBits {
		w.uint16(f.ValidBitsPerSample)
	}

	w.raw(f.Extra)
}

func (f *ExtendedFormat) clone() Format {
	out := *f
	out.Extra = append([]byte(nil), f.Extra...)

	return &out
}

// ExtensibleFormat is a fmt chunk of 24 bytes or more
// (WAVEFORMATEXTENSIBLE). SubFormat holds the sub format GUID as the four
// 32-bit words stored in the file.
type ExtensibleFormat struct {
	BasicFormat
	CbSize             uint16
	ValidBitsPerSample uint16
	ChannelMask        uint32
	SubFormat          [4]uint32
	// HasSubFormat is set when the chunk is long enough to hold SubFormat.
	HasSubFormat bool
}

func (f *ExtensibleFormat) ValidBits() uint16 { return f.ValidBitsPerSample }

func (f *ExtensibleFormat) EffectiveFormat() uint16 {
	if f.HasSubFormat {
		return uint16(f.SubFormat[0])
	}

	return f.AudioFormat
}

func (f *ExtensibleFormat) Size() int {
	n := fmtChannelMaskEnd + len(f.Extra)
	if f.HasSubFormat {
		n += fmtSubFormatEnd - fmtChannelMaskEnd
	}

	return n
}

func (f *ExtensibleFormat) encode(w *fieldWriter) {
	f.encodeHeader(w)
	w.uint16(f.CbSize)
	w.uint16(f.ValidBitsPerSample)
	w.uint32(f.ChannelMask)

	if f.HasSubFormat {
		for _, word := range f.SubFormat {
			w.uint32(word)
		}
	}

	w.raw(f.Extra)
}

func (f *ExtensibleFormat) clone() Format {
	out := *f
	out.Extra = append([]byte(nil), f.Extra...)

	return &out
}

// GUID returns the sub format in canonical form.
func (f *ExtensibleFormat) GUID() uuid.UUID {
	var u uuid.UUID

	binary.BigEndian.PutUint32(u[0:4], f.SubFormat[0])
	binary.BigEndian.PutUint16(u[4:6], uint16(f.SubFormat[1]))
	binary.BigEndian.PutUint16(u[6:8], uint16(f.SubFormat[1]>>16))
	binary.LittleEndian.PutUint32(u[8:12], f.SubFormat[2])
	binary.LittleEndian.PutUint32(u[12:16], f.SubFormat[3])

	return u
}

// SetGUID stores a sub format given in canonical form.
func (f *ExtensibleFormat) SetGUID(u uuid.UUID) {
	f.SubFormat[0] = binary.BigEndian.Uint32(u[0:4])
	f.SubFormat[1] = uint32(binary.BigEndian.Uint16(u[4:6])) | uint32(binary.BigEndian.Uint16(u[6:8]))<<16
	f.SubFormat[2] = binary.LittleEndian.Uint32(u[8:12])
	f.SubFormat[3] = binary.LittleEndian.Uint32(u[12:16])
	f.HasSubFormat = true
}

func subFormatFor(tag uint16) [4]uint32 {
	return [4]uint32{uint32(tag), ksDataFormatTail[0], ksDataFormatTail[1], ksDataFormatTail[2]}
}

// decodeFormat picks the fmt variant from the payload length.
func decodeFormat(order byteOrder, payload []byte) (Format, error) {
	if len(payload) < fmtBasicSize {
		return nil, fmt.Errorf("%w: fmt chunk of %d bytes", ErrMalformedChunk, len(payload))
	}

	r := newFieldReader(order, payload)

	var basic BasicFormat

	basic.AudioFormat = r.uint16("audio format")
	basic.NumChannels = r.uint16("channel count")
	basic.SampleRate = r.uint32("sample rate")
	basic.ByteRate = r.uint32("byte rate")
	basic.BlockAlign = r.uint16("block align")
	basic.BitsPerSample = r.uint16("bits per sample")

	var f Format

	switch size := len(payload); {
	case size < fmtCbSizeEnd:
		f = &basic
	case size < fmtChannelMaskEnd:
		ext := &ExtendedFormat{BasicFormat: basic}
		ext.CbSize = r.uint16("cbSize")

		if size >= fmtValidBitsEnd {
			ext.ValidBitsPerSample = r.uint16("valid bits")
			ext.HasValidBits = true
		}

		f = ext
	default:
		ext := &ExtensibleFormat{BasicFormat: basic}
		ext.CbSize = r.uint16("cbSize")
		ext.ValidBitsPerSample = r.uint16("valid bits")
		ext.ChannelMask = r.uint32("channel mask")

		if size >= fmtSubFormatEnd {
			for i := range ext.SubFormat {
				ext.SubFormat[i] = r.uint32("sub format")
			}

			ext.HasSubFormat = true
		}

		f = ext
	}

	if r.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedChunk, r.err)
	}

	f.Header().Extra = r.rest()

	return f, nil
}

func encodeFormat(order byteOrder, f Format) []byte {
	w := newFieldWriter(order)
	f.encode(w)

	return w.Bytes()
}

// formatBitDepth derives the bit depth code of a fmt chunk.
func formatBitDepth(f Format) (bitdepth.Code, error) {
	h := f.Header()

	return bitdepth.FromFormat(f.EffectiveFormat(), h.BitsPerSample, f.ValidBits())
}
