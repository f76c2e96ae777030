package wavefile

import (
	"bytes"

	"github.com/cwbudde/wavefile/chunks"
)

const (
	bextDescriptionLen         = 256
	bextOriginatorLen          = 32
	bextOriginatorReferenceLen = 32
	bextOriginationDateLen     = 10
	bextOriginationTimeLen     = 8
	bextUMIDLen                = 64
	bextReservedLen            = 180
	bextFixedSize              = 602
)

// BroadcastExtension is the bext chunk of EBU Tech 3285 (version 2).
type BroadcastExtension struct {
	Description         string
	Originator          string
	OriginatorReference string
	OriginationDate     string
	OriginationTime     string
	// TimeReference is the first sample count since midnight.
	TimeReference uint64
	Version       uint16
	UMID          [bextUMIDLen]byte
	// Loudness values are stored as 100 times their LUFS or LU value.
	LoudnessValue        uint16
	LoudnessRange        uint16
	MaxTruePeakLevel     uint16
	MaxMomentaryLoudness uint16
	MaxShortTermLoudness uint16
	Reserved             []byte
	CodingHistory        string
}

func (b *BroadcastExtension) clone() *BroadcastExtension {
	if b == nil {
		return nil
	}

	out := *b
	out.Reserved = append([]byte(nil), b.Reserved...)

	return &out
}

type bextChunkHandler struct{}

func (h *bextChunkHandler) CanHandle(chunkID [4]byte, _ [4]byte) bool {
	return chunkID == CIDBext
}

func (h *bextChunkHandler) Decode(c *Container, _ chunks.Chunk, payload []byte) error {
	r := newFieldReader(c.order(), payload)

	bext := &BroadcastExtension{}
	bext.Description = r.fixedString(bextDescriptionLen)
	bext.Originator = r.fixedString(bextOriginatorLen)
	bext.OriginatorReference = r.fixedString(bextOriginatorReferenceLen)
	bext.OriginationDate = r.fixedString(bextOriginationDateLen)
	bext.OriginationTime = r.fixedString(bextOriginationTimeLen)

	// Short chunks read as zero rather than failing.
	timeRefLow := r.uint32("time reference")
	timeRefHigh := r.uint32("time reference")
	bext.TimeReference = uint64(timeRefHigh)<<32 | uint64(timeRefLow)
	bext.Version = r.uint16("version")

	copy(bext.UMID[:], r.take(bextUMIDLen))
	bext.LoudnessValue = r.uint16("loudness value")
	bext.LoudnessRange = r.uint16("loudness range")
	bext.MaxTruePeakLevel = r.uint16("max true peak level")
	bext.MaxMomentaryLoudness = r.uint16("max momentary loudness")
	bext.MaxShortTermLoudness = r.uint16("max short term loudness")
	bext.Reserved = r.take(bextReservedLen)

	if rest := r.rest(); len(rest) > 0 {
		bext.CodingHistory = string(bytes.TrimRight(rest, "\x00"))
	}

	c.Bext = bext

	return nil
}

func (h *bextChunkHandler) Encode(c *Container, w *chunks.Writer) error {
	if c.Bext == nil {
		return nil
	}

	w.WriteChunk(CIDBext, encodeBroadcastChunk(c.order(), c.Bext))

	return nil
}

func encodeBroadcastChunk(order byteOrder, bext *BroadcastExtension) []byte {
	fw := newFieldWriter(order)
	fw.buf.Grow(bextFixedSize + len(bext.CodingHistory))

	fw.fixedString(bext.Description, bextDescriptionLen)
	fw.fixedString(bext.Originator, bextOriginatorLen)
	fw.fixedString(bext.OriginatorReference, bextOriginatorReferenceLen)
	fw.fixedString(bext.OriginationDate, bextOriginationDateLen)
	fw.fixedString(bext.OriginationTime, bextOriginationTimeLen)

	fw.uint32(uint32(bext.TimeReference))
	fw.uint32(uint32(bext.TimeReference >> 32))
	fw.uint16(bext.Version)
	fw.raw(bext.UMID[:])

	for _, v := range []uint16{
		bext.LoudnessValue,
		bext.LoudnessRange,
		bext.MaxTruePeakLevel,
		bext.MaxMomentaryLoudness,
		bext.MaxShortTermLoudness,
	} {
		fw.uint16(v)
	}

	reserved := make([]byte, bextReservedLen)
	copy(reserved, bext.Reserved)
	fw.raw(reserved)

	if bext.CodingHistory != "" {
		fw.buf.WriteString(bext.CodingHistory)
	}

	return fw.Bytes()
}
