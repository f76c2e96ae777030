package wavefile

import (
	"fmt"

	"github.com/cwbudde/wavefile/chunks"
)

// smpl chunk is documented here:
// https://sites.google.com/site/musicgapi/technical-documents/wav-file-format#smpl

const smplLoopSize = 24

// SamplerInfo is the smpl chunk: playback hints for samplers.
type SamplerInfo struct {
	// Manufacturer is the MIDI manufacturer code, 0 for none.
	Manufacturer uint32
	// Product is the manufacturer specific product code.
	Product uint32
	// SamplePeriod is the duration of one sample in nanoseconds.
	SamplePeriod uint32
	// MIDIUnityNote is the note that plays the sample unpitched, 0..127.
	MIDIUnityNote     uint32
	MIDIPitchFraction uint32
	SMPTEFormat       uint32
	SMPTEOffset       uint32
	// SamplerData is the size of the sampler specific data after the loops.
	SamplerData uint32
	Loops       []SampleLoop
	// Data holds the sampler specific bytes after the loops.
	Data []byte
}

// SampleLoop is one loop of a smpl chunk.
type SampleLoop struct {
	// CuePointID links the loop to a cue point and its adtl labels.
	CuePointID uint32
	// Type is 0 forward, 1 ping-pong, 2 backward.
	Type      uint32
	Start     uint32
	End       uint32
	Fraction  uint32
	PlayCount uint32
}

func (s *SamplerInfo) clone() *SamplerInfo {
	if s == nil {
		return nil
	}

	out := *s
	out.Loops = append([]SampleLoop(nil), s.Loops...)
	out.Data = append([]byte(nil), s.Data...)

	return &out
}

type smplChunkHandler struct{}

func (h *smplChunkHandler) CanHandle(chunkID [4]byte, _ [4]byte) bool {
	return chunkID == CIDSmpl
}

func (h *smplChunkHandler) Decode(c *Container, _ chunks.Chunk, payload []byte) error {
	r := newFieldReader(c.order(), payload)

	smpl := &SamplerInfo{}
	smpl.Manufacturer = r.uint32("manufacturer")
	smpl.Product = r.uint32("product")
	smpl.SamplePeriod = r.uint32("sample period")
	smpl.MIDIUnityNote = r.uint32("MIDI unity note")
	smpl.MIDIPitchFraction = r.uint32("MIDI pitch fraction")
	smpl.SMPTEFormat = r.uint32("SMPTE format")
	smpl.SMPTEOffset = r.uint32("SMPTE offset")
	numLoops := r.uint32("number of sample loops")
	smpl.SamplerData = r.uint32("sampler data")

	if r.err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedChunk, r.err)
	}

	if int(numLoops) > r.remaining()/smplLoopSize {
		return fmt.Errorf("%w: %d sample loops in %d bytes", ErrMalformedChunk, numLoops, len(payload))
	}

	smpl.Loops = make([]SampleLoop, 0, numLoops)

	for range numLoops {
		var loop SampleLoop

		loop.CuePointID = r.uint32("sample loop cue point id")
		loop.Type = r.uint32("sample loop type")
		loop.Start = r.uint32("sample loop start")
		loop.End = r.uint32("sample loop end")
		loop.Fraction = r.uint32("sample loop fraction")
		loop.PlayCount = r.uint32("sample loop play count")
		smpl.Loops = append(smpl.Loops, loop)
	}

	smpl.Data = r.rest()
	c.Smpl = smpl

	return nil
}

func (h *smplChunkHandler) Encode(c *Container, w *chunks.Writer) error {
	if c.Smpl == nil {
		return nil
	}

	s := c.Smpl
	fw := newFieldWriter(c.order())

	for _, v := range []uint32{
		s.Manufacturer,
		s.Product,
		s.SamplePeriod,
		s.MIDIUnityNote,
		s.MIDIPitchFraction,
		s.SMPTEFormat,
		s.SMPTEOffset,
		uint32(len(s.Loops)),
		s.SamplerData,
	} {
		fw.uint32(v)
	}

	for _, loop := range s.Loops {
		fw.uint32(loop.CuePointID)
		fw.uint32(loop.Type)
		fw.uint32(loop.Start)
		fw.uint32(loop.End)
		fw.uint32(loop.Fraction)
		fw.uint32(loop.PlayCount)
	}

	fw.raw(s.Data)
	w.WriteChunk(CIDSmpl, fw.Bytes())

	return nil
}
