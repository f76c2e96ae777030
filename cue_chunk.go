package wavefile

import (
	"fmt"

	"github.com/cwbudde/wavefile/chunks"
)

const cuePointSize = 24

// CueChunk is the cue chunk: a list of positions in the audio data.
type CueChunk struct {
	Points []CuePoint
}

// CuePoint marks a sample position. ID links the point to smpl loops and
// adtl labels.
type CuePoint struct {
	ID       uint32
	Position uint32
	// DataChunkID is the chunk holding the point, normally "data".
	DataChunkID  [4]byte
	ChunkStart   uint32
	BlockStart   uint32
	SampleOffset uint32
}

func (c *CueChunk) clone() *CueChunk {
	if c == nil {
		return nil
	}

	return &CueChunk{Points: append([]CuePoint(nil), c.Points...)}
}

type cueChunkHandler struct{}

func (h *cueChunkHandler) CanHandle(chunkID [4]byte, _ [4]byte) bool {
	return chunkID == CIDCue
}

func (h *cueChunkHandler) Decode(c *Container, _ chunks.Chunk, payload []byte) error {
	r := newFieldReader(c.order(), payload)

	count := r.uint32("cue point count")
	if r.err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedChunk, r.err)
	}

	if int(count) > r.remaining()/cuePointSize {
		return fmt.Errorf("%w: %d cue points in %d bytes", ErrMalformedChunk, count, len(payload))
	}

	cue := &CueChunk{Points: make([]CuePoint, 0, count)}

	for range count {
		var p CuePoint

		p.ID = r.uint32("cue point id")
		p.Position = r.uint32("cue point position")
		p.DataChunkID = r.id()
		p.ChunkStart = r.uint32("cue point chunk start")
		p.BlockStart = r.uint32("cue point block start")
		p.SampleOffset = r.uint32("cue point sample offset")
		cue.Points = append(cue.Points, p)
	}

	c.Cue = cue

	return nil
}

func (h *cueChunkHandler) Encode(c *Container, w *chunks.Writer) error {
	if c.Cue == nil {
		return nil
	}

	fw := newFieldWriter(c.order())
	fw.uint32(uint32(len(c.Cue.Points)))

	for _, p := range c.Cue.Points {
		fw.uint32(p.ID)
		fw.uint32(p.Position)
		fw.id(p.DataChunkID)
		fw.uint32(p.ChunkStart)
		fw.uint32(p.BlockStart)
		fw.uint32(p.SampleOffset)
	}

	w.WriteChunk(CIDCue, fw.Bytes())

	return nil
}
