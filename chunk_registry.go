package wavefile

import (
	"fmt"

	"github.com/cwbudde/wavefile/chunks"
)

// ChunkHandler decodes one kind of chunk into a Container and writes it
// back. listType is the form type of LIST chunks and zero otherwise.
type ChunkHandler interface {
	CanHandle(chunkID [4]byte, listType [4]byte) bool
	// Decode receives the chunk payload without its pad byte.
	Decode(c *Container, ch chunks.Chunk, payload []byte) error
	// Encode writes the chunk if c holds one.
	Encode(c *Container, w *chunks.Writer) error
}

// ChunkRegistry resolves chunks to handlers.
type ChunkRegistry struct {
	handlers []ChunkHandler
}

// NewChunkRegistry returns a registry holding only the given handlers.
// Chunks none of them handles are kept as RawChunks.
func NewChunkRegistry(handlers ...ChunkHandler) *ChunkRegistry {
	return &ChunkRegistry{handlers: handlers}
}

// DefaultChunkRegistry returns a registry with handlers for every chunk
// this package decodes.
func DefaultChunkRegistry() *ChunkRegistry {
	return NewChunkRegistry(
		&junkChunkHandler{},
		&ds64ChunkHandler{},
		&bextChunkHandler{},
		&factChunkHandler{},
		&cueChunkHandler{},
		&smplChunkHandler{},
		&listChunkHandler{},
		&cartChunkHandler{},
	)
}

var defaultRegistry = DefaultChunkRegistry()

// Register appends a handler to the registry.
func (r *ChunkRegistry) Register(handler ChunkHandler) {
	if r == nil || handler == nil {
		return
	}

	r.handlers = append(r.handlers, handler)
}

// decode dispatches a chunk to the first matching handler.
func (r *ChunkRegistry) decode(c *Container, ch chunks.Chunk, buf []byte) (bool, error) {
	if r == nil {
		return false, nil
	}

	for _, handler := range r.handlers {
		if handler.CanHandle(ch.ID, ch.Format) {
			if err := handler.Decode(c, ch, ch.Payload(buf)); err != nil {
				return true, fmt.Errorf("chunk handler decode of %q failed: %w", idString(ch.ID), err)
			}

			return true, nil
		}
	}

	return false, nil
}

// encode writes, in the order of ids, the chunks of the handlers accepting
// one of ids. With no ids it writes the chunks of every handler not in
// done. Handlers that ran are added to done.
func (r *ChunkRegistry) encode(c *Container, w *chunks.Writer, done map[ChunkHandler]bool, ids ...[4]byte) error {
	if r == nil {
		return nil
	}

	run := func(h ChunkHandler) error {
		done[h] = true

		if err := h.Encode(c, w); err != nil {
			return fmt.Errorf("chunk handler encode failed: %w", err)
		}

		return nil
	}

	if len(ids) == 0 {
		for _, h := range r.handlers {
			if !done[h] {
				if err := run(h); err != nil {
					return err
				}
			}
		}

		return nil
	}

	for _, id := range ids {
		for _, h := range r.handlers {
			if done[h] || !h.CanHandle(id, [4]byte{}) {
				continue
			}

			if err := run(h); err != nil {
				return err
			}
		}
	}

	return nil
}

// FactChunk holds the sample count of a compressed file.
type FactChunk struct {
	SampleLength uint32
	Extra        []byte
}

type factChunkHandler struct{}

func (h *factChunkHandler) CanHandle(chunkID [4]byte, _ [4]byte) bool {
	return chunkID == CIDFact
}

func (h *factChunkHandler) Decode(c *Container, _ chunks.Chunk, payload []byte) error {
	r := newFieldReader(c.order(), payload)

	fact := &FactChunk{SampleLength: r.uint32("sample length")}
	if r.err != nil {
		return r.err
	}

	fact.Extra = r.rest()
	c.Fact = fact

	return nil
}

func (h *factChunkHandler) Encode(c *Container, w *chunks.Writer) error {
	if c.Fact == nil {
		return nil
	}

	fw := newFieldWriter(c.order())
	fw.uint32(c.Fact.SampleLength)
	fw.raw(c.Fact.Extra)
	w.WriteChunk(CIDFact, fw.Bytes())

	return nil
}

// DS64Chunk holds the 64-bit sizes of an RF64 file, in the field order of
// EBU Tech 3306.
type DS64Chunk struct {
	RIFFSize    uint64
	DataSize    uint64
	SampleCount uint64
	TableLength uint32
	Table       []byte
}

const ds64FixedSize = 28

type ds64ChunkHandler struct{}

func (h *ds64ChunkHandler) CanHandle(chunkID [4]byte, _ [4]byte) bool {
	return chunkID == CIDDS64
}

func (h *ds64ChunkHandler) Decode(c *Container, _ chunks.Chunk, payload []byte) error {
	if len(payload) < ds64FixedSize {
		return fmt.Errorf("%w: ds64 chunk of %d bytes", ErrMalformedChunk, len(payload))
	}

	r := newFieldReader(c.order(), payload)

	read64 := func(name string) uint64 {
		low := r.uint32(name)
		high := r.uint32(name)

		return uint64(high)<<32 | uint64(low)
	}

	ds64 := &DS64Chunk{}
	ds64.RIFFSize = read64("riff size")
	ds64.DataSize = read64("data size")
	ds64.SampleCount = read64("sample count")
	ds64.TableLength = r.uint32("table length")
	ds64.Table = r.rest()
	c.DS64 = ds64

	return nil
}

func (h *ds64ChunkHandler) Encode(c *Container, w *chunks.Writer) error {
	if c.DS64 == nil {
		return nil
	}

	w.WriteChunk(CIDDS64, encodeDS64(c.order(), c.DS64))

	return nil
}

func encodeDS64(order byteOrder, ds64 *DS64Chunk) []byte {
	fw := newFieldWriter(order)

	for _, v := range []uint64{ds64.RIFFSize, ds64.DataSize, ds64.SampleCount} {
		fw.uint32(uint32(v))
		fw.uint32(uint32(v >> 32))
	}

	fw.uint32(ds64.TableLength)
	fw.raw(ds64.Table)

	return fw.Bytes()
}

type junkChunkHandler struct{}

func (h *junkChunkHandler) CanHandle(chunkID [4]byte, _ [4]byte) bool {
	return chunkID == CIDJunk
}

func (h *junkChunkHandler) Decode(c *Container, _ chunks.Chunk, payload []byte) error {
	c.Junk = append([]byte{}, payload...)

	return nil
}

func (h *junkChunkHandler) Encode(c *Container, w *chunks.Writer) error {
	if c.Junk != nil {
		w.WriteChunk(CIDJunk, c.Junk)
	}

	return nil
}
