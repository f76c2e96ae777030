package wavefile

import (
	"fmt"

	"github.com/cwbudde/wavefile/chunks"
)

// Container is a decoded WAVE file: the fmt chunk, the raw sample bytes
// of the data chunk and every metadata chunk around them.
type Container struct {
	// Kind is CIDRIFF, CIDRIFX or CIDRF64.
	Kind [4]byte
	// Size is the container size read from the file header.
	Size uint32

	Fmt  Format
	Fact *FactChunk
	DS64 *DS64Chunk
	Bext *BroadcastExtension
	Cart *Cart
	Cue  *CueChunk
	Smpl *SamplerInfo
	// Lists holds the LIST chunks in file order.
	Lists []*ListChunk
	Junk  []byte
	// Data is the payload of the data chunk in file byte order.
	Data []byte
	// Unknown keeps the chunks no handler decoded.
	Unknown []RawChunk

	registry *ChunkRegistry
}

// ParseContainer decodes a RIFF, RIFX or RF64 WAVE file held in buf.
func ParseContainer(buf []byte) (*Container, error) {
	return ParseContainerWithRegistry(buf, defaultRegistry)
}

// ParseContainerWithRegistry decodes a WAVE file with a custom set of chunk
// handlers. The registry is kept to serialize the container again.
func ParseContainerWithRegistry(buf []byte, registry *ChunkRegistry) (*Container, error) {
	tree, err := chunks.Parse(buf)
	if err != nil {
		return nil, err
	}

	c := &Container{Kind: tree.ID, Size: tree.Size, registry: registry}

	var dataSeen bool

	for _, ch := range tree.Chunks {
		switch ch.ID {
		case CIDFmt:
			if c.Fmt != nil {
				logger.Debugf("skipping duplicate fmt chunk at %d", ch.Start-8)
				continue
			}

			c.Fmt, err = decodeFormat(c.order(), ch.Payload(buf))
			if err != nil {
				return nil, err
			}
		case CIDData:
			if dataSeen {
				logger.Debugf("skipping duplicate data chunk at %d", ch.Start-8)
				continue
			}

			c.Data = append([]byte{}, ch.Payload(buf)...)
			dataSeen = true
		default:
			handled, err := registry.decode(c, ch, buf)
			if err != nil {
				return nil, err
			}

			if !handled {
				logger.Debugf("keeping unknown chunk %q", ch.ID[:])
				c.Unknown = append(c.Unknown, RawChunk{
					ID:         ch.ID,
					Data:       append([]byte(nil), ch.Payload(buf)...),
					BeforeData: !dataSeen,
				})
			}
		}
	}

	if c.Fmt == nil {
		return nil, fmt.Errorf("%w: fmt", ErrMissingChunk)
	}

	if !dataSeen {
		return nil, fmt.Errorf("%w: data", ErrMissingChunk)
	}

	return c, nil
}

// SerializeContainer writes c as a WAVE file. Chunks come in the order
// junk, ds64, bext, fmt, fact, data, cue, smpl, LIST, cart. Unknown chunks
// read before the data chunk go right before it, the others go last. An
// RF64 container gets a ds64 chunk carrying its real sizes.
func SerializeContainer(c *Container) ([]byte, error) {
	if c == nil || c.Fmt == nil {
		return nil, fmt.Errorf("%w: fmt", ErrMissingChunk)
	}

	kind := c.Kind
	if kind == [4]byte{} {
		kind = CIDRIFF
	}

	w, err := chunks.NewWriter(kind)
	if err != nil {
		return nil, err
	}

	registry := c.registry
	if registry == nil {
		registry = defaultRegistry
	}

	// Handlers see a shallow copy so the ds64 sizes never leak into c.
	out := *c
	out.Kind = kind

	if kind == CIDRF64 {
		ds64 := &DS64Chunk{}
		if c.DS64 != nil {
			*ds64 = *c.DS64
		}

		ds64.DataSize = uint64(len(c.Data))

		switch align := c.Fmt.Header().BlockAlign; {
		case c.Fact != nil:
			ds64.SampleCount = uint64(c.Fact.SampleLength)
		case align > 0:
			ds64.SampleCount = uint64(len(c.Data) / int(align))
		}

		out.DS64 = ds64
	} else {
		out.DS64 = nil
	}

	done := map[ChunkHandler]bool{}

	if err := registry.encode(&out, w, done, CIDJunk, CIDDS64, CIDBext); err != nil {
		return nil, err
	}

	w.WriteChunk(CIDFmt, encodeFormat(out.order(), out.Fmt))

	if err := registry.encode(&out, w, done, CIDFact); err != nil {
		return nil, err
	}

	for _, raw := range out.Unknown {
		if raw.BeforeData {
			w.WriteChunk(raw.ID, raw.Data)
		}
	}

	w.WriteChunk(CIDData, out.Data)

	if err := registry.encode(&out, w, done, CIDCue, CIDSmpl, CIDList, CIDCart); err != nil {
		return nil, err
	}

	if err := registry.encode(&out, w, done); err != nil {
		return nil, err
	}

	for _, raw := range out.Unknown {
		if !raw.BeforeData {
			w.WriteChunk(raw.ID, raw.Data)
		}
	}

	buf, err := w.Bytes()
	if err != nil {
		return nil, err
	}

	if kind == CIDRF64 {
		if err := patchRF64Size(buf); err != nil {
			return nil, err
		}
	}

	return buf, nil
}

// patchRF64Size stores the final file size in the ds64 chunk of buf.
func patchRF64Size(buf []byte) error {
	tree, err := chunks.Parse(buf)
	if err != nil {
		return err
	}

	ds64, ok := tree.Find(CIDDS64)
	if !ok || ds64.Len() < 8 {
		return fmt.Errorf("%w: ds64", ErrMissingChunk)
	}

	size := uint64(len(buf) - 8)
	if _, err := littleEndian.u32.Pack(buf, ds64.Start, float64(uint32(size))); err != nil {
		return err
	}

	_, err = littleEndian.u32.Pack(buf, ds64.Start+4, float64(uint32(size>>32)))

	return err
}

// Bytes is SerializeContainer(c).
func (c *Container) Bytes() ([]byte, error) {
	return SerializeContainer(c)
}

// BigEndian reports whether c is a RIFX container.
func (c *Container) BigEndian() bool {
	return c.Kind == CIDRIFX
}

func (c *Container) order() byteOrder {
	return orderFor(c.Kind)
}

func (c *Container) clone() *Container {
	out := *c

	if c.Fmt != nil {
		out.Fmt = c.Fmt.clone()
	}

	if c.Fact != nil {
		fact := *c.Fact
		fact.Extra = append([]byte(nil), c.Fact.Extra...)
		out.Fact = &fact
	}

	if c.DS64 != nil {
		ds64 := *c.DS64
		ds64.Table = append([]byte(nil), c.DS64.Table...)
		out.DS64 = &ds64
	}

	out.Bext = c.Bext.clone()
	out.Cart = c.Cart.clone()
	out.Cue = c.Cue.clone()
	out.Smpl = c.Smpl.clone()
	out.Lists = cloneLists(c.Lists)
	out.Junk = append([]byte(nil), c.Junk...)
	out.Data = append([]byte(nil), c.Data...)
	out.Unknown = cloneRawChunks(c.Unknown)

	return &out
}
