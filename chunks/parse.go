package chunks

import (
	"fmt"

	"github.com/cwbudde/wavefile/bytedata"
	"github.com/cwbudde/wavefile/internal/logging"
)

var logger = logging.NewLogger("wavefile/chunks")

type parser struct {
	buf  []byte
	u32  *bytedata.Codec
	rf64 bool
	ds64 *Chunk
}

// Parse reads the container header and the chunk tree of buf.
func Parse(buf []byte) (*Tree, error) {
	if len(buf) < 4 {
		return nil, fmt.Errorf("%w: %d byte file", ErrUnsupportedContainer, len(buf))
	}

	t := &Tree{}
	copy(t.ID[:], buf[:4])

	switch t.ID {
	case RIFFID, RIFXID, RF64ID:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedContainer, t.ID[:])
	}

	if len(buf) < 12 {
		return nil, fmt.Errorf("%w: %d byte header", ErrMalformedChunk, len(buf))
	}

	p := &parser{
		buf:  buf,
		u32:  bytedata.MustCodec(bytedata.Uint32.WithBigEndian(t.ID == RIFXID)),
		rf64: t.ID == RF64ID,
	}

	size, err := p.u32.Unpack(buf, 4)
	if err != nil {
		return nil, fmt.Errorf("failed to read the container size: %w", err)
	}

	t.Size = uint32(size)
	copy(t.Format[:], buf[8:12])

	if t.Format != WAVEID {
		return nil, fmt.Errorf("%w: form type %q", ErrUnsupportedContainer, t.Format[:])
	}

	limit := len(buf)
	if t.Size != sizeUnknown && 8+int(t.Size) < limit {
		logger.Debugf("ignoring %d bytes past the declared container size", limit-8-int(t.Size))
		limit = 8 + int(t.Size)
	}

	t.Chunks, err = p.scan(12, limit)
	if err != nil {
		return nil, err
	}

	return t, nil
}

// scan reads consecutive chunks in buf[cursor:limit] until fewer than 8
// bytes remain.
func (p *parser) scan(cursor, limit int) ([]Chunk, error) {
	list := []Chunk{}

	for cursor+8 <= limit {
		c, next, err := p.parseChunk(cursor, limit)
		if err != nil {
			return nil, err
		}

		logger.Tracef("found chunk %s", c)

		list = append(list, c)
		cursor = next
	}

	return list, nil
}

// parseChunk reads the chunk whose header starts at cursor and returns it
// together with the cursor of the following chunk.
func (p *parser) parseChunk(cursor, limit int) (Chunk, int, error) {
	var c Chunk

	copy(c.ID[:], p.buf[cursor:cursor+4])

	size, err := p.u32.Unpack(p.buf, cursor+4)
	if err != nil {
		return c, cursor, fmt.Errorf("failed to read the %q chunk size: %w", c.ID[:], err)
	}

	c.Size = uint32(size)
	c.length = int(c.Size)

	c.Start = cursor + 8

	if p.rf64 && c.Size == sizeUnknown {
		c.length, err = p.rf64Length(c.ID, limit-c.Start)
		if err != nil {
			return c, cursor, err
		}
	}

	if c.length < 0 || c.length > limit-c.Start {
		return c, cursor, fmt.Errorf("%w: %q at %d declares %d bytes, only %d left",
			ErrMalformedChunk, c.ID[:], cursor, c.length, limit-c.Start)
	}

	next := c.Start + c.length + c.length%2
	c.End = min(next, limit)

	if c.ID == ListID && c.length >= 4 {
		copy(c.Format[:], p.buf[c.Start:c.Start+4])

		c.SubChunks, err = p.scan(c.Start+4, c.Start+c.length)
		if err != nil {
			return c, cursor, fmt.Errorf("failed to read LIST %q: %w", c.Format[:], err)
		}
	}

	if c.ID == DS64ID {
		ds64 := c
		p.ds64 = &ds64
	}

	return c, next, nil
}

// rf64Length resolves the real size of a chunk whose size field is
// 0xFFFFFFFF. Only the data chunk size is stored in ds64. left is the
// number of bytes after the chunk header.
func (p *parser) rf64Length(id [4]byte, left int) (int, error) {
	if p.ds64 == nil {
		return 0, fmt.Errorf("%w: ds64 must precede %q in an RF64 file", ErrMissingChunk, id[:])
	}

	if id != DataID {
		return 0, fmt.Errorf("%w: %q has no size in ds64", ErrMalformedChunk, id[:])
	}

	if p.ds64.length < 16 {
		return 0, fmt.Errorf("%w: ds64 is %d bytes", ErrMalformedChunk, p.ds64.length)
	}

	low, err := p.u32.Unpack(p.buf, p.ds64.Start+8)
	if err != nil {
		return 0, err
	}

	high, err := p.u32.Unpack(p.buf, p.ds64.Start+12)
	if err != nil {
		return 0, err
	}

	size := uint64(high)<<32 | uint64(low)
	if size > uint64(left) {
		return 0, fmt.Errorf("%w: ds64 declares %d data bytes, only %d left", ErrMalformedChunk, size, left)
	}

	return int(size), nil
}
