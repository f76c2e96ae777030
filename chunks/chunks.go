// Package chunks frames the chunk tree of RIFF, RIFX and RF64 WAVE files.
//
// Parse walks a byte buffer once and records where every chunk lives
// without decoding any payload. LIST chunks are descended into. Writer does
// the reverse and lays chunks out with their headers and pad bytes.
package chunks

import (
	"errors"
	"fmt"

	"github.com/go-audio/riff"
)

var (
	// RIFFID identifies a little-endian container.
	RIFFID = riff.RiffID
	// RIFXID identifies a big-endian container.
	RIFXID = [4]byte{'R', 'I', 'F', 'X'}
	// RF64ID identifies a little-endian container with 64-bit sizes in ds64.
	RF64ID = [4]byte{'R', 'F', '6', '4'}
	// WAVEID is the only supported form type.
	WAVEID = riff.WavFormatID

	FmtID  = riff.FmtID
	DataID = riff.DataFormatID
	ListID = [4]byte{'L', 'I', 'S', 'T'}
	DS64ID = [4]byte{'d', 's', '6', '4'}

	// ErrMalformedChunk is returned when a chunk claims more bytes than the
	// buffer holds.
	ErrMalformedChunk = errors.New("malformed chunk")
	// ErrMissingChunk is returned when a required chunk is absent.
	ErrMissingChunk = errors.New("missing chunk")
	// ErrChunkTooLarge is returned when a RIFF or RIFX size doesn't fit
	// in 32 bits.
	ErrChunkTooLarge = errors.New("chunk too large")
	// ErrUnsupportedContainer is returned for anything that is not a
	// RIFF/RIFX/RF64 WAVE file.
	ErrUnsupportedContainer = fmt.Errorf("unsupported container: %w", riff.ErrFmtNotSupported)
)

// sizeUnknown is the size field value RF64 files use for sizes kept in ds64.
const sizeUnknown = 0xFFFFFFFF

// Chunk locates one chunk inside a buffer.
type Chunk struct {
	ID [4]byte
	// Size is the size field as stored in the file. It doesn't count the
	// pad byte.
	Size uint32
	// Start and End delimit the payload including the pad byte of odd
	// sized chunks. For LIST chunks the payload starts with Format.
	Start, End int

	// Format and SubChunks are only set on LIST chunks.
	Format    [4]byte
	SubChunks []Chunk

	length int
}

// Len returns the payload length without padding. It differs from Size only
// for RF64 chunks whose size lives in ds64.
func (c Chunk) Len() int {
	return c.length
}

// Payload returns the chunk payload without the pad byte.
func (c Chunk) Payload(buf []byte) []byte {
	end := min(c.Start+c.length, len(buf))

	return buf[c.Start:end]
}

// IsList reports whether c is a LIST chunk with a form type.
func (c Chunk) IsList() bool {
	return c.ID == ListID && c.SubChunks != nil
}

func (c Chunk) String() string {
	if c.ID == ListID {
		return fmt.Sprintf("%s(%s) %d bytes, %d sub chunks", c.ID[:], c.Format[:], c.Size, len(c.SubChunks))
	}

	return fmt.Sprintf("%q %d bytes [%d:%d]", c.ID[:], c.Size, c.Start, c.End)
}

// Tree is the chunk layout of a WAVE file.
type Tree struct {
	ID     [4]byte
	Size   uint32
	Format [4]byte
	Chunks []Chunk
}

// BigEndian reports whether the multi-byte fields of every chunk are stored
// big-endian.
func (t *Tree) BigEndian() bool {
	return t != nil && t.ID == RIFXID
}

// Find returns the first top-level chunk with the given id.
func (t *Tree) Find(id [4]byte) (Chunk, bool) {
	if t == nil {
		return Chunk{}, false
	}

	return Find(t.Chunks, id)
}

// FindAll returns every top-level chunk with the given id.
func (t *Tree) FindAll(id [4]byte) []Chunk {
	if t == nil {
		return nil
	}

	return FindAll(t.Chunks, id)
}

// Find returns the first chunk in list with the given id.
func Find(list []Chunk, id [4]byte) (Chunk, bool) {
	for _, c := range list {
		if c.ID == id {
			return c, true
		}
	}

	return Chunk{}, false
}

// FindAll returns every chunk in list with the given id, in file order.
func FindAll(list []Chunk, id [4]byte) []Chunk {
	var out []Chunk

	for _, c := range list {
		if c.ID == id {
			out = append(out, c)
		}
	}

	return out
}

// PaddedSize is the number of bytes a chunk with a payload of n bytes takes
// in a file, header included.
func PaddedSize(n int) int {
	return 8 + n + n%2
}
