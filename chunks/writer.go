package chunks

import (
	"bytes"
	"fmt"

	"github.com/cwbudde/wavefile/bytedata"
)

// Writer lays out the chunks of a WAVE file in memory.
type Writer struct {
	id   [4]byte
	u32  *bytedata.Codec
	body bytes.Buffer
	err  error
}

// maxSize is the largest size a 32-bit size field can carry. 0xFFFFFFFF is
// reserved for RF64 sizes kept in ds64.
var maxSize = uint64(sizeUnknown - 1)

// NewWriter returns a writer for a RIFF, RIFX or RF64 container.
func NewWriter(id [4]byte) (*Writer, error) {
	switch id {
	case RIFFID, RIFXID, RF64ID:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedContainer, id[:])
	}

	return &Writer{
		id:  id,
		u32: bytedata.MustCodec(bytedata.Uint32.WithBigEndian(id == RIFXID)),
	}, nil
}

// BigEndian reports whether the writer produces a RIFX file.
func (w *Writer) BigEndian() bool {
	return w.id == RIFXID
}

// Len is the number of body bytes written so far, the WAVE form type
// excluded.
func (w *Writer) Len() int {
	return w.body.Len()
}

// WriteChunk appends a chunk and its pad byte. In an RF64 container the
// data chunk size is written as 0xFFFFFFFF and must be carried by ds64.
// Any other chunk larger than a 32-bit size field makes Bytes fail; such
// data has to go into an RF64 container.
func (w *Writer) WriteChunk(id [4]byte, payload []byte) {
	var size uint32

	switch {
	case w.id == RF64ID && id == DataID:
		size = sizeUnknown
	case uint64(len(payload)) > maxSize:
		w.fail(fmt.Errorf("%w: %q chunk of %d bytes needs RF64", ErrChunkTooLarge, id[:], len(payload)))
		return
	default:
		size = uint32(len(payload))
	}

	w.writeHeader(id, size)
	w.body.Write(payload)

	if len(payload)%2 == 1 {
		w.body.WriteByte(0)
	}
}

// WriteList appends a LIST chunk of the given form type. build writes the
// sub chunks.
func (w *Writer) WriteList(format [4]byte, build func(lw *Writer)) {
	lw := &Writer{id: w.id, u32: w.u32}
	lw.body.Write(format[:])
	build(lw)

	if lw.err != nil {
		w.fail(lw.err)
		return
	}

	w.WriteChunk(ListID, lw.body.Bytes())
}

// Bytes returns the complete file. The container size is the body length
// plus the four byte form type, or 0xFFFFFFFF for RF64. It returns the
// first error met while writing chunks.
func (w *Writer) Bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}

	out := make([]byte, 12, 12+w.body.Len())
	copy(out, w.id[:])

	size := uint64(w.body.Len() + 4)
	switch {
	case w.id == RF64ID:
		size = sizeUnknown
	case size > maxSize:
		return nil, fmt.Errorf("%w: %s body of %d bytes needs RF64", ErrChunkTooLarge, w.id[:], size)
	}

	if _, err := w.u32.Pack(out, 4, float64(size)); err != nil {
		return nil, err
	}

	copy(out[8:], WAVEID[:])

	return append(out, w.body.Bytes()...), nil
}

func (w *Writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *Writer) writeHeader(id [4]byte, size uint32) {
	var hdr [8]byte

	copy(hdr[:], id[:])

	if _, err := w.u32.Pack(hdr[:], 4, float64(size)); err != nil {
		w.fail(err)
		return
	}

	w.body.Write(hdr[:])
}
