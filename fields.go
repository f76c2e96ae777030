package wavefile

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cwbudde/wavefile/bytedata"
)

// byteOrder bundles the field codecs of one container. RIFX stores every
// multi-byte field big-endian.
type byteOrder struct {
	u16, u32 *bytedata.Codec
}

var (
	littleEndian = byteOrder{
		u16: bytedata.MustCodec(bytedata.Uint16),
		u32: bytedata.MustCodec(bytedata.Uint32),
	}
	bigEndian = byteOrder{
		u16: bytedata.MustCodec(bytedata.Uint16BE),
		u32: bytedata.MustCodec(bytedata.Uint32BE),
	}
)

func orderFor(kind [4]byte) byteOrder {
	if kind == CIDRIFX {
		return bigEndian
	}

	return littleEndian
}

// fieldReader reads consecutive fields from a chunk payload. Reads past
// the end yield zero values and leave err set.
type fieldReader struct {
	order  byteOrder
	buf    []byte
	offset int
	err    error
}

func newFieldReader(order byteOrder, payload []byte) *fieldReader {
	return &fieldReader{order: order, buf: payload}
}

func (r *fieldReader) remaining() int {
	return max(0, len(r.buf)-r.offset)
}

func (r *fieldReader) number(c *bytedata.Codec, name string) float64 {
	if r.err != nil {
		return 0
	}

	v, err := c.Unpack(r.buf, r.offset)
	if err != nil {
		r.err = fmt.Errorf("failed to read %s: %w", name, err)
		return 0
	}

	r.offset += c.Stride()

	return v
}

func (r *fieldReader) uint16(name string) uint16 {
	return uint16(r.number(r.order.u16, name))
}

func (r *fieldReader) uint32(name string) uint32 {
	return uint32(r.number(r.order.u32, name))
}

// take returns the next n bytes, zero filled where the payload is short.
func (r *fieldReader) take(n int) []byte {
	out := make([]byte, n)
	if r.offset < len(r.buf) {
		end := min(r.offset+n, len(r.buf))
		copy(out, r.buf[r.offset:end])
	}

	r.offset += n

	return out
}

func (r *fieldReader) id() [4]byte {
	var id [4]byte
	copy(id[:], r.take(4))

	return id
}

func (r *fieldReader) fixedString(n int) string {
	return strings.TrimRight(nullTermStr(r.take(n)), " ")
}

// rest returns everything not read yet.
func (r *fieldReader) rest() []byte {
	if r.offset >= len(r.buf) {
		return nil
	}

	out := append([]byte(nil), r.buf[r.offset:]...)
	r.offset = len(r.buf)

	return out
}

// fieldWriter builds a chunk payload.
type fieldWriter struct {
	order byteOrder
	buf   bytes.Buffer
}

func newFieldWriter(order byteOrder) *fieldWriter {
	return &fieldWriter{order: order}
}

func (w *fieldWriter) number(c *bytedata.Codec, v float64) {
	var scratch [8]byte

	// Callers only pass values that fit their field.
	_, _ = c.Pack(scratch[:], 0, v)
	w.buf.Write(scratch[:c.Stride()])
}

func (w *fieldWriter) uint16(v uint16) {
	w.number(w.order.u16, float64(v))
}

func (w *fieldWriter) uint32(v uint32) {
	w.number(w.order.u32, float64(v))
}

func (w *fieldWriter) id(id [4]byte) {
	w.buf.Write(id[:])
}

func (w *fieldWriter) raw(b []byte) {
	w.buf.Write(b)
}

func (w *fieldWriter) fixedString(s string, n int) {
	raw := make([]byte, n)
	copy(raw, s)
	w.buf.Write(raw)
}

func (w *fieldWriter) Bytes() []byte {
	return w.buf.Bytes()
}
