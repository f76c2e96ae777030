// Package bytedata packs and unpacks single numbers to and from byte
// buffers.
//
// Integers of 1 to 53 bits (signed or unsigned) and IEEE-754 floats of 16,
// 32 and 64 bits are supported, in little- or big-endian byte order. Every
// value is carried as a float64, which represents all supported integers
// exactly.
package bytedata

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidType is returned for a bit width the codec can't handle.
	ErrInvalidType = errors.New("unsupported number type")
	// ErrOverflow is returned when a value is outside the range of its type.
	ErrOverflow = errors.New("overflow")
	// ErrInvalidNumber is returned when NaN is packed as an integer.
	ErrInvalidNumber = errors.New("invalid number")
	// ErrBufferLength is returned when a buffer is too short for a value or
	// its length is not a multiple of the value stride.
	ErrBufferLength = errors.New("bad buffer length")
)

// MaxIntBits is the widest integer that round-trips exactly through a float64.
const MaxIntBits = 53

// Type describes a packed number.
type Type struct {
	Bits      int
	Signed    bool
	Float     bool
	BigEndian bool
}

var (
	Uint8    = Type{Bits: 8}
	Int16    = Type{Bits: 16, Signed: true}
	Uint16   = Type{Bits: 16}
	Uint32   = Type{Bits: 32}
	Float32  = Type{Bits: 32, Float: true}
	Float64  = Type{Bits: 64, Float: true}
	Uint16BE = Type{Bits: 16, BigEndian: true}
	Uint32BE = Type{Bits: 32, BigEndian: true}
)

// WithBigEndian returns a copy of t using the given byte order.
func (t Type) WithBigEndian(be bool) Type {
	t.BigEndian = be

	return t
}

// Stride is the number of bytes one value of t occupies.
func (t Type) Stride() int {
	if t.Bits < 8 {
		return 1
	}

	return (t.Bits + 7) / 8
}

func (t Type) String() string {
	order := "le"
	if t.BigEndian {
		order = "be"
	}

	switch {
	case t.Float:
		return fmt.Sprintf("float%d%s", t.Bits, order)
	case t.Signed:
		return fmt.Sprintf("int%d%s", t.Bits, order)
	default:
		return fmt.Sprintf("uint%d%s", t.Bits, order)
	}
}

func (t Type) validate() error {
	if t.Float {
		switch t.Bits {
		case 16, 32, 64:
			return nil
		default:
			return fmt.Errorf("%w: %d-bit float", ErrInvalidType, t.Bits)
		}
	}

	if t.Bits < 1 || t.Bits > MaxIntBits {
		return fmt.Errorf("%w: %d-bit integer", ErrInvalidType, t.Bits)
	}

	return nil
}

// Pack writes v at buf[index:] and returns the index after it.
func Pack(buf []byte, t Type, index int, v float64) (int, error) {
	c, err := NewCodec(t)
	if err != nil {
		return index, err
	}

	return c.Pack(buf, index, v)
}

// Unpack reads one value of type t from buf[index:].
func Unpack(buf []byte, t Type, index int) (float64, error) {
	c, err := NewCodec(t)
	if err != nil {
		return 0, err
	}

	return c.Unpack(buf, index)
}

// PackSlice packs values into a new buffer.
func PackSlice(values []float64, t Type) ([]byte, error) {
	c, err := NewCodec(t)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, len(values)*c.Stride())

	if _, err := c.PackSlice(buf, 0, values); err != nil {
		return nil, err
	}

	return buf, nil
}

// UnpackSlice unpacks every value in buf.
func UnpackSlice(buf []byte, t Type) ([]float64, error) {
	c, err := NewCodec(t)
	if err != nil {
		return nil, err
	}

	return c.UnpackSlice(buf)
}
