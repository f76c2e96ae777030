package bytedata

import (
	"fmt"
	"math"
)

type kind uint8

const (
	kindUint kind = iota
	kindInt
	kindFloat
)

// Codec packs and unpacks values of a single Type. The bounds and stride are
// resolved once by NewCodec, so a Codec is cheap to reuse and safe for
// concurrent use.
type Codec struct {
	t      Type
	kind   kind
	stride int

	min, max     float64
	lastByteMask byte

	ebits, fbits int
}

// NewCodec validates t and returns its codec.
func NewCodec(t Type) (*Codec, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	c := &Codec{t: t, stride: t.Stride()}

	switch {
	case t.Float:
		c.kind = kindFloat
		c.ebits, c.fbits = floatLayout(t.Bits)
		c.max = math.MaxFloat64
		c.min = -math.MaxFloat64
	case t.Signed:
		c.kind = kindInt
		c.max = math.Exp2(float64(t.Bits))/2 - 1
		c.min = -c.max - 1
	default:
		c.kind = kindUint
		c.max = math.Exp2(float64(t.Bits)) - 1
		c.min = 0
	}

	if c.kind != kindFloat {
		r := 8 - ((((t.Bits - 1) | 7) + 1) - t.Bits)
		if r > 0 && r < 8 {
			c.lastByteMask = byte(1<<r - 1)
		} else {
			c.lastByteMask = 0xFF
		}
	}

	return c, nil
}

// MustCodec is like NewCodec but panics on an invalid type. It is meant for
// package level codecs built from constant types.
func MustCodec(t Type) *Codec {
	c, err := NewCodec(t)
	if err != nil {
		panic(err)
	}

	return c
}

func (c *Codec) Type() Type   { return c.t }
func (c *Codec) Stride() int  { return c.stride }
func (c *Codec) Min() float64 { return c.min }
func (c *Codec) Max() float64 { return c.max }

// Pack writes v at buf[index:] and returns the index after the value.
func (c *Codec) Pack(buf []byte, index int, v float64) (int, error) {
	if index < 0 || index+c.stride > len(buf) {
		return index, fmt.Errorf("%w: need %d bytes at %d, have %d", ErrBufferLength, c.stride, index, len(buf))
	}

	field := buf[index : index+c.stride]

	if c.kind == kindFloat {
		packFloat(field, v, c.ebits, c.fbits)
	} else if err := c.packInt(field, v); err != nil {
		return index, err
	}

	if c.t.BigEndian {
		swap(field)
	}

	return index + c.stride, nil
}

// Unpack reads the value at buf[index:]. buf is never modified.
func (c *Codec) Unpack(buf []byte, index int) (float64, error) {
	if index < 0 || index+c.stride > len(buf) {
		return 0, fmt.Errorf("%w: need %d bytes at %d, have %d", ErrBufferLength, c.stride, index, len(buf))
	}

	var scratch [8]byte

	field := scratch[:c.stride]
	copy(field, buf[index:index+c.stride])

	if c.t.BigEndian {
		swap(field)
	}

	if c.kind == kindFloat {
		return unpackFloat(field, c.ebits, c.fbits), nil
	}

	return c.unpackInt(field), nil
}

// PackSlice packs values one after the other starting at index.
func (c *Codec) PackSlice(buf []byte, index int, values []float64) (int, error) {
	var err error

	for i, v := range values {
		index, err = c.Pack(buf, index, v)
		if err != nil {
			return index, fmt.Errorf("failed to pack value %d: %w", i, err)
		}
	}

	return index, nil
}

// UnpackSlice unpacks all of buf. len(buf) must be a multiple of the stride.
func (c *Codec) UnpackSlice(buf []byte) ([]float64, error) {
	if len(buf)%c.stride != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrBufferLength, len(buf), c.stride)
	}

	out := make([]float64, len(buf)/c.stride)

	for i := range out {
		v, err := c.Unpack(buf, i*c.stride)
		if err != nil {
			return nil, err
		}

		out[i] = v
	}

	return out, nil
}

func (c *Codec) packInt(field []byte, v float64) error {
	if math.IsNaN(v) {
		return ErrInvalidNumber
	}

	v = math.Trunc(v)
	if v > c.max || v < c.min {
		return fmt.Errorf("%w: %v not in [%v, %v]", ErrOverflow, v, c.min, c.max)
	}

	var u uint64
	if v < 0 {
		u = uint64(int64(v) + int64(1)<<c.t.Bits)
	} else {
		u = uint64(v)
	}

	for i := range field {
		field[i] = byte(u >> (8 * i))
	}

	field[len(field)-1] &= c.lastByteMask

	return nil
}

func (c *Codec) unpackInt(field []byte) float64 {
	var u uint64

	last := len(field) - 1
	for i := last; i >= 0; i-- {
		b := field[i]
		if i == last {
			b &= c.lastByteMask
		}

		u = u<<8 | uint64(b)
	}

	v := float64(u)
	if c.kind == kindInt && v > c.max {
		v -= math.Exp2(float64(c.t.Bits))
	}

	return v
}
