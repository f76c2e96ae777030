package wavefile

import (
	"fmt"
	"time"

	"github.com/cwbudde/wavefile/adpcm"
	"github.com/cwbudde/wavefile/bitdepth"
	"github.com/cwbudde/wavefile/bytedata"
)

// File is a WAVE file held in memory. The zero value, as returned by New,
// holds no audio until FromScratch or FromBytes succeeds.
//
// Samples are interleaved and stay packed in the data chunk; Sample and
// SetSample read and write them in place. Compressed files (ADPCM, A-law,
// mu-law) expose their raw bytes as samples.
type File struct {
	c     *Container
	depth bitdepth.Depth
	codec *bytedata.Codec
}

// Option configures FromScratch.
type Option func(*options)

type options struct {
	kind [4]byte
}

// WithContainer selects CIDRIFF (the default), CIDRIFX or CIDRF64.
func WithContainer(kind [4]byte) Option {
	return func(o *options) {
		o.kind = kind
	}
}

// New returns an empty File.
func New() *File {
	return &File{}
}

// FromScratch replaces f with a new file holding the given interleaved
// samples. For the compressed codes "4", "8a" and "8m" samples are the
// encoded bytes.
func (f *File) FromScratch(channels, sampleRate int, code bitdepth.Code, samples []float64, opts ...Option) error {
	o := options{kind: CIDRIFF}
	for _, opt := range opts {
		opt(&o)
	}

	switch o.kind {
	case CIDRIFF, CIDRIFX, CIDRF64:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedContainer, o.kind[:])
	}

	next, err := build(o.kind, channels, sampleRate, code, samples)
	if err != nil {
		return err
	}

	*f = *next

	return nil
}

// FromScratchChannels is FromScratch for one sample slice per channel.
// Every channel must hold the same number of samples.
func (f *File) FromScratchChannels(sampleRate int, code bitdepth.Code, channels [][]float64, opts ...Option) error {
	samples, err := interleave(channels)
	if err != nil {
		return err
	}

	return f.FromScratch(len(channels), sampleRate, code, samples, opts...)
}

func interleave(channels [][]float64) ([]float64, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("%w: no channels", ErrInvalidChannels)
	}

	n := len(channels[0])
	out := make([]float64, 0, n*len(channels))

	for ch := range channels {
		if len(channels[ch]) != n {
			return nil, fmt.Errorf("%w: channel %d holds %d samples, channel 0 holds %d",
				ErrInvalidChannels, ch, len(channels[ch]), n)
		}
	}

	for i := range n {
		for ch := range channels {
			out = append(out, channels[ch][i])
		}
	}

	return out, nil
}

// build assembles a file from interleaved samples.
func build(kind [4]byte, channels, sampleRate int, code bitdepth.Code, samples []float64) (*File, error) {
	d, err := bitdepth.Lookup(code)
	if err != nil {
		return nil, err
	}

	format, err := makeFormat(channels, sampleRate, d)
	if err != nil {
		return nil, err
	}

	codec := d.Codec(kind == CIDRIFX)

	data := make([]byte, len(samples)*codec.Stride())
	if _, err := codec.PackSlice(data, 0, samples); err != nil {
		return nil, err
	}

	c := &Container{Kind: kind, Fmt: format, Data: data}

	switch d.Code {
	case bitdepth.ADPCM:
		c.Fact = &FactChunk{SampleLength: uint32(len(data) * 2)}
	case bitdepth.ALaw, bitdepth.MuLaw:
		c.Fact = &FactChunk{SampleLength: uint32(len(data))}
	}

	return &File{c: c, depth: d, codec: codec}, nil
}

// FromBytes replaces f with the WAVE file in buf. On error f is left as it
// was.
func (f *File) FromBytes(buf []byte) error {
	c, err := ParseContainer(buf)
	if err != nil {
		return err
	}

	next, err := fromContainer(c)
	if err != nil {
		return err
	}

	*f = *next

	return nil
}

func fromContainer(c *Container) (*File, error) {
	code, err := formatBitDepth(c.Fmt)
	if err != nil {
		return nil, err
	}

	d, err := bitdepth.Lookup(code)
	if err != nil {
		return nil, err
	}

	h := c.Fmt.Header()
	if err := validateHeader(int(h.NumChannels), int(h.SampleRate), int(h.BitsPerSample)); err != nil {
		return nil, err
	}

	return &File{c: c, depth: d, codec: d.Codec(c.BigEndian())}, nil
}

// Bytes serializes the file.
func (f *File) Bytes() ([]byte, error) {
	if f.c == nil {
		return nil, fmt.Errorf("%w: fmt", ErrMissingChunk)
	}

	return f.c.Bytes()
}

// BitDepth returns the code of the samples in the data chunk.
func (f *File) BitDepth() bitdepth.Code {
	return f.depth.Code
}

// NumChannels returns the channel count of the fmt chunk.
func (f *File) NumChannels() int {
	if f.c == nil {
		return 0
	}

	return int(f.c.Fmt.Header().NumChannels)
}

// SampleRate returns the sample rate of the fmt chunk.
func (f *File) SampleRate() int {
	if f.c == nil {
		return 0
	}

	return int(f.c.Fmt.Header().SampleRate)
}

// NumSamples returns the number of samples in the data chunk, counting
// every channel.
func (f *File) NumSamples() int {
	if f.c == nil {
		return 0
	}

	return len(f.c.Data) / f.codec.Stride()
}

// Sample returns the sample at index i.
func (f *File) Sample(i int) (float64, error) {
	if i < 0 || i >= f.NumSamples() {
		return 0, fmt.Errorf("%w: %d of %d", ErrSampleIndex, i, f.NumSamples())
	}

	return f.codec.Unpack(f.c.Data, i*f.codec.Stride())
}

// SetSample stores v at index i. Values out of range for the bit depth
// fail with ErrOverflow and leave the sample unchanged.
func (f *File) SetSample(i int, v float64) error {
	if i < 0 || i >= f.NumSamples() {
		return fmt.Errorf("%w: %d of %d", ErrSampleIndex, i, f.NumSamples())
	}

	_, err := f.codec.Pack(f.c.Data, i*f.codec.Stride(), v)

	return err
}

// Samples unpacks every sample of the data chunk.
func (f *File) Samples() ([]float64, error) {
	if f.c == nil {
		return nil, nil
	}

	samples, err := f.codec.UnpackSlice(f.c.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: data: %w", ErrMalformedChunk, err)
	}

	return samples, nil
}

// Duration returns the play time of the file.
func (f *File) Duration() time.Duration {
	channels := f.NumChannels()
	if channels == 0 {
		return 0
	}

	frames := f.NumSamples() / channels

	if f.depth.Code == bitdepth.ADPCM {
		blocks := (len(f.c.Data) + adpcm.BlockAlign - 1) / adpcm.BlockAlign
		frames = blocks * adpcm.SamplesPerBlock

		if f.c.Fact != nil && f.c.Fact.SampleLength > 0 {
			frames = min(frames, int(f.c.Fact.SampleLength))
		}
	}

	return time.Duration(float64(frames) / float64(f.SampleRate()) * float64(time.Second))
}
