package wavefile

import (
	"github.com/go-audio/audio"

	"github.com/cwbudde/wavefile/bitdepth"
)

func (f *File) audioFormat() *audio.Format {
	return &audio.Format{
		NumChannels: f.NumChannels(),
		SampleRate:  f.SampleRate(),
	}
}

// FloatBuffer returns the samples scaled to [-1, 1] as a go-audio buffer.
// Compressed files are decoded.
func (f *File) FloatBuffer() (*audio.FloatBuffer, error) {
	if err := f.loaded(); err != nil {
		return nil, err
	}

	samples, err := f.linear(bitdepth.Float64)
	if err != nil {
		return nil, err
	}

	return &audio.FloatBuffer{Format: f.audioFormat(), Data: samples}, nil
}

// IntBuffer returns integer samples as a go-audio buffer. Integer PCM keeps
// its bit depth, 8-bit samples stay unsigned. Compressed files decode to 16
// bits and float files convert to 32 bits.
func (f *File) IntBuffer() (*audio.IntBuffer, error) {
	if err := f.loaded(); err != nil {
		return nil, err
	}

	code := f.depth.Code

	switch {
	case f.depth.Compressed():
		code = bitdepth.PCM16
	case f.depth.Float():
		code = bitdepth.PCM32
	}

	samples, err := f.linear(code)
	if err != nil {
		return nil, err
	}

	d, err := bitdepth.Lookup(code)
	if err != nil {
		return nil, err
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	return &audio.IntBuffer{Format: f.audioFormat(), Data: data, SourceBitDepth: d.Bits}, nil
}
