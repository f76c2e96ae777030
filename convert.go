package wavefile

import (
	"fmt"

	"github.com/cwbudde/wavefile/adpcm"
	"github.com/cwbudde/wavefile/bitdepth"
	"github.com/cwbudde/wavefile/g711"
)

// adpcmSampleRate is the only rate ToIMAADPCM accepts.
const adpcmSampleRate = 8000

// ToRIFF rewrites the file as a little-endian RIFF container.
func (f *File) ToRIFF() error {
	return f.toContainer(CIDRIFF)
}

// ToRIFX rewrites the file as a big-endian RIFX container.
func (f *File) ToRIFX() error {
	return f.toContainer(CIDRIFX)
}

func (f *File) toContainer(kind [4]byte) error {
	if err := f.loaded(); err != nil {
		return err
	}

	samples, err := f.Samples()
	if err != nil {
		return err
	}

	next, err := f.rebuild(kind, f.depth.Code, samples)
	if err != nil {
		return err
	}

	// Compressed streams keep their sample count.
	if f.depth.Compressed() && f.c.Fact != nil {
		fact := *f.c.Fact
		next.c.Fact = &fact
	}

	f.commit(next)

	return nil
}

// ToBitDepth converts the samples to code. Compressed files are decoded
// first and float samples are clamped to [-1, 1].
func (f *File) ToBitDepth(code bitdepth.Code) error {
	if err := f.loaded(); err != nil {
		return err
	}

	samples, err := f.linear(code)
	if err != nil {
		return err
	}

	next, err := f.rebuild(f.convertedKind(), code, samples)
	if err != nil {
		return err
	}

	logger.Debugf("converted %s samples to %s", f.depth.Code, code)
	f.commit(next)

	return nil
}

// ToIMAADPCM compresses the file to 4-bit IMA ADPCM. Only mono 8 kHz
// files can be compressed.
func (f *File) ToIMAADPCM() error {
	if err := f.loaded(); err != nil {
		return err
	}

	if f.SampleRate() != adpcmSampleRate || f.NumChannels() != 1 {
		return fmt.Errorf("%w: IMA ADPCM needs mono %d Hz audio, have %d channels at %d Hz",
			ErrUnsupportedConversion, adpcmSampleRate, f.NumChannels(), f.SampleRate())
	}

	pcm, err := f.pcm16()
	if err != nil {
		return err
	}

	encoded := adpcm.Encode(pcm)

	next, err := f.rebuild(f.convertedKind(), bitdepth.ADPCM, bytesToSamples(encoded))
	if err != nil {
		return err
	}

	next.c.Fact = &FactChunk{SampleLength: uint32(len(pcm))}
	f.commit(next)

	return nil
}

// FromIMAADPCM decodes an IMA ADPCM file to code, "16" when code is empty.
func (f *File) FromIMAADPCM(code bitdepth.Code) error {
	return f.decompress(bitdepth.ADPCM, code)
}

// ToALaw compresses the file with A-law.
func (f *File) ToALaw() error {
	return f.compress(bitdepth.ALaw, g711.EncodeALaw)
}

// FromALaw decodes an A-law file to code, "16" when code is empty.
func (f *File) FromALaw(code bitdepth.Code) error {
	return f.decompress(bitdepth.ALaw, code)
}

// ToMuLaw compresses the file with mu-law.
func (f *File) ToMuLaw() error {
	return f.compress(bitdepth.MuLaw, g711.EncodeMuLaw)
}

// FromMuLaw decodes a mu-law file to code, "16" when code is empty.
func (f *File) FromMuLaw(code bitdepth.Code) error {
	return f.decompress(bitdepth.MuLaw, code)
}

func (f *File) compress(code bitdepth.Code, encode func([]int16) []byte) error {
	if err := f.loaded(); err != nil {
		return err
	}

	pcm, err := f.pcm16()
	if err != nil {
		return err
	}

	next, err := f.rebuild(f.convertedKind(), code, bytesToSamples(encode(pcm)))
	if err != nil {
		return err
	}

	f.commit(next)

	return nil
}

func (f *File) decompress(from, to bitdepth.Code) error {
	if err := f.loaded(); err != nil {
		return err
	}

	if f.depth.Code != from {
		return fmt.Errorf("%w: file holds %q samples, not %q", ErrUnsupportedConversion, f.depth.Code, from)
	}

	if to == "" {
		to = bitdepth.PCM16
	}

	return f.ToBitDepth(to)
}

// linear returns the samples converted to code, decoding compressed data
// to 16 bits first.
func (f *File) linear(code bitdepth.Code) ([]float64, error) {
	from := f.depth.Code

	var (
		samples []float64
		err     error
	)

	if f.depth.Compressed() {
		pcm, err := f.decode16()
		if err != nil {
			return nil, err
		}

		samples = make([]float64, len(pcm))
		for i, s := range pcm {
			samples[i] = float64(s)
		}

		from = bitdepth.PCM16
	} else {
		samples, err = f.Samples()
		if err != nil {
			return nil, err
		}

		if f.depth.Float() {
			bitdepth.Truncate(samples)
		}
	}

	return bitdepth.Resample(samples, from, code)
}

// pcm16 returns the samples as 16-bit PCM.
func (f *File) pcm16() ([]int16, error) {
	if f.depth.Compressed() {
		return f.decode16()
	}

	samples, err := f.linear(bitdepth.PCM16)
	if err != nil {
		return nil, err
	}

	out := make([]int16, len(samples))
	for i, s := range samples {
		out[i] = int16(s)
	}

	return out, nil
}

// decode16 expands compressed data to 16-bit PCM. ADPCM output is cut to
// the sample count of the fact chunk.
func (f *File) decode16() ([]int16, error) {
	switch f.depth.Code {
	case bitdepth.ADPCM:
		pcm := adpcm.Decode(f.c.Data, int(f.c.Fmt.Header().BlockAlign))
		if f.c.Fact != nil && int(f.c.Fact.SampleLength) < len(pcm) {
			pcm = pcm[:f.c.Fact.SampleLength]
		}

		return pcm, nil
	case bitdepth.ALaw:
		return g711.DecodeALaw(f.c.Data), nil
	case bitdepth.MuLaw:
		return g711.DecodeMuLaw(f.c.Data), nil
	default:
		return nil, fmt.Errorf("%w: %q is not compressed", ErrUnsupportedConversion, f.depth.Code)
	}
}

// rebuild assembles a file of the given kind and code with the metadata of
// f. fmt, fact and data are new and ds64 is dropped.
func (f *File) rebuild(kind [4]byte, code bitdepth.Code, samples []float64) (*File, error) {
	h := f.c.Fmt.Header()

	next, err := build(kind, int(h.NumChannels), int(h.SampleRate), code, samples)
	if err != nil {
		return nil, err
	}

	old := f.c.clone()
	c := next.c
	c.Bext = old.Bext
	c.Cart = old.Cart
	c.Cue = old.Cue
	c.Smpl = old.Smpl
	c.Lists = old.Lists
	c.Junk = old.Junk
	c.Unknown = old.Unknown
	c.registry = old.registry

	return next, nil
}

// convertedKind is the container a conversion produces. RF64 files are
// written back as RIFF.
func (f *File) convertedKind() [4]byte {
	if f.c.Kind == CIDRF64 {
		logger.Warnf("rewriting RF64 file as RIFF")
		return CIDRIFF
	}

	return f.c.Kind
}

func (f *File) commit(next *File) {
	*f = *next
}

func (f *File) loaded() error {
	if f == nil || f.c == nil {
		return fmt.Errorf("%w: no audio loaded", ErrMissingChunk)
	}

	return nil
}

func bytesToSamples(b []byte) []float64 {
	out := make([]float64, len(b))
	for i, v := range b {
		out[i] = float64(v)
	}

	return out
}
