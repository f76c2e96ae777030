package wavefile

import (
	"encoding/binary"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/cwbudde/wavefile/bitdepth"
)

func TestSampleAccess(t *testing.T) {
	f := mustScratch(t, 2, 44100, bitdepth.PCM16, []float64{0, 1, -1, 32767, -32768, 100})

	if got := f.NumSamples(); got != 6 {
		t.Fatalf("NumSamples()=%d, want 6", got)
	}

	if got, err := f.Sample(3); err != nil || got != 32767 {
		t.Fatalf("Sample(3)=%v, %v, want 32767", got, err)
	}

	if err := f.SetSample(0, 5); err != nil {
		t.Fatalf("SetSample(0, 5): %v", err)
	}

	if err := f.SetSample(0, 40000); !errors.Is(err, ErrOverflow) {
		t.Fatalf("SetSample(0, 40000)=%v, want %v", err, ErrOverflow)
	}

	if got, _ := f.Sample(0); got != 5 {
		t.Fatalf("Sample(0)=%v after a failed set, want 5", got)
	}

	for _, i := range []int{-1, 6} {
		if _, err := f.Sample(i); !errors.Is(err, ErrSampleIndex) {
			t.Fatalf("Sample(%d)=%v, want %v", i, err, ErrSampleIndex)
		}

		if err := f.SetSample(i, 0); !errors.Is(err, ErrSampleIndex) {
			t.Fatalf("SetSample(%d)=%v, want %v", i, err, ErrSampleIndex)
		}
	}
}

func TestFromScratchChannels(t *testing.T) {
	f := New()
	if err := f.FromScratchChannels(8000, bitdepth.PCM16, [][]float64{{1, 2, 3}, {4, 5, 6}}); err != nil {
		t.Fatalf("FromScratchChannels(): %v", err)
	}

	if got, want := mustSamples(t, f), []float64{1, 4, 2, 5, 3, 6}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Samples()=%v, want %v", got, want)
	}

	if f.NumChannels() != 2 {
		t.Fatalf("NumChannels()=%d, want 2", f.NumChannels())
	}

	err := f.FromScratchChannels(8000, bitdepth.PCM16, [][]float64{{1, 2}, {3}})
	if !errors.Is(err, ErrInvalidChannels) {
		t.Fatalf("FromScratchChannels(uneven)=%v, want %v", err, ErrInvalidChannels)
	}
}

func TestFromScratchErrors(t *testing.T) {
	tests := []struct {
		name       string
		channels   int
		sampleRate int
		code       bitdepth.Code
		samples    []float64
		opts       []Option
		want       error
	}{
		{"bad bit depth", 1, 8000, "7", nil, nil, ErrInvalidBitDepth},
		{"too wide", 1, 8000, "54", nil, nil, ErrInvalidBitDepth},
		{"no channels", 0, 8000, "16", nil, nil, ErrInvalidChannels},
		{"no sample rate", 1, 0, "16", nil, nil, ErrInvalidSampleRate},
		{"overflow", 1, 8000, "8", []float64{256}, nil, ErrOverflow},
		{"NaN", 1, 8000, "16", []float64{math.NaN()}, nil, ErrInvalidNumber},
		{"bad container", 1, 8000, "16", nil, []Option{WithContainer([4]byte{'F', 'O', 'R', 'M'})}, ErrUnsupportedContainer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustScratch(t, 1, 8000, bitdepth.PCM16, []float64{42})

			err := f.FromScratch(tt.channels, tt.sampleRate, tt.code, tt.samples, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("FromScratch()=%v, want %v", err, tt.want)
			}

			if got, _ := f.Sample(0); got != 42 || f.BitDepth() != bitdepth.PCM16 {
				t.Fatal("a failed FromScratch should leave the file unchanged")
			}
		})
	}
}

func TestFromBytesFailureKeepsFile(t *testing.T) {
	f := mustScratch(t, 1, 8000, bitdepth.PCM16, []float64{7})

	if err := f.FromBytes([]byte("RIFF\x04\x00\x00\x00WAVE")); !errors.Is(err, ErrMissingChunk) {
		t.Fatalf("FromBytes(empty WAVE)=%v, want %v", err, ErrMissingChunk)
	}

	if got, _ := f.Sample(0); got != 7 {
		t.Fatalf("Sample(0)=%v after a failed load, want 7", got)
	}
}

func TestFromBytesValidBitsInWiderSlots(t *testing.T) {
	format := make([]byte, 40)
	copy(format, pcmFmtPayload(2, 48000, 32))
	binary.LittleEndian.PutUint16(format[0:2], bitdepth.FormatExtensible)
	binary.LittleEndian.PutUint16(format[16:18], 22)
	binary.LittleEndian.PutUint16(format[18:20], 24)
	binary.LittleEndian.PutUint32(format[20:24], 0x3)
	binary.LittleEndian.PutUint32(format[24:28], uint32(bitdepth.FormatPCM))
	binary.LittleEndian.PutUint32(format[28:32], ksDataFormatTail[0])
	binary.LittleEndian.PutUint32(format[32:36], ksDataFormatTail[1])
	binary.LittleEndian.PutUint32(format[36:40], ksDataFormatTail[2])

	want := []float64{256, -256, 2147483392, 0}

	data := make([]byte, 4*len(want))
	for i, v := range want {
		binary.LittleEndian.PutUint32(data[4*i:], uint32(int32(v)))
	}

	f := New()
	if err := f.FromBytes(makeRIFF(t,
		testChunk{id: "fmt ", data: format},
		testChunk{id: "data", data: data},
	)); err != nil {
		t.Fatalf("FromBytes(): %v", err)
	}

	if f.BitDepth() != bitdepth.PCM32 {
		t.Fatalf("BitDepth()=%q, want %q", f.BitDepth(), bitdepth.PCM32)
	}

	if got := mustSamples(t, f); !reflect.DeepEqual(got, want) {
		t.Fatalf("Samples()=%v, want %v", got, want)
	}
}

func TestBitDepthRoundTrip(t *testing.T) {
	tests := []struct {
		code     bitdepth.Code
		channels int
		samples  []float64
	}{
		{bitdepth.PCM8, 1, []float64{0, 128, 255}},
		{bitdepth.PCM16, 2, []float64{-32768, 32767}},
		{"12", 1, []float64{-2048, 2047, 0}},
		{"20", 1, []float64{524287, -524288, 0}},
		{bitdepth.PCM24, 3, []float64{1, -1, 8388607}},
		{bitdepth.PCM32, 1, []float64{-2147483648, 2147483647}},
		{"40", 1, []float64{1 << 38, -(1 << 39)}},
		{"53", 1, []float64{1<<52 - 1, -(1 << 52)}},
		{bitdepth.Float32, 1, []float64{0.5, -0.25, 1}},
		{bitdepth.Float64, 6, []float64{0.1, -0.3, 1, -1, 0, 0.7}},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			f := mustScratch(t, tt.channels, 44100, tt.code, tt.samples)

			loaded := New()
			if err := loaded.FromBytes(mustBytes(t, f)); err != nil {
				t.Fatalf("FromBytes(): %v", err)
			}

			if loaded.BitDepth() != tt.code {
				t.Fatalf("BitDepth()=%q, want %q", loaded.BitDepth(), tt.code)
			}

			if got := mustSamples(t, loaded); !reflect.DeepEqual(got, tt.samples) {
				t.Fatalf("Samples()=%v, want %v", got, tt.samples)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name     string
		channels int
		rate     int
		frames   int
		want     time.Duration
	}{
		{"one second mono", 1, 8000, 8000, time.Second},
		{"one second stereo", 2, 44100, 44100, time.Second},
		{"half second", 1, 48000, 24000, 500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustScratch(t, tt.channels, tt.rate, bitdepth.PCM16, make([]float64, tt.channels*tt.frames))

			if got := f.Duration(); got != tt.want {
				t.Fatalf("Duration()=%v, want %v", got, tt.want)
			}
		})
	}

	if got := New().Duration(); got != 0 {
		t.Fatalf("Duration() of an empty file=%v, want 0", got)
	}
}

func TestSetContainer(t *testing.T) {
	f := mustScratch(t, 1, 8000, bitdepth.PCM16, []float64{1, 2})

	c := f.Container()
	c.Bext = &BroadcastExtension{Description: "attached"}

	if err := f.SetContainer(c); err != nil {
		t.Fatalf("SetContainer(): %v", err)
	}

	c.Bext.Description = "changed"

	if got := f.Container().Bext.Description; got != "attached" {
		t.Fatalf("bext description=%q, want %q", got, "attached")
	}

	if err := f.SetContainer(&Container{}); !errors.Is(err, ErrMissingChunk) {
		t.Fatalf("SetContainer(empty)=%v, want %v", err, ErrMissingChunk)
	}
}
