package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/wavefile"
	"github.com/cwbudde/wavefile/bitdepth"
)

func load(t *testing.T, path string) *wavefile.File {
	t.Helper()

	buf, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read generated file: %v", err)
	}

	f := wavefile.New()
	if err := f.FromBytes(buf); err != nil {
		t.Fatalf("generated file is not a valid wav: %v", err)
	}

	return f
}

func TestRunGeneratesWavFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "sine.wav")

	err := run([]string{"--output", outPath, "--length", "0.01", "--frequency", "220"})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	f := load(t, outPath)

	if f.SampleRate() != 48000 {
		t.Fatalf("sample rate=%d, want 48000", f.SampleRate())
	}

	if f.BitDepth() != bitdepth.PCM16 {
		t.Fatalf("bit depth=%q, want 16", f.BitDepth())
	}

	if f.NumChannels() != 1 {
		t.Fatalf("channels=%d, want 1", f.NumChannels())
	}

	// 0.01 sec * 48000 Hz = 480 samples
	if f.NumSamples() != 480 {
		t.Fatalf("expected 480 samples, got %d", f.NumSamples())
	}
}

func TestRunOptions(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantDepth bitdepth.Code
		wantKind  [4]byte
		wantRate  int
	}{
		{"float rifx", []string{"--bit-depth", "32f", "--container", "rifx"}, bitdepth.Float32, wavefile.CIDRIFX, 48000},
		{"24 bit rf64", []string{"--bit-depth", "24", "--container", "rf64"}, bitdepth.PCM24, wavefile.CIDRF64, 48000},
		{"8 khz", []string{"--sample-rate", "8000"}, bitdepth.PCM16, wavefile.CIDRIFF, 8000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outPath := filepath.Join(t.TempDir(), "sine.wav")

			args := append([]string{"--output", outPath, "--length", "0.005"}, tt.args...)
			if err := run(args); err != nil {
				t.Fatalf("run failed: %v", err)
			}

			f := load(t, outPath)

			if f.BitDepth() != tt.wantDepth {
				t.Fatalf("bit depth=%q, want %q", f.BitDepth(), tt.wantDepth)
			}

			if kind := f.Container().Kind; kind != tt.wantKind {
				t.Fatalf("container=%q, want %q", kind[:], tt.wantKind[:])
			}

			if f.SampleRate() != tt.wantRate {
				t.Fatalf("sample rate=%d, want %d", f.SampleRate(), tt.wantRate)
			}
		})
	}
}

func TestRunFlagParseError(t *testing.T) {
	err := run([]string{"--length", "not-a-number"})
	if err == nil {
		t.Fatalf("expected failure for invalid flag value")
	}
}

func TestRunBadContainer(t *testing.T) {
	err := run([]string{"--output", filepath.Join(t.TempDir(), "x.wav"), "--container", "aiff"})
	if !errors.Is(err, wavefile.ErrUnsupportedContainer) {
		t.Fatalf("run()=%v, want %v", err, wavefile.ErrUnsupportedContainer)
	}
}

func TestRunInvalidOutputPath(t *testing.T) {
	err := run([]string{"--output", "/nonexistent/dir/file.wav", "--length", "0.001"})
	if err == nil {
		t.Fatal("expected error for invalid output path")
	}
}
