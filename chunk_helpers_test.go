package wavefile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"github.com/cwbudde/wavefile/bitdepth"
)

type testChunk struct {
	id   string
	size uint32
	data []byte
}

var (
	errFileTooSmall         = errors.New("file too small")
	errInvalidRiffWaveHdr   = errors.New("invalid riff/wave header")
	errChunkExceedsFileSize = errors.New("chunk exceeds file size")
)

// parseWavChunks lists the top-level chunks of a RIFF or RIFX file without
// going through the package parser.
func parseWavChunks(data []byte) ([]testChunk, error) {
	if len(data) < 12 {
		return nil, errFileTooSmall
	}

	var order binary.ByteOrder = binary.LittleEndian

	switch string(data[0:4]) {
	case "RIFF", "RF64":
	case "RIFX":
		order = binary.BigEndian
	default:
		return nil, errInvalidRiffWaveHdr
	}

	if string(data[8:12]) != "WAVE" {
		return nil, errInvalidRiffWaveHdr
	}

	chunks := make([]testChunk, 0)

	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := order.Uint32(data[offset+4 : offset+8])
		offset += 8

		end := offset + int(size)
		if size == 0xFFFFFFFF {
			end = len(data)
		}

		if end > len(data) {
			return nil, fmt.Errorf("%w: %q", errChunkExceedsFileSize, id)
		}

		payload := append([]byte(nil), data[offset:end]...)
		chunks = append(chunks, testChunk{id: id, size: size, data: payload})

		offset = end
		if size%2 == 1 {
			offset++
		}
	}

	return chunks, nil
}

func findChunk(chunks []testChunk, id string) (*testChunk, int) {
	for i := range chunks {
		if chunks[i].id == id {
			return &chunks[i], i
		}
	}

	return nil, -1
}

func chunkIDs(chunks []testChunk) []string {
	out := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		out = append(out, ch.id)
	}

	return out
}

// pcmFmtPayload is a 16 byte fmt chunk for little-endian integer PCM.
func pcmFmtPayload(channels uint16, sampleRate uint32, bits uint16) []byte {
	blockAlign := channels * (bits / 8)

	p := make([]byte, 16)
	binary.LittleEndian.PutUint16(p[0:2], bitdepth.FormatPCM)
	binary.LittleEndian.PutUint16(p[2:4], channels)
	binary.LittleEndian.PutUint32(p[4:8], sampleRate)
	binary.LittleEndian.PutUint32(p[8:12], sampleRate*uint32(blockAlign))
	binary.LittleEndian.PutUint16(p[12:14], blockAlign)
	binary.LittleEndian.PutUint16(p[14:16], bits)

	return p
}

// makeRIFF assembles a little-endian RIFF file from id/payload pairs.
func makeRIFF(t *testing.T, chunks ...testChunk) []byte {
	t.Helper()

	var b bytes.Buffer
	b.WriteString("RIFF")

	if err := binary.Write(&b, binary.LittleEndian, uint32(0)); err != nil {
		t.Fatalf("write riff size placeholder: %v", err)
	}

	b.WriteString("WAVE")

	for _, ch := range chunks {
		writeTestChunk(t, &b, ch.id, ch.data)
	}

	out := b.Bytes()
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(out)-8))

	return out
}

func writeTestChunk(t *testing.T, b *bytes.Buffer, id string, payload []byte) {
	t.Helper()

	if len(id) != 4 {
		t.Fatalf("chunk id must be 4 bytes, got %q", id)
	}

	b.WriteString(id)

	if err := binary.Write(b, binary.LittleEndian, uint32(len(payload))); err != nil {
		t.Fatalf("write chunk size for %q: %v", id, err)
	}

	b.Write(payload)

	if len(payload)%2 == 1 {
		b.WriteByte(0)
	}
}

// mustScratch builds a file or fails the test.
func mustScratch(t *testing.T, channels, sampleRate int, code bitdepth.Code, samples []float64, opts ...Option) *File {
	t.Helper()

	f := New()
	if err := f.FromScratch(channels, sampleRate, code, samples, opts...); err != nil {
		t.Fatalf("FromScratch(%d, %d, %q): %v", channels, sampleRate, code, err)
	}

	return f
}

func mustBytes(t *testing.T, f *File) []byte {
	t.Helper()

	buf, err := f.Bytes()
	if err != nil {
		t.Fatalf("Bytes(): %v", err)
	}

	return buf
}

func mustSamples(t *testing.T, f *File) []float64 {
	t.Helper()

	samples, err := f.Samples()
	if err != nil {
		t.Fatalf("Samples(): %v", err)
	}

	return samples
}
