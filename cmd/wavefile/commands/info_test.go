package commands

import (
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/wavefile/bitdepth"
)

func TestInfoYAML(t *testing.T) {
	path := writeTestWAV(t, 2, 44100, bitdepth.PCM24, []float64{1, -1, 2, -2}, withTags)

	out, err := runCmd(t, "info", path)
	require.NoError(t, err)

	var info fileInfo
	require.NoError(t, yaml.Unmarshal([]byte(out), &info))

	require.Equal(t, path, info.Path)
	require.Equal(t, "RIFF", info.Container)
	require.Equal(t, "24", info.BitDepth)
	require.Equal(t, 2, info.Channels)
	require.Equal(t, 44100, info.SampleRate)
	require.Equal(t, 4, info.Samples)
	require.Equal(t, uint16(bitdepth.FormatPCM), info.AudioFormat)
	require.Equal(t, "field recording", info.Description)
	require.Equal(t, map[string]string{"INAM": "river", "IART": "someone"}, info.Tags)
	require.Contains(t, info.Chunks, "fmt ")
	require.Contains(t, info.Chunks, "data")
	require.Contains(t, info.Chunks, "bext")
	require.Contains(t, info.Chunks, "LIST")
	require.Empty(t, info.SubFormat)
}

func TestInfoExtensible(t *testing.T) {
	path := writeTestWAV(t, 1, 48000, "20", []float64{1, 2}, nil)

	out, err := runCmd(t, "info", path)
	require.NoError(t, err)

	var info fileInfo
	require.NoError(t, yaml.Unmarshal([]byte(out), &info))

	require.Equal(t, "20", info.BitDepth)
	require.Equal(t, uint16(bitdepth.FormatExtensible), info.AudioFormat)
	require.Equal(t, "00000001-0000-0010-8000-00aa00389b71", info.SubFormat)
}

func TestInfoText(t *testing.T) {
	path := writeTestWAV(t, 2, 44100, bitdepth.PCM16, []float64{0, 0}, withTags)
	cfg := writeTestFile(t, "cfg.yaml", "output_format: text\n")

	out, err := runCmd(t, "--config", cfg, "info", path)
	require.NoError(t, err)

	require.Contains(t, out, "RIFF, 2 channels @ 44100 Hz, 16 bits, 2 samples")
	require.Contains(t, out, "description: field recording")
	require.Contains(t, out, "IART: someone\nINAM: river\n")
}

func TestChunksYAML(t *testing.T) {
	path := writeTestWAV(t, 1, 8000, bitdepth.PCM16, []float64{1, 2, 3}, withTags)

	out, err := runCmd(t, "chunks", path)
	require.NoError(t, err)

	var layout chunkLayout
	require.NoError(t, yaml.Unmarshal([]byte(out), &layout))

	require.Equal(t, "RIFF", layout.Container)
	require.NotEmpty(t, layout.Chunks)
	require.Equal(t, 12, layout.Chunks[0].Offset)

	var list *chunkNode
	for i := range layout.Chunks {
		if layout.Chunks[i].ID == "data" {
			require.Equal(t, 6, layout.Chunks[i].Size)
		}

		if layout.Chunks[i].ID == "LIST" {
			list = &layout.Chunks[i]
		}
	}

	require.NotNil(t, list)
	require.Equal(t, "INFO", list.Form)
	require.Len(t, list.Children, 2)
	require.Equal(t, "INAM", list.Children[0].ID)
}

func TestChunksText(t *testing.T) {
	path := writeTestWAV(t, 1, 8000, bitdepth.PCM16, []float64{1, 2, 3}, withTags)
	cfg := writeTestFile(t, "cfg.yaml", "output_format: text\n")

	out, err := runCmd(t, "--config", cfg, "chunks", path)
	require.NoError(t, err)

	require.Contains(t, out, "  LIST(INFO) @")
	require.Contains(t, out, "    INAM @")
	require.Contains(t, out, "  data @")
}
