package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-audio/aiff"
	"github.com/spf13/cobra"

	"github.com/cwbudde/wavefile"
	"github.com/cwbudde/wavefile/bitdepth"
)

func newAIFFCmd(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "aiff <in> [out]",
		Short: "Export the audio of a WAVE file as AIFF",
		Long: `Export the audio of a WAVE file as AIFF.

The output defaults to the input path with an .aif extension. AIFF holds
8 to 32 bit integer PCM only, so other bit depths are converted to the
nearest one of 16, 24 or 32 bits first. Metadata is not carried over.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _, err := readWAV(args[0])
			if err != nil {
				return err
			}

			outPath := args[0][:len(args[0])-len(filepath.Ext(args[0]))] + ".aif"
			if len(args) == 2 {
				outPath = args[1]
			}

			out, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}
			defer out.Close()

			if err := exportAIFF(f, out); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wav file converted to %s\n", outPath)

			return out.Close()
		},
	}
}

// exportAIFF writes the samples of f to w. f may be converted in place.
func exportAIFF(f *wavefile.File, w io.WriteSeeker) error {
	if code, ok := aiffBitDepth(f.BitDepth()); ok {
		logger.Debugf("converting %s bit samples to %s bits for AIFF", f.BitDepth(), code)

		if err := f.ToBitDepth(code); err != nil {
			return err
		}
	}

	buf, err := f.IntBuffer()
	if err != nil {
		return err
	}

	encoder := aiff.NewEncoder(w, buf.Format.SampleRate, buf.SourceBitDepth, buf.Format.NumChannels)

	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio buffer: %w", err)
	}

	return encoder.Close()
}

// aiffBitDepth returns the code samples must be converted to before they
// fit AIFF. 8-bit WAVE samples are unsigned, so they widen to 16 bits.
// Floats and compressed codes are handled by IntBuffer.
func aiffBitDepth(code bitdepth.Code) (bitdepth.Code, bool) {
	d, err := bitdepth.Lookup(code)
	if err != nil || d.Float() || d.Compressed() {
		return "", false
	}

	switch {
	case d.Bits == 16 || d.Bits == 24 || d.Bits == 32:
		return "", false
	case d.Bits < 16:
		return bitdepth.PCM16, true
	case d.Bits < 24:
		return bitdepth.PCM24, true
	default:
		return bitdepth.PCM32, true
	}
}
