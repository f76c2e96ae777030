package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/wavefile"
	"github.com/cwbudde/wavefile/bitdepth"
)

func newEncodeCmd(_ *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode <in> <out>",
		Short: "Compress a WAVE file to IMA ADPCM, A-law or mu-law",
		Long: `Compress a WAVE file to IMA ADPCM, A-law or mu-law.

IMA ADPCM needs mono 8 kHz input. Convert other files first.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := cmd.Flags().GetString("codec")
			if err != nil {
				return fmt.Errorf("failed to read 'codec' flag: %w", err)
			}

			f, _, err := readWAV(args[0])
			if err != nil {
				return err
			}

			switch strings.ToLower(codec) {
			case "adpcm":
				err = f.ToIMAADPCM()
			case "alaw":
				err = f.ToALaw()
			case "mulaw":
				err = f.ToMuLaw()
			default:
				return fmt.Errorf("unknown codec %q, want adpcm, alaw or mulaw", codec)
			}

			if err != nil {
				return err
			}

			if err := writeWAV(args[1], f); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s, %d bytes of audio\n", args[1], codec, len(f.Container().Data))

			return nil
		},
	}

	cmd.Flags().String("codec", "adpcm", "adpcm, alaw or mulaw")

	return cmd
}

func newDecodeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <in> <out>",
		Short: "Expand an IMA ADPCM, A-law or mu-law file to linear PCM",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := stringFlag(cmd, "bit-depth", opts.cfg.BitDepth)
			if err != nil {
				return err
			}

			f, _, err := readWAV(args[0])
			if err != nil {
				return err
			}

			if err := decompress(f, bitdepth.Code(code)); err != nil {
				return err
			}

			if err := writeWAV(args[1], f); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s bits, %d samples\n", args[1], f.BitDepth(), f.NumSamples())

			return nil
		},
	}

	cmd.Flags().String("bit-depth", string(bitdepth.PCM16), "bit depth of the decoded samples")

	return cmd
}

func decompress(f *wavefile.File, code bitdepth.Code) error {
	switch f.BitDepth() {
	case bitdepth.ADPCM:
		return f.FromIMAADPCM(code)
	case bitdepth.ALaw:
		return f.FromALaw(code)
	case bitdepth.MuLaw:
		return f.FromMuLaw(code)
	default:
		return fmt.Errorf("%w: %s bit samples are not compressed", wavefile.ErrUnsupportedConversion, f.BitDepth())
	}
}
