// Command gen-sine writes a sine wave to a WAVE file.
package main

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/wavefile"
	"github.com/cwbudde/wavefile/bitdepth"
)

func main() {
	err := run(nil)
	if err != nil {
		log.Fatal(err)
	}
}

// run executes the command with args, or the process arguments when args
// is nil.
func run(args []string) error {
	var (
		output     string
		frequency  float64
		length     float64
		sampleRate int
		depth      string
		container  string
	)

	cmd := &cobra.Command{
		Use:           "gen-sine",
		Short:         "Write a sine wave to a WAVE file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := containerID(container)
			if err != nil {
				return err
			}

			log.Printf("generating a %f sec sine wav at %f hz", length, frequency)

			samples := make([]float64, int(float64(sampleRate)*length))
			for i := range samples {
				samples[i] = math.Sin(float64(i) / float64(sampleRate) * frequency * 2 * math.Pi)
			}

			f := wavefile.New()
			if err := f.FromScratch(1, sampleRate, bitdepth.Float64, samples); err != nil {
				return err
			}

			if code := bitdepth.Code(depth); code != bitdepth.Float64 {
				if err := f.ToBitDepth(code); err != nil {
					return err
				}
			}

			if err := setContainer(f, kind); err != nil {
				return err
			}

			return writeFile(output, f)
		},
	}

	cmd.Flags().StringVar(&output, "output", "output.wav", "filename to write to")
	cmd.Flags().Float64Var(&frequency, "frequency", 440, "frequency in hertz to generate")
	cmd.Flags().Float64Var(&length, "length", 5, "length in seconds of output file")
	cmd.Flags().IntVar(&sampleRate, "sample-rate", 48000, "sample rate in hertz")
	cmd.Flags().StringVar(&depth, "bit-depth", string(bitdepth.PCM16), "bit depth of the samples")
	cmd.Flags().StringVar(&container, "container", "riff", "riff, rifx or rf64")

	if args != nil {
		cmd.SetArgs(args)
	}

	return cmd.Execute()
}

func containerID(name string) ([4]byte, error) {
	switch name {
	case "riff":
		return wavefile.CIDRIFF, nil
	case "rifx":
		return wavefile.CIDRIFX, nil
	case "rf64":
		return wavefile.CIDRF64, nil
	default:
		return [4]byte{}, fmt.Errorf("%w: %q", wavefile.ErrUnsupportedContainer, name)
	}
}

// setContainer moves f into kind once the samples are final, since
// conversions write RF64 back as RIFF.
func setContainer(f *wavefile.File, kind [4]byte) error {
	switch kind {
	case wavefile.CIDRIFX:
		return f.ToRIFX()
	case wavefile.CIDRF64:
		c := f.Container()
		c.Kind = kind

		return f.SetContainer(c)
	default:
		return nil
	}
}

func writeFile(path string, f *wavefile.File) error {
	buf, err := f.Bytes()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}

	return nil
}
