// Command wavefile inspects and converts RIFF, RIFX and RF64 WAVE files.
//
// Usage:
//
//	wavefile [--config file.yaml] [-v] <command> [args]
//
// Commands:
//
//	info     - format, size and metadata summary
//	chunks   - chunk layout with offsets and sizes
//	convert  - change the bit depth or container
//	encode   - compress to IMA ADPCM, A-law or mu-law
//	decode   - expand a compressed file to linear PCM
//	aiff     - export the audio as an AIFF file
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/wavefile/cmd/wavefile/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
