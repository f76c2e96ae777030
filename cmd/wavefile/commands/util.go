package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/cwbudde/wavefile"
)

// readWAV loads the WAVE file at path and returns it with its raw bytes.
func readWAV(path string) (*wavefile.File, []byte, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	f := wavefile.New()
	if err := f.FromBytes(buf); err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	logger.Debugf("loaded %s: %d channels, %d Hz, %s bits", path, f.NumChannels(), f.SampleRate(), f.BitDepth())

	return f, buf, nil
}

// writeWAV serializes f to path, creating the parent directory.
func writeWAV(path string, f *wavefile.File) error {
	buf, err := f.Bytes()
	if err != nil {
		return err
	}

	return saveToFile(path, buf)
}

func saveToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	return os.WriteFile(path, data, 0o644)
}

// parseContainer maps riff, rifx and rf64 to their container ids.
func parseContainer(name string) ([4]byte, error) {
	switch strings.ToLower(name) {
	case "riff":
		return wavefile.CIDRIFF, nil
	case "rifx":
		return wavefile.CIDRIFX, nil
	case "rf64":
		return wavefile.CIDRF64, nil
	default:
		return [4]byte{}, fmt.Errorf("%w: %q, want riff, rifx or rf64", wavefile.ErrUnsupportedContainer, name)
	}
}

// printOutput writes v as YAML, or calls text for the text format.
func printOutput(w io.Writer, format string, v any, text func(io.Writer)) error {
	if format == formatText {
		text(w)
		return nil
	}

	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	_, err = w.Write(out)

	return err
}
