package commands

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/go-audio/riff"
	"github.com/spf13/cobra"

	"github.com/cwbudde/wavefile"
	"github.com/cwbudde/wavefile/chunks"
)

type fileInfo struct {
	Path         string            `yaml:"path"`
	Container    string            `yaml:"container"`
	AudioFormat  uint16            `yaml:"audio_format"`
	SubFormat    string            `yaml:"sub_format,omitempty"`
	BitDepth     string            `yaml:"bit_depth"`
	Channels     int               `yaml:"channels"`
	SampleRate   int               `yaml:"sample_rate"`
	Samples      int               `yaml:"samples"`
	Duration     string            `yaml:"duration"`
	RIFFEstimate string            `yaml:"riff_estimate,omitempty"`
	Chunks       []string          `yaml:"chunks"`
	Description  string            `yaml:"description,omitempty"`
	Tags         map[string]string `yaml:"tags,omitempty"`
	CuePoints    int               `yaml:"cue_points,omitempty"`
	Loops        int               `yaml:"loops,omitempty"`
}

func newInfoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Show the format and metadata of a WAVE file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, buf, err := readWAV(args[0])
			if err != nil {
				return err
			}

			info, err := describe(args[0], f, buf)
			if err != nil {
				return err
			}

			return printOutput(cmd.OutOrStdout(), opts.cfg.outputFormat(), info, info.text)
		},
	}
}

func describe(path string, f *wavefile.File, buf []byte) (*fileInfo, error) {
	c := f.Container()

	tree, err := chunks.Parse(buf)
	if err != nil {
		return nil, err
	}

	info := &fileInfo{
		Path:        path,
		Container:   string(c.Kind[:]),
		AudioFormat: c.Fmt.Header().AudioFormat,
		BitDepth:    f.BitDepth().String(),
		Channels:    f.NumChannels(),
		SampleRate:  f.SampleRate(),
		Samples:     f.NumSamples(),
		Duration:    f.Duration().String(),
	}

	if ext, ok := c.Fmt.(*wavefile.ExtensibleFormat); ok && ext.HasSubFormat {
		info.SubFormat = ext.GUID().String()
	}

	// go-audio/riff only reads RIFF and estimates from the container size.
	if c.Kind == wavefile.CIDRIFF {
		if d, err := riff.Duration(bytes.NewReader(buf)); err == nil && d > 0 {
			info.RIFFEstimate = d.String()
		}
	}

	for _, ch := range tree.Chunks {
		info.Chunks = append(info.Chunks, string(ch.ID[:]))
	}

	if c.Bext != nil {
		info.Description = c.Bext.Description
	}

	if c.Cue != nil {
		info.CuePoints = len(c.Cue.Points)
	}

	if c.Smpl != nil {
		info.Loops = len(c.Smpl.Loops)
	}

	for _, l := range c.Lists {
		if l.Type != wavefile.CIDInfo {
			continue
		}

		for _, item := range l.Items {
			if info.Tags == nil {
				info.Tags = map[string]string{}
			}

			info.Tags[string(item.ID[:])] = item.Text
		}
	}

	return info, nil
}

func (i *fileInfo) text(w io.Writer) {
	fmt.Fprintf(w, "%s: %s, %d channels @ %d Hz, %s bits, %d samples, %s\n",
		i.Path, i.Container, i.Channels, i.SampleRate, i.BitDepth, i.Samples, i.Duration)
	fmt.Fprintf(w, "chunks: %v\n", i.Chunks)

	if i.Description != "" {
		fmt.Fprintf(w, "description: %s\n", i.Description)
	}

	for _, id := range slices.Sorted(maps.Keys(i.Tags)) {
		fmt.Fprintf(w, "%s: %s\n", id, i.Tags[id])
	}
}
