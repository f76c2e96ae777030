package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/wavefile/chunks"
)

// chunkNode is one chunk of the layout printed by the chunks command.
type chunkNode struct {
	ID       string      `yaml:"id"`
	Offset   int         `yaml:"offset"`
	Size     int         `yaml:"size"`
	Form     string      `yaml:"form,omitempty"`
	Children []chunkNode `yaml:"children,omitempty"`
}

type chunkLayout struct {
	Container string      `yaml:"container"`
	Size      uint32      `yaml:"size"`
	Chunks    []chunkNode `yaml:"chunks"`
}

func newChunksCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chunks <file>",
		Short: "List the chunks of a WAVE file with offsets and sizes",
		Long: `List the chunks of a WAVE file with offsets and sizes.

The file is only framed, not decoded, so files with a broken fmt chunk or
unknown codec can still be inspected. LIST chunks show their sub chunks.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			tree, err := chunks.Parse(buf)
			if err != nil {
				return fmt.Errorf("failed to frame %s: %w", args[0], err)
			}

			layout := chunkLayout{
				Container: string(tree.ID[:]),
				Size:      tree.Size,
				Chunks:    chunkNodes(tree.Chunks),
			}

			return printOutput(cmd.OutOrStdout(), opts.cfg.outputFormat(), layout, layout.text)
		},
	}
}

func chunkNodes(list []chunks.Chunk) []chunkNode {
	out := make([]chunkNode, 0, len(list))

	for _, c := range list {
		n := chunkNode{ID: string(c.ID[:]), Offset: c.Start - 8, Size: c.Len()}
		if c.IsList() {
			n.Form = string(c.Format[:])
			n.Children = chunkNodes(c.SubChunks)
		}

		out = append(out, n)
	}

	return out
}

func (l chunkLayout) text(w io.Writer) {
	fmt.Fprintf(w, "%s %d bytes\n", l.Container, l.Size)
	writeNodes(w, l.Chunks, 1)
}

func writeNodes(w io.Writer, nodes []chunkNode, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, n := range nodes {
		if n.Form != "" {
			fmt.Fprintf(w, "%s%s(%s) @%d %d bytes\n", indent, n.ID, n.Form, n.Offset, n.Size)
			writeNodes(w, n.Children, depth+1)

			continue
		}

		fmt.Fprintf(w, "%s%s @%d %d bytes\n", indent, n.ID, n.Offset, n.Size)
	}
}
