package wavefile

import "testing"

func TestContainerChunkAPIs(t *testing.T) {
	c := &Container{
		Fmt: &ExtensibleFormat{
			BasicFormat:        BasicFormat{AudioFormat: 0xFFFE, NumChannels: 2},
			ValidBitsPerSample: 16,
			ChannelMask:        0x3,
			SubFormat:          subFormatFor(1),
			HasSubFormat:       true,
		},
		Unknown: []RawChunk{
			{ID: [4]byte{'J', 'U', 'N', 'K'}, Data: []byte{1, 2, 3}, BeforeData: true},
		},
	}

	gotFmt, ok := c.FormatChunk().(*ExtensibleFormat)
	if !ok {
		t.Fatalf("FormatChunk() is %T, want *ExtensibleFormat", c.FormatChunk())
	}

	if gotFmt == c.Fmt {
		t.Fatal("format chunk should be copied")
	}

	gotFmt.ChannelMask = 0x4
	if c.Fmt.(*ExtensibleFormat).ChannelMask != 0x3 {
		t.Fatal("format chunk copy should not mutate the container")
	}

	raw := c.RawChunks()
	if len(raw) != 1 {
		t.Fatalf("expected 1 raw chunk, got %d", len(raw))
	}

	raw[0].Data[0] = 9
	if c.Unknown[0].Data[0] != 1 {
		t.Fatal("raw chunks should be copied")
	}

	in := []RawChunk{{ID: [4]byte{'t', 'e', 's', 't'}, Data: []byte{4, 5, 6}}}
	c.SetRawChunks(in)

	in[0].Data[0] = 0
	if len(c.Unknown) != 1 || c.Unknown[0].Data[0] != 4 {
		t.Fatal("SetRawChunks should copy input")
	}
}

func TestFileChunkAPIs(t *testing.T) {
	f := mustScratch(t, 1, 8000, "16", []float64{1, 2})

	f.SetRawChunks([]RawChunk{{ID: [4]byte{'x', 't', 'r', 'a'}, Data: []byte{7, 8}}})

	if got := f.RawChunks(); len(got) != 1 || got[0].ID != [4]byte{'x', 't', 'r', 'a'} {
		t.Fatalf("set raw chunks failed: %+v", got)
	}

	if _, ok := f.FormatChunk().(*BasicFormat); !ok {
		t.Fatalf("FormatChunk() is %T, want *BasicFormat", f.FormatChunk())
	}

	var empty *File
	if empty.FormatChunk() != nil || empty.RawChunks() != nil || empty.Container() != nil {
		t.Fatal("a nil file should expose no chunks")
	}
}
