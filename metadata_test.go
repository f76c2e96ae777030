package wavefile

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cwbudde/wavefile/bitdepth"
)

func sampleMetadata() *Container {
	bextReserved := make([]byte, bextReservedLen)
	copy(bextReserved, []byte{0xaa, 0xbb, 0xcc})

	cartReserved := make([]byte, cartReservedLen)
	copy(cartReserved, []byte{0x10, 0x20, 0x30})

	var umid [64]byte
	copy(umid[:], "UMID-0123456789")

	return &Container{
		Bext: &BroadcastExtension{
			Description:          "BWF description",
			Originator:           "originator",
			OriginatorReference:  "ref-001",
			OriginationDate:      "2026-02-06",
			OriginationTime:      "10:11:12",
			TimeReference:        1<<33 + 1234567,
			Version:              2,
			UMID:                 umid,
			LoudnessValue:        0xFF00,
			LoudnessRange:        450,
			MaxTruePeakLevel:     0xFFF6,
			MaxMomentaryLoudness: 12,
			MaxShortTermLoudness: 13,
			Reserved:             bextReserved,
			CodingHistory:        "A=PCM,F=48000,W=16,M=mono,T=wav",
		},
		Cart: &Cart{
			Version:            "0101",
			Title:              "cart title",
			Artist:             "cart artist",
			CutID:              "CUT-42",
			ClientID:           "CLIENT-9",
			Category:           "PROMO",
			Classification:     "CL-1",
			OutCue:             "fade out",
			StartDate:          "2026-02-06",
			StartTime:          "10:00:00",
			EndDate:            "2026-02-07",
			EndTime:            "10:00:00",
			ProducerAppID:      "wavefile-tests",
			ProducerAppVersion: "1.0",
			UserDef:            "user",
			LevelReference:     -12,
			PostTimer:          [16]uint32{'S', 1, 'E', 2},
			Reserved:           cartReserved,
			URL:                "https://example.com/cart",
			TagText:            "<tag/>",
		},
		Cue: &CueChunk{Points: []CuePoint{
			{ID: 1, Position: 0, DataChunkID: CIDData, SampleOffset: 0},
			{ID: 2, Position: 10, DataChunkID: CIDData, SampleOffset: 10},
		}},
		Smpl: &SamplerInfo{
			Manufacturer:  0x01000047,
			SamplePeriod:  20833,
			MIDIUnityNote: 60,
			Loops: []SampleLoop{
				{CuePointID: 2, Type: 1, Start: 10, End: 20, PlayCount: 0},
			},
		},
		Lists: []*ListChunk{
			{Type: CIDInfo, Items: []ListItem{
				{ID: [4]byte{'I', 'N', 'A', 'M'}, Text: "track title"},
				{ID: [4]byte{'I', 'A', 'R', 'T'}, Text: "artist"},
			}},
			{Type: CIDAdtl, Items: []ListItem{
				{ID: markerLabl, CueID: 1, Text: "start"},
				{ID: markerNote, CueID: 2, Text: "loop"},
				{ID: markerLtxt, CueID: 2, Text: "region", Labeled: &LabeledText{
					SampleLength: 10, PurposeID: 0x206e6772, Country: 1, Language: 9, Dialect: 1, CodePage: 1252,
				}},
			}},
			{Type: [4]byte{'x', 'y', 'z', 'w'}, Items: []ListItem{
				{ID: [4]byte{'r', 'a', 'w', ' '}, Data: []byte{1, 2, 3, 4}},
			}},
		},
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	for _, kind := range [][4]byte{CIDRIFF, CIDRIFX, CIDRF64} {
		t.Run(idString(kind), func(t *testing.T) {
			f := mustScratch(t, 1, 48000, bitdepth.PCM16, []float64{0, 1, 2, 3}, WithContainer(kind))

			c := f.Container()
			meta := sampleMetadata()
			c.Bext, c.Cart, c.Cue, c.Smpl, c.Lists = meta.Bext, meta.Cart, meta.Cue, meta.Smpl, meta.Lists

			buf, err := c.Bytes()
			if err != nil {
				t.Fatalf("Bytes(): %v", err)
			}

			got, err := ParseContainer(buf)
			if err != nil {
				t.Fatalf("ParseContainer(): %v", err)
			}

			if !reflect.DeepEqual(got.Bext, meta.Bext) {
				t.Fatalf("bext mismatch:\n got %+v\nwant %+v", got.Bext, meta.Bext)
			}

			if !reflect.DeepEqual(got.Cart, meta.Cart) {
				t.Fatalf("cart mismatch:\n got %+v\nwant %+v", got.Cart, meta.Cart)
			}

			if !reflect.DeepEqual(got.Cue, meta.Cue) {
				t.Fatalf("cue mismatch:\n got %+v\nwant %+v", got.Cue, meta.Cue)
			}

			if !reflect.DeepEqual(got.Smpl, meta.Smpl) {
				t.Fatalf("smpl mismatch:\n got %+v\nwant %+v", got.Smpl, meta.Smpl)
			}

			if !reflect.DeepEqual(got.Lists, meta.Lists) {
				t.Fatalf("LIST mismatch:\n got %+v\nwant %+v", got.Lists, meta.Lists)
			}

			if len(got.Unknown) != 0 {
				t.Fatalf("expected every chunk to be decoded, got unknown %+v", got.Unknown)
			}
		})
	}
}

func TestShortBextReadsAsZero(t *testing.T) {
	input := makeRIFF(t,
		testChunk{id: "bext", data: []byte("short")},
		testChunk{id: "fmt ", data: pcmFmtPayload(1, 8000, 16)},
		testChunk{id: "data", data: []byte{0, 0}},
	)

	c, err := ParseContainer(input)
	if err != nil {
		t.Fatalf("ParseContainer(): %v", err)
	}

	if c.Bext == nil || c.Bext.Description != "short" || c.Bext.TimeReference != 0 {
		t.Fatalf("bext=%+v, want description %q and zero fields", c.Bext, "short")
	}
}

func TestCueCountPastChunkEnd(t *testing.T) {
	input := makeRIFF(t,
		testChunk{id: "fmt ", data: pcmFmtPayload(1, 8000, 16)},
		testChunk{id: "data", data: []byte{0, 0}},
		testChunk{id: "cue ", data: []byte{5, 0, 0, 0}},
	)

	_, err := ParseContainer(input)
	if !errors.Is(err, ErrMalformedChunk) {
		t.Fatalf("ParseContainer()=%v, want %v", err, ErrMalformedChunk)
	}
}

func TestFactChunk(t *testing.T) {
	input := makeRIFF(t,
		testChunk{id: "fmt ", data: pcmFmtPayload(1, 8000, 16)},
		testChunk{id: "fact", data: []byte{0xD2, 0x04, 0, 0, 9, 9}},
		testChunk{id: "data", data: []byte{0, 0}},
	)

	c, err := ParseContainer(input)
	if err != nil {
		t.Fatalf("ParseContainer(): %v", err)
	}

	if c.Fact == nil || c.Fact.SampleLength != 1234 {
		t.Fatalf("fact=%+v, want sample length 1234", c.Fact)
	}

	if !reflect.DeepEqual(c.Fact.Extra, []byte{9, 9}) {
		t.Fatalf("fact extra=%v, want [9 9]", c.Fact.Extra)
	}
}
