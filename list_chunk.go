package wavefile

import (
	"fmt"

	"github.com/cwbudde/wavefile/chunks"
)

var (
	// adtl sub chunks, see
	// https://sites.google.com/site/musicgapi/technical-documents/wav-file-format#adtl
	markerLabl = [4]byte{'l', 'a', 'b', 'l'}
	markerNote = [4]byte{'n', 'o', 't', 'e'}
	markerLtxt = [4]byte{'l', 't', 'x', 't'}
)

const ltxtFixedSize = 20

// ListChunk is a LIST chunk. INFO lists hold text tags, adtl lists hold
// labels of cue points. Lists of any other type keep their sub chunks raw.
type ListChunk struct {
	Type  [4]byte
	Items []ListItem
}

// ListItem is one sub chunk of a LIST.
type ListItem struct {
	ID [4]byte
	// Text is the value of INFO tags and the text of labl, note and ltxt.
	Text string
	// CueID is the cue point an adtl item refers to.
	CueID uint32
	// Labeled is set for ltxt items.
	Labeled *LabeledText
	// Data is the payload of sub chunks that aren't decoded.
	Data []byte
}

// LabeledText holds the fields of an ltxt sub chunk that precede its text.
type LabeledText struct {
	SampleLength uint32
	PurposeID    uint32
	Country      uint16
	Language     uint16
	Dialect      uint16
	CodePage     uint16
}

func (l *ListChunk) clone() *ListChunk {
	if l == nil {
		return nil
	}

	out := &ListChunk{Type: l.Type, Items: make([]ListItem, len(l.Items))}

	for i, item := range l.Items {
		if item.Labeled != nil {
			lt := *item.Labeled
			item.Labeled = &lt
		}

		item.Data = append([]byte(nil), item.Data...)
		out.Items[i] = item
	}

	return out
}

func cloneLists(lists []*ListChunk) []*ListChunk {
	if lists == nil {
		return nil
	}

	out := make([]*ListChunk, len(lists))
	for i, l := range lists {
		out[i] = l.clone()
	}

	return out
}

type listChunkHandler struct{}

func (h *listChunkHandler) CanHandle(chunkID [4]byte, _ [4]byte) bool {
	return chunkID == CIDList
}

func (h *listChunkHandler) Decode(c *Container, ch chunks.Chunk, payload []byte) error {
	if len(payload) < 4 {
		return fmt.Errorf("%w: LIST without a form type", ErrMalformedChunk)
	}

	list := &ListChunk{Type: ch.Format}

	for _, sub := range ch.SubChunks {
		offset := sub.Start - ch.Start

		item, err := decodeListItem(c.order(), list.Type, sub.ID, payload[offset:offset+sub.Len()])
		if err != nil {
			return fmt.Errorf("failed to read LIST %q item %q: %w", list.Type[:], sub.ID[:], err)
		}

		list.Items = append(list.Items, item)
	}

	c.Lists = append(c.Lists, list)

	return nil
}

func decodeListItem(order byteOrder, listType, id [4]byte, payload []byte) (ListItem, error) {
	item := ListItem{ID: id}

	switch {
	case listType == CIDInfo:
		item.Text = nullTermStr(payload)
	case listType == CIDAdtl && (id == markerLabl || id == markerNote):
		r := newFieldReader(order, payload)

		item.CueID = r.uint32("cue point id")
		if r.err != nil {
			return item, fmt.Errorf("%w: %w", ErrMalformedChunk, r.err)
		}

		item.Text = nullTermStr(r.rest())
	case listType == CIDAdtl && id == markerLtxt:
		r := newFieldReader(order, payload)

		lt := &LabeledText{}
		item.CueID = r.uint32("cue point id")
		lt.SampleLength = r.uint32("sample length")
		lt.PurposeID = r.uint32("purpose id")
		lt.Country = r.uint16("country")
		lt.Language = r.uint16("language")
		lt.Dialect = r.uint16("dialect")
		lt.CodePage = r.uint16("code page")

		if r.err != nil || len(payload) < ltxtFixedSize {
			return item, fmt.Errorf("%w: ltxt of %d bytes", ErrMalformedChunk, len(payload))
		}

		item.Labeled = lt
		item.Text = nullTermStr(r.rest())
	default:
		item.Data = append([]byte(nil), payload...)
	}

	return item, nil
}

func (h *listChunkHandler) Encode(c *Container, w *chunks.Writer) error {
	for _, list := range c.Lists {
		w.WriteList(list.Type, func(lw *chunks.Writer) {
			for _, item := range list.Items {
				lw.WriteChunk(item.ID, encodeListItem(c.order(), list.Type, item))
			}
		})
	}

	return nil
}

func encodeListItem(order byteOrder, listType [4]byte, item ListItem) []byte {
	zstr := append([]byte(item.Text), 0)

	switch {
	case listType == CIDInfo:
		return zstr
	case listType == CIDAdtl && (item.ID == markerLabl || item.ID == markerNote):
		fw := newFieldWriter(order)
		fw.uint32(item.CueID)
		fw.raw(zstr)

		return fw.Bytes()
	case listType == CIDAdtl && item.ID == markerLtxt:
		lt := item.Labeled
		if lt == nil {
			lt = &LabeledText{}
		}

		fw := newFieldWriter(order)
		fw.uint32(item.CueID)
		fw.uint32(lt.SampleLength)
		fw.uint32(lt.PurposeID)
		fw.uint16(lt.Country)
		fw.uint16(lt.Language)
		fw.uint16(lt.Dialect)
		fw.uint16(lt.CodePage)

		fw.raw([]byte(item.Text))

		return fw.Bytes()
	default:
		return item.Data
	}
}
