package wavefile

import (
	"bytes"

	"github.com/cwbudde/wavefile/chunks"
)

const (
	cartVersionLen            = 4
	cartTitleLen              = 64
	cartArtistLen             = 64
	cartCutIDLen              = 64
	cartClientIDLen           = 64
	cartCategoryLen           = 64
	cartClassificationLen     = 64
	cartOutCueLen             = 64
	cartStartDateLen          = 10
	cartStartTimeLen          = 8
	cartEndDateLen            = 10
	cartEndTimeLen            = 8
	cartProducerAppIDLen      = 64
	cartProducerAppVersionLen = 64
	cartUserDefLen            = 64
	cartReservedLen           = 276
	cartFixedSize             = 1024
)

// Cart is the AES46 cart chunk used by broadcast automation systems.
type Cart struct {
	Version            string
	Title              string
	Artist             string
	CutID              string
	ClientID           string
	Category           string
	Classification     string
	OutCue             string
	StartDate          string
	StartTime          string
	EndDate            string
	EndTime            string
	ProducerAppID      string
	ProducerAppVersion string
	UserDef            string
	LevelReference     int32
	// PostTimer holds eight usage/value pairs, usage first.
	PostTimer [16]uint32
	Reserved  []byte
	URL       string
	TagText   string
}

func (c *Cart) clone() *Cart {
	if c == nil {
		return nil
	}

	out := *c
	out.Reserved = append([]byte(nil), c.Reserved...)

	return &out
}

// cartFields lists the fixed text fields in file order.
func (c *Cart) cartFields() []struct {
	field *string
	size  int
} {
	return []struct {
		field *string
		size  int
	}{
		{&c.Version, cartVersionLen},
		{&c.Title, cartTitleLen},
		{&c.Artist, cartArtistLen},
		{&c.CutID, cartCutIDLen},
		{&c.ClientID, cartClientIDLen},
		{&c.Category, cartCategoryLen},
		{&c.Classification, cartClassificationLen},
		{&c.OutCue, cartOutCueLen},
		{&c.StartDate, cartStartDateLen},
		{&c.StartTime, cartStartTimeLen},
		{&c.EndDate, cartEndDateLen},
		{&c.EndTime, cartEndTimeLen},
		{&c.ProducerAppID, cartProducerAppIDLen},
		{&c.ProducerAppVersion, cartProducerAppVersionLen},
		{&c.UserDef, cartUserDefLen},
	}
}

type cartChunkHandler struct{}

func (h *cartChunkHandler) CanHandle(chunkID [4]byte, _ [4]byte) bool {
	return chunkID == CIDCart
}

func (h *cartChunkHandler) Decode(c *Container, _ chunks.Chunk, payload []byte) error {
	r := newFieldReader(c.order(), payload)

	cart := &Cart{}
	for _, f := range cart.cartFields() {
		*f.field = r.fixedString(f.size)
	}

	cart.LevelReference = int32(r.uint32("level reference"))

	for i := range cart.PostTimer {
		cart.PostTimer[i] = r.uint32("post timer")
	}

	cart.Reserved = r.take(cartReservedLen)

	if extra := r.rest(); len(extra) > 0 {
		if idx := bytes.IndexByte(extra, 0); idx >= 0 {
			cart.URL = string(extra[:idx])
			cart.TagText = string(bytes.TrimRight(extra[idx+1:], "\x00"))
		} else {
			cart.URL = string(extra)
		}
	}

	c.Cart = cart

	return nil
}

func (h *cartChunkHandler) Encode(c *Container, w *chunks.Writer) error {
	if c.Cart == nil {
		return nil
	}

	w.WriteChunk(CIDCart, encodeCartChunk(c.order(), c.Cart))

	return nil
}

func encodeCartChunk(order byteOrder, cart *Cart) []byte {
	fw := newFieldWriter(order)
	fw.buf.Grow(cartFixedSize + len(cart.URL) + len(cart.TagText) + 2)

	for _, f := range cart.cartFields() {
		fw.fixedString(*f.field, f.size)
	}

	fw.uint32(uint32(cart.LevelReference))

	for _, v := range cart.PostTimer {
		fw.uint32(v)
	}

	reserved := make([]byte, cartReservedLen)
	copy(reserved, cart.Reserved)
	fw.raw(reserved)

	if cart.URL != "" || cart.TagText != "" {
		fw.buf.WriteString(cart.URL)
		fw.buf.WriteByte(0)

		if cart.TagText != "" {
			fw.buf.WriteString(cart.TagText)
			fw.buf.WriteByte(0)
		}
	}

	return fw.Bytes()
}
