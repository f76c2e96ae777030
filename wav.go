package wavefile

import (
	"errors"

	"github.com/cwbudde/wavefile/bitdepth"
	"github.com/cwbudde/wavefile/bytedata"
	"github.com/cwbudde/wavefile/chunks"
	"github.com/cwbudde/wavefile/internal/logging"
)

var logger = logging.NewLogger("wavefile")

var (
	// CIDRIFF, CIDRIFX and CIDRF64 are the supported container ids.
	CIDRIFF = chunks.RIFFID
	CIDRIFX = chunks.RIFXID
	CIDRF64 = chunks.RF64ID

	// CIDFmt is the chunk ID for the fmt chunk.
	CIDFmt = chunks.FmtID
	// CIDData is the chunk ID for the data chunk.
	CIDData = chunks.DataID
	// CIDList is the chunk ID for a LIST chunk.
	CIDList = chunks.ListID
	// CIDDS64 is the chunk ID for the RF64 size chunk.
	CIDDS64 = chunks.DS64ID
	// CIDSmpl is the chunk ID for a smpl chunk.
	CIDSmpl = [4]byte{'s', 'm', 'p', 'l'}
	// CIDInfo is the form type of a LIST chunk holding text tags.
	CIDInfo = [4]byte{'I', 'N', 'F', 'O'}
	// CIDAdtl is the form type of a LIST chunk holding cue labels.
	CIDAdtl = [4]byte{'a', 'd', 't', 'l'}
	// CIDCue is the chunk ID for the cue chunk.
	CIDCue = [4]byte{'c', 'u', 'e', 0x20}
	// CIDFact is the chunk ID for the fact chunk.
	CIDFact = [4]byte{'f', 'a', 'c', 't'}
	// CIDBext is the chunk ID for the broadcast extension chunk.
	CIDBext = [4]byte{'b', 'e', 'x', 't'}
	// CIDCart is the chunk ID for the cart chunk.
	CIDCart = [4]byte{'c', 'a', 'r', 't'}
	// CIDJunk is the chunk ID for a padding chunk.
	CIDJunk = [4]byte{'j', 'u', 'n', 'k'}
)

var (
	ErrInvalidBitDepth      = bitdepth.ErrInvalidBitDepth
	ErrOverflow             = bytedata.ErrOverflow
	ErrInvalidNumber        = bytedata.ErrInvalidNumber
	ErrMalformedChunk       = chunks.ErrMalformedChunk
	ErrMissingChunk         = chunks.ErrMissingChunk
	ErrUnsupportedContainer = chunks.ErrUnsupportedContainer
	ErrChunkTooLarge        = chunks.ErrChunkTooLarge

	// ErrUnsupportedConversion is returned when a file doesn't meet the
	// preconditions of a conversion, like ADPCM needing mono 8 kHz audio.
	ErrUnsupportedConversion = errors.New("unsupported conversion")
	// ErrSampleIndex is returned for a sample index outside the data chunk.
	ErrSampleIndex = errors.New("sample index out of range")
	// ErrInvalidChannels is returned for a channel count of zero or one
	// that makes the block align overflow.
	ErrInvalidChannels = errors.New("invalid number of channels")
	// ErrInvalidSampleRate is returned for a sample rate of zero or one that
	// makes the byte rate overflow.
	ErrInvalidSampleRate = errors.New("invalid sample rate")
)

func nullTermStr(b []byte) string {
	return string(b[:clen(b)])
}

func clen(num []byte) int {
	for i := range num {
		if num[i] == 0 {
			return i
		}
	}

	return len(num)
}

func idString(id [4]byte) string {
	return string(id[:])
}
