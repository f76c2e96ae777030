package adpcm

// Encoder holds the state of one ADPCM stream. The zero value starts a new
// stream. An Encoder must not be shared between streams.
type Encoder struct {
	predicted int32
	index     int
}

// EncodeSample compresses one sample into a 4-bit code.
func (e *Encoder) EncodeSample(sample int16) byte {
	delta := int32(sample) - e.predicted

	var code byte
	if delta < 0 {
		code = 8
		delta = -delta
	}

	step := stepTable[e.index]
	diff := step >> 3

	if delta > step {
		code |= 4
		delta -= step
		diff += step
	}

	step >>= 1
	if delta > step {
		code |= 2
		delta -= step
		diff += step
	}

	step >>= 1
	if delta > step {
		code |= 1
		diff += step
	}

	if code&8 != 0 {
		e.predicted -= diff
	} else {
		e.predicted += diff
	}

	e.predicted = max(-32768, min(32767, e.predicted))
	e.index = clampIndex(e.index + indexTable[code&7])

	return code
}

// EncodeBlock compresses up to SamplesPerBlock samples into one block of
// BlockAlign bytes.
//
// The first sample goes into the header as is. It is also run through the
// encoder once so the step index stored next to it has adapted to it.
func (e *Encoder) EncodeBlock(block []int16) []byte {
	out := make([]byte, BlockAlign)
	if len(block) == 0 {
		return out
	}

	if len(block) > SamplesPerBlock {
		block = block[:SamplesPerBlock]
	}

	first := block[0]
	e.EncodeSample(first)
	e.predicted = int32(first)

	out[0] = byte(uint16(first))
	out[1] = byte(uint16(first) >> 8)
	out[2] = byte(e.index)
	out[3] = 0

	rest := block[1:]
	for i := 0; i < len(rest); i += 2 {
		lo := e.EncodeSample(rest[i])

		var hi byte
		if i+1 < len(rest) {
			hi = e.EncodeSample(rest[i+1])
		}

		out[headerSize+i/2] = hi<<4 | lo
	}

	return out
}
