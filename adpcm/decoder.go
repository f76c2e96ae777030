package adpcm

// Decoder holds the state of one ADPCM stream. Every block header resets
// the predictor and the step index, so a Decoder can be reused across the
// blocks of a stream but must not be shared between goroutines.
type Decoder struct {
	predicted int32
	index     int
	step      int32
}

// DecodeSample expands one 4-bit code.
func (d *Decoder) DecodeSample(code byte) int16 {
	code &= 0x0F

	if d.step == 0 {
		d.step = stepTable[d.index]
	}

	var diff int32
	if code&4 != 0 {
		diff += d.step
	}

	if code&2 != 0 {
		diff += d.step >> 1
	}

	if code&1 != 0 {
		diff += d.step >> 2
	}

	diff += d.step >> 3

	if code&8 != 0 {
		diff = -diff
	}

	d.predicted = max(-32767, min(32767, d.predicted+diff))
	d.index = clampIndex(d.index + indexTable[code])
	d.step = stepTable[d.index]

	return int16(d.predicted)
}

// DecodeBlock expands one block: the header sample followed by two samples
// per byte. Blocks shorter than the 4-byte header yield nothing. A header
// sample of -32768 is read as -32767.
func (d *Decoder) DecodeBlock(block []byte) []int16 {
	if len(block) < headerSize {
		return nil
	}

	d.predicted = max(-32767, int32(int16(uint16(block[0])|uint16(block[1])<<8)))
	d.index = clampIndex(int(block[2]))
	d.step = stepTable[d.index]

	out := make([]int16, 0, 1+2*(len(block)-headerSize))
	out = append(out, int16(d.predicted))

	for _, b := range block[headerSize:] {
		out = append(out, d.DecodeSample(b&0x0F), d.DecodeSample(b>>4))
	}

	return out
}
