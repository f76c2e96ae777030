package bytedata

import "fmt"

// Swap reverses the byte order of every stride-sized field in buf[start:end]
// in place.
func Swap(buf []byte, stride, start, end int) error {
	if stride < 1 || start < 0 || end > len(buf) || start > end || (end-start)%stride != 0 {
		return fmt.Errorf("%w: can't swap [%d:%d] in steps of %d", ErrBufferLength, start, end, stride)
	}

	for i := start; i < end; i += stride {
		swap(buf[i : i+stride])
	}

	return nil
}

func swap(field []byte) {
	for i, j := 0, len(field)-1; i < j; i, j = i+1, j-1 {
		field[i], field[j] = field[j], field[i]
	}
}
