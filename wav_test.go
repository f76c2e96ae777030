package wavefile

import "testing"

func TestNullTermStr(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"with null", []byte{'h', 'e', 'l', 'l', 'o', 0, 'x'}, "hello"},
		{"no null", []byte{'h', 'e', 'l', 'l', 'o'}, "hello"},
		{"empty", []byte{}, ""},
		{"only null", []byte{0}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nullTermStr(tt.in)
			if got != tt.want {
				t.Fatalf("nullTermStr(%v)=%q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClen(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want int
	}{
		{"with null at 3", []byte{'a', 'b', 'c', 0, 'd'}, 3},
		{"no null", []byte{'a', 'b', 'c'}, 3},
		{"empty", []byte{}, 0},
		{"null first", []byte{0, 'a'}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clen(tt.in)
			if got != tt.want {
				t.Fatalf("clen(%v)=%d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFieldReaderShortPayload(t *testing.T) {
	r := newFieldReader(littleEndian, []byte{1, 0, 0})

	if got := r.uint16("first"); got != 1 {
		t.Fatalf("uint16()=%d, want 1", got)
	}

	if got := r.uint16("second"); got != 0 || r.err == nil {
		t.Fatalf("uint16() past the end=%d err=%v, want 0 and an error", got, r.err)
	}
}

func TestFieldWriterByteOrder(t *testing.T) {
	tests := []struct {
		name  string
		order byteOrder
		want  []byte
	}{
		{"little endian", littleEndian, []byte{0x02, 0x01, 0x06, 0x05, 0x04, 0x03}},
		{"big endian", bigEndian, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newFieldWriter(tt.order)
			w.uint16(0x0102)
			w.uint32(0x03040506)

			if got := w.Bytes(); string(got) != string(tt.want) {
				t.Fatalf("Bytes()=% x, want % x", got, tt.want)
			}
		})
	}
}
