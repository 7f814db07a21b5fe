package stream

import (
	"testing"

	"github.com/overlaycore/jxlenc/internal/bitio"
)

func TestStreamerByteAlignedSectionsConcatenateExactly(t *testing.T) {
	w1 := bitio.NewWriter(8)
	w1.Write(8, 0xAA)
	w1.ZeroPadToByte()
	w2 := bitio.NewWriter(8)
	w2.Write(8, 0xBB)
	w2.ZeroPadToByte()

	s := NewStreamer([]byte{0x01, 0x02}, []GroupSection{{Channels: []*bitio.Writer{w1, w2}}})
	out := drainAll(s)
	want := []byte{0x01, 0x02, 0xAA, 0xBB}
	if string(out) != string(want) {
		t.Fatalf("out = %x, want %x", out, want)
	}
}

func TestStreamerBitShiftedConcatenation(t *testing.T) {
	w1 := bitio.NewWriter(8)
	w1.Write(3, 0b101) // leaves a 3-bit partial byte, no flushed bytes
	w2 := bitio.NewWriter(8)
	w2.Write(5, 0b10110) // combined with w1's 3 bits should flush one byte

	s := NewStreamer(nil, []GroupSection{{Channels: []*bitio.Writer{w1, w2}}})
	out := drainAll(s)
	if len(out) != 1 {
		t.Fatalf("expected exactly 1 byte from 8 total bits, got %d: %x", len(out), out)
	}
	want := byte(0b101) | byte(0b10110)<<3
	if out[0] != want {
		t.Fatalf("out[0] = %#b, want %#b", out[0], want)
	}
}

func TestStreamerSizeMatchesTotalDrained(t *testing.T) {
	w1 := bitio.NewWriter(8)
	for i := 0; i < 100; i++ {
		w1.Write(7, uint64(i))
	}
	s := NewStreamer([]byte{0xFF}, []GroupSection{{Channels: []*bitio.Writer{w1}}})
	out := drainAll(s)
	if len(out) != s.Size() {
		t.Fatalf("drained %d bytes, Size() = %d", len(out), s.Size())
	}
}

func TestStreamerWriteReturnsZeroWhenDone(t *testing.T) {
	s := NewStreamer([]byte{1, 2, 3}, nil)
	buf := make([]byte, 32)
	n := s.Write(buf)
	if n != 3 {
		t.Fatalf("first Write = %d, want 3", n)
	}
	if n2 := s.Write(buf); n2 != 0 {
		t.Fatalf("second Write = %d, want 0", n2)
	}
}

func TestStreamerWriteInSmallChunks(t *testing.T) {
	payload := make([]*bitio.Writer, 0)
	w := bitio.NewWriter(64)
	for i := 0; i < 50; i++ {
		w.Write(8, uint64(i))
	}
	payload = append(payload, w)
	s := NewStreamer(nil, []GroupSection{{Channels: payload}})

	var out []byte
	buf := make([]byte, 7) // deliberately not a multiple of 8
	for {
		n := s.Write(buf)
		if n == 0 {
			break
		}
		out = append(out, buf[:n]...)
	}
	if len(out) != 50 {
		t.Fatalf("drained %d bytes in small chunks, want 50", len(out))
	}
	for i, b := range out {
		if int(b) != i {
			t.Fatalf("out[%d] = %d, want %d", i, b, i)
		}
	}
}

func drainAll(s *Streamer) []byte {
	var out []byte
	buf := make([]byte, 32)
	for {
		n := s.Write(buf)
		if n == 0 {
			break
		}
		out = append(out, buf[:n]...)
	}
	return out
}
