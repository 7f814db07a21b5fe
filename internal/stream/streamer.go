// Package stream implements the output streamer (spec §4.6): it
// bit-stitches an ordered sequence of independently-built bitio.Writer
// payloads into one contiguous byte buffer, then drains that buffer to
// the caller in fixed-size chunks.
//
// Grounded on the teacher codec's internal/bitio accumulator shape
// (shift-and-OR staging is the same trick LosslessWriter.Write uses
// internally, just replayed here across already-flushed byte slices
// instead of live bit writes) and internal/container's chunked-copy
// conventions for assembling a final output buffer from independently
// produced pieces.
package stream

import (
	"encoding/binary"

	"github.com/overlaycore/jxlenc/internal/bitio"
)

// GroupSection is one AC or DC group's channel-slot writers. Their bits
// are concatenated without byte alignment between channels (spec §4.6);
// only once every channel in the group has been appended does the
// streamer pad to a byte boundary, if needed.
type GroupSection struct {
	Channels []*bitio.Writer
}

// Streamer drains a fully-assembled frame (header bytes plus an ordered
// list of groups) into caller-supplied buffers.
type Streamer struct {
	buf []byte
	pos int
}

// NewStreamer bit-stitches the header and every group's channel writers
// into one contiguous buffer, ready for chunked draining via Write.
func NewStreamer(headerBytes []byte, groups []GroupSection) *Streamer {
	out := append([]byte(nil), headerBytes...)

	var shift uint
	var carry byte
	for _, g := range groups {
		for _, w := range g.Channels {
			if w == nil {
				continue // group never encoded (e.g. a failed or skipped runner call)
			}
			out, shift, carry = appendBitShifted(out, w, shift, carry)
		}
		if shift != 0 {
			out = append(out, carry)
			shift = 0
			carry = 0
		}
	}
	return &Streamer{buf: out}
}

// appendBitShifted folds one writer's payload into out, continuing from
// a `shift`-bit carry left over from the previous writer in the same
// group. It returns the new trailing carry for the writer that follows.
func appendBitShifted(out []byte, w *bitio.Writer, shift uint, carry byte) ([]byte, uint, byte) {
	data := w.Buffer()
	partialBits := w.BitsInBuffer()
	partialByte := w.PartialByte()

	if shift == 0 {
		out = append(out, data...)
		return out, partialBits, partialByte
	}

	for _, b := range data {
		out = append(out, carry|(b<<shift))
		carry = b >> (8 - shift)
	}

	merged := uint16(carry) | uint16(partialByte)<<shift
	total := shift + partialBits
	if total >= 8 {
		out = append(out, byte(merged))
		return out, total - 8, byte(merged >> 8)
	}
	return out, total, byte(merged)
}

// Write copies as much of the remaining buffer as fits into dst,
// returning the number of bytes written. A return of 0 means the frame
// has been fully drained. dst should be at least 32 bytes, per spec
// §4.6's per-call contract; this function itself tolerates any size.
func (s *Streamer) Write(dst []byte) int {
	remaining := s.buf[s.pos:]
	if len(remaining) == 0 {
		return 0
	}
	n := len(dst)
	if n > len(remaining) {
		n = len(remaining)
	}
	copyChunked(dst[:n], remaining[:n])
	s.pos += n
	return n
}

// Size returns the exact total byte count the streamer will emit across
// all Write calls.
func (s *Streamer) Size() int {
	return len(s.buf)
}

// copyChunked copies src into dst 8 bytes at a time (the throughput path
// spec §4.6/§9 calls for), falling back to a scalar byte loop for the
// final len(src)%8 bytes.
func copyChunked(dst, src []byte) {
	n := len(src)
	i := 0
	for ; i+8 <= n; i += 8 {
		binary.LittleEndian.PutUint64(dst[i:i+8], binary.LittleEndian.Uint64(src[i:i+8]))
	}
	for ; i < n; i++ {
		dst[i] = src[i]
	}
}
