package entropy

import (
	"github.com/overlaycore/jxlenc/internal/bitio"
	"github.com/overlaycore/jxlenc/internal/prefixcode"
)

// GradientPredict implements the fixed MED-style gradient predictor from
// spec §4.3, operating on actual (already-known) sample values.
func GradientPredict(left, top, topleft int32) int32 {
	grad := left - topleft + top
	d := (left - top) ^ (top - topleft)
	var clamp int32
	if d < 0 {
		clamp = top
	} else {
		clamp = left
	}
	s := (left - topleft) ^ (top - topleft)
	if s < 0 {
		return grad
	}
	return clamp
}

// ResidualRow computes packed-signed prediction residuals for one row of
// width samples. cur and prev must each have length width+1: index 0 is
// the x=-1 pad sample (replicated by the caller per spec §4.4), index
// 1+x is the sample at column x. prev is the equivalent row above (or
// identical to cur, on the first row).
func ResidualRow(cur, prev []int32, width int) []uint32 {
	residuals := make([]uint32, width)
	for x := 0; x < width; x++ {
		left := cur[x]
		top := prev[x+1]
		topleft := prev[x]
		sample := cur[x+1]
		pred := GradientPredict(left, top, topleft)
		residuals[x] = PackSigned(sample - pred)
	}
	return residuals
}

// Sink receives tokenized residuals and runs; CodeSink emits them to the
// bitstream, Histogram (collector.go) accumulates frequencies for §4.2.
type Sink interface {
	EmitToken(token, nbits int, bits uint32)
	EmitRun(length int)
}

// CodeSink is the bitstream-emitting Sink: one channel slot's prefix code
// plus the bit writer for the group/channel currently being encoded.
type CodeSink struct {
	Code   *prefixcode.Code
	Writer *bitio.Writer
}

func (s *CodeSink) EmitToken(token, nbits int, bits uint32) {
	s.Code.EmitToken(s.Writer, token, nbits, bits)
}

func (s *CodeSink) EmitRun(length int) {
	s.Code.EmitRun(s.Writer, length)
}

// RunState carries the in-progress zero-run length across chunk and row
// boundaries for one channel's traversal of a group (spec §4.3 "Maintain
// an integer run carrying zero-count across chunks").
type RunState struct {
	Run int
}

// ProcessRow feeds one row's residuals through the chunk-of-8 run-length
// logic, emitting raw tokens and LZ77 runs to sink. Call FlushRun once
// after the channel's last row to emit any residual, unflushed run.
func ProcessRow(residuals []uint32, state *RunState, sink Sink) {
	n := len(residuals)
	for start := 0; start < n; start += 8 {
		end := start + 8
		if end > n {
			end = n
		}
		processChunk(residuals[start:end], state, sink)
	}
}

// FlushRun emits whatever zero-run remains open at the end of a channel's
// traversal: as an LZ77 run if it exceeds kLZ77MinLength, else as literal
// zero tokens.
func FlushRun(state *RunState, sink Sink) {
	if state.Run == 0 {
		return
	}
	if state.Run > prefixcode.LZ77MinLength {
		sink.EmitRun(state.Run)
	} else {
		emitZeros(state.Run, sink)
	}
	state.Run = 0
}

func processChunk(chunk []uint32, state *RunState, sink Sink) {
	prefix := 0
	for prefix < len(chunk) && chunk[prefix] == 0 {
		prefix++
	}
	allZero := prefix == len(chunk)

	switch {
	case allZero && (state.Run > 0 || prefix > prefixcode.LZ77MinLength):
		state.Run += prefix
	case state.Run+prefix > prefixcode.LZ77MinLength:
		sink.EmitRun(state.Run + prefix)
		state.Run = 0
		emitRaw(chunk[prefix:], sink)
	default:
		emitZeros(state.Run, sink)
		state.Run = 0
		emitRaw(chunk, sink)
	}
}

func emitRaw(vals []uint32, sink Sink) {
	for _, v := range vals {
		token, nbits, bits := EncodeHybridUint000(v)
		sink.EmitToken(token, nbits, bits)
	}
}

func emitZeros(count int, sink Sink) {
	for i := 0; i < count; i++ {
		sink.EmitToken(0, 0, 0)
	}
}
