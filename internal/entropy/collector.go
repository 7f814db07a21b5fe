package entropy

import "github.com/overlaycore/jxlenc/internal/prefixcode"

// Histogram is the sample-collector Sink (spec §4.3): it runs the same
// chunk/run traversal as CodeSink but accumulates symbol frequencies
// instead of emitting bits, feeding prefixcode.BuildCode.
//
// Every emitted run implies a preceding raw[0] literal (spec §4.2's wire
// format always starts a run with the zero-residual token), so EmitRun
// must bump Raw[0] too — forgetting this would leave a nonzero-frequency
// LZ77 symbol with no valid raw[0] codeword to pair it with.
type Histogram struct {
	Raw [prefixcode.NumRawSymbols]uint64
	LZ  [prefixcode.NumLZ77LengthSymbols]uint64
}

func (h *Histogram) EmitToken(token, nbits int, bits uint32) {
	h.Raw[token]++
}

func (h *Histogram) EmitRun(length int) {
	h.Raw[0]++
	sym, _, _ := prefixcode.LZ77LengthToken(length)
	h.LZ[sym]++
}

// ApplyBaselineFloor guarantees every representable raw and LZ77-length
// symbol ends up with a nonzero frequency, even when the frequency
// sampler never ran across that symbol in its sampled region: sampled
// counts are shifted left 8 bits and a small per-symbol baseline is
// folded in underneath, so whatever the sampler actually saw still
// dominates the resulting code but nothing the full per-group encoder
// can emit later (which sees every pixel, not just the sample) ends up
// with a zero-length Huffman codeword. Grounded on the reference
// encoder's base_raw_counts/base_lz77_counts, added into the sampled
// histograms the same way before the code is built.
func (h *Histogram) ApplyBaselineFloor() {
	for i := range h.Raw {
		h.Raw[i] = (h.Raw[i] << 8) + baseRawCounts[i]
	}
	for i := range h.LZ {
		h.LZ[i] = (h.LZ[i] << 8) + baseLZCounts[i]
	}
}

// baseRawCounts is the reference encoder's literal per-symbol baseline
// for the 19 raw hybrid-uint tokens, largest for the smallest residuals
// since those dominate any real image.
var baseRawCounts = [prefixcode.NumRawSymbols]uint64{
	3843, 852, 1270, 1214, 1014, 727, 481, 300, 159, 51, 5, 1, 1, 1, 1, 1, 1, 1, 1,
}

// baseLZCounts extends the reference encoder's 28-entry base_lz77_counts
// with trailing 1s out to this format's 33 LZ77-length-symbol alphabet
// (the reference format only needed 28 length buckets); the tail is
// already flat 1s in the source table, so the extension preserves its
// shape exactly.
var baseLZCounts = [prefixcode.NumLZ77LengthSymbols]uint64{
	29, 27, 25, 23, 21, 21, 19, 18, 21, 17, 16, 15, 15, 14, 13, 13,
	137, 98, 61, 34, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
}
