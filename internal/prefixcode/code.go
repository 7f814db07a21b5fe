package prefixcode

import "github.com/overlaycore/jxlenc/internal/bitio"

// WidthClass describes the per-bit-depth-specialization Huffman length
// bounds from spec §3: each of the four channel-width specializations
// (UpTo8, 9To13, Exactly14, MoreThan14) constrains how long a raw-symbol
// codeword or the LZ77-bucket codeword may be.
//
// RawMaxLen/BucketMaxLen interpretation: spec §3 gives an explicit
// (raw, bucket) pair only for UpTo8 ("Huffman length <= 7 (raw) / <= 10
// (LZ77-length symbol)"); the other three classes state a single bound
// ("Huffman length <= 8"). Where only one bound is given this
// implementation applies it to raw symbols and extends the bucket's
// budget to 10 bits uniformly, matching UpTo8's margin for the level-2
// LZ77-length code (spec §4.2 step 2 needs `15 - level1_len` bits of
// remaining budget for the level-2 code, so a tighter level-1 bucket
// bound leaves more room downstream). This is a documented resolution of
// an ambiguity in spec §3, not a behavior spec.md pins down explicitly.
type WidthClass struct {
	Name         string
	RawMaxLen    int
	BucketMaxLen int
	// PinnedPairs lists raw-symbol index pairs that must receive an
	// identical, fixed length (PinnedLen) so their canonical codewords
	// end up adjacent (siblings differing only in their final bit).
	PinnedPairs [][2]int
	PinnedLen   int
}

var (
	WidthUpTo8 = WidthClass{
		Name: "UpTo8", RawMaxLen: 7, BucketMaxLen: 10,
	}
	Width9To13 = WidthClass{
		Name: "9To13", RawMaxLen: 8, BucketMaxLen: 10,
	}
	WidthExactly14 = WidthClass{
		Name: "Exactly14", RawMaxLen: 8, BucketMaxLen: 10,
		PinnedPairs: [][2]int{{15, 16}}, PinnedLen: 8,
	}
	WidthMoreThan14 = WidthClass{
		Name: "MoreThan14", RawMaxLen: 8, BucketMaxLen: 10,
		PinnedPairs: [][2]int{{13, 14}, {15, 16}, {17, 18}}, PinnedLen: 8,
	}
)

// Code is a fully built canonical prefix code for one channel slot: a
// level-1 code over the raw symbols plus (if any LZ77 run occurred) the
// LZ77 bucket, and — when the bucket is active — a level-2 code over the
// LZ77-length symbols sharing the bucket's remaining length budget.
type Code struct {
	Class WidthClass

	RawLengths [NumRawSymbols]int
	RawCodes   [NumRawSymbols]uint16

	BucketUsed bool
	BucketLen  int // level-1 length of the LZ77 escape symbol

	LZLengths [NumLZ77LengthSymbols]int // final length = level1 + level2
	LZCodes   [NumLZ77LengthSymbols]uint16

	// bucketCode is the level-1 codeword for the LZ77 escape symbol.
	bucketCode uint16

	// Cache precomputes the full (raw[0]-literal + length-token + extra
	// bits) emission for short runs, per spec §4.2/§9.
	Cache [lz77CacheSize]CacheEntry
}

// BucketCode returns the level-1 codeword for the LZ77 escape symbol
// (valid only when BucketUsed is true).
func (c *Code) BucketCode() uint16 { return c.bucketCode }

// CacheEntry is a precomputed (nbits, bits) pair the hot loop can emit
// with a single bitio.Writer.Write call.
type CacheEntry struct {
	NBits int
	Bits  uint64
}

// BuildCode constructs the canonical level-1/level-2 code pair for one
// channel slot from raw-symbol and LZ77-length-symbol frequency
// histograms, following spec §4.2 steps 1-4.
func BuildCode(rawFreq [NumRawSymbols]uint64, lzFreq [NumLZ77LengthSymbols]uint64, class WidthClass) *Code {
	c := &Code{Class: class}

	pinned := map[int]bool{}
	for _, pair := range class.PinnedPairs {
		pinned[pair[0]] = true
		pinned[pair[1]] = true
	}

	lzTotal := uint64(0)
	for _, f := range lzFreq {
		lzTotal += f
	}
	c.BucketUsed = lzTotal > 0

	// --- Step 1: level-1 code over raw symbols + LZ77 bucket. ---
	var level1 []SymbolSpec
	for sym, f := range rawFreq {
		if f == 0 {
			continue
		}
		minLen, maxLen := 1, class.RawMaxLen
		if pinned[sym] {
			minLen, maxLen = class.PinnedLen, class.PinnedLen
		}
		level1 = append(level1, SymbolSpec{Index: sym, Freq: f, MinLen: minLen, MaxLen: maxLen})
	}
	const bucketIndex = LZ77Offset
	if c.BucketUsed {
		level1 = append(level1, SymbolSpec{
			Index: bucketIndex, Freq: lzTotal, MinLen: 1, MaxLen: class.BucketMaxLen,
		})
	}

	lengths1 := LengthLimitedLengths(level1)
	codes1 := Canonical(lengths1)
	for sym, l := range lengths1 {
		if sym == bucketIndex {
			c.BucketLen = l
			continue
		}
		c.RawLengths[sym] = l
		c.RawCodes[sym] = codes1[sym]
	}
	if c.BucketUsed {
		// Canonical() sorted the bucket in among raw symbols by its
		// conceptual index (224), so its codeword is in codes1 too.
		c.bucketCode = codes1[bucketIndex]
	}

	// --- Step 2 & 3: level-2 code over LZ77-length symbols. ---
	if c.BucketUsed {
		budget := MaxAllowedCodeLength - c.BucketLen
		if budget < 1 {
			budget = 1
		}
		var level2 []SymbolSpec
		for sym, f := range lzFreq {
			if f == 0 {
				continue
			}
			level2 = append(level2, SymbolSpec{Index: sym, Freq: f, MinLen: 1, MaxLen: budget})
		}
		lengths2 := LengthLimitedLengths(level2)
		codes2 := Canonical(lengths2)
		for sym, l := range lengths2 {
			c.LZLengths[sym] = c.BucketLen + l
			// Final codeword: bucket's level-1 code followed by the
			// level-2 code, MSB-first conceptually; since both halves
			// were independently bit-reversed for LSB-first emission,
			// the wire-order concatenation is level-1 bits then
			// level-2 bits (level-1 written first, matching how the
			// bucket symbol is recognized before its sub-code).
			c.LZCodes[sym] = codes2[sym]
		}
	}

	c.buildCache()
	return c
}

// EmitToken writes one already-tokenized raw symbol: its codeword followed
// by its extra bits, if any. The caller (the entropy chunk encoder, spec
// §4.3) computes (token, nbits, bits) via EncodeHybridUint000 before
// calling this; Code only owns the wire representation of the token.
func (c *Code) EmitToken(w *bitio.Writer, token, nbits int, bits uint32) {
	w.Write(c.RawLengths[token], uint64(c.RawCodes[token]))
	if nbits > 0 {
		w.Write(nbits, uint64(bits))
	}
}

// EmitRun writes a full LZ77 run emission — the raw[0] literal, the escape
// bucket, the length token, and any extra bits — for a run of the given
// length (spec §4.2's 32-entry cache covers the common case; longer runs
// fall back to building the same emission live).
func (c *Code) EmitRun(w *bitio.Writer, runLength int) {
	count := runLength - LZ77MinLength - 1
	if count >= 0 && count < lz77CacheSize {
		e := c.Cache[count]
		w.Write(e.NBits, e.Bits)
		return
	}
	w.Write(c.RawLengths[0], uint64(c.RawCodes[0]))
	lenSym, extra, numExtra := LZ77LengthToken(runLength)
	l2 := c.LZLengths[lenSym] - c.BucketLen
	if l2 < 0 {
		l2 = 0
	}
	w.Write(c.BucketLen, uint64(c.bucketCode))
	w.Write(l2, uint64(c.LZCodes[lenSym]))
	if numExtra > 0 {
		w.Write(numExtra, uint64(extra))
	}
}

func (c *Code) buildCache() {
	if !c.BucketUsed {
		return
	}
	for i := 0; i < lz77CacheSize; i++ {
		runLen := i + LZ77MinLength + 1
		lenSym, extraBits, numExtra := LZ77LengthToken(runLen)
		l2 := c.LZLengths[lenSym] - c.BucketLen
		if l2 < 0 {
			l2 = 0
		}
		// Wire order: raw[0] literal codeword, then bucket codeword,
		// then level-2 codeword, then extra bits.
		nbits := c.RawLengths[0] + c.BucketLen + l2 + numExtra
		var bits uint64
		shift := uint(0)
		bits |= uint64(c.RawCodes[0]) << shift
		shift += uint(c.RawLengths[0])
		bits |= uint64(c.bucketCode) << shift
		shift += uint(c.BucketLen)
		// LZCodes[sym] already holds just the level-2 portion: Canonical
		// built the level-2 code independently over its own 0-based bit
		// budget, so no extra bookkeeping is needed to isolate it.
		bits |= uint64(c.LZCodes[lenSym]) << shift
		shift += uint(l2)
		bits |= uint64(extraBits) << shift
		c.Cache[i] = CacheEntry{NBits: nbits, Bits: bits}
	}
}

// LZ77LengthToken maps a run length to (symbol, extraBits, numExtraBits),
// using a simple power-of-two bucketing scheme on v = runLen-LZ77MinLength-1:
// symbol 0 is v == 0, and symbol 1+k covers the k-th octave [2^k, 2^(k+1))
// with k extra bits holding v-2^k; the last symbol absorbs every longer
// octave (mirrors the hybrid-uint token shape used for raw
// residuals in spec §4.3, reused here for length coding so both alphabets
// share one mental model).
func LZ77LengthToken(runLen int) (symbol int, extra uint32, numExtra int) {
	v := uint32(runLen - LZ77MinLength - 1) // 0-based
	if v == 0 {
		return 0, 0, 0
	}
	nbits := floorLog2(v)
	symbol = 1 + nbits
	if symbol >= NumLZ77LengthSymbols {
		symbol = NumLZ77LengthSymbols - 1
		nbits = symbol - 1
	}
	extra = v - (1 << uint(nbits))
	numExtra = nbits
	return symbol, extra, numExtra
}

func floorLog2(v uint32) int {
	n := 0
	for v > 1 {
		v >>= 1
		n++
	}
	return n
}
