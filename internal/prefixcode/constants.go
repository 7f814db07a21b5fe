// Package prefixcode builds canonical, length-limited prefix (Huffman)
// codes from symbol frequency histograms and emits their headers to the
// bitstream.
//
// The canonical-code shape (ascending length, ascending symbol, then
// bit-reversal for an LSB-first reader) is grounded on the teacher codec's
// internal/lossless/encode_huffman.go (generateCanonicalCodes, reverseBits,
// BuildCodeLengthTokens / codeRepeatedZeros / codeRepeatedValues). The
// length-limiting step, however, is spec-mandated bounded-precision DP
// (see lengths.go) rather than teacher's count-doubling tree rebuild,
// because this format additionally needs a two-level split between the
// raw-symbol code and the LZ77-length-symbol code sharing one bit budget
// (spec §4.2).
package prefixcode

const (
	// NumRawSymbols is the size of the literal (non-LZ77) symbol alphabet:
	// hybrid-uint tokens 0..18 for a pixel residual.
	NumRawSymbols = 19

	// NumLZ77LengthSymbols is the number of distinct LZ77 run-length token
	// classes a run length can be bucketed into.
	NumLZ77LengthSymbols = 33

	// LZ77Offset is the symbol-space offset of the "LZ77 escape" bucket
	// relative to the raw-symbol alphabet: a level-1 code containing a
	// symbol at this index signals a run; kNumRawSymbols..LZ77Offset-1
	// is unused padding transmitted as a zero-length-code run.
	LZ77Offset = 224

	// LZ77MinLength is the shortest run length eligible for LZ77 coding
	// (spec §4.3 kLZ77MinLength).
	LZ77MinLength = 7

	// MaxAllowedCodeLength is the maximum canonical code length (bits).
	MaxAllowedCodeLength = 15

	// lz77CacheSize is the number of precomputed short-run encodings
	// (spec §4.2 / §9): cache[i] covers run length i+LZ77MinLength+1.
	lz77CacheSize = 32

	// codeLengthAlphabetSize is the size of the meta-alphabet used to
	// describe code lengths themselves (0..15 literal, 16/17/18 repeat),
	// matching teacher's CodeLengthCodes constant.
	codeLengthAlphabetSize = 19

	// codeLengthMetaMaxBits bounds the meta-code's own canonical code
	// length, matching teacher's LengthsTableBits-class budget.
	codeLengthMetaMaxBits = 7
)

// codeLengthCodeOrder is the fixed transmission order of the 19
// code-length meta-symbols, identical in spirit to teacher's
// CodeLengthCodeOrder (short repeat codes transmitted first so a
// mostly-empty header costs only a few bits).
var codeLengthCodeOrder = [codeLengthAlphabetSize]int{
	17, 18, 0, 1, 2, 3, 4, 5, 16, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
}
