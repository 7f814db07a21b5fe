package prefixcode

import "github.com/overlaycore/jxlenc/internal/bitio"

// Wire emission of a canonical prefix code follows the JXL/Brotli meta-code
// format: the table of per-symbol code lengths is itself RLE-tokenized
// (tokens.go), and the token alphabet (0-18) is Huffman-coded with a
// length-limited code of its own (max codeLengthMetaMaxBits bits), whose
// lengths are written as 19 fixed-width fields in codeLengthCodeOrder.
// Grounded on the teacher codec's StoreHuffmanTreeToBitMask /
// StoreHuffmanTreeOfHuffmanTreeToBitMask (internal/lossless/encode_huffman.go).
//
// The raw-symbol table (0-18) is followed by a gap of always-zero-length
// slots (19-223) before the LZ77 escape bucket at 224: the symbol space is
// fixed by the format, so that gap is always exactly 205 slots regardless
// of the image. metaCodeGapTokens writes it as three hand-coded tokens
// rather than running it through the general tokenizer, per spec §9's
// "Meta-code for the Huffman header" note; see DESIGN.md.
func WriteTo(c *Code, w *bitio.Writer) {
	raw := make([]uint8, NumRawSymbols)
	for sym := 0; sym < NumRawSymbols; sym++ {
		raw[sym] = uint8(c.RawLengths[sym])
	}
	tokens := buildLengthTokens(raw)
	tokens = append(tokens, metaCodeGapTokens...)
	if c.BucketUsed {
		tokens = append(tokens, lengthToken{code: uint8(c.BucketLen)})
	}
	writeLengthTableTokens(w, tokens)

	if c.BucketUsed {
		level2 := make([]uint8, NumLZ77LengthSymbols)
		for sym := 0; sym < NumLZ77LengthSymbols; sym++ {
			if c.LZLengths[sym] == 0 {
				continue
			}
			level2[sym] = uint8(c.LZLengths[sym] - c.BucketLen)
		}
		writeLengthTable(w, level2)
	}
}

// writeLengthTable RLE-tokenizes lengths and emits it as one
// meta-Huffman-coded length table.
func writeLengthTable(w *bitio.Writer, lengths []uint8) {
	writeLengthTableTokens(w, buildLengthTokens(lengths))
}

// writeLengthTableTokens emits one RLE-tokenized, meta-Huffman-coded length
// table: the 19-entry meta-code header (3 bits per entry, in
// codeLengthCodeOrder) followed by each token's meta codeword and any
// extra bits.
func writeLengthTableTokens(w *bitio.Writer, tokens []lengthToken) {
	var metaFreq [codeLengthAlphabetSize]uint64
	for _, tok := range tokens {
		metaFreq[tok.code]++
	}

	var metaSpecs []SymbolSpec
	for sym, f := range metaFreq {
		if f == 0 {
			continue
		}
		metaSpecs = append(metaSpecs, SymbolSpec{Index: sym, Freq: f, MinLen: 1, MaxLen: codeLengthMetaMaxBits})
	}
	if len(metaSpecs) == 0 {
		// Degenerate table (e.g. all-zero lengths): still has to write a
		// valid, if trivial, meta-code header.
		metaSpecs = []SymbolSpec{{Index: 0, Freq: 1, MinLen: 1, MaxLen: codeLengthMetaMaxBits}}
	}

	metaLengths := LengthLimitedLengths(metaSpecs)
	metaCodes := Canonical(metaLengths)

	for _, sym := range codeLengthCodeOrder {
		w.Write(3, uint64(metaLengths[sym]))
	}

	for _, tok := range tokens {
		l := metaLengths[int(tok.code)]
		w.Write(l, uint64(metaCodes[int(tok.code)]))
		if n := extraBitsForCode(tok.code); n > 0 {
			w.Write(n, uint64(tok.extraBits))
		}
	}
}

func extraBitsForCode(code uint8) int {
	switch code {
	case 16:
		return int(codeLengthExtraBits[0])
	case 17:
		return int(codeLengthExtraBits[1])
	case 18:
		return int(codeLengthExtraBits[2])
	default:
		return 0
	}
}
