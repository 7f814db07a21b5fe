package prefixcode

import "sort"

// Canonical assigns canonical codewords to a length assignment: symbols
// are ordered first by ascending code length, then by ascending symbol
// index, codewords are assigned as consecutive integers starting at 0
// within each length (shifted left as length increases), and finally
// each codeword is bit-reversed so an LSB-first reader reproduces the
// canonical (MSB-first-conceptually) ordering.
//
// Grounded on the teacher codec's generateCanonicalCodes /
// reverseBits (internal/lossless/encode_huffman.go), generalized from a
// fixed 256-entry alphabet to an arbitrary symbol-index domain.
func Canonical(lengths map[int]int) map[int]uint16 {
	type symLen struct {
		symbol int
		length int
	}
	syms := make([]symLen, 0, len(lengths))
	maxLen := 0
	for sym, l := range lengths {
		if l <= 0 {
			continue
		}
		syms = append(syms, symLen{sym, l})
		if l > maxLen {
			maxLen = l
		}
	}
	sort.Slice(syms, func(i, j int) bool {
		if syms[i].length != syms[j].length {
			return syms[i].length < syms[j].length
		}
		return syms[i].symbol < syms[j].symbol
	})

	codes := make(map[int]uint16, len(syms))
	code := uint32(0)
	prevLen := 0
	for _, s := range syms {
		if s.length > prevLen {
			code <<= uint(s.length - prevLen)
			prevLen = s.length
		}
		codes[s.symbol] = reverseBits(code, s.length)
		code++
	}
	return codes
}

// reverseBits reverses the low nBits bits of v.
func reverseBits(v uint32, nBits int) uint16 {
	var result uint32
	for i := 0; i < nBits; i++ {
		result = (result << 1) | (v & 1)
		v >>= 1
	}
	return uint16(result)
}
