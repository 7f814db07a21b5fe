package prefixcode

// lengthToken is one entry in the RLE-encoded sequence describing a code's
// length table: code 0..15 is a literal length, 16 repeats the previous
// non-zero length 3..6 times, 17 repeats zero 3..10 times, 18 repeats zero
// 11..138 times. Grounded on the teacher codec's HuffmanTreeToken /
// BuildCodeLengthTokens (internal/lossless/encode_huffman.go).
type lengthToken struct {
	code      uint8
	extraBits uint8
}

// codeLengthRepeatCode and codeLengthExtraBits mirror teacher's
// CodeLengthRepeatCode / CodeLengthExtraBits tables.
const codeLengthRepeatCode = 16

var codeLengthExtraBits = [3]uint8{2, 3, 7} // codes 16, 17, 18

// metaCodeGapTokens encodes the fixed 205-symbol always-zero gap between
// the last raw symbol (18) and the LZ77 escape bucket (224) as three
// consecutive code-17 (repeat-zero) tokens whose decoded repeat counts
// chain instead of adding: each token after the first reinterprets its
// 3-bit extra field against the previous token's count as
// (prevCount-2)*8 + extra, so only the final token's decoded count (205)
// is the one that matters. Grounded on the reference encoder's WriteTo,
// which writes these three fields literally instead of deriving them:
// extra=2 -> 3+2 = 5; extra=3 -> (5-2)*8+3 = 27; extra=5 -> (27-2)*8+5 = 205.
var metaCodeGapTokens = []lengthToken{
	{code: 17, extraBits: 2},
	{code: 17, extraBits: 3},
	{code: 17, extraBits: 5},
}

// buildLengthTokens converts a sequence of per-symbol code lengths into
// RLE tokens, exactly mirroring teacher's BuildCodeLengthTokens.
func buildLengthTokens(lengths []uint8) []lengthToken {
	n := len(lengths)
	var tokens []lengthToken
	prevValue := uint8(8)

	i := 0
	for i < n {
		value := lengths[i]
		k := i + 1
		for k < n && lengths[k] == value {
			k++
		}
		runs := k - i
		i = k

		if value == 0 {
			tokens = codeRepeatedZeros(tokens, runs)
		} else {
			tokens = codeRepeatedValues(tokens, runs, value, prevValue)
			prevValue = value
		}
	}
	return tokens
}

func codeRepeatedZeros(tokens []lengthToken, repetitions int) []lengthToken {
	for repetitions >= 1 {
		switch {
		case repetitions < 3:
			for i := 0; i < repetitions; i++ {
				tokens = append(tokens, lengthToken{code: 0})
			}
			return tokens
		case repetitions < 11:
			return append(tokens, lengthToken{code: 17, extraBits: uint8(repetitions - 3)})
		case repetitions < 139:
			return append(tokens, lengthToken{code: 18, extraBits: uint8(repetitions - 11)})
		default:
			tokens = append(tokens, lengthToken{code: 18, extraBits: 0x7f})
			repetitions -= 138
		}
	}
	return tokens
}

func codeRepeatedValues(tokens []lengthToken, repetitions int, value, prevValue uint8) []lengthToken {
	if value != prevValue {
		tokens = append(tokens, lengthToken{code: value})
		repetitions--
	}
	for repetitions >= 1 {
		switch {
		case repetitions < 3:
			for i := 0; i < repetitions; i++ {
				tokens = append(tokens, lengthToken{code: value})
			}
			return tokens
		case repetitions < 7:
			return append(tokens, lengthToken{code: codeLengthRepeatCode, extraBits: uint8(repetitions - 3)})
		default:
			tokens = append(tokens, lengthToken{code: codeLengthRepeatCode, extraBits: 3})
			repetitions -= 6
		}
	}
	return tokens
}
