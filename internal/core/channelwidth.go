package core

import "github.com/overlaycore/jxlenc/internal/prefixcode"

// widthClassFor dispatches a channel slot's bit depth to one of the four
// integer-width specializations (spec §3): UpTo8, 9To13, Exactly14, and
// MoreThan14 each carry their own raw/bucket Huffman-length bounds and
// pinned-pair constraints, defined in internal/prefixcode.
func widthClassFor(bitDepth int) prefixcode.WidthClass {
	switch {
	case bitDepth <= 8:
		return prefixcode.WidthUpTo8
	case bitDepth <= 13:
		return prefixcode.Width9To13
	case bitDepth == 14:
		return prefixcode.WidthExactly14
	default:
		return prefixcode.WidthMoreThan14
	}
}
