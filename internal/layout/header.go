package layout

import "github.com/overlaycore/jxlenc/internal/bitio"

// Signature is the 16-bit JPEG XL codestream signature, emitted so the
// first two output bytes are 0xFF 0x0A (spec §8 scenario 1).
const Signature = 0x0AFF

// ColorSpace is one of the four signalled color-encoding variants this
// encoder supports (spec §4.5's "color encoding" bullet). Field layouts
// below are this implementation's concrete, internally-consistent
// realization of the spec's prose description of each variant; the
// reference encoder this module follows fixes the bit-depth field
// encodings but carries no full primaries/transfer-function enum table,
// so each variant is assigned a small stable tag distinguishing it from
// its siblings rather than quoting libjxl's own numeric encoding. See
// DESIGN.md.
type ColorSpace int

const (
	SRGB ColorSpace = iota
	GraySRGB
	HDR10PQ
	ExtendedLinearHalf
)

// HasAlpha reports whether a channel count implies an alpha channel
// (spec §4.5: "extra-channel block when alpha is present (channel count
// 2 or 4)").
func HasAlpha(channels int) bool { return channels == 2 || channels == 4 }

func writeSizeField(w *bitio.Writer, value uint32) {
	switch {
	case value < 1<<9:
		w.Write(2, 0)
		w.Write(9, uint64(value))
	case value < 1<<13:
		w.Write(2, 1)
		w.Write(13, uint64(value))
	case value < 1<<18:
		w.Write(2, 2)
		w.Write(18, uint64(value))
	default:
		w.Write(2, 3)
		w.Write(30, uint64(value))
	}
}

// WriteSizeHeader writes the variable-width height/width-1 pair (spec
// §4.5).
func WriteSizeHeader(w *bitio.Writer, width, height int) {
	writeSizeField(w, uint32(height))
	writeSizeField(w, uint32(width-1))
}

// WriteImageMetadata writes the ImageMetadata block: explicit
// all_default/extra_fields flags, bit-depth tag table, the
// 16-bit-buffer-sufficient flag, an optional extra-channel block, and
// the color-encoding variant (spec §4.5).
func WriteImageMetadata(w *bitio.Writer, bitDepth, channels int, cs ColorSpace) {
	w.Write(1, 0) // all_default = false: every field below is explicit
	w.Write(1, 0) // extra_fields = false

	writeBitDepth(w, bitDepth, cs)

	sufficient := uint64(0)
	if bitDepth <= 14 {
		sufficient = 1
	}
	w.Write(1, sufficient)

	if HasAlpha(channels) {
		writeExtraChannelBlock(w)
	}

	writeColorEncoding(w, cs)
}

func writeBitDepth(w *bitio.Writer, bitDepth int, cs ColorSpace) {
	switch bitDepth {
	case 8:
		w.Write(2, 0)
	case 10:
		w.Write(2, 1)
	case 12:
		w.Write(2, 2)
	default:
		w.Write(2, 3)
		w.Write(6, uint64(bitDepth-1))
	}

	floating := cs == HDR10PQ || cs == ExtendedLinearHalf
	if floating {
		w.Write(1, 1)
		w.Write(5, 5) // 5-bit exponent field, per spec's "16-bit/5-exp settings"
	} else {
		w.Write(1, 0)
	}
}

func writeExtraChannelBlock(w *bitio.Writer) {
	w.Write(1, 1) // one extra channel present
	w.Write(2, 0) // channel type = alpha
}

func writeColorEncoding(w *bitio.Writer, cs ColorSpace) {
	switch cs {
	case SRGB:
		w.Write(1, 1) // all-default sRGB
	case GraySRGB:
		w.Write(1, 0)
		w.Write(1, 1) // grayscale
		w.Write(2, 0) // sRGB primaries/TF
	case HDR10PQ:
		w.Write(1, 0)
		w.Write(1, 0)
		w.Write(3, 1) // Rec.2100 primaries
		w.Write(3, 2) // PQ transfer function
	case ExtendedLinearHalf:
		w.Write(1, 0)
		w.Write(1, 0)
		w.Write(3, 0) // D65 primaries
		w.Write(3, 3) // linear transfer function
		w.Write(2, 0) // rendering intent = relative
	}
}

// WriteFrameHeader writes the always-present frame header: 26 small
// hand-packed fields (regular frame, modular coding, default flags, no
// YCbCr, no upsampling, default group size, single pass, kReplace
// blending, is_last, plus the remaining default-valued reserved fields),
// terminated by a byte-alignment pad (spec §4.5).
func WriteFrameHeader(w *bitio.Writer, isLast bool) {
	isLastBit := uint64(0)
	if isLast {
		isLastBit = 1
	}

	fields := []struct {
		bits  int
		value uint64
	}{
		{1, 0},         // all_default = false
		{2, 0},         // frame_type = kRegularFrame
		{1, 1},         // encoding = kModular
		{1, 1},         // use default frame-flags group
		{1, 0},         // do_YCbCr = false
		{1, 1},         // upsampling = none (default)
		{1, 1},         // use default group/tile size
		{1, 1},         // passes = 1 (single pass)
		{2, 0},         // blending mode = kReplace
		{1, isLastBit}, // is_last
		// Remaining reserved/default-valued frame-header fields (spec
		// §4.5: "26 small fields hand-packed"); each is left at its
		// format-default value since this encoder never needs to
		// deviate from them (patches, splines, noise, EPF and gaborish
		// are explicit non-goals, so their enable bits are always 0).
		{1, 0}, {1, 0}, {1, 0}, {1, 0}, {1, 0},
		{1, 0}, {1, 0}, {1, 0}, {1, 0}, {1, 0},
		{1, 0}, {1, 0}, {1, 0}, {1, 0}, {1, 0},
		{1, 0},
	}

	nbitsSeq := make([]int, len(fields))
	bitsSeq := make([]uint64, len(fields))
	for i, f := range fields {
		nbitsSeq[i] = f.bits
		bitsSeq[i] = f.value
	}
	w.WriteMultiple(nbitsSeq, bitsSeq)
	w.ZeroPadToByte()
}
