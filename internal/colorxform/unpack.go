package colorxform

// ScanlinePad is the fixed padding width (in samples) PadScanline places
// on the left side of a scanline (spec §4.4); no padding is added on the
// right. The gradient predictor only reaches one sample back, into the
// last slot of that left pad.
const ScanlinePad = 32

// UnpackRow extracts `width` samples per channel from one row of raw
// interleaved pixel bytes, dispatching on byteWidth, the sample width in
// bits (8 or 16), and endianness. For 3- or 4-channel input, YCoCg forward is
// applied immediately afterward (spec §4.4), replacing the first three
// planes (R,G,B) in place with (Y,Co,Cg).
func UnpackRow(raw []byte, width, channels, byteWidth int, littleEndian bool) [][]int32 {
	planes := make([][]int32, channels)
	for c := range planes {
		planes[c] = make([]int32, width)
	}

	bpp := byteWidth / 8
	for x := 0; x < width; x++ {
		for c := 0; c < channels; c++ {
			off := (x*channels + c) * bpp
			var v int32
			if bpp == 1 {
				v = int32(raw[off])
			} else if littleEndian {
				v = int32(uint16(raw[off]) | uint16(raw[off+1])<<8)
			} else {
				v = int32(uint16(raw[off])<<8 | uint16(raw[off+1]))
			}
			planes[c][x] = v
		}
	}

	if channels == 3 || channels == 4 {
		applyYCoCgPlanes(planes)
	}
	return planes
}

func applyYCoCgPlanes(planes [][]int32) {
	r, g, b := planes[0], planes[1], planes[2]
	for x := range r {
		y, co, cg := YCoCgForward(r[x], g[x], b[x])
		r[x], g[x], b[x] = y, co, cg
	}
}

// PadScanline wraps one row of decoded channel samples into a rolling
// buffer with ScanlinePad samples of left padding, replicated from
// leftEdge (the prior row's x=0 sample, or 0 on the image's first row).
// The returned slice has length ScanlinePad+width; index ScanlinePad-1
// is the x=-1 sample entropy.ResidualRow expects at its own index 0.
func PadScanline(samples []int32, leftEdge int32) []int32 {
	out := make([]int32, ScanlinePad+len(samples))
	for i := 0; i < ScanlinePad; i++ {
		out[i] = leftEdge
	}
	copy(out[ScanlinePad:], samples)
	return out
}
