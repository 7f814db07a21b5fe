package layout

import (
	"github.com/overlaycore/jxlenc/internal/bitio"
	"github.com/overlaycore/jxlenc/internal/colorxform"
	"github.com/overlaycore/jxlenc/internal/entropy"
	"github.com/overlaycore/jxlenc/internal/prefixcode"
)

// DCGlobalConfig carries everything WriteDCGlobal needs: the declared
// hybrid-uint/LZ77 tree preamble, the four per-channel-slot prefix-code
// histograms, and — depending on mode — an RCT or palette transform
// record (spec §4.5).
type DCGlobalConfig struct {
	Channels int
	Codes    [4]*prefixcode.Code

	IsPalette bool
	// Palette is the full ARGB-packed palette (slot 0 reserved, see
	// colorxform.DetectPalette) and PaletteCode the prefix code used to
	// entropy-encode the palette's own pixel stream.
	Palette     []uint32
	PaletteCode *prefixcode.Code
}

// WriteDCGlobal writes the DC-global section: tree+histogram preamble,
// the four channel-slot prefix codes, then the RCT or palette transform
// record.
func WriteDCGlobal(w *bitio.Writer, cfg DCGlobalConfig) {
	writeTreePreamble(w, cfg.Channels)

	for i := 0; i < cfg.Channels; i++ {
		if cfg.Codes[i] != nil {
			prefixcode.WriteTo(cfg.Codes[i], w)
		}
	}

	switch {
	case cfg.IsPalette:
		writePaletteTransform(w, cfg)
	case cfg.Channels >= 3:
		writeRCTTransform(w)
	}
}

// writeTreePreamble declares the hybrid-uint configs (000 for raw
// symbols, 400 for LZ77 lengths), enables LZ77 with the fixed offset and
// minimum length, and writes one gradient-predictor tree leaf per
// channel.
func writeTreePreamble(w *bitio.Writer, channels int) {
	w.Write(1, 1) // hybrid-uint config 000 (raw symbols/distances)
	w.Write(1, 1) // hybrid-uint config 400 (LZ77 lengths), implied enabled with LZ77 below
	w.Write(1, 1) // LZ77 enabled
	w.Write(8, prefixcode.LZ77Offset)
	w.Write(8, prefixcode.LZ77MinLength)
	for i := 0; i < channels; i++ {
		w.Write(4, uint64(i)) // leaf: channel index
		w.Write(4, 0)         // predictor tag 0 = gradient (this encoder's only predictor)
	}
}

func writeRCTTransform(w *bitio.Writer) {
	w.Write(1, 1) // one RCT transform present
	w.Write(2, 0) // transform type = YCoCg
	w.Write(4, 0) // starting channel = 0
}

func writePaletteTransform(w *bitio.Writer, cfg DCGlobalConfig) {
	w.Write(1, 1) // one palette transform present
	w.Write(4, uint64(cfg.Channels))
	w.Write(16, uint64(len(cfg.Palette)))
	encodePaletteColors(w, cfg.PaletteCode, cfg.Palette)
}

// encodePaletteColors entropy-codes the palette's own RGB(A) components
// through the same §4.3 path used for ordinary pixel data, as if the
// palette were a 1-row image (spec §4.5's "encoded via the same entropy
// path using the RGBA-specialized front-end").
func encodePaletteColors(w *bitio.Writer, code *prefixcode.Code, palette []uint32) {
	if code == nil || len(palette) == 0 {
		return
	}
	state := &entropy.RunState{}
	sink := &entropy.CodeSink{Code: code, Writer: w}
	prevR, prevG, prevB := int32(0), int32(0), int32(0)
	for _, p := range palette {
		_, r, g, b := colorxform.UnpackARGB(p)
		for _, pair := range [3][2]int32{{int32(r), prevR}, {int32(g), prevG}, {int32(b), prevB}} {
			token, nbits, bits := entropy.EncodeHybridUint000(entropy.PackSigned(pair[0] - pair[1]))
			sink.EmitToken(token, nbits, bits)
		}
		prevR, prevG, prevB = int32(r), int32(g), int32(b)
	}
	entropy.FlushRun(state, sink)
}
