package layout

import (
	"testing"

	"github.com/overlaycore/jxlenc/internal/bitio"
	"github.com/overlaycore/jxlenc/internal/colorxform"
	"github.com/overlaycore/jxlenc/internal/prefixcode"
)

func buildTestCode() *prefixcode.Code {
	var raw [prefixcode.NumRawSymbols]uint64
	raw[0] = 50
	raw[1] = 10
	var lz [prefixcode.NumLZ77LengthSymbols]uint64
	return prefixcode.BuildCode(raw, lz, prefixcode.WidthUpTo8)
}

func TestWriteDCGlobalRCTMode(t *testing.T) {
	w := bitio.NewWriter(64)
	var codes [4]*prefixcode.Code
	for i := 0; i < 3; i++ {
		codes[i] = buildTestCode()
	}
	WriteDCGlobal(w, DCGlobalConfig{Channels: 3, Codes: codes})
	if w.TotalBits() == 0 {
		t.Fatal("expected nonzero bits for RCT-mode DC-global section")
	}
}

func TestWriteDCGlobalPaletteMode(t *testing.T) {
	w := bitio.NewWriter(64)
	var codes [4]*prefixcode.Code
	codes[0] = buildTestCode()
	palette := []uint32{0, colorxform.PackARGB(255, 10, 20, 30), colorxform.PackARGB(255, 40, 50, 60)}

	WriteDCGlobal(w, DCGlobalConfig{
		Channels:    1,
		Codes:       codes,
		IsPalette:   true,
		Palette:     palette,
		PaletteCode: buildTestCode(),
	})
	if w.TotalBits() == 0 {
		t.Fatal("expected nonzero bits for palette-mode DC-global section")
	}
}
