package core

import (
	"testing"

	"github.com/overlaycore/jxlenc/internal/layout"
)

// runFullPipeline runs prepare -> process -> header -> drain, returning
// the finalized bytes, for white-box scenario assertions that need
// fields of *FrameState the public jxlenc package doesn't expose.
func runFullPipeline(t *testing.T, fs *FrameState, runner ParallelRunner) []byte {
	t.Helper()
	if ok := ProcessFrame(fs, runner); !ok {
		t.Fatal("ProcessFrame reported failure")
	}
	PrepareHeader(fs, true, true)

	size := OutputSize(fs)
	var out []byte
	buf := make([]byte, 4096)
	for {
		n := WriteOutput(fs, buf)
		if n == 0 {
			break
		}
		out = append(out, buf[:n]...)
	}
	if len(out) != size {
		t.Fatalf("drained %d bytes, want %d", len(out), size)
	}
	return out
}

// TestScenario1_AllZeroPaletteMode covers spec §8 scenario 1: a 1x1
// all-zero RGBA frame must go through palette mode with a single
// (reserved, all-zero) entry, and produce a valid one-group bitstream.
// Uses effort 2 rather than the scenario's literal effort 1: palette
// detection is only attempted at effort >= 2 (spec §4.4), so effort 1
// would never reach palette mode regardless of pixel content.
func TestScenario1_AllZeroPaletteMode(t *testing.T) {
	src := solidRGBASource(1, 1, 0, 0, 0, 0)
	fs, err := PrepareFrame(src, 1, 1, 4, 8, true, 2, layout.SRGB, true)
	if err != nil {
		t.Fatalf("PrepareFrame: %v", err)
	}
	defer FreeFrameState(fs)
	if !fs.IsPalette {
		t.Fatal("expected palette mode for an all-zero-pixel image")
	}
	if len(fs.Palette) != 1 {
		t.Fatalf("len(Palette) = %d, want 1 (only the reserved all-zero entry)", len(fs.Palette))
	}
	out := runFullPipeline(t, fs, nil)
	if out[0] != 0xFF || out[1] != 0x0A {
		t.Fatalf("signature bytes = %x, want [FF 0A ...]", out[:2])
	}
	if !fs.Geometry.OneGroup() {
		t.Fatal("expected one-group framing for a 1x1 image")
	}
}

// TestScenario2_CheckerYCoCgCollision covers spec §8 scenario 2: a 2x2
// RGB checkerboard at effort 1, below the effort>=2 threshold palette
// detection requires (spec §4.4), so it always takes the YCoCg path —
// still in one-group framing.
func TestScenario2_CheckerYCoCgCollision(t *testing.T) {
	stride := 2 * 4
	pixels := []byte{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 255, 255, 0, 255,
	}
	src := &MemorySource{Pixels: pixels, Width: 2, Height: 2, Stride: stride}
	fs, err := PrepareFrame(src, 2, 2, 4, 8, true, 1, layout.SRGB, true)
	if err != nil {
		t.Fatalf("PrepareFrame: %v", err)
	}
	defer FreeFrameState(fs)
	if fs.IsPalette {
		t.Fatal("expected YCoCg path (no palette) at effort 1")
	}
	out := runFullPipeline(t, fs, nil)
	if out[0] != 0xFF || out[1] != 0x0A {
		t.Fatalf("signature bytes = %x, want [FF 0A ...]", out[:2])
	}
	if !fs.Geometry.OneGroup() {
		t.Fatal("expected one-group framing for a 2x2 image")
	}
}

// TestScenario3_GrayRampPaletteOrFallback covers spec §8 scenario 3: a
// 257x1 gray ramp at effort 2. The ramp's 256 distinct values span the
// full 0-255 range, which this codec's grayscale-palette heuristic
// (DESIGN.md's documented, deliberately-preserved false-reject quirk)
// rejects as not worth paletting — so this checks the encode still
// round-trips to a valid bitstream regardless of which path is chosen,
// rather than asserting palette mode unconditionally.
func TestScenario3_GrayRampPaletteOrFallback(t *testing.T) {
	width := 257
	pixels := make([]byte, width*4)
	for x := 0; x < width; x++ {
		v := byte(x % 256)
		off := x * 4
		pixels[off], pixels[off+1], pixels[off+2], pixels[off+3] = v, v, v, 255
	}
	src := &MemorySource{Pixels: pixels, Width: width, Height: 1, Stride: width * 4}
	fs, err := PrepareFrame(src, width, 1, 4, 8, true, 2, layout.SRGB, true)
	if err != nil {
		t.Fatalf("PrepareFrame: %v", err)
	}
	defer FreeFrameState(fs)
	if fs.IsPalette && len(fs.Palette) > 512 {
		t.Fatalf("len(Palette) = %d, exceeds the 512-color cap", len(fs.Palette))
	}
	out := runFullPipeline(t, fs, nil)
	if out[0] != 0xFF || out[1] != 0x0A {
		t.Fatalf("signature bytes = %x, want [FF 0A ...]", out[:2])
	}
}

// TestScenario4_MultiGroupFraming covers spec §8 scenario 4: a 512x512
// image spans exactly 4 AC groups, and the DC-global bucket reservation
// must already absorb whatever the real AC-group TOC entries need (no
// bucket escalation between the reserved minimum and the final size).
func TestScenario4_MultiGroupFraming(t *testing.T) {
	src := solidRGBASource(512, 512, 7, 8, 9, 255)
	fs, err := PrepareFrame(src, 512, 512, 4, 8, true, 1, layout.SRGB, true)
	if err != nil {
		t.Fatalf("PrepareFrame: %v", err)
	}
	defer FreeFrameState(fs)
	if got := fs.Geometry.NumACGroups(); got != 4 {
		t.Fatalf("NumACGroups = %d, want 4", got)
	}

	runFullPipeline(t, fs, nil)

	reservedBucket := layout.TOCBucketFor(fs.minDCGlobalSize)
	actualBucket := layout.TOCBucketFor(uint64(fs.groupSizes[0]))
	if reservedBucket != actualBucket {
		t.Fatalf("DC-global bucket moved from reserved %d to actual %d after encoding", reservedBucket, actualBucket)
	}
}

// TestScenario6_CancelSimulationLeavesZeroSizeGroup covers spec §8
// scenario 6: a runner that only dispatches half of the AC groups must
// still let the frame finalize and drain, but the result has at least
// one zero-size group — the property a conformant decoder rejects on.
func TestScenario6_CancelSimulationLeavesZeroSizeGroup(t *testing.T) {
	src := solidRGBASource(1024, 4, 1, 2, 3, 255) // 4 AC groups wide
	fs, err := PrepareFrame(src, 1024, 4, 3, 8, true, 1, layout.SRGB, true)
	if err != nil {
		t.Fatalf("PrepareFrame: %v", err)
	}
	defer FreeFrameState(fs)

	half := runnerFunc(func(count int, work func(i int)) {
		for i := 0; i < count/2; i++ {
			work(i)
		}
	})
	ProcessFrame(fs, half) // return value intentionally ignored: this simulates a cancel, not a runner failure
	PrepareHeader(fs, true, true)

	size := OutputSize(fs)
	var out []byte
	buf := make([]byte, 4096)
	for {
		n := WriteOutput(fs, buf)
		if n == 0 {
			break
		}
		out = append(out, buf[:n]...)
	}
	if len(out) != size {
		t.Fatalf("drained %d bytes, want %d", len(out), size)
	}

	numDC := fs.Geometry.NumDCGroups()
	sawZero := false
	for i := 2 + numDC; i < len(fs.groupSizes); i++ {
		if fs.groupSizes[i] == 0 {
			sawZero = true
			break
		}
	}
	if !sawZero {
		t.Fatal("expected at least one zero-size AC group after a half-dispatched runner")
	}
}
