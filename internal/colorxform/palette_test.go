package colorxform

import "testing"

func TestDetectPaletteSmallDistinctSet(t *testing.T) {
	pixels := []uint32{
		PackARGB(255, 10, 20, 30),
		PackARGB(255, 10, 20, 30),
		PackARGB(255, 200, 100, 50),
		PackARGB(255, 0, 255, 0),
	}
	palette, ok := DetectPalette(pixels, true)
	if !ok {
		t.Fatal("expected palette detection to succeed for a small distinct set")
	}
	if palette[0] != 0 {
		t.Errorf("palette[0] = %#x, want 0 (reserved all-zero slot)", palette[0])
	}
	if len(palette) != 4 { // 3 distinct non-zero colors + reserved slot 0
		t.Errorf("len(palette) = %d, want 4", len(palette))
	}
}

func TestDetectPaletteRejectsTooManyColors(t *testing.T) {
	pixels := make([]uint32, 0, MaxPaletteColors+10)
	for i := 0; i < MaxPaletteColors+10; i++ {
		pixels = append(pixels, PackARGB(255, uint8(i), uint8(i>>8), 1))
	}
	if _, ok := DetectPalette(pixels, true); ok {
		t.Fatal("expected rejection when distinct colors exceed MaxPaletteColors")
	}
}

// distinctPixels returns n distinct non-zero, non-grayscale ARGB pixels,
// safely below any count the grayscale heuristic could reject (R, G, B
// all vary independently).
func distinctPixels(n int) []uint32 {
	pixels := make([]uint32, 0, n)
	for i := 0; i < n; i++ {
		pixels = append(pixels, PackARGB(255, uint8(i), uint8(i>>8), uint8(i*7+3)))
	}
	return pixels
}

// TestDetectPaletteColorCapBoundary pins the exact boundary spec §3
// requires: pcolors (including the reserved all-zero slot 0) must never
// exceed MaxPaletteColors, i.e. at most MaxPaletteColors-1 non-zero
// entries are ever accepted.
func TestDetectPaletteColorCapBoundary(t *testing.T) {
	accepted := distinctPixels(MaxPaletteColors - 1)
	palette, ok := DetectPalette(accepted, true)
	if !ok {
		t.Fatal("expected MaxPaletteColors-1 distinct entries to be accepted")
	}
	if len(palette) != MaxPaletteColors {
		t.Fatalf("len(palette) = %d, want %d (entries + reserved slot 0)", len(palette), MaxPaletteColors)
	}

	rejected := distinctPixels(MaxPaletteColors)
	if _, ok := DetectPalette(rejected, true); ok {
		t.Fatal("expected MaxPaletteColors distinct entries (513 total with slot 0) to be rejected")
	}
}

func TestDetectPaletteSortedByLuminance(t *testing.T) {
	pixels := []uint32{
		PackARGB(255, 255, 255, 255), // brightest
		PackARGB(255, 0, 0, 0),       // darkest (but 0 is the sentinel, skip)
		PackARGB(255, 128, 128, 128),
	}
	// Replace the literal-zero pixel with a near-zero one so it actually
	// registers as a distinct palette entry (pixel value 0 is, by
	// construction, never recorded — see DetectPalette's doc comment).
	pixels[1] = PackARGB(255, 1, 1, 1)

	palette, ok := DetectPalette(pixels, true)
	if !ok {
		t.Fatal("expected success")
	}
	for i := 1; i < len(palette)-1; i++ {
		if luminance(palette[i], true) > luminance(palette[i+1], true) {
			t.Fatalf("palette entries not ascending by luminance at index %d", i)
		}
	}
}

func TestIsGrayscaleLikeRejectedHeuristic(t *testing.T) {
	// Entries all gray, tightly clustered: should be rejected.
	entries := []uint32{
		PackARGB(255, 100, 100, 100),
		PackARGB(255, 101, 101, 101),
		PackARGB(255, 102, 102, 102),
	}
	if !isGrayscaleLikeRejected(entries) {
		t.Fatal("expected tightly clustered grayscale entries to be rejected")
	}
}

func TestIsGrayscaleLikeAcceptsColorEntries(t *testing.T) {
	entries := []uint32{
		PackARGB(255, 10, 20, 30),
		PackARGB(255, 200, 50, 5),
	}
	if isGrayscaleLikeRejected(entries) {
		t.Fatal("non-grayscale entries must never be rejected by this heuristic")
	}
}

func TestBuildPaletteIndexMapsEveryEntry(t *testing.T) {
	palette := []uint32{0, PackARGB(255, 1, 2, 3), PackARGB(255, 4, 5, 6)}
	idx := BuildPaletteIndex(palette)
	for i, p := range palette {
		if idx[p] != i {
			t.Errorf("idx[%#x] = %d, want %d", p, idx[p], i)
		}
	}
}
