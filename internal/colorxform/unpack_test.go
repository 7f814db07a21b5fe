package colorxform

import "testing"

func TestUnpackRowRGBA8ApplyYCoCg(t *testing.T) {
	// One RGBA pixel: (255,0,0,255) -> YCoCg applied in place to the
	// first three planes.
	raw := []byte{255, 0, 0, 255}
	planes := UnpackRow(raw, 1, 4, 8, true)
	if len(planes) != 4 {
		t.Fatalf("len(planes) = %d, want 4", len(planes))
	}
	wantY, wantCo, wantCg := YCoCgForward(255, 0, 0)
	if planes[0][0] != wantY || planes[1][0] != wantCo || planes[2][0] != wantCg {
		t.Errorf("planes = (%d,%d,%d), want (%d,%d,%d)",
			planes[0][0], planes[1][0], planes[2][0], wantY, wantCo, wantCg)
	}
	if planes[3][0] != 255 {
		t.Errorf("alpha plane = %d, want 255 (untouched by YCoCg)", planes[3][0])
	}
}

func TestUnpackRowGray16LittleEndian(t *testing.T) {
	raw := []byte{0x34, 0x12} // little-endian 0x1234
	planes := UnpackRow(raw, 1, 1, 16, true)
	if planes[0][0] != 0x1234 {
		t.Errorf("sample = %#x, want 0x1234", planes[0][0])
	}
}

func TestUnpackRowGray16BigEndian(t *testing.T) {
	raw := []byte{0x12, 0x34}
	planes := UnpackRow(raw, 1, 1, 16, false)
	if planes[0][0] != 0x1234 {
		t.Errorf("sample = %#x, want 0x1234", planes[0][0])
	}
}

func TestPadScanlineLeftPad(t *testing.T) {
	samples := []int32{1, 2, 3}
	out := PadScanline(samples, 9)
	if len(out) != ScanlinePad+3 {
		t.Fatalf("len = %d, want %d", len(out), ScanlinePad+3)
	}
	for i := 0; i < ScanlinePad; i++ {
		if out[i] != 9 {
			t.Fatalf("pad[%d] = %d, want 9", i, out[i])
		}
	}
	if out[ScanlinePad] != 1 || out[ScanlinePad+2] != 3 {
		t.Fatal("samples not copied after the pad region")
	}
}
