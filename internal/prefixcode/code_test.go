package prefixcode

import "testing"

func TestBuildCodeNoLZ77(t *testing.T) {
	var raw [NumRawSymbols]uint64
	raw[0] = 50
	raw[1] = 30
	raw[2] = 10
	var lz [NumLZ77LengthSymbols]uint64

	c := BuildCode(raw, lz, WidthUpTo8)
	if c.BucketUsed {
		t.Fatal("BucketUsed should be false with an empty LZ77 histogram")
	}
	for sym, f := range raw {
		if f > 0 && c.RawLengths[sym] == 0 {
			t.Errorf("symbol %d has freq %d but length 0", sym, f)
		}
		if f > 0 && c.RawLengths[sym] > WidthUpTo8.RawMaxLen {
			t.Errorf("symbol %d length %d exceeds RawMaxLen %d", sym, c.RawLengths[sym], WidthUpTo8.RawMaxLen)
		}
	}
}

func TestBuildCodeWithLZ77(t *testing.T) {
	var raw [NumRawSymbols]uint64
	raw[0] = 100 // zero-residual symbol, always active when runs occur
	raw[1] = 5
	var lz [NumLZ77LengthSymbols]uint64
	lz[0] = 20
	lz[1] = 5

	c := BuildCode(raw, lz, WidthUpTo8)
	if !c.BucketUsed {
		t.Fatal("BucketUsed should be true with a non-empty LZ77 histogram")
	}
	if c.BucketLen == 0 {
		t.Fatal("BucketLen should be nonzero when bucket is used")
	}
	if c.LZLengths[0] < c.BucketLen {
		t.Fatalf("LZLengths[0] = %d, should be >= BucketLen %d", c.LZLengths[0], c.BucketLen)
	}
	for i := 0; i < lz77CacheSize; i++ {
		if c.Cache[i].NBits <= 0 {
			t.Errorf("cache[%d].NBits = %d, want > 0", i, c.Cache[i].NBits)
		}
	}
}

func TestBuildCodePinnedPairsExactLength(t *testing.T) {
	var raw [NumRawSymbols]uint64
	raw[0] = 100
	raw[15] = 4
	raw[16] = 4
	var lz [NumLZ77LengthSymbols]uint64

	c := BuildCode(raw, lz, WidthExactly14)
	if c.RawLengths[15] != 8 || c.RawLengths[16] != 8 {
		t.Fatalf("pinned pair lengths = %d,%d, want 8,8", c.RawLengths[15], c.RawLengths[16])
	}
}

func TestLZ77LengthTokenMonotonic(t *testing.T) {
	prevSym := -1
	for runLen := LZ77MinLength + 1; runLen < LZ77MinLength+1+40; runLen++ {
		sym, _, _ := LZ77LengthToken(runLen)
		if sym < prevSym {
			t.Errorf("runLen %d: symbol %d < previous %d", runLen, sym, prevSym)
		}
		prevSym = sym
	}
}
