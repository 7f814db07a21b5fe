package entropy

import "testing"

func TestPackUnpackSignedBijection(t *testing.T) {
	cases := []int32{0, 1, -1, 2, -2, 12345, -12345, 1 << 20, -(1 << 20)}
	for _, x := range cases {
		u := PackSigned(x)
		got := UnpackSigned(u)
		if got != x {
			t.Errorf("UnpackSigned(PackSigned(%d)) = %d, want %d", x, got, x)
		}
	}
}

func TestFloorLog2(t *testing.T) {
	cases := map[uint32]int{0: 0, 1: 0, 2: 1, 3: 1, 4: 2, 1023: 9, 1024: 10}
	for v, want := range cases {
		if got := FloorLog2(v); got != want {
			t.Errorf("FloorLog2(%d) = %d, want %d", v, got, want)
		}
	}
}

func TestEncodeHybridUint000RoundTrips(t *testing.T) {
	for v := uint32(0); v < 5000; v++ {
		token, nbits, bits := EncodeHybridUint000(v)
		var got uint32
		if token != 0 {
			got = (uint32(1) << uint(token-1)) + bits
		}
		if got != v {
			t.Fatalf("v=%d: token=%d nbits=%d bits=%d round-trips to %d", v, token, nbits, bits, got)
		}
	}
}
