// Package core implements the orchestrator (spec §4, component F): it
// owns FrameState, the central object carried from prepare through
// finalize, and drives sampling, prefix-code construction, per-group
// entropy encoding, and header/TOC assembly.
//
// Grounded on the teacher codec's internal/lossless/encode.go Encoder
// struct and its acquire/release pooled lifecycle, generalized from a
// single-pass VP8L encode into this format's prepare -> per-group
// process -> finalize -> stream pipeline (spec §3, §5).
package core

import "errors"

// ChunkedFrameInputSource is the pixel-acquisition callback ABI spec §4.4
// requires: the core never assumes pixel layout beyond the row stride
// GetAt reports, and always pairs a successful GetAt with a Release call
// once the returned region has been consumed.
type ChunkedFrameInputSource interface {
	// GetAt returns a pointer to row-major pixel data covering the
	// rectangle [x, x+w) x [y, y+h), plus the byte stride between rows.
	// The returned slice's layout is (channels * byteWidth) bytes per
	// sample, row-major; callers read no further than w*h samples.
	GetAt(x, y, w, h int) (data []byte, stride int, err error)
	// Release returns a previously acquired region. Always called
	// exactly once per successful GetAt, even on a later error.
	Release(data []byte)
}

// ErrGetAtFailed wraps a failure from the caller-supplied input source;
// spec §7 classifies this as a runner/source failure that must not
// surface as a partial, corrupt write.
var ErrGetAtFailed = errors.New("jxlenc: input source GetAt failed")

// MemorySource is a ChunkedFrameInputSource over a single in-memory
// interleaved pixel buffer, the backing implementation for the
// convenience entry point (spec §6: "packs the above for an in-memory
// RGBA buffer").
type MemorySource struct {
	Pixels []byte
	Width  int
	Height int
	Stride int // bytes per row; must be set. Rows are tightly packed, so Stride/Width is the pixel size in bytes
}

// GetAt returns a strided view directly into Pixels; there is nothing to
// release since the whole buffer is already resident.
func (m *MemorySource) GetAt(x, y, w, h int) ([]byte, int, error) {
	stride := m.Stride
	if stride == 0 {
		return nil, 0, errors.New("jxlenc: MemorySource.Stride must be set")
	}
	bpp := stride / m.Width
	start := y*stride + x*bpp
	end := start + (h-1)*stride + w*bpp
	if start < 0 || end > len(m.Pixels) {
		return nil, 0, errors.New("jxlenc: MemorySource region out of bounds")
	}
	return m.Pixels[start:end], stride, nil
}

// Release is a no-op: MemorySource never allocates a copy to free.
func (m *MemorySource) Release(data []byte) {}
