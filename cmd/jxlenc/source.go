package main

import "image"

// rgbaInputSource adapts a decoded *image.RGBA into the
// ChunkedFrameInputSource callback ABI (spec §4.4): GetAt hands back a
// direct view into the RGBA's Pix slice for the requested rectangle.
type rgbaInputSource struct {
	img *image.RGBA
}

func (s rgbaInputSource) GetAt(x, y, w, h int) ([]byte, int, error) {
	stride := s.img.Stride
	start := y*stride + x*4
	end := start + (h-1)*stride + w*4
	return s.img.Pix[start:end], stride, nil
}

func (s rgbaInputSource) Release(data []byte) {}
