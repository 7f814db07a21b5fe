package jxlenc

import "github.com/overlaycore/jxlenc/internal/layout"

// ColorSpace re-exports the four signalled color-encoding variants
// component E can declare (spec §4.5).
type ColorSpace = layout.ColorSpace

const (
	SRGB               = layout.SRGB
	GraySRGB           = layout.GraySRGB
	HDR10PQ            = layout.HDR10PQ
	ExtendedLinearHalf = layout.ExtendedLinearHalf
)

// FrameConfig configures a single prepare_frame call: the caller-visible
// knobs spec §6 passes through the API surface.
type FrameConfig struct {
	Width, Height int
	Channels      int // 1-4
	BitDepth      int // 1-16
	LittleEndian  bool
	Effort        int
	ColorSpace    ColorSpace
	// OneShot reports whether the whole image is available for random
	// access through the input source up front; required for palette
	// detection (spec §4.4).
	OneShot bool
}

// Options controls the frame-level behavior shared across every
// prepare_frame call in a session (mirrors teacher's EncoderOptions,
// applied per-frame rather than per-encode since this module has no
// container/animation layer above it).
type Options struct {
	// AddImageHeader controls whether prepare_header emits the full
	// signature/size/ImageMetadata/color-encoding preamble, or only the
	// frame header (spec §3: "after prepare_header, bytes in the header
	// writer <= 5 when no image header is written").
	AddImageHeader bool
	// IsLastFrame marks the frame header's is_last bit (spec §4.5);
	// this module only ever emits a single frame, so callers normally
	// leave this at its default true.
	IsLastFrame bool
}

// DefaultOptions returns the options a single-frame lossless encode
// uses: a full image header on one frame marked last.
func DefaultOptions() *Options {
	return &Options{
		AddImageHeader: true,
		IsLastFrame:    true,
	}
}

// DefaultFrameConfig returns a FrameConfig for an 8-bit sRGB RGBA frame
// at the given dimensions, little-endian, moderate effort, one-shot
// input — the shape the convenience entry point (jxlenc.go) uses.
func DefaultFrameConfig(width, height int) FrameConfig {
	return FrameConfig{
		Width:        width,
		Height:       height,
		Channels:     4,
		BitDepth:     8,
		LittleEndian: true,
		Effort:       5,
		ColorSpace:   SRGB,
		OneShot:      true,
	}
}
