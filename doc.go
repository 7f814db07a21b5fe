// Package jxlenc implements a from-scratch, lossless-only JPEG XL
// encoder core. It takes a raw pixel buffer and emits a conformant JXL
// codestream (signature, size header, ImageMetadata, color encoding,
// frame header, TOC, DC-global block, per-group modular data) without
// linking the reference libjxl.
//
// The core combines a bit-level writer (internal/bitio), canonical
// prefix-code construction with per-symbol length limits solved by a
// bounded-precision dynamic program (internal/prefixcode), LZ77-
// augmented entropy coding with a precomputed short-run cache
// (internal/entropy), YCoCg and 8-bit palette color transforms plus a
// fixed gradient predictor (internal/colorxform), group/TOC layout with
// forward-padding reservation (internal/layout), and a multi-group
// orchestrator driven by a caller-supplied parallel runner
// (internal/core, runner.go).
//
// Basic usage for an in-memory RGBA buffer:
//
//	data, err := jxlenc.EncodeRGBA(pixels, width, height, jxlenc.DefaultOptions(), nil)
//
// For more control over frame configuration (channel count, bit depth,
// endianness, effort, color space) or a custom ChunkedFrameInputSource,
// use PrepareFrame / ProcessFrame / PrepareHeader / WriteOutput
// directly.
package jxlenc
