// Package jxlenc implements a from-scratch lossless JPEG XL encoder
// core: a bit-level writer, canonical prefix-code construction, LZ77-
// augmented entropy coding, YCoCg/palette color transforms, a gradient
// predictor, group/TOC layout with forward-padding reservation, and a
// parallel multi-group orchestrator (see internal/core).
//
// The package never spawns goroutines itself (spec §5): ProcessFrame
// takes a ParallelRunner, defaulting to SyncRunner when nil.
package jxlenc

import (
	"fmt"

	"github.com/overlaycore/jxlenc/internal/core"
)

// ChunkedFrameInputSource is the pixel-acquisition callback ABI spec
// §4.4 requires, re-exported so callers never need to import
// internal/core directly.
type ChunkedFrameInputSource = core.ChunkedFrameInputSource

// FrameState is an opaque handle returned by PrepareFrame and consumed
// by every other entry point, matching spec §6's six-entry-point API
// surface (prepare_frame, process_frame, prepare_header,
// max_required_output, output_size, write_output, free_frame_state).
type FrameState struct {
	fs *core.FrameState
}

// PrepareFrame samples pixel frequencies through the input source,
// attempts palette detection, and builds the per-channel prefix codes
// (spec §6 prepare_frame).
func PrepareFrame(input ChunkedFrameInputSource, cfg FrameConfig) (*FrameState, error) {
	fs, err := core.PrepareFrame(input, cfg.Width, cfg.Height, cfg.Channels, cfg.BitDepth, cfg.LittleEndian, cfg.Effort, cfg.ColorSpace, cfg.OneShot)
	if err != nil {
		return nil, err
	}
	return &FrameState{fs: fs}, nil
}

// ProcessFrame dispatches per-AC-group encoding through runner (nil
// substitutes SyncRunner), returning false if any group failed to
// produce output (spec §6 process_frame, §7 runner failure).
func (f *FrameState) ProcessFrame(runner ParallelRunner) bool {
	return core.ProcessFrame(f.fs, runner)
}

// PrepareHeader finalizes the image/frame header, the DC-global
// section, and the table of contents (spec §6 prepare_header).
func (f *FrameState) PrepareHeader(opts *Options) {
	if opts == nil {
		opts = DefaultOptions()
	}
	core.PrepareHeader(f.fs, opts.AddImageHeader, opts.IsLastFrame)
}

// MaxRequiredOutput returns an upper bound on the encoded size, valid
// any time after PrepareFrame (spec §6 max_required_output).
func (f *FrameState) MaxRequiredOutput() int { return core.MaxRequiredOutput(f.fs) }

// OutputSize returns the exact encoded size; only valid after
// PrepareHeader (spec §6 output_size).
func (f *FrameState) OutputSize() int { return core.OutputSize(f.fs) }

// WriteOutput drains up to len(buf) bytes of the finalized bitstream
// into buf; buf must be at least 32 bytes. A return of 0 means the
// frame has been fully emitted (spec §6 write_output).
func (f *FrameState) WriteOutput(buf []byte) int { return core.WriteOutput(f.fs, buf) }

// Free releases internal references held by the frame state (spec §6
// free_frame_state). Safe to call more than once; a freed FrameState
// must not be used again.
func (f *FrameState) Free() { core.FreeFrameState(f.fs) }

// ID returns the frame's generated identifier, suitable for correlating
// a single encode across structured log lines when a caller dispatches
// many frames concurrently.
func (f *FrameState) ID() string { return f.fs.ID.String() }

// EncodeRGBA is the convenience entry point (spec §6: "packs the above
// for an in-memory RGBA buffer"): it runs prepare/process/finalize/
// drain over a tightly packed, row-major RGBA buffer and returns the
// complete JPEG XL codestream.
func EncodeRGBA(pixels []byte, width, height int, opts *Options, runner ParallelRunner) ([]byte, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	cfg := DefaultFrameConfig(width, height)
	src := &core.MemorySource{Pixels: pixels, Width: width, Height: height, Stride: width * 4}

	fs, err := PrepareFrame(src, cfg)
	if err != nil {
		return nil, err
	}
	defer fs.Free()

	if ok := fs.ProcessFrame(runner); !ok {
		return nil, ErrRunnerFailed
	}
	fs.PrepareHeader(opts)

	size := fs.OutputSize()
	out := make([]byte, 0, size)
	buf := make([]byte, 4096)
	for {
		n := fs.WriteOutput(buf)
		if n == 0 {
			break
		}
		out = append(out, buf[:n]...)
	}
	if len(out) != size {
		return nil, fmt.Errorf("jxlenc: wrote %d bytes, expected %d", len(out), size)
	}
	return out, nil
}
