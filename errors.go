package jxlenc

import (
	"errors"

	"github.com/overlaycore/jxlenc/internal/core"
)

// Caller-contract errors (spec §7), re-exported from internal/core so
// callers can errors.Is against them without importing an internal
// package.
var (
	ErrInvalidDimensions = core.ErrInvalidDimensions
	ErrInvalidChannels   = core.ErrInvalidChannels
	ErrInvalidBitDepth   = core.ErrInvalidBitDepth
	ErrOutputTooSmall    = core.ErrOutputTooSmall
)

// ErrRunnerFailed is returned by EncodeRGBA when ProcessFrame reports that
// one or more groups failed to produce output (spec §7 runner failure):
// "callers should treat a runner that fails to complete all indices as
// fatal".
var ErrRunnerFailed = errors.New("jxlenc: parallel runner failed to encode one or more groups")

// ErrInputSource wraps a failure reported by the caller-supplied
// ChunkedFrameInputSource (spec §4.4/§7).
var ErrInputSource = core.ErrGetAtFailed
