package core

import (
	"errors"

	"github.com/google/uuid"

	"github.com/overlaycore/jxlenc/internal/bitio"
	"github.com/overlaycore/jxlenc/internal/layout"
	"github.com/overlaycore/jxlenc/internal/pool"
	"github.com/overlaycore/jxlenc/internal/prefixcode"
	"github.com/overlaycore/jxlenc/internal/stream"
)

// Caller-contract errors (spec §7): detected by precondition checks in
// PrepareFrame, reported as a non-nil error with no partial state built.
var (
	ErrInvalidDimensions  = errors.New("jxlenc: width and height must be >= 1")
	ErrInvalidChannels    = errors.New("jxlenc: channel count must be in [1,4]")
	ErrInvalidBitDepth    = errors.New("jxlenc: bit depth must be in [1,16]")
	ErrOutputTooSmall     = errors.New("jxlenc: write_output buffer must be >= 32 bytes")
	ErrFrameAlreadyClosed = errors.New("jxlenc: frame state already finalized and freed")
)

// groupBuffer is one group's per-channel-slot bit writers (spec §3: "an
// ordered sequence of group buffers; each group buffer is a tuple of
// four independent bit writers").
type groupBuffer struct {
	channels [4]*bitio.Writer
}

// FrameState is the central object carried from prepare to finalize
// (spec §3). It is built once by PrepareFrame, mutated per-group by
// ProcessFrame's dispatched workers (disjoint group buffers only), then
// read-only from PrepareHeader through the final WriteOutput drain.
type FrameState struct {
	ID uuid.UUID

	Width, Height int
	Channels      int
	BitDepth      int
	LittleEndian  bool
	Effort        int
	ColorSpace    layout.ColorSpace
	OneShot       bool

	Geometry layout.GroupGeometry
	Input    ChunkedFrameInputSource

	IsPalette    bool
	Palette      []uint32
	PaletteIndex map[uint32]int

	Codes       [4]*prefixcode.Code
	PaletteCode *prefixcode.Code

	headerWriter *bitio.Writer
	groups       []groupBuffer
	groupSizes   []int

	// acTOCMinBits/acTOCMaxBits are the worst/best-case total bit width of
	// every AC group's TOC entry, computed purely from the group count
	// (spec §4.5) the moment geometry is known in PrepareFrame — before any
	// AC group has actually been encoded. PrepareHeader uses these to
	// reserve the DC-global bucket against whatever padding growth the real
	// group sizes turn out to need.
	acTOCMinBits, acTOCMaxBits int

	minDCGlobalSize   uint64
	acGroupDataOffset uint64

	streamer *stream.Streamer
	closed   bool
}

// effectiveChannels returns the channel count the entropy path actually
// encodes: 1 under palette mode (spec §3: "In palette mode, channel
// count is 1 after transform"), else the frame's declared channel count.
func (fs *FrameState) effectiveChannels() int {
	if fs.IsPalette {
		return 1
	}
	return fs.Channels
}

// validateContract checks the caller-contract preconditions spec §7
// names explicitly for prepare_frame.
func validateContract(width, height, channels, bitDepth int) error {
	if width < 1 || height < 1 {
		return ErrInvalidDimensions
	}
	if channels < 1 || channels > 4 {
		return ErrInvalidChannels
	}
	if bitDepth < 1 || bitDepth > 16 {
		return ErrInvalidBitDepth
	}
	return nil
}

// FreeFrameState releases references held by fs so its buffers become
// collectible, matching teacher's releaseEncoder convention (spec §6
// free_frame_state). Safe to call more than once.
func FreeFrameState(fs *FrameState) {
	if fs == nil || fs.closed {
		return
	}
	for _, gb := range fs.groups {
		for _, w := range gb.channels {
			if w != nil {
				pool.Put(w.Buffer())
			}
		}
	}
	fs.Input = nil
	fs.groups = nil
	fs.headerWriter = nil
	fs.streamer = nil
	fs.Palette = nil
	fs.PaletteIndex = nil
	fs.closed = true
}
