package core

import (
	"github.com/google/uuid"

	"github.com/overlaycore/jxlenc/internal/bitio"
	"github.com/overlaycore/jxlenc/internal/colorxform"
	"github.com/overlaycore/jxlenc/internal/entropy"
	"github.com/overlaycore/jxlenc/internal/layout"
	"github.com/overlaycore/jxlenc/internal/pool"
	"github.com/overlaycore/jxlenc/internal/prefixcode"
	"github.com/overlaycore/jxlenc/internal/stream"
)

// ParallelRunner is the externally-supplied work dispatcher (spec §5):
// given a work count, invoke work(i) for every i in [0, count), either
// sequentially or in parallel, blocking until all have completed.
type ParallelRunner interface {
	Run(count int, work func(i int))
}

// syncRunner is core's own zero-dependency default, substituted whenever
// ProcessFrame is called with a nil runner (spec §5: "a default
// synchronous runner is substituted when the caller passes null").
type syncRunner struct{}

func (syncRunner) Run(count int, work func(i int)) {
	for i := 0; i < count; i++ {
		work(i)
	}
}

// DefaultRunner is the package-level synchronous ParallelRunner.
var DefaultRunner ParallelRunner = syncRunner{}

// PrepareFrame builds a FrameState: validates the caller contract,
// computes group geometry, samples pixel frequencies through the
// color/predictor front-end, attempts palette detection, and builds the
// four per-channel-slot prefix codes (spec §6 prepare_frame).
func PrepareFrame(input ChunkedFrameInputSource, width, height, channels, bitDepth int, littleEndian bool, effort int, cs layout.ColorSpace, oneShot bool) (*FrameState, error) {
	if err := validateContract(width, height, channels, bitDepth); err != nil {
		return nil, err
	}

	fs := &FrameState{
		ID:           uuid.New(),
		Width:        width,
		Height:       height,
		Channels:     channels,
		BitDepth:     bitDepth,
		LittleEndian: littleEndian,
		Effort:       effort,
		ColorSpace:   cs,
		OneShot:      oneShot,
		Input:        input,
		Geometry:     layout.NewGroupGeometry(width, height),
	}

	// Palette detection (spec §4.4): only attempted when effort >= 2,
	// bit depth == 8, and the input is available in one shot.
	if effort >= 2 && bitDepth == 8 && oneShot {
		if pal, ok := detectPaletteFromSource(fs); ok {
			fs.IsPalette = true
			fs.Palette = pal
			fs.PaletteIndex = colorxform.BuildPaletteIndex(pal)
		}
	}

	histograms, err := sampleFrequencies(fs)
	if err != nil {
		return nil, err
	}

	class := widthClassFor(bitDepth)
	channelsToBuild := fs.effectiveChannels()
	for c := 0; c < channelsToBuild; c++ {
		// Even sampling every AC group (sampleFrequencies) only reads a
		// scaled-down row count per group, not every pixel; without a floor
		// a symbol the full encode later emits but the sample never saw
		// would get a zero-length codeword and silently corrupt the
		// bitstream.
		histograms[c].ApplyBaselineFloor()
		fs.Codes[c] = prefixcode.BuildCode(histograms[c].Raw, histograms[c].LZ, class)
	}
	if fs.IsPalette {
		fs.PaletteCode = buildPaletteCode(fs.Palette)
	}

	numAC := fs.Geometry.NumACGroups()
	fs.groups = make([]groupBuffer, numAC)
	fs.groupSizes = make([]int, fs.Geometry.NumSections())

	// TOC entries use a 2-bit bucket tag plus one of {10,14,22,30} payload
	// bits (layout.TOCEntryBits), so an entry takes 12, 16, 24 or 32 bits.
	// The padding reservation below bounds the AC groups' entries by 12
	// bits each (best case) and 24 bits each (worst case), computed now rather
	// than from actual group sizes once they're known (spec §4.5: "the
	// AC-group TOC bits are not known until all groups encode").
	fs.acTOCMinBits = numAC * 12
	fs.acTOCMaxBits = numAC * 24

	return fs, nil
}

// detectPaletteFromSource reads the whole image (one-shot only) into an
// ARGB slice and runs colorxform.DetectPalette over it.
func detectPaletteFromSource(fs *FrameState) ([]uint32, bool) {
	data, stride, err := fs.Input.GetAt(0, 0, fs.Width, fs.Height)
	if err != nil {
		return nil, false
	}
	defer fs.Input.Release(data)

	pixels := make([]uint32, 0, fs.Width*fs.Height)
	for y := 0; y < fs.Height; y++ {
		row := data[y*stride:]
		for x := 0; x < fs.Width; x++ {
			pixels = append(pixels, samplePixelARGB(fs, row, x, 8))
		}
	}
	return colorxform.DetectPalette(pixels, layout.HasAlpha(fs.Channels))
}

// buildPaletteCode constructs the prefix code used to entropy-encode the
// palette's own RGB(A) pixel stream (spec §4.5's "encoded via the same
// entropy path"), sampled directly from the palette entries themselves
// since there are at most 512 of them.
func buildPaletteCode(palette []uint32) *prefixcode.Code {
	hist := &entropy.Histogram{}
	state := &entropy.RunState{}
	prevR, prevG, prevB := int32(0), int32(0), int32(0)
	for _, p := range palette {
		_, r, g, b := colorxform.UnpackARGB(p)
		for _, pair := range [3][2]int32{{int32(r), prevR}, {int32(g), prevG}, {int32(b), prevB}} {
			residual := entropy.PackSigned(pair[0] - pair[1])
			token, nbits, bits := entropy.EncodeHybridUint000(residual)
			hist.EmitToken(token, nbits, bits)
		}
		prevR, prevG, prevB = int32(r), int32(g), int32(b)
	}
	entropy.FlushRun(state, hist)
	return prefixcode.BuildCode(hist.Raw, hist.LZ, prefixcode.WidthUpTo8)
}

// ProcessFrame dispatches per-AC-group encoding through runner (or the
// package default if nil); the DC-global section is written later, by
// PrepareHeader. It never returns false except when a group's input read fails (spec
// §7 runner failure: per-group size remains zero, caller must treat a
// short output as a failed encode).
func ProcessFrame(fs *FrameState, runner ParallelRunner) bool {
	if runner == nil {
		runner = DefaultRunner
	}

	ok := true
	numAC := fs.Geometry.NumACGroups()
	failed := make([]bool, numAC)
	runner.Run(numAC, func(i int) {
		if err := encodeACGroup(fs, i); err != nil {
			failed[i] = true
		}
	})
	for _, f := range failed {
		if f {
			ok = false
		}
	}
	return ok
}

// acGroupRect returns the pixel rectangle for AC group index i in
// row-major group order.
func acGroupRect(fs *FrameState, i int) (x, y, w, h int) {
	gx := i % fs.Geometry.NumACGroupsX
	gy := i / fs.Geometry.NumACGroupsX
	x = gx * acGroupDimConst
	y = gy * acGroupDimConst
	w = acGroupDimConst
	if x+w > fs.Width {
		w = fs.Width - x
	}
	h = acGroupDimConst
	if y+h > fs.Height {
		h = fs.Height - y
	}
	return x, y, w, h
}

const acGroupDimConst = 256

// encodeACGroup runs the color/predictor front-end and entropy chunk
// encoder (components D and C) over one AC group's pixels, writing the
// result into that group's four channel-slot bit writers.
func encodeACGroup(fs *FrameState, i int) error {
	x0, y0, w, h := acGroupRect(fs, i)
	channels := fs.effectiveChannels()

	// Per-group channel buffers are the hottest allocation in the codec:
	// one set per AC group, freed again once the streamer has drained
	// them. Pulled from internal/pool's bucketed sync.Pool rather than
	// allocated fresh, mirroring the teacher's own use of pool for its
	// hot-path scratch buffers.
	var gb groupBuffer
	for c := 0; c < channels; c++ {
		buf := pool.Get(w * h * 4)
		gb.channels[c] = bitio.NewWriterFromBuf(buf)
	}

	states := make([]entropy.RunState, channels)
	sinks := make([]*entropy.CodeSink, channels)
	for c := 0; c < channels; c++ {
		code := fs.Codes[c]
		sinks[c] = &entropy.CodeSink{Code: code, Writer: gb.channels[c]}
	}

	var prevPlanes [][]int32
	leftEdge := make([]int32, channels)

	for row := 0; row < h; row++ {
		data, stride, err := fs.Input.GetAt(x0, y0+row, w, 1)
		if err != nil {
			return ErrGetAtFailed
		}
		planes := unpackGroupRow(fs, data, stride, w)
		fs.Input.Release(data)

		for c := 0; c < channels; c++ {
			var prevPadded []int32
			if prevPlanes != nil {
				prevPadded = colorxform.PadScanline(prevPlanes[c], leftEdge[c])
			} else {
				prevPadded = colorxform.PadScanline(planes[c], leftEdge[c])
			}
			curPadded := colorxform.PadScanline(planes[c], leftEdge[c])
			base := colorxform.ScanlinePad - 1

			residuals := entropy.ResidualRow(curPadded[base:], prevPadded[base:], w)
			entropy.ProcessRow(residuals, &states[c], sinks[c])
			leftEdge[c] = planes[c][0]
		}
		prevPlanes = planes
	}

	for c := 0; c < channels; c++ {
		entropy.FlushRun(&states[c], sinks[c])
	}

	fs.groups[i] = gb
	size := 0
	for c := 0; c < channels; c++ {
		size += gb.channels[c].BytesWritten()
	}
	fs.groupSizes[2+fs.Geometry.NumDCGroups()+i] = size
	return nil
}

// unpackGroupRow mirrors unpackSampleRow but over the channel count and
// layout the real entropy path needs (full channel count unless palette
// mode, matching spec §4.4's D/C handoff).
func unpackGroupRow(fs *FrameState, data []byte, stride, width int) [][]int32 {
	byteWidth := 8
	if fs.BitDepth > 8 {
		byteWidth = 16
	}
	if fs.IsPalette {
		planes := make([][]int32, 1)
		planes[0] = make([]int32, width)
		for x := 0; x < width; x++ {
			pixel := samplePixelARGB(fs, data, x, byteWidth)
			planes[0][x] = int32(fs.PaletteIndex[pixel])
		}
		return planes
	}
	return colorxform.UnpackRow(data, width, fs.Channels, byteWidth, fs.LittleEndian)
}

// PrepareHeader finalizes the image/frame header and DC-global section,
// computes the TOC padding reservation, and patches the table of
// contents once every group's final size is known (spec §4.5, §6
// prepare_header).
func PrepareHeader(fs *FrameState, addImageHeader, isLast bool) {
	header := bitio.NewWriter(4096)
	if addImageHeader {
		header.Write(16, layout.Signature)
		layout.WriteSizeHeader(header, fs.Width, fs.Height)
		layout.WriteImageMetadata(header, fs.BitDepth, fs.Channels, fs.ColorSpace)
	}
	layout.WriteFrameHeader(header, isLast)

	dcGlobal := bitio.NewWriter(8192)
	layout.WriteDCGlobal(dcGlobal, layout.DCGlobalConfig{
		Channels:    fs.effectiveChannels(),
		Codes:       fs.Codes,
		IsPalette:   fs.IsPalette,
		Palette:     fs.Palette,
		PaletteCode: fs.PaletteCode,
	})
	fs.groupSizes[0] = dcGlobal.BytesWritten()

	numDC := fs.Geometry.NumDCGroups()
	dcGroupWriters := make([]*bitio.Writer, numDC)
	for i := range dcGroupWriters {
		dcGroupWriters[i] = bitio.NewWriter(64)
		fs.groupSizes[1+i] = dcGroupWriters[i].BytesWritten()
	}

	// AC-global: a fixed, near-empty shared section preceding the AC
	// groups themselves (single-pass framing needs no per-pass extra
	// state; this section exists only to keep the section count, and
	// therefore the TOC layout, aligned with spec §4.5's "2 +
	// num_dc_groups + num_ac_groups" total).
	acGlobal := bitio.NewWriter(16)
	fs.groupSizes[1+numDC] = acGlobal.BytesWritten()

	fs.minDCGlobalSize = layout.ReserveDCGlobalBucket(uint64(fs.groupSizes[0]), fs.acTOCMinBits, fs.acTOCMaxBits)

	toc := bitio.NewWriter(4096)
	for _, size := range fs.groupSizes {
		layout.WriteSectionSize(toc, uint64(size))
	}
	toc.ZeroPadToByte()

	fs.acGroupDataOffset = uint64(len(header.Finish())+len(toc.Finish())) + fs.minDCGlobalSize

	headerBytes := append(append([]byte(nil), header.Buffer()...), toc.Buffer()...)

	groups := make([]stream.GroupSection, 0, 2+numDC+len(fs.groups))
	groups = append(groups, stream.GroupSection{Channels: []*bitio.Writer{dcGlobal}})
	for _, w := range dcGroupWriters {
		groups = append(groups, stream.GroupSection{Channels: []*bitio.Writer{w}})
	}
	groups = append(groups, stream.GroupSection{Channels: []*bitio.Writer{acGlobal}})
	for i := range fs.groups {
		chs := fs.groups[i].channels[:fs.effectiveChannels()]
		groups = append(groups, stream.GroupSection{Channels: chs})
	}

	fs.streamer = stream.NewStreamer(headerBytes, groups)
}

// MaxRequiredOutput returns an upper bound on the encoded size, valid
// any time after PrepareFrame (spec §6 max_required_output).
func MaxRequiredOutput(fs *FrameState) int {
	total := 64 // header + TOC slack
	for _, gb := range fs.groups {
		for _, w := range gb.channels {
			if w != nil {
				total += w.BytesWritten() + 8
			}
		}
	}
	return total
}

// OutputSize returns the exact encoded size; only valid after
// PrepareHeader has built the streamer (spec §6 output_size).
func OutputSize(fs *FrameState) int {
	if fs.streamer == nil {
		return 0
	}
	return fs.streamer.Size()
}

// WriteOutput drains up to len(buf) bytes of the finalized bitstream
// into buf, returning the number of bytes written; 0 means the frame
// has been fully emitted (spec §6 write_output). buf must be at least
// 32 bytes, per spec §4.6.
func WriteOutput(fs *FrameState, buf []byte) int {
	if len(buf) < 32 || fs.streamer == nil {
		return 0
	}
	return fs.streamer.Write(buf)
}
