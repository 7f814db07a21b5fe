package core

import (
	"github.com/overlaycore/jxlenc/internal/colorxform"
	"github.com/overlaycore/jxlenc/internal/entropy"
)

const acGroupSampleRows = 256

// kHighEffortSamplingThreshold records the effort threshold of the
// reference encoder's oneshot||effort>=64 sampling branch (DESIGN.md Open
// Question decision #2). sampleFrequencies does not reference it: it
// always takes the all-groups side of that branch, whatever the effort
// and whether or not the frame was prepared as one-shot. The
// single-center-group sampling branch is not implemented.
const kHighEffortSamplingThreshold = 64

// sampleFrequencies walks every AC group once, each contributing
// 2*effort*groupHeight/256 sampled rows (clamped to the group's actual
// height), and accumulates per-channel histograms by running the same
// gradient-predict / pack-signed / chunk-run traversal the real entropy
// encoder uses (entropy.ProcessRow), through a Histogram sink instead of
// a bitstream writer. This is the reference encoder's all-groups
// sampling branch, used for every frame including those prepared with
// oneShot false, not a single bounded region: a histogram built from only the first group would
// starve ApplyBaselineFloor's job of reflecting the rest of the image.
// The resulting per-channel histograms feed prefixcode.BuildCode in
// Prepare.
func sampleFrequencies(fs *FrameState) ([4]*entropy.Histogram, error) {
	var histograms [4]*entropy.Histogram
	channels := fs.effectiveChannels()
	for c := 0; c < channels; c++ {
		histograms[c] = &entropy.Histogram{}
	}

	states := make([]entropy.RunState, channels)

	// Rows, not (x,y) group pairs: GetAt already reads a full-width row per
	// call, so sampling group-row gy once covers every x-group in that row
	// band — there is no per-column restriction to replicate here.
	numGroupsY := fs.Geometry.NumACGroupsY
	for gy := 0; gy < numGroupsY; gy++ {
		y0 := gy * acGroupSampleRows
		groupHeight := fs.Height - y0
		if groupHeight > acGroupSampleRows {
			groupHeight = acGroupSampleRows
		}
		numRows := 2 * fs.Effort * groupHeight / acGroupSampleRows
		if numRows > groupHeight {
			numRows = groupHeight
		}
		if numRows == 0 {
			continue
		}

		var prevPlanes [][]int32
		var prevLeftEdge []int32
		for y := y0; y < y0+numRows; y++ {
			data, rowStride, err := fs.Input.GetAt(0, y, fs.Width, 1)
			if err != nil {
				return histograms, ErrGetAtFailed
			}
			planes := unpackSampleRow(fs, data, rowStride)
			fs.Input.Release(data)

			leftEdge := make([]int32, channels)
			for c := range leftEdge {
				if prevLeftEdge != nil {
					leftEdge[c] = prevLeftEdge[c]
				}
			}

			for c := 0; c < channels; c++ {
				var prevPadded []int32
				if prevPlanes != nil {
					prevPadded = colorxform.PadScanline(prevPlanes[c], leftEdge[c])
				} else {
					prevPadded = colorxform.PadScanline(planes[c], leftEdge[c])
				}
				curPadded := colorxform.PadScanline(planes[c], leftEdge[c])

				base := colorxform.ScanlinePad - 1
				residuals := entropy.ResidualRow(curPadded[base:], prevPadded[base:], fs.Width)
				entropy.ProcessRow(residuals, &states[c], histograms[c])

				leftEdge[c] = planes[c][0]
			}

			prevPlanes = planes
			prevLeftEdge = leftEdge
		}
	}

	for c := 0; c < channels; c++ {
		entropy.FlushRun(&states[c], histograms[c])
	}
	return histograms, nil
}

// unpackSampleRow reads one row of channels-worth of samples for
// frequency sampling, applying the same byte-width/endian/YCoCg
// dispatch the real per-group front-end uses (spec §4.4). In palette mode
// it maps each pixel to its palette index here and returns a single
// plane, matching effectiveChannels.
func unpackSampleRow(fs *FrameState, data []byte, stride int) [][]int32 {
	byteWidth := 8
	if fs.BitDepth > 8 {
		byteWidth = 16
	}
	if fs.IsPalette {
		planes := make([][]int32, 1)
		planes[0] = make([]int32, fs.Width)
		for x := 0; x < fs.Width; x++ {
			pixel := samplePixelARGB(fs, data, x, byteWidth)
			planes[0][x] = int32(fs.PaletteIndex[pixel])
		}
		return planes
	}
	return colorxform.UnpackRow(data, fs.Width, fs.Channels, byteWidth, fs.LittleEndian)
}

// samplePixelARGB reads one pixel from a raw interleaved row and packs
// it into the colorxform ARGB convention, for palette-index lookup.
func samplePixelARGB(fs *FrameState, data []byte, x, byteWidth int) uint32 {
	bpp := byteWidth / 8
	read := func(c int) uint8 {
		off := (x*fs.Channels + c) * bpp
		if bpp == 1 {
			return data[off]
		}
		if fs.LittleEndian {
			return data[off+1]
		}
		return data[off]
	}
	switch fs.Channels {
	case 1:
		g := read(0)
		return colorxform.PackARGB(255, g, g, g)
	case 2:
		g, a := read(0), read(1)
		return colorxform.PackARGB(a, g, g, g)
	case 3:
		r, g, b := read(0), read(1), read(2)
		return colorxform.PackARGB(255, r, g, b)
	default:
		r, g, b, a := read(0), read(1), read(2), read(3)
		return colorxform.PackARGB(a, r, g, b)
	}
}
