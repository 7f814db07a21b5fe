// Package layout implements the group/TOC layout component (spec §4.5):
// AC/DC group geometry, image and frame headers, the size-class TOC with
// forward-padding reservation, and the DC-global section writer.
//
// Grounded on the teacher codec's internal/container package (riff.go /
// parser.go): a chunk-sized container header whose sizes are computed up
// front and patched once payloads are known. This spec's TOC escalates
// across four size-class buckets with a forward-padding reservation
// step that RIFF's flat 32-bit chunk size never needed; that mechanism
// (ReserveDCGlobalBucket in toc.go) has no teacher analogue and is built
// fresh from spec §4.5.
package layout

// ceilDiv returns ⌈a/b⌉ for positive a, b.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// GroupGeometry holds the AC/DC group counts derived from image
// dimensions (spec §3).
type GroupGeometry struct {
	Width, Height int
	NumACGroupsX  int
	NumACGroupsY  int
	NumDCGroupsX  int
	NumDCGroupsY  int
}

const (
	acGroupDim = 256
	dcGroupDim = 2048
)

// NewGroupGeometry computes the group counts for an image of the given
// dimensions.
func NewGroupGeometry(width, height int) GroupGeometry {
	return GroupGeometry{
		Width: width, Height: height,
		NumACGroupsX: ceilDiv(width, acGroupDim),
		NumACGroupsY: ceilDiv(height, acGroupDim),
		NumDCGroupsX: ceilDiv(width, dcGroupDim),
		NumDCGroupsY: ceilDiv(height, dcGroupDim),
	}
}

// NumACGroups is the total number of independently-encoded AC groups.
func (g GroupGeometry) NumACGroups() int { return g.NumACGroupsX * g.NumACGroupsY }

// NumDCGroups is the total number of DC groups.
func (g GroupGeometry) NumDCGroups() int { return g.NumDCGroupsX * g.NumDCGroupsY }

// OneGroup reports whether the image is small enough to use "one-group"
// framing: a single AC group that also fits within one DC group, letting
// DC-global hold the only modular image's pixels directly (spec §4.5).
func (g GroupGeometry) OneGroup() bool {
	return g.NumACGroups() == 1 && g.NumDCGroups() == 1
}

// NumSections returns the total section count for multi-group framing:
// DC-global, DC-group(s), AC-global, then AC groups (spec §4.5 "2 + num_dc_groups +
// num_ac_groups").
func (g GroupGeometry) NumSections() int {
	return 2 + g.NumDCGroups() + g.NumACGroups()
}
