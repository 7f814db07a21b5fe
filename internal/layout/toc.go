package layout

import "github.com/overlaycore/jxlenc/internal/bitio"

// tocBucket is one of the four TOC size-class escalation tiers (spec
// §4.5): a section whose byte size is >= Offset and fits within
// PayloadBits once Offset is subtracted is encoded in this bucket, as a
// 2-bit tag followed by PayloadBits of payload.
type tocBucket struct {
	Offset      uint64
	PayloadBits int
}

// tocBuckets are fixed by the format: total field widths {12,16,24,32}
// bits include the 2-bit tag, so payload widths are {10,14,22,30}.
var tocBuckets = [4]tocBucket{
	{Offset: 0, PayloadBits: 10},
	{Offset: 1024, PayloadBits: 14},
	{Offset: 17408, PayloadBits: 22},
	{Offset: 4211712, PayloadBits: 30},
}

// TOCBucketFor returns the index of the smallest bucket that can
// represent size.
func TOCBucketFor(size uint64) int {
	for i, b := range tocBuckets {
		if size < b.Offset+(uint64(1)<<uint(b.PayloadBits)) {
			return i
		}
	}
	return len(tocBuckets) - 1
}

// WriteSectionSize writes one TOC entry: a 2-bit bucket tag followed by
// that bucket's payload field.
func WriteSectionSize(w *bitio.Writer, size uint64) {
	bucket := TOCBucketFor(size)
	b := tocBuckets[bucket]
	w.Write(2, uint64(bucket))
	w.Write(b.PayloadBits, size-b.Offset)
}

// TOCEntryBits returns how many bits WriteSectionSize would emit for
// size, without writing anything.
func TOCEntryBits(size uint64) int {
	return 2 + tocBuckets[TOCBucketFor(size)].PayloadBits
}

// ReserveDCGlobalBucket implements spec §4.5's padding-reservation step:
// because the AC-group TOC entries aren't known until every group has
// encoded, the DC-global size must be chosen so that later growth of up
// to maxPadding bytes can never push it into a larger bucket (which
// would shift every subsequent byte offset).
//
// maxPadding = 1 + ceil((acTOCMaxBits - acTOCMinBits) / 8).
func ReserveDCGlobalBucket(minSize uint64, acTOCMinBits, acTOCMaxBits int) uint64 {
	maxPadding := uint64(1 + ceilDiv(acTOCMaxBits-acTOCMinBits, 8))

	size := minSize
	for TOCBucketFor(size) != TOCBucketFor(size+maxPadding) {
		b := tocBuckets[TOCBucketFor(size)]
		size = b.Offset + (uint64(1) << uint(b.PayloadBits))
	}
	return size
}
