package buffer

import "github.com/kvbuf/polyval/format"

// nodeAlign is the alignment every node start is padded to: 8 bytes, the
// widest scalar alignment (an IntWidth8 integer or a Float64 decimal).
// Pass 2 of the lowering engine allocates the whole buffer at this
// alignment so every node's natural alignment is automatically satisfied
// relative to the buffer's own start.
const nodeAlign = 8

// alignUp rounds offset up to the next multiple of nodeAlign.
func alignUp(offset int) int {
	rem := offset % nodeAlign
	if rem == 0 {
		return offset
	}

	return offset + (nodeAlign - rem)
}

// selectAggregateTier finds the width tier for an aggregate header via a
// fixed-point computation: widening the tier grows the header (and so
// the offset of every child after it), which can push
// the total extent past what the current tier can represent, forcing
// another widen. The loop always converges because widening never
// shrinks anything.
//
// bodySize is the combined, alignment-padded extent of all children,
// already computed independently of tier (child placement uses the fixed
// nodeAlign, not the parent's header width). bodyStart is the offset from
// the node's own start — aligned up from the header length — at which the
// first child begins; lower.go adds it to each child's tier-independent
// body offset to get the child's offset from the node's start, which is
// what the header records. ok is false if even the
// widest tier cannot represent the resulting extent — the caller must
// reject the structure as too large.
func selectAggregateTier(bodySize int, childCount int) (tier format.WidthTier, bodyStart int, totalExtent int, ok bool) {
	tier = format.Width1

	for {
		headerLen := 1 + format.Pad(tier.Size()) + 2*tier.Size() + childCount*tier.Size()
		bodyStart = alignUp(headerLen)
		totalExtent = bodyStart + bodySize

		if uint64(totalExtent) <= tier.Max() {
			return tier, bodyStart, totalExtent, true
		}

		if tier == format.Width4 {
			return tier, bodyStart, totalExtent, false
		}

		tier = tier.Next()
	}
}
