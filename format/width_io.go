package format

import "github.com/kvbuf/polyval/endian"

// PutUintTier writes v into dst using the byte width tier selects, in Wire
// order. dst must have at least tier.Size() bytes. v must fit in tier's
// range; callers choose tier via TierForMax before calling this.
func PutUintTier(engine endian.Engine, dst []byte, v uint64, tier WidthTier) {
	switch tier {
	case Width1:
		dst[0] = byte(v)
	case Width2:
		engine.PutUint16(dst, uint16(v))
	default:
		engine.PutUint32(dst, uint32(v))
	}
}

// UintTier reads a tier-width unsigned integer from src in Wire order.
// src must have at least tier.Size() bytes.
func UintTier(engine endian.Engine, src []byte, tier WidthTier) uint64 {
	switch tier {
	case Width1:
		return uint64(src[0])
	case Width2:
		return uint64(engine.Uint16(src))
	default:
		return uint64(engine.Uint32(src))
	}
}
