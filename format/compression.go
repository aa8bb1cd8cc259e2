package format

// CompressionType identifies the codec used to compress a packed buffer
// for transport or storage. It never affects the canonical in-memory byte
// form of a buffer — compression is applied, and removed, strictly
// outside the validated byte slice.
type CompressionType uint8

const (
	CompressionNone CompressionType = iota
	CompressionZstd
	CompressionS2
	CompressionLZ4
)

// String implements fmt.Stringer.
func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
