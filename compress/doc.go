// Package compress provides compression and decompression codecs for
// packed buffers moving through the transport layer.
//
// # Overview
//
// Compression here is a transport concern, never an encoding concern: a
// packed buffer's canonical byte form (content-addressable and
// memcmp-comparable) never changes shape because of compression. The
// codecs in this package operate on an already-lowered, already-validated
// buffer as an opaque byte slice and hand back an opaque compressed byte
// slice; nothing about node layout, discriminants, or offsets is aware
// that compression exists.
//
// Supported algorithms:
//   - None: no compression (fastest, largest)
//   - Zstd: best compression ratio, moderate speed
//   - S2: balanced compression and speed
//   - LZ4: fastest decompression, moderate compression
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Choosing an algorithm
//
// | Workload              | Recommended | Reason                         |
// |------------------------|-------------|---------------------------------|
// | Storage-constrained    | Zstd        | Best compression ratio          |
// | Frequent round-trips   | S2          | Balanced speed and compression  |
// | Read-heavy             | LZ4         | Fastest decompression           |
// | CPU-constrained        | None        | No compression overhead         |
// | Network transmission   | Zstd        | Reduce bandwidth usage          |
//
// # Memory management
//
// Zstd pools its encoders and decoders, and LZ4 its block compressors, via
// sync.Pool since both libraries document that reuse avoids repeated
// warmup allocation; S2, NoOp and LZ4 decompression are stateless per call.
//
// # Thread safety
//
// All codec implementations are safe to share across goroutines.
//
// # Error handling
//
// Decompression errors (corrupted data, truncated frame, checksum
// failure where the algorithm supports one) are wrapped with context
// before being returned; the transport package wraps them with
// errs.ErrBadFrame, a validation-kind error.
package compress
