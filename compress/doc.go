// Package compress provides the byte-stream compressors used for dataset
// bodies.
//
// Every compressor is configured at its maximum level so that writing the same
// dataset twice produces the same bytes. Decoders are selected by sniffing the
// stream's magic bytes:
//
//   - Deflate: zlib framing (RFC 1950), the default for new files
//   - Zstd: Zstandard frames
//   - LZ4: LZ4 frames
package compress
