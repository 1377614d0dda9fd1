// Package pocketplus implements the CCSDS 124.0-B-1 POCKET+ lossless
// compressor for fixed-length housekeeping telemetry packets. It is
// the public entry point: Compress and Decompress drive the state
// machines in lib/engine over a caller-supplied byte buffer, with the
// parameter validation spec.md §6 requires at the boundary.
//
// # Overview
//
// A compressed stream has no self-describing header: packet_size_bits
// and R must be supplied identically to both Compress and Decompress.
// There is no magic number, no length prefix, no checksum.
//
// # Dependencies
//
// lib/engine for the state machines, lib/bitio for the bit source
// used during decompression, lib/pocketerr for the error taxonomy.
package pocketplus

import (
	"github.com/tanagraspace/pocket-plus/lib/bitio"
	"github.com/tanagraspace/pocket-plus/lib/engine"
	"github.com/tanagraspace/pocket-plus/lib/pocketerr"
)

// maxPacketSizeBits is the largest packet width compress/decompress
// accept. CCSDS 124.0-B-1 caps F at 65535 bits (bitvector.MaxLength);
// it is also the upper bound of the COUNT codec's domain, since the
// uncompressed path encodes F itself with CountEncode.
const maxPacketSizeBits = 65535

// Compress packs data (N concatenated fixed-width packets, each
// packetSizeBits/8 bytes) into a POCKET+ compressed stream.
//
// packetSizeBits must be > 0, a multiple of 8, and <= 65535. r must
// be 0-7. ptLimit, ftLimit, and rtLimit must be positive. len(data)
// must be a multiple of packetSizeBits/8; an empty buffer compresses
// to an empty result.
func Compress(data []byte, packetSizeBits, r, ptLimit, ftLimit, rtLimit int) ([]byte, error) {
	if packetSizeBits <= 0 || packetSizeBits%8 != 0 || packetSizeBits > maxPacketSizeBits {
		return nil, &pocketerr.InvalidPacketSizeError{Size: packetSizeBits}
	}
	if r < 0 || r > 7 {
		return nil, &pocketerr.InvalidRobustnessError{R: r}
	}
	packetBytes := packetSizeBits / 8
	if len(data) == 0 {
		return []byte{}, nil
	}
	if len(data)%packetBytes != 0 {
		return nil, &pocketerr.InvalidInputLengthError{Expected: packetBytes, Actual: len(data) % packetBytes}
	}

	enc, err := engine.NewEncoder(packetSizeBits, r, ptLimit, ftLimit, rtLimit)
	if err != nil {
		return nil, err
	}
	for offset := 0; offset < len(data); offset += packetBytes {
		if err := enc.Step(data[offset : offset+packetBytes]); err != nil {
			return nil, err
		}
	}
	return enc.Finish(), nil
}

// Decompress is the inverse of Compress: packetSizeBits and r must
// match the values the stream was compressed with. An empty input is
// an error, since a POCKET+ stream carries no length prefix the
// decoder could use to distinguish "zero packets" from "truncated".
func Decompress(data []byte, packetSizeBits, r int) ([]byte, error) {
	if packetSizeBits <= 0 || packetSizeBits%8 != 0 || packetSizeBits > maxPacketSizeBits {
		return nil, &pocketerr.InvalidPacketSizeError{Size: packetSizeBits}
	}
	if r < 0 || r > 7 {
		return nil, &pocketerr.InvalidRobustnessError{R: r}
	}
	if len(data) == 0 {
		return nil, pocketerr.ErrUnexpectedEndOfInput
	}

	dec, err := engine.NewDecoder(packetSizeBits, r)
	if err != nil {
		return nil, err
	}
	reader := bitio.NewSource(data, len(data)*8)

	var out []byte
	for reader.HasBits() {
		packet, err := dec.Step(reader)
		if err != nil {
			return nil, err
		}
		out = append(out, packet...)
	}
	return out, nil
}
