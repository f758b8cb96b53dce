// Package domain defines the core types shared by the compressor registry,
// its codecs and the configuration layer.
package domain

import "strconv"

// CompressorID is the single byte that precedes a compressed payload on the
// wire. The values are part of the protocol and never change between versions.
type CompressorID uint8

const (
	// CompressorNoop marks an uncompressed payload. It is not a valid id for
	// decompression.
	CompressorNoop CompressorID = 0

	// CompressorSnappy identifies snappy block compression.
	CompressorSnappy CompressorID = 1

	// CompressorZlib identifies zlib (RFC 1950) compression.
	CompressorZlib CompressorID = 2
)

// CompressorName is the configuration token naming a compressor.
type CompressorName string

const (
	Snappy CompressorName = "snappy"
	Zlib   CompressorName = "zlib"
)

// SupportedCompressors lists the names accepted in configuration, in the
// order the protocol assigned their ids.
var SupportedCompressors = []CompressorName{Snappy, Zlib}

// ID returns the wire id for the name, or CompressorNoop if the name is not
// one of the supported compressors.
func (n CompressorName) ID() CompressorID {
	switch n {
	case Snappy:
		return CompressorSnappy
	case Zlib:
		return CompressorZlib
	default:
		return CompressorNoop
	}
}

// IsSupported reports whether the name belongs to the fixed protocol set.
func (n CompressorName) IsSupported() bool {
	return n.ID() != CompressorNoop
}

// Name returns the configuration token for the id, or "" for ids that have none.
func (id CompressorID) Name() CompressorName {
	switch id {
	case CompressorSnappy:
		return Snappy
	case CompressorZlib:
		return Zlib
	default:
		return ""
	}
}

func (id CompressorID) String() string {
	switch id {
	case CompressorNoop:
		return "noop"
	case CompressorSnappy, CompressorZlib:
		return string(id.Name())
	default:
		return "unknown(" + strconv.Itoa(int(id)) + ")"
	}
}

// Capabilities records which compression libraries are linked into the
// running binary. It is computed once at startup and only read afterwards.
type Capabilities struct {
	Snappy bool
	Zlib   bool
}

// Has reports whether the named compressor's library is available.
// Unsupported names are never available.
func (c Capabilities) Has(name CompressorName) bool {
	switch name {
	case Snappy:
		return c.Snappy
	case Zlib:
		return c.Zlib
	default:
		return false
	}
}
