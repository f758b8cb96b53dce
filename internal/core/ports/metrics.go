package ports

import "github.com/iamNilotpal/wirecompress/internal/core/domain"

// MetricsPort receives one observation per compress or decompress call.
// in and out are payload sizes in bytes; err is the call's result.
type MetricsPort interface {
	ObserveCompress(id domain.CompressorID, in, out int, err error)
	ObserveDecompress(id domain.CompressorID, in, out int, err error)
}
