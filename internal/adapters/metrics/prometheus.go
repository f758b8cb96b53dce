// Package metrics exposes compressor activity as Prometheus counters.
package metrics

import (
	"fmt"

	"github.com/iamNilotpal/wirecompress/internal/core/domain"
	"github.com/iamNilotpal/wirecompress/internal/core/ports"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wirecompress"

const (
	opCompress   = "compress"
	opDecompress = "decompress"

	resultOK    = "ok"
	resultError = "error"
)

// Collector implements ports.MetricsPort on top of Prometheus counter vectors.
type Collector struct {
	operations *prometheus.CounterVec
	bytesIn    *prometheus.CounterVec
	bytesOut   *prometheus.CounterVec
}

var _ ports.MetricsPort = (*Collector)(nil)

// NewCollector creates the counters and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Compress and decompress calls by compressor and result.",
		}, []string{"op", "compressor", "result"}),
		bytesIn: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_in_total",
			Help:      "Bytes handed to the compressor.",
		}, []string{"op", "compressor"}),
		bytesOut: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_out_total",
			Help:      "Bytes produced by successful calls.",
		}, []string{"op", "compressor"}),
	}

	for _, col := range []prometheus.Collector{c.operations, c.bytesIn, c.bytesOut} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("error registering compressor metrics: %w", err)
		}
	}

	return c, nil
}

func (c *Collector) ObserveCompress(id domain.CompressorID, in, out int, err error) {
	c.observe(opCompress, id, in, out, err)
}

func (c *Collector) ObserveDecompress(id domain.CompressorID, in, out int, err error) {
	c.observe(opDecompress, id, in, out, err)
}

func (c *Collector) observe(op string, id domain.CompressorID, in, out int, err error) {
	compressor := id.String()

	result := resultOK
	if err != nil {
		result = resultError
	}

	c.operations.WithLabelValues(op, compressor, result).Inc()
	c.bytesIn.WithLabelValues(op, compressor).Add(float64(in))
	if err == nil {
		c.bytesOut.WithLabelValues(op, compressor).Add(float64(out))
	}
}
