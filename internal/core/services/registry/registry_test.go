//go:build !nosnappy && !nozlib

package registry

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"math"
	"math/rand"
	"testing"

	"github.com/iamNilotpal/wirecompress/internal/core/domain"
	"github.com/iamNilotpal/wirecompress/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type observation struct {
	op      string
	id      domain.CompressorID
	in, out int
	err     error
}

type recordingMetrics struct {
	calls []observation
}

func (m *recordingMetrics) ObserveCompress(id domain.CompressorID, in, out int, err error) {
	m.calls = append(m.calls, observation{"compress", id, in, out, err})
}

func (m *recordingMetrics) ObserveDecompress(id domain.CompressorID, in, out int, err error) {
	m.calls = append(m.calls, observation{"decompress", id, in, out, err})
}

func newObservedRegistry(t *testing.T, opts ...Option) (*Registry, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	opts = append([]Option{WithLogger(zap.New(core).Sugar())}, opts...)
	return New(opts...), logs
}

func randomBytes(n int) []byte {
	buf := make([]byte, n)
	rand.New(rand.NewSource(7)).Read(buf)
	return buf
}

func TestValidateCompressors_PreservesOrder(t *testing.T) {
	r, logs := newObservedRegistry(t)

	got, err := r.ValidateCompressors("snappy,zlib")
	require.NoError(t, err)
	assert.Equal(t, []domain.CompressorName{domain.Snappy, domain.Zlib}, got)

	got, err = r.ValidateCompressors("zlib,snappy,zlib")
	require.NoError(t, err)
	assert.Equal(t, []domain.CompressorName{domain.Zlib, domain.Snappy, domain.Zlib}, got)

	assert.Zero(t, logs.FilterMessage("unknown compressor, ignoring").Len())
}

func TestValidateCompressors_DropsUnknownWithWarning(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []domain.CompressorName
		dropped []string
	}{
		{
			name:    "only unknown",
			raw:     "bogus",
			want:    []domain.CompressorName{},
			dropped: []string{"bogus"},
		},
		{
			name:    "unknown between known",
			raw:     "snappy,zstd,zlib",
			want:    []domain.CompressorName{domain.Snappy, domain.Zlib},
			dropped: []string{"zstd"},
		},
		{
			name:    "tokens are not trimmed",
			raw:     "snappy, zlib",
			want:    []domain.CompressorName{domain.Snappy},
			dropped: []string{" zlib"},
		},
		{
			name:    "tokens are case sensitive",
			raw:     "Snappy,zlib",
			want:    []domain.CompressorName{domain.Zlib},
			dropped: []string{"Snappy"},
		},
		{
			name:    "empty token",
			raw:     "snappy,,zlib",
			want:    []domain.CompressorName{domain.Snappy, domain.Zlib},
			dropped: []string{""},
		},
		{
			name:    "empty string",
			raw:     "",
			want:    []domain.CompressorName{},
			dropped: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, logs := newObservedRegistry(t)

			got, err := r.ValidateCompressors(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, domain.CompressorName("bogus"))

			warnings := logs.FilterMessage("unknown compressor, ignoring").AllUntimed()
			require.Len(t, warnings, len(tt.dropped))
			for i, entry := range warnings {
				assert.Equal(t, zap.WarnLevel, entry.Level)
				assert.Equal(t, tt.dropped[i], entry.ContextMap()["compressor"])
			}
		})
	}
}

func TestValidateCompressors_MissingDependency(t *testing.T) {
	tests := []struct {
		name string
		caps domain.Capabilities
		raw  string
	}{
		{name: "snappy unavailable", caps: domain.Capabilities{Zlib: true}, raw: "zlib,snappy"},
		{name: "zlib unavailable", caps: domain.Capabilities{Snappy: true}, raw: "snappy,zlib"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(WithCapabilities(tt.caps))

			got, err := r.ValidateCompressors(tt.raw)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, errors.ErrMissingDependency)

			ve := errors.AsValidationError(err)
			require.NotNil(t, ve)
			assert.Equal(t, FieldCompressors, ve.Field)
		})
	}

	// Unknown tokens are dropped before availability is considered.
	r := New(WithCapabilities(domain.Capabilities{}))
	got, err := r.ValidateCompressors("bogus")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestValidateZlibLevel_AcceptsRange(t *testing.T) {
	r := New()

	for level := -1; level <= 9; level++ {
		got, err := r.ValidateZlibLevel(level)
		require.NoError(t, err)
		assert.Equal(t, level, got)
	}

	accepted := []struct {
		raw  any
		want int
	}{
		{int8(3), 3},
		{int16(-1), -1},
		{int32(9), 9},
		{int64(0), 0},
		{uint(4), 4},
		{uint8(5), 5},
		{uint64(9), 9},
		{float64(6), 6},
		{float32(2.9), 2},
		{-1.5, -1},
		{"7", 7},
		{" -1 ", -1},
		{"+3", 3},
		{json.Number("8"), 8},
	}

	for _, tt := range accepted {
		got, err := r.ValidateZlibLevel(tt.raw)
		require.NoError(t, err, "%#v", tt.raw)
		assert.Equal(t, tt.want, got, "%#v", tt.raw)
	}
}

func TestValidateZlibLevel_OutOfRange(t *testing.T) {
	r := New()

	for _, raw := range []any{
		-2, 10, 100, math.MinInt64, math.MaxInt64,
		uint64(math.MaxUint64), uint32(10), "10", "-2", 10.0, -2.5, 1e300, json.Number("12"),
	} {
		_, err := r.ValidateZlibLevel(raw)
		assert.ErrorIs(t, err, errors.ErrOutOfRange, "%#v", raw)
		assert.NotErrorIs(t, err, errors.ErrTypeMismatch, "%#v", raw)

		ve := errors.AsValidationError(err)
		require.NotNil(t, ve)
		assert.Equal(t, FieldZlibLevel, ve.Field)
		assert.Equal(t, raw, ve.Value)
	}
}

func TestValidateZlibLevel_TypeMismatch(t *testing.T) {
	r := New()

	for _, raw := range []any{
		nil, true, false, "", "six", "6.5", "0x5", json.Number("1.5"),
		math.NaN(), math.Inf(1), []int{1}, struct{}{}, map[string]int{"level": 1},
	} {
		_, err := r.ValidateZlibLevel(raw)
		assert.ErrorIs(t, err, errors.ErrTypeMismatch, "%#v", raw)
		assert.True(t, errors.IsValidationError(err))
	}
}

func TestNewSettings(t *testing.T) {
	r := New()

	s, err := r.NewSettings("zlib,snappy", "4")
	require.NoError(t, err)
	assert.Equal(t, []domain.CompressorName{domain.Zlib, domain.Snappy}, s.Compressors())
	assert.Equal(t, 4, s.ZlibLevel())

	_, err = r.NewSettings("zlib", 11)
	assert.ErrorIs(t, err, errors.ErrOutOfRange)

	_, err = New(WithCapabilities(domain.Capabilities{})).NewSettings("zlib", -1)
	assert.ErrorIs(t, err, errors.ErrMissingDependency)
}

func TestSelectContext(t *testing.T) {
	r := New()
	settings := domain.NewCompressionSettings([]domain.CompressorName{domain.Snappy, domain.Zlib}, 7)

	ctx, ok := r.SelectContext(settings, []domain.CompressorName{domain.Snappy, domain.Zlib})
	require.True(t, ok)
	assert.Equal(t, domain.CompressorSnappy, ctx.CompressorID())
	assert.Equal(t, 0, ctx.Level())

	ctx, ok = r.SelectContext(settings, []domain.CompressorName{domain.Zlib})
	require.True(t, ok)
	assert.Equal(t, domain.CompressorZlib, ctx.CompressorID())
	assert.Equal(t, 7, ctx.Level())

	ctx, ok = r.SelectContext(settings, nil)
	assert.False(t, ok)
	assert.Nil(t, ctx)
}

func TestSelectContext_NoCompressorsConfigured(t *testing.T) {
	r := New()
	settings := domain.NewCompressionSettings(nil, domain.ZlibDefaultLevel)

	for _, peer := range [][]domain.CompressorName{
		nil,
		{},
		{domain.Snappy},
		{domain.Zlib, domain.Snappy},
	} {
		ctx, ok := r.SelectContext(settings, peer)
		assert.False(t, ok)
		assert.Nil(t, ctx)
	}

	ctx, ok := r.SelectContext(nil, []domain.CompressorName{domain.Snappy})
	assert.False(t, ok)
	assert.Nil(t, ctx)
}

func TestSelectContext_SkipsUnconfiguredAndUnavailable(t *testing.T) {
	settings := domain.NewCompressionSettings([]domain.CompressorName{domain.Zlib, domain.Snappy}, 1)

	ctx, ok := New().SelectContext(settings, []domain.CompressorName{"zstd", domain.Snappy})
	require.True(t, ok)
	assert.Equal(t, domain.CompressorSnappy, ctx.CompressorID())

	onlyZlib := New(WithCapabilities(domain.Capabilities{Zlib: true}))
	ctx, ok = onlyZlib.SelectContext(settings, []domain.CompressorName{domain.Snappy, domain.Zlib})
	require.True(t, ok)
	assert.Equal(t, domain.CompressorZlib, ctx.CompressorID())

	onlySnappySettings := domain.NewCompressionSettings([]domain.CompressorName{domain.Snappy}, 1)
	_, ok = New().SelectContext(onlySnappySettings, []domain.CompressorName{domain.Zlib})
	assert.False(t, ok)
}

func TestContextForCommand(t *testing.T) {
	r, logs := newObservedRegistry(t)
	settings := domain.NewCompressionSettings([]domain.CompressorName{domain.Zlib}, -1)
	peer := settings.Negotiate([]string{"snappy", "zlib"})

	for _, cmd := range []string{"authenticate", "AUTHENTICATE", "saslStart", "isMaster"} {
		ctx, ok := r.ContextForCommand(settings, peer, cmd)
		assert.False(t, ok, cmd)
		assert.Nil(t, ctx, cmd)
	}
	assert.Equal(t, 4, logs.FilterMessage("sensitive command, sending uncompressed").Len())

	ctx, ok := r.ContextForCommand(settings, peer, "find")
	require.True(t, ok)
	assert.Equal(t, domain.CompressorZlib, ctx.CompressorID())
}

func TestCompressDecompress_RoundTrip(t *testing.T) {
	r := New()
	inputs := map[string][]byte{
		"empty":        {},
		"one byte":     {0x7f},
		"random 64KiB": randomBytes(65536),
		"repetitive":   bytes.Repeat([]byte("wire message "), 4096),
	}

	for _, name := range []domain.CompressorName{domain.Snappy, domain.Zlib} {
		for _, level := range []int{-1, 0, 9} {
			settings := domain.NewCompressionSettings([]domain.CompressorName{name}, level)
			ctx, ok := r.SelectContext(settings, []domain.CompressorName{name})
			require.True(t, ok)

			for label, data := range inputs {
				compressed, err := r.Compress(ctx, data)
				require.NoError(t, err, "%s/%s", name, label)

				out, err := r.Decompress(compressed, ctx.CompressorID())
				require.NoError(t, err, "%s/%s", name, label)
				assert.True(t, bytes.Equal(data, out), "%s/%s", name, label)
			}
		}
	}
}

func TestDecompress_UnknownCompressorID(t *testing.T) {
	r := New()

	for _, id := range []domain.CompressorID{0, 3, 99, 255} {
		for _, data := range [][]byte{nil, {}, []byte("anything"), randomBytes(128)} {
			out, err := r.Decompress(data, id)
			assert.Nil(t, out)
			assert.ErrorIs(t, err, errors.ErrUnknownCompressorID)

			ce := errors.AsCompressionError(err)
			require.NotNil(t, ce)
			assert.Equal(t, uint8(id), ce.Value)
		}
	}
}

func TestDecompress_CorruptPayload(t *testing.T) {
	r := New()

	_, err := r.Decompress([]byte{0x0a, 0x00}, domain.CompressorSnappy)
	assert.ErrorIs(t, err, errors.ErrCompressionFailed)

	_, err = r.Decompress([]byte("definitely not zlib"), domain.CompressorZlib)
	assert.ErrorIs(t, err, errors.ErrCompressionFailed)
}

func TestDecompress_MissingDependency(t *testing.T) {
	r := New(WithCapabilities(domain.Capabilities{Zlib: true}))

	_, err := r.Decompress([]byte{0x00}, domain.CompressorSnappy)
	assert.ErrorIs(t, err, errors.ErrMissingDependency)
}

func TestDecompress_SizeLimit(t *testing.T) {
	payload := bytes.Repeat([]byte("a"), 4096)
	r := New(WithMaxDecompressedSize(1024))

	for _, name := range []domain.CompressorName{domain.Snappy, domain.Zlib} {
		settings := domain.NewCompressionSettings([]domain.CompressorName{name}, -1)
		ctx, ok := r.SelectContext(settings, []domain.CompressorName{name})
		require.True(t, ok)

		compressed, err := r.Compress(ctx, payload)
		require.NoError(t, err)

		out, err := r.Decompress(compressed, name.ID())
		assert.Nil(t, out, string(name))
		assert.ErrorIs(t, err, errors.ErrCompressionFailed, string(name))
		assert.ErrorIs(t, err, errors.ErrOutOfRange, string(name))

		out, err = New().Decompress(compressed, name.ID())
		require.NoError(t, err, string(name))
		assert.Equal(t, payload, out)
	}
}

type failingCodec struct{}

func (failingCodec) ID() domain.CompressorID           { return domain.CompressorZlib }
func (failingCodec) Compress([]byte) ([]byte, error)   { return nil, stderrors.New("boom") }
func (failingCodec) Decompress([]byte) ([]byte, error) { return nil, stderrors.New("boom") }
func (failingCodec) Level() int                        { return 6 }

func TestCompress_LibraryFailure(t *testing.T) {
	m := &recordingMetrics{}
	r := New(WithMetrics(m))
	ctx := &Context{codec: failingCodec{}, metrics: m}

	out, err := r.Compress(ctx, []byte("payload"))
	assert.Nil(t, out)
	assert.ErrorIs(t, err, errors.ErrCompressionFailed)
	require.Len(t, m.calls, 1)
	assert.Error(t, m.calls[0].err)
}

func TestCompress_NilContext(t *testing.T) {
	_, err := New().Compress(nil, []byte("payload"))
	assert.ErrorIs(t, err, errors.ErrCompressionFailed)
}

func TestMetricsObserveCalls(t *testing.T) {
	m := &recordingMetrics{}
	r := New(WithMetrics(m))

	settings := domain.NewCompressionSettings([]domain.CompressorName{domain.Snappy}, -1)
	ctx, ok := r.SelectContext(settings, []domain.CompressorName{domain.Snappy})
	require.True(t, ok)

	data := bytes.Repeat([]byte("x"), 1000)
	compressed, err := ctx.Compress(data)
	require.NoError(t, err)

	_, err = r.Decompress(compressed, domain.CompressorSnappy)
	require.NoError(t, err)

	_, err = r.Decompress(compressed, 42)
	require.Error(t, err)

	require.Len(t, m.calls, 3)
	assert.Equal(t, observation{"compress", domain.CompressorSnappy, 1000, len(compressed), nil}, m.calls[0])
	assert.Equal(t, observation{"decompress", domain.CompressorSnappy, len(compressed), 1000, nil}, m.calls[1])
	assert.Equal(t, "decompress", m.calls[2].op)
	assert.Equal(t, domain.CompressorID(42), m.calls[2].id)
	assert.ErrorIs(t, m.calls[2].err, errors.ErrUnknownCompressorID)
}
