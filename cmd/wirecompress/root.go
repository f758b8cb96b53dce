package main

import (
	"fmt"

	"github.com/iamNilotpal/wirecompress/config"
	"github.com/iamNilotpal/wirecompress/internal/adapters/metrics"
	"github.com/iamNilotpal/wirecompress/internal/core/domain"
	"github.com/iamNilotpal/wirecompress/internal/core/services/registry"
	"github.com/iamNilotpal/wirecompress/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const serviceName = "wirecompress"

// app carries the state shared by every subcommand. It is filled in by the
// root command's PersistentPreRunE and torn down by execute.
type app struct {
	configPath  string
	uri         string
	compressors string
	zlibLevel   string
	logLevel    string
	metrics     bool

	cfg      *config.Config
	settings *domain.CompressionSettings
	log      *zap.SugaredLogger
	reg      *registry.Registry
	promReg  *prometheus.Registry
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Validate compressor options and compress wire messages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&a.uri, "uri", "", "connection string carrying compressors and zlibCompressionLevel options")
	flags.StringVar(&a.compressors, "compressors", "", "comma separated compressor list, e.g. snappy,zlib")
	flags.StringVar(&a.zlibLevel, "zlib-level", "-1", "zlib compression level between -1 and 9")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&a.metrics, "metrics", false, "collect compressor metrics and log them on exit")

	root.AddCommand(
		newValidateCmd(a),
		newCompressCmd(a),
		newDecompressCmd(a),
		newSensitiveCmd(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if cmd.Flags().Changed("log-level") {
		level = a.logLevel
	}

	log, err := logger.New(serviceName, level)
	if err != nil {
		return err
	}
	a.log = log

	opts := []registry.Option{registry.WithLogger(log)}
	if a.metrics || cfg.EnableMetrics {
		a.promReg = prometheus.NewRegistry()
		collector, err := metrics.NewCollector(a.promReg)
		if err != nil {
			return err
		}
		opts = append(opts, registry.WithMetrics(collector))
	}
	a.reg = registry.New(opts...)

	settings, err := cfg.Settings(a.reg)
	if err != nil {
		return err
	}
	a.settings = settings

	return nil
}

// loadConfig picks the config source: a YAML file, then a connection string,
// then the individual flags.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	switch {
	case a.configPath != "":
		cfg, err = config.LoadConfig(a.configPath)
	case a.uri != "":
		cfg, err = config.ParseURI(a.uri)
	default:
		cfg = config.DefaultConfig()
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("compressors") {
		cfg.Compressors = a.compressors
	}
	if cmd.Flags().Changed("zlib-level") {
		cfg.ZlibCompressionLevel = a.zlibLevel
	}

	return cfg, nil
}

func (a *app) teardown() {
	if a.log == nil {
		return
	}

	if a.promReg != nil {
		a.logMetrics()
	}

	_ = a.log.Sync()
}

func (a *app) logMetrics() {
	families, err := a.promReg.Gather()
	if err != nil {
		a.log.Warnw("error gathering metrics", "error", err)
		return
	}

	for _, family := range families {
		for _, m := range family.GetMetric() {
			labels := make(map[string]string, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			a.log.Infow("metric", "name", family.GetName(), "labels", labels, "value", m.GetCounter().GetValue())
		}
	}
}

func (a *app) printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
