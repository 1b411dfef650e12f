// Command seq-input-syslog receives SYSLOG datagrams over UDP and writes
// one CLEF JSON document per datagram to stdout.
//
// Logging:
//   - One *zap.Logger is built here, in its production JSON
//     configuration, writing to stderr.
//   - The logger is passed into the ingestion loop by constructor
//     parameter; there is no global logger.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/datalust/seq-input-syslog/internal/clef"
	"github.com/datalust/seq-input-syslog/internal/config"
	"github.com/datalust/seq-input-syslog/internal/decode"
	"github.com/datalust/seq-input-syslog/internal/ingest"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		listenAddr      string
		bufferSize      int
		diagnosticLevel string
		printVersion    bool
	)

	cmd := &cobra.Command{
		Use:           "seq-input-syslog",
		Short:         "Bridge SYSLOG datagrams into CLEF JSON on stdout",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if printVersion {
				fmt.Println(version)
				return nil
			}

			logger, err := newLogger(diagnosticLevel)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck // best-effort flush on exit

			addr, err := config.ParseListenAddr(listenAddr)
			if err != nil {
				logger.Error("invalid listen address", zap.Error(err))
				return err
			}

			cfg := config.Config{
				ListenAddr:      addr,
				BufferSize:      bufferSize,
				DiagnosticLevel: diagnosticLevel,
			}

			if err := run(context.Background(), cfg, logger); err != nil {
				logger.Error("startup failure", zap.Error(err))
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&listenAddr, "listen", "l", config.DefaultListen, "bind address, optionally prefixed with udp://")
	flags.IntVar(&bufferSize, "buffer-size", config.DefaultBufferSize, "per-read UDP buffer size in bytes")
	flags.StringVar(&diagnosticLevel, "diagnostic-level", config.DefaultDiagnosticLevel, "minimum diagnostic level: debug, info, warn, error")
	flags.BoolVar(&printVersion, "version", false, "print build version and exit")

	return cmd
}

// run wires the decoder, the CLEF encoder and the ingestion loop together
// and blocks until a signal or a startup failure ends it.
func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	writer := clef.NewWriter(os.Stdout)

	transcode := func(datagram []byte, now time.Time) error {
		msg := decode.Message(datagram, now)
		doc := clef.Project(msg)
		return writer.WriteDocument(doc)
	}

	loop := ingest.New(cfg.ListenAddr, cfg.BufferSize, transcode, logger)

	logger.Info("starting seq-input-syslog",
		zap.String("listen", cfg.ListenAddr),
		zap.Int("buffer_size", cfg.BufferSize),
		zap.String("version", version),
	)

	return loop.Run(ctx)
}

func newLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.Set(level); err != nil {
		return nil, fmt.Errorf("diagnostic level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}
