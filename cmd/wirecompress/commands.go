package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/iamNilotpal/wirecompress/internal/core/domain"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate compressor options and print the accepted settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0, len(a.settings.Compressors()))
			for _, name := range a.settings.Compressors() {
				names = append(names, string(name))
			}

			a.printf(cmd, "compressors: %s\n", strings.Join(names, ","))
			a.printf(cmd, "zlibCompressionLevel: %d\n", a.settings.ZlibLevel())
			a.printf(cmd, "snappy available: %t\n", a.reg.Capabilities().Snappy)
			a.printf(cmd, "zlib available: %t\n", a.reg.Capabilities().Zlib)
			return nil
		},
	}
}

func newCompressCmd(a *app) *cobra.Command {
	var (
		serverCompressors string
		command           string
	)

	cmd := &cobra.Command{
		Use:   "compress",
		Short: "Compress stdin into a [compressor id][payload] frame",
		Long: "Negotiates a compressor between the configured list and --server-compressors, " +
			"then writes the compressor id byte followed by the compressed payload. " +
			"Id 0 followed by the raw input is written when nothing was negotiated " +
			"or the command carries credentials.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}

			var advertised []string
			if serverCompressors != "" {
				advertised = strings.Split(serverCompressors, ",")
			}
			peer := a.settings.Negotiate(advertised)

			ctx, ok := a.reg.ContextForCommand(a.settings, peer, command)
			if !ok {
				a.log.Infow("sending uncompressed", "command", command, "size", len(data))
				return writeFrame(cmd.OutOrStdout(), domain.CompressorNoop, data)
			}

			compressed, err := a.reg.Compress(ctx, data)
			if err != nil {
				return err
			}

			a.log.Infow(
				"compressed",
				"compressor", ctx.CompressorID().String(),
				"level", ctx.Level(),
				"in", len(data),
				"out", len(compressed),
			)
			return writeFrame(cmd.OutOrStdout(), ctx.CompressorID(), compressed)
		},
	}

	cmd.Flags().StringVar(&serverCompressors, "server-compressors", "snappy,zlib", "compressors advertised by the server")
	cmd.Flags().StringVar(&command, "command", "", "name of the command being sent")
	return cmd
}

func newDecompressCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decompress",
		Short: "Decode a [compressor id][payload] frame from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}
			if len(frame) == 0 {
				return fmt.Errorf("empty input: missing compressor id byte")
			}

			id, payload := domain.CompressorID(frame[0]), frame[1:]
			if id == domain.CompressorNoop {
				_, err := cmd.OutOrStdout().Write(payload)
				return err
			}

			out, err := a.reg.Decompress(payload, id)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newSensitiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sensitive <command>",
		Short: "Report whether a command must always be sent uncompressed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printf(cmd, "%t\n", domain.IsSensitiveCommand(args[0]))
			return nil
		},
	}
}

func writeFrame(w io.Writer, id domain.CompressorID, payload []byte) error {
	if _, err := w.Write([]byte{byte(id)}); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}
