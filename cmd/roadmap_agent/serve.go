package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-roadmap/internal/logger"
	"github.com/jonathan/career-roadmap/internal/server"
	"github.com/jonathan/career-roadmap/internal/server/ratelimit"
)

var (
	servePort int
	serveWarm bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes /generate, /generate/stream, /download and /upload_onet, and serves rendered diagrams.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	serveCmd.Flags().BoolVar(&serveWarm, "warm", false, "Load or build the semantic index before accepting requests")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if serveWarm {
		if err := a.index.Warm(ctx); err != nil {
			logger.Warn().Err(err).Msg("semantic index unavailable, resolution falls back to fuzzy matching")
		}
	}

	srv := server.New(server.Config{
		Port:           cfg.Server.Port,
		DataDir:        cfg.DataDir,
		StaticDir:      a.exporter.StaticDir(),
		StaticURL:      cfg.Export.StaticURL,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		RateLimit:      ratelimit.FromConfig(cfg.Server.RateLimit),
		Logger:         logger.Component("server"),
	}, a.pipeline, a.exporter)

	return srv.Start()
}
