package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-roadmap/internal/logger"
	"github.com/jonathan/career-roadmap/internal/queue"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume generate requests from RabbitMQ",
	Long:  `Reads GenerateRequest messages from queue.request_queue and replies to each message's reply_to queue with the generated roadmaps.`,
	RunE:  runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Queue.URL == "" {
		return fmt.Errorf("queue.url or RABBITMQ_URL is required")
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	conn, err := queue.Dial(cfg.Queue.URL)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	w := queue.NewWorker(cfg.Queue, a.pipeline,
		queue.WithExporter(a.exporter),
		queue.WithLogger(logger.Component("queue")),
	)
	return w.Run(ctx, conn)
}
