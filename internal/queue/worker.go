// Package queue runs the roadmap pipeline behind a RabbitMQ request/reply queue.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-roadmap/internal/config"
	"github.com/jonathan/career-roadmap/internal/export"
	"github.com/jonathan/career-roadmap/internal/pipeline"
	"github.com/jonathan/career-roadmap/internal/types"
)

// Generator runs the roadmap pipeline.
type Generator interface {
	Generate(ctx context.Context, req types.GenerateRequest, onProgress pipeline.ProgressCallback) (*types.Output, error)
}

// Exporter persists pipeline output.
type Exporter interface {
	Export(ctx context.Context, out *types.Output) (*export.Result, error)
}

// Publisher sends reply messages. *amqp.Channel implements it.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// ErrorReply is published when a request cannot be served.
type ErrorReply struct {
	Error string `json:"error"`
}

// Worker consumes GenerateRequest messages and replies with the output.
type Worker struct {
	generator Generator
	exporter  Exporter
	queue     string
	prefetch  int
	log       zerolog.Logger
}

// Option configures a Worker
type Option func(*Worker)

// WithExporter exports every output before replying and includes image links.
func WithExporter(e Exporter) Option {
	return func(w *Worker) {
		w.exporter = e
	}
}

// WithLogger sets the worker logger
func WithLogger(log zerolog.Logger) Option {
	return func(w *Worker) {
		w.log = log
	}
}

// NewWorker creates a worker for cfg.RequestQueue.
func NewWorker(cfg config.QueueConfig, gen Generator, opts ...Option) *Worker {
	w := &Worker{
		generator: gen,
		queue:     cfg.RequestQueue,
		prefetch:  max(cfg.Prefetch, 1),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dial connects to the broker.
func Dial(url string) (*amqp.Connection, error) {
	if url == "" {
		return nil, fmt.Errorf("RabbitMQ URL is empty")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	return conn, nil
}

// Run declares the durable request queue and serves deliveries until ctx is
// cancelled or the channel closes. Up to prefetch requests run at once.
func (w *Worker) Run(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(w.prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set prefetch: %w", err)
	}
	if _, err := ch.QueueDeclare(
		w.queue, // name
		true,    // durable
		false,   // auto-delete
		false,   // exclusive
		false,   // no-wait
		nil,     // arguments
	); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", w.queue, err)
	}

	deliveries, err := ch.ConsumeWithContext(ctx,
		w.queue, // queue
		"",      // consumer tag
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", w.queue, err)
	}

	w.log.Info().Str("queue", w.queue).Int("prefetch", w.prefetch).Msg("worker consuming")
	return w.serve(ctx, deliveries, ch)
}

// serve handles deliveries until ctx ends or the delivery channel closes.
func (w *Worker) serve(ctx context.Context, deliveries <-chan amqp.Delivery, pub Publisher) error {
	g := new(errgroup.Group)
	g.SetLimit(w.prefetch)
	defer func() { _ = g.Wait() }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("delivery channel closed")
			}
			g.Go(func() error {
				w.handle(ctx, d, pub)
				return nil
			})
		}
	}
}

// handle serves one delivery. Undecodable bodies are rejected without
// requeue; requests interrupted by shutdown are requeued unanswered; every
// other request is acked after its reply is published.
func (w *Worker) handle(ctx context.Context, d amqp.Delivery, pub Publisher) {
	log := w.log.With().Str("correlation_id", d.CorrelationId).Logger()

	var req types.GenerateRequest
	if err := json.Unmarshal(d.Body, &req); err != nil {
		log.Warn().Err(err).Msg("rejecting undecodable request")
		if rerr := d.Reject(false); rerr != nil {
			log.Error().Err(rerr).Msg("failed to reject delivery")
		}
		return
	}

	var reply any
	if err := req.Validate(); err != nil {
		reply = ErrorReply{Error: "validation error: " + err.Error()}
	} else if resp, err := w.generate(ctx, req); err != nil {
		if ctx.Err() != nil {
			log.Warn().Err(err).Msg("shutting down, requeueing request")
			if nerr := d.Nack(false, true); nerr != nil {
				log.Error().Err(nerr).Msg("failed to requeue delivery")
			}
			return
		}
		log.Error().Err(err).Msg("generate failed")
		reply = ErrorReply{Error: err.Error()}
	} else {
		reply = resp
	}

	if err := w.reply(ctx, d, pub, reply); err != nil {
		log.Error().Err(err).Msg("failed to publish reply")
	}
	if err := d.Ack(false); err != nil {
		log.Error().Err(err).Msg("failed to ack delivery")
	}
}

func (w *Worker) generate(ctx context.Context, req types.GenerateRequest) (*types.GenerateResponse, error) {
	out, err := w.generator.Generate(ctx, req, nil)
	if err != nil {
		return nil, err
	}
	resp := &types.GenerateResponse{Output: *out, Images: []string{}}
	if w.exporter == nil {
		return resp, nil
	}
	res, err := w.exporter.Export(ctx, out)
	if err != nil {
		w.log.Warn().Err(err).Msg("export failed, replying without all artifacts")
	}
	if res != nil && res.Images != nil {
		resp.Images = res.Images
	}
	return resp, nil
}

func (w *Worker) reply(ctx context.Context, d amqp.Delivery, pub Publisher, payload any) error {
	if d.ReplyTo == "" {
		w.log.Debug().Str("correlation_id", d.CorrelationId).Msg("no reply_to, dropping reply")
		return nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal reply: %w", err)
	}
	return pub.PublishWithContext(ctx,
		"",        // default exchange
		d.ReplyTo, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: d.CorrelationId,
			Body:          body,
		})
}
