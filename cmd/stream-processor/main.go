// Command stream-processor decodes taxi events from Kafka, publishes them to
// real-time subscribers and stores them for historical queries.
//
// By default it joins the configured consumer group and runs until
// interrupted. With -event it processes one saved MSK event payload, prints
// the batch result as JSON and exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/awsclient"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/config"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/decoder"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/jsoncodec"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/logger"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/metrics"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/pipeline"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/processor"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/publisher"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/resolver"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/schema_registry"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/schemacache"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/source"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/store"
	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/tracer"
)

const replayTimeout = 5 * time.Minute

func main() {
	eventFile := flag.String("event", "", "process a saved MSK event JSON file once and exit (- reads stdin)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stream-processor: %v\n", err)
		os.Exit(1)
	}
	if *eventFile != "" {
		cfg.Source.EventFile = *eventFile
	}

	if cfg.Source.EventFile != "" {
		os.Exit(replay(cfg, os.Stdout))
	}
	fx.New(append(options(cfg), source.ConsumerModule)...).Run()
}

// options composes every component shared by both modes.
func options(cfg config.Config) []fx.Option {
	return []fx.Option{
		config.FXModule(cfg),
		logger.FXModule,
		fx.WithLogger(func(log *logger.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Zap}
		}),
		tracer.FXModule,
		metrics.FXModule,
		awsclient.FXModule,
		schema_registry.FXModule,
		schemacache.FXModule,
		decoder.FXModule,
		resolver.FXModule,
		pipeline.FXModule,
		publisher.FXModule,
		store.FXModule,
		processor.FXModule,
	}
}

type response struct {
	StatusCode int              `json:"statusCode"`
	Body       processor.Result `json:"body"`
}

// replay processes the MSK event in cfg.Source.EventFile once and writes the
// handler-style response to out.
func replay(cfg config.Config, out io.Writer) int {
	body, err := readEvent(cfg.Source.EventFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stream-processor: %v\n", err)
		return 1
	}
	records, err := source.ParseMSKEvent(body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stream-processor: %v\n", err)
		return 1
	}

	var proc *processor.Processor
	app := fx.New(append(options(cfg), fx.Populate(&proc))...)

	ctx, cancel := context.WithTimeout(context.Background(), replayTimeout)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "stream-processor: %v\n", err)
		return 1
	}
	res := proc.Process(ctx, records)
	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "stream-processor: shutdown: %v\n", err)
	}

	if err := jsoncodec.Encode(out, response{StatusCode: 200, Body: res}); err != nil {
		fmt.Fprintf(os.Stderr, "stream-processor: %v\n", err)
		return 1
	}
	return 0
}

func readEvent(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event file: %w", err)
	}
	return b, nil
}
