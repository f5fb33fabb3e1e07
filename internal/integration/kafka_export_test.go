//go:build integration

package integration_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/goccy/go-json"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/heritage-explorer/internal/adapter/kafka"
	"github.com/couchcryptid/heritage-explorer/internal/analytics"
	"github.com/couchcryptid/heritage-explorer/internal/config"
	"github.com/couchcryptid/heritage-explorer/internal/observability"
	"github.com/couchcryptid/heritage-explorer/internal/pipeline"
	"github.com/couchcryptid/heritage-explorer/internal/source"
)

const testExportTopic = "test-heritage-scores"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("heritage-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestExportLoopPublishesScores runs the export loop against a real broker
// and reads the snapshot back from the topic.
func TestExportLoopPublishesScores(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testExportTopic)

	cfg := &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaExportTopic:   testExportTopic,
		BatchSize:          100,
		BatchFlushInterval: 100 * time.Millisecond,
	}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	builder := pipeline.NewBuilder(source.NewFile("../../data/mock/heritage_tables.json"), nil, 42, discardLogger(), metrics)
	want, err := builder.Report(ctx)
	require.NoError(t, err)

	runner := pipeline.NewRunner(builder, writer, time.Hour, discardLogger(), metrics)
	runCtx, stop := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- runner.Run(runCtx) }()

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     testExportTopic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 60*time.Second)
	defer readCancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from export topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, kafka.KindHeritageIndex, headers["kind"])
	assert.NotEmpty(t, headers["run_id"])

	var row analytics.StateIndex
	require.NoError(t, json.Unmarshal(msg.Value, &row))
	assert.Equal(t, want.HeritageIndex[0].State, string(msg.Key))
	assert.Equal(t, want.HeritageIndex[0], row)

	stop()
	require.NoError(t, <-errCh)
	require.NoError(t, runner.CheckReadiness(context.Background()))
}
