package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/heritage-explorer/internal/config"
	"github.com/couchcryptid/heritage-explorer/internal/pipeline"
)

// Message kinds carried in the "kind" header.
const (
	KindHeritageIndex  = "heritage_index"
	KindSustainability = "sustainability"
	KindHiddenGem      = "hidden_gem"
)

// Writer publishes score snapshots to a Kafka topic, one message per scored
// state or site. It implements pipeline.Exporter.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured export topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaExportTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchFlushInterval,
	}
	return &Writer{writer: w, logger: logger}
}

// Export writes every row of the report in a single WriteMessages call.
func (w *Writer) Export(ctx context.Context, r pipeline.Report) (int, error) {
	msgs, err := reportMessages(r)
	if err != nil {
		return 0, err
	}
	if len(msgs) == 0 {
		return 0, nil
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return 0, fmt.Errorf("write score messages: %w", err)
	}
	w.logger.Debug("score snapshot written", "run_id", r.RunID, "messages", len(msgs))
	return len(msgs), nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// reportMessages flattens a report into keyed messages. Keys are the state
// for index rows and the site name otherwise, so the hash balancer keeps a
// state's or site's history on one partition.
func reportMessages(r pipeline.Report) ([]kafkago.Message, error) {
	msgs := make([]kafkago.Message, 0, len(r.HeritageIndex)+len(r.Sustainability)+len(r.HiddenGems))
	for _, row := range r.HeritageIndex {
		m, err := serializeToMessage(r, KindHeritageIndex, row.State, row)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	for _, row := range r.Sustainability {
		m, err := serializeToMessage(r, KindSustainability, row.Site, row)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	for _, row := range r.HiddenGems {
		m, err := serializeToMessage(r, KindHiddenGem, row.SiteName, row)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

func serializeToMessage(r pipeline.Report, kind, key string, row any) (kafkago.Message, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize %s row %q: %w", kind, key, err)
	}
	return kafkago.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "kind", Value: []byte(kind)},
			{Key: "run_id", Value: []byte(r.RunID)},
			{Key: "generated_at", Value: []byte(r.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
