//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/storm-underwriter/internal/adapter/kafka"
	"github.com/couchcryptid/storm-underwriter/internal/adapter/openweather"
	"github.com/couchcryptid/storm-underwriter/internal/config"
	"github.com/couchcryptid/storm-underwriter/internal/domain"
	"github.com/couchcryptid/storm-underwriter/internal/observability"
	"github.com/couchcryptid/storm-underwriter/internal/underwriting"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testDecisionTopic = "test-decisions"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node Kafka container and returns its broker address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("underwriter-test"))
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
	ctrlConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrlConn.Close()

	require.NoError(t, ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestDecisionPublishedToKafka runs a full application against a fake weather
// provider and reads the decision event back from the topic.
func TestDecisionPublishedToKafka(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testDecisionTopic)

	weather := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"cod":200,"main":{"temp":81,"humidity":88},"weather":[{"description":"thunderstorm"}],"wind":{"speed":12}}`))
	}))
	t.Cleanup(weather.Close)

	cfg := &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaDecisionTopic: testDecisionTopic,
	}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	client := openweather.NewClient("integration-key", weather.URL, 5*time.Second, metrics, discardLogger())
	u := underwriting.New(client, writer, discardLogger(), metrics)

	q, err := domain.NewLocationQuery("Tulsa", "US")
	require.NoError(t, err)
	app, err := u.Process(ctx, q)
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeDecline, app.Decision.Outcome)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     testDecisionTopic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  1 << 20,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()
	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from decision topic")

	assert.Equal(t, app.ID, string(msg.Key))

	var got domain.Application
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, domain.StateDecided, got.State)
	require.NotNil(t, got.Decision)
	assert.Equal(t, domain.OutcomeDecline, got.Decision.Outcome)
	assert.Contains(t, got.Decision.Rationale, "thunderstorm")
	require.NotNil(t, got.Report)
	assert.Equal(t, "Tulsa", got.Report.City)
}
