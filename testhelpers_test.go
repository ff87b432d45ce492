//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-pet/internal/application"
	"github.com/Kilat-Pet-Delivery/service-pet/internal/config"
	petDomain "github.com/Kilat-Pet-Delivery/service-pet/internal/domain/pet"
	petEvents "github.com/Kilat-Pet-Delivery/service-pet/internal/events"
	"github.com/Kilat-Pet-Delivery/service-pet/internal/repository"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	Collection   *mongo.Collection
	KafkaBrokers []string
	Cleanup      func()
}

// petStack holds wired-up pet service components.
type petStack struct {
	Store           petDomain.Store
	Service         *application.PetService
	Consumer        *petEvents.AdoptionEventConsumer
	CleanupProducer func()
}

// setupMongo starts a MongoDB testcontainer and returns a fresh collection.
func setupMongo(t *testing.T) (*mongo.Collection, func()) {
	t.Helper()
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err, "failed to start MongoDB container")

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := repository.ConnectMongo(ctx, config.MongoConfig{
		URI:     uri,
		Timeout: 10 * time.Second,
	})
	require.NoError(t, err, "failed to connect to MongoDB")

	coll := client.Database("pets_test").Collection(fmt.Sprintf("pet_%s", uuid.New().String()[:8]))

	cleanup := func() {
		_ = client.Disconnect(ctx)
		if err := testcontainers.TerminateContainer(mongoContainer); err != nil {
			t.Logf("failed to terminate MongoDB container: %v", err)
		}
	}
	return coll, cleanup
}

// setupContainers starts MongoDB and Kafka testcontainers.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	coll, cleanupMongo := setupMongo(t)

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	// Pre-create required topics.
	createTopics(t, kafkaBrokers, petEvents.TopicPetEvents, petEvents.TopicAdoptionEvents)

	cleanup := func() {
		if err := testcontainers.TerminateContainer(kafkaContainer); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		cleanupMongo()
	}

	return &testInfra{
		Collection:   coll,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupPetStack wires up the full pet service stack against Mongo and Kafka.
func setupPetStack(t *testing.T, coll *mongo.Collection, brokers []string) *petStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	store := repository.NewMongoPetStore(coll)
	producer := petEvents.NewProducer(brokers, logger)
	petSvc := application.NewPetService(store, petDomain.NewIDCodec(true, logger), producer, logger)

	groupID := fmt.Sprintf("test-pet-%s", uuid.New().String()[:8])
	consumer := petEvents.NewAdoptionEventConsumer(brokers, groupID, petSvc, logger)

	return &petStack{
		Store:           store,
		Service:         petSvc,
		Consumer:        consumer,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// publishTestEvent publishes a CloudEvent to Kafka.
func publishTestEvent(t *testing.T, brokers []string, topic, source, eventType, key string, data interface{}) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	producer := petEvents.NewProducer(brokers, logger)
	defer func() { _ = producer.Close() }()

	ce, err := petEvents.NewCloudEvent(source, eventType, data)
	require.NoError(t, err, "failed to create cloud event")

	err = producer.PublishEvent(context.Background(), topic, key, ce)
	require.NoError(t, err, "failed to publish event")
}

// waitForPetStatus polls the store until the pet reaches the expected status.
func waitForPetStatus(t *testing.T, store petDomain.Store, id bson.ObjectID, expected petDomain.Status, timeout time.Duration) *petDomain.Pet {
	t.Helper()
	var result *petDomain.Pet
	require.Eventually(t, func() bool {
		p, err := store.FindOne(context.Background(), id)
		if err != nil {
			return false
		}
		if p.Status() == expected {
			result = p
			return true
		}
		return false
	}, timeout, 200*time.Millisecond, "pet did not transition to %s", expected)
	return result
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) petEvents.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := petEvents.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
