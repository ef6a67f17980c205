package kafka_test

import (
	"context"
	"encoding/json"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_ToKafkaMessage(t *testing.T) {
	message := kafka.Message{
		Key:   "booking-1",
		Value: map[string]any{"room_id": "room-1", "total_price": 300},
	}

	msg, err := message.ToKafkaMessage()
	require.NoError(t, err)

	assert.Equal(t, []byte("booking-1"), msg.Key)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "room-1", decoded["room_id"])
	assert.InDelta(t, 300, decoded["total_price"], 0.001)
}

func TestMessage_ToKafkaMessageInvalidValue(t *testing.T) {
	message := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := message.ToKafkaMessage()
	assert.Error(t, err)
}

func TestSendMessagesWithoutBrokers(t *testing.T) {
	client := kafka.New(&config.Config{}, mocks.NewOtel())

	err := client.SendMessages(context.Background(), "booking.created", kafka.Message{Key: "b-1", Value: "x"})
	assert.NoError(t, err)
}
