package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docucortex-be/internal/constant"
	"docucortex-be/internal/dto"
	"docucortex-be/internal/pkg/logger"
)

func TestStatsServiceTalliesProcessedQueries(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	stats := NewStatsService(pubSub, "QUERY_PROCESSED", logger.NewNopLogger())
	publisher := NewPublisherService(pubSub, "QUERY_PROCESSED")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, stats.Consume(ctx))

	turns := []dto.QueryProcessedMessage{
		{SessionID: "s1", Intent: constant.IntentDocumentSearch, Provider: "ollama", Confidence: 0.9, Enriched: true},
		{SessionID: "s1", Intent: constant.IntentConversation, Provider: "ollama", Confidence: 0.8},
		{SessionID: "s2", Intent: constant.IntentDocumentSearch, Provider: "openrouter", Confidence: 0.7},
	}
	for _, turn := range turns {
		payload, err := json.Marshal(turn)
		require.NoError(t, err)
		require.NoError(t, publisher.Publish(ctx, payload))
	}

	assert.Eventually(t, func() bool {
		total, _, _ := stats.Snapshot()
		return total == 3
	}, time.Second, 10*time.Millisecond)

	_, byIntent, byProvider := stats.Snapshot()
	assert.Equal(t, int64(2), byIntent[constant.IntentDocumentSearch])
	assert.Equal(t, int64(1), byIntent[constant.IntentConversation])
	assert.Equal(t, int64(2), byProvider["ollama"])
	assert.Equal(t, int64(1), byProvider["openrouter"])
}

func TestStatsServiceSkipsInvalidPayloads(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	stats := NewStatsService(pubSub, "QUERY_PROCESSED", logger.NewNopLogger())
	publisher := NewPublisherService(pubSub, "QUERY_PROCESSED")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, stats.Consume(ctx))

	require.NoError(t, publisher.Publish(ctx, []byte("not json")))

	valid, err := json.Marshal(dto.QueryProcessedMessage{SessionID: "s1", Intent: constant.IntentConversation, Provider: "ollama"})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(ctx, valid))

	assert.Eventually(t, func() bool {
		total, _, _ := stats.Snapshot()
		return total == 1
	}, time.Second, 10*time.Millisecond)
}
