package service

import (
	"context"
	"encoding/json"
	"sync"

	"docucortex-be/internal/dto"
	"docucortex-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IStatsService interface {
	Consume(ctx context.Context) error
	Snapshot() (total int64, byIntent map[string]int64, byProvider map[string]int64)
}

// statsService tallies processed queries off the in-process bus so the
// hot path never blocks on bookkeeping.
type statsService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger

	mu         sync.Mutex
	total      int64
	byIntent   map[string]int64
	byProvider map[string]int64
}

func NewStatsService(pubSub *gochannel.GoChannel, topicName string, log logger.ILogger) IStatsService {
	return &statsService{
		pubSub:     pubSub,
		topicName:  topicName,
		logger:     log,
		byIntent:   make(map[string]int64),
		byProvider: make(map[string]int64),
	}
}

func (ss *statsService) Consume(ctx context.Context) error {
	messages, err := ss.pubSub.Subscribe(ctx, ss.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ss.processMessage(msg)
		}
	}()

	return nil
}

func (ss *statsService) processMessage(msg *message.Message) {
	var payload dto.QueryProcessedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		ss.logger.Error("Stats", "Failed to unmarshal query message", map[string]interface{}{"error": err.Error()})
		// Ack invalid messages to prevent infinite retry
		msg.Ack()
		return
	}

	ss.mu.Lock()
	ss.total++
	ss.byIntent[payload.Intent]++
	ss.byProvider[payload.Provider]++
	ss.mu.Unlock()

	msg.Ack()
}

func (ss *statsService) Snapshot() (int64, map[string]int64, map[string]int64) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	byIntent := make(map[string]int64, len(ss.byIntent))
	for k, v := range ss.byIntent {
		byIntent[k] = v
	}
	byProvider := make(map[string]int64, len(ss.byProvider))
	for k, v := range ss.byProvider {
		byProvider[k] = v
	}
	return ss.total, byIntent, byProvider
}
