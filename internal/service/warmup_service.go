package service

import (
	"context"
	"encoding/json"

	"breathcoach-be/internal/dto"
	"breathcoach-be/internal/pkg/logger"
	"breathcoach-be/pkg/audiocache"
	"breathcoach-be/pkg/coach"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IWarmupService listens for phase-transition events and pre-fills the
// audio cache with the announced phase's phrase bank, so later cues in
// that phase resolve without a synthesis round-trip.
type IWarmupService interface {
	Consume(ctx context.Context) error
}

type warmupService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	library    *coach.Library
	audioCache *audiocache.Cache
	logger     logger.ILogger
}

func NewWarmupService(
	pubSub *gochannel.GoChannel,
	topicName string,
	library *coach.Library,
	audioCache *audiocache.Cache,
	log logger.ILogger,
) IWarmupService {
	return &warmupService{
		pubSub:     pubSub,
		topicName:  topicName,
		library:    library,
		audioCache: audioCache,
		logger:     log,
	}
}

func (ws *warmupService) Consume(ctx context.Context) error {
	messages, err := ws.pubSub.Subscribe(ctx, ws.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ws.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (ws *warmupService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PhaseEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		ws.logger.Error("warmup", "failed to unmarshal phase event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	phase, err := coach.ParsePhase(payload.Phase)
	if err != nil {
		ws.logger.Warn("warmup", "phase event carries unknown phase", map[string]interface{}{"phase": payload.Phase})
		msg.Ack()
		return
	}

	bank, err := ws.library.BankFor(phase)
	if err != nil {
		msg.Ack()
		return
	}

	for _, tmpl := range bank {
		if _, err := ws.audioCache.Resolve(ctx, tmpl.Text); err != nil {
			// Best effort: a failed warmup just means a miss later.
			ws.logger.Warn("warmup", "pre-synthesis failed", map[string]interface{}{
				"phase": string(phase),
				"error": err.Error(),
			})
		}
	}

	msg.Ack()
}
