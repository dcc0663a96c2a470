package service

import (
	"context"
	"encoding/json"

	"breathcoach-be/internal/dto"
	"breathcoach-be/internal/pkg/logger"
	"breathcoach-be/internal/pkg/serverutils"
	"breathcoach-be/internal/repository/memory"
	"breathcoach-be/pkg/audiocache"
	"breathcoach-be/pkg/coach"
	"breathcoach-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
)

// ICoachingService is the per-check-in orchestrator: it composes the
// session store, the decision policy, the phrase selector and the
// audio cache into one decision bundle.
type ICoachingService interface {
	Checkin(ctx context.Context, request *dto.CheckinRequest) (*dto.DecisionResponse, error)
	EndWorkout(ctx context.Context, sessionId string) error
}

type coachingService struct {
	sessionRepo *memory.SessionRepository
	selector    *coach.Selector
	audioCache  *audiocache.Cache
	policyCfg   coach.PolicyConfig
	pubSub      *gochannel.GoChannel
	topicName   string
	logger      logger.ILogger
}

func NewCoachingService(
	sessionRepo *memory.SessionRepository,
	selector *coach.Selector,
	audioCache *audiocache.Cache,
	policyCfg coach.PolicyConfig,
	pubSub *gochannel.GoChannel,
	topicName string,
	log logger.ILogger,
) ICoachingService {
	return &coachingService{
		sessionRepo: sessionRepo,
		selector:    selector,
		audioCache:  audioCache,
		policyCfg:   policyCfg,
		pubSub:      pubSub,
		topicName:   topicName,
		logger:      log,
	}
}

// Checkin handles one periodic check-in. Input errors are rejected
// before session state is touched; synthesis failures degrade to a
// text-only bundle; nothing here aborts a workout in progress.
func (cs *coachingService) Checkin(ctx context.Context, request *dto.CheckinRequest) (*dto.DecisionResponse, error) {
	phase, err := coach.ParsePhase(request.Phase)
	if err != nil {
		return nil, serverutils.NewApiError(fiber.StatusBadRequest, err.Error())
	}
	if request.ElapsedSeconds == nil {
		return nil, serverutils.NewApiError(fiber.StatusBadRequest, "elapsed seconds is required")
	}
	elapsed := int(*request.ElapsedSeconds)
	if elapsed < 0 {
		return nil, serverutils.NewApiError(fiber.StatusBadRequest, "elapsed seconds must be non-negative")
	}

	unlock := cs.sessionRepo.Lock(request.SessionId)
	defer unlock()

	session, created := cs.sessionRepo.GetOrCreate(request.SessionId)

	// A smaller elapsed time under a known id means the client started
	// a new workout attempt: reset to a fresh session.
	if !created && elapsed < session.ElapsedSeconds {
		cs.logger.Info("coaching", "elapsed time regressed, resetting session", map[string]interface{}{
			"session_id": request.SessionId,
			"stored":     session.ElapsedSeconds,
			"reported":   elapsed,
		})
		session = memory.NewSession(request.SessionId)
	} else if !created && phase.Index() < coach.Phase(session.Phase).Index() {
		// Phases only move forward within a workout.
		return nil, serverutils.NewApiError(fiber.StatusBadRequest, "phase cannot move backward within a session")
	}

	decision, err := coach.Decide(session, phase, elapsed, cs.policyCfg)
	if err != nil {
		return nil, err
	}

	response := &dto.DecisionResponse{
		ShouldSpeak: decision.ShouldSpeak,
		Reason:      string(decision.Reason),
	}

	if decision.ShouldSpeak {
		candidate, err := cs.selector.Select(ctx, phase, decision.Reason, session.LastCoachingText)
		if err != nil {
			return nil, err
		}
		response.Text = candidate.Text
		response.Source = string(candidate.Source)

		audioRef, err := cs.audioCache.Resolve(ctx, candidate.Text)
		if err != nil {
			// Text-only degradation: the coaching still happens.
			cs.logger.Warn("coaching", "audio synthesis failed, degrading to text-only", map[string]interface{}{
				"session_id": request.SessionId,
				"error":      err.Error(),
			})
			response.Reason = string(coach.ReasonSynthesisFailed)
		} else {
			response.AudioRef = audioRef
		}

		if decision.Reason == coach.ReasonPhaseTransition {
			cs.publishPhaseEvent(request.SessionId, phase)
		}
	}

	cs.persist(session, phase, elapsed, response)
	return response, nil
}

// persist advances phase and elapsed time on every check-in; the last
// coaching fields move only when something was spoken.
func (cs *coachingService) persist(session *store.Session, phase coach.Phase, elapsed int, response *dto.DecisionResponse) {
	session.Phase = string(phase)
	session.ElapsedSeconds = elapsed
	if response.ShouldSpeak {
		at := elapsed
		session.LastCoachingText = response.Text
		session.LastCoachingAt = &at
	}
	cs.sessionRepo.Save(session)
}

func (cs *coachingService) EndWorkout(ctx context.Context, sessionId string) error {
	unlock := cs.sessionRepo.Lock(sessionId)
	defer unlock()
	cs.sessionRepo.Delete(sessionId)
	return nil
}

func (cs *coachingService) publishPhaseEvent(sessionId string, phase coach.Phase) {
	if cs.pubSub == nil {
		return
	}
	payload, err := json.Marshal(dto.PhaseEventMessage{SessionId: sessionId, Phase: string(phase)})
	if err != nil {
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := cs.pubSub.Publish(cs.topicName, msg); err != nil {
		cs.logger.Warn("coaching", "failed to publish phase event", map[string]interface{}{
			"session_id": sessionId,
			"phase":      string(phase),
			"error":      err.Error(),
		})
	}
}
