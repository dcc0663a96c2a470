package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"breathcoach-be/internal/dto"
	"breathcoach-be/internal/pkg/serverutils"
	"breathcoach-be/internal/repository/memory"
	"breathcoach-be/pkg/audiocache"
	"breathcoach-be/pkg/coach"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeSynth struct {
	calls int32
	fail  bool
}

func (f *fakeSynth) Synthesize(_ context.Context, text string) ([]byte, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.fail {
		return nil, fmt.Errorf("provider down")
	}
	return []byte("AUDIO:" + text), nil
}

func (f *fakeSynth) Calls() int {
	return int(atomic.LoadInt32(&f.calls))
}

func (f *fakeSynth) Model() string { return "tts-test" }
func (f *fakeSynth) Voice() string { return "v1" }

type memStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	failPut bool
}

func (s *memStore) Put(_ context.Context, ref string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPut {
		return fmt.Errorf("storage unavailable")
	}
	s.data[ref] = data
	return nil
}

func (s *memStore) Get(_ context.Context, ref string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.data[ref]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return data, nil
}

func newTestService(synth *fakeSynth) (ICoachingService, *memory.SessionRepository) {
	repo := memory.NewSessionRepository(time.Minute)
	selector := coach.NewSelector(coach.DefaultLibrary(), nil, coach.DefaultValidationRules())
	cache := audiocache.New(&memStore{data: make(map[string][]byte)}, synth, time.Second, 0, nil)
	svc := NewCoachingService(repo, selector, cache, coach.DefaultPolicyConfig(), nil, "phase-events", nopLogger{})
	return svc, repo
}

func checkin(sessionId, phase string, elapsed int, lastText string) *dto.CheckinRequest {
	secs := dto.Seconds(elapsed)
	return &dto.CheckinRequest{
		SessionId:        sessionId,
		Phase:            phase,
		ElapsedSeconds:   &secs,
		LastCoachingText: lastText,
	}
}

func TestCheckinScenario(t *testing.T) {
	svc, _ := newTestService(&fakeSynth{})
	ctx := context.Background()

	// Check-in 1: unseen session always gets a welcome.
	res1, err := svc.Checkin(ctx, checkin("s1", "warmup", 5, ""))
	require.NoError(t, err)
	assert.True(t, res1.ShouldSpeak)
	assert.Equal(t, "first_breath_welcome", res1.Reason)
	assert.NotEmpty(t, res1.Text)
	assert.NotEmpty(t, res1.AudioRef)

	// Check-in 2: warmup interval (30s) has not elapsed.
	res2, err := svc.Checkin(ctx, checkin("s1", "warmup", 20, res1.Text))
	require.NoError(t, err)
	assert.False(t, res2.ShouldSpeak)
	assert.Equal(t, "cue_interval_not_elapsed", res2.Reason)
	assert.Empty(t, res2.Text)
	assert.Empty(t, res2.AudioRef)

	// Check-in 3: phase change forces an announcement.
	res3, err := svc.Checkin(ctx, checkin("s1", "intense", 35, res1.Text))
	require.NoError(t, err)
	assert.True(t, res3.ShouldSpeak)
	assert.Equal(t, "phase_transition", res3.Reason)
	assert.NotEqual(t, res1.Text, res3.Text, "consecutive coaching texts must differ")
}

func TestCheckinSilentUpdatePreservesLastCoaching(t *testing.T) {
	svc, repo := newTestService(&fakeSynth{})
	ctx := context.Background()

	res1, err := svc.Checkin(ctx, checkin("s1", "warmup", 5, ""))
	require.NoError(t, err)

	_, err = svc.Checkin(ctx, checkin("s1", "warmup", 20, res1.Text))
	require.NoError(t, err)

	session, found := repo.Get("s1")
	require.True(t, found)
	assert.Equal(t, 20, session.ElapsedSeconds, "elapsed time advances on silent check-ins")
	assert.Equal(t, res1.Text, session.LastCoachingText, "last coaching text is untouched when quiet")
	require.NotNil(t, session.LastCoachingAt)
	assert.Equal(t, 5, *session.LastCoachingAt)
}

func TestCheckinElapsedRegressionResetsSession(t *testing.T) {
	svc, _ := newTestService(&fakeSynth{})
	ctx := context.Background()

	res1, err := svc.Checkin(ctx, checkin("s1", "cooldown", 900, ""))
	require.NoError(t, err)
	assert.Equal(t, "first_breath_welcome", res1.Reason)

	// The same id reports a smaller elapsed time: a new workout attempt.
	res2, err := svc.Checkin(ctx, checkin("s1", "prep", 3, ""))
	require.NoError(t, err)
	assert.True(t, res2.ShouldSpeak)
	assert.Equal(t, "first_breath_welcome", res2.Reason, "a reset session welcomes again")
}

func TestCheckinRejectsBackwardPhase(t *testing.T) {
	svc, _ := newTestService(&fakeSynth{})
	ctx := context.Background()

	_, err := svc.Checkin(ctx, checkin("s1", "intense", 100, ""))
	require.NoError(t, err)

	_, err = svc.Checkin(ctx, checkin("s1", "warmup", 120, ""))
	require.Error(t, err)
	apiErr, ok := err.(*serverutils.ApiError)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.StatusCode)
}

func TestCheckinRejectsUnknownPhase(t *testing.T) {
	svc, repo := newTestService(&fakeSynth{})

	_, err := svc.Checkin(context.Background(), checkin("s1", "plank", 10, ""))
	require.Error(t, err)
	apiErr, ok := err.(*serverutils.ApiError)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.StatusCode)

	_, found := repo.Get("s1")
	assert.False(t, found, "input errors must not create session state")
}

func TestCheckinRejectsNegativeElapsed(t *testing.T) {
	svc, _ := newTestService(&fakeSynth{})

	_, err := svc.Checkin(context.Background(), checkin("s1", "warmup", -5, ""))
	require.Error(t, err)
}

func TestCheckinRejectsMissingElapsed(t *testing.T) {
	svc, _ := newTestService(&fakeSynth{})

	req := checkin("s1", "warmup", 0, "")
	req.ElapsedSeconds = nil
	_, err := svc.Checkin(context.Background(), req)
	require.Error(t, err)

	apiErr, ok := err.(*serverutils.ApiError)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.StatusCode)
}

func TestCheckinDegradesToTextOnlyOnSynthesisFailure(t *testing.T) {
	svc, _ := newTestService(&fakeSynth{fail: true})

	res, err := svc.Checkin(context.Background(), checkin("s1", "warmup", 5, ""))
	require.NoError(t, err, "synthesis failure must never fail the check-in")
	assert.True(t, res.ShouldSpeak)
	assert.NotEmpty(t, res.Text)
	assert.Empty(t, res.AudioRef)
	assert.Equal(t, "synthesis_failed", res.Reason)
}

func TestCheckinAudioFetchableAfterStoreWriteFailure(t *testing.T) {
	repo := memory.NewSessionRepository(time.Minute)
	selector := coach.NewSelector(coach.DefaultLibrary(), nil, coach.DefaultValidationRules())
	cache := audiocache.New(&memStore{data: make(map[string][]byte), failPut: true}, &fakeSynth{}, time.Second, 0, nil)
	svc := NewCoachingService(repo, selector, cache, coach.DefaultPolicyConfig(), nil, "phase-events", nopLogger{})
	ctx := context.Background()

	res, err := svc.Checkin(ctx, checkin("s1", "warmup", 5, ""))
	require.NoError(t, err, "a failed artifact write must never fail the check-in")
	assert.True(t, res.ShouldSpeak)
	assert.NotEqual(t, "synthesis_failed", res.Reason)
	require.NotEmpty(t, res.AudioRef)

	// The bundle's reference must resolve to playable bytes even
	// though the artifact store rejected the write.
	data, err := cache.Get(ctx, res.AudioRef)
	require.NoError(t, err)
	assert.Equal(t, []byte("AUDIO:"+res.Text), data)
}

func TestCheckinAudioIsCachedAcrossSessions(t *testing.T) {
	synth := &fakeSynth{}
	svc, _ := newTestService(synth)
	ctx := context.Background()

	res1, err := svc.Checkin(ctx, checkin("s1", "warmup", 5, ""))
	require.NoError(t, err)

	// Walk a second session until it speaks the same text.
	var res2 *dto.DecisionResponse
	for i := 0; i < 20; i++ {
		r, err := svc.Checkin(ctx, checkin(fmt.Sprintf("other-%d", i), "warmup", 5, ""))
		require.NoError(t, err)
		if r.Text == res1.Text {
			res2 = r
			break
		}
	}
	if res2 == nil {
		t.Skip("welcome draw never repeated within the attempt budget")
	}
	assert.Equal(t, res1.AudioRef, res2.AudioRef, "identical text must reuse the cached artifact")
}

func TestEndWorkoutEvictsSession(t *testing.T) {
	svc, repo := newTestService(&fakeSynth{})
	ctx := context.Background()

	_, err := svc.Checkin(ctx, checkin("s1", "warmup", 5, ""))
	require.NoError(t, err)

	require.NoError(t, svc.EndWorkout(ctx, "s1"))
	_, found := repo.Get("s1")
	assert.False(t, found)
}
