package audiocache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"breathcoach-be/internal/pkg/logger"
	"breathcoach-be/pkg/tts"

	gocache "github.com/patrickmn/go-cache"
)

// Entry is one cached synthesis result. Entries are immutable; the
// same text hash always resolves to semantically equivalent audio.
type Entry struct {
	TextHash  string    `json:"text_hash"`
	AudioRef  string    `json:"audio_ref"`
	CreatedAt time.Time `json:"created_at"`
}

// ArtifactStore persists synthesized audio bytes under a reference.
type ArtifactStore interface {
	Put(ctx context.Context, ref string, data []byte) error
	Get(ctx context.Context, ref string) ([]byte, error)
}

type inflight struct {
	done chan struct{}
	ref  string
	err  error
}

// Cache is the content-addressed audio cache. Hits return without any
// network call; misses invoke the synthesizer under a timeout and
// persist the result. Concurrent misses for the same text are
// coalesced into a single provider call.
type Cache struct {
	index    *gocache.Cache
	pending  *gocache.Cache
	store    ArtifactStore
	synth    tts.Synthesizer
	timeout  time.Duration
	logger   logger.ILogger
	mu       sync.Mutex
	inFlight map[string]*inflight
}

// pendingTTL bounds how long audio that failed to persist stays
// servable from memory. Clients fetch the reference right after the
// check-in that produced it.
const pendingTTL = 5 * time.Minute

// New builds a cache. retention bounds how long index entries live;
// zero means keep entries until process exit.
func New(store ArtifactStore, synth tts.Synthesizer, timeout, retention time.Duration, log logger.ILogger) *Cache {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ttl := gocache.NoExpiration
	janitor := time.Duration(0)
	if retention > 0 {
		ttl = retention
		janitor = 10 * time.Minute
	}
	return &Cache{
		index:    gocache.New(ttl, janitor),
		pending:  gocache.New(pendingTTL, 10*time.Minute),
		store:    store,
		synth:    synth,
		timeout:  timeout,
		logger:   log,
		inFlight: make(map[string]*inflight),
	}
}

// HashText computes the content address of a text under the current
// synthesis configuration.
func (c *Cache) HashText(text string) string {
	sum := sha256.Sum256([]byte(c.synth.Model() + "|" + c.synth.Voice() + "|" + text))
	return hex.EncodeToString(sum[:])
}

// Resolve maps text to a playable audio reference, synthesizing on a
// cache miss. A store write failure is non-fatal for the current
// request: the reference is still returned, the entry is just not
// indexed, and an identical request later will miss again.
func (c *Cache) Resolve(ctx context.Context, text string) (string, error) {
	hash := c.HashText(text)
	if v, found := c.index.Get(hash); found {
		return v.(*Entry).AudioRef, nil
	}

	c.mu.Lock()
	if call, running := c.inFlight[hash]; running {
		c.mu.Unlock()
		select {
		case <-call.done:
			return call.ref, call.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	call := &inflight{done: make(chan struct{})}
	c.inFlight[hash] = call
	c.mu.Unlock()

	call.ref, call.err = c.synthesize(ctx, hash, text)

	c.mu.Lock()
	delete(c.inFlight, hash)
	c.mu.Unlock()
	close(call.done)

	return call.ref, call.err
}

// Get reads a stored artifact back for delivery. Audio whose persist
// failed is served from the pending buffer until it expires.
func (c *Cache) Get(ctx context.Context, ref string) ([]byte, error) {
	data, err := c.store.Get(ctx, ref)
	if err == nil {
		return data, nil
	}
	if v, found := c.pending.Get(ref); found {
		return v.([]byte), nil
	}
	return nil, err
}

func (c *Cache) synthesize(ctx context.Context, hash, text string) (string, error) {
	synthCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := c.synth.Synthesize(synthCtx, text)
	if err != nil {
		return "", fmt.Errorf("synthesis failed: %w", err)
	}

	ref := hash + ".mp3"
	if err := c.store.Put(ctx, ref, data); err != nil {
		// Non-fatal: buffer the audio so the reference stays fetchable
		// for this request, but skip the index so an identical request
		// later misses and retries the persist.
		if c.logger != nil {
			c.logger.Warn("audiocache", "failed to persist audio artifact", map[string]interface{}{
				"ref":   ref,
				"error": err.Error(),
			})
		}
		c.pending.Set(ref, data, gocache.DefaultExpiration)
		return ref, nil
	}

	c.index.Set(hash, &Entry{TextHash: hash, AudioRef: ref, CreatedAt: time.Now()}, gocache.DefaultExpiration)
	return ref, nil
}
