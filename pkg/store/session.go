package store

import "time"

// Session represents the live state of one workout in memory.
// It is owned exclusively by the session repository; the coaching
// service mutates it only while holding the per-session lock.
type Session struct {
	ID             string `json:"id"` // opaque session identifier from the client
	Phase          string `json:"phase"`
	ElapsedSeconds int    `json:"elapsed_seconds"`

	// Last coaching utterance. LastCoachingAt is nil until the first
	// message has been spoken in this session.
	LastCoachingText string `json:"last_coaching_text"`
	LastCoachingAt   *int   `json:"last_coaching_at"`

	CreatedAt time.Time `json:"created_at"`
}

// HasSpoken reports whether any coaching message was delivered yet.
func (s *Session) HasSpoken() bool {
	return s.LastCoachingAt != nil
}
