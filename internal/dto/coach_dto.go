package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Seconds accepts both JSON numbers and numeric strings, because some
// clients report elapsed time as text.
type Seconds int

func (s *Seconds) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if len(raw) >= 2 && raw[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		raw = strings.TrimSpace(str)
	}
	if raw == "" || raw == "null" {
		return fmt.Errorf("elapsed seconds is required")
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("elapsed seconds must be an integer: %q", raw)
	}
	*s = Seconds(v)
	return nil
}

// CheckinRequest is one periodic check-in from the client. AudioSample
// is an opaque voice-activity payload that the decision engine accepts
// but does not interpret. ElapsedSeconds is a pointer so an omitted
// field is rejected instead of reading as zero.
type CheckinRequest struct {
	SessionId        string   `json:"session_id" validate:"required"`
	Phase            string   `json:"phase" validate:"required"`
	ElapsedSeconds   *Seconds `json:"elapsed_seconds" validate:"required,gte=0"`
	LastCoachingText string   `json:"last_coaching_text"`
	AudioSample      string   `json:"audio_sample,omitempty"`
}

// DecisionResponse is the decision bundle for one check-in.
type DecisionResponse struct {
	ShouldSpeak bool   `json:"should_speak"`
	Text        string `json:"text"`
	AudioRef    string `json:"audio_ref"`
	Reason      string `json:"reason"`
	Source      string `json:"source,omitempty"` // "template" | "ai"
}

// EndWorkoutRequest signals an explicit workout end.
type EndWorkoutRequest struct {
	SessionId string `json:"session_id" validate:"required"`
}

// PhaseEventMessage is published when a phase transition is announced,
// so the warmup consumer can pre-synthesize the new phase's bank.
type PhaseEventMessage struct {
	SessionId string `json:"session_id"`
	Phase     string `json:"phase"`
}
