package tts

import "context"

// Synthesizer turns coaching text into audio bytes. Implementations
// wrap an external text-to-speech provider and are treated as a black
// box: input text, output audio, failure error.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)

	// Model and Voice identify the synthesis configuration. They are
	// part of the audio cache's content address so a voice change never
	// serves stale artifacts.
	Model() string
	Voice() string
}
