package tts

import (
	"context"
	"fmt"
	"io"

	goopenai "github.com/sashabaranov/go-openai"
)

// OpenAISynthesizer implements Synthesizer using the OpenAI speech API.
type OpenAISynthesizer struct {
	client *goopenai.Client
	model  goopenai.SpeechModel
	voice  goopenai.SpeechVoice
}

var _ Synthesizer = &OpenAISynthesizer{}

// NewOpenAISynthesizer creates a synthesizer. Empty model/voice fall
// back to tts-1 with the "nova" voice.
func NewOpenAISynthesizer(apiKey, model, voice string) *OpenAISynthesizer {
	if model == "" {
		model = string(goopenai.TTSModel1)
	}
	if voice == "" {
		voice = string(goopenai.VoiceNova)
	}
	return &OpenAISynthesizer{
		client: goopenai.NewClient(apiKey),
		model:  goopenai.SpeechModel(model),
		voice:  goopenai.SpeechVoice(voice),
	}
}

func (s *OpenAISynthesizer) Model() string { return string(s.model) }
func (s *OpenAISynthesizer) Voice() string { return string(s.voice) }

func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("cannot synthesize empty text")
	}

	resp, err := s.client.CreateSpeech(ctx, goopenai.CreateSpeechRequest{
		Model:          s.model,
		Input:          text,
		Voice:          s.voice,
		ResponseFormat: goopenai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read speech response: %w", err)
	}
	return data, nil
}
