package services

import (
	"context"
	"strings"

	"github.com/careerforge/backend/internal/providers/speech"
	"github.com/careerforge/backend/internal/utils"
)

type SpeechService interface {
	Transcribe(ctx context.Context, audio []byte, language string) (text string, confidence float64, err error)
	Synthesize(ctx context.Context, text, language string) (audio []byte, err error)
}

type speechService struct {
	stt speech.Transcriber
	tts speech.Synthesizer
}

func NewSpeechService(stt speech.Transcriber, tts speech.Synthesizer) SpeechService {
	return &speechService{stt: stt, tts: tts}
}

func (s *speechService) Transcribe(ctx context.Context, audio []byte, language string) (string, float64, error) {
	const op = "SpeechService.Transcribe"

	if len(audio) == 0 {
		return "", 0, utils.E(utils.CodeInvalidArgument, op, "audio is required", nil)
	}
	if s.stt == nil {
		return "", 0, utils.E(utils.CodeInternal, op, "speech-to-text is not configured", nil)
	}

	text, conf, err := s.stt.Transcribe(ctx, audio, language)
	if err != nil {
		return "", 0, utils.E(utils.CodeUnavailable, op, "transcription failed", err)
	}
	return text, conf, nil
}

func (s *speechService) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	const op = "SpeechService.Synthesize"

	if strings.TrimSpace(text) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "text is required", nil)
	}
	if s.tts == nil {
		return nil, utils.E(utils.CodeInternal, op, "text-to-speech is not configured", nil)
	}

	audio, err := s.tts.Synthesize(ctx, text, language)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "synthesis failed", err)
	}
	return audio, nil
}
