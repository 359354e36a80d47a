package speech

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/errors"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/log"
)

const apiTimeout = 30 * time.Second

// openaiImpl implements Pipeline against the OpenAI HTTP API: whisper for
// transcription, a chat completion for translation, tts for synthesis.
type openaiImpl struct {
	client *resty.Client
	cfg    *Config
	logger *log.Logger
}

func NewOpenAI(cfg *Config, logger *log.Logger) Pipeline {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetAuthToken(cfg.APIKey).
		SetTimeout(apiTimeout)
	return &openaiImpl{
		client: client,
		cfg:    cfg,
		logger: logger.Module("speech"),
	}
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

func (o *openaiImpl) Transcribe(ctx context.Context, audio []byte, sourceLanguage string) (string, error) {
	var out transcriptionResponse
	resp, err := o.client.R().
		SetContext(ctx).
		SetFileReader("file", "audio.wav", bytes.NewReader(audio)).
		SetFormData(map[string]string{
			"model":    o.cfg.TranscriptionModel,
			"language": sourceLanguage,
		}).
		SetResult(&out).
		Post("/audio/transcriptions")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", errors.Newf(ErrAPIResponse, "transcription failed: status %d", resp.StatusCode())
	}

	text := strings.TrimSpace(out.Text)
	o.logger.Debug("transcribed audio",
		log.Int("audio_bytes", len(audio)),
		log.String("language", sourceLanguage),
		log.Int("text_len", len(text)))
	return text, nil
}

func (o *openaiImpl) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	req := &chatRequest{
		Model: o.cfg.TranslationModel,
		Messages: []chatMessage{
			{
				Role: "system",
				Content: fmt.Sprintf(
					"You are a translator. Translate the following text from %s to %s. Only return the translation.",
					sourceLanguage, targetLanguage),
			},
			{Role: "user", Content: text},
		},
		MaxTokens: 100,
	}

	var out chatResponse
	resp, err := o.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/chat/completions")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", errors.Newf(ErrAPIResponse, "translation failed: status %d", resp.StatusCode())
	}
	if len(out.Choices) == 0 {
		return "", errors.New(ErrInvalidPayload, "translation response has no choices")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

func (o *openaiImpl) Synthesize(ctx context.Context, text, voiceLanguage string) ([]byte, error) {
	if !o.cfg.SynthesisEnabled {
		return nil, nil
	}

	resp, err := o.client.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"model": o.cfg.SynthesisModel,
			"input": text,
			"voice": o.cfg.SynthesisVoice,
		}).
		Post("/audio/speech")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, errors.Newf(ErrAPIResponse, "synthesis failed: status %d", resp.StatusCode())
	}
	return resp.Body(), nil
}
