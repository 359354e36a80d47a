package speech

import "context"

// Pipeline is the transcription / translation / synthesis capability
// consumed by the audio coordinator.
type Pipeline interface {
	// Transcribe turns raw audio into text in the speaker's language. An
	// empty result means nothing intelligible was said.
	Transcribe(ctx context.Context, audio []byte, sourceLanguage string) (string, error)

	// Translate returns text translated from sourceLanguage to
	// targetLanguage.
	Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error)

	// Synthesize renders text as speech audio. Returns nil audio when
	// synthesis is disabled.
	Synthesize(ctx context.Context, text, voiceLanguage string) ([]byte, error)
}
