package signaling

import "github.com/vineetsharma9252/Babel-The-Speech-translator/rooms"

// Server → client notification payloads.

type ParticipantJoinedEvent struct {
	ParticipantID  string     `json:"participantId"`
	Role           rooms.Role `json:"role"`
	SpeakLanguage  string     `json:"speakLanguage"`
	ListenLanguage string     `json:"listenLanguage"`
	SeatCount      int        `json:"seatCount"`
}

type StartHandshakeEvent struct {
	RoomID string `json:"roomId"`
	// the initiator opens the negotiation
	InitiatorID string `json:"initiatorId"`
}

type ParticipantLeftEvent struct {
	ParticipantID string `json:"participantId"`
	SeatCount     int    `json:"seatCount"`
}

type TranscriptionEvent struct {
	Text       string `json:"text"`
	Language   string `json:"language"`
	IsOriginal bool   `json:"isOriginal"`
}

type TranslationEvent struct {
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
	FromLanguage   string `json:"fromLanguage"`
	ToLanguage     string `json:"toLanguage"`
	Audio          []byte `json:"audio,omitempty"`
}

type TranslationSentEvent struct {
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
	ToLanguage     string `json:"toLanguage"`
}

type ManualTranslationEvent struct {
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
	FromLanguage   string `json:"fromLanguage"`
	ToLanguage     string `json:"toLanguage"`
}
