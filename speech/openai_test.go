package speech

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/errors"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/log"
)

type OpenAISuite struct {
	suite.Suite
	server   *httptest.Server
	pipeline *openaiImpl

	transcript  string
	translation string
	failNext    bool
	lastChatReq *chatRequest
}

func TestOpenAISuite(t *testing.T) {
	suite.Run(t, new(OpenAISuite))
}

func (s *OpenAISuite) SetupTest() {
	s.transcript = "hello"
	s.translation = "hola"
	s.failNext = false
	s.lastChatReq = nil

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handleRequest(w, r)
	}))

	cfg := &Config{
		BaseURL:            s.server.URL,
		APIKey:             "test-key",
		TranscriptionModel: "whisper-1",
		TranslationModel:   "gpt-4",
		SynthesisModel:     "tts-1",
		SynthesisEnabled:   true,
		SynthesisVoice:     "alloy",
	}
	s.pipeline = NewOpenAI(cfg, log.NewNop()).(*openaiImpl)
}

func (s *OpenAISuite) TearDownTest() {
	s.server.Close()
}

func (s *OpenAISuite) handleRequest(w http.ResponseWriter, r *http.Request) {
	if s.failNext {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	s.Equal("Bearer test-key", r.Header.Get("Authorization"))

	switch r.URL.Path {
	case "/audio/transcriptions":
		s.Require().NoError(r.ParseMultipartForm(1 << 20))
		s.Equal("whisper-1", r.FormValue("model"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(transcriptionResponse{Text: s.transcript})
	case "/chat/completions":
		body, _ := io.ReadAll(r.Body)
		var req chatRequest
		s.Require().NoError(json.Unmarshal(body, &req))
		s.lastChatReq = &req
		var resp chatResponse
		resp.Choices = []struct {
			Message chatMessage `json:"message"`
		}{{Message: chatMessage{Role: "assistant", Content: s.translation}}}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	case "/audio/speech":
		_, _ = w.Write([]byte("audio-bytes"))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *OpenAISuite) TestTranscribe() {
	text, err := s.pipeline.Transcribe(context.Background(), []byte("pcm"), "en")
	s.Require().NoError(err)
	s.Equal("hello", text)
}

func (s *OpenAISuite) TestTranscribeTrimsWhitespace() {
	s.transcript = "  \n  "
	text, err := s.pipeline.Transcribe(context.Background(), []byte("pcm"), "en")
	s.Require().NoError(err)
	s.Empty(text)
}

func (s *OpenAISuite) TestTranscribeAPIError() {
	s.failNext = true
	_, err := s.pipeline.Transcribe(context.Background(), []byte("pcm"), "en")
	s.Require().Error(err)
	s.True(errors.Is(err, ErrAPIResponse))
}

func (s *OpenAISuite) TestTranslate() {
	text, err := s.pipeline.Translate(context.Background(), "hello", "en", "es")
	s.Require().NoError(err)
	s.Equal("hola", text)

	s.Require().NotNil(s.lastChatReq)
	s.Equal("gpt-4", s.lastChatReq.Model)
	s.Require().Len(s.lastChatReq.Messages, 2)
	s.True(strings.Contains(s.lastChatReq.Messages[0].Content, "from en to es"))
	s.Equal("hello", s.lastChatReq.Messages[1].Content)
}

func (s *OpenAISuite) TestTranslateNoChoices() {
	s.translation = ""
	s.server.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(chatResponse{})
	})
	_, err := s.pipeline.Translate(context.Background(), "hello", "en", "es")
	s.Require().Error(err)
	s.True(errors.Is(err, ErrInvalidPayload))
}

func (s *OpenAISuite) TestSynthesize() {
	audio, err := s.pipeline.Synthesize(context.Background(), "hola", "es")
	s.Require().NoError(err)
	s.Equal([]byte("audio-bytes"), audio)
}

func (s *OpenAISuite) TestSynthesizeDisabled() {
	s.pipeline.cfg.SynthesisEnabled = false
	audio, err := s.pipeline.Synthesize(context.Background(), "hola", "es")
	s.Require().NoError(err)
	s.Nil(audio)
}
