package signaling

import (
	"context"
	"strings"
	"time"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/log"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/scheduler"
	syncutil "github.com/vineetsharma9252/Babel-The-Speech-translator/internal/sync"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/rooms"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/rooms/store"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/speech"
)

// Coordinator batches each speaker's audio and drives it through the
// speech pipeline. Each speaker has a deadline entry in a keyed min-heap
// scheduler instead of a periodic scan over all rooms; ingestion only
// appends and re-arms the deadline, so it never waits on a dispatch.
type Coordinator struct {
	registry store.Registry
	pipeline speech.Pipeline
	notifier Notifier
	sched    *scheduler.KeyedScheduler

	// speaker participant id -> room id, for scheduler callbacks
	speakerRooms *syncutil.Map[string, string]

	flushInterval  time.Duration
	flushThreshold time.Duration
	minFlushBytes  int

	logger *log.Logger
}

func NewCoordinator(
	registry store.Registry,
	pipeline speech.Pipeline,
	notifier Notifier,
	cfg *Config,
	logger *log.Logger,
) *Coordinator {
	logger = logger.Module("coordinator")
	return &Coordinator{
		registry:       registry,
		pipeline:       pipeline,
		notifier:       notifier,
		sched:          scheduler.NewKeyedScheduler(logger.Module("scheduler")),
		speakerRooms:   syncutil.NewMap[string, string](),
		flushInterval:  cfg.FlushInterval,
		flushThreshold: cfg.FlushThreshold,
		minFlushBytes:  cfg.MinFlushBytes,
		logger:         logger,
	}
}

// Run consumes flush deadlines until ctx is done. Each due speaker is
// flushed on its own goroutine so one stalled pipeline call cannot delay
// other speakers.
func (c *Coordinator) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case speakerID, ok := <-c.sched.Chan():
			if !ok {
				return
			}
			go c.flush(ctx, speakerID)
		}
	}
}

func (c *Coordinator) Shutdown() {
	c.sched.Shutdown()
}

// Ingest appends a chunk to the speaker's buffer and arms its flush
// deadline. Appending is legal mid-dispatch, the chunk lands in the next
// batch.
func (c *Coordinator) Ingest(roomID, participantID string, chunk []byte) error {
	room, err := c.registry.GetRoom(roomID)
	if err != nil {
		return err
	}
	if _, err := room.AppendAudio(participantID, chunk); err != nil {
		return err
	}

	c.speakerRooms.Store(participantID, roomID)
	c.sched.Enqueue(participantID, c.flushInterval)
	return nil
}

// Cancel drops the speaker's pending flush deadline. In-flight pipeline
// results for the speaker are discarded when they land.
func (c *Coordinator) Cancel(participantID string) {
	c.sched.Cancel(participantID)
	c.speakerRooms.Delete(participantID)
}

func (c *Coordinator) flush(ctx context.Context, speakerID string) {
	roomID, ok := c.speakerRooms.Load(speakerID)
	if !ok {
		return
	}
	room, err := c.registry.GetRoom(roomID)
	if err != nil {
		c.speakerRooms.Delete(speakerID)
		return
	}

	buf, ok := room.BeginFlush(speakerID, c.flushThreshold, c.minFlushBytes)
	if !ok {
		// not due yet; keep the deadline armed while audio is pending
		if room.PendingAudio(speakerID) > 0 {
			c.sched.Enqueue(speakerID, c.flushInterval)
		}
		return
	}
	// the buffer must never be stranded in dispatching, whatever the
	// pipeline does
	defer func() {
		room.EndFlush(speakerID)
		if room.PendingAudio(speakerID) > 0 {
			c.sched.Enqueue(speakerID, c.flushInterval)
		}
	}()

	speaker, ok := room.Get(speakerID)
	if !ok {
		return
	}

	transcript, err := c.pipeline.Transcribe(ctx, buf, speaker.SpeakLanguage)
	if err != nil {
		// this batch is lost, the next deadline flushes fresh audio
		c.logger.Warn("transcription failed",
			log.String("room_id", roomID),
			log.String("speaker_id", speakerID),
			log.Error(err))
		return
	}
	if strings.TrimSpace(transcript) == "" {
		return
	}

	// the speaker may have left while the pipeline call was in flight
	if _, ok := room.Get(speakerID); !ok {
		c.logger.Debug("dropped transcript for departed speaker",
			log.String("room_id", roomID),
			log.String("speaker_id", speakerID))
		return
	}

	c.notifier.NotifyParticipant(speakerID, "transcription", &TranscriptionEvent{
		Text:       transcript,
		Language:   speaker.SpeakLanguage,
		IsOriginal: true,
	})

	peer, ok := room.Peer(speakerID)
	if !ok {
		return
	}

	if peer.ListenLanguage == speaker.SpeakLanguage {
		// same language, forward the transcript without a translation call
		c.notifier.NotifyParticipant(peer.ID, "transcription", &TranscriptionEvent{
			Text:       transcript,
			Language:   speaker.SpeakLanguage,
			IsOriginal: false,
		})
		return
	}

	c.translate(ctx, room, speaker, peer, transcript)
}

func (c *Coordinator) translate(
	ctx context.Context,
	room *rooms.Room,
	speaker, peer rooms.ParticipantInfo,
	transcript string,
) {
	translated, err := c.pipeline.Translate(ctx, transcript, speaker.SpeakLanguage, peer.ListenLanguage)
	if err != nil {
		c.logger.Warn("translation failed",
			log.String("room_id", room.ID),
			log.String("speaker_id", speaker.ID),
			log.Error(err))
		return
	}

	var audio []byte
	if audio, err = c.pipeline.Synthesize(ctx, translated, peer.ListenLanguage); err != nil {
		// audio-out is optional, the text result still goes through
		c.logger.Warn("synthesis failed",
			log.String("room_id", room.ID),
			log.Error(err))
		audio = nil
	}

	// both parties may be gone by now; stale results are dropped
	if _, ok := room.Get(peer.ID); !ok {
		c.logger.Debug("dropped translation for departed listener",
			log.String("room_id", room.ID),
			log.String("listener_id", peer.ID))
		return
	}

	c.notifier.NotifyParticipant(peer.ID, "translation", &TranslationEvent{
		OriginalText:   transcript,
		TranslatedText: translated,
		FromLanguage:   speaker.SpeakLanguage,
		ToLanguage:     peer.ListenLanguage,
		Audio:          audio,
	})
	c.notifier.NotifyParticipant(speaker.ID, "translation-sent", &TranslationSentEvent{
		OriginalText:   transcript,
		TranslatedText: translated,
		ToLanguage:     peer.ListenLanguage,
	})
}
