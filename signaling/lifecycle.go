package signaling

import (
	"context"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/log"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/rooms"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/rooms/store"
)

// Lifecycle tears down a participant's state on leave or disconnect:
// handles released, flush deadline cancelled, peer notified, and the room
// removed from the registry in the same operation when it empties.
type Lifecycle struct {
	registry    store.Registry
	relays      map[rooms.Strategy]Relay
	coordinator *Coordinator
	connMgr     *ConnManager
	logger      *log.Logger
}

func NewLifecycle(
	registry store.Registry,
	relays map[rooms.Strategy]Relay,
	coordinator *Coordinator,
	connMgr *ConnManager,
	logger *log.Logger,
) *Lifecycle {
	return &Lifecycle{
		registry:    registry,
		relays:      relays,
		coordinator: coordinator,
		connMgr:     connMgr,
		logger:      logger.Module("lifecycle"),
	}
}

// Leave removes the participant from its room. Safe to call when the
// participant never joined or already left.
func (l *Lifecycle) Leave(ctx context.Context, roomID, participantID string) {
	if roomID == "" {
		return
	}

	room, err := l.registry.GetRoom(roomID)
	if err != nil {
		return
	}

	handles, seats, err := room.Remove(participantID)
	if err != nil {
		return
	}

	l.coordinator.Cancel(participantID)
	l.connMgr.Unbind(participantID, roomID)

	relay := l.relays[room.Strategy]
	if relay != nil {
		// close calls run outside the room lock
		relay.ReleaseParticipant(ctx, handles)
	}

	if seats == 0 {
		if l.registry.RemoveRoomIfEmpty(roomID) && relay != nil {
			relay.ReleaseRoom(ctx, roomID)
		}
	} else {
		l.connMgr.NotifyRoom(roomID, "participant-left", &ParticipantLeftEvent{
			ParticipantID: participantID,
			SeatCount:     seats,
		})
	}

	l.logger.Info("participant left",
		log.String("room_id", roomID),
		log.String("participant_id", participantID),
		log.Int("seats", seats))
}
