package store

import (
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/log"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/rooms"
)

// Registry is the only process-wide mutable structure: room-id → Room.
// Rooms themselves are independent lock domains; the registry lock is held
// only for map bookkeeping, never across room operations.
type Registry interface {
	// CreateOrGetRoom is idempotent; concurrent calls for the same unseen
	// id all receive the same room. The strategy binds on creation only.
	CreateOrGetRoom(roomID string, strategy rooms.Strategy) (*rooms.Room, bool)

	GetRoom(roomID string) (*rooms.Room, error)

	// RemoveRoomIfEmpty drops the room when no seats are taken. The removed
	// room is marked closed first, so a concurrent join on a stale
	// reference is rejected instead of landing in an orphaned room.
	RemoveRoomIfEmpty(roomID string) bool

	Stats() rooms.Stats
}

type registryImpl struct {
	mu     sync.Mutex
	byID   map[string]*rooms.Room
	clock  clockwork.Clock
	logger *log.Logger
}

func NewRegistry(logger *log.Logger) Registry {
	return newRegistry(clockwork.NewRealClock(), logger)
}

func newRegistry(clock clockwork.Clock, logger *log.Logger) *registryImpl {
	return &registryImpl{
		byID:   map[string]*rooms.Room{},
		clock:  clock,
		logger: logger.Module("registry"),
	}
}

func (r *registryImpl) CreateOrGetRoom(roomID string, strategy rooms.Strategy) (*rooms.Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if room, ok := r.byID[roomID]; ok {
		return room, false
	}

	room := rooms.NewRoom(roomID, strategy, r.clock)
	r.byID[roomID] = room
	r.logger.Info("room created",
		log.String("room_id", roomID),
		log.String("strategy", string(strategy)))
	return room, true
}

func (r *registryImpl) GetRoom(roomID string) (*rooms.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.byID[roomID]
	if !ok {
		return nil, &rooms.RoomNotFoundError{RoomID: roomID}
	}
	return room, nil
}

func (r *registryImpl) RemoveRoomIfEmpty(roomID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.byID[roomID]
	if !ok {
		return false
	}
	if !room.CloseIfEmpty() {
		return false
	}
	delete(r.byID, roomID)
	r.logger.Info("room removed", log.String("room_id", roomID))
	return true
}

func (r *registryImpl) Stats() rooms.Stats {
	r.mu.Lock()
	rs := make([]*rooms.Room, 0, len(r.byID))
	for _, room := range r.byID {
		rs = append(rs, room)
	}
	r.mu.Unlock()

	stats := rooms.Stats{Rooms: len(rs)}
	for _, room := range rs {
		stats.Participants += room.Seats()
	}
	return stats
}
