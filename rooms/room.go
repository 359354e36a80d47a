package rooms

import (
	"sync"
	"time"
)

// Participant is one connected endpoint within a room. All fields are
// guarded by the owning room's lock.
type Participant struct {
	ID             string
	Role           Role
	SpeakLanguage  string
	ListenLanguage string

	transports map[Direction]string
	producers  map[string]struct{}
	consumers  map[string]struct{}

	// audio accumulator, flushed by the pipeline coordinator
	audioChunks [][]byte
	audioSize   int
	lastFlush   time.Time
	dispatching bool
}

func (p *Participant) Info() ParticipantInfo {
	return ParticipantInfo{
		ID:             p.ID,
		Role:           p.Role,
		SpeakLanguage:  p.SpeakLanguage,
		ListenLanguage: p.ListenLanguage,
	}
}

// Room is a 2-seat session. Each room is its own lock domain; operations on
// different rooms never contend.
type Room struct {
	ID        string
	Strategy  Strategy
	CreatedAt time.Time

	mu           sync.Mutex
	participants map[string]*Participant
	closed       bool
	clock        Clock
}

func NewRoom(id string, strategy Strategy, clock Clock) *Room {
	return &Room{
		ID:           id,
		Strategy:     strategy,
		CreatedAt:    clock.Now(),
		participants: map[string]*Participant{},
		clock:        clock,
	}
}

// Join admits a participant. Rejections (full room, duplicate id, closed
// room) never mutate state.
func (r *Room) Join(participantID, speakLanguage, listenLanguage string) (*JoinResult, []ParticipantInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, nil, &RoomNotFoundError{RoomID: r.ID}
	}
	if _, ok := r.participants[participantID]; ok {
		return nil, nil, &ParticipantExistsError{RoomID: r.ID, ParticipantID: participantID}
	}
	if len(r.participants) >= MaxSeats {
		return nil, nil, &RoomFullError{RoomID: r.ID}
	}

	role := RoleJoiner
	if len(r.participants) == 0 {
		role = RoleInitiator
	}

	peers := r.peerInfosLocked(participantID)

	r.participants[participantID] = &Participant{
		ID:             participantID,
		Role:           role,
		SpeakLanguage:  speakLanguage,
		ListenLanguage: listenLanguage,
		transports:     map[Direction]string{},
		producers:      map[string]struct{}{},
		consumers:      map[string]struct{}{},
		lastFlush:      r.clock.Now(),
	}

	return &JoinResult{
		Role:      role,
		SeatCount: len(r.participants),
		RoomID:    r.ID,
	}, peers, nil
}

// Remove evicts a participant and returns a snapshot of the handles it
// owned plus the remaining seat count.
func (r *Room) Remove(participantID string) (*Handles, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[participantID]
	if !ok {
		return nil, len(r.participants), &ParticipantNotFoundError{RoomID: r.ID, ParticipantID: participantID}
	}

	handles := &Handles{}
	for _, id := range p.transports {
		handles.Transports = append(handles.Transports, id)
	}
	for id := range p.producers {
		handles.Producers = append(handles.Producers, id)
	}
	for id := range p.consumers {
		handles.Consumers = append(handles.Consumers, id)
	}

	delete(r.participants, participantID)
	return handles, len(r.participants), nil
}

// Peer returns the other seat's participant info.
func (r *Room) Peer(participantID string) (ParticipantInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.participants {
		if id != participantID {
			return p.Info(), true
		}
	}
	return ParticipantInfo{}, false
}

// Get returns a participant's info.
func (r *Room) Get(participantID string) (ParticipantInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[participantID]
	if !ok {
		return ParticipantInfo{}, false
	}
	return p.Info(), true
}

func (r *Room) Seats() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.participants)
}

func (r *Room) Infos() []ParticipantInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.peerInfosLocked("")
}

func (r *Room) peerInfosLocked(exclude string) []ParticipantInfo {
	infos := make([]ParticipantInfo, 0, len(r.participants))
	for id, p := range r.participants {
		if id != exclude {
			infos = append(infos, p.Info())
		}
	}
	return infos
}

// CloseIfEmpty marks the room closed when no seats are taken, so a stale
// reference can no longer admit participants. Returns true when closed.
func (r *Room) CloseIfEmpty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.participants) > 0 {
		return false
	}
	r.closed = true
	return true
}

// SetTransport records an SFU transport handle under the participant.
func (r *Room) SetTransport(participantID string, direction Direction, transportID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[participantID]
	if !ok {
		return &ParticipantNotFoundError{RoomID: r.ID, ParticipantID: participantID}
	}
	p.transports[direction] = transportID
	return nil
}

// OwnsTransport reports whether the participant owns the transport handle.
func (r *Room) OwnsTransport(participantID, transportID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[participantID]
	if !ok {
		return false
	}
	for _, id := range p.transports {
		if id == transportID {
			return true
		}
	}
	return false
}

// AddProducer records a producer handle under the participant.
func (r *Room) AddProducer(participantID, producerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[participantID]
	if !ok {
		return &ParticipantNotFoundError{RoomID: r.ID, ParticipantID: participantID}
	}
	p.producers[producerID] = struct{}{}
	return nil
}

// AddConsumer records a consumer handle under the participant.
func (r *Room) AddConsumer(participantID, consumerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[participantID]
	if !ok {
		return &ParticipantNotFoundError{RoomID: r.ID, ParticipantID: participantID}
	}
	p.consumers[consumerID] = struct{}{}
	return nil
}

// AppendAudio adds a chunk to the participant's buffer. Appending is legal
// in every buffer state, ingestion never waits on a dispatch.
func (r *Room) AppendAudio(participantID string, chunk []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[participantID]
	if !ok {
		return 0, &ParticipantNotFoundError{RoomID: r.ID, ParticipantID: participantID}
	}
	p.audioChunks = append(p.audioChunks, chunk)
	p.audioSize += len(chunk)
	return p.audioSize, nil
}

// BeginFlush snapshots and clears the buffer when a flush is due: not
// already dispatching, elapsed since last flush over threshold, and
// accumulated size over the minimum. The dispatching flag stays set until
// EndFlush, which enforces single-flight per speaker.
func (r *Room) BeginFlush(participantID string, threshold time.Duration, minSize int) ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[participantID]
	if !ok {
		return nil, false
	}
	if p.dispatching {
		return nil, false
	}
	if r.clock.Now().Sub(p.lastFlush) <= threshold || p.audioSize <= minSize {
		return nil, false
	}

	buf := make([]byte, 0, p.audioSize)
	for _, chunk := range p.audioChunks {
		buf = append(buf, chunk...)
	}
	p.audioChunks = nil
	p.audioSize = 0
	p.lastFlush = r.clock.Now()
	p.dispatching = true
	return buf, true
}

// EndFlush returns the participant's buffer to idle. Safe to call after
// the participant left.
func (r *Room) EndFlush(participantID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.participants[participantID]; ok {
		p.dispatching = false
	}
}

// PendingAudio reports the accumulated (unflushed) buffer size.
func (r *Room) PendingAudio(participantID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.participants[participantID]; ok {
		return p.audioSize
	}
	return 0
}
