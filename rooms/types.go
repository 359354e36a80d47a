package rooms

import (
	"fmt"
	"time"
)

// Strategy selects how the two seats of a room negotiate media: direct
// peer signaling or SFU-mediated transports. It is fixed at room creation.
type Strategy string

const (
	StrategyP2P Strategy = "p2p"
	StrategySFU Strategy = "sfu"
)

func (s Strategy) Valid() bool {
	return s == StrategyP2P || s == StrategySFU
}

// Role of a participant within a room. The first accepted join is the
// initiator.
type Role string

const (
	RoleInitiator Role = "initiator"
	RoleJoiner    Role = "joiner"
)

// Direction of an SFU transport owned by a participant.
type Direction string

const (
	DirectionSend Direction = "send"
	DirectionRecv Direction = "recv"
)

func (d Direction) Valid() bool {
	return d == DirectionSend || d == DirectionRecv
}

const MaxSeats = 2

// JoinResult is returned on an accepted join.
type JoinResult struct {
	Role      Role   `json:"role"`
	SeatCount int    `json:"seatCount"`
	RoomID    string `json:"roomId"`
}

// ParticipantInfo is the read-only view handed to notifications.
type ParticipantInfo struct {
	ID             string `json:"id"`
	Role           Role   `json:"role"`
	SpeakLanguage  string `json:"speakLanguage"`
	ListenLanguage string `json:"listenLanguage"`
}

// Stats is the registry-wide counters for the admin surface.
type Stats struct {
	Rooms        int `json:"rooms"`
	Participants int `json:"participants"`
}

// Handles is a snapshot of every SFU handle a participant owns, taken when
// the participant is removed so release calls can run outside room locks.
type Handles struct {
	Transports []string
	Producers  []string
	Consumers  []string
}

type RoomFullError struct {
	RoomID string
}

func (e *RoomFullError) Error() string {
	return fmt.Sprintf("room %s is full", e.RoomID)
}

type RoomNotFoundError struct {
	RoomID string
}

func (e *RoomNotFoundError) Error() string {
	return fmt.Sprintf("room %s not found", e.RoomID)
}

type ParticipantExistsError struct {
	RoomID        string
	ParticipantID string
}

func (e *ParticipantExistsError) Error() string {
	return fmt.Sprintf("participant %s already joined room %s", e.ParticipantID, e.RoomID)
}

type ParticipantNotFoundError struct {
	RoomID        string
	ParticipantID string
}

func (e *ParticipantNotFoundError) Error() string {
	return fmt.Sprintf("participant %s not found in room %s", e.ParticipantID, e.RoomID)
}

// Clock narrows clockwork for what the room model needs.
type Clock interface {
	Now() time.Time
}
