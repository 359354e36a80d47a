package signaling

import (
	"context"
	"sync"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/jsonrpc"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/log"
)

// Notifier pushes server-side notifications. A missing target means the
// participant already left; such pushes are logged and dropped, stale
// signaling is expected rather than exceptional.
type Notifier interface {
	NotifyParticipant(participantID, method string, params any)
	NotifyRoomExcept(roomID, exceptID, method string, params any)
	NotifyRoom(roomID, method string, params any)
}

// ConnManager tracks live connections and their room membership.
type ConnManager struct {
	mu      sync.RWMutex
	clients map[string]jsonrpc.Conn[callContext] // participantID -> conn
	members map[string]map[string]struct{}       // roomID -> participant set
	logger  *log.Logger
}

func NewConnManager(logger *log.Logger) *ConnManager {
	return &ConnManager{
		clients: map[string]jsonrpc.Conn[callContext]{},
		members: map[string]map[string]struct{}{},
		logger:  logger.Module("conn_manager"),
	}
}

func (m *ConnManager) Add(participantID string, conn jsonrpc.Conn[callContext]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[participantID] = conn
}

// Bind records room membership after a successful join.
func (m *ConnManager) Bind(participantID, roomID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	members, ok := m.members[roomID]
	if !ok {
		members = map[string]struct{}{}
		m.members[roomID] = members
	}
	members[participantID] = struct{}{}
}

// Unbind drops room membership, keeping the connection itself.
func (m *ConnManager) Unbind(participantID, roomID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unbindLocked(participantID, roomID)
}

func (m *ConnManager) Remove(participantID, roomID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.clients, participantID)
	if roomID != "" {
		m.unbindLocked(participantID, roomID)
	}
}

func (m *ConnManager) unbindLocked(participantID, roomID string) {
	members, ok := m.members[roomID]
	if !ok {
		return
	}
	delete(members, participantID)
	if len(members) == 0 {
		delete(m.members, roomID)
	}
}

func (m *ConnManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *ConnManager) NotifyParticipant(participantID, method string, params any) {
	m.mu.RLock()
	conn, ok := m.clients[participantID]
	m.mu.RUnlock()

	if !ok {
		m.logger.Debug("dropped notify for departed participant",
			log.String("participant_id", participantID),
			log.String("method", method))
		return
	}
	m.send(conn, participantID, method, params)
}

func (m *ConnManager) NotifyRoomExcept(roomID, exceptID, method string, params any) {
	for _, target := range m.roomConns(roomID, exceptID) {
		m.send(target.conn, target.id, method, params)
	}
}

func (m *ConnManager) NotifyRoom(roomID, method string, params any) {
	m.NotifyRoomExcept(roomID, "", method, params)
}

type roomConn struct {
	id   string
	conn jsonrpc.Conn[callContext]
}

func (m *ConnManager) roomConns(roomID, exceptID string) []roomConn {
	m.mu.RLock()
	defer m.mu.RUnlock()

	conns := make([]roomConn, 0, len(m.members[roomID]))
	for id := range m.members[roomID] {
		if id == exceptID {
			continue
		}
		if conn, ok := m.clients[id]; ok {
			conns = append(conns, roomConn{id: id, conn: conn})
		}
	}
	return conns
}

func (m *ConnManager) send(conn jsonrpc.Conn[callContext], participantID, method string, params any) {
	if err := conn.Notify(context.Background(), method, params); err != nil {
		m.logger.Debug("dropped notify, connection unavailable",
			log.String("participant_id", participantID),
			log.String("method", method),
			log.Error(err))
	}
}
