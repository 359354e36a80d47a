package signaling

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/errors"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/jsonrpc"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/log"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/rooms"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/rooms/store"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/speech"
)

// Server exposes the signaling surface as JSON-RPC methods over WebSocket.
type Server struct {
	jsonrpc.Handler[callContext]
	registry    store.Registry
	relays      map[rooms.Strategy]Relay
	coordinator *Coordinator
	lifecycle   *Lifecycle
	connMgr     *ConnManager
	pipeline    speech.Pipeline
	logger      *log.Logger
}

func NewServer(
	handler jsonrpc.Handler[callContext],
	registry store.Registry,
	relays map[rooms.Strategy]Relay,
	coordinator *Coordinator,
	lifecycle *Lifecycle,
	connMgr *ConnManager,
	pipeline speech.Pipeline,
	logger *log.Logger,
) *Server {
	s := &Server{
		Handler:     handler,
		registry:    registry,
		relays:      relays,
		coordinator: coordinator,
		lifecycle:   lifecycle,
		connMgr:     connMgr,
		pipeline:    pipeline,
		logger:      logger.Module("signal"),
	}
	s.register()
	return s
}

func (s *Server) register() {
	// fast, in-process methods
	s.Def("relay", s.handleRelay)
	s.Def("sendAudioChunk", s.handleSendAudioChunk)

	// methods that reach external services run off the read loop
	s.DefAsync("join", asyncify(s.handleJoin))
	s.DefAsync("leave", asyncify(s.handleLeave))
	s.DefAsync("getRouterRtpCapabilities", asyncify(s.handleRouterRtpCapabilities))
	s.DefAsync("createTransport", asyncify(s.handleCreateTransport))
	s.DefAsync("connectTransport", asyncify(s.handleConnectTransport))
	s.DefAsync("produce", asyncify(s.handleProduce))
	s.DefAsync("consume", asyncify(s.handleConsume))
	s.DefAsync("translate", asyncify(s.handleTranslate))
}

func asyncify(
	h func(jsonrpc.MethodContext[callContext], *json.RawMessage) (any, error),
) jsonrpc.AsyncMethodHandler[callContext] {
	return func(mctx jsonrpc.MethodContext[callContext], params *json.RawMessage, reply jsonrpc.Reply) {
		reply(h(mctx, params))
	}
}

type joinParams struct {
	RoomID         string `json:"roomId" validate:"omitempty,roomid"`
	SpeakLanguage  string `json:"speakLanguage" validate:"required,language"`
	ListenLanguage string `json:"listenLanguage" validate:"required,language"`
	Strategy       string `json:"strategy" validate:"omitempty,oneof=p2p sfu"`
}

type joinResponse struct {
	RoomID                string          `json:"roomId"`
	Role                  rooms.Role      `json:"role"`
	SeatCount             int             `json:"seatCount"`
	RouterRtpCapabilities json.RawMessage `json:"routerRtpCapabilities,omitempty"`
}

func (s *Server) handleJoin(mctx jsonrpc.MethodContext[callContext], params *json.RawMessage) (any, error) {
	cctx := mctx.Get()
	if cctx.joined {
		return nil, jsonrpc.ErrInvalidRequest("already joined")
	}

	var data joinParams
	if err := jsonrpc.ShouldBindParams(params, &data); err != nil {
		return nil, err
	}

	roomID := data.RoomID
	if roomID == "" {
		roomID = uuid.New().String()
	}
	strategy := rooms.Strategy(data.Strategy)
	if strategy == "" {
		strategy = rooms.StrategyP2P
	}

	res, peers, err := s.joinRoom(roomID, strategy, cctx.participantID, data.SpeakLanguage, data.ListenLanguage)
	if err != nil {
		if _, ok := errors.As[*rooms.RoomFullError](err); ok {
			return nil, jsonrpc.ErrInvalidRequest("room-full")
		}
		if _, ok := errors.As[*rooms.ParticipantExistsError](err); ok {
			return nil, jsonrpc.ErrInvalidRequest("already joined")
		}
		return nil, jsonrpc.ErrInternal("failed to join room")
	}

	cctx.roomID = roomID
	cctx.joined = true
	s.connMgr.Bind(cctx.participantID, roomID)

	for _, peer := range peers {
		s.connMgr.NotifyParticipant(peer.ID, "participant-joined", &ParticipantJoinedEvent{
			ParticipantID:  cctx.participantID,
			Role:           res.Role,
			SpeakLanguage:  data.SpeakLanguage,
			ListenLanguage: data.ListenLanguage,
			SeatCount:      res.SeatCount,
		})
	}

	// the handshake starts for both seats when the second join lands.
	// Notify each seat by participant id: room membership for the first
	// seat may not be bound yet, so a room-wide send could miss it.
	if res.SeatCount == rooms.MaxSeats {
		initiatorID := cctx.participantID
		if res.Role != rooms.RoleInitiator && len(peers) > 0 {
			initiatorID = peers[0].ID
		}
		evt := &StartHandshakeEvent{
			RoomID:      roomID,
			InitiatorID: initiatorID,
		}
		s.connMgr.NotifyParticipant(cctx.participantID, "start-handshake", evt)
		for _, peer := range peers {
			s.connMgr.NotifyParticipant(peer.ID, "start-handshake", evt)
		}
	}

	resp := &joinResponse{
		RoomID:    roomID,
		Role:      res.Role,
		SeatCount: res.SeatCount,
	}
	if strategy == rooms.StrategySFU {
		// best effort: the client can still fetch capabilities explicitly
		if caps, err := s.routerCapabilities(cctx.reqCtx, roomID); err == nil {
			resp.RouterRtpCapabilities = caps
		} else {
			s.logger.Warn("failed to fetch router capabilities on join",
				log.String("room_id", roomID),
				log.Error(err))
		}
	}
	return resp, nil
}

// joinRoom retries when it loses the race against a concurrent empty-room
// removal holding a stale reference.
func (s *Server) joinRoom(
	roomID string,
	strategy rooms.Strategy,
	participantID, speakLanguage, listenLanguage string,
) (*rooms.JoinResult, []rooms.ParticipantInfo, error) {
	for attempt := 0; attempt < 3; attempt++ {
		room, _ := s.registry.CreateOrGetRoom(roomID, strategy)
		res, peers, err := room.Join(participantID, speakLanguage, listenLanguage)
		if err == nil {
			return res, peers, nil
		}
		if _, ok := errors.As[*rooms.RoomNotFoundError](err); !ok {
			return nil, nil, err
		}
	}
	return nil, nil, &rooms.RoomNotFoundError{RoomID: roomID}
}

func (s *Server) selfInfo(roomID, participantID string) (rooms.ParticipantInfo, bool) {
	room, err := s.registry.GetRoom(roomID)
	if err != nil {
		return rooms.ParticipantInfo{}, false
	}
	return room.Get(participantID)
}

func (s *Server) handleLeave(mctx jsonrpc.MethodContext[callContext], _ *json.RawMessage) (any, error) {
	cctx := mctx.Get()
	if !cctx.joined {
		return nil, jsonrpc.ErrInvalidRequest("not in a room")
	}

	s.lifecycle.Leave(cctx.reqCtx, cctx.roomID, cctx.participantID)
	cctx.joined = false
	cctx.roomID = ""
	return map[string]bool{"left": true}, nil
}

type relayParams struct {
	Kind    string          `json:"kind" validate:"required"`
	Payload json.RawMessage `json:"payload" validate:"required"`
}

func (s *Server) handleRelay(mctx jsonrpc.MethodContext[callContext], params *json.RawMessage) (any, error) {
	cctx := mctx.Get()
	if !cctx.joined {
		return nil, jsonrpc.ErrInvalidRequest("not in a room")
	}

	var data relayParams
	if err := jsonrpc.ShouldBindParams(params, &data); err != nil {
		return nil, err
	}
	if !ValidRelayKind(data.Kind) {
		return nil, jsonrpc.ErrInvalidParams("unknown relay kind")
	}

	room, relay, err := s.resolve(cctx)
	if err != nil {
		// the room vanished under a stale connection; fire-and-forget
		// relay drops silently
		s.logger.Debug("dropped relay for missing room",
			log.String("room_id", cctx.roomID),
			log.String("participant_id", cctx.participantID))
		return map[string]bool{"relayed": false}, nil
	}

	if err := relay.Forward(cctx.reqCtx, room, cctx.participantID, data.Kind, data.Payload); err != nil {
		if errors.Is(err, ErrWrongStrategy) {
			return nil, jsonrpc.ErrInvalidRequest("room does not use direct signaling")
		}
		return nil, jsonrpc.ErrInternal("relay failed")
	}
	return map[string]bool{"relayed": true}, nil
}

func (s *Server) handleRouterRtpCapabilities(mctx jsonrpc.MethodContext[callContext], _ *json.RawMessage) (any, error) {
	cctx := mctx.Get()
	if !cctx.joined {
		return nil, jsonrpc.ErrInvalidRequest("not in a room")
	}

	caps, err := s.routerCapabilities(cctx.reqCtx, cctx.roomID)
	if err != nil {
		if errors.Is(err, ErrWrongStrategy) {
			return nil, jsonrpc.ErrInvalidRequest("not an sfu room")
		}
		return nil, jsonrpc.ErrInternal("failed to get router capabilities")
	}
	return map[string]json.RawMessage{"rtpCapabilities": caps}, nil
}

func (s *Server) routerCapabilities(ctx context.Context, roomID string) (json.RawMessage, error) {
	room, err := s.registry.GetRoom(roomID)
	if err != nil {
		return nil, err
	}
	relay, ok := s.relays[room.Strategy]
	if !ok {
		return nil, errors.New(ErrWrongStrategy, "no relay for strategy")
	}
	return relay.RouterRtpCapabilities(ctx, room)
}

type createTransportParams struct {
	Direction rooms.Direction `json:"direction" validate:"required,oneof=send recv"`
}

func (s *Server) handleCreateTransport(mctx jsonrpc.MethodContext[callContext], params *json.RawMessage) (any, error) {
	cctx := mctx.Get()
	if !cctx.joined {
		return nil, jsonrpc.ErrInvalidRequest("not in a room")
	}

	var data createTransportParams
	if err := jsonrpc.ShouldBindParams(params, &data); err != nil {
		return nil, err
	}

	room, relay, err := s.resolve(cctx)
	if err != nil {
		return nil, jsonrpc.ErrInvalidRequest("room not found")
	}

	info, err := relay.CreateTransport(cctx.reqCtx, room, cctx.participantID, data.Direction)
	if err != nil {
		return nil, s.mapRelayError(err, "failed to create transport")
	}
	return info, nil
}

type connectTransportParams struct {
	TransportID    string          `json:"transportId" validate:"required"`
	DtlsParameters json.RawMessage `json:"dtlsParameters" validate:"required"`
}

func (s *Server) handleConnectTransport(mctx jsonrpc.MethodContext[callContext], params *json.RawMessage) (any, error) {
	cctx := mctx.Get()
	if !cctx.joined {
		return nil, jsonrpc.ErrInvalidRequest("not in a room")
	}

	var data connectTransportParams
	if err := jsonrpc.ShouldBindParams(params, &data); err != nil {
		return nil, err
	}

	room, relay, err := s.resolve(cctx)
	if err != nil {
		return nil, jsonrpc.ErrInvalidRequest("room not found")
	}

	if err := relay.ConnectTransport(cctx.reqCtx, room, cctx.participantID, data.TransportID, data.DtlsParameters); err != nil {
		return nil, s.mapRelayError(err, "failed to connect transport")
	}
	return map[string]bool{"connected": true}, nil
}

type produceParams struct {
	TransportID   string          `json:"transportId" validate:"required"`
	Kind          string          `json:"kind" validate:"required,oneof=audio video"`
	RtpParameters json.RawMessage `json:"rtpParameters" validate:"required"`
}

func (s *Server) handleProduce(mctx jsonrpc.MethodContext[callContext], params *json.RawMessage) (any, error) {
	cctx := mctx.Get()
	if !cctx.joined {
		return nil, jsonrpc.ErrInvalidRequest("not in a room")
	}

	var data produceParams
	if err := jsonrpc.ShouldBindParams(params, &data); err != nil {
		return nil, err
	}

	room, relay, err := s.resolve(cctx)
	if err != nil {
		return nil, jsonrpc.ErrInvalidRequest("room not found")
	}

	producerID, err := relay.Produce(cctx.reqCtx, room, cctx.participantID, data.TransportID, data.Kind, data.RtpParameters)
	if err != nil {
		return nil, s.mapRelayError(err, "failed to produce")
	}
	return map[string]string{"producerId": producerID}, nil
}

type consumeParams struct {
	TransportID     string          `json:"transportId" validate:"required"`
	ProducerID      string          `json:"producerId" validate:"required"`
	RtpCapabilities json.RawMessage `json:"rtpCapabilities" validate:"required"`
}

func (s *Server) handleConsume(mctx jsonrpc.MethodContext[callContext], params *json.RawMessage) (any, error) {
	cctx := mctx.Get()
	if !cctx.joined {
		return nil, jsonrpc.ErrInvalidRequest("not in a room")
	}

	var data consumeParams
	if err := jsonrpc.ShouldBindParams(params, &data); err != nil {
		return nil, err
	}

	room, relay, err := s.resolve(cctx)
	if err != nil {
		return nil, jsonrpc.ErrInvalidRequest("room not found")
	}

	info, err := relay.Consume(cctx.reqCtx, room, cctx.participantID, data.TransportID, data.ProducerID, data.RtpCapabilities)
	if err != nil {
		return nil, s.mapRelayError(err, "failed to consume")
	}
	return info, nil
}

type sendAudioChunkParams struct {
	Audio string `json:"audio" validate:"required"`
}

func (s *Server) handleSendAudioChunk(mctx jsonrpc.MethodContext[callContext], params *json.RawMessage) (any, error) {
	cctx := mctx.Get()
	if !cctx.joined {
		return nil, jsonrpc.ErrInvalidRequest("not in a room")
	}
	if cctx.limiter != nil && !cctx.limiter.Allow() {
		// over the ingest budget; drop the chunk, keep the session
		return map[string]bool{"accepted": false}, nil
	}

	var data sendAudioChunkParams
	if err := jsonrpc.ShouldBindParams(params, &data); err != nil {
		return nil, err
	}
	chunk, err := base64.StdEncoding.DecodeString(data.Audio)
	if err != nil {
		return nil, jsonrpc.ErrInvalidParams("audio is not valid base64")
	}

	if err := s.coordinator.Ingest(cctx.roomID, cctx.participantID, chunk); err != nil {
		// stale ingest after leaving is dropped, not an error
		s.logger.Debug("dropped audio chunk",
			log.String("room_id", cctx.roomID),
			log.String("participant_id", cctx.participantID),
			log.Error(err))
		return map[string]bool{"accepted": false}, nil
	}
	return map[string]bool{"accepted": true}, nil
}

type translateParams struct {
	Text           string `json:"text" validate:"required"`
	TargetLanguage string `json:"targetLanguage" validate:"required"`
}

func (s *Server) handleTranslate(mctx jsonrpc.MethodContext[callContext], params *json.RawMessage) (any, error) {
	cctx := mctx.Get()
	if !cctx.joined {
		return nil, jsonrpc.ErrInvalidRequest("not in a room")
	}

	var data translateParams
	if err := jsonrpc.ShouldBindParams(params, &data); err != nil {
		return nil, err
	}

	self, ok := s.selfInfo(cctx.roomID, cctx.participantID)
	if !ok {
		return nil, jsonrpc.ErrInvalidRequest("not in a room")
	}

	translated, err := s.pipeline.Translate(cctx.reqCtx, data.Text, self.SpeakLanguage, data.TargetLanguage)
	if err != nil {
		s.logger.Warn("manual translation failed",
			log.String("participant_id", cctx.participantID),
			log.Error(err))
		return nil, jsonrpc.ErrInternal("translation failed")
	}

	s.connMgr.NotifyRoomExcept(cctx.roomID, cctx.participantID, "manual-translation", &ManualTranslationEvent{
		OriginalText:   data.Text,
		TranslatedText: translated,
		FromLanguage:   self.SpeakLanguage,
		ToLanguage:     data.TargetLanguage,
	})

	return map[string]string{
		"original":    data.Text,
		"translation": translated,
	}, nil
}

func (s *Server) resolve(cctx *callContext) (*rooms.Room, Relay, error) {
	room, err := s.registry.GetRoom(cctx.roomID)
	if err != nil {
		return nil, nil, err
	}
	relay, ok := s.relays[room.Strategy]
	if !ok {
		return nil, nil, errors.New(ErrWrongStrategy, "no relay for strategy")
	}
	return room, relay, nil
}

func (s *Server) mapRelayError(err error, fallback string) error {
	switch {
	case errors.Is(err, ErrWrongStrategy):
		return jsonrpc.ErrInvalidRequest("not an sfu room")
	case errors.Is(err, ErrPeerGone):
		return jsonrpc.ErrInvalidRequest(err.Error())
	default:
		return jsonrpc.ErrInternal(fallback)
	}
}
