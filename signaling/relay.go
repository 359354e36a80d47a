package signaling

import (
	"context"
	"encoding/json"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/errors"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/log"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/rooms"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/sfu"
)

const (
	ErrWrongStrategy errors.Code = "wrong_strategy"
	ErrPeerGone      errors.Code = "peer_gone"
)

// relay kinds accepted on p2p rooms
const (
	KindOffer        = "offer"
	KindAnswer       = "answer"
	KindIceCandidate = "icecandidate"
)

func ValidRelayKind(kind string) bool {
	return kind == KindOffer || kind == KindAnswer || kind == KindIceCandidate
}

// Relay is the handshake strategy bound to a room at creation: direct
// peer signaling or SFU-mediated transports. Methods outside a strategy's
// shape fail with ErrWrongStrategy.
type Relay interface {
	Strategy() rooms.Strategy

	// Forward passes an offer/answer/ice-candidate payload verbatim to the
	// other seat, tagged with the sender id (p2p only).
	Forward(ctx context.Context, room *rooms.Room, senderID, kind string, payload json.RawMessage) error

	// SFU-mediated operations (sfu only).
	RouterRtpCapabilities(ctx context.Context, room *rooms.Room) (json.RawMessage, error)
	CreateTransport(ctx context.Context, room *rooms.Room, participantID string, direction rooms.Direction) (*sfu.TransportInfo, error)
	ConnectTransport(ctx context.Context, room *rooms.Room, participantID, transportID string, dtlsParameters json.RawMessage) error
	Produce(ctx context.Context, room *rooms.Room, participantID, transportID, kind string, rtpParameters json.RawMessage) (string, error)
	Consume(ctx context.Context, room *rooms.Room, participantID, transportID, producerID string, rtpCapabilities json.RawMessage) (*sfu.ConsumerInfo, error)

	// ReleaseParticipant closes every handle the departed participant
	// owned. ReleaseRoom drops room-scoped media state once the room is
	// removed from the registry.
	ReleaseParticipant(ctx context.Context, handles *rooms.Handles)
	ReleaseRoom(ctx context.Context, roomID string)
}

// p2pRelay forwards signaling payloads between the two seats without
// inspecting them.
type p2pRelay struct {
	notifier Notifier
	logger   *log.Logger
}

func NewP2PRelay(notifier Notifier, logger *log.Logger) Relay {
	return &p2pRelay{
		notifier: notifier,
		logger:   logger.Module("relay_p2p"),
	}
}

func (r *p2pRelay) Strategy() rooms.Strategy {
	return rooms.StrategyP2P
}

type relayPayload struct {
	From    string          `json:"from"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

func (r *p2pRelay) Forward(_ context.Context, room *rooms.Room, senderID, kind string, payload json.RawMessage) error {
	peer, ok := room.Peer(senderID)
	if !ok {
		// peer already left, stale signaling is dropped
		r.logger.Debug("dropped relay, no peer in room",
			log.String("room_id", room.ID),
			log.String("sender_id", senderID),
			log.String("kind", kind))
		return nil
	}

	r.notifier.NotifyParticipant(peer.ID, kind, &relayPayload{
		From:    senderID,
		Kind:    kind,
		Payload: payload,
	})
	return nil
}

func (r *p2pRelay) RouterRtpCapabilities(context.Context, *rooms.Room) (json.RawMessage, error) {
	return nil, errors.New(ErrWrongStrategy, "not an sfu room")
}

func (r *p2pRelay) CreateTransport(context.Context, *rooms.Room, string, rooms.Direction) (*sfu.TransportInfo, error) {
	return nil, errors.New(ErrWrongStrategy, "not an sfu room")
}

func (r *p2pRelay) ConnectTransport(context.Context, *rooms.Room, string, string, json.RawMessage) error {
	return errors.New(ErrWrongStrategy, "not an sfu room")
}

func (r *p2pRelay) Produce(context.Context, *rooms.Room, string, string, string, json.RawMessage) (string, error) {
	return "", errors.New(ErrWrongStrategy, "not an sfu room")
}

func (r *p2pRelay) Consume(context.Context, *rooms.Room, string, string, string, json.RawMessage) (*sfu.ConsumerInfo, error) {
	return nil, errors.New(ErrWrongStrategy, "not an sfu room")
}

func (r *p2pRelay) ReleaseParticipant(context.Context, *rooms.Handles) {}

func (r *p2pRelay) ReleaseRoom(context.Context, string) {}

// sfuRelay brokers transports/producers/consumers against the external
// SFU, recording handles on the owning participant.
type sfuRelay struct {
	api      sfu.API
	routers  sfu.RouterProvider
	notifier Notifier
	logger   *log.Logger
}

func NewSFURelay(api sfu.API, routers sfu.RouterProvider, notifier Notifier, logger *log.Logger) Relay {
	return &sfuRelay{
		api:      api,
		routers:  routers,
		notifier: notifier,
		logger:   logger.Module("relay_sfu"),
	}
}

func (r *sfuRelay) Strategy() rooms.Strategy {
	return rooms.StrategySFU
}

func (r *sfuRelay) Forward(_ context.Context, room *rooms.Room, senderID, kind string, _ json.RawMessage) error {
	r.logger.Debug("dropped p2p relay on sfu room",
		log.String("room_id", room.ID),
		log.String("sender_id", senderID),
		log.String("kind", kind))
	return errors.New(ErrWrongStrategy, "not a p2p room")
}

func (r *sfuRelay) RouterRtpCapabilities(ctx context.Context, room *rooms.Room) (json.RawMessage, error) {
	routerID, err := r.routers.RouterForRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	return r.api.RouterRtpCapabilities(ctx, routerID)
}

func (r *sfuRelay) CreateTransport(ctx context.Context, room *rooms.Room, participantID string, direction rooms.Direction) (*sfu.TransportInfo, error) {
	routerID, err := r.routers.RouterForRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	info, err := r.api.CreateTransport(ctx, routerID, direction)
	if err != nil {
		return nil, err
	}

	if err := room.SetTransport(participantID, direction, info.TransportID); err != nil {
		// participant left between the call and the bookkeeping
		if closeErr := r.api.CloseTransport(ctx, info.TransportID); closeErr != nil {
			r.logger.Warn("failed to close orphaned transport",
				log.String("transport_id", info.TransportID),
				log.Error(closeErr))
		}
		return nil, err
	}
	return info, nil
}

func (r *sfuRelay) ConnectTransport(ctx context.Context, room *rooms.Room, participantID, transportID string, dtlsParameters json.RawMessage) error {
	if !room.OwnsTransport(participantID, transportID) {
		return errors.Newf(ErrPeerGone, "transport %s not owned by participant", transportID)
	}
	return r.api.ConnectTransport(ctx, transportID, dtlsParameters)
}

func (r *sfuRelay) Produce(ctx context.Context, room *rooms.Room, participantID, transportID, kind string, rtpParameters json.RawMessage) (string, error) {
	if !room.OwnsTransport(participantID, transportID) {
		return "", errors.Newf(ErrPeerGone, "transport %s not owned by participant", transportID)
	}

	producerID, err := r.api.Produce(ctx, transportID, kind, rtpParameters)
	if err != nil {
		return "", err
	}

	if err := room.AddProducer(participantID, producerID); err != nil {
		if closeErr := r.api.CloseProducer(ctx, producerID); closeErr != nil {
			r.logger.Warn("failed to close orphaned producer",
				log.String("producer_id", producerID),
				log.Error(closeErr))
		}
		return "", err
	}

	if peer, ok := room.Peer(participantID); ok {
		r.notifier.NotifyParticipant(peer.ID, "new-producer", map[string]string{
			"producerId":    producerID,
			"participantId": participantID,
			"kind":          kind,
		})
	}
	return producerID, nil
}

func (r *sfuRelay) Consume(ctx context.Context, room *rooms.Room, participantID, transportID, producerID string, rtpCapabilities json.RawMessage) (*sfu.ConsumerInfo, error) {
	if !room.OwnsTransport(participantID, transportID) {
		return nil, errors.Newf(ErrPeerGone, "transport %s not owned by participant", transportID)
	}

	routerID, err := r.routers.RouterForRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	ok, err := r.api.CanConsume(ctx, routerID, producerID, rtpCapabilities)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Newf(ErrPeerGone, "producer %s cannot be consumed", producerID)
	}

	info, err := r.api.Consume(ctx, transportID, producerID, rtpCapabilities)
	if err != nil {
		return nil, err
	}

	if err := room.AddConsumer(participantID, info.ConsumerID); err != nil {
		if closeErr := r.api.CloseConsumer(ctx, info.ConsumerID); closeErr != nil {
			r.logger.Warn("failed to close orphaned consumer",
				log.String("consumer_id", info.ConsumerID),
				log.Error(closeErr))
		}
		return nil, err
	}
	return info, nil
}

func (r *sfuRelay) ReleaseParticipant(ctx context.Context, handles *rooms.Handles) {
	for _, id := range handles.Consumers {
		if err := r.api.CloseConsumer(ctx, id); err != nil {
			r.logger.Warn("failed to close consumer", log.String("consumer_id", id), log.Error(err))
		}
	}
	for _, id := range handles.Producers {
		if err := r.api.CloseProducer(ctx, id); err != nil {
			r.logger.Warn("failed to close producer", log.String("producer_id", id), log.Error(err))
		}
	}
	for _, id := range handles.Transports {
		if err := r.api.CloseTransport(ctx, id); err != nil {
			r.logger.Warn("failed to close transport", log.String("transport_id", id), log.Error(err))
		}
	}
}

func (r *sfuRelay) ReleaseRoom(ctx context.Context, roomID string) {
	r.routers.ReleaseRoom(ctx, roomID)
}
