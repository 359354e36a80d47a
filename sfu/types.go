package sfu

import (
	"context"
	"encoding/json"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/rooms"
)

// API is the media-routing capability consumed by the signaling layer. RTP
// and DTLS payloads are opaque, they pass through to the bridge untouched.
type API interface {
	Health(ctx context.Context) error

	CreateRouter(ctx context.Context) (string, error)
	RouterRtpCapabilities(ctx context.Context, routerID string) (json.RawMessage, error)
	CloseRouter(ctx context.Context, routerID string) error

	CreateTransport(ctx context.Context, routerID string, direction rooms.Direction) (*TransportInfo, error)
	ConnectTransport(ctx context.Context, transportID string, dtlsParameters json.RawMessage) error
	CloseTransport(ctx context.Context, transportID string) error

	Produce(ctx context.Context, transportID, kind string, rtpParameters json.RawMessage) (string, error)
	CloseProducer(ctx context.Context, producerID string) error

	Consume(ctx context.Context, transportID, producerID string, rtpCapabilities json.RawMessage) (*ConsumerInfo, error)
	CanConsume(ctx context.Context, routerID, producerID string, rtpCapabilities json.RawMessage) (bool, error)
	CloseConsumer(ctx context.Context, consumerID string) error
}

// RouterProvider hands out the per-room router, creating it on first use.
type RouterProvider interface {
	RouterForRoom(ctx context.Context, roomID string) (string, error)

	// ReleaseRoom drops the room's router once the room is gone.
	ReleaseRoom(ctx context.Context, roomID string)
}

// TransportInfo is what a client needs to connect a WebRTC transport.
type TransportInfo struct {
	TransportID    string          `json:"transportId"`
	IceParameters  json.RawMessage `json:"iceParameters"`
	IceCandidates  json.RawMessage `json:"iceCandidates"`
	DtlsParameters json.RawMessage `json:"dtlsParameters"`
}

// ConsumerInfo is what a client needs to start consuming a producer.
type ConsumerInfo struct {
	ConsumerID    string          `json:"consumerId"`
	ProducerID    string          `json:"producerId"`
	Kind          string          `json:"kind"`
	RtpParameters json.RawMessage `json:"rtpParameters"`
}
