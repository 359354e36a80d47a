package signaling

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/errors"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/log"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/rooms"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/sfu"
	sfumocks "github.com/vineetsharma9252/Babel-The-Speech-translator/sfu/mocks"
)

type SFURelaySuite struct {
	suite.Suite

	ctrl     *gomock.Controller
	api      *sfumocks.MockAPI
	routers  *sfumocks.MockRouterProvider
	notifier *recordingNotifier
	relay    Relay
	room     *rooms.Room
}

func TestSFURelaySuite(t *testing.T) {
	suite.Run(t, new(SFURelaySuite))
}

func (s *SFURelaySuite) SetupTest() {
	logger := log.NewTest(s.T())
	s.ctrl = gomock.NewController(s.T())
	s.api = sfumocks.NewMockAPI(s.ctrl)
	s.routers = sfumocks.NewMockRouterProvider(s.ctrl)
	s.notifier = &recordingNotifier{}
	s.relay = NewSFURelay(s.api, s.routers, s.notifier, logger)

	s.room = rooms.NewRoom("room-1", rooms.StrategySFU, clockwork.NewFakeClock())
	_, _, err := s.room.Join("alice", "en", "es")
	s.Require().NoError(err)
	_, _, err = s.room.Join("bob", "es", "en")
	s.Require().NoError(err)
}

func (s *SFURelaySuite) TestForwardRejected() {
	err := s.relay.Forward(context.Background(), s.room, "alice", KindOffer, nil)
	s.True(errors.Is(err, ErrWrongStrategy))
}

func (s *SFURelaySuite) TestCreateTransportClosesOrphanWhenOwnerGone() {
	s.routers.EXPECT().RouterForRoom(gomock.Any(), "room-1").Return("router-1", nil)
	s.api.EXPECT().
		CreateTransport(gomock.Any(), "router-1", rooms.DirectionSend).
		DoAndReturn(func(context.Context, string, rooms.Direction) (*sfu.TransportInfo, error) {
			// owner leaves between the bridge call and the bookkeeping
			_, _, err := s.room.Remove("alice")
			s.Require().NoError(err)
			return &sfu.TransportInfo{TransportID: "transport-1"}, nil
		})
	s.api.EXPECT().CloseTransport(gomock.Any(), "transport-1").Return(nil)

	_, err := s.relay.CreateTransport(context.Background(), s.room, "alice", rooms.DirectionSend)
	s.Error(err)
}

func (s *SFURelaySuite) TestConsumeGatedByCanConsume() {
	s.routers.EXPECT().RouterForRoom(gomock.Any(), "room-1").Return("router-1", nil).AnyTimes()
	s.api.EXPECT().
		CreateTransport(gomock.Any(), "router-1", rooms.DirectionRecv).
		Return(&sfu.TransportInfo{TransportID: "transport-1"}, nil)

	_, err := s.relay.CreateTransport(context.Background(), s.room, "bob", rooms.DirectionRecv)
	s.Require().NoError(err)

	caps := json.RawMessage(`{"codecs":[]}`)
	s.api.EXPECT().
		CanConsume(gomock.Any(), "router-1", "producer-1", caps).
		Return(false, nil)

	_, err = s.relay.Consume(context.Background(), s.room, "bob", "transport-1", "producer-1", caps)
	s.Require().Error(err)
	s.True(errors.Is(err, ErrPeerGone))
}

func (s *SFURelaySuite) TestConsumeRecordsHandle() {
	s.routers.EXPECT().RouterForRoom(gomock.Any(), "room-1").Return("router-1", nil).AnyTimes()
	s.api.EXPECT().
		CreateTransport(gomock.Any(), "router-1", rooms.DirectionRecv).
		Return(&sfu.TransportInfo{TransportID: "transport-1"}, nil)

	_, err := s.relay.CreateTransport(context.Background(), s.room, "bob", rooms.DirectionRecv)
	s.Require().NoError(err)

	caps := json.RawMessage(`{"codecs":[]}`)
	s.api.EXPECT().CanConsume(gomock.Any(), "router-1", "producer-1", caps).Return(true, nil)
	s.api.EXPECT().
		Consume(gomock.Any(), "transport-1", "producer-1", caps).
		Return(&sfu.ConsumerInfo{ConsumerID: "consumer-1", ProducerID: "producer-1"}, nil)

	info, err := s.relay.Consume(context.Background(), s.room, "bob", "transport-1", "producer-1", caps)
	s.Require().NoError(err)
	s.Equal("consumer-1", info.ConsumerID)

	handles, _, err := s.room.Remove("bob")
	s.Require().NoError(err)
	s.Equal([]string{"consumer-1"}, handles.Consumers)
	s.Equal([]string{"transport-1"}, handles.Transports)
}

func (s *SFURelaySuite) TestReleaseParticipantClosesAllHandles() {
	gomock.InOrder(
		s.api.EXPECT().CloseConsumer(gomock.Any(), "consumer-1").Return(nil),
		s.api.EXPECT().CloseProducer(gomock.Any(), "producer-1").Return(nil),
		s.api.EXPECT().CloseTransport(gomock.Any(), "transport-1").Return(nil),
		s.api.EXPECT().CloseTransport(gomock.Any(), "transport-2").Return(nil),
	)

	s.relay.ReleaseParticipant(context.Background(), &rooms.Handles{
		Transports: []string{"transport-1", "transport-2"},
		Producers:  []string{"producer-1"},
		Consumers:  []string{"consumer-1"},
	})
}

func (s *SFURelaySuite) TestReleaseParticipantToleratesBridgeErrors() {
	s.api.EXPECT().CloseConsumer(gomock.Any(), "consumer-1").Return(context.DeadlineExceeded)
	s.api.EXPECT().CloseTransport(gomock.Any(), "transport-1").Return(nil)

	s.relay.ReleaseParticipant(context.Background(), &rooms.Handles{
		Transports: []string{"transport-1"},
		Consumers:  []string{"consumer-1"},
	})
}

func (s *SFURelaySuite) TestReleaseRoom() {
	s.routers.EXPECT().ReleaseRoom(gomock.Any(), "room-1")

	s.relay.ReleaseRoom(context.Background(), "room-1")
}

type P2PRelaySuite struct {
	suite.Suite

	notifier *recordingNotifier
	relay    Relay
	room     *rooms.Room
}

func TestP2PRelaySuite(t *testing.T) {
	suite.Run(t, new(P2PRelaySuite))
}

func (s *P2PRelaySuite) SetupTest() {
	s.notifier = &recordingNotifier{}
	s.relay = NewP2PRelay(s.notifier, log.NewTest(s.T()))
	s.room = rooms.NewRoom("room-1", rooms.StrategyP2P, clockwork.NewFakeClock())
	_, _, err := s.room.Join("alice", "en", "es")
	s.Require().NoError(err)
}

func (s *P2PRelaySuite) TestForwardWithoutPeerDropsSilently() {
	err := s.relay.Forward(context.Background(), s.room, "alice", KindOffer, json.RawMessage(`{}`))
	s.NoError(err)
	s.Empty(s.notifier.sent())
}

func (s *P2PRelaySuite) TestForwardTagsSender() {
	_, _, err := s.room.Join("bob", "es", "en")
	s.Require().NoError(err)

	payload := json.RawMessage(`{"candidate":"udp 1"}`)
	s.Require().NoError(s.relay.Forward(context.Background(), s.room, "alice", KindIceCandidate, payload))

	events := s.notifier.byMethod(KindIceCandidate)
	s.Require().Len(events, 1)
	s.Equal("bob", events[0].ParticipantID)
	p := events[0].Params.(*relayPayload)
	s.Equal("alice", p.From)
	s.JSONEq(string(payload), string(p.Payload))
}

func (s *P2PRelaySuite) TestSFUOpsRejected() {
	_, err := s.relay.RouterRtpCapabilities(context.Background(), s.room)
	s.True(errors.Is(err, ErrWrongStrategy))

	_, err = s.relay.CreateTransport(context.Background(), s.room, "alice", rooms.DirectionSend)
	s.True(errors.Is(err, ErrWrongStrategy))
}
