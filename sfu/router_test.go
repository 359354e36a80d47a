package sfu

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/log"
)

// stubAPI counts router calls; the full API mock lives in sfu/mocks for
// consumers outside this package.
type stubAPI struct {
	API
	mu         sync.Mutex
	created    int
	closed     []string
	createErr  error
	nextRouter string
}

func (s *stubAPI) CreateRouter(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return "", s.createErr
	}
	s.created++
	return s.nextRouter, nil
}

func (s *stubAPI) CloseRouter(_ context.Context, routerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = append(s.closed, routerID)
	return nil
}

type RouterProviderSuite struct {
	suite.Suite
	api      *stubAPI
	provider RouterProvider
}

func TestRouterProviderSuite(t *testing.T) {
	suite.Run(t, new(RouterProviderSuite))
}

func (s *RouterProviderSuite) SetupTest() {
	s.api = &stubAPI{nextRouter: "router-1"}
	provider, err := NewRouterProvider(s.api, 16, log.NewTest(s.T()))
	s.Require().NoError(err)
	s.provider = provider
}

func (s *RouterProviderSuite) TestRouterCreatedOncePerRoom() {
	ctx := context.Background()
	first, err := s.provider.RouterForRoom(ctx, "r1")
	s.Require().NoError(err)
	s.Equal("router-1", first)

	again, err := s.provider.RouterForRoom(ctx, "r1")
	s.Require().NoError(err)
	s.Equal(first, again)
	s.Equal(1, s.api.created)
}

func (s *RouterProviderSuite) TestConcurrentCallsShareOneCreation() {
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			routerID, err := s.provider.RouterForRoom(ctx, "r1")
			s.NoError(err)
			s.Equal("router-1", routerID)
		}()
	}
	wg.Wait()
	s.Equal(1, s.api.created)
}

func (s *RouterProviderSuite) TestCreateErrorNotCached() {
	ctx := context.Background()
	s.api.createErr = errors.New("bridge down")
	_, err := s.provider.RouterForRoom(ctx, "r1")
	s.Require().Error(err)

	s.api.createErr = nil
	routerID, err := s.provider.RouterForRoom(ctx, "r1")
	s.Require().NoError(err)
	s.Equal("router-1", routerID)
}

func (s *RouterProviderSuite) TestReleaseRoomClosesRouter() {
	ctx := context.Background()
	_, err := s.provider.RouterForRoom(ctx, "r1")
	s.Require().NoError(err)

	s.provider.ReleaseRoom(ctx, "r1")
	s.Equal([]string{"router-1"}, s.api.closed)

	// released room gets a fresh router next time
	s.api.nextRouter = "router-2"
	routerID, err := s.provider.RouterForRoom(ctx, "r1")
	s.Require().NoError(err)
	s.Equal("router-2", routerID)
}

func (s *RouterProviderSuite) TestReleaseUnknownRoomIsNoop() {
	s.provider.ReleaseRoom(context.Background(), "missing")
	s.Empty(s.api.closed)
}
