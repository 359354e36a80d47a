package sfu

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/errors"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/log"
)

// routerProviderImpl caches the room → router binding. Creation is
// single-flight so concurrent joins to a fresh room share one bridge call.
type routerProviderImpl struct {
	api     API
	routers *lru.Cache[string, string]
	sf      singleflight.Group
	logger  *log.Logger
}

func NewRouterProvider(api API, cacheSize int, logger *log.Logger) (RouterProvider, error) {
	routers, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPayload, err, "failed to create router cache")
	}
	return &routerProviderImpl{
		api:     api,
		routers: routers,
		logger:  logger.Module("router_provider"),
	}, nil
}

func (rp *routerProviderImpl) RouterForRoom(ctx context.Context, roomID string) (string, error) {
	if routerID, ok := rp.routers.Get(roomID); ok {
		return routerID, nil
	}

	result, err, _ := rp.sf.Do(roomID, func() (any, error) {
		if routerID, ok := rp.routers.Get(roomID); ok {
			return routerID, nil
		}

		routerID, err := rp.api.CreateRouter(ctx)
		if err != nil {
			return "", err
		}
		rp.routers.Add(roomID, routerID)

		rp.logger.Info("router created",
			log.String("room_id", roomID),
			log.String("router_id", routerID))
		return routerID, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (rp *routerProviderImpl) ReleaseRoom(ctx context.Context, roomID string) {
	routerID, ok := rp.routers.Get(roomID)
	if !ok {
		return
	}
	rp.routers.Remove(roomID)

	if err := rp.api.CloseRouter(ctx, routerID); err != nil {
		rp.logger.Warn("failed to close router",
			log.String("room_id", roomID),
			log.String("router_id", routerID),
			log.Error(err))
	}
}
