package sfu

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/errors"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/log"
	"github.com/vineetsharma9252/Babel-The-Speech-translator/rooms"
)

const bridgeTimeout = 10 * time.Second

// apiImpl talks to the mediasoup bridge over its HTTP control surface.
type apiImpl struct {
	client  *resty.Client
	baseURL string
	logger  *log.Logger
}

func New(baseURL string, logger *log.Logger) API {
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(bridgeTimeout)
	return &apiImpl{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.Module("sfu"),
	}
}

func (api *apiImpl) Health(ctx context.Context) error {
	resp, err := api.client.R().
		SetContext(ctx).
		Get(api.baseURL + "/health")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return errors.Newf(ErrBridgeResponse, "bridge health: status %d", resp.StatusCode())
	}
	return nil
}

func (api *apiImpl) CreateRouter(ctx context.Context) (string, error) {
	var out struct {
		RouterID string `json:"routerId"`
	}
	if err := api.post(ctx, "/routers", nil, &out); err != nil {
		return "", err
	}
	if out.RouterID == "" {
		return "", errors.New(ErrInvalidPayload, "create router: missing routerId")
	}
	return out.RouterID, nil
}

func (api *apiImpl) RouterRtpCapabilities(ctx context.Context, routerID string) (json.RawMessage, error) {
	var out struct {
		RtpCapabilities json.RawMessage `json:"rtpCapabilities"`
	}
	path := fmt.Sprintf("/routers/%s/rtp-capabilities", routerID)
	if err := api.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.RtpCapabilities, nil
}

func (api *apiImpl) CloseRouter(ctx context.Context, routerID string) error {
	return api.delete(ctx, "/routers/"+routerID)
}

func (api *apiImpl) CreateTransport(ctx context.Context, routerID string, direction rooms.Direction) (*TransportInfo, error) {
	body := map[string]any{
		"direction": direction,
	}
	var out TransportInfo
	path := fmt.Sprintf("/routers/%s/transports", routerID)
	if err := api.post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	if out.TransportID == "" {
		return nil, errors.New(ErrInvalidPayload, "create transport: missing transportId")
	}
	return &out, nil
}

func (api *apiImpl) ConnectTransport(ctx context.Context, transportID string, dtlsParameters json.RawMessage) error {
	body := map[string]any{
		"dtlsParameters": dtlsParameters,
	}
	path := fmt.Sprintf("/transports/%s/connect", transportID)
	return api.post(ctx, path, body, nil)
}

func (api *apiImpl) CloseTransport(ctx context.Context, transportID string) error {
	return api.delete(ctx, "/transports/"+transportID)
}

func (api *apiImpl) Produce(ctx context.Context, transportID, kind string, rtpParameters json.RawMessage) (string, error) {
	body := map[string]any{
		"kind":          kind,
		"rtpParameters": rtpParameters,
	}
	var out struct {
		ProducerID string `json:"producerId"`
	}
	path := fmt.Sprintf("/transports/%s/producers", transportID)
	if err := api.post(ctx, path, body, &out); err != nil {
		return "", err
	}
	if out.ProducerID == "" {
		return "", errors.New(ErrInvalidPayload, "produce: missing producerId")
	}
	return out.ProducerID, nil
}

func (api *apiImpl) CloseProducer(ctx context.Context, producerID string) error {
	return api.delete(ctx, "/producers/"+producerID)
}

func (api *apiImpl) CloseConsumer(ctx context.Context, consumerID string) error {
	return api.delete(ctx, "/consumers/"+consumerID)
}

func (api *apiImpl) Consume(ctx context.Context, transportID, producerID string, rtpCapabilities json.RawMessage) (*ConsumerInfo, error) {
	body := map[string]any{
		"producerId":      producerID,
		"rtpCapabilities": rtpCapabilities,
	}
	var out ConsumerInfo
	path := fmt.Sprintf("/transports/%s/consumers", transportID)
	if err := api.post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	if out.ConsumerID == "" {
		return nil, errors.New(ErrInvalidPayload, "consume: missing consumerId")
	}
	return &out, nil
}

func (api *apiImpl) CanConsume(ctx context.Context, routerID, producerID string, rtpCapabilities json.RawMessage) (bool, error) {
	body := map[string]any{
		"producerId":      producerID,
		"rtpCapabilities": rtpCapabilities,
	}
	var out struct {
		CanConsume bool `json:"canConsume"`
	}
	path := fmt.Sprintf("/routers/%s/can-consume", routerID)
	if err := api.post(ctx, path, body, &out); err != nil {
		return false, err
	}
	return out.CanConsume, nil
}

func (api *apiImpl) post(ctx context.Context, path string, body, result any) error {
	api.logger.Debug("bridge req", log.String("path", path))

	req := api.client.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	resp, err := req.Post(api.baseURL + path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return errors.Newf(ErrBridgeResponse, "bridge error: (path: %s, status: %d)", path, resp.StatusCode())
	}
	return nil
}

func (api *apiImpl) get(ctx context.Context, path string, result any) error {
	resp, err := api.client.R().
		SetContext(ctx).
		SetResult(result).
		Get(api.baseURL + path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return errors.Newf(ErrBridgeResponse, "bridge error: (path: %s, status: %d)", path, resp.StatusCode())
	}
	return nil
}

func (api *apiImpl) delete(ctx context.Context, path string) error {
	resp, err := api.client.R().
		SetContext(ctx).
		Delete(api.baseURL + path)
	if err != nil {
		return err
	}
	// close calls tolerate already-gone handles
	if resp.IsError() && resp.StatusCode() != 404 {
		return errors.Newf(ErrBridgeResponse, "bridge error: (path: %s, status: %d)", path, resp.StatusCode())
	}
	return nil
}
