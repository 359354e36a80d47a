package sfu

import "github.com/vineetsharma9252/Babel-The-Speech-translator/internal/errors"

const (
	ErrBridgeResponse errors.Code = "sfu_bridge_error"
	ErrInvalidPayload errors.Code = "sfu_invalid_payload"
)
