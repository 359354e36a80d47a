package speech

import "github.com/vineetsharma9252/Babel-The-Speech-translator/internal/errors"

const (
	ErrAPIResponse    errors.Code = "speech_api_error"
	ErrInvalidPayload errors.Code = "speech_invalid_payload"
)
