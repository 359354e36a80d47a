package jsonrpc

import (
	"encoding/json"

	"github.com/vineetsharma9252/Babel-The-Speech-translator/internal/validation"
)

var validate = validation.New()

// ShouldBindParams unmarshals params into v and validates struct tags. The
// field-level failures ride along in the error data.
func ShouldBindParams(params *json.RawMessage, v any) error {
	if params == nil {
		return ErrInvalidParams("params required")
	}
	if err := json.Unmarshal(*params, v); err != nil {
		return ErrInvalidParams("invalid params")
	}
	if err := validate.Struct(v); err != nil {
		rpcErr := ErrInvalidParams("invalid params")
		if data, mErr := json.Marshal(validation.FormatValidationError(err)); mErr == nil {
			raw := json.RawMessage(data)
			rpcErr.Data = &raw
		}
		return rpcErr
	}
	return nil
}

// UnmarshalParams unmarshals params into v without struct validation.
func UnmarshalParams(params *json.RawMessage, v any) error {
	if params == nil {
		return ErrInvalidParams("params required")
	}
	if err := json.Unmarshal(*params, v); err != nil {
		return ErrInvalidParams("invalid params")
	}
	return nil
}
