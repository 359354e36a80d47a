package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomIDTag(t *testing.T) {
	v := New()

	type params struct {
		RoomID string `validate:"roomid"`
	}

	assert.NoError(t, v.Struct(params{RoomID: "room-1"}))
	assert.NoError(t, v.Struct(params{RoomID: "8f14e45f_ceea"}))
	assert.Error(t, v.Struct(params{RoomID: ""}))
	assert.Error(t, v.Struct(params{RoomID: "has space"}))
	assert.Error(t, v.Struct(params{RoomID: "room/1"}))
}

func TestLanguageTag(t *testing.T) {
	v := New()

	type params struct {
		Language string `validate:"language"`
	}

	assert.NoError(t, v.Struct(params{Language: "en"}))
	assert.NoError(t, v.Struct(params{Language: "spa"}))
	assert.NoError(t, v.Struct(params{Language: "pt-BR"}))
	assert.Error(t, v.Struct(params{Language: "EN"}))
	assert.Error(t, v.Struct(params{Language: "english"}))
	assert.Error(t, v.Struct(params{Language: ""}))
}

func TestFormatValidationError(t *testing.T) {
	v := New()

	type params struct {
		Language string `validate:"required,language"`
	}

	err := v.Struct(params{Language: "nope!"})
	out := FormatValidationError(err)
	assert.Len(t, out, 1)
	assert.Equal(t, "Language", out[0].Field)
}
