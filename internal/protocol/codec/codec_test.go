package codec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol"
)

func TestNewMessage_WithPayload(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(protocol.MsgPing, protocol.PingPayload{Timestamp: 12345})
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgPing, msg.Type)
	assert.JSONEq(t, `{"timestamp":12345}`, string(msg.Payload))
}

func TestNewMessage_NilPayload(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(protocol.MsgPing, nil)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgPing, msg.Type)
	assert.Nil(t, msg.Payload)
}

func TestNewMessage_UnserializablePayload(t *testing.T) {
	t.Parallel()

	_, err := NewMessage(protocol.MsgPing, make(chan int))
	assert.Error(t, err)

	assert.Panics(t, func() {
		MustNewMessage(protocol.MsgPing, make(chan int))
	})
}

func TestNewErrorMessage(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessage(protocol.ErrCodeForbidden)
	assert.Equal(t, protocol.MsgError, msg.Type)

	var payload protocol.ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, protocol.ErrCodeForbidden, payload.Code)
	assert.Equal(t, protocol.ErrorMessages[protocol.ErrCodeForbidden], payload.Message)
	assert.Empty(t, payload.Reason)
}

func TestNewErrorMessageWithReason(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessageWithReason(protocol.ErrCodeInvalidTarget, "self_vote", "不能投票给自己")

	var payload protocol.ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, protocol.ErrCodeInvalidTarget, payload.Code)
	assert.Equal(t, "self_vote", payload.Reason)
	assert.Equal(t, "不能投票给自己", payload.Message)
}

func TestNewErrorMessageWithReason_DefaultText(t *testing.T) {
	t.Parallel()

	// Empty text falls back to the code's default message
	msg := NewErrorMessageWithReason(protocol.ErrCodeCapacity, "room_full", "")

	var payload protocol.ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, protocol.ErrorMessages[protocol.ErrCodeCapacity], payload.Message)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	msg := MustNewMessage(protocol.MsgPing, protocol.PingPayload{Timestamp: 67890})

	data, err := Encode(msg)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	defer PutMessage(decoded)

	assert.Equal(t, msg.Type, decoded.Type)
	assert.JSONEq(t, string(msg.Payload), string(decoded.Payload))
}

func TestDecode_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("{not json"))
	assert.Error(t, err)
}

func TestDecode_MissingType(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte(`{"payload":{"foo":1}}`))
	assert.Error(t, err)
}
