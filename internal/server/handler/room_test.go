package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol/codec"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/testutil"
)

func TestHandler_Ping(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	c := testutil.NewFakeClient("p1")

	h.Handle(c, codec.MustNewMessage(protocol.MsgPing, protocol.PingPayload{Timestamp: 12345}))

	msg := lastMessage(t, c)
	require.Equal(t, protocol.MsgPong, msg.Type)

	var pong protocol.PongPayload
	decodePayload(t, msg, &pong)
	assert.Equal(t, int64(12345), pong.ClientTimestamp)
	assert.Positive(t, pong.ServerTimestamp)
}

func TestHandler_CreateRoom(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	c := testutil.NewFakeClient("p1")

	h.Handle(c, codec.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{HostName: "五条悟"}))

	msg := lastMessage(t, c)
	require.Equal(t, protocol.MsgRoomCreated, msg.Type)

	var payload protocol.RoomCreatedPayload
	decodePayload(t, msg, &payload)
	assert.NotEmpty(t, payload.RoomCode)
	assert.Equal(t, "p1", payload.PlayerID)
	assert.Equal(t, payload.RoomCode, c.GetRoom())
	assert.Equal(t, "五条悟", c.GetName())
}

func TestHandler_CreateRoom_InvalidName(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)

	tests := []struct {
		name     string
		hostName string
	}{
		{"空昵称", "   "},
		{"超长昵称", strings.Repeat("悟", 21)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := testutil.NewFakeClient("p-" + tt.name)
			h.Handle(c, codec.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{HostName: tt.hostName}))

			msg := lastMessage(t, c)
			require.Equal(t, protocol.MsgError, msg.Type)

			var errPayload protocol.ErrorPayload
			decodePayload(t, msg, &errPayload)
			assert.Equal(t, protocol.ErrCodeInvalidTarget, errPayload.Code)
			assert.Equal(t, protocol.ReasonInvalidTarget, errPayload.Reason)
		})
	}
}

func TestHandler_JoinRoom(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	host := testutil.NewFakeClient("p1")
	code := createRoom(t, h, host, "五条悟")

	// 房间码大小写和空白都应被规范化
	c := testutil.NewFakeClient("p2")
	h.Handle(c, codec.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{
		RoomCode:   "  " + strings.ToLower(code) + " ",
		PlayerName: "虎杖悠仁",
	}))

	msg := lastMessage(t, c)
	require.Equal(t, protocol.MsgRoomJoined, msg.Type)

	var payload protocol.RoomJoinedPayload
	decodePayload(t, msg, &payload)
	assert.Equal(t, code, payload.RoomCode)
	assert.Equal(t, "p2", payload.PlayerID)
	require.NotNil(t, payload.GameState)
	assert.Len(t, payload.GameState.Players, 2)

	// 房主先收到入场通知，再收到最新的房间状态
	hostMsgs := host.Messages()
	require.Len(t, hostMsgs, 2)
	first, err := codec.Decode(hostMsgs[0])
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgPlayerJoined, first.Type)
	assert.Equal(t, protocol.MsgGameUpdated, lastMessage(t, host).Type)
}

func TestHandler_JoinRoom_NotFound(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	c := testutil.NewFakeClient("p1")

	h.Handle(c, codec.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{
		RoomCode:   "ZZZZZZ",
		PlayerName: "虎杖悠仁",
	}))

	msg := lastMessage(t, c)
	require.Equal(t, protocol.MsgError, msg.Type)

	var errPayload protocol.ErrorPayload
	decodePayload(t, msg, &errPayload)
	assert.Equal(t, protocol.ErrCodeNotFound, errPayload.Code)
}

func TestHandler_JoinRoom_NameTaken(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	host := testutil.NewFakeClient("p1")
	code := createRoom(t, h, host, "五条悟")

	c := testutil.NewFakeClient("p2")
	h.Handle(c, codec.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{
		RoomCode:   code,
		PlayerName: "五条悟",
	}))

	msg := lastMessage(t, c)
	require.Equal(t, protocol.MsgError, msg.Type)

	var errPayload protocol.ErrorPayload
	decodePayload(t, msg, &errPayload)
	assert.Equal(t, protocol.ErrCodeInvalidTarget, errPayload.Code)
}

func TestHandler_UnknownMessageType(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	c := testutil.NewFakeClient("p1")

	h.Handle(c, &protocol.Message{Type: "no_such_message"})

	msg := lastMessage(t, c)
	require.Equal(t, protocol.MsgError, msg.Type)

	var errPayload protocol.ErrorPayload
	decodePayload(t, msg, &errPayload)
	assert.Equal(t, protocol.ErrCodeInvalidMsg, errPayload.Code)
}

func TestHandler_MalformedPayload(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	c := testutil.NewFakeClient("p1")

	h.Handle(c, &protocol.Message{Type: protocol.MsgCreateRoom, Payload: []byte("{broken")})

	msg := lastMessage(t, c)
	require.Equal(t, protocol.MsgError, msg.Type)

	var errPayload protocol.ErrorPayload
	decodePayload(t, msg, &errPayload)
	assert.Equal(t, protocol.ErrCodeInvalidMsg, errPayload.Code)
}
