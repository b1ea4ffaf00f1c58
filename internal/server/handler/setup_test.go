package handler

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/config"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/game/room"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/mission"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol/codec"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/testutil"
)

// routingNotifier 把房间广播路由到各玩家客户端，模拟服务器层的通知实现
type routingNotifier struct {
	rooms *room.Manager
}

func (n *routingNotifier) NotifyRoom(roomCode string, data []byte) {
	r := n.rooms.GetRoom(roomCode)
	if r == nil {
		return
	}
	for _, c := range r.ClientsSnapshot() {
		c.SendMessage(data)
	}
}

func (n *routingNotifier) NotifyPlayer(roomCode, playerID string, data []byte) {
	r := n.rooms.GetRoom(roomCode)
	if r == nil {
		return
	}
	if c := r.ClientOf(playerID); c != nil {
		c.SendMessage(data)
	}
}

// newTestHandler 构造带真实房间管理器和任务库的处理器
func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	store, err := mission.NewStore(filepath.Join(t.TempDir(), "missions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	rooms := room.NewManager(nil, store, nil, config.GameConfig{
		MaxRooms:        10,
		MaxPlayers:      8,
		MinPlayers:      3,
		RoomIdleTimeout: 30,
		CleanupInterval: 5,
	})
	rooms.SetNotifier(&routingNotifier{rooms: rooms})
	t.Cleanup(rooms.Stop)

	return NewHandler(Deps{Rooms: rooms, Missions: store})
}

// lastMessage 解析客户端收到的最后一条消息
func lastMessage(t *testing.T, c *testutil.FakeClient) *protocol.Message {
	t.Helper()

	msgs := c.Messages()
	require.NotEmpty(t, msgs, "客户端未收到任何消息")

	msg, err := codec.Decode(msgs[len(msgs)-1])
	require.NoError(t, err)
	return msg
}

// decodePayload 解析消息负载
func decodePayload(t *testing.T, msg *protocol.Message, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(msg.Payload, v))
}

// createRoom 通过处理器创建房间并返回房间码
func createRoom(t *testing.T, h *Handler, c *testutil.FakeClient, hostName string) string {
	t.Helper()

	h.Handle(c, codec.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{HostName: hostName}))

	msg := lastMessage(t, c)
	require.Equal(t, protocol.MsgRoomCreated, msg.Type)

	var payload protocol.RoomCreatedPayload
	decodePayload(t, msg, &payload)
	c.Reset()
	return payload.RoomCode
}
