package room

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/testutil"
)

func TestDeleteRoom(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)
	room, clients := newTestRoom(t, m, 2)

	clients[0].Reset()
	clients[1].Reset()

	m.DeleteRoom(room.Code)

	assert.Equal(t, 0, m.RoomCount())
	assert.Empty(t, clients[0].GetRoom())
	assert.Empty(t, clients[1].GetRoom())

	// 解散通知先于摘除，两名玩家都应收到
	for _, c := range clients {
		msgs := c.Messages()
		require.NotEmpty(t, msgs)

		var msg protocol.Message
		require.NoError(t, json.Unmarshal(msgs[len(msgs)-1], &msg))
		assert.Equal(t, protocol.MsgRoomDeleted, msg.Type)

		var payload protocol.RoomDeletedPayload
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, room.Code, payload.RoomCode)
	}
}

func TestCleanup_RemovesIdleRooms(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)
	room, clients := newTestRoom(t, m, 2)

	// 所有玩家掉线且掉线后超过闲置时长
	m.MarkDisconnected(clients[0])
	m.MarkDisconnected(clients[1])
	room.mu.Lock()
	room.IdleSince = time.Now().Add(-time.Hour)
	room.mu.Unlock()

	m.cleanup()

	assert.Equal(t, 0, m.RoomCount())
}

func TestCleanup_KeepsActiveRooms(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)
	room, clients := newTestRoom(t, m, 2)

	// 房间年龄超时但仍有人在线，保留
	room.mu.Lock()
	room.CreatedAt = time.Now().Add(-time.Hour)
	room.mu.Unlock()
	m.MarkDisconnected(clients[1])

	m.cleanup()
	assert.Equal(t, 1, m.RoomCount())

	// 全员刚刚掉线：闲置时长从掉线算起，旧房间同样保留
	m.MarkDisconnected(clients[0])

	m.cleanup()
	assert.Equal(t, 1, m.RoomCount())

	room.mu.RLock()
	assert.False(t, room.IdleSince.IsZero())
	room.mu.RUnlock()
}

func TestCleanup_RejoinClearsIdle(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)
	room, clients := newTestRoom(t, m, 2)

	m.MarkDisconnected(clients[0])
	m.MarkDisconnected(clients[1])

	// 新玩家加入后闲置计时清零
	c := testutil.NewFakeClient("p3")
	_, err := m.JoinRoom(c, room.Code, "玩家3")
	require.NoError(t, err)

	room.mu.RLock()
	assert.True(t, room.IdleSince.IsZero())
	room.mu.RUnlock()
}
