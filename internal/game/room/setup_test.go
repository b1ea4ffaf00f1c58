package room

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/config"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/mission"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/testutil"
)

const testMissionID = "mission_test"

const (
	waitTimeout = time.Second
	waitTick    = 5 * time.Millisecond
)

// stubMissions 固定返回一个测试任务
type stubMissions struct{}

func (stubMissions) GetMission(_ context.Context, id string) (*mission.Mission, error) {
	if id != testMissionID {
		return nil, nil
	}
	return &mission.Mission{
		ID:            testMissionID,
		Name:          "涩谷夜间巡查",
		Description:   "调查涩谷站周边异常的咒力反应",
		Threat:        "一级咒灵",
		Objectives:    []string{"定位咒灵", "驱逐或封印"},
		DangerFactors: []string{"人流密集", "咒力干扰通讯"},
		Difficulty:    mission.DifficultyMedium,
	}, nil
}

// routingNotifier 把房间广播路由到各玩家客户端，模拟服务器层的通知实现
type routingNotifier struct {
	m *Manager
}

func (n *routingNotifier) NotifyRoom(roomCode string, data []byte) {
	r := n.m.GetRoom(roomCode)
	if r == nil {
		return
	}
	for _, c := range r.ClientsSnapshot() {
		c.SendMessage(data)
	}
}

func (n *routingNotifier) NotifyPlayer(roomCode, playerID string, data []byte) {
	r := n.m.GetRoom(roomCode)
	if r == nil {
		return
	}
	if c := r.ClientOf(playerID); c != nil {
		c.SendMessage(data)
	}
}

func testGameConfig() config.GameConfig {
	return config.GameConfig{
		MaxRooms:        100,
		MaxPlayers:      16,
		MinPlayers:      3,
		TallyDelay:      0, // 测试中立即结算
		RoomIdleTimeout: 30,
		CleanupInterval: 5,
	}
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(nil, stubMissions{}, nil, testGameConfig())
	m.SetNotifier(&routingNotifier{m: m})
	t.Cleanup(m.Stop)
	return m
}

// newTestRoom 创建一个含 n 名玩家的房间，返回房间和按加入顺序排列的客户端
func newTestRoom(t *testing.T, m *Manager, n int) (*Room, []*testutil.FakeClient) {
	t.Helper()
	require.GreaterOrEqual(t, n, 1)

	clients := make([]*testutil.FakeClient, 0, n)

	host := testutil.NewFakeClient("p1")
	room, err := m.CreateRoom(host, "玩家1")
	require.NoError(t, err)
	clients = append(clients, host)

	for i := 2; i <= n; i++ {
		c := testutil.NewFakeClient(fmt.Sprintf("p%d", i))
		_, err := m.JoinRoom(c, room.Code, fmt.Sprintf("玩家%d", i))
		require.NoError(t, err)
		clients = append(clients, c)
	}

	return room, clients
}

// newStartedRoom 创建房间并完成选任务、开始游戏
func newStartedRoom(t *testing.T, m *Manager, n int) (*Room, []*testutil.FakeClient) {
	t.Helper()
	room, clients := newTestRoom(t, m, n)

	require.NoError(t, m.SelectMission(context.Background(), room.Code, "p1", testMissionID))
	require.NoError(t, m.StartGame(room.Code, "p1"))

	return room, clients
}

// forcePhase 直接把房间切换到指定阶段，用于单独测试某个阶段的操作
func forcePhase(r *Room, phase Phase) {
	r.mu.Lock()
	r.transitionTo(phase)
	r.mu.Unlock()
}

func currentPhase(r *Room) Phase {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.Phase
}
