package room

import (
	"context"
	"sync"
	"time"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/config"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/game/ability"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/game/character"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/mission"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/server/storage"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/types"
)

const (
	roomCodeLength   = 6                                      // 房间号长度
	roomCodeChars    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" // 房间号字符集
	roomCodeAttempts = 100                                    // 生成唯一房间号的最大尝试次数
)

// Player 房间中的玩家
type Player struct {
	ID               string
	Name             string
	Role             string // host / participant
	Connected        bool
	HasVoted         bool
	HasRevealed      bool
	ReadyToVote      bool
	VoteTarget       string // 本轮投票目标，弃票为 VoteSkip
	RevealedCategory int    // 本轮公开的类别序号，未公开为 -1
	Client           types.ClientInterface
}

// VoteResult 一轮投票的结果
type VoteResult struct {
	EliminatedID string         `json:"eliminatedId,omitempty"`
	VoteCounts   map[string]int `json:"voteCounts"`
	Tie          bool           `json:"tie"`
}

// AbilityActivation 能力激活记录
type AbilityActivation struct {
	AbilityID   string    `json:"abilityId"`
	AbilityName string    `json:"abilityName"`
	PlayerID    string    `json:"playerId"`
	PlayerName  string    `json:"playerName"`
	TargetID    string    `json:"targetId,omitempty"`
	TargetName  string    `json:"targetName,omitempty"`
	Round       int       `json:"round"`
	Timestamp   time.Time `json:"timestamp"`
}

// Room 游戏房间
type Room struct {
	Code        string
	HostID      string
	Players     map[string]*Player
	PlayerOrder []string // 玩家加入顺序
	Phase       Phase
	Round       int
	GameStarted bool
	GameEnded   bool

	SelectedMission *mission.Mission
	TargetSurvivors int
	StrikeTeamSize  int

	Eliminated       []string
	Votes            map[string]string // 投票人 -> 实际目标（含反弹），弃票为 VoteSkip
	ConsecutiveSkips int
	LastVoteResult   *VoteResult

	Cards     map[string]*character.Card
	Revealed  []protocol.RevealedInfo
	Abilities map[string][]*ability.Active
	UsedLog   []AbilityActivation
	Overlays  *ability.Overlays

	Epilogue     string
	epilogueBusy bool
	epilogueDone chan struct{}

	voteTimer *time.Timer // 计票后延迟转入 round_end 的定时器
	CreatedAt time.Time
	IdleSince time.Time // 最后一名在线玩家掉线的时刻，零值表示仍有人在线

	mu sync.RWMutex
}

// isEliminated 判断玩家是否已被淘汰，须持有锁调用
func (r *Room) isEliminated(playerID string) bool {
	for _, id := range r.Eliminated {
		if id == playerID {
			return true
		}
	}
	return false
}

// eliminatedSet 返回已淘汰玩家集合，须持有锁调用
func (r *Room) eliminatedSet() map[string]bool {
	set := make(map[string]bool, len(r.Eliminated))
	for _, id := range r.Eliminated {
		set[id] = true
	}
	return set
}

// activeCount 返回未被淘汰的玩家数，须持有锁调用
func (r *Room) activeCount() int {
	return len(r.Players) - len(r.Eliminated)
}

// playerName 返回玩家昵称，未找到返回空串，须持有锁调用
func (r *Room) playerName(playerID string) string {
	if p, ok := r.Players[playerID]; ok {
		return p.Name
	}
	return ""
}

// ClientsSnapshot 返回当前在线客户端列表
func (r *Room) ClientsSnapshot() []types.ClientInterface {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clients := make([]types.ClientInterface, 0, len(r.Players))
	for _, p := range r.Players {
		if p.Client != nil {
			clients = append(clients, p.Client)
		}
	}
	return clients
}

// ClientOf 返回指定玩家的客户端，不在线返回 nil
func (r *Room) ClientOf(playerID string) types.ClientInterface {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.Players[playerID]; ok {
		return p.Client
	}
	return nil
}

// transitionTo 切换阶段并重置相应的玩家状态，须持有锁调用
func (r *Room) transitionTo(phase Phase) {
	r.Phase = phase

	for _, p := range r.Players {
		switch phase {
		case PhaseVoting:
			p.HasVoted = false
			p.VoteTarget = ""
		case PhaseReveal:
			p.HasRevealed = false
			p.RevealedCategory = -1
			p.ReadyToVote = false
		}
	}
}

// MissionLookup 任务查询
type MissionLookup interface {
	GetMission(ctx context.Context, id string) (*mission.Mission, error)
}

// SnapshotStore 房间快照存储
type SnapshotStore interface {
	SaveRoom(ctx context.Context, roomCode string, data *storage.RoomData) error
	DeleteRoom(ctx context.Context, roomCode string) error
}

// Manager 房间管理器
type Manager struct {
	store     SnapshotStore
	missions  MissionLookup
	notifier  types.Notifier
	epilogues EpilogueSource
	gen       *character.Generator
	game      config.GameConfig

	rooms map[string]*Room
	mu    sync.RWMutex

	stop chan struct{}
}

// NewManager 创建房间管理器并启动清理协程
func NewManager(store SnapshotStore, missions MissionLookup, notifier types.Notifier, game config.GameConfig) *Manager {
	m := &Manager{
		store:    store,
		missions: missions,
		notifier: notifier,
		gen:      character.NewGenerator(),
		game:     game,
		rooms:    make(map[string]*Room),
		stop:     make(chan struct{}),
	}

	go m.cleanupLoop()

	return m
}

// SetNotifier 设置事件通知器
func (m *Manager) SetNotifier(n types.Notifier) {
	m.notifier = n
}

// GetRoom 获取房间
func (m *Manager) GetRoom(code string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[code]
}

// RoomCount 返回当前房间数量
func (m *Manager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// outbound 在持锁期间收集、解锁后发送的消息
type outbound struct {
	playerID string // 为空表示对整个房间广播
	data     []byte
}

// flush 在锁释放后把收集的消息交给通知器
func (m *Manager) flush(roomCode string, msgs []outbound) {
	if m.notifier == nil {
		return
	}
	for _, o := range msgs {
		if o.playerID == "" {
			m.notifier.NotifyRoom(roomCode, o.data)
		} else {
			m.notifier.NotifyPlayer(roomCode, o.playerID, o.data)
		}
	}
}

// persist 异步保存房间快照
func (m *Manager) persist(room *Room) {
	if m.store == nil {
		return
	}
	go func() { _ = m.store.SaveRoom(context.Background(), room.Code, room.ToRoomData()) }()
}
