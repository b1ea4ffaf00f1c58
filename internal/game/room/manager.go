package room

import (
	"context"
	"log"
	"math/rand/v2"
	"time"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/apperrors"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/game/ability"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/game/character"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol/codec"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/types"
)

// encode 构造并序列化消息，房间层所有出站消息都经过这里
func encode(msgType protocol.MessageType, payload any) []byte {
	data, err := codec.Encode(codec.MustNewMessage(msgType, payload))
	if err != nil {
		return nil
	}
	return data
}

// CreateRoom 创建房间，创建者自动成为主持人
func (m *Manager) CreateRoom(client types.ClientInterface, hostName string) (*Room, error) {
	m.mu.Lock()

	if len(m.rooms) >= m.game.MaxRooms {
		m.mu.Unlock()
		return nil, apperrors.ErrRoomLimitReached
	}

	code, err := m.generateRoomCode()
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}

	host := &Player{
		ID:               client.GetID(),
		Name:             hostName,
		Role:             RoleHost,
		Connected:        true,
		RevealedCategory: -1,
		Client:           client,
	}

	room := &Room{
		Code:            code,
		HostID:          host.ID,
		Players:         map[string]*Player{host.ID: host},
		PlayerOrder:     []string{host.ID},
		Phase:           PhaseLobby,
		TargetSurvivors: 3,
		Votes:           make(map[string]string),
		Cards:           make(map[string]*character.Card),
		Abilities:       make(map[string][]*ability.Active),
		Overlays:        ability.NewOverlays(),
		CreatedAt:       time.Now(),
	}

	m.rooms[code] = room
	m.mu.Unlock()

	client.SetRoom(code)
	m.persist(room)

	log.Printf("🏠 房间 %s 已创建，主持人 %s", code, hostName)

	return room, nil
}

// JoinRoom 加入房间
func (m *Manager) JoinRoom(client types.ClientInterface, code, playerName string) (*Room, error) {
	m.mu.RLock()
	room, exists := m.rooms[code]
	m.mu.RUnlock()
	if !exists {
		return nil, apperrors.ErrRoomNotFound
	}

	room.mu.Lock()

	if room.GameStarted {
		room.mu.Unlock()
		return nil, apperrors.ErrGameStarted
	}
	if len(room.Players) >= m.game.MaxPlayers {
		room.mu.Unlock()
		return nil, apperrors.ErrRoomFull
	}
	for _, p := range room.Players {
		if p.Name == playerName {
			room.mu.Unlock()
			return nil, apperrors.ErrNameTaken
		}
	}

	player := &Player{
		ID:               client.GetID(),
		Name:             playerName,
		Role:             RoleParticipant,
		Connected:        true,
		RevealedCategory: -1,
		Client:           client,
	}
	room.Players[player.ID] = player
	room.PlayerOrder = append(room.PlayerOrder, player.ID)
	room.IdleSince = time.Time{}

	msgs := []outbound{
		{data: encode(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
			PlayerID:   player.ID,
			PlayerName: playerName,
		})},
		{data: encode(protocol.MsgGameUpdated, room.stateLocked())},
	}
	room.mu.Unlock()

	client.SetRoom(code)
	m.flush(code, msgs)
	m.persist(room)

	log.Printf("👤 玩家 %s 加入房间 %s", playerName, code)

	return room, nil
}

// LeaveRoom 离开房间
// 主持人离开时按加入顺序移交主持权，最后一名玩家离开时解散房间
func (m *Manager) LeaveRoom(client types.ClientInterface) {
	roomCode := client.GetRoom()
	if roomCode == "" {
		return
	}

	m.mu.RLock()
	room, exists := m.rooms[roomCode]
	m.mu.RUnlock()
	if !exists {
		return
	}

	room.mu.Lock()

	player, exists := room.Players[client.GetID()]
	if !exists {
		room.mu.Unlock()
		return
	}

	delete(room.Players, player.ID)
	for i, id := range room.PlayerOrder {
		if id == player.ID {
			room.PlayerOrder = append(room.PlayerOrder[:i], room.PlayerOrder[i+1:]...)
			break
		}
	}
	delete(room.Cards, player.ID)
	delete(room.Abilities, player.ID)

	// 空房间直接解散
	if len(room.Players) == 0 {
		if room.voteTimer != nil {
			room.voteTimer.Stop()
			room.voteTimer = nil
		}
		room.mu.Unlock()

		m.mu.Lock()
		delete(m.rooms, roomCode)
		m.mu.Unlock()

		client.SetRoom("")
		if m.store != nil {
			go func() { _ = m.store.DeleteRoom(context.Background(), roomCode) }()
		}
		log.Printf("🏠 房间 %s 已解散", roomCode)
		return
	}

	// 主持人离开，移交给加入顺序中的第一名剩余玩家
	if player.Role == RoleHost {
		newHostID := room.PlayerOrder[0]
		room.Players[newHostID].Role = RoleHost
		room.HostID = newHostID
		log.Printf("👑 房间 %s 主持权移交给 %s", roomCode, room.Players[newHostID].Name)
	}

	msgs := []outbound{
		{data: encode(protocol.MsgPlayerLeft, protocol.PlayerLeftPayload{
			PlayerID:   player.ID,
			PlayerName: player.Name,
		})},
		{data: encode(protocol.MsgGameUpdated, room.stateLocked())},
	}
	room.mu.Unlock()

	client.SetRoom("")
	m.flush(roomCode, msgs)
	m.persist(room)

	log.Printf("👋 玩家 %s 离开房间 %s", player.Name, roomCode)
}

// MarkDisconnected 标记玩家掉线，不从房间移除
func (m *Manager) MarkDisconnected(client types.ClientInterface) {
	roomCode := client.GetRoom()
	if roomCode == "" {
		return
	}

	m.mu.RLock()
	room, exists := m.rooms[roomCode]
	m.mu.RUnlock()
	if !exists {
		return
	}

	room.mu.Lock()
	player, ok := room.Players[client.GetID()]
	if !ok {
		room.mu.Unlock()
		return
	}
	player.Connected = false
	player.Client = nil

	allOffline := true
	for _, p := range room.Players {
		if p.Connected {
			allOffline = false
			break
		}
	}
	if allOffline {
		room.IdleSince = time.Now()
	}

	msgs := []outbound{{data: encode(protocol.MsgGameUpdated, room.stateLocked())}}
	room.mu.Unlock()

	m.flush(roomCode, msgs)

	log.Printf("📴 玩家 %s 在房间 %s 中掉线", player.Name, roomCode)
}

// generateRoomCode 生成唯一房间号，须持有管理器锁调用
func (m *Manager) generateRoomCode() (string, error) {
	for attempt := 0; attempt < roomCodeAttempts; attempt++ {
		code := make([]byte, roomCodeLength)
		for i := range code {
			code[i] = roomCodeChars[rand.IntN(len(roomCodeChars))]
		}
		if _, exists := m.rooms[string(code)]; !exists {
			return string(code), nil
		}
	}
	return "", apperrors.ErrCodeSpaceExhausted
}
