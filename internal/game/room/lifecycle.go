package room

import (
	"context"
	"log"
	"time"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol"
)

// Stop 停止清理协程
func (m *Manager) Stop() {
	close(m.stop)
}

// cleanupLoop 定期清理无人在线的闲置房间
func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(m.game.CleanupIntervalDuration())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanup()
		case <-m.stop:
			return
		}
	}
}

// cleanup 清理所有玩家都已掉线且超过闲置时长的房间
func (m *Manager) cleanup() {
	now := time.Now()

	m.mu.RLock()
	var idle []string
	for code, room := range m.rooms {
		room.mu.RLock()
		// 闲置时长从最后一名玩家掉线起算，而不是房间创建时间
		idleSince := room.IdleSince
		if idleSince.IsZero() {
			idleSince = room.CreatedAt
		}
		hasConnected := false
		for _, p := range room.Players {
			if p.Connected {
				hasConnected = true
				break
			}
		}
		if !hasConnected && now.Sub(idleSince) > m.game.RoomIdleTimeoutDuration() {
			idle = append(idle, code)
		}
		room.mu.RUnlock()
	}
	m.mu.RUnlock()

	for _, code := range idle {
		m.DeleteRoom(code)
		log.Printf("🧹 闲置房间 %s 已清理", code)
	}
}

// DeleteRoom 删除房间并停止其定时器
// 先通知再摘除，保证 room_deleted 能送达房间内的客户端
func (m *Manager) DeleteRoom(code string) {
	m.mu.RLock()
	room, exists := m.rooms[code]
	m.mu.RUnlock()
	if !exists {
		return
	}

	room.mu.Lock()
	if room.voteTimer != nil {
		room.voteTimer.Stop()
		room.voteTimer = nil
	}
	room.mu.Unlock()

	if m.notifier != nil {
		m.notifier.NotifyRoom(code, encode(protocol.MsgRoomDeleted, protocol.RoomDeletedPayload{RoomCode: code}))
	}

	room.mu.Lock()
	for _, p := range room.Players {
		if p.Client != nil {
			p.Client.SetRoom("")
		}
	}
	room.mu.Unlock()

	m.mu.Lock()
	delete(m.rooms, code)
	m.mu.Unlock()

	if m.store != nil {
		go func() { _ = m.store.DeleteRoom(context.Background(), code) }()
	}
}
