package room

import (
	"context"
	"fmt"
	"log"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/apperrors"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/game/character"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/mission"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol"
)

// PlayerSummary 结语生成所需的玩家摘要
type PlayerSummary struct {
	Name string
	Card *character.Card
}

// EpilogueRequest 结语生成请求
type EpilogueRequest struct {
	Mission    *mission.Mission
	Survivors  []PlayerSummary
	Eliminated []PlayerSummary
	Rounds     int
}

// EpilogueSource 结语生成服务
type EpilogueSource interface {
	Epilogue(ctx context.Context, req *EpilogueRequest) (string, error)
}

// SetEpilogueSource 设置结语生成服务
func (m *Manager) SetEpilogueSource(src EpilogueSource) {
	m.epilogues = src
}

// GenerateEpilogue 生成任务结语，仅主持人、任务完成后可调用
// 结果会被缓存；生成进行中的并发请求会等待同一次生成完成
func (m *Manager) GenerateEpilogue(ctx context.Context, roomCode, playerID string) (string, error) {
	room := m.GetRoom(roomCode)
	if room == nil {
		return "", apperrors.ErrRoomNotFound
	}

	room.mu.Lock()

	player, ok := room.Players[playerID]
	if !ok {
		room.mu.Unlock()
		return "", apperrors.ErrPlayerNotFound
	}
	if player.Role != RoleHost {
		room.mu.Unlock()
		return "", apperrors.ErrNotHost
	}
	if !room.GameEnded {
		room.mu.Unlock()
		return "", apperrors.ErrInvalidPhase
	}

	// 已有缓存直接返回
	if room.Epilogue != "" {
		epilogue := room.Epilogue
		room.mu.Unlock()
		return epilogue, nil
	}

	// 生成进行中则等待同一次生成
	if room.epilogueBusy {
		done := room.epilogueDone
		room.mu.Unlock()

		select {
		case <-done:
		case <-ctx.Done():
			return "", ctx.Err()
		}

		room.mu.RLock()
		epilogue := room.Epilogue
		room.mu.RUnlock()
		if epilogue == "" {
			return "", fmt.Errorf("结语生成失败")
		}
		return epilogue, nil
	}

	if m.epilogues == nil {
		room.mu.Unlock()
		return "", fmt.Errorf("结语生成服务未配置")
	}

	room.epilogueBusy = true
	room.epilogueDone = make(chan struct{})
	done := room.epilogueDone
	req := room.epilogueRequestLocked()
	room.mu.Unlock()

	// 在锁外调用外部服务
	epilogue, err := m.epilogues.Epilogue(ctx, req)

	room.mu.Lock()
	room.epilogueBusy = false
	if err == nil {
		room.Epilogue = epilogue
	}
	close(done)
	var msgs []outbound
	if err == nil {
		msgs = []outbound{
			{data: encode(protocol.MsgEpilogueResult, protocol.EpilogueResultPayload{Epilogue: epilogue})},
			{data: encode(protocol.MsgGameUpdated, room.stateLocked())},
		}
	}
	room.mu.Unlock()

	if err != nil {
		log.Printf("[ERROR] 房间 %s 结语生成失败: %v", roomCode, err)
		return "", err
	}

	m.flush(roomCode, msgs)
	m.persist(room)

	log.Printf("📖 房间 %s 结语生成完成", roomCode)

	return epilogue, nil
}

// epilogueRequestLocked 组装结语生成请求，须持有锁调用
func (r *Room) epilogueRequestLocked() *EpilogueRequest {
	req := &EpilogueRequest{
		Mission: r.SelectedMission,
		Rounds:  r.Round,
	}
	for _, id := range r.PlayerOrder {
		p, ok := r.Players[id]
		if !ok {
			continue
		}
		summary := PlayerSummary{Name: p.Name, Card: r.Cards[id]}
		if r.isEliminated(id) {
			req.Eliminated = append(req.Eliminated, summary)
		} else {
			req.Survivors = append(req.Survivors, summary)
		}
	}
	return req
}
