package room

import (
	"log"
	"time"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/apperrors"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/game/ability"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol"
)

// UseAbility 使用能力
// 洞察类能力的情报只返回给发起者，不进入公开记录
func (m *Manager) UseAbility(roomCode, playerID, abilityID, targetID string) (*protocol.AbilityUsedPayload, error) {
	room := m.GetRoom(roomCode)
	if room == nil {
		return nil, apperrors.ErrRoomNotFound
	}

	room.mu.Lock()

	player, ok := room.Players[playerID]
	if !ok {
		room.mu.Unlock()
		return nil, apperrors.ErrPlayerNotFound
	}
	if !room.Phase.AbilityUsable() {
		room.mu.Unlock()
		return nil, apperrors.ErrAbilityWrongPhase
	}

	var active *ability.Active
	for _, a := range room.Abilities[playerID] {
		if a.ID == abilityID {
			active = a
			break
		}
	}
	if active == nil {
		room.mu.Unlock()
		return nil, apperrors.ErrAbilityNotFound
	}

	if targetID != "" {
		if _, ok := room.Players[targetID]; !ok {
			room.mu.Unlock()
			return nil, apperrors.ErrTargetNotFound
		}
	}

	if err := ability.Validate(active, playerID, targetID, room.eliminatedSet()); err != nil {
		room.mu.Unlock()
		return nil, err
	}

	result, err := ability.Apply(active, playerID, targetID, room.playerName, room.Overlays, room.Cards)
	if err != nil {
		room.mu.Unlock()
		return nil, err
	}

	active.UsesRemaining--

	room.UsedLog = append(room.UsedLog, AbilityActivation{
		AbilityID:   active.ID,
		AbilityName: active.Name,
		PlayerID:    playerID,
		PlayerName:  player.Name,
		TargetID:    targetID,
		TargetName:  room.playerName(targetID),
		Round:       room.Round,
		Timestamp:   time.Now(),
	})

	payload := &protocol.AbilityUsedPayload{Message: result.Message}
	if result.Disclosure != nil {
		payload.Revealed = &protocol.RevealedInfo{
			PlayerID:      result.Disclosure.PlayerID,
			CategoryIndex: result.Disclosure.CategoryIndex,
			CategoryName:  result.Disclosure.CategoryName,
			Value:         result.Disclosure.Value,
			Round:         room.Round,
		}
	}

	msgs := []outbound{{data: encode(protocol.MsgGameUpdated, room.stateLocked())}}
	room.mu.Unlock()

	m.flush(roomCode, msgs)
	m.persist(room)

	log.Printf("✨ 玩家 %s 使用能力 %s，剩余次数 %d", player.Name, active.Name, active.UsesRemaining)

	return payload, nil
}
