package room

import (
	"log"
	"time"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/apperrors"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/game/ability"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/game/character"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol"
)

// NextRound 结算本轮并进入下一轮，仅主持人可操作
// 淘汰者持有未消耗的转生能力时复活并恢复健康
// 存活人数降到目标以内时结束游戏并公开全部特征
func (m *Manager) NextRound(roomCode, playerID string) error {
	room := m.GetRoom(roomCode)
	if room == nil {
		return apperrors.ErrRoomNotFound
	}

	room.mu.Lock()

	player, ok := room.Players[playerID]
	if !ok {
		room.mu.Unlock()
		return apperrors.ErrPlayerNotFound
	}
	if player.Role != RoleHost {
		room.mu.Unlock()
		return apperrors.ErrNotHost
	}
	if room.Phase != PhaseRoundEnd {
		room.mu.Unlock()
		return apperrors.ErrInvalidPhase
	}

	// 应用计票结果
	eliminatedID := ""
	if room.LastVoteResult != nil && room.LastVoteResult.EliminatedID != "" {
		eliminatedID = room.LastVoteResult.EliminatedID

		// 转生：取消淘汰并恢复健康
		var resurrect *ability.Active
		for _, a := range room.Abilities[eliminatedID] {
			if a.Effect == ability.EffectResurrect && a.UsesRemaining > 0 {
				resurrect = a
				break
			}
		}
		if resurrect != nil {
			resurrect.UsesRemaining--
			if card, ok := room.Cards[eliminatedID]; ok {
				card.CurrentState.Value = character.StateHealthy
			}
			room.UsedLog = append(room.UsedLog, AbilityActivation{
				AbilityID:   resurrect.ID,
				AbilityName: resurrect.Name,
				PlayerID:    eliminatedID,
				PlayerName:  room.playerName(eliminatedID),
				Round:       room.Round,
				Timestamp:   time.Now(),
			})
			log.Printf("🔥 玩家 %s 转生复活，淘汰取消", room.playerName(eliminatedID))
			eliminatedID = ""
		} else {
			room.Eliminated = append(room.Eliminated, eliminatedID)
			log.Printf("☠️ 玩家 %s 已被淘汰", room.playerName(eliminatedID))
		}
	}

	// 存活人数达到目标则任务完成
	if survivors := room.activeCount(); survivors <= room.TargetSurvivors {
		room.GameEnded = true
		room.transitionTo(PhaseMissionComplete)
		room.revealAllLocked()

		msgs := []outbound{
			{data: encode(protocol.MsgRoundEnded, protocol.RoundEndedPayload{
				EliminatedID: eliminatedID,
				GameEnded:    true,
			})},
			{data: encode(protocol.MsgGameUpdated, room.stateLocked())},
		}
		room.mu.Unlock()

		m.flush(roomCode, msgs)
		m.persist(room)

		log.Printf("🏁 房间 %s 任务完成，幸存 %d 人", roomCode, survivors)
		return nil
	}

	// 开始新一轮
	room.Round++
	room.LastVoteResult = nil
	room.Votes = make(map[string]string)
	room.Overlays.Clear()
	for _, p := range room.Players {
		p.HasVoted = false
		p.VoteTarget = ""
	}
	room.transitionTo(PhaseReveal)

	msgs := []outbound{
		{data: encode(protocol.MsgRoundEnded, protocol.RoundEndedPayload{
			EliminatedID: eliminatedID,
			GameEnded:    false,
		})},
		{data: encode(protocol.MsgGameUpdated, room.stateLocked())},
	}
	room.mu.Unlock()

	m.flush(roomCode, msgs)
	m.persist(room)

	log.Printf("🔄 房间 %s 进入第 %d 轮", roomCode, room.Round)

	return nil
}

// revealAllLocked 公开所有玩家的全部特征，须持有写锁调用
func (r *Room) revealAllLocked() {
	for _, id := range r.PlayerOrder {
		card, ok := r.Cards[id]
		if !ok {
			continue
		}
		for i := 0; i < character.CategoryCount; i++ {
			trait := card.Trait(i)
			if trait.Revealed {
				continue
			}
			trait.Revealed = true
			r.Revealed = append(r.Revealed, protocol.RevealedInfo{
				PlayerID:      id,
				CategoryIndex: i,
				CategoryName:  character.CategoryName(i),
				Value:         trait.Format(),
				Round:         r.Round,
			})
		}
	}
}
