package room

import (
	"context"
	"log"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/apperrors"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/game/ability"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/game/character"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol"
)

// SelectMission 选择任务，仅主持人可操作
func (m *Manager) SelectMission(ctx context.Context, roomCode, playerID, missionID string) error {
	room := m.GetRoom(roomCode)
	if room == nil {
		return apperrors.ErrRoomNotFound
	}

	room.mu.RLock()
	player, ok := room.Players[playerID]
	if !ok {
		room.mu.RUnlock()
		return apperrors.ErrPlayerNotFound
	}
	if player.Role != RoleHost {
		room.mu.RUnlock()
		return apperrors.ErrNotHost
	}
	room.mu.RUnlock()

	if m.missions == nil {
		return apperrors.ErrMissionNotFound
	}
	mission, err := m.missions.GetMission(ctx, missionID)
	if err != nil {
		return err
	}
	if mission == nil {
		return apperrors.ErrMissionNotFound
	}

	room.mu.Lock()
	room.SelectedMission = mission
	msgs := []outbound{{data: encode(protocol.MsgGameUpdated, room.stateLocked())}}
	room.mu.Unlock()

	m.flush(roomCode, msgs)
	m.persist(room)

	log.Printf("📜 房间 %s 选择任务: %s", roomCode, mission.Name)

	return nil
}

// SetTargetSurvivors 设置目标幸存人数，仅主持人、开局前可操作
func (m *Manager) SetTargetSurvivors(roomCode, playerID string, target int) error {
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
	if room.GameStarted {
		room.mu.Unlock()
		return apperrors.ErrGameStarted
	}
	if target < 1 || target >= len(room.Players) {
		room.mu.Unlock()
		return apperrors.ErrSurvivorsOutOfRange
	}

	room.TargetSurvivors = target
	msgs := []outbound{{data: encode(protocol.MsgGameUpdated, room.stateLocked())}}
	room.mu.Unlock()

	m.flush(roomCode, msgs)
	m.persist(room)

	return nil
}

// StartGame 开始游戏：生成角色卡、识别能力、进入任务简报阶段
func (m *Manager) StartGame(roomCode, playerID string) error {
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
	if room.GameStarted {
		room.mu.Unlock()
		return apperrors.ErrGameStarted
	}
	if len(room.Players) < m.game.MinPlayers {
		room.mu.Unlock()
		return apperrors.ErrNotEnoughPlayers
	}
	if room.SelectedMission == nil {
		room.mu.Unlock()
		return apperrors.ErrMissionNotChosen
	}

	// 为每名玩家生成角色卡并识别能力
	for id, p := range room.Players {
		card := m.gen.Generate()
		room.Cards[id] = card

		abilities := ability.Detect(card)
		if len(abilities) > 0 {
			room.Abilities[id] = abilities
			names := make([]string, 0, len(abilities))
			for _, a := range abilities {
				names = append(names, a.Name)
			}
			log.Printf("✨ 玩家 %s 获得能力: %v", p.Name, names)
		}
	}

	room.StrikeTeamSize = room.TargetSurvivors
	room.GameStarted = true
	room.Round = 1
	room.transitionTo(PhaseMissionBriefing)

	msgs := []outbound{
		{data: encode(protocol.MsgGameStarted, protocol.GameStartedPayload{
			Round: room.Round,
			Phase: string(room.Phase),
		})},
		{data: encode(protocol.MsgGameUpdated, room.stateLocked())},
	}
	room.mu.Unlock()

	m.flush(roomCode, msgs)
	m.persist(room)

	log.Printf("🎮 房间 %s 游戏开始，%d 名玩家，目标幸存 %d 人", roomCode, len(room.Players), room.TargetSurvivors)

	return nil
}

// AdvancePhase 主持人推进阶段
// 只允许任务简报 → 公开、讨论 → 投票，其余转换由引擎自动完成
func (m *Manager) AdvancePhase(roomCode, playerID string) error {
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

	var next Phase
	switch room.Phase {
	case PhaseMissionBriefing:
		next = PhaseReveal
	case PhaseDiscussion:
		next = PhaseVoting
	default:
		room.mu.Unlock()
		return apperrors.ErrInvalidPhase
	}

	from := room.Phase
	room.transitionTo(next)
	msgs := []outbound{{data: encode(protocol.MsgGameUpdated, room.stateLocked())}}
	room.mu.Unlock()

	m.flush(roomCode, msgs)
	m.persist(room)

	log.Printf("⏩ 房间 %s 阶段切换: %s -> %s", roomCode, from, next)

	return nil
}

// ToggleReady 切换投票准备状态
// 讨论阶段全部存活玩家就绪时自动进入投票
func (m *Manager) ToggleReady(roomCode, playerID string) error {
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

	player.ReadyToVote = !player.ReadyToVote

	autoAdvance := false
	if room.Phase == PhaseDiscussion {
		allReady := true
		for id, p := range room.Players {
			if room.isEliminated(id) {
				continue
			}
			if !p.ReadyToVote {
				allReady = false
				break
			}
		}
		if allReady {
			room.transitionTo(PhaseVoting)
			autoAdvance = true
		}
	}

	msgs := []outbound{{data: encode(protocol.MsgGameUpdated, room.stateLocked())}}
	room.mu.Unlock()

	m.flush(roomCode, msgs)

	if autoAdvance {
		log.Printf("🗳️ 房间 %s 全员就绪，进入投票阶段", roomCode)
	}

	return nil
}

// Reveal 公开一项角色特征
// 全部存活玩家公开后自动进入讨论阶段
func (m *Manager) Reveal(roomCode, playerID string, categoryIndex int) (*protocol.RevealedInfo, error) {
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
	if room.Phase != PhaseReveal {
		room.mu.Unlock()
		return nil, apperrors.ErrInvalidPhase
	}
	if room.isEliminated(playerID) {
		room.mu.Unlock()
		return nil, apperrors.ErrPlayerEliminated
	}
	if player.HasRevealed {
		room.mu.Unlock()
		return nil, apperrors.ErrAlreadyRevealed
	}

	card, ok := room.Cards[playerID]
	if !ok {
		room.mu.Unlock()
		return nil, apperrors.ErrCharacterNotFound
	}

	trait := card.Trait(categoryIndex)
	if trait == nil {
		room.mu.Unlock()
		return nil, apperrors.ErrInvalidCategory
	}
	if trait.Revealed {
		room.mu.Unlock()
		return nil, apperrors.ErrCategoryRevealed
	}

	trait.Revealed = true
	player.HasRevealed = true
	player.RevealedCategory = categoryIndex

	revealed := protocol.RevealedInfo{
		PlayerID:      playerID,
		CategoryIndex: categoryIndex,
		CategoryName:  character.CategoryName(categoryIndex),
		Value:         trait.Format(),
		Round:         room.Round,
	}
	room.Revealed = append(room.Revealed, revealed)

	msgs := []outbound{{data: encode(protocol.MsgRevealed, revealed)}}

	// 全部存活玩家都已公开则自动进入讨论
	allRevealed := true
	for id, p := range room.Players {
		if room.isEliminated(id) {
			continue
		}
		if !p.HasRevealed {
			allRevealed = false
			break
		}
	}
	if allRevealed {
		room.transitionTo(PhaseDiscussion)
	}
	msgs = append(msgs, outbound{data: encode(protocol.MsgGameUpdated, room.stateLocked())})
	room.mu.Unlock()

	m.flush(roomCode, msgs)
	m.persist(room)

	log.Printf("🔍 玩家 %s 公开了 %s: %s", player.Name, revealed.CategoryName, revealed.Value)
	if allRevealed {
		log.Printf("💬 房间 %s 全员已公开，进入讨论阶段", roomCode)
	}

	return &revealed, nil
}
