package room

import (
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/apperrors"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/game/character"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/mission"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol"
)

// stateLocked 构建游戏状态投影，须持有锁调用
// 投影只含可以安全广播的公开信息，角色卡内容不在其中
func (r *Room) stateLocked() *protocol.GameStateDTO {
	players := make([]protocol.PlayerInfo, 0, len(r.Players))
	for _, id := range r.PlayerOrder {
		p, ok := r.Players[id]
		if !ok {
			continue
		}
		players = append(players, protocol.PlayerInfo{
			ID:          p.ID,
			Name:        p.Name,
			Role:        p.Role,
			Connected:   p.Connected,
			HasRevealed: p.HasRevealed,
			HasVoted:    p.HasVoted,
			ReadyToVote: p.ReadyToVote,
		})
	}

	revealed := make([]protocol.RevealedInfo, len(r.Revealed))
	copy(revealed, r.Revealed)

	eliminated := make([]string, len(r.Eliminated))
	copy(eliminated, r.Eliminated)

	dto := &protocol.GameStateDTO{
		RoomCode:         r.Code,
		Phase:            string(r.Phase),
		Round:            r.Round,
		Players:          players,
		HostID:           r.HostID,
		SelectedMission:  missionInfo(r.SelectedMission),
		GameStarted:      r.GameStarted,
		GameEnded:        r.GameEnded,
		EliminatedIDs:    eliminated,
		StrikeTeamSize:   r.StrikeTeamSize,
		TargetSurvivors:  r.TargetSurvivors,
		Revealed:         revealed,
		ConsecutiveSkips: r.ConsecutiveSkips,
		Epilogue:         r.Epilogue,
	}

	if r.LastVoteResult != nil {
		counts := make(map[string]int, len(r.LastVoteResult.VoteCounts))
		for id, n := range r.LastVoteResult.VoteCounts {
			counts[id] = n
		}
		dto.LastVoteResult = &protocol.VoteResultInfo{
			EliminatedID: r.LastVoteResult.EliminatedID,
			VoteCounts:   counts,
			Tie:          r.LastVoteResult.Tie,
		}
	}

	return dto
}

// missionInfo 任务转为协议 DTO
func missionInfo(m *mission.Mission) *protocol.MissionInfo {
	if m == nil {
		return nil
	}
	return &protocol.MissionInfo{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Threat:        m.Threat,
		Objectives:    append([]string(nil), m.Objectives...),
		DangerFactors: append([]string(nil), m.DangerFactors...),
		Difficulty:    m.Difficulty,
		IsCustom:      m.IsCustom,
	}
}

// State 返回游戏状态投影
func (r *Room) State() *protocol.GameStateDTO {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stateLocked()
}

// GetGameState 按房间号返回游戏状态投影
func (m *Manager) GetGameState(roomCode string) (*protocol.GameStateDTO, error) {
	room := m.GetRoom(roomCode)
	if room == nil {
		return nil, apperrors.ErrRoomNotFound
	}
	return room.State(), nil
}

// GetOwnCharacter 返回玩家自己的完整角色卡
func (m *Manager) GetOwnCharacter(roomCode, playerID string) (*protocol.CharacterCardDTO, error) {
	room := m.GetRoom(roomCode)
	if room == nil {
		return nil, apperrors.ErrRoomNotFound
	}

	room.mu.RLock()
	defer room.mu.RUnlock()

	if _, ok := room.Players[playerID]; !ok {
		return nil, apperrors.ErrPlayerNotFound
	}
	card, ok := room.Cards[playerID]
	if !ok {
		return nil, apperrors.ErrCharacterNotFound
	}

	dto := &protocol.CharacterCardDTO{
		Categories: make([]protocol.CategoryInfo, 0, character.CategoryCount),
	}
	for i := 0; i < character.CategoryCount; i++ {
		trait := card.Trait(i)
		dto.Categories = append(dto.Categories, protocol.CategoryInfo{
			Index:    i,
			Name:     character.CategoryName(i),
			Revealed: trait.Revealed,
			Value:    trait.Format(),
		})
	}
	return dto, nil
}

// GetOwnAbilities 返回玩家自己的能力列表
func (m *Manager) GetOwnAbilities(roomCode, playerID string) ([]protocol.AbilityInfo, error) {
	room := m.GetRoom(roomCode)
	if room == nil {
		return nil, apperrors.ErrRoomNotFound
	}

	room.mu.RLock()
	defer room.mu.RUnlock()

	if _, ok := room.Players[playerID]; !ok {
		return nil, apperrors.ErrPlayerNotFound
	}

	abilities := room.Abilities[playerID]
	infos := make([]protocol.AbilityInfo, 0, len(abilities))
	for _, a := range abilities {
		infos = append(infos, protocol.AbilityInfo{
			ID:             a.ID,
			Name:           a.Name,
			Description:    a.Description,
			Effect:         string(a.Effect),
			UsesRemaining:  a.UsesRemaining,
			MaxUses:        a.MaxUses,
			RequiresTarget: a.RequiresTarget,
		})
	}
	return infos, nil
}
