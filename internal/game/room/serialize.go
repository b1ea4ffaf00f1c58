package room

import (
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/game/character"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/server/storage"
)

// ToRoomData 将 Room 转换为可序列化的快照
func (r *Room) ToRoomData() *storage.RoomData {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// 复制角色卡，避免快照序列化与游戏内修改竞争
	cards := make(map[string]*character.Card, len(r.Cards))
	for id, c := range r.Cards {
		cc := *c
		cards[id] = &cc
	}

	data := &storage.RoomData{
		Code:             r.Code,
		HostID:           r.HostID,
		Phase:            string(r.Phase),
		Round:            r.Round,
		GameStarted:      r.GameStarted,
		GameEnded:        r.GameEnded,
		PlayerOrder:      append([]string(nil), r.PlayerOrder...),
		Eliminated:       append([]string(nil), r.Eliminated...),
		TargetSurvivors:  r.TargetSurvivors,
		StrikeTeamSize:   r.StrikeTeamSize,
		ConsecutiveSkips: r.ConsecutiveSkips,
		Epilogue:         r.Epilogue,
		CreatedAt:        r.CreatedAt.Unix(),
		Players:          make([]storage.PlayerData, 0, len(r.Players)),
		Cards:            cards,
		Revealed:         append([]protocol.RevealedInfo(nil), r.Revealed...),
	}

	if r.SelectedMission != nil {
		data.MissionID = r.SelectedMission.ID
	}

	for _, id := range r.PlayerOrder {
		p, ok := r.Players[id]
		if !ok {
			continue
		}
		data.Players = append(data.Players, storage.PlayerData{
			ID:        p.ID,
			Name:      p.Name,
			Role:      p.Role,
			Connected: p.Connected,
		})
	}

	return data
}
