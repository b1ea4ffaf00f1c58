package room

import (
	"log"
	"time"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/apperrors"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol"
)

// SubmitVote 提交投票，skip 为 true 表示弃票
// 全部可投票的存活玩家都投完后立即计票
func (m *Manager) SubmitVote(roomCode, playerID, targetID string, skip bool) error {
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
	if room.Phase != PhaseVoting {
		room.mu.Unlock()
		return apperrors.ErrInvalidPhase
	}
	if room.isEliminated(playerID) {
		room.mu.Unlock()
		return apperrors.ErrPlayerEliminated
	}
	if player.HasVoted {
		room.mu.Unlock()
		return apperrors.ErrAlreadyVoted
	}
	if room.Overlays.BlockedVotes[playerID] {
		room.mu.Unlock()
		return apperrors.ErrVoteBlocked
	}
	if skip && room.ConsecutiveSkips >= 2 {
		room.mu.Unlock()
		return apperrors.ErrSkipForbidden
	}
	if !skip {
		target, ok := room.Players[targetID]
		if !ok {
			room.mu.Unlock()
			return apperrors.ErrTargetNotFound
		}
		if targetID == playerID {
			room.mu.Unlock()
			return apperrors.ErrSelfVote
		}
		if room.isEliminated(target.ID) {
			room.mu.Unlock()
			return apperrors.ErrTargetEliminated
		}
	}

	player.HasVoted = true

	if skip {
		player.VoteTarget = VoteSkip
		room.Votes[playerID] = VoteSkip
		log.Printf("🗳️ 玩家 %s 弃票", player.Name)
	} else {
		actual := targetID
		// 投票被反弹时落在自己身上
		if _, reflected := room.Overlays.ReflectedVotes[playerID]; reflected {
			actual = playerID
			log.Printf("🪞 玩家 %s 的投票被反弹", player.Name)
		}
		player.VoteTarget = actual
		room.Votes[playerID] = actual
		log.Printf("🗳️ 玩家 %s 投给 %s", player.Name, room.playerName(actual))
	}

	// 被封锁投票的玩家不计入齐票判定
	allVoted := true
	for id, p := range room.Players {
		if room.isEliminated(id) || room.Overlays.BlockedVotes[id] {
			continue
		}
		if !p.HasVoted {
			allVoted = false
			break
		}
	}

	var msgs []outbound
	if allVoted {
		m.tallyLocked(room)
	}
	msgs = append(msgs, outbound{data: encode(protocol.MsgGameUpdated, room.stateLocked())})
	room.mu.Unlock()

	m.flush(roomCode, msgs)
	m.persist(room)

	return nil
}

// tallyLocked 计票，须持有房间写锁调用
// 结果优先级：弃票过半 > 平票 > 受保护 > 淘汰，延迟数秒后转入回合结算
func (m *Manager) tallyLocked(room *Room) {
	voteCounts := make(map[string]int)
	skipVotes := 0
	for _, target := range room.Votes {
		if target == VoteSkip {
			skipVotes++
			continue
		}
		weight := 1
		if _, doubled := room.Overlays.DoubleVoteDamage[target]; doubled {
			weight = 2
		}
		voteCounts[target] += weight
	}
	totalVotes := len(room.Votes)

	// 找到得票最高的玩家
	maxVotes := 0
	eliminatedID := ""
	tieCount := 0
	for id, count := range voteCounts {
		if count > maxVotes {
			maxVotes = count
			eliminatedID = id
			tieCount = 1
		} else if count == maxVotes {
			tieCount++
		}
	}
	tie := tieCount > 1

	switch {
	case skipVotes*2 > totalVotes:
		// 弃票过半，无人淘汰
		eliminatedID = ""
		room.ConsecutiveSkips++
		log.Printf("🤝 房间 %s 弃票过半，无人淘汰（连续 %d 轮）", room.Code, room.ConsecutiveSkips)
	case tie:
		// 平票，无人淘汰
		eliminatedID = ""
		room.ConsecutiveSkips++
		log.Printf("⚖️ 房间 %s 平票，无人淘汰（连续 %d 轮）", room.Code, room.ConsecutiveSkips)
	case eliminatedID != "" && room.Overlays.ProtectedPlayers[eliminatedID]:
		// 得票最高者受保护，淘汰被取消
		log.Printf("🛡️ 房间 %s 玩家 %s 受领域保护，淘汰取消", room.Code, room.playerName(eliminatedID))
		eliminatedID = ""
		room.ConsecutiveSkips++
	case eliminatedID != "":
		room.ConsecutiveSkips = 0
		log.Printf("☠️ 房间 %s 计票完成，%s 将被淘汰", room.Code, room.playerName(eliminatedID))
	}

	room.LastVoteResult = &VoteResult{
		EliminatedID: eliminatedID,
		VoteCounts:   voteCounts,
		Tie:          tie,
	}

	// 延迟转入回合结算，给客户端展示计票结果的时间
	if room.voteTimer != nil {
		room.voteTimer.Stop()
	}
	roomCode := room.Code
	room.voteTimer = time.AfterFunc(m.game.TallyDelayDuration(), func() {
		m.enterRoundEnd(roomCode)
	})
}

// enterRoundEnd 计票延迟结束后转入回合结算阶段
func (m *Manager) enterRoundEnd(roomCode string) {
	room := m.GetRoom(roomCode)
	if room == nil {
		return
	}

	room.mu.Lock()
	if room.Phase != PhaseVoting {
		room.mu.Unlock()
		return
	}
	room.transitionTo(PhaseRoundEnd)
	room.voteTimer = nil
	msgs := []outbound{{data: encode(protocol.MsgGameUpdated, room.stateLocked())}}
	room.mu.Unlock()

	m.flush(roomCode, msgs)
	m.persist(room)
}
