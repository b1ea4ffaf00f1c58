package room

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/game/character"
)

// TestFullGameFlow 走完一局完整游戏：
// 大厅 -> 任务简报 -> 公开 -> 讨论 -> 投票 -> 回合结算 -> 第二轮 -> 任务完成
func TestFullGameFlow(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)
	src := &stubEpilogues{}
	m.SetEpilogueSource(src)

	room, _ := newTestRoom(t, m, 4)
	players := []string{"p1", "p2", "p3", "p4"}

	require.NoError(t, m.SetTargetSurvivors(room.Code, "p1", 2))
	require.NoError(t, m.SelectMission(context.Background(), room.Code, "p1", testMissionID))
	require.NoError(t, m.StartGame(room.Code, "p1"))
	assert.Equal(t, PhaseMissionBriefing, currentPhase(room))

	// 第一轮：公开
	require.NoError(t, m.AdvancePhase(room.Code, "p1"))
	for _, id := range players {
		_, err := m.Reveal(room.Code, id, character.CategoryRank)
		require.NoError(t, err)
	}
	assert.Equal(t, PhaseDiscussion, currentPhase(room))

	// 第一轮：讨论全员就绪
	for _, id := range players {
		require.NoError(t, m.ToggleReady(room.Code, id))
	}
	assert.Equal(t, PhaseVoting, currentPhase(room))

	// 第一轮：投票淘汰 p4
	require.NoError(t, m.SubmitVote(room.Code, "p1", "p4", false))
	require.NoError(t, m.SubmitVote(room.Code, "p2", "p4", false))
	require.NoError(t, m.SubmitVote(room.Code, "p3", "p4", false))
	require.NoError(t, m.SubmitVote(room.Code, "p4", "p1", false))

	require.Eventually(t, func() bool {
		return currentPhase(room) == PhaseRoundEnd
	}, waitTimeout, waitTick)

	require.NoError(t, m.NextRound(room.Code, "p1"))
	assert.Equal(t, PhaseReveal, currentPhase(room))

	room.mu.RLock()
	assert.Equal(t, 2, room.Round)
	assert.Equal(t, []string{"p4"}, room.Eliminated)
	room.mu.RUnlock()

	// 第二轮：只剩三名存活玩家
	alive := []string{"p1", "p2", "p3"}
	for _, id := range alive {
		_, err := m.Reveal(room.Code, id, character.CategoryCursedTechnique)
		require.NoError(t, err)
	}
	assert.Equal(t, PhaseDiscussion, currentPhase(room))

	for _, id := range alive {
		require.NoError(t, m.ToggleReady(room.Code, id))
	}
	assert.Equal(t, PhaseVoting, currentPhase(room))

	require.NoError(t, m.SubmitVote(room.Code, "p1", "p3", false))
	require.NoError(t, m.SubmitVote(room.Code, "p2", "p3", false))
	require.NoError(t, m.SubmitVote(room.Code, "p3", "p1", false))

	require.Eventually(t, func() bool {
		return currentPhase(room) == PhaseRoundEnd
	}, waitTimeout, waitTick)

	// 淘汰 p3 后存活 2 人，达到目标，任务完成
	require.NoError(t, m.NextRound(room.Code, "p1"))

	room.mu.RLock()
	assert.True(t, room.GameEnded)
	assert.Equal(t, PhaseMissionComplete, room.Phase)
	assert.ElementsMatch(t, []string{"p3", "p4"}, room.Eliminated)
	for _, card := range room.Cards {
		assert.Equal(t, -1, card.FirstHidden())
	}
	room.mu.RUnlock()

	// 结语
	epilogue, err := m.GenerateEpilogue(context.Background(), room.Code, "p1")
	require.NoError(t, err)
	assert.NotEmpty(t, epilogue)

	state, err := m.GetGameState(room.Code)
	require.NoError(t, err)
	assert.True(t, state.GameEnded)
	assert.Equal(t, epilogue, state.Epilogue)
}
