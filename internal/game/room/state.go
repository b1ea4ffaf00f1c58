package room

// Phase 游戏阶段
type Phase string

const (
	PhaseLobby           Phase = "lobby"            // 大厅，等待玩家加入
	PhaseMissionBriefing Phase = "mission_briefing" // 任务简报
	PhaseReveal          Phase = "reveal"           // 公开特征
	PhaseDiscussion      Phase = "discussion"       // 讨论
	PhaseVoting          Phase = "voting"           // 投票
	PhaseRoundEnd        Phase = "round_end"        // 回合结算
	PhaseMissionComplete Phase = "mission_complete" // 任务完成
)

// AbilityUsable 判断该阶段是否允许使用能力
func (p Phase) AbilityUsable() bool {
	switch p {
	case PhaseReveal, PhaseDiscussion, PhaseVoting:
		return true
	}
	return false
}

// 玩家角色
const (
	RoleHost        = "host"
	RoleParticipant = "participant"
)

// VoteSkip 弃票标记
const VoteSkip = "SKIP"
