package apperrors

import (
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol"
)

// GameError 游戏错误（房间、能力与计票共享）
// Reason 是稳定的分类标识，Code 对应协议错误码
type GameError struct {
	Code    int
	Reason  string
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
// 这些错误都不是瞬时故障，调用方应修改请求而不是重试
var (
	// not_found
	ErrRoomNotFound      = &GameError{Code: protocol.ErrCodeNotFound, Reason: protocol.ReasonNotFound, Message: "房间不存在"}
	ErrPlayerNotFound    = &GameError{Code: protocol.ErrCodeNotFound, Reason: protocol.ReasonNotFound, Message: "玩家不存在"}
	ErrCharacterNotFound = &GameError{Code: protocol.ErrCodeNotFound, Reason: protocol.ReasonNotFound, Message: "角色卡不存在"}
	ErrMissionNotFound   = &GameError{Code: protocol.ErrCodeNotFound, Reason: protocol.ReasonNotFound, Message: "任务不存在"}
	ErrMissionNotChosen  = &GameError{Code: protocol.ErrCodeNotFound, Reason: protocol.ReasonNotFound, Message: "尚未选择任务"}

	// forbidden
	ErrNotHost          = &GameError{Code: protocol.ErrCodeForbidden, Reason: protocol.ReasonForbidden, Message: "只有主持人可以执行该操作"}
	ErrPlayerEliminated = &GameError{Code: protocol.ErrCodeForbidden, Reason: protocol.ReasonForbidden, Message: "已淘汰的玩家不能执行该操作"}

	// invalid_phase
	ErrInvalidPhase   = &GameError{Code: protocol.ErrCodeInvalidPhase, Reason: protocol.ReasonInvalidPhase, Message: "当前阶段不允许该操作"}
	ErrGameStarted    = &GameError{Code: protocol.ErrCodeInvalidPhase, Reason: protocol.ReasonInvalidPhase, Message: "游戏已开始"}
	ErrGameNotStarted = &GameError{Code: protocol.ErrCodeInvalidPhase, Reason: protocol.ReasonInvalidPhase, Message: "游戏尚未开始"}

	// already_acted
	ErrAlreadyRevealed  = &GameError{Code: protocol.ErrCodeAlreadyActed, Reason: protocol.ReasonAlreadyActed, Message: "本轮已公开过特征"}
	ErrCategoryRevealed = &GameError{Code: protocol.ErrCodeAlreadyActed, Reason: protocol.ReasonAlreadyActed, Message: "该特征已公开"}
	ErrAlreadyVoted     = &GameError{Code: protocol.ErrCodeAlreadyActed, Reason: protocol.ReasonAlreadyActed, Message: "您已投过票"}

	// invalid_target
	ErrTargetNotFound   = &GameError{Code: protocol.ErrCodeInvalidTarget, Reason: protocol.ReasonInvalidTarget, Message: "目标玩家不存在"}
	ErrTargetEliminated = &GameError{Code: protocol.ErrCodeInvalidTarget, Reason: protocol.ReasonInvalidTarget, Message: "目标玩家已被淘汰"}
	ErrSelfVote         = &GameError{Code: protocol.ErrCodeInvalidTarget, Reason: protocol.ReasonInvalidTarget, Message: "不能投票给自己"}
	ErrVoteBlocked      = &GameError{Code: protocol.ErrCodeInvalidTarget, Reason: protocol.ReasonInvalidTarget, Message: "您本轮被能力封锁，无法投票"}
	ErrSkipForbidden    = &GameError{Code: protocol.ErrCodeInvalidTarget, Reason: protocol.ReasonInvalidTarget, Message: "不能连续三轮弃票"}
	ErrNameTaken        = &GameError{Code: protocol.ErrCodeInvalidTarget, Reason: protocol.ReasonInvalidTarget, Message: "该昵称已被占用"}
	ErrInvalidCategory  = &GameError{Code: protocol.ErrCodeInvalidTarget, Reason: protocol.ReasonInvalidTarget, Message: "无效的特征序号"}

	// capacity
	ErrRoomFull            = &GameError{Code: protocol.ErrCodeCapacity, Reason: protocol.ReasonCapacity, Message: "房间已满"}
	ErrRoomLimitReached    = &GameError{Code: protocol.ErrCodeCapacity, Reason: protocol.ReasonCapacity, Message: "房间数量已达上限"}
	ErrNotEnoughPlayers    = &GameError{Code: protocol.ErrCodeCapacity, Reason: protocol.ReasonCapacity, Message: "至少需要 3 名玩家才能开始"}
	ErrSurvivorsOutOfRange = &GameError{Code: protocol.ErrCodeCapacity, Reason: protocol.ReasonCapacity, Message: "目标幸存人数必须不小于 1 且小于当前玩家数"}
	ErrCodeSpaceExhausted  = &GameError{Code: protocol.ErrCodeCapacity, Reason: protocol.ReasonCapacity, Message: "无法生成唯一房间号"}

	// ability_unavailable
	ErrAbilityNotFound   = &GameError{Code: protocol.ErrCodeAbilityBlocked, Reason: protocol.ReasonAbilityUnavailable, Message: "能力不存在"}
	ErrAbilityExhausted  = &GameError{Code: protocol.ErrCodeAbilityBlocked, Reason: protocol.ReasonAbilityUnavailable, Message: "能力已用尽"}
	ErrAbilityNeedTarget = &GameError{Code: protocol.ErrCodeAbilityBlocked, Reason: protocol.ReasonAbilityUnavailable, Message: "该能力需要指定目标"}
	ErrAbilityWrongPhase = &GameError{Code: protocol.ErrCodeAbilityBlocked, Reason: protocol.ReasonAbilityUnavailable, Message: "能力只能在公开、讨论或投票阶段使用"}
	ErrCasterEliminated  = &GameError{Code: protocol.ErrCodeAbilityBlocked, Reason: protocol.ReasonAbilityUnavailable, Message: "已淘汰的玩家不能使用能力"}
)
