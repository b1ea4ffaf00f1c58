package handler

import (
	"context"
	"time"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/apperrors"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/types"
)

const missionLookupTimeout = 5 * time.Second

// roomOf 取客户端所在房间号，不在房间内时回错误
func (h *Handler) roomOf(client types.ClientInterface) (string, bool) {
	code := client.GetRoom()
	if code == "" {
		h.sendError(client, apperrors.ErrRoomNotFound)
		return "", false
	}
	return code, true
}

// handleSelectMission 主持人选择任务
func (h *Handler) handleSelectMission(client types.ClientInterface, msg *protocol.Message) {
	var req protocol.SelectMissionPayload
	if !h.decode(client, msg, &req) {
		return
	}
	code, ok := h.roomOf(client)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), missionLookupTimeout)
	defer cancel()

	if err := h.rooms.SelectMission(ctx, code, client.GetID(), req.MissionID); err != nil {
		h.sendError(client, err)
	}
}

// handleSetTargetSurvivors 主持人设置目标幸存人数
func (h *Handler) handleSetTargetSurvivors(client types.ClientInterface, msg *protocol.Message) {
	var req protocol.SetTargetSurvivorsPayload
	if !h.decode(client, msg, &req) {
		return
	}
	code, ok := h.roomOf(client)
	if !ok {
		return
	}

	if err := h.rooms.SetTargetSurvivors(code, client.GetID(), req.TargetSurvivors); err != nil {
		h.sendError(client, err)
	}
}

// handleStartGame 主持人开始游戏
func (h *Handler) handleStartGame(client types.ClientInterface) {
	code, ok := h.roomOf(client)
	if !ok {
		return
	}

	if err := h.rooms.StartGame(code, client.GetID()); err != nil {
		h.sendError(client, err)
	}
}

// handleAdvancePhase 主持人推进阶段
func (h *Handler) handleAdvancePhase(client types.ClientInterface) {
	code, ok := h.roomOf(client)
	if !ok {
		return
	}

	if err := h.rooms.AdvancePhase(code, client.GetID()); err != nil {
		h.sendError(client, err)
	}
}

// handleToggleReady 切换投票准备状态
func (h *Handler) handleToggleReady(client types.ClientInterface) {
	code, ok := h.roomOf(client)
	if !ok {
		return
	}

	if err := h.rooms.ToggleReady(code, client.GetID()); err != nil {
		h.sendError(client, err)
	}
}

// handleReveal 公开一项角色特征
func (h *Handler) handleReveal(client types.ClientInterface, msg *protocol.Message) {
	var req protocol.RevealPayload
	if !h.decode(client, msg, &req) {
		return
	}
	code, ok := h.roomOf(client)
	if !ok {
		return
	}

	if _, err := h.rooms.Reveal(code, client.GetID(), req.CategoryIndex); err != nil {
		h.sendError(client, err)
	}
}

// handleSubmitVote 提交投票
func (h *Handler) handleSubmitVote(client types.ClientInterface, msg *protocol.Message) {
	var req protocol.SubmitVotePayload
	if !h.decode(client, msg, &req) {
		return
	}
	code, ok := h.roomOf(client)
	if !ok {
		return
	}

	if err := h.rooms.SubmitVote(code, client.GetID(), req.TargetID, req.Skip); err != nil {
		h.sendError(client, err)
	}
}

// handleUseAbility 使用能力，结果仅回给发起者
func (h *Handler) handleUseAbility(client types.ClientInterface, msg *protocol.Message) {
	var req protocol.UseAbilityPayload
	if !h.decode(client, msg, &req) {
		return
	}
	code, ok := h.roomOf(client)
	if !ok {
		return
	}

	result, err := h.rooms.UseAbility(code, client.GetID(), req.AbilityID, req.TargetID)
	if err != nil {
		h.sendError(client, err)
		return
	}

	h.sendResult(client, protocol.MsgAbilityUsed, result)
}

// handleNextRound 主持人进入下一轮
func (h *Handler) handleNextRound(client types.ClientInterface) {
	code, ok := h.roomOf(client)
	if !ok {
		return
	}

	if err := h.rooms.NextRound(code, client.GetID()); err != nil {
		h.sendError(client, err)
	}
}

// handleGenerateEpilogue 主持人请求生成任务结语
// 生成是同步等待的，结果也会通过房间广播推送
func (h *Handler) handleGenerateEpilogue(client types.ClientInterface, msg *protocol.Message) {
	code, ok := h.roomOf(client)
	if !ok {
		return
	}

	// 生成耗时较长，放到独立协程避免阻塞读循环
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		epilogue, err := h.rooms.GenerateEpilogue(ctx, code, client.GetID())
		if err != nil {
			h.sendError(client, err)
			return
		}

		h.sendResult(client, protocol.MsgEpilogueResult, protocol.EpilogueResultPayload{Epilogue: epilogue})
	}()
}
