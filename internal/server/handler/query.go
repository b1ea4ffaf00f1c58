package handler

import (
	"context"
	"log"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/mission"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol/codec"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/types"
)

// handleGetGameState 查询游戏状态投影
func (h *Handler) handleGetGameState(client types.ClientInterface) {
	code, ok := h.roomOf(client)
	if !ok {
		return
	}

	state, err := h.rooms.GetGameState(code)
	if err != nil {
		h.sendError(client, err)
		return
	}

	h.sendResult(client, protocol.MsgGameStateResult, state)
}

// handleGetMissions 查询任务列表
func (h *Handler) handleGetMissions(client types.ClientInterface, msg *protocol.Message) {
	var req protocol.GetMissionsPayload
	if len(msg.Payload) > 0 && !h.decode(client, msg, &req) {
		return
	}

	var filter *mission.Filter
	if len(req.Difficulty) > 0 {
		filter = &mission.Filter{Difficulty: req.Difficulty}
	}

	ctx, cancel := context.WithTimeout(context.Background(), missionLookupTimeout)
	defer cancel()

	missions, err := h.missions.ListMissions(ctx, filter)
	if err != nil {
		log.Printf("[ERROR] 查询任务列表失败: %v", err)
		h.send(client, codec.NewErrorMessage(protocol.ErrCodeUnknown))
		return
	}

	infos := make([]protocol.MissionInfo, 0, len(missions))
	for _, m := range missions {
		infos = append(infos, protocol.MissionInfo{
			ID:            m.ID,
			Name:          m.Name,
			Description:   m.Description,
			Threat:        m.Threat,
			Objectives:    append([]string(nil), m.Objectives...),
			DangerFactors: append([]string(nil), m.DangerFactors...),
			Difficulty:    m.Difficulty,
			IsCustom:      m.IsCustom,
		})
	}

	h.sendResult(client, protocol.MsgMissionsResult, infos)
}

// handleGetOwnCharacter 查询自己的角色卡
func (h *Handler) handleGetOwnCharacter(client types.ClientInterface) {
	code, ok := h.roomOf(client)
	if !ok {
		return
	}

	card, err := h.rooms.GetOwnCharacter(code, client.GetID())
	if err != nil {
		h.sendError(client, err)
		return
	}

	h.sendResult(client, protocol.MsgCharacterResult, card)
}

// handleGetOwnAbilities 查询自己的能力列表
func (h *Handler) handleGetOwnAbilities(client types.ClientInterface) {
	code, ok := h.roomOf(client)
	if !ok {
		return
	}

	abilities, err := h.rooms.GetOwnAbilities(code, client.GetID())
	if err != nil {
		h.sendError(client, err)
		return
	}

	h.sendResult(client, protocol.MsgAbilitiesResult, abilities)
}
