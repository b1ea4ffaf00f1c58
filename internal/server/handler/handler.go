package handler

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/apperrors"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/game/room"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/mission"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol/codec"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/types"
)

// Deps 处理器依赖
type Deps struct {
	Rooms    *room.Manager
	Missions *mission.Store
}

// Handler 消息处理器
type Handler struct {
	rooms    *room.Manager
	missions *mission.Store
	handlers map[protocol.MessageType]handlerFunc
}

// handlerFunc 统一的处理器函数签名
type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// NewHandler 创建处理器
func NewHandler(deps Deps) *Handler {
	h := &Handler{
		rooms:    deps.Rooms,
		missions: deps.Missions,
	}
	h.initHandlers()
	return h
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		// 连接操作
		protocol.MsgPing: h.handlePing,

		// 房间操作
		protocol.MsgCreateRoom: h.handleCreateRoom,
		protocol.MsgJoinRoom:   h.handleJoinRoom,
		protocol.MsgLeaveRoom:  func(c types.ClientInterface, _ *protocol.Message) { h.handleLeaveRoom(c) },

		// 对局准备
		protocol.MsgSelectMission:      h.handleSelectMission,
		protocol.MsgSetTargetSurvivors: h.handleSetTargetSurvivors,
		protocol.MsgStartGame:          func(c types.ClientInterface, _ *protocol.Message) { h.handleStartGame(c) },

		// 回合操作
		protocol.MsgAdvancePhase: func(c types.ClientInterface, _ *protocol.Message) { h.handleAdvancePhase(c) },
		protocol.MsgToggleReady:  func(c types.ClientInterface, _ *protocol.Message) { h.handleToggleReady(c) },
		protocol.MsgReveal:       h.handleReveal,
		protocol.MsgSubmitVote:   h.handleSubmitVote,
		protocol.MsgUseAbility:   h.handleUseAbility,
		protocol.MsgNextRound:    func(c types.ClientInterface, _ *protocol.Message) { h.handleNextRound(c) },

		// 信息查询
		protocol.MsgGetGameState:     func(c types.ClientInterface, _ *protocol.Message) { h.handleGetGameState(c) },
		protocol.MsgGetMissions:      h.handleGetMissions,
		protocol.MsgGetOwnCharacter:  func(c types.ClientInterface, _ *protocol.Message) { h.handleGetOwnCharacter(c) },
		protocol.MsgGetOwnAbilities:  func(c types.ClientInterface, _ *protocol.Message) { h.handleGetOwnAbilities(c) },
		protocol.MsgGenerateEpilogue: h.handleGenerateEpilogue,
	}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	if handler, ok := h.handlers[msg.Type]; ok {
		handler(client, msg)
		return
	}

	log.Printf("⚠️  未知消息类型: '%s' (客户端: %s)", msg.Type, client.GetID())
	h.send(client, codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
}

// send 编码并发送消息
func (h *Handler) send(client types.ClientInterface, msg *protocol.Message) {
	data, err := codec.Encode(msg)
	if err != nil {
		log.Printf("[ERROR] 消息编码失败: %v", err)
		return
	}
	client.SendMessage(data)
}

// sendResult 发送查询结果
func (h *Handler) sendResult(client types.ClientInterface, msgType protocol.MessageType, payload any) {
	msg, err := codec.NewMessage(msgType, payload)
	if err != nil {
		log.Printf("[ERROR] 响应构造失败: %v", err)
		h.send(client, codec.NewErrorMessage(protocol.ErrCodeUnknown))
		return
	}
	h.send(client, msg)
}

// sendError 把游戏错误翻译为协议错误发送给客户端
func (h *Handler) sendError(client types.ClientInterface, err error) {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		h.send(client, codec.NewErrorMessageWithReason(gameErr.Code, gameErr.Reason, gameErr.Message))
		return
	}
	h.send(client, codec.NewErrorMessage(protocol.ErrCodeUnknown))
}

// decode 解析请求负载
func (h *Handler) decode(client types.ClientInterface, msg *protocol.Message, v any) bool {
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		log.Printf("负载解析错误 (%s): %v", msg.Type, err)
		h.send(client, codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return false
	}
	return true
}
