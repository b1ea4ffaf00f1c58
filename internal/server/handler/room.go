package handler

import (
	"strings"
	"time"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol/codec"
	"github.com/SaltyFrappuccino/JJK-Incidents/internal/types"
)

const maxPlayerNameLength = 20

// handlePing 心跳
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	var req protocol.PingPayload
	if !h.decode(client, msg, &req) {
		return
	}

	h.sendResult(client, protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: req.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	})
}

// handleCreateRoom 创建房间
func (h *Handler) handleCreateRoom(client types.ClientInterface, msg *protocol.Message) {
	var req protocol.CreateRoomPayload
	if !h.decode(client, msg, &req) {
		return
	}

	name, ok := h.validName(client, req.HostName)
	if !ok {
		return
	}

	r, err := h.rooms.CreateRoom(client, name)
	if err != nil {
		h.sendError(client, err)
		return
	}

	client.SetName(name)
	h.sendResult(client, protocol.MsgRoomCreated, protocol.RoomCreatedPayload{
		RoomCode: r.Code,
		PlayerID: client.GetID(),
	})
}

// handleJoinRoom 加入房间
func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	var req protocol.JoinRoomPayload
	if !h.decode(client, msg, &req) {
		return
	}

	name, ok := h.validName(client, req.PlayerName)
	if !ok {
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.RoomCode))
	r, err := h.rooms.JoinRoom(client, code, name)
	if err != nil {
		h.sendError(client, err)
		return
	}

	client.SetName(name)
	h.sendResult(client, protocol.MsgRoomJoined, protocol.RoomJoinedPayload{
		RoomCode:  r.Code,
		PlayerID:  client.GetID(),
		GameState: r.State(),
	})
}

// handleLeaveRoom 离开房间
func (h *Handler) handleLeaveRoom(client types.ClientInterface) {
	h.rooms.LeaveRoom(client)
}

func newInvalidNameError() *protocol.Message {
	return codec.NewErrorMessageWithReason(protocol.ErrCodeInvalidTarget, protocol.ReasonInvalidTarget, "昵称不能为空且不超过 20 个字符")
}

// validName 校验玩家昵称
func (h *Handler) validName(client types.ClientInterface, raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	if name == "" || len([]rune(name)) > maxPlayerNameLength {
		h.send(client, newInvalidNameError())
		return "", false
	}
	return name, true
}
