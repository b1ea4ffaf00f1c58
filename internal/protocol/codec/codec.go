package codec

import (
	"encoding/json"
	"fmt"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol"
)

// NewMessage 构造消息，payload 会被序列化为 JSON
func NewMessage(msgType protocol.MessageType, payload any) (*protocol.Message, error) {
	msg := &protocol.Message{Type: msgType}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("序列化 payload 失败: %w", err)
		}
		msg.Payload = data
	}
	return msg, nil
}

// MustNewMessage 构造消息，payload 序列化失败时 panic
// 仅用于服务端自有类型，payload 均为可序列化的纯数据结构
func MustNewMessage(msgType protocol.MessageType, payload any) *protocol.Message {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// NewErrorMessage 按错误码构造错误消息
func NewErrorMessage(code int) *protocol.Message {
	return MustNewMessage(protocol.MsgError, protocol.ErrorPayload{
		Code:    code,
		Message: protocol.ErrorMessages[code],
	})
}

// NewErrorMessageWithReason 构造携带稳定原因标识的错误消息
func NewErrorMessageWithReason(code int, reason, text string) *protocol.Message {
	if text == "" {
		text = protocol.ErrorMessages[code]
	}
	return MustNewMessage(protocol.MsgError, protocol.ErrorPayload{
		Code:    code,
		Reason:  reason,
		Message: text,
	})
}

// Encode 序列化消息
func Encode(msg *protocol.Message) ([]byte, error) {
	return json.Marshal(msg)
}

// Decode 反序列化消息
func Decode(data []byte) (*protocol.Message, error) {
	msg := GetMessage()
	if err := json.Unmarshal(data, msg); err != nil {
		PutMessage(msg)
		return nil, fmt.Errorf("解析消息失败: %w", err)
	}
	if msg.Type == "" {
		PutMessage(msg)
		return nil, fmt.Errorf("消息缺少 type 字段")
	}
	return msg, nil
}
