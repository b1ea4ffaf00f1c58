package types

// ClientInterface 客户端抽象
// 房间层通过它向玩家推送消息，测试中用 mock 实现替换真实 WebSocket 连接
type ClientInterface interface {
	GetID() string
	GetName() string
	SetName(name string)
	GetRoom() string
	SetRoom(roomCode string)
	SendMessage(data []byte)
	Close()
}

// Notifier 房间事件通知
// 房间层在释放锁之后才调用，实现方负责把消息广播给房间内的客户端
type Notifier interface {
	NotifyRoom(roomCode string, data []byte)
	NotifyPlayer(roomCode, playerID string, data []byte)
}
