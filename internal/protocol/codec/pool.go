package codec

import (
	"sync"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/protocol"
)

// messagePool reduces GC pressure on the read path: Decode hands out pooled
// messages and callers return them with PutMessage after dispatch
var messagePool = sync.Pool{
	New: func() any {
		return &protocol.Message{}
	},
}

// GetMessage retrieves a Message from the pool
func GetMessage() *protocol.Message {
	return messagePool.Get().(*protocol.Message)
}

// PutMessage returns a Message to the pool
// The message fields are reset to prevent memory leaks
func PutMessage(msg *protocol.Message) {
	if msg == nil {
		return
	}
	// Reset fields to avoid holding references
	msg.Type = ""
	msg.Payload = nil
	messagePool.Put(msg)
}
