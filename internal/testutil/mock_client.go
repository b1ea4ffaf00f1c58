package testutil

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/SaltyFrappuccino/JJK-Incidents/internal/types"
)

// FakeClient 测试用客户端，记录收到的全部消息
type FakeClient struct {
	ID   string
	Name string

	mu       sync.Mutex
	roomCode string
	messages [][]byte
	closed   bool
}

// NewFakeClient 创建测试客户端
func NewFakeClient(id string) *FakeClient {
	return &FakeClient{ID: id}
}

func (c *FakeClient) GetID() string   { return c.ID }
func (c *FakeClient) GetName() string { return c.Name }

func (c *FakeClient) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Name = name
}

func (c *FakeClient) GetRoom() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roomCode
}

func (c *FakeClient) SetRoom(roomCode string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomCode = roomCode
}

func (c *FakeClient) SendMessage(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, data)
}

func (c *FakeClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// Messages 返回收到消息的副本
func (c *FakeClient) Messages() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]byte, len(c.messages))
	copy(out, c.messages)
	return out
}

// Reset 清空已记录的消息
func (c *FakeClient) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
}

// Closed 是否已关闭
func (c *FakeClient) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

var _ types.ClientInterface = (*FakeClient)(nil)

// MockClient 基于 testify 的客户端 mock，用于断言调用行为
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) SetName(name string) {
	m.Called(name)
}

func (m *MockClient) GetRoom() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) SetRoom(roomCode string) {
	m.Called(roomCode)
}

func (m *MockClient) SendMessage(data []byte) {
	m.Called(data)
}

func (m *MockClient) Close() {
	m.Called()
}

var _ types.ClientInterface = (*MockClient)(nil)
